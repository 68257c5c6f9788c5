// Package httpapi serves the read-only HTTP surface of the predictor:
// health probes, performance metrics and stored prediction runs.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/performance"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

// RunReader is the slice of the prediction store the API needs.
type RunReader interface {
	RunForDate(ctx context.Context, date string) (*models.Run, error)
	LatestRun(ctx context.Context) (*models.Run, error)
}

type Server struct {
	store RunReader
}

func NewServer(store RunReader) *Server {
	return &Server{store: store}
}

// Router builds the mux with all routes registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ping", handlePing).Methods(http.MethodGet)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/predictions", s.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/predictions/{date:[0-9]{4}-[0-9]{2}-[0-9]{2}}", s.handleByDate).Methods(http.MethodGet)
	return r
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := performance.GetTracker().GetMetrics()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(metrics); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode metrics: %v", err), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	s.writeRun(w, run, err)
}

func (s *Server) handleByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	run, err := s.store.RunForDate(r.Context(), date)
	s.writeRun(w, run, err)
}

func (s *Server) writeRun(w http.ResponseWriter, run *models.Run, err error) {
	if errors.Is(err, storage.ErrNoRun) {
		http.Error(w, "no predictions for date", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Failed to load run", "error", err)
		http.Error(w, "failed to load predictions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		slog.Error("Failed to encode run", "error", err)
	}
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

type fakeStore struct {
	runs map[string]*models.Run
}

func (f *fakeStore) RunForDate(_ context.Context, date string) (*models.Run, error) {
	run, ok := f.runs[date]
	if !ok {
		return nil, storage.ErrNoRun
	}
	return run, nil
}

func (f *fakeStore) LatestRun(_ context.Context) (*models.Run, error) {
	var latest *models.Run
	for _, run := range f.runs {
		if latest == nil || run.Date > latest.Date {
			latest = run
		}
	}
	if latest == nil {
		return nil, storage.ErrNoRun
	}
	return latest, nil
}

func newTestServer(runs map[string]*models.Run) *httptest.Server {
	srv := NewServer(&fakeStore{runs: runs})
	return httptest.NewServer(srv.Router())
}

func TestPing(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPredictionsByDate(t *testing.T) {
	ts := newTestServer(map[string]*models.Run{
		"2025-06-15": {
			RunID: "run-1",
			Date:  "2025-06-15",
			Categories: models.Categories{
				Locks: []models.Prediction{{Player: "Aaron Judge", HRProbability: 0.12}},
			},
		},
	})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/predictions/2025-06-15")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var run models.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.RunID != "run-1" || len(run.Categories.Locks) != 1 {
		t.Errorf("unexpected run: %+v", run)
	}
}

func TestPredictionsNotFound(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/predictions/2025-06-15")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPredictionsBadDateRoute(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/predictions/not-a-date")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for malformed date", resp.StatusCode)
	}
}

func TestLatestRun(t *testing.T) {
	ts := newTestServer(map[string]*models.Run{
		"2025-06-14": {RunID: "old", Date: "2025-06-14"},
		"2025-06-15": {RunID: "new", Date: "2025-06-15"},
	})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/predictions")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var run models.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.RunID != "new" {
		t.Errorf("RunID = %q, want latest", run.RunID)
	}
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// PredictionStore persists prediction runs in PostgreSQL so they can be
// verified against box scores later and served over HTTP.
type PredictionStore struct {
	db *sql.DB
}

// ErrNoRun is returned when no prediction run exists for the requested date.
var ErrNoRun = errors.New("no prediction run for date")

func NewPredictionStore(dsn string) (*PredictionStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &PredictionStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return store, nil
}

func (s *PredictionStore) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS prediction_runs (
			run_id UUID PRIMARY KEY,
			date DATE NOT NULL,
			early_run BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_runs_date ON prediction_runs(date)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			id SERIAL PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES prediction_runs(run_id) ON DELETE CASCADE,
			date DATE NOT NULL,
			person_id INTEGER NOT NULL,
			player TEXT NOT NULL,
			team TEXT NOT NULL,
			opponent TEXT NOT NULL,
			game_id TEXT NOT NULL,
			category TEXT NOT NULL,
			probability DOUBLE PRECISION NOT NULL,
			hit_hr BOOLEAN,
			payload JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_date ON predictions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_run ON predictions(run_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

// StoreRun persists one run. A rerun for the same date replaces the earlier
// rows so each date has exactly one active set of predictions.
func (s *PredictionStore) StoreRun(ctx context.Context, run *models.Run) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prediction_runs WHERE date = $1`, run.Date); err != nil {
		return fmt.Errorf("failed to clear previous run: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO prediction_runs (run_id, date, early_run, created_at) VALUES ($1, $2, $3, $4)`,
		run.RunID, run.Date, run.EarlyRun, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO predictions (run_id, date, person_id, player, team, opponent, game_id, category, probability, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(category string, preds []models.Prediction) error {
		for _, p := range preds {
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to marshal prediction: %w", err)
			}
			if _, err := stmt.ExecContext(ctx,
				run.RunID, run.Date, p.PersonID, p.Player, p.Team, p.Opponent,
				p.GameID, category, p.HRProbability, payload); err != nil {
				return fmt.Errorf("failed to insert prediction: %w", err)
			}
		}
		return nil
	}

	if err := insert(CategoryLock, run.Categories.Locks); err != nil {
		return err
	}
	if err := insert(CategoryHot, run.Categories.HotPicks); err != nil {
		return err
	}
	if err := insert(CategorySleeper, run.Categories.Sleepers); err != nil {
		return err
	}

	return tx.Commit()
}

// Category labels as stored in the predictions table.
const (
	CategoryLock    = "lock"
	CategoryHot     = "hot_pick"
	CategorySleeper = "sleeper"
)

// RunForDate loads the stored run for a date, ErrNoRun if none exists.
func (s *PredictionStore) RunForDate(ctx context.Context, date string) (*models.Run, error) {
	run := &models.Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, to_char(date, 'YYYY-MM-DD'), early_run, created_at
		 FROM prediction_runs WHERE date = $1`, date).
		Scan(&run.RunID, &run.Date, &run.EarlyRun, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRun
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, payload FROM predictions WHERE run_id = $1 ORDER BY probability DESC`,
		run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var payload []byte
		if err := rows.Scan(&category, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		var p models.Prediction
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
		}
		switch category {
		case CategoryLock:
			run.Categories.Locks = append(run.Categories.Locks, p)
		case CategoryHot:
			run.Categories.HotPicks = append(run.Categories.HotPicks, p)
		case CategorySleeper:
			run.Categories.Sleepers = append(run.Categories.Sleepers, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return run, nil
}

// LatestRun loads the most recent stored run.
func (s *PredictionStore) LatestRun(ctx context.Context) (*models.Run, error) {
	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD') FROM prediction_runs ORDER BY date DESC LIMIT 1`).
		Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRun
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return s.RunForDate(ctx, date)
}

// UnverifiedDates lists past dates whose predictions still have no result.
func (s *PredictionStore) UnverifiedDates(ctx context.Context, before string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT to_char(date, 'YYYY-MM-DD') FROM predictions
		 WHERE hit_hr IS NULL AND date < $1 ORDER BY 1`, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query unverified dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// StoredPrediction is the verification view of one predicted batter.
type StoredPrediction struct {
	PersonID int
	Player   string
	GameID   string
	Category string
}

// PredictionsForDate lists the predicted batters for one date.
func (s *PredictionStore) PredictionsForDate(ctx context.Context, date string) ([]StoredPrediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, player, game_id, category FROM predictions WHERE date = $1`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var preds []StoredPrediction
	for rows.Next() {
		var p StoredPrediction
		if err := rows.Scan(&p.PersonID, &p.Player, &p.GameID, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

// MarkResults records, for every prediction on a date, whether the batter
// homered. Batters absent from hitters are marked as misses.
func (s *PredictionStore) MarkResults(ctx context.Context, date string, hitters map[int]bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE predictions SET hit_hr = FALSE WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to mark misses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE predictions SET hit_hr = TRUE WHERE date = $1 AND person_id = $2`)
	if err != nil {
		return fmt.Errorf("failed to prepare update: %w", err)
	}
	defer stmt.Close()

	for personID, hit := range hitters {
		if !hit {
			continue
		}
		if _, err := stmt.ExecContext(ctx, date, personID); err != nil {
			return fmt.Errorf("failed to mark hit: %w", err)
		}
	}

	return tx.Commit()
}

// AccuracyRow is the hit rate for one prediction category.
type AccuracyRow struct {
	Category string
	Total    int
	Hits     int
}

// Rate returns hits/total, zero for an empty row.
func (r AccuracyRow) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Total)
}

// Accuracy aggregates verified predictions between two dates, inclusive.
// Rows are keyed by category; unverified predictions are excluded.
func (s *PredictionStore) Accuracy(ctx context.Context, from, to string) ([]AccuracyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*), COUNT(*) FILTER (WHERE hit_hr)
		 FROM predictions
		 WHERE hit_hr IS NOT NULL AND date BETWEEN $1 AND $2
		 GROUP BY category ORDER BY category`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query accuracy: %w", err)
	}
	defer rows.Close()

	var out []AccuracyRow
	for rows.Next() {
		var r AccuracyRow
		if err := rows.Scan(&r.Category, &r.Total, &r.Hits); err != nil {
			return nil, fmt.Errorf("failed to scan accuracy row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// VerifiedPrediction is one row of historical input for calibration runs.
type VerifiedPrediction struct {
	Date        string
	Category    string
	Probability float64
	HitHR       bool
}

// VerifiedBetween loads verified predictions for backtesting.
func (s *PredictionStore) VerifiedBetween(ctx context.Context, from, to string) ([]VerifiedPrediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), category, probability, hit_hr
		 FROM predictions
		 WHERE hit_hr IS NOT NULL AND date BETWEEN $1 AND $2
		 ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query verified predictions: %w", err)
	}
	defer rows.Close()

	var out []VerifiedPrediction
	for rows.Next() {
		var v VerifiedPrediction
		if err := rows.Scan(&v.Date, &v.Category, &v.Probability, &v.HitHR); err != nil {
			return nil, fmt.Errorf("failed to scan verified prediction: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PredictionStore) Close() error {
	return s.db.Close()
}

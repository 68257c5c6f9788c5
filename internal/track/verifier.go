// Package track verifies stored predictions against final boxscores and
// reports prediction accuracy over time.
package track

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dingerbot/dingerbot/internal/fetch/mlb"
	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

// ResultsSource is the slice of the MLB client the verifier needs.
type ResultsSource interface {
	Schedule(ctx context.Context, date string) ([]mlb.ScheduledGame, error)
	HomeRunHitters(ctx context.Context, gamePk int) (map[int]string, error)
}

// Store is the slice of the prediction store the verifier needs.
type Store interface {
	UnverifiedDates(ctx context.Context, before string) ([]string, error)
	PredictionsForDate(ctx context.Context, date string) ([]storage.StoredPrediction, error)
	MarkResults(ctx context.Context, date string, hitters map[int]bool) error
	Accuracy(ctx context.Context, from, to string) ([]storage.AccuracyRow, error)
}

type Verifier struct {
	api   ResultsSource
	store Store
}

func NewVerifier(api ResultsSource, store Store) *Verifier {
	return &Verifier{api: api, store: store}
}

// VerifyDate marks every prediction for one date as a hit or miss based on
// the final boxscores. Returns how many predicted batters homered.
func (v *Verifier) VerifyDate(ctx context.Context, date string) (int, error) {
	preds, err := v.store.PredictionsForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("load predictions for %s: %w", date, err)
	}
	if len(preds) == 0 {
		return 0, fmt.Errorf("no predictions stored for %s", date)
	}

	games, err := v.api.Schedule(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("fetch schedule for %s: %w", date, err)
	}

	hitters := make(map[int]bool)
	for _, g := range games {
		hrs, err := v.api.HomeRunHitters(ctx, g.Game.GamePk)
		if err != nil {
			slog.Warn("Boxscore fetch failed", "game", g.Game.ID, "error", err)
			continue
		}
		for personID := range hrs {
			hitters[personID] = true
		}
	}

	if err := v.store.MarkResults(ctx, date, hitters); err != nil {
		return 0, fmt.Errorf("mark results for %s: %w", date, err)
	}

	hits := 0
	for _, p := range preds {
		if hitters[p.PersonID] {
			hits++
		}
	}
	slog.Info("Predictions verified", "date", date,
		"predictions", len(preds), "hits", hits, "hr_hitters", len(hitters))
	return hits, nil
}

// VerifyPending verifies every stored date before the cutoff that still has
// unverified predictions. Failures on one date do not stop the others.
func (v *Verifier) VerifyPending(ctx context.Context, before string) error {
	dates, err := v.store.UnverifiedDates(ctx, before)
	if err != nil {
		return fmt.Errorf("list unverified dates: %w", err)
	}
	if len(dates) == 0 {
		slog.Info("No unverified predictions")
		return nil
	}

	var firstErr error
	for _, date := range dates {
		if _, err := v.VerifyDate(ctx, date); err != nil {
			slog.Error("Verification failed", "date", date, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// AccuracyReport renders the verified hit rates between two dates as a
// human-readable report.
func (v *Verifier) AccuracyReport(ctx context.Context, from, to string) (string, error) {
	rows, err := v.store.Accuracy(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("load accuracy: %w", err)
	}

	var b strings.Builder
	b.WriteString("📊 HOME RUN PREDICTION ACCURACY REPORT 📊\n\n")
	fmt.Fprintf(&b, "Period: %s to %s\n\n", from, to)

	total, hits := 0, 0
	for _, r := range rows {
		total += r.Total
		hits += r.Hits
	}
	overall := 0.0
	if total > 0 {
		overall = float64(hits) / float64(total)
	}
	fmt.Fprintf(&b, "Overall Accuracy: %.1f%% (%d/%d)\n\n", overall*100, hits, total)

	b.WriteString("Category Breakdown:\n")
	for _, category := range []string{storage.CategoryLock, storage.CategoryHot, storage.CategorySleeper} {
		row := findRow(rows, category)
		fmt.Fprintf(&b, "• %s: %.1f%% (%d/%d)\n",
			categoryTitle(category), row.Rate()*100, row.Hits, row.Total)
	}
	return b.String(), nil
}

func findRow(rows []storage.AccuracyRow, category string) storage.AccuracyRow {
	for _, r := range rows {
		if r.Category == category {
			return r
		}
	}
	return storage.AccuracyRow{Category: category}
}

func categoryTitle(category string) string {
	switch category {
	case storage.CategoryLock:
		return "Locks"
	case storage.CategoryHot:
		return "Hot Picks"
	case storage.CategorySleeper:
		return "Sleepers"
	default:
		return category
	}
}

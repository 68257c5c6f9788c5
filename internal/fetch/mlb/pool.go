package mlb

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// FetchAllBatterStats fetches season and recent stats for every batter in
// parallel, bounded by concurrency. Batters whose stats cannot be fetched
// are logged and left out of the result maps; the engine treats absent
// entries as unknown data, never as zeros.
func (c *Client) FetchAllBatterStats(
	ctx context.Context,
	batters []models.Batter,
	hands map[int]PersonHand,
	recentDays, concurrency int,
	now time.Time,
) (map[int]*models.BatterStats, map[int]*models.RecentBatterStats) {
	if concurrency <= 0 {
		concurrency = 4
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, concurrency)
		season = make(map[int]*models.BatterStats, len(batters))
		recent = make(map[int]*models.RecentBatterStats, len(batters))
	)

	for _, b := range batters {
		if b.PersonID == 0 {
			continue
		}
		wg.Add(1)
		go func(b models.Batter) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			bats := models.HandUnknown
			if h, ok := hands[b.PersonID]; ok {
				bats = h.Bats
			}

			s, err := c.BatterSeason(ctx, b.PersonID, b.Name, bats)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("No season stats for batter", "player", b.Name, "person_id", b.PersonID, "error", err)
				}
				return
			}

			if err := c.BatterHomeAway(ctx, s); err != nil && ctx.Err() == nil {
				slog.Warn("No home/away splits for batter", "player", b.Name, "person_id", b.PersonID, "error", err)
			}

			r, err := c.BatterRecent(ctx, b.PersonID, s, recentDays, now)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("No recent stats for batter", "player", b.Name, "person_id", b.PersonID, "error", err)
				}
				r = nil
			}

			mu.Lock()
			season[b.PersonID] = s
			if r != nil {
				recent[b.PersonID] = r
			}
			mu.Unlock()
		}(b)
	}

	wg.Wait()
	return season, recent
}

// FetchAllPitcherStats fetches season stats and the recent workload for
// every announced starter in parallel.
func (c *Client) FetchAllPitcherStats(
	ctx context.Context,
	pitchers []models.Pitcher,
	hands map[int]PersonHand,
	workloadDays, concurrency int,
	now time.Time,
) map[int]*models.PitcherStats {
	if concurrency <= 0 {
		concurrency = 4
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, concurrency)
		result = make(map[int]*models.PitcherStats, len(pitchers))
	)

	for _, p := range pitchers {
		if !p.Announced() || p.PersonID == 0 {
			continue
		}
		wg.Add(1)
		go func(p models.Pitcher) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			throws := models.HandUnknown
			if h, ok := hands[p.PersonID]; ok {
				throws = h.Throws
			}

			s, err := c.PitcherSeason(ctx, p.PersonID, p.Name, throws)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("No season stats for pitcher", "pitcher", p.Name, "person_id", p.PersonID, "error", err)
				}
				return
			}

			if pitches, err := c.PitcherRecentWorkload(ctx, p.PersonID, workloadDays, now); err == nil {
				s.Pitches = pitches
			} else if ctx.Err() == nil {
				slog.Warn("No recent workload for pitcher", "pitcher", p.Name, "person_id", p.PersonID, "error", err)
			}

			mu.Lock()
			result[p.PersonID] = s
			mu.Unlock()
		}(p)
	}

	wg.Wait()
	return result
}

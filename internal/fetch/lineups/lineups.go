// Package lineups resolves the batting orders for a slate. Early runs use
// projected lineups built from rosters; later runs prefer the confirmed
// batting orders posted to the live feed, falling back to projections and,
// as a last resort, scraped expected lineups.
package lineups

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dingerbot/dingerbot/internal/fetch/mlb"
	"github.com/dingerbot/dingerbot/internal/fetch/rotowire"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/names"
)

// MLBSource is the slice of the MLB client the fetcher needs.
type MLBSource interface {
	Roster(ctx context.Context, teamID int) ([]models.Batter, []string, error)
	LiveLineup(ctx context.Context, gamePk int) (models.Lineup, error)
}

// RotoSource scrapes expected lineups. Optional.
type RotoSource interface {
	Fetch(ctx context.Context) ([]rotowire.GameLineups, error)
}

type Fetcher struct {
	api  MLBSource
	roto RotoSource

	rotoOnce  sync.Once
	rotoGames []rotowire.GameLineups
}

// NewFetcher wires a lineup fetcher. roto may be nil to disable scraping.
func NewFetcher(api MLBSource, roto RotoSource) *Fetcher {
	return &Fetcher{api: api, roto: roto}
}

// ForGame resolves both batting orders for one game. earlyRun selects
// projections over confirmed orders. Sides that cannot be resolved at all
// come back empty; the engine skips them rather than inventing batters.
func (f *Fetcher) ForGame(ctx context.Context, game models.Game, earlyRun bool) models.Lineup {
	var lineup models.Lineup

	if !earlyRun {
		live, err := f.api.LiveLineup(ctx, game.GamePk)
		if err != nil {
			slog.Warn("Live lineup fetch failed", "game", game.ID, "error", err)
		} else {
			lineup = live
		}
	}

	if len(lineup.Home) == 0 {
		lineup.Home = f.projected(ctx, game, game.HomeID, game.HomeTeam, true)
	}
	if len(lineup.Away) == 0 {
		lineup.Away = f.projected(ctx, game, game.AwayID, game.AwayTeam, false)
	}

	if reset := lineup.Sanitize(); reset > 0 {
		slog.Warn("Oversized lineup reset", "game", game.ID, "sides_reset", reset)
	}
	return lineup
}

func (f *Fetcher) projected(ctx context.Context, game models.Game, teamID int, teamCode string, home bool) []models.Batter {
	players, codes, err := f.api.Roster(ctx, teamID)
	if err != nil {
		slog.Warn("Roster fetch failed", "game", game.ID, "team", teamCode, "error", err)
		players = nil
	}

	if projected := mlb.ProjectedLineup(players, codes); len(projected) > 0 {
		return projected
	}

	return f.scraped(ctx, game, players, home)
}

// scraped pulls the expected lineup from Rotowire and resolves the scraped
// names back to roster person IDs where possible. Names with no roster
// match keep a zero PersonID and are skipped by the engine.
func (f *Fetcher) scraped(ctx context.Context, game models.Game, roster []models.Batter, home bool) []models.Batter {
	if f.roto == nil {
		return nil
	}

	f.rotoOnce.Do(func() {
		games, err := f.roto.Fetch(ctx)
		if err != nil {
			slog.Warn("Rotowire scrape failed", "error", err)
			return
		}
		f.rotoGames = games
	})

	g, ok := rotowire.Find(f.rotoGames, game.AwayTeam, game.HomeTeam)
	if !ok {
		return nil
	}

	scraped := g.AwayBatters
	if home {
		scraped = g.HomeBatters
	}

	candidates := make([]string, len(roster))
	for i, p := range roster {
		candidates[i] = p.Name
	}

	var batters []models.Batter
	for _, name := range scraped {
		b := models.Batter{Name: name}
		if match := names.Match(name, candidates); match != "" {
			for _, p := range roster {
				if p.Name == match {
					b = p
					break
				}
			}
		}
		batters = append(batters, b)
	}
	if len(batters) > 0 {
		slog.Info("Using scraped expected lineup", "game", game.ID, "home", home, "batters", len(batters))
	}
	return batters
}

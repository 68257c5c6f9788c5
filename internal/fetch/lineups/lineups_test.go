package lineups

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dingerbot/dingerbot/internal/fetch/rotowire"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

type fakeMLB struct {
	live    models.Lineup
	liveErr error
	rosters map[int][]models.Batter
	codes   map[int][]string
}

func (f *fakeMLB) Roster(_ context.Context, teamID int) ([]models.Batter, []string, error) {
	r, ok := f.rosters[teamID]
	if !ok {
		return nil, nil, errors.New("no roster")
	}
	return r, f.codes[teamID], nil
}

func (f *fakeMLB) LiveLineup(_ context.Context, _ int) (models.Lineup, error) {
	return f.live, f.liveErr
}

type fakeRoto struct {
	games []rotowire.GameLineups
	err   error
	calls int
}

func (f *fakeRoto) Fetch(_ context.Context) ([]rotowire.GameLineups, error) {
	f.calls++
	return f.games, f.err
}

func roster(n int, base int) ([]models.Batter, []string) {
	players := make([]models.Batter, n)
	codes := make([]string, n)
	for i := range players {
		players[i] = models.Batter{PersonID: base + i, Name: fmt.Sprintf("Player %d", base+i)}
		codes[i] = "8"
	}
	return players, codes
}

func testGame() models.Game {
	return models.Game{ID: "BOS@NYY-2025-06-15", GamePk: 777001, HomeTeam: "NYY", AwayTeam: "BOS", HomeID: 147, AwayID: 111}
}

func TestForGameEarlyUsesProjection(t *testing.T) {
	homeRoster, homeCodes := roster(12, 1000)
	awayRoster, awayCodes := roster(12, 2000)
	api := &fakeMLB{
		live:    models.Lineup{Home: []models.Batter{{PersonID: 1, Name: "Confirmed"}}},
		rosters: map[int][]models.Batter{147: homeRoster, 111: awayRoster},
		codes:   map[int][]string{147: homeCodes, 111: awayCodes},
	}

	f := NewFetcher(api, nil)
	lineup := f.ForGame(context.Background(), testGame(), true)

	if len(lineup.Home) != 9 || len(lineup.Away) != 9 {
		t.Fatalf("sizes = %d/%d, want 9/9", len(lineup.Home), len(lineup.Away))
	}
	if lineup.Home[0].Name == "Confirmed" {
		t.Error("early run should not consult the live feed")
	}
}

func TestForGameMiddayPrefersConfirmed(t *testing.T) {
	confirmed := make([]models.Batter, 9)
	for i := range confirmed {
		confirmed[i] = models.Batter{PersonID: 100 + i, Name: fmt.Sprintf("Starter %d", i+1)}
	}
	awayRoster, awayCodes := roster(12, 2000)
	api := &fakeMLB{
		live:    models.Lineup{Home: confirmed},
		rosters: map[int][]models.Batter{111: awayRoster},
		codes:   map[int][]string{111: awayCodes},
	}

	f := NewFetcher(api, nil)
	lineup := f.ForGame(context.Background(), testGame(), false)

	if len(lineup.Home) != 9 || lineup.Home[0].Name != "Starter 1" {
		t.Errorf("home lineup should come from live feed: %+v", lineup.Home)
	}
	if len(lineup.Away) != 9 {
		t.Errorf("away side should fall back to projection, got %d", len(lineup.Away))
	}
}

func TestForGameOversizedLineupReset(t *testing.T) {
	big := make([]models.Batter, 20)
	for i := range big {
		big[i] = models.Batter{PersonID: 100 + i}
	}
	api := &fakeMLB{live: models.Lineup{Home: big}}

	f := NewFetcher(api, nil)
	lineup := f.ForGame(context.Background(), testGame(), false)

	if len(lineup.Home) != 0 {
		t.Errorf("oversized home lineup should reset to empty, got %d", len(lineup.Home))
	}
}

func TestForGameRotowireFallback(t *testing.T) {
	judge := models.Batter{PersonID: 592450, Name: "Aaron Judge"}
	api := &fakeMLB{
		liveErr: errors.New("feed down"),
		rosters: map[int][]models.Batter{147: {judge}},
		codes:   map[int][]string{147: {"1"}}, // only a pitcher: projection comes up empty
	}
	roto := &fakeRoto{games: []rotowire.GameLineups{{
		AwayTeam:    "BOS",
		HomeTeam:    "NYY",
		HomeBatters: []string{"Aaron Judge", "Somebody Else"},
	}}}

	f := NewFetcher(api, roto)
	lineup := f.ForGame(context.Background(), testGame(), false)

	if len(lineup.Home) != 2 {
		t.Fatalf("home lineup = %+v, want 2 scraped batters", lineup.Home)
	}
	if lineup.Home[0].PersonID != judge.PersonID {
		t.Errorf("scraped name should resolve to roster person ID, got %+v", lineup.Home[0])
	}
	if lineup.Home[1].PersonID != 0 {
		t.Errorf("unmatched scraped name should keep zero person ID, got %+v", lineup.Home[1])
	}

	f.ForGame(context.Background(), testGame(), false)
	if roto.calls != 1 {
		t.Errorf("scraper called %d times, want once per run", roto.calls)
	}
}

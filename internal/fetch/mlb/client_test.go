package mlb

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/api/v1", 2025, 5*time.Second)
}

func TestSchedule(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schedule" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"dates": [{
				"date": "2025-06-15",
				"games": [{
					"gamePk": 777001,
					"gameDate": "2025-06-15T23:05:00Z",
					"teams": {
						"home": {
							"team": {"id": 147, "name": "New York Yankees"},
							"probablePitcher": {"id": 543037, "fullName": "Gerrit Cole"}
						},
						"away": {
							"team": {"id": 111, "name": "Boston Red Sox"}
						}
					},
					"venue": {"name": "Yankee Stadium"}
				}]
			}]
		}`))
	})

	games, err := c.Schedule(context.Background(), "2025-06-15")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}

	g := games[0]
	if g.Game.HomeTeam != "NYY" || g.Game.AwayTeam != "BOS" {
		t.Errorf("teams = %s vs %s", g.Game.AwayTeam, g.Game.HomeTeam)
	}
	if g.Game.GamePk != 777001 {
		t.Errorf("GamePk = %d", g.Game.GamePk)
	}
	if g.Game.ParkFactor != 1.15 {
		t.Errorf("ParkFactor = %v, want Yankee Stadium 1.15", g.Game.ParkFactor)
	}
	if g.Pitchers.Home.Name != "Gerrit Cole" || g.Pitchers.Home.PersonID != 543037 {
		t.Errorf("home pitcher = %+v", g.Pitchers.Home)
	}
	if g.Pitchers.Away.Name != models.PitcherTBD {
		t.Errorf("away pitcher = %q, want TBD", g.Pitchers.Away.Name)
	}
}

func TestScheduleUnknownTeam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"dates": [{
				"date": "2025-06-15",
				"games": [{
					"gamePk": 777002,
					"gameDate": "2025-06-15T23:05:00Z",
					"teams": {
						"home": {"team": {"id": 999, "name": "Springfield Isotopes"}},
						"away": {"team": {"id": 111, "name": "Boston Red Sox"}}
					},
					"venue": {"name": "Duff Stadium"}
				}]
			}]
		}`))
	})

	games, err := c.Schedule(context.Background(), "2025-06-15")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}

	g := games[0]
	if g.Game.HomeTeam != "" {
		t.Errorf("HomeTeam = %q, want empty for unresolvable name", g.Game.HomeTeam)
	}
	// Unknown venue degrades to a neutral park.
	if g.Game.ParkFactor != 1.0 {
		t.Errorf("ParkFactor = %v, want neutral 1.0", g.Game.ParkFactor)
	}
	if g.Game.AwayTeam != "BOS" {
		t.Errorf("AwayTeam = %q", g.Game.AwayTeam)
	}
}

func TestLiveLineup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.1/game/777001/feed/live" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"liveData": {"boxscore": {"teams": {
				"home": {
					"battingOrder": [592450, 665742],
					"players": {
						"ID592450": {"person": {"id": 592450, "fullName": "Aaron Judge"}},
						"ID665742": {"person": {"id": 665742, "fullName": "Juan Soto"}}
					}
				},
				"away": {"battingOrder": [], "players": {}}
			}}}
		}`))
	})

	lineup, err := c.LiveLineup(context.Background(), 777001)
	if err != nil {
		t.Fatalf("LiveLineup: %v", err)
	}
	if len(lineup.Home) != 2 || lineup.Home[0].Name != "Aaron Judge" {
		t.Errorf("home lineup = %+v", lineup.Home)
	}
	if lineup.Away != nil {
		t.Errorf("away lineup should be nil when no battingOrder posted")
	}
}

func TestHomeRunHitters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"teams": {
				"home": {"players": {
					"ID592450": {
						"person": {"id": 592450, "fullName": "Aaron Judge"},
						"stats": {"batting": {"homeRuns": 2}}
					},
					"ID665742": {
						"person": {"id": 665742, "fullName": "Juan Soto"},
						"stats": {"batting": {"homeRuns": 0}}
					}
				}},
				"away": {"players": {
					"ID660271": {
						"person": {"id": 660271, "fullName": "Shohei Ohtani"},
						"stats": {"batting": {"homeRuns": 1}}
					}
				}}
			}
		}`))
	})

	hitters, err := c.HomeRunHitters(context.Background(), 777001)
	if err != nil {
		t.Fatalf("HomeRunHitters: %v", err)
	}
	if len(hitters) != 2 {
		t.Fatalf("got %d hitters, want 2: %v", len(hitters), hitters)
	}
	if hitters[592450] != "Aaron Judge" || hitters[660271] != "Shohei Ohtani" {
		t.Errorf("hitters = %v", hitters)
	}
}

func TestBatterSeason(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"stats": [{"splits": [{"stat": {
				"gamesPlayed": 70, "homeRuns": 28, "atBats": 260,
				"plateAppearances": 310,
				"avg": ".320", "obp": ".440", "slg": ".690"
			}}]}]
		}`))
	})

	s, err := c.BatterSeason(context.Background(), 592450, "Aaron Judge", models.HandRight)
	if err != nil {
		t.Fatalf("BatterSeason: %v", err)
	}
	if s.HR != 28 || s.Games != 70 {
		t.Errorf("HR=%d Games=%d", s.HR, s.Games)
	}
	if s.SLG != 0.690 {
		t.Errorf("SLG = %v", s.SLG)
	}
	if got, want := s.ISO, 0.690-0.320; math.Abs(got-want) > 1e-9 {
		t.Errorf("ISO = %v, want %v", got, want)
	}
	if s.PullPct != 0.45 {
		t.Errorf("PullPct estimate = %v, want 0.45 for SLG > .500", s.PullPct)
	}
	if s.HasStatcast {
		t.Error("HasStatcast should be false for estimated batted-ball fields")
	}
}

func TestBatterSeasonNoStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stats": []}`))
	})

	if _, err := c.BatterSeason(context.Background(), 1, "Nobody", models.HandUnknown); err == nil {
		t.Fatal("expected error when no stats exist")
	}
}

func TestBatterHomeAway(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sitCodes") != "h,a" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"stats": [{
				"splits": [
					{"split": {"code": "h"}, "stat": {"plateAppearances": 180, "homeRuns": 14}},
					{"split": {"code": "a"}, "stat": {"plateAppearances": 170, "homeRuns": 6}}
				]
			}]
		}`))
	})

	s := &models.BatterStats{PersonID: 592450, PA: 350, HR: 20}
	s.HRPerPA = float64(s.HR) / float64(s.PA)

	if err := c.BatterHomeAway(context.Background(), s); err != nil {
		t.Fatalf("BatterHomeAway: %v", err)
	}
	if !s.HasSplits {
		t.Fatal("splits should be known with full samples on both sides")
	}
	// Home rate 14/180 vs overall 20/350: ~1.36, capped at 1.3.
	if s.HomeFactor != 1.3 {
		t.Errorf("HomeFactor = %v, want capped 1.3", s.HomeFactor)
	}
	if s.RoadFactor >= 1.0 || s.RoadFactor < 0.7 {
		t.Errorf("RoadFactor = %v, want suppressed within bounds", s.RoadFactor)
	}
}

func TestBatterHomeAwayThinSample(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"stats": [{
				"splits": [
					{"split": {"code": "h"}, "stat": {"plateAppearances": 20, "homeRuns": 3}},
					{"split": {"code": "a"}, "stat": {"plateAppearances": 200, "homeRuns": 5}}
				]
			}]
		}`))
	})

	s := &models.BatterStats{PersonID: 592450, PA: 220, HR: 8, HRPerPA: 8.0 / 220}
	if err := c.BatterHomeAway(context.Background(), s); err != nil {
		t.Fatalf("BatterHomeAway: %v", err)
	}
	if s.HasSplits {
		t.Error("a 20 PA home sample should leave the split unknown")
	}
}

func TestFillStreak(t *testing.T) {
	season := &models.BatterStats{HRPerPA: 0.05}

	tests := []struct {
		name      string
		recent    models.RecentBatterStats
		wantRatio float64
		wantKnown bool
	}{
		{
			name:      "hot streak capped",
			recent:    models.RecentBatterStats{Games: 6, HRPerPA: 0.10},
			wantRatio: 1.5,
			wantKnown: true,
		},
		{
			name:      "cold streak floored",
			recent:    models.RecentBatterStats{Games: 6, HRPerPA: 0.01},
			wantRatio: 0.6,
			wantKnown: true,
		},
		{
			name:      "steady stays neutral",
			recent:    models.RecentBatterStats{Games: 6, HRPerPA: 0.05},
			wantRatio: 1.0,
			wantKnown: true,
		},
		{
			name:      "no recent HR rate is unknown",
			recent:    models.RecentBatterStats{Games: 6},
			wantRatio: 1.0,
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.recent
			fillStreak(&r, season)
			if r.StreakRatio != tt.wantRatio {
				t.Errorf("StreakRatio = %v, want %v", r.StreakRatio, tt.wantRatio)
			}
			if r.StreakKnown != tt.wantKnown {
				t.Errorf("StreakKnown = %v, want %v", r.StreakKnown, tt.wantKnown)
			}
		})
	}
}

func TestProjectedLineup(t *testing.T) {
	players := make([]models.Batter, 0, 12)
	codes := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		players = append(players, models.Batter{PersonID: 1000 + i})
		switch i {
		case 0, 5:
			codes = append(codes, "1") // pitchers
		case 7:
			codes = append(codes, "10")
		default:
			codes = append(codes, "8")
		}
	}

	lineup := ProjectedLineup(players, codes)
	if len(lineup) != 9 {
		t.Fatalf("lineup size = %d, want 9", len(lineup))
	}
	for _, b := range lineup {
		if b.PersonID == 1000 || b.PersonID == 1005 || b.PersonID == 1007 {
			t.Errorf("pitcher %d in projected lineup", b.PersonID)
		}
	}
}

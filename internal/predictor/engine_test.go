package predictor

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// neutralBatter has every factor at its neutral point, so the weighted sum
// collapses to zero and the probability equals the league base rate.
func neutralBatter() models.BatterStats {
	return models.BatterStats{
		PersonID: 660271,
		Name:     "Neutral Guy",
		Bats:     models.HandUnknown,
		AVG:      0.300,
		OBP:      0.51 / 1.8,
		SLG:      0.450,
		ISO:      0.150,
	}
}

func neutralGame() GameData {
	return GameData{
		Game: models.Game{
			ID:         "AWY@HOM-2025-06-15",
			HomeTeam:   "XXX", // not a real park: no park-specific adjustment
			AwayTeam:   "YYY",
			Venue:      "Test Park",
			ParkFactor: 1.0,
			StartTime:  time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC),
		},
		Lineup: models.Lineup{
			Home: []models.Batter{{PersonID: 660271, Name: "Neutral Guy"}},
		},
		Pitchers: models.ProbablePitchers{
			Away: models.Pitcher{Name: models.PitcherTBD},
			Home: models.Pitcher{Name: models.PitcherTBD},
		},
		Weather: models.Weather{TempF: 70, Humidity: 50, Source: models.WeatherFromAPI},
	}
}

func TestPredictNeutralBatterScoresBaseRate(t *testing.T) {
	idx := &StatsIndex{
		Batters:  map[int]models.BatterStats{660271: neutralBatter()},
		Recent:   map[int]models.RecentBatterStats{},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{neutralGame()}, idx)
	if len(preds) != 1 {
		t.Fatalf("predictions = %d, want 1", len(preds))
	}
	if math.Abs(preds[0].HRProbability-0.03) > 1e-9 {
		t.Errorf("neutral probability = %v, want 0.03", preds[0].HRProbability)
	}
}

func TestPredictCountsUnknownFactors(t *testing.T) {
	idx := &StatsIndex{
		Batters:  map[int]models.BatterStats{660271: neutralBatter()},
		Recent:   map[int]models.RecentBatterStats{},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{neutralGame()}, idx)
	// Everything except weather is missing for this batter: platoon,
	// streak, pitch matchup, workload, matchup history, splits, GB/FB,
	// both recent statcast factors, distance, pitch-specific, spray,
	// zone and form trend.
	if preds[0].UnknownFactors != 14 {
		t.Errorf("unknown factors = %d, want 14", preds[0].UnknownFactors)
	}
}

func TestPredictProbabilityClamped(t *testing.T) {
	slugger := neutralBatter()
	slugger.HRPerPA = 0.15
	slugger.SLG = 0.700
	slugger.ISO = 0.350
	slugger.BarrelPct = 0.25
	slugger.ExitVelo = 96
	slugger.HasStatcast = true
	slugger.HardHitPct = 0.55
	slugger.LaunchAngle = 29

	idx := &StatsIndex{
		Batters: map[int]models.BatterStats{660271: slugger},
		Recent: map[int]models.RecentBatterStats{
			// Absurd recent rate, e.g. from a one-PA sample: the cap has
			// to hold no matter what the inputs do.
			660271: {HRPerPA: 99, BarrelPct: 0.30, ExitVelo: 97, HasStatcast: true,
				StreakRatio: 2.0, StreakGames: 6, StreakKnown: true},
		},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{neutralGame()}, idx)
	if got := preds[0].HRProbability; got != 0.25 {
		t.Errorf("probability = %v, want clamped to 0.25", got)
	}
}

func TestPredictFloorsProbability(t *testing.T) {
	cold := neutralBatter()
	cold.ISO = 0
	cold.SLG = 0.200
	cold.OBP = 0.200

	idx := &StatsIndex{
		Batters: map[int]models.BatterStats{660271: cold},
		Recent: map[int]models.RecentBatterStats{
			660271: {StreakRatio: 0.1, StreakGames: 6, StreakKnown: true},
		},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{neutralGame()}, idx)
	if got := preds[0].HRProbability; got < 0.01 {
		t.Errorf("probability %v below 0.01 floor", got)
	}
}

func TestSkipBatter(t *testing.T) {
	tests := []struct {
		name   string
		batter models.Batter
		skip   bool
	}{
		{"real batter", models.Batter{PersonID: 1, Name: "Aaron Judge"}, false},
		{"zero person id", models.Batter{Name: "Aaron Judge"}, true},
		{"placeholder", models.Batter{PersonID: 1, Name: "NYY Batter 1"}, true},
		{"tbd", models.Batter{PersonID: 1, Name: "TBD Hitter"}, true},
		{"unknown", models.Batter{PersonID: 1, Name: "Unknown Player"}, true},
		{"single token", models.Batter{PersonID: 1, Name: "Judge"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skipBatter(tt.batter); got != tt.skip {
				t.Errorf("skipBatter(%q) = %v, want %v", tt.batter.Name, got, tt.skip)
			}
		})
	}
}

func TestPredictSortsByProbability(t *testing.T) {
	weak := neutralBatter()
	strong := neutralBatter()
	strong.PersonID = 592450
	strong.Name = "Big Bopper"
	strong.HRPerPA = 0.08
	strong.SLG = 0.600
	strong.ISO = 0.310

	gd := neutralGame()
	gd.Lineup.Home = []models.Batter{
		{PersonID: 660271, Name: "Neutral Guy"},
		{PersonID: 592450, Name: "Big Bopper"},
	}

	idx := &StatsIndex{
		Batters: map[int]models.BatterStats{
			660271: weak,
			592450: strong,
		},
		Recent:   map[int]models.RecentBatterStats{},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{gd}, idx)
	if len(preds) != 2 {
		t.Fatalf("predictions = %d, want 2", len(preds))
	}
	if preds[0].Player != "Big Bopper" {
		t.Errorf("first prediction = %s, want the stronger batter", preds[0].Player)
	}
	if !strings.HasPrefix(preds[0].GameTime, "2025-06-15") {
		t.Errorf("game time = %q", preds[0].GameTime)
	}
}

func TestPredictUnannouncedPitcherIsTBD(t *testing.T) {
	idx := &StatsIndex{
		Batters:  map[int]models.BatterStats{660271: neutralBatter()},
		Recent:   map[int]models.RecentBatterStats{},
		Pitchers: map[int]models.PitcherStats{},
	}

	preds := NewEngine(nil).Predict([]GameData{neutralGame()}, idx)
	if preds[0].Pitcher != models.PitcherTBD {
		t.Errorf("pitcher = %q, want TBD", preds[0].Pitcher)
	}
	if preds[0].PitcherThrows != models.HandUnknown {
		t.Errorf("throws = %q, want Unknown", preds[0].PitcherThrows)
	}
}

// Package predictor turns the day's games, lineups, stats and weather into
// per-batter home run probabilities and the tiered pick report.
package predictor

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/ballparks"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// StatsIndex holds every fetched stat, keyed by MLB person ID.
type StatsIndex struct {
	Batters  map[int]models.BatterStats
	Recent   map[int]models.RecentBatterStats
	Pitchers map[int]models.PitcherStats
}

// GameData is everything the engine needs about one game.
type GameData struct {
	Game     models.Game
	Lineup   models.Lineup
	Pitchers models.ProbablePitchers
	Weather  models.Weather
}

// Engine scores batters with a weighted factor model.
type Engine struct {
	weights Weights
}

// NewEngine builds an engine; a nil table selects the default weights.
func NewEngine(w Weights) *Engine {
	if w == nil {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Base league-average HR probability per plate appearance, and the bounds
// any single prediction is held to.
const (
	baseHRRate = 0.03
	minHRProb  = 0.01
	maxHRProb  = 0.25
)

// Predict scores every batter in every lineup and returns the predictions
// sorted by probability, highest first. Batters with no usable identity or
// stats are skipped rather than scored on invented numbers.
func (e *Engine) Predict(games []GameData, idx *StatsIndex) []models.Prediction {
	var predictions []models.Prediction

	for _, gd := range games {
		if len(gd.Lineup.Home) == 0 && len(gd.Lineup.Away) == 0 {
			slog.Warn("No lineups for game, skipping", "game", gd.Game.ID)
			continue
		}
		predictions = append(predictions,
			e.processTeam(gd, gd.Lineup.Home, gd.Pitchers.Away, true, idx)...)
		predictions = append(predictions,
			e.processTeam(gd, gd.Lineup.Away, gd.Pitchers.Home, false, idx)...)
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].HRProbability != predictions[j].HRProbability {
			return predictions[i].HRProbability > predictions[j].HRProbability
		}
		return predictions[i].Player < predictions[j].Player
	})
	return predictions
}

// skipBatter filters out entries that are not a real, identified batter:
// placeholder names from sparse feeds, single-token names, and batters the
// stats fetch could not key.
func skipBatter(b models.Batter) bool {
	if b.PersonID == 0 {
		return true
	}
	lower := strings.ToLower(b.Name)
	for _, marker := range []string{"player", "batter", "tbd", "unknown"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return len(strings.Fields(b.Name)) < 2
}

func (e *Engine) processTeam(gd GameData, batters []models.Batter, opponent models.Pitcher, isHome bool, idx *StatsIndex) []models.Prediction {
	game := gd.Game
	team, teamName := game.HomeTeam, game.HomeName
	oppTeam, oppName := game.AwayTeam, game.AwayName
	if !isHome {
		team, teamName = game.AwayTeam, game.AwayName
		oppTeam, oppName = game.HomeTeam, game.HomeName
	}

	var pitcherStats *models.PitcherStats
	pitcherID := 0
	if opponent.Announced() {
		pitcherID = opponent.PersonID
		if ps, ok := idx.Pitchers[opponent.PersonID]; ok {
			pitcherStats = &ps
		}
	}

	var out []models.Prediction
	for _, batter := range batters {
		if skipBatter(batter) {
			slog.Debug("Skipping batter", "name", batter.Name, "game", game.ID)
			continue
		}
		stats, ok := idx.Batters[batter.PersonID]
		if !ok {
			slog.Debug("No stats for batter", "name", batter.Name, "game", game.ID)
			continue
		}
		recent := idx.Recent[batter.PersonID]

		p := e.score(game, gd.Weather, stats, recent, pitcherStats, pitcherID, isHome)
		p.Team, p.TeamName = team, teamName
		p.Opponent, p.OpponentName = oppTeam, oppName
		p.Pitcher = opponent.Name
		if !opponent.Announced() {
			p.Pitcher = models.PitcherTBD
		}
		out = append(out, p)
	}
	return out
}

// score runs the weighted factor model for one batter against one starter.
func (e *Engine) score(game models.Game, weather models.Weather, b models.BatterStats, recent models.RecentBatterStats, ps *models.PitcherStats, pitcherID int, isHome bool) models.Prediction {
	w := e.weights

	pitcherHRRate := 0.0
	pitcherGBFB := 1.0
	pitcherThrows := models.HandUnknown
	if ps != nil {
		pitcherHRRate = ps.HRPer9 / 9
		pitcherThrows = ps.Throws
		if ps.HasBattedBall {
			pitcherGBFB = ps.GBFBRatio
		}
	}

	platoon := platoonFactor(b, pitcherThrows)
	wf := weatherFactor(weather, game.ParkOrient)
	streak := streakFactor(recent)
	matchup := pitchMatchupFactor(b, ps)
	workload := workloadFactor(ps)
	bvp := batterVsPitcherFactor(b.PersonID, pitcherID)
	homeAway := homeAwayFactor(b, isHome)
	gbfb := gbfbFactor(ps)
	l15Barrel := recentBarrelFactor(recent)
	l15EV := recentEVFactor(recent)
	hardHitDist := hardHitDistanceFactor(b)
	pitchSpecific := pitchSpecificFactor(b, ps)
	spray := sprayFactor(b, game.HomeTeam)
	zone := zoneContactFactor(b, ps)
	formTrend := formTrendFactor(b)

	xISO := estimateXISO(b)
	xWOBA := estimateXWOBA(b)
	xISOFactor := 1.0 + (xISO-0.150)*4
	xWOBAFactor := 1.0 + (xWOBA-0.320)*2

	parkSpecific := 1.0
	if park, ok := ballparks.ByCode(game.HomeTeam); ok {
		parkSpecific = parkSpecificFactor(park, b, xISO)
	}

	laFactor := launchAngleFactor(b.LaunchAngle)

	sum := w["recent_hr_rate"]*recent.HRPerPA +
		w["season_hr_rate"]*b.HRPerPA +
		w["ballpark_factor"]*(game.ParkFactor-1) +
		w["pitcher_hr_allowed"]*pitcherHRRate +
		w["weather_factor"]*(wf.Value-1) +
		w["barrel_pct"]*b.BarrelPct +
		w["platoon_advantage"]*(platoon.Value-1) +
		w["exit_velocity"]*(b.ExitVelo/100) +
		w["fly_ball_rate"]*b.FlyBallPct +
		w["pull_pct"]*b.PullPct +
		w["hard_hit_pct"]*b.HardHitPct +
		w["launch_angle"]*(laFactor-1) +
		w["pitcher_gb_fb_ratio"]*(gbfb.Value-1) +
		w["hr_fb_ratio"]*b.HRFBRatio +
		w["vs_pitch_type"]*(matchup.Value-1) +
		w["pitcher_workload"]*(workload.Value-1) +
		w["batter_vs_pitcher"]*(bvp.Value-1) +
		w["home_away_split"]*(homeAway.Value-1) +
		w["hot_cold_streak"]*(streak.Value-1) +
		w["xISO"]*(xISOFactor-1) +
		w["xwOBA"]*(xWOBAFactor-1) +
		w["slg_factor"]*(slgFactor(b.SLG)-1) +
		w["iso_factor"]*(isoFactor(b.ISO)-1) +
		w["l15_barrel_factor"]*(l15Barrel.Value-1) +
		w["l15_ev_factor"]*(l15EV.Value-1) +
		w["barrel_rate_factor"]*(seasonBarrelFactor(b.BarrelPct)-1) +
		w["exit_velo_factor"]*(seasonEVFactor(b.ExitVelo)-1) +
		w["hr_pct_factor"]*(hrPctFactor(b.HRPerPA)-1) +
		w["hard_hit_distance"]*(hardHitDist.Value-1) +
		w["pitch_specific"]*(pitchSpecific.Value-1) +
		w["spray_angle"]*(spray.Value-1) +
		w["zone_contact"]*(zone.Value-1) +
		w["park_specific"]*(parkSpecific-1) +
		w["form_trend"]*(formTrend.Value-1)

	prob := clamp(baseHRRate*(1+sum), minHRProb, maxHRProb)

	unknown := 0
	for _, f := range []Factor{
		platoon, wf, streak, matchup, workload, bvp, homeAway, gbfb,
		l15Barrel, l15EV, hardHitDist, pitchSpecific, spray, zone, formTrend,
	} {
		if !f.Known {
			unknown++
		}
	}

	return models.Prediction{
		PersonID:      b.PersonID,
		Player:        b.Name,
		PitcherThrows: pitcherThrows,
		Bats:          b.Bats,
		Ballpark:      game.Venue,
		GameID:        game.ID,
		GameTime:      game.StartTime.UTC().Format(time.RFC3339),
		IsHome:        isHome,

		HRProbability: prob,

		ParkFactor:       game.ParkFactor,
		WeatherTemp:      weather.TempF,
		WeatherWind:      weather.WindSpeed,
		WeatherFactor:    wf.Value,
		PlatoonAdvantage: platoon.Value > 1,
		RecentHRRate:     recent.HRPerPA,
		SeasonHRRate:     b.HRPerPA,
		PitcherHRRate:    pitcherHRRate,
		SeasonHR:         b.HR,
		SeasonGames:      b.Games,
		BarrelPct:        b.BarrelPct,
		ExitVelo:         b.ExitVelo,
		LaunchAngle:      b.LaunchAngle,
		PullPct:          b.PullPct,
		HardHitPct:       b.HardHitPct,
		HRFBRatio:        b.HRFBRatio,
		PitcherGBFB:      pitcherGBFB,
		PitchTypeMatchup: matchup.Value,
		PitcherWorkload:  workload.Value,
		BatterVsPitcher:  bvp.Value,
		StreakFactor:     streak.Value,
		XISO:             xISO,
		XWOBA:            xWOBA,

		UnknownFactors: unknown,
	}
}

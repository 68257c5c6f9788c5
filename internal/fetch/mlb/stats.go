package mlb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

type peopleResponse struct {
	People []struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
		BatSide  struct {
			Code string `json:"code"`
		} `json:"batSide"`
		PitchHand struct {
			Code string `json:"code"`
		} `json:"pitchHand"`
	} `json:"people"`
}

// PersonHand holds the handedness of one player.
type PersonHand struct {
	Bats   string
	Throws string
}

// Hands fetches bat side and pitch hand for a set of person IDs in one call.
// Missing or unlisted players map to HandUnknown.
func (c *Client) Hands(ctx context.Context, personIDs []int) (map[int]PersonHand, error) {
	hands := make(map[int]PersonHand, len(personIDs))
	if len(personIDs) == 0 {
		return hands, nil
	}

	ids := make([]string, len(personIDs))
	for i, id := range personIDs {
		ids[i] = strconv.Itoa(id)
	}

	var resp peopleResponse
	params := url.Values{"personIds": {strings.Join(ids, ",")}}
	if err := c.getJSON(ctx, "/people", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch people: %w", err)
	}

	for _, p := range resp.People {
		hands[p.ID] = PersonHand{
			Bats:   handCode(p.BatSide.Code, true),
			Throws: handCode(p.PitchHand.Code, false),
		}
	}
	for _, id := range personIDs {
		if _, ok := hands[id]; !ok {
			hands[id] = PersonHand{Bats: models.HandUnknown, Throws: models.HandUnknown}
		}
	}
	return hands, nil
}

func handCode(code string, allowSwitch bool) string {
	switch code {
	case "R":
		return models.HandRight
	case "L":
		return models.HandLeft
	case "S":
		if allowSwitch {
			return models.HandSwitch
		}
	}
	return models.HandUnknown
}

type statsResponse struct {
	Stats []struct {
		Splits []struct {
			Date  string `json:"date"`
			Split struct {
				Code string `json:"code"`
			} `json:"split"`
			Stat map[string]any `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

func (c *Client) playerStats(ctx context.Context, personID int, group, statType string) (*statsResponse, error) {
	var resp statsResponse
	params := url.Values{
		"stats":  {statType},
		"group":  {group},
		"season": {strconv.Itoa(c.season)},
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/people/%d/stats", personID), params, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s %s stats for %d: %w", group, statType, personID, err)
	}
	return &resp, nil
}

// BatterSeason fetches season hitting stats. Statcast-derived fields are
// filled with deterministic estimates from the traditional line and flagged
// HasStatcast == false; the Savant aggregation overwrites them when the
// batter has enough tracked batted balls.
func (c *Client) BatterSeason(ctx context.Context, personID int, name, bats string) (*models.BatterStats, error) {
	resp, err := c.playerStats(ctx, personID, "hitting", "season")
	if err != nil {
		return nil, err
	}

	stat := firstSplit(resp)
	if stat == nil {
		return nil, fmt.Errorf("no season hitting stats for %s (%d)", name, personID)
	}

	s := &models.BatterStats{
		PersonID: personID,
		Name:     name,
		Bats:     bats,
		Games:    statInt(stat, "gamesPlayed"),
		HR:       statInt(stat, "homeRuns"),
		AB:       statInt(stat, "atBats"),
		PA:       statInt(stat, "plateAppearances"),
		AVG:      statFloat(stat, "avg"),
		OBP:      statFloat(stat, "obp"),
		SLG:      statFloat(stat, "slg"),
	}
	s.ISO = s.SLG - s.AVG
	if s.Games > 0 {
		s.HRPerGame = float64(s.HR) / float64(s.Games)
	}
	if s.PA > 0 {
		s.HRPerPA = float64(s.HR) / float64(s.PA)
	}

	fillBattedBallEstimates(s)
	return s, nil
}

// fillBattedBallEstimates derives batted-ball profile numbers from the
// traditional line. Power hitters pull more and lift more; hard-hit rate
// tracks slugging. These stand in until real Statcast data replaces them.
func fillBattedBallEstimates(s *models.BatterStats) {
	s.PullPct = 0.40
	if s.SLG > 0.500 {
		s.PullPct = 0.45
	}
	s.FlyBallPct = 0.35
	if s.HRPerPA > 0.04 {
		s.FlyBallPct = 0.42
	}
	s.HardHitPct = s.SLG
	if s.HardHitPct > 0.50 {
		s.HardHitPct = 0.50
	}
	s.HRFBRatio = 0.12
	if s.HR > 0 {
		if estFB := float64(s.AB) * s.FlyBallPct; estFB > 0 {
			s.HRFBRatio = float64(s.HR) / estFB
			if s.HRFBRatio > 0.30 {
				s.HRFBRatio = 0.30
			}
		}
	}
	s.BarrelPct = s.HardHitPct * s.FlyBallPct * 0.5
	s.ExitVelo = 85 + s.HardHitPct*10
	s.LaunchAngle = 10 + s.FlyBallPct*20
}

// minSplitPA is the smallest half-season sample a home/away split is
// trusted at.
const minSplitPA = 40

// BatterHomeAway fetches the home/away hitting splits and fills the
// side multipliers against the batter's overall HR rate. Thin samples on
// either side leave the split unknown.
func (c *Client) BatterHomeAway(ctx context.Context, s *models.BatterStats) error {
	if s.HRPerPA <= 0 {
		return nil
	}

	var resp statsResponse
	params := url.Values{
		"stats":    {"statSplits"},
		"group":    {"hitting"},
		"season":   {strconv.Itoa(c.season)},
		"sitCodes": {"h,a"},
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/people/%d/stats", s.PersonID), params, &resp); err != nil {
		return fmt.Errorf("fetch home/away splits for %d: %w", s.PersonID, err)
	}

	home, road := 0.0, 0.0
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			pa := statInt(split.Stat, "plateAppearances")
			if pa < minSplitPA {
				continue
			}
			rate := float64(statInt(split.Stat, "homeRuns")) / float64(pa)
			factor := rate / s.HRPerPA
			if factor < 0.7 {
				factor = 0.7
			}
			if factor > 1.3 {
				factor = 1.3
			}
			switch split.Split.Code {
			case "h":
				home = factor
			case "a":
				road = factor
			}
		}
	}

	if home == 0 || road == 0 {
		return nil
	}
	s.HomeFactor, s.RoadFactor, s.HasSplits = home, road, true
	return nil
}

// BatterRecent fetches the hitting game log and aggregates the last `days`
// days into the short window, including the hot/cold streak comparison
// against the season rate.
func (c *Client) BatterRecent(ctx context.Context, personID int, season *models.BatterStats, days int, now time.Time) (*models.RecentBatterStats, error) {
	resp, err := c.playerStats(ctx, personID, "hitting", "gameLog")
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -days).Format("2006-01-02")
	recent := &models.RecentBatterStats{}
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			if split.Date < cutoff {
				continue
			}
			recent.Games++
			recent.HR += statInt(split.Stat, "homeRuns")
			recent.PA += statInt(split.Stat, "plateAppearances")
		}
	}

	if recent.Games > 0 {
		recent.HRPerGame = float64(recent.HR) / float64(recent.Games)
	}
	if recent.PA > 0 {
		recent.HRPerPA = float64(recent.HR) / float64(recent.PA)
	}

	// The short-window contact quality carries over from the season view
	// until Savant data replaces it.
	if season != nil {
		recent.BarrelPct = season.BarrelPct
		recent.ExitVelo = season.ExitVelo
	}

	fillStreak(recent, season)
	return recent, nil
}

// fillStreak compares the recent HR rate against the season rate. A ratio
// above 1.2 is a hot streak, below 0.8 a cold one; in between the batter is
// treated as steady. Unknown when either window is empty, including a recent
// window with zero home runs: over a handful of games a zero rate is noise,
// not evidence of a cold streak, so it carries no signal.
func fillStreak(recent *models.RecentBatterStats, season *models.BatterStats) {
	recent.StreakRatio = 1.0
	if season == nil || season.HRPerPA <= 0 || recent.HRPerPA <= 0 {
		return
	}

	recent.StreakKnown = true
	ratio := recent.HRPerPA / season.HRPerPA
	switch {
	case ratio > 1.2:
		recent.StreakRatio = 1.0 + (ratio - 1.0)
		if recent.StreakRatio > 1.5 {
			recent.StreakRatio = 1.5
		}
		recent.StreakGames = recent.Games
	case ratio < 0.8:
		recent.StreakRatio = ratio
		if recent.StreakRatio < 0.6 {
			recent.StreakRatio = 0.6
		}
		recent.StreakGames = recent.Games
	}
}

// PitcherSeason fetches season pitching stats for a probable starter.
func (c *Client) PitcherSeason(ctx context.Context, personID int, name, throws string) (*models.PitcherStats, error) {
	resp, err := c.playerStats(ctx, personID, "pitching", "season")
	if err != nil {
		return nil, err
	}

	stat := firstSplit(resp)
	if stat == nil {
		return nil, fmt.Errorf("no season pitching stats for %s (%d)", name, personID)
	}

	s := &models.PitcherStats{
		PersonID: personID,
		Name:     name,
		Throws:   throws,
		Games:    statInt(stat, "gamesPlayed"),
		Starts:   statInt(stat, "gamesStarted"),
		IP:       statFloat(stat, "inningsPitched"),
		HR:       statInt(stat, "homeRuns"),
		ERA:      statFloat(stat, "era"),
	}
	if s.IP > 0 {
		s.HRPer9 = float64(s.HR) * 9 / s.IP
	}
	return s, nil
}

// PitcherRecentWorkload estimates pitches thrown over the last `days` days
// from the pitching game log: starts count as ~95 pitches, relief outings
// as ~20.
func (c *Client) PitcherRecentWorkload(ctx context.Context, personID int, days int, now time.Time) (int, error) {
	resp, err := c.playerStats(ctx, personID, "pitching", "gameLog")
	if err != nil {
		return 0, err
	}

	cutoff := now.AddDate(0, 0, -days).Format("2006-01-02")
	starts, relief := 0, 0
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			if split.Date < cutoff {
				continue
			}
			if statInt(split.Stat, "gamesStarted") > 0 {
				starts++
			} else {
				relief++
			}
		}
	}
	return starts*95 + relief*20, nil
}

func firstSplit(resp *statsResponse) map[string]any {
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			if len(split.Stat) > 0 {
				return split.Stat
			}
		}
	}
	return nil
}

// statFloat reads a numeric stat that the API may serve as a number or a
// formatted string (".250", "4.50", "123.1").
func statFloat(stat map[string]any, key string) float64 {
	switch v := stat[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func statInt(stat map[string]any, key string) int {
	switch v := stat[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

package models

import "time"

// Game is one scheduled MLB game for the prediction date.
type Game struct {
	ID        string    `json:"game_id"`
	GamePk    int       `json:"game_pk"`
	Date      string    `json:"date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeName  string    `json:"home_team_name"`
	AwayName  string    `json:"away_team_name"`
	HomeID    int       `json:"home_team_id"`
	AwayID    int       `json:"away_team_id"`
	Venue     string    `json:"ballpark"`
	StartTime time.Time `json:"game_time"`

	ParkFactor float64 `json:"ballpark_factor"`
	ParkLat    float64 `json:"ballpark_lat"`
	ParkLon    float64 `json:"ballpark_lon"`
	ParkOrient float64 `json:"ballpark_orient"`
}

// Batter is a lineup entry. PersonID is the MLB person ID and is the
// stable key for stats lookups; Name is kept for display and for matching
// against sources that only publish names (Statcast, Rotowire).
type Batter struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
}

// Lineup holds the batting orders for one game.
type Lineup struct {
	Home []Batter `json:"home"`
	Away []Batter `json:"away"`
}

// MaxLineupSize guards against feeds that return a full roster instead of a
// batting order. Anything larger is treated as corrupt and reset.
const MaxLineupSize = 15

// Sanitize drops lineups that are too large to be a real batting order.
// It returns the number of sides that were reset.
func (l *Lineup) Sanitize() int {
	reset := 0
	if len(l.Home) > MaxLineupSize {
		l.Home = nil
		reset++
	}
	if len(l.Away) > MaxLineupSize {
		l.Away = nil
		reset++
	}
	return reset
}

// PitcherTBD is the sentinel used when a probable pitcher is not announced.
const PitcherTBD = "TBD"

// ProbablePitchers holds the announced starters for one game.
type ProbablePitchers struct {
	Home Pitcher `json:"home"`
	Away Pitcher `json:"away"`
}

// Pitcher identifies a probable starter. A zero PersonID with Name == PitcherTBD
// means the starter is not announced yet.
type Pitcher struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
}

// Announced reports whether a real starter is known.
func (p Pitcher) Announced() bool {
	return p.Name != "" && p.Name != PitcherTBD && p.Name != "Unknown"
}

// Handedness codes as used by the MLB Stats API.
const (
	HandRight   = "R"
	HandLeft    = "L"
	HandSwitch  = "S"
	HandUnknown = "Unknown"
)

// SprayProfile is the batted-ball direction split from Statcast events.
type SprayProfile struct {
	PullPct   float64 `json:"pull_pct"`
	CenterPct float64 `json:"center_pct"`
	OppoPct   float64 `json:"oppo_pct"`
	PullSLG   float64 `json:"pull_slg"`
	CenterSLG float64 `json:"center_slg"`
	OppoSLG   float64 `json:"oppo_slg"`
}

// ZoneContact is the batter's barrel rate by pitch location.
type ZoneContact struct {
	UpBarrelPct     float64 `json:"up_barrel_pct"`
	MiddleBarrelPct float64 `json:"middle_barrel_pct"`
	DownBarrelPct   float64 `json:"down_barrel_pct"`
	InBarrelPct     float64 `json:"in_barrel_pct"`
	OutBarrelPct    float64 `json:"out_barrel_pct"`
}

// StatcastBatter is the per-batter aggregation of Statcast events.
type StatcastBatter struct {
	AvgEV           float64      `json:"avg_ev"`
	MaxEV           float64      `json:"max_ev"`
	AvgLA           float64      `json:"avg_la"`
	HardHitPct      float64      `json:"hard_hit_pct"`
	HardHitDistance float64      `json:"hard_hit_distance"`
	BarrelPct       float64      `json:"barrel_pct"`
	Spray           SprayProfile `json:"spray_angle"`
	Zone            ZoneContact  `json:"zone_contact"`
	Stand           string       `json:"stand"`
	SampleSize      int          `json:"sample_size"`

	// Slugging vs each pitch family relative to overall slugging. Zero-valued
	// with HasPitchTypes == false when the window is too thin to split.
	VsFastball    float64 `json:"vs_fastball"`
	VsBreaking    float64 `json:"vs_breaking"`
	VsOffspeed    float64 `json:"vs_offspeed"`
	HasPitchTypes bool    `json:"has_pitch_types"`

	// FormTrend compares average exit velocity over the last three game
	// days of the window against the earlier days: "improving",
	// "declining" or "stable". Empty when the sample spans fewer than
	// three game days.
	FormTrend  string  `json:"form_trend,omitempty"`
	AvgEVLast3 float64 `json:"avg_ev_last_3,omitempty"`
}

// StatcastPitcher is the per-pitcher aggregation of Statcast events.
type StatcastPitcher struct {
	PitchMix        map[string]float64 `json:"pitch_mix"`
	ZoneProfile     ZoneProfile        `json:"zone_profile"`
	PrimaryTendency string             `json:"primary_tendency"`
	SampleSize      int                `json:"sample_size"`
}

// ZoneProfile is where a pitcher locates pitches, as event shares.
type ZoneProfile struct {
	UpPct      float64 `json:"up_pct"`
	MiddleZPct float64 `json:"middle_z_pct"`
	DownPct    float64 `json:"down_pct"`
	InsidePct  float64 `json:"inside_pct"`
	MiddleXPct float64 `json:"middle_x_pct"`
	OutsidePct float64 `json:"outside_pct"`
}

// BatterStats carries the season-window hitting stats used by the factor
// model. Fields that come from Statcast are zero with HasStatcast == false
// when no aggregation matched the batter; the factors treat those as
// unknown rather than as real zeros.
type BatterStats struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
	Bats     string `json:"bats"`

	Games int     `json:"games"`
	HR    int     `json:"hr"`
	AB    int     `json:"ab"`
	PA    int     `json:"pa"`
	AVG   float64 `json:"avg"`
	OBP   float64 `json:"obp"`
	SLG   float64 `json:"slg"`
	ISO   float64 `json:"iso"`

	HRPerPA   float64 `json:"hr_per_pa"`
	HRPerGame float64 `json:"hr_per_game"`

	PullPct    float64 `json:"pull_pct"`
	FlyBallPct float64 `json:"fb_pct"`
	HardHitPct float64 `json:"hard_hit_pct"`
	HRFBRatio  float64 `json:"hr_fb_ratio"`

	BarrelPct       float64 `json:"barrel_pct"`
	ExitVelo        float64 `json:"exit_velo"`
	LaunchAngle     float64 `json:"launch_angle"`
	HardHitDistance float64 `json:"hard_hit_distance"`

	HasStatcast bool          `json:"has_statcast"`
	Spray       *SprayProfile `json:"spray_angle,omitempty"`
	Zone        *ZoneContact  `json:"zone_contact,omitempty"`

	// Copied from the Statcast profile when one matched. FormTrend is
	// empty when the recent window spans too few game days.
	FormTrend  string  `json:"form_trend,omitempty"`
	AvgEVLast3 float64 `json:"avg_ev_last_3,omitempty"`

	// Performance vs pitch families, as multipliers around 1.0. Zero-valued
	// with HasPitchTypes == false when no pitch-level data matched.
	VsFastball    float64 `json:"vs_fastball"`
	VsBreaking    float64 `json:"vs_breaking"`
	VsOffspeed    float64 `json:"vs_offspeed"`
	HasPitchTypes bool    `json:"has_pitch_types"`

	HomeFactor float64 `json:"home_factor"`
	RoadFactor float64 `json:"road_factor"`
	HasSplits  bool    `json:"has_splits"`
}

// RecentBatterStats is the short-window (last ~7 days of games) view.
type RecentBatterStats struct {
	Games int `json:"games"`
	HR    int `json:"hr"`
	PA    int `json:"pa"`

	HRPerPA   float64 `json:"hr_per_pa"`
	HRPerGame float64 `json:"hr_per_game"`

	BarrelPct float64 `json:"barrel_pct"`
	ExitVelo  float64 `json:"exit_velo"`

	HasStatcast bool `json:"has_statcast"`

	// StreakRatio compares the recent HR rate to the season rate.
	// StreakGames is how long the deviation has held. Both are zero-valued
	// with StreakKnown == false when either window is empty.
	StreakRatio float64 `json:"streak_ratio"`
	StreakGames int     `json:"streak_games"`
	StreakKnown bool    `json:"streak_known"`
}

// PitcherStats carries the opposing starter's season stats.
type PitcherStats struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
	Throws   string `json:"throws"`

	Games   int     `json:"games"`
	Starts  int     `json:"starts"`
	IP      float64 `json:"ip"`
	HR      int     `json:"hr"`
	HRPer9  float64 `json:"hr_per_9"`
	ERA     float64 `json:"era"`
	Pitches int     `json:"recent_workload"` // pitches thrown over the last 7 days

	GroundBallPct float64 `json:"gb_pct"`
	FlyBallPct    float64 `json:"fb_pct"`
	GBFBRatio     float64 `json:"gb_fb_ratio"`
	HasBattedBall bool    `json:"has_batted_ball"`

	HasStatcast bool             `json:"has_statcast"`
	Statcast    *StatcastPitcher `json:"statcast,omitempty"`
}

// WeatherSource records where a game's conditions came from.
type WeatherSource string

const (
	WeatherFromAPI     WeatherSource = "api"
	WeatherFromDome    WeatherSource = "dome"
	WeatherFromDefault WeatherSource = "default"
)

// Weather is the game-time conditions at the ballpark.
type Weather struct {
	TempF     float64       `json:"temp"`
	Humidity  float64       `json:"humidity"`
	WindSpeed float64       `json:"wind_speed"` // mph
	WindDeg   float64       `json:"wind_deg"`   // meteorological, degrees the wind comes FROM
	Source    WeatherSource `json:"source"`
}

// Prediction is one batter's HR probability for one game, with the factor
// breakdown that produced it.
type Prediction struct {
	PersonID      int    `json:"person_id"`
	Player        string `json:"player"`
	Team          string `json:"team"`
	TeamName      string `json:"team_name"`
	Opponent      string `json:"opponent"`
	OpponentName  string `json:"opponent_name"`
	Pitcher       string `json:"opponent_pitcher"`
	PitcherThrows string `json:"throws"`
	Bats          string `json:"bats"`
	Ballpark      string `json:"ballpark"`
	GameID        string `json:"game_id"`
	GameTime      string `json:"game_time"`
	IsHome        bool   `json:"is_home_team"`

	HRProbability float64 `json:"hr_probability"`

	// Factor breakdown, for the report and the API.
	ParkFactor       float64 `json:"ballpark_factor"`
	WeatherTemp      float64 `json:"weather_temp"`
	WeatherWind      float64 `json:"weather_wind"`
	WeatherFactor    float64 `json:"weather_factor"`
	PlatoonAdvantage bool    `json:"platoon_advantage"`
	RecentHRRate     float64 `json:"recent_hr_rate"`
	SeasonHRRate     float64 `json:"season_hr_rate"`
	PitcherHRRate    float64 `json:"pitcher_hr_rate"`
	SeasonHR         int     `json:"season_hr"`
	SeasonGames      int     `json:"season_games"`
	BarrelPct        float64 `json:"barrel_pct"`
	ExitVelo         float64 `json:"exit_velo"`
	LaunchAngle      float64 `json:"launch_angle"`
	PullPct          float64 `json:"pull_pct"`
	HardHitPct       float64 `json:"hard_hit_pct"`
	HRFBRatio        float64 `json:"hr_fb_ratio"`
	PitcherGBFB      float64 `json:"pitcher_gb_fb"`
	PitchTypeMatchup float64 `json:"pitch_type_matchup"`
	PitcherWorkload  float64 `json:"pitcher_workload"`
	BatterVsPitcher  float64 `json:"batter_vs_pitcher"`
	StreakFactor     float64 `json:"streak_factor"`
	XISO             float64 `json:"xISO"`
	XWOBA            float64 `json:"xwOBA"`

	// UnknownFactors counts factors that fell back to neutral because the
	// underlying data was missing, so downstream consumers can see how much
	// of the score is real signal.
	UnknownFactors int `json:"unknown_factors"`
}

// Categories is the tiered output of one prediction run.
type Categories struct {
	Locks    []Prediction `json:"locks"`
	HotPicks []Prediction `json:"hot_picks"`
	Sleepers []Prediction `json:"sleepers"`
}

// All returns every categorized prediction, locks first.
func (c Categories) All() []Prediction {
	out := make([]Prediction, 0, len(c.Locks)+len(c.HotPicks)+len(c.Sleepers))
	out = append(out, c.Locks...)
	out = append(out, c.HotPicks...)
	out = append(out, c.Sleepers...)
	return out
}

// Run is one complete prediction run as stored and served over HTTP.
type Run struct {
	RunID      string     `json:"run_id"`
	Date       string     `json:"date"`
	EarlyRun   bool       `json:"early_run"`
	Categories Categories `json:"categories"`
	CreatedAt  time.Time  `json:"created_at"`
}

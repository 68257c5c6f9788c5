package predictor

// Weights maps factor names to their contribution in the weighted score.
// The backtester produces adjusted tables with the same keys, so the set of
// names is part of the stored-run format.
type Weights map[string]float64

// DefaultWeights returns the production factor weights.
func DefaultWeights() Weights {
	return Weights{
		"recent_hr_rate":      0.10,
		"season_hr_rate":      0.07,
		"ballpark_factor":     0.05,
		"pitcher_hr_allowed":  0.06,
		"barrel_pct":          0.05,
		"exit_velocity":       0.04,
		"hard_hit_pct":        0.04,
		"launch_angle":        0.03,
		"pull_pct":            0.04,
		"fly_ball_rate":       0.02,
		"hr_fb_ratio":         0.03,
		"platoon_advantage":   0.03,
		"vs_pitch_type":       0.02,
		"pitcher_gb_fb_ratio": 0.02,
		"pitcher_workload":    0.02,
		"batter_vs_pitcher":   0.03,
		"weather_factor":      0.03,
		"home_away_split":     0.02,
		"hot_cold_streak":     0.04,
		"xISO":                0.06,
		"xwOBA":               0.05,
		"slg_factor":          0.05,
		"iso_factor":          0.05,
		"l15_barrel_factor":   0.04,
		"l15_ev_factor":       0.04,
		"barrel_rate_factor":  0.04,
		"exit_velo_factor":    0.04,
		"hr_pct_factor":       0.04,
		"hard_hit_distance":   0.05,
		"pitch_specific":      0.04,
		"spray_angle":         0.04,
		"zone_contact":        0.04,
		"park_specific":       0.04,
		"form_trend":          0.05,
	}
}

// Clone returns a copy safe to mutate.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

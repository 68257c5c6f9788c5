package savant

import "github.com/dingerbot/dingerbot/internal/pkg/models"

// ApplySeason overwrites the estimated batted-ball numbers on a season stat
// line with the real Statcast aggregation for the long window.
func ApplySeason(s *models.BatterStats, p *models.StatcastBatter) {
	if s == nil || p == nil {
		return
	}
	s.BarrelPct = p.BarrelPct
	s.ExitVelo = p.AvgEV
	s.LaunchAngle = p.AvgLA
	s.HardHitPct = p.HardHitPct
	s.HardHitDistance = p.HardHitDistance
	s.PullPct = p.Spray.PullPct
	s.Spray = &p.Spray
	s.Zone = &p.Zone
	s.FormTrend = p.FormTrend
	s.AvgEVLast3 = p.AvgEVLast3
	s.HasStatcast = true

	if p.HasPitchTypes {
		s.VsFastball = p.VsFastball
		s.VsBreaking = p.VsBreaking
		s.VsOffspeed = p.VsOffspeed
		s.HasPitchTypes = true
	}
}

// ApplyRecent overwrites the short-window contact quality, which otherwise
// carries over from the season estimates.
func ApplyRecent(r *models.RecentBatterStats, p *models.StatcastBatter) {
	if r == nil || p == nil {
		return
	}
	r.BarrelPct = p.BarrelPct
	r.ExitVelo = p.AvgEV
	r.HasStatcast = true
}

// ApplyPitcher attaches the pitch mix and location profile to a starter's
// season line.
func ApplyPitcher(s *models.PitcherStats, p *models.StatcastPitcher) {
	if s == nil || p == nil {
		return
	}
	s.Statcast = p
	s.HasStatcast = true
}

// Merge applies both aggregation windows to the fetched stat maps, keyed by
// MLB person ID. Players without a profile keep their estimates and stay
// flagged HasStatcast == false.
func (d *Data) Merge(
	season map[int]*models.BatterStats,
	recent map[int]*models.RecentBatterStats,
	pitchers map[int]*models.PitcherStats,
) {
	if d == nil {
		return
	}
	for id, s := range season {
		if b, ok := d.Season[id]; ok {
			ApplySeason(s, b.Profile)
		}
	}
	for id, r := range recent {
		if b, ok := d.Recent[id]; ok {
			ApplyRecent(r, b.Profile)
		}
	}
	for id, s := range pitchers {
		if p, ok := d.Pitch[id]; ok {
			ApplyPitcher(s, p.Profile)
		}
	}
}

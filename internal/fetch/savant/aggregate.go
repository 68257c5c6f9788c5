package savant

import (
	"sort"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// Minimum samples before an aggregation is trusted. Below these the player
// simply has no Statcast profile for the window.
const (
	minBattedBalls = 5
	minPitches     = 20
)

// BatterName pairs an aggregated profile with the CSV display name
// ("Last, First") for sources that have to match on names.
type BatterName struct {
	Name    string
	Profile *models.StatcastBatter
}

// AggregateBatters folds events into per-batter contact profiles, keyed by
// MLB person ID. Batters with fewer than minBattedBalls tracked batted
// balls are dropped.
func AggregateBatters(events []Event) map[int]BatterName {
	byBatter := make(map[int][]Event)
	for _, e := range events {
		if e.BatterID == 0 {
			continue
		}
		byBatter[e.BatterID] = append(byBatter[e.BatterID], e)
	}

	out := make(map[int]BatterName, len(byBatter))
	for id, all := range byBatter {
		var batted []Event
		for _, e := range all {
			if e.HasContact {
				batted = append(batted, e)
			}
		}
		if len(batted) < minBattedBalls {
			continue
		}

		p := &models.StatcastBatter{
			Stand:      standMode(all),
			SampleSize: len(batted),
		}

		var sumEV, sumLA float64
		hardHits, barrels := 0, 0
		var hardDistSum float64
		hardDistN := 0
		for _, e := range batted {
			sumEV += e.LaunchSpeed
			sumLA += e.LaunchAngle
			if e.LaunchSpeed > p.MaxEV {
				p.MaxEV = e.LaunchSpeed
			}
			if e.LaunchSpeed >= 95 {
				hardHits++
				if e.HitDistance > 0 {
					hardDistSum += e.HitDistance
					hardDistN++
				}
			}
			if e.Barrel {
				barrels++
			}
		}
		n := float64(len(batted))
		p.AvgEV = sumEV / n
		p.AvgLA = sumLA / n
		p.HardHitPct = float64(hardHits) / n
		p.BarrelPct = float64(barrels) / n
		if hardDistN > 0 {
			p.HardHitDistance = hardDistSum / float64(hardDistN)
		}

		p.Spray = sprayProfile(batted, p.Stand)
		p.Zone = zoneContact(batted)
		p.FormTrend, p.AvgEVLast3 = formTrend(batted)
		p.VsFastball, p.VsBreaking, p.VsOffspeed, p.HasPitchTypes = vsPitchFamilies(batted)

		out[id] = BatterName{Name: all[0].PlayerName, Profile: p}
	}
	return out
}

// standMode returns the most common batting side in the sample, defaulting
// to right-handed.
func standMode(events []Event) string {
	counts := make(map[string]int)
	for _, e := range events {
		if e.Stand != "" {
			counts[e.Stand]++
		}
	}
	if counts["L"] > counts["R"] {
		return "L"
	}
	return "R"
}

// sprayProfile splits batted balls into pull/center/oppo by horizontal
// plate location, mirrored for left-handed batters, with per-field SLG
// over the batted balls that ended a plate appearance.
func sprayProfile(batted []Event, stand string) models.SprayProfile {
	var pull, center, oppo []Event
	for _, e := range batted {
		switch {
		case e.PlateX > 0.5:
			if stand == "L" {
				pull = append(pull, e)
			} else {
				oppo = append(oppo, e)
			}
		case e.PlateX < -0.5:
			if stand == "L" {
				oppo = append(oppo, e)
			} else {
				pull = append(pull, e)
			}
		default:
			center = append(center, e)
		}
	}

	n := float64(len(batted))
	return models.SprayProfile{
		PullPct:   float64(len(pull)) / n,
		CenterPct: float64(len(center)) / n,
		OppoPct:   float64(len(oppo)) / n,
		PullSLG:   slugging(pull),
		CenterSLG: slugging(center),
		OppoSLG:   slugging(oppo),
	}
}

func slugging(balls []Event) float64 {
	if len(balls) == 0 {
		return 0
	}
	bases := 0
	for _, e := range balls {
		switch e.Outcome {
		case "single":
			bases++
		case "double":
			bases += 2
		case "triple":
			bases += 3
		case "home_run":
			bases += 4
		}
	}
	return float64(bases) / float64(len(balls))
}

// zoneContact computes barrel rates by vertical band (up >2.7, middle
// 2.0–2.7, down <2.0) and by horizontal distance from the middle of the
// plate (in <0.7, out >=0.7).
func zoneContact(batted []Event) models.ZoneContact {
	var zc models.ZoneContact
	var up, middle, down, in, out []Event
	for _, e := range batted {
		if !e.HasLocation {
			continue
		}
		switch {
		case e.PlateZ > 2.7:
			up = append(up, e)
		case e.PlateZ >= 2.0:
			middle = append(middle, e)
		default:
			down = append(down, e)
		}
		if abs(e.PlateX) < 0.7 {
			in = append(in, e)
		} else {
			out = append(out, e)
		}
	}
	zc.UpBarrelPct = barrelRate(up)
	zc.MiddleBarrelPct = barrelRate(middle)
	zc.DownBarrelPct = barrelRate(down)
	zc.InBarrelPct = barrelRate(in)
	zc.OutBarrelPct = barrelRate(out)
	return zc
}

// formTrend compares the average exit velocity of the last three game days
// against the earlier days of the window. A swing of more than 1 mph either
// way marks the batter improving or declining. Fewer than three game days
// yields no trend.
func formTrend(batted []Event) (string, float64) {
	byDate := make(map[string][]float64)
	for _, e := range batted {
		if e.GameDate == "" {
			continue
		}
		byDate[e.GameDate] = append(byDate[e.GameDate], e.LaunchSpeed)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	if len(dates) < 3 {
		return "", 0
	}
	sort.Strings(dates)

	daily := make([]float64, len(dates))
	for i, d := range dates {
		var sum float64
		for _, ev := range byDate[d] {
			sum += ev
		}
		daily[i] = sum / float64(len(byDate[d]))
	}

	recent := mean(daily[len(daily)-3:])
	older := recent
	if len(daily) > 3 {
		older = mean(daily[:len(daily)-3])
	}

	switch {
	case recent > older+1:
		return "improving", recent
	case recent < older-1:
		return "declining", recent
	default:
		return "stable", recent
	}
}

// pitchFamily buckets Statcast pitch type codes into the three broad
// families the matchup factors work with.
func pitchFamily(code string) string {
	switch code {
	case "FF", "SI", "FC", "FA":
		return "fastball"
	case "SL", "CU", "KC", "SV", "ST":
		return "breaking"
	case "CH", "FS", "FO", "EP", "KN":
		return "offspeed"
	}
	return ""
}

// vsPitchFamilies compares the batter's slugging on batted balls against
// each pitch family to his overall slugging, as multipliers around 1.0.
// Families with fewer than minBattedBalls samples stay neutral; when no
// family has a usable sample the split is unknown.
func vsPitchFamilies(batted []Event) (fastball, breaking, offspeed float64, ok bool) {
	overall := slugging(batted)
	if overall == 0 {
		return 0, 0, 0, false
	}

	byFamily := make(map[string][]Event)
	for _, e := range batted {
		if fam := pitchFamily(e.PitchType); fam != "" {
			byFamily[fam] = append(byFamily[fam], e)
		}
	}

	ratio := func(family string) (float64, bool) {
		balls := byFamily[family]
		if len(balls) < minBattedBalls {
			return 1.0, false
		}
		r := slugging(balls) / overall
		if r < 0.5 {
			r = 0.5
		}
		if r > 2.0 {
			r = 2.0
		}
		return r, true
	}

	fastball, fbOK := ratio("fastball")
	breaking, brOK := ratio("breaking")
	offspeed, osOK := ratio("offspeed")
	if !fbOK && !brOK && !osOK {
		return 0, 0, 0, false
	}
	return fastball, breaking, offspeed, true
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func barrelRate(balls []Event) float64 {
	if len(balls) == 0 {
		return 0
	}
	barrels := 0
	for _, e := range balls {
		if e.Barrel {
			barrels++
		}
	}
	return float64(barrels) / float64(len(balls))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// PitcherName pairs an aggregated pitcher profile with the CSV display name.
type PitcherName struct {
	Name    string
	Profile *models.StatcastPitcher
}

// AggregatePitchers folds events into per-pitcher profiles: pitch mix,
// location profile and the dominant location tendency. Pitchers with fewer
// than minPitches tracked pitches are dropped.
func AggregatePitchers(events []Event) map[int]PitcherName {
	byPitcher := make(map[int][]Event)
	for _, e := range events {
		if e.PitcherID == 0 {
			continue
		}
		byPitcher[e.PitcherID] = append(byPitcher[e.PitcherID], e)
	}

	out := make(map[int]PitcherName, len(byPitcher))
	for id, all := range byPitcher {
		if len(all) < minPitches {
			continue
		}

		mix := make(map[string]float64)
		for _, e := range all {
			if e.PitchType != "" {
				mix[e.PitchType]++
			}
		}
		for pt := range mix {
			mix[pt] /= float64(len(all))
		}

		var located []Event
		for _, e := range all {
			if e.HasLocation {
				located = append(located, e)
			}
		}
		if len(located) == 0 {
			continue
		}

		var zp models.ZoneProfile
		n := float64(len(located))
		for _, e := range located {
			switch {
			case e.PlateZ > 2.7:
				zp.UpPct += 1 / n
			case e.PlateZ >= 2.0:
				zp.MiddleZPct += 1 / n
			default:
				zp.DownPct += 1 / n
			}
			switch {
			case e.PlateX < -0.3:
				zp.InsidePct += 1 / n
			case e.PlateX <= 0.3:
				zp.MiddleXPct += 1 / n
			default:
				zp.OutsidePct += 1 / n
			}
		}

		out[id] = PitcherName{
			Name: all[0].PlayerName,
			Profile: &models.StatcastPitcher{
				PitchMix:        mix,
				ZoneProfile:     zp,
				PrimaryTendency: primaryTendency(zp),
				SampleSize:      len(located),
			},
		}
	}
	return out
}

func primaryTendency(zp models.ZoneProfile) string {
	best, bestPct := "up", zp.UpPct
	if zp.DownPct > bestPct {
		best, bestPct = "down", zp.DownPct
	}
	if zp.InsidePct > bestPct {
		best, bestPct = "inside", zp.InsidePct
	}
	if zp.OutsidePct > bestPct {
		best = "outside"
	}
	return best
}

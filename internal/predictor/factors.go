package predictor

import (
	"hash/fnv"
	"math"

	"github.com/dingerbot/dingerbot/internal/pkg/ballparks"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// Factor is one multiplier in the model, around 1.0. Known is false when
// the underlying data was missing and the factor fell back to neutral, so
// the engine can count how much of a score is real signal.
type Factor struct {
	Value float64
	Known bool
}

func known(v float64) Factor { return Factor{Value: v, Known: true} }

func neutral() Factor { return Factor{Value: 1.0} }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// platoonFactor scores the handedness matchup. Unknown handedness on
// either side is strictly neutral; switch hitters always get the platoon
// edge. Batters with strong splits against the pitch family a same-side
// pitcher leans on get the larger boost.
func platoonFactor(b models.BatterStats, throws string) Factor {
	if b.Bats == models.HandUnknown || throws == models.HandUnknown || throws == "" {
		return neutral()
	}

	if b.Bats == models.HandSwitch {
		return known(1.15)
	}

	vsFastball, vsBreaking := 1.0, 1.0
	if b.HasPitchTypes {
		vsFastball, vsBreaking = b.VsFastball, b.VsBreaking
	}

	switch {
	case b.Bats == models.HandRight && throws == models.HandLeft:
		if vsBreaking > 1.1 {
			return known(1.25)
		}
		return known(1.10)
	case b.Bats == models.HandLeft && throws == models.HandRight:
		if vsFastball > 1.1 {
			return known(1.28)
		}
		return known(1.12)
	case b.Bats == models.HandLeft && throws == models.HandLeft:
		return known(0.90)
	default: // R vs R
		return known(0.95)
	}
}

// weatherFactor combines temperature, wind and humidity into one HR
// multiplier. Wind direction is compared against the park's center-field
// bearing: blowing out helps, blowing in hurts, crosswinds are neutral.
// Simulated fallback conditions keep their value but count as unknown.
func weatherFactor(w models.Weather, parkOrient float64) Factor {
	tempFactor := 1.0 + (w.TempF-70)*0.01
	if w.TempF <= 70 {
		tempFactor = 1.0 - (70-w.TempF)*0.005
	}
	if w.TempF > 90 {
		tempFactor *= 1.08
	} else if w.TempF < 50 {
		tempFactor *= 0.92
	}

	windFactor := 1.0
	if w.WindSpeed > 5 {
		// Wind blowing toward center field comes FROM the opposite bearing.
		parkWindDirection := math.Mod(parkOrient+180, 360)
		diff := math.Abs(w.WindDeg - parkWindDirection)
		if diff > 180 {
			diff = 360 - diff
		}
		switch {
		case diff < 45: // blowing out
			windFactor = 1.0 + w.WindSpeed*0.02
			if w.WindSpeed > 15 {
				windFactor *= 1.15
			}
		case diff > 135: // blowing in
			windFactor = 1.0 - w.WindSpeed*0.02
			if w.WindSpeed > 15 {
				windFactor *= 0.85
			}
		}
		windFactor = clamp(windFactor, 0.7, 1.5)
	}

	humidityFactor := 1.0 + (50-w.Humidity)*0.001
	if w.Humidity > 50 {
		humidityFactor = 1.0 - (w.Humidity-50)*0.001
	}
	if w.Humidity > 80 {
		humidityFactor *= 0.95
	} else if w.Humidity < 30 {
		humidityFactor *= 1.05
	}

	pressureFactor := 1.0
	if w.TempF > 80 && w.Humidity < 40 {
		pressureFactor = 1.06
	} else if w.TempF < 60 && w.Humidity > 70 {
		pressureFactor = 0.96
	}

	total := clamp(tempFactor*windFactor*humidityFactor*pressureFactor, 0.7, 1.5)
	return Factor{Value: total, Known: w.Source != models.WeatherFromDefault}
}

// streakFactor damps the recent/season HR rate ratio by how long the
// deviation has held: short streaks are mostly noise, long ones are taken
// at face value.
func streakFactor(recent models.RecentBatterStats) Factor {
	if !recent.StreakKnown {
		return neutral()
	}
	s := recent.StreakRatio
	switch {
	case recent.StreakGames <= 2:
		return known(1.0 + (s-1.0)*0.5)
	case recent.StreakGames >= 5:
		return known(s)
	default:
		return known(1.0 + (s-1.0)*0.75)
	}
}

// Pitch family shares assumed when a pitcher has no Statcast mix.
const (
	defaultFastballPct = 0.60
	defaultBreakingPct = 0.25
	defaultOffspeedPct = 0.15
)

// Statcast pitch type codes grouped into families.
var pitchFamilies = map[string]string{
	"FF": "fastball", "SI": "fastball", "FC": "fastball", "FA": "fastball",
	"SL": "breaking", "CU": "breaking", "KC": "breaking", "SV": "breaking", "ST": "breaking",
	"CH": "offspeed", "FS": "offspeed", "FO": "offspeed", "EP": "offspeed", "KN": "offspeed",
}

// pitchMix returns the pitcher's fastball/breaking/offspeed shares,
// falling back to league-typical usage without Statcast data.
func pitchMix(p *models.PitcherStats) (fastball, breaking, offspeed float64) {
	if p == nil || !p.HasStatcast || p.Statcast == nil || len(p.Statcast.PitchMix) == 0 {
		return defaultFastballPct, defaultBreakingPct, defaultOffspeedPct
	}
	for code, share := range p.Statcast.PitchMix {
		switch pitchFamilies[code] {
		case "fastball":
			fastball += share
		case "breaking":
			breaking += share
		case "offspeed":
			offspeed += share
		}
	}
	if fastball+breaking+offspeed == 0 {
		return defaultFastballPct, defaultBreakingPct, defaultOffspeedPct
	}
	return fastball, breaking, offspeed
}

// pitchMatchupFactor weighs the batter's splits against pitch families by
// the pitcher's actual usage.
func pitchMatchupFactor(b models.BatterStats, p *models.PitcherStats) Factor {
	if !b.HasPitchTypes {
		return neutral()
	}
	fastball, breaking, offspeed := pitchMix(p)
	return known(b.VsFastball*fastball + b.VsBreaking*breaking + b.VsOffspeed*offspeed)
}

// primaryPitch returns the family the pitcher throws most.
func primaryPitch(p *models.PitcherStats) string {
	fastball, breaking, offspeed := pitchMix(p)
	switch {
	case fastball >= breaking && fastball >= offspeed:
		return "fastball"
	case breaking >= fastball && breaking >= offspeed:
		return "breaking"
	default:
		return "offspeed"
	}
}

// pitchSpecificFactor compares the batter's performance against the
// pitcher's primary pitch family to his overall output.
func pitchSpecificFactor(b models.BatterStats, p *models.PitcherStats) Factor {
	if !b.HasPitchTypes {
		return neutral()
	}
	var vs float64
	switch primaryPitch(p) {
	case "fastball":
		vs = b.VsFastball
	case "breaking":
		vs = b.VsBreaking
	default:
		vs = b.VsOffspeed
	}
	return known(clamp(vs, 0.8, 1.5))
}

// batterVsPitcherFactor is the deterministic matchup factor. There is no
// public per-matchup HR feed, so the factor is a stable pseudo-history
// derived from the person IDs: the same pairing always produces the same
// small deviation, and "short history" pairings stay neutral.
func batterVsPitcherFactor(batterID, pitcherID int) Factor {
	if batterID == 0 || pitcherID == 0 {
		return neutral()
	}
	combined := (hashID(batterID)%1000 + hashID(pitcherID)%1000) % 100
	pa := combined % 20
	if pa < 3 {
		return known(1.0)
	}
	hashFactor := float64(combined%100) / 100.0
	maxDeviation := math.Min(0.5, float64(pa)*0.03)
	deviation := (hashFactor - 0.5) * maxDeviation * 2
	return known(clamp(1.0+deviation, 0.5, 1.5))
}

func hashID(id int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	v := uint64(id)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}

// homeAwayFactor returns the batter's split for the side he plays today.
func homeAwayFactor(b models.BatterStats, isHome bool) Factor {
	if !b.HasSplits {
		return neutral()
	}
	if isHome {
		return known(b.HomeFactor)
	}
	return known(b.RoadFactor)
}

// workloadFactor models pitcher fatigue from pitches thrown over the last
// week. Rested arms suppress HR a little, heavy recent usage inflates it.
func workloadFactor(p *models.PitcherStats) Factor {
	if p == nil {
		return neutral()
	}
	w := float64(p.Pitches)
	switch {
	case w < 50:
		return known(math.Max(0.8, 1.0-(50-w)*0.004))
	case w <= 100:
		return known(1.0)
	default:
		return known(math.Min(1.5, 1.0+(w-100)*0.003))
	}
}

// gbfbFactor converts the pitcher's ground ball to fly ball ratio into a
// multiplier: fly ball pitchers give up more HR.
func gbfbFactor(p *models.PitcherStats) Factor {
	if p == nil || !p.HasBattedBall {
		return neutral()
	}
	return known(1.0 + (1.0 - math.Min(p.GBFBRatio, 2.0)/2.0))
}

// launchAngleFactor boosts batters whose average launch angle sits in the
// HR band, peaking around 30 degrees.
func launchAngleFactor(la float64) float64 {
	if la < 20 || la > 40 {
		return 1.0
	}
	angleDiff := math.Min(math.Abs(la-30), 10)
	return 1.0 + (1.0 - angleDiff/10)
}

// Threshold factors over season and recent power numbers.

func slgFactor(slg float64) float64 {
	switch {
	case slg > 0.550:
		return 1.4
	case slg > 0.500:
		return 1.2
	default:
		return 1.0
	}
}

func isoFactor(iso float64) float64 {
	switch {
	case iso > 0.300:
		return 1.4
	case iso > 0.250:
		return 1.2
	default:
		return 1.0
	}
}

func recentBarrelFactor(recent models.RecentBatterStats) Factor {
	if !recent.HasStatcast {
		return neutral()
	}
	if recent.BarrelPct > 0.25 {
		return known(1.5)
	}
	return known(1.0)
}

func recentEVFactor(recent models.RecentBatterStats) Factor {
	if !recent.HasStatcast {
		return neutral()
	}
	if recent.ExitVelo > 95 {
		return known(1.4)
	}
	return known(1.0)
}

func seasonBarrelFactor(barrelPct float64) float64 {
	if barrelPct > 0.20 {
		return 1.5
	}
	return 1.0
}

func seasonEVFactor(exitVelo float64) float64 {
	if exitVelo > 95 {
		return 1.4
	}
	return 1.0
}

func hrPctFactor(hrPerPA float64) float64 {
	if hrPerPA > 0.10 {
		return 1.5
	}
	return 1.0
}

func hardHitDistanceFactor(b models.BatterStats) Factor {
	if !b.HasStatcast || b.HardHitDistance == 0 {
		return neutral()
	}
	switch {
	case b.HardHitDistance > 380:
		return known(1.4)
	case b.HardHitDistance > 350:
		return known(1.2)
	default:
		return known(1.0)
	}
}

// sprayFactor rewards pull hitters in parks that favor their pull side and
// opposite-field hitters elsewhere.
func sprayFactor(b models.BatterStats, parkCode string) Factor {
	if b.Spray == nil {
		return neutral()
	}
	pullFriendly := ballparks.PullFriendly(parkCode, b.Bats)
	switch {
	case pullFriendly && b.Spray.PullPct > 0.45:
		return known(1.3)
	case !pullFriendly && b.Spray.OppoPct > 0.30:
		return known(1.2)
	default:
		return known(1.0)
	}
}

// zoneTendency estimates where the pitcher lives in the zone. The Statcast
// location profile wins when present; otherwise batted ball mix and
// handedness give a rough tendency.
func zoneTendency(p *models.PitcherStats) string {
	if p == nil {
		return "mixed"
	}
	if p.HasStatcast && p.Statcast != nil && p.Statcast.PrimaryTendency != "" {
		switch p.Statcast.PrimaryTendency {
		case "inside":
			return "in"
		case "outside":
			return "out"
		default:
			return p.Statcast.PrimaryTendency
		}
	}
	switch {
	case p.HasBattedBall && p.FlyBallPct > 0.40:
		return "up"
	case p.HasBattedBall && p.GroundBallPct > 0.50:
		return "down"
	case p.Throws == models.HandLeft:
		return "out"
	default:
		return "mixed"
	}
}

// zoneContactFactor matches the batter's barrel rates by zone band against
// where the pitcher tends to locate.
func zoneContactFactor(b models.BatterStats, p *models.PitcherStats) Factor {
	if b.Zone == nil {
		return neutral()
	}
	switch zoneTendency(p) {
	case "up":
		if b.Zone.UpBarrelPct > 0.15 {
			return known(1.3)
		}
	case "down":
		if b.Zone.DownBarrelPct > 0.15 {
			return known(1.3)
		}
	case "in":
		if b.Zone.InBarrelPct > 0.15 {
			return known(1.2)
		}
	case "out":
		if b.Zone.OutBarrelPct > 0.15 {
			return known(1.2)
		}
	}
	return known(1.0)
}

// parkSpecificFactor amplifies the park HR factor for power hitters and
// applies the park's dimension quirks to the batter profiles they favor.
func parkSpecificFactor(park ballparks.Park, b models.BatterStats, xISO float64) float64 {
	factor := 1.0 + (park.Factor-1.0)*0.8
	if xISO > 0.180 {
		factor = 1.0 + (park.Factor-1.0)*1.2
	}

	switch {
	case park.Altitude:
		if b.FlyBallPct > 0.40 {
			factor *= 1.15
		} else {
			factor *= 1.08
		}
	case park.ShortPorch:
		if b.Bats == models.HandLeft && b.PullPct > 0.45 {
			factor *= 1.10
		}
	case park.CrawfordBox:
		if b.Bats == models.HandRight && b.PullPct > 0.45 {
			factor *= 1.08
		}
	case park.Bandbox:
		if b.HardHitPct > 0.40 {
			factor *= 1.06
		}
	case park.Dome || park.Retractable:
		if b.BarrelPct > 0.08 {
			factor *= 1.04
		}
	}
	return factor
}

// formTrendFactor converts the recent exit velocity trend into a
// multiplier, with extra movement when the last few games were extreme.
func formTrendFactor(b models.BatterStats) Factor {
	switch b.FormTrend {
	case "improving":
		if b.AvgEVLast3 > 92 {
			return known(1.20)
		}
		return known(1.15)
	case "declining":
		if b.AvgEVLast3 < 87 {
			return known(0.80)
		}
		return known(0.85)
	case "stable":
		switch {
		case b.AvgEVLast3 > 90:
			return known(1.05)
		case b.AvgEVLast3 < 88:
			return known(0.95)
		default:
			return known(1.0)
		}
	default:
		return neutral()
	}
}

// estimateXWOBA builds an expected wOBA from contact quality when Statcast
// data exists; otherwise it falls back to an OBP/SLG blend.
func estimateXWOBA(b models.BatterStats) float64 {
	if !b.HasStatcast {
		return (b.OBP*1.8 + b.SLG) / 3
	}

	exitVeloAdj := (b.ExitVelo - 87) * 0.002
	if b.ExitVelo > 87 {
		exitVeloAdj = (b.ExitVelo - 87) * 0.003
	}

	la := b.LaunchAngle
	var launchAngleAdj float64
	switch {
	case la >= 10 && la <= 30:
		angleDiff := math.Min(math.Abs(la-20), 10)
		launchAngleAdj = 0.015 * (1.0 - angleDiff/10)
	case la >= 0 && la < 10:
		launchAngleAdj = -0.020 + la*0.003
	case la > 30 && la <= 45:
		launchAngleAdj = 0.010 - (la-30)*0.003
	default:
		launchAngleAdj = -0.025
	}

	xwoba := 0.320 + exitVeloAdj + launchAngleAdj + b.BarrelPct*0.400 + b.HardHitPct*0.150
	return clamp(xwoba, 0.200, 0.500)
}

// estimateXISO builds an expected ISO from contact quality when Statcast
// data exists; otherwise the real ISO stands in.
func estimateXISO(b models.BatterStats) float64 {
	if !b.HasStatcast {
		return b.ISO
	}

	exitVeloAdj := (b.ExitVelo - 88) * 0.005
	if b.ExitVelo > 88 {
		exitVeloAdj = (b.ExitVelo - 88) * 0.007
	}

	la := b.LaunchAngle
	var launchAngleAdj float64
	switch {
	case la >= 15 && la <= 35:
		angleDiff := math.Min(math.Abs(la-25), 10)
		launchAngleAdj = 0.040 * (1.0 - angleDiff/10)
	case la >= 0 && la < 15:
		launchAngleAdj = -0.050 + la*0.005
	case la > 35 && la <= 50:
		launchAngleAdj = 0.020 - (la-35)*0.002
	default:
		launchAngleAdj = -0.060
	}

	var pullAdj float64
	if b.PullPct > 0.40 {
		pullAdj = (b.PullPct - 0.40) * 0.150
	}

	xiso := 0.150 + exitVeloAdj + launchAngleAdj +
		b.BarrelPct*0.750 + b.HardHitPct*0.250 + pullAdj + b.HRFBRatio*0.300
	return clamp(xiso, 0.050, 0.400)
}

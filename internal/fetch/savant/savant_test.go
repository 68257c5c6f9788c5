package savant

import (
	"math"
	"strings"
	"testing"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

const testCSV = `pitch_type,game_date,player_name,batter,pitcher,events,stand,launch_speed,launch_angle,hit_distance_sc,plate_x,plate_z,barrel
FF,2025-06-10,"Judge, Aaron",592450,543037,home_run,R,108.5,28,420,-0.8,2.9,1
SL,2025-06-10,"Judge, Aaron",592450,543037,single,R,99.0,12,250,0.1,2.2,0
FF,2025-06-11,"Judge, Aaron",592450,543037,double,R,104.2,22,380,-0.6,1.8,1
CH,2025-06-11,"Judge, Aaron",592450,543037,field_out,R,92.0,35,310,0.6,2.5,0
FF,2025-06-12,"Judge, Aaron",592450,543037,field_out,R,85.0,5,120,0.0,2.1,0
FF,2025-06-12,"Soto, Juan",665742,543037,single,L,95.5,10,200,0.7,2.0,0
SL,2025-06-12,"Soto, Juan",665742,543037,strikeout,L,,,,0.2,1.5,0
`

func parseTestEvents(t *testing.T) []Event {
	t.Helper()
	events, err := ParseEvents(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("ParseEvents: %v", err)
	}
	return events
}

func TestParseEvents(t *testing.T) {
	events := parseTestEvents(t)
	if len(events) != 7 {
		t.Fatalf("got %d events, want 7", len(events))
	}

	first := events[0]
	if first.BatterID != 592450 || first.PlayerName != "Judge, Aaron" {
		t.Errorf("first event = %+v", first)
	}
	if !first.Barrel || !first.HasContact || first.LaunchSpeed != 108.5 {
		t.Errorf("first event contact fields = %+v", first)
	}

	whiff := events[6]
	if whiff.HasContact {
		t.Error("strikeout row should have no contact data")
	}
	if !whiff.HasLocation {
		t.Error("strikeout row still has plate location")
	}
}

func TestAggregateBatters(t *testing.T) {
	batters := AggregateBatters(parseTestEvents(t))

	judge, ok := batters[592450]
	if !ok {
		t.Fatal("Judge missing from aggregation")
	}
	if judge.Name != "Judge, Aaron" {
		t.Errorf("Name = %q", judge.Name)
	}

	p := judge.Profile
	if p.SampleSize != 5 {
		t.Errorf("SampleSize = %d, want 5", p.SampleSize)
	}
	if p.MaxEV != 108.5 {
		t.Errorf("MaxEV = %v", p.MaxEV)
	}
	// 3 of 5 batted balls >= 95 mph.
	if math.Abs(p.HardHitPct-0.6) > 1e-9 {
		t.Errorf("HardHitPct = %v, want 0.6", p.HardHitPct)
	}
	// 2 barrels in 5 batted balls.
	if math.Abs(p.BarrelPct-0.4) > 1e-9 {
		t.Errorf("BarrelPct = %v, want 0.4", p.BarrelPct)
	}
	if p.Stand != "R" {
		t.Errorf("Stand = %q", p.Stand)
	}
	// RHB: plate_x < -0.5 is pull side. Two such balls, one HR + one double.
	if math.Abs(p.Spray.PullPct-0.4) > 1e-9 {
		t.Errorf("PullPct = %v, want 0.4", p.Spray.PullPct)
	}
	if math.Abs(p.Spray.PullSLG-3.0) > 1e-9 {
		t.Errorf("PullSLG = %v, want (4+2)/2", p.Spray.PullSLG)
	}

	// Soto has only 1 batted ball, below the minimum sample.
	if _, ok := batters[665742]; ok {
		t.Error("Soto should be dropped below the batted-ball minimum")
	}
}

func TestVsPitchFamilies(t *testing.T) {
	var batted []Event
	// 6 fastballs: 3 home runs, 3 outs -> SLG 2.0.
	for i := 0; i < 6; i++ {
		e := Event{PitchType: "FF", HasContact: true}
		if i < 3 {
			e.Outcome = "home_run"
		}
		batted = append(batted, e)
	}
	// 6 sliders: 1 single, 5 outs -> SLG ~0.167.
	for i := 0; i < 6; i++ {
		e := Event{PitchType: "SL", HasContact: true}
		if i == 0 {
			e.Outcome = "single"
		}
		batted = append(batted, e)
	}

	fastball, breaking, offspeed, ok := vsPitchFamilies(batted)
	if !ok {
		t.Fatal("split should be known with two full families")
	}
	// Overall SLG = 13/12, fastball SLG = 2.0.
	if math.Abs(fastball-2.0/(13.0/12.0)) > 1e-9 {
		t.Errorf("fastball = %v", fastball)
	}
	// Slider SLG ratio (~0.15) hits the 0.5 floor.
	if breaking != 0.5 {
		t.Errorf("breaking = %v, want floor 0.5", breaking)
	}
	// No offspeed sample: neutral.
	if offspeed != 1.0 {
		t.Errorf("offspeed = %v, want neutral 1.0", offspeed)
	}
}

func TestVsPitchFamiliesThinSample(t *testing.T) {
	batted := []Event{
		{PitchType: "FF", Outcome: "home_run", HasContact: true},
		{PitchType: "SL", Outcome: "single", HasContact: true},
	}
	if _, _, _, ok := vsPitchFamilies(batted); ok {
		t.Error("two batted balls should not produce a pitch-family split")
	}
}

func TestMerge(t *testing.T) {
	season := map[int]*models.BatterStats{
		592450: {PersonID: 592450, BarrelPct: 0.10, ExitVelo: 89},
		665742: {PersonID: 665742, BarrelPct: 0.08, ExitVelo: 88},
	}
	recent := map[int]*models.RecentBatterStats{
		592450: {BarrelPct: 0.10, ExitVelo: 89},
	}
	pitchers := map[int]*models.PitcherStats{
		543037: {PersonID: 543037},
	}

	data := &Data{
		Season: map[int]BatterName{
			592450: {Name: "Judge, Aaron", Profile: &models.StatcastBatter{
				BarrelPct: 0.22, AvgEV: 96.1, AvgLA: 17,
				HardHitPct: 0.55, HardHitDistance: 390,
				Spray:      models.SprayProfile{PullPct: 0.44},
				FormTrend:  "improving",
				AvgEVLast3: 97.2,
				VsFastball: 1.3, VsBreaking: 0.9, VsOffspeed: 1.0, HasPitchTypes: true,
			}},
		},
		Recent: map[int]BatterName{
			592450: {Profile: &models.StatcastBatter{BarrelPct: 0.30, AvgEV: 98.0}},
		},
		Pitch: map[int]PitcherName{
			543037: {Profile: &models.StatcastPitcher{PrimaryTendency: "up"}},
		},
	}

	data.Merge(season, recent, pitchers)

	judge := season[592450]
	if !judge.HasStatcast || judge.BarrelPct != 0.22 || judge.ExitVelo != 96.1 {
		t.Errorf("season merge = %+v", judge)
	}
	if judge.PullPct != 0.44 || judge.Spray == nil {
		t.Errorf("spray merge = %+v", judge)
	}
	if judge.FormTrend != "improving" || judge.AvgEVLast3 != 97.2 {
		t.Errorf("form trend merge = %+v", judge)
	}
	if !judge.HasPitchTypes || judge.VsFastball != 1.3 {
		t.Errorf("pitch split merge = %+v", judge)
	}

	// No profile matched: estimates survive, still flagged estimated.
	if soto := season[665742]; soto.HasStatcast || soto.BarrelPct != 0.08 {
		t.Errorf("unmatched batter changed: %+v", soto)
	}

	if r := recent[592450]; !r.HasStatcast || r.BarrelPct != 0.30 || r.ExitVelo != 98.0 {
		t.Errorf("recent merge = %+v", r)
	}
	if p := pitchers[543037]; !p.HasStatcast || p.Statcast == nil || p.Statcast.PrimaryTendency != "up" {
		t.Errorf("pitcher merge = %+v", p)
	}
}

func TestAggregatePitchersBelowMinimum(t *testing.T) {
	// 7 pitches is under the 20-pitch minimum.
	pitchers := AggregatePitchers(parseTestEvents(t))
	if len(pitchers) != 0 {
		t.Errorf("got %d pitchers, want 0 under minimum sample", len(pitchers))
	}
}

func TestAggregatePitchers(t *testing.T) {
	var events []Event
	for i := 0; i < 30; i++ {
		e := Event{
			PitcherID:   543037,
			PlayerName:  "Cole, Gerrit",
			PitchType:   "FF",
			HasLocation: true,
			PlateZ:      3.0, // up
			PlateX:      0.0,
		}
		if i%3 == 0 {
			e.PitchType = "SL"
			e.PlateZ = 1.5 // down
		}
		events = append(events, e)
	}

	pitchers := AggregatePitchers(events)
	cole, ok := pitchers[543037]
	if !ok {
		t.Fatal("Cole missing from aggregation")
	}

	p := cole.Profile
	if math.Abs(p.PitchMix["FF"]-2.0/3.0) > 1e-9 {
		t.Errorf("FF mix = %v, want 2/3", p.PitchMix["FF"])
	}
	if p.PrimaryTendency != "up" {
		t.Errorf("PrimaryTendency = %q, want up", p.PrimaryTendency)
	}
	if math.Abs(p.ZoneProfile.UpPct-2.0/3.0) > 1e-6 {
		t.Errorf("UpPct = %v", p.ZoneProfile.UpPct)
	}
}

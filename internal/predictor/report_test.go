package predictor

import (
	"strings"
	"testing"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

func samplePrediction() models.Prediction {
	return models.Prediction{
		Player:           "Aaron Judge",
		Team:             "NYY",
		Opponent:         "BOS",
		OpponentName:     "Red Sox",
		Pitcher:          "Walker Buehler",
		PitcherThrows:    models.HandRight,
		Bats:             models.HandRight,
		Ballpark:         "Yankee Stadium",
		HRProbability:    0.085,
		ParkFactor:       1.15,
		WeatherTemp:      78,
		WeatherWind:      9,
		WeatherFactor:    1.12,
		SeasonHR:         28,
		SeasonGames:      70,
		ExitVelo:         95.5,
		BarrelPct:        0.22,
		HardHitPct:       0.55,
		PullPct:          0.45,
		HRFBRatio:        0.28,
		LaunchAngle:      16,
		PitchTypeMatchup: 1.0,
		PitcherGBFB:      1.0,
		PitcherWorkload:  1.0,
		BatterVsPitcher:  1.0,
		StreakFactor:     1.0,
		XISO:             0.32,
		XWOBA:            0.41,
	}
}

func TestFormatReportSections(t *testing.T) {
	c := models.Categories{
		Locks:    []models.Prediction{samplePrediction()},
		HotPicks: []models.Prediction{samplePrediction()},
	}

	report := FormatReport(c, "2025-06-15", false)

	for _, want := range []string{
		"2025-06-15",
		"MIDDAY (CONFIRMED LINEUPS)",
		"🔒 ABSOLUTE LOCKS 🔒",
		"🔥 HOT PICKS 🔥",
		"😴 SLEEPER PICKS 😴",
		"Aaron Judge (NYY) - 8.5% HR chance",
		"🆚 Red Sox @ Yankee Stadium",
		"💨 9.0 mph winds",
		"📈 Season: 28 HR in 70 G",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Empty sleeper tier still gets its header and placeholder.
	if !strings.Contains(report, "None identified for today.") {
		t.Error("empty tier should say none identified")
	}
}

func TestFormatReportEarlyRunLabel(t *testing.T) {
	report := FormatReport(models.Categories{}, "2025-06-15", true)
	if !strings.Contains(report, "EARLY MORNING") {
		t.Error("early run report should carry the morning label")
	}
}

func TestFormatReportTBDPitcher(t *testing.T) {
	p := samplePrediction()
	p.Pitcher = models.PitcherTBD
	c := models.Categories{Locks: []models.Prediction{p}}

	report := FormatReport(c, "2025-06-15", false)
	if !strings.Contains(report, "vs 🤔 TBD") {
		t.Error("unannounced pitcher should render as TBD")
	}
	if strings.Contains(report, "R batter vs") {
		t.Error("handedness matchup should be omitted for TBD pitchers")
	}
}

func TestSplitMessageShort(t *testing.T) {
	chunks := SplitMessage("short report")
	if len(chunks) != 1 || chunks[0] != "short report" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestSplitMessageLong(t *testing.T) {
	line := strings.Repeat("x", 80)
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString(line)
		b.WriteString("\n")
	}

	chunks := SplitMessage(b.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	totalLines := 0
	for i, chunk := range chunks {
		if len(chunk) > maxMessageLen {
			t.Errorf("chunk %d is %d chars, over the limit", i, len(chunk))
		}
		totalLines += len(strings.Split(strings.TrimRight(chunk, "\n"), "\n"))
	}
	if totalLines != 200 {
		t.Errorf("lines across chunks = %d, want 200", totalLines)
	}
}

func TestSplitMessageNoNewlines(t *testing.T) {
	chunks := SplitMessage(strings.Repeat("y", maxMessageLen+100))
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if len(chunks[0]) != maxMessageLen || len(chunks[1]) != 100 {
		t.Errorf("chunk sizes = %d/%d", len(chunks[0]), len(chunks[1]))
	}
}

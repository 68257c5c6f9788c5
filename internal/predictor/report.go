package predictor

import (
	"fmt"
	"strings"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// Telegram rejects messages over 4096 characters; chunk below that with
// margin for entity expansion.
const maxMessageLen = 4000

func handEmoji(hand string) string {
	switch hand {
	case models.HandLeft:
		return "👈"
	case models.HandRight:
		return "👉"
	case models.HandSwitch:
		return "🔄"
	default:
		return "❓"
	}
}

func pitcherLabel(name string) string {
	if name == "" || name == models.PitcherTBD || name == models.HandUnknown {
		return "🤔 TBD"
	}
	return name
}

// FormatReport renders the tiered picks as the daily Telegram report.
func FormatReport(c models.Categories, date string, earlyRun bool) string {
	timeLabel := "🔥 MIDDAY (CONFIRMED LINEUPS) 🔥"
	if earlyRun {
		timeLabel = "☀️ EARLY MORNING ☀️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚾️💥 MLB HOME RUN PREDICTIONS - %s %s 💥⚾️\n\n", date, timeLabel)
	b.WriteString("📊 Today's Top Home Run Picks 📊\n")
	b.WriteString("Weighted model over recent form, quality of contact,\n")
	b.WriteString("🏟️ ballpark factors, weather conditions,\n")
	b.WriteString("⚔️ pitcher matchups & platoon advantages\n\n")

	b.WriteString("🔒 ABSOLUTE LOCKS 🔒\n")
	if len(c.Locks) > 0 {
		for i, p := range c.Locks {
			writeLock(&b, i+1, p)
		}
	} else {
		b.WriteString("None identified for today.\n\n")
	}

	b.WriteString("🔥 HOT PICKS 🔥\n")
	if len(c.HotPicks) > 0 {
		for i, p := range c.HotPicks {
			writeHotPick(&b, i+1, p)
		}
	} else {
		b.WriteString("None identified for today.\n\n")
	}

	b.WriteString("😴 SLEEPER PICKS 😴\n")
	if len(c.Sleepers) > 0 {
		for i, p := range c.Sleepers {
			writeSleeper(&b, i+1, p)
		}
	} else {
		b.WriteString("None identified for today.\n\n")
	}

	b.WriteString("⚡ Good luck today! Bet responsibly and enjoy the long balls! 💥")
	return b.String()
}

func writeLock(b *strings.Builder, i int, p models.Prediction) {
	fmt.Fprintf(b, "%d. %s (%s) - %.1f%% HR chance\n", i, p.Player, p.Team, p.HRProbability*100)
	fmt.Fprintf(b, "   🆚 %s @ %s\n", p.OpponentName, p.Ballpark)

	pitcher := pitcherLabel(p.Pitcher)
	fmt.Fprintf(b, "   ⚾ vs %s", pitcher)
	if pitcher != "🤔 TBD" && p.Bats != models.HandUnknown && p.PitcherThrows != models.HandUnknown {
		fmt.Fprintf(b, " • %s %s batter vs %s pitcher %s",
			handEmoji(p.Bats), p.Bats, p.PitcherThrows, handEmoji(p.PitcherThrows))
	}
	b.WriteString("\n")

	if p.PlatoonAdvantage {
		switch {
		case p.Bats == models.HandLeft && p.PitcherThrows == models.HandRight:
			b.WriteString("   ⭐ L vs R platoon advantage!\n")
		case p.Bats == models.HandRight && p.PitcherThrows == models.HandLeft:
			b.WriteString("   ⭐ R vs L platoon advantage!\n")
		case p.Bats == models.HandSwitch:
			fmt.Fprintf(b, "   ⭐ Switch hitter advantage vs %s pitcher\n", p.PitcherThrows)
		}
	}

	fmt.Fprintf(b, "   🌡️ %.1f°F", p.WeatherTemp)
	if p.WeatherWind > 5 {
		fmt.Fprintf(b, ", 💨 %.1f mph winds", p.WeatherWind)
	}
	if p.WeatherFactor > 1.1 {
		b.WriteString(" (favorable for HR)")
	} else if p.WeatherFactor < 0.9 {
		b.WriteString(" (unfavorable for HR)")
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "   📈 Season: %d HR in %d G\n", p.SeasonHR, p.SeasonGames)

	var strengths []string
	if p.RecentHRRate > 0.05 {
		strengths = append(strengths, "🔥 Hot streak")
	} else if p.StreakFactor > 1.2 {
		strengths = append(strengths, "🔥 Heating up")
	}
	if p.ExitVelo > 90 {
		strengths = append(strengths, fmt.Sprintf("💥 %.1f mph exit velo", p.ExitVelo))
	}
	if p.LaunchAngle >= 25 && p.LaunchAngle <= 35 {
		strengths = append(strengths, fmt.Sprintf("📐 Optimal launch angle (%.1f°)", p.LaunchAngle))
	}
	if p.BarrelPct > 0.1 {
		strengths = append(strengths, fmt.Sprintf("🎯 Barrel machine (%.1f%%)", p.BarrelPct*100))
	}
	if p.PullPct > 0.4 {
		strengths = append(strengths, "↩️ Strong pull tendency")
	}
	if p.HardHitPct > 0.4 {
		strengths = append(strengths, "👊 Elite hard contact")
	} else if p.HardHitPct > 0.35 {
		strengths = append(strengths, "👊 Good hard contact")
	}
	if p.HRFBRatio > 0.2 {
		strengths = append(strengths, "⚡ Elite HR/FB ratio")
	} else if p.HRFBRatio > 0.15 {
		strengths = append(strengths, "⚡ Strong HR/FB ratio")
	}
	if len(strengths) > 0 {
		fmt.Fprintf(b, "   💪 Batter profile: %s\n", strings.Join(strengths, ", "))
	}

	var advantages []string
	if p.ParkFactor > 1.1 {
		advantages = append(advantages, fmt.Sprintf("🏟️ HR-friendly park (%.2fx)", p.ParkFactor))
	}
	if p.PitchTypeMatchup > 1.1 {
		advantages = append(advantages, "🎯 Strong vs pitcher's arsenal")
	}
	if p.PitcherGBFB < 0.8 {
		advantages = append(advantages, "🚀 Facing fly ball pitcher")
	}
	if p.PitcherWorkload > 1.1 {
		advantages = append(advantages, "😓 Facing fatigued pitcher")
	}
	if p.BatterVsPitcher > 1.1 {
		advantages = append(advantages, "📈 Historical success vs pitcher")
	}
	if len(advantages) > 0 {
		fmt.Fprintf(b, "   🔍 Matchup edges: %s\n", strings.Join(advantages, ", "))
	}

	fmt.Fprintf(b, "   📊 xStats: %.3f xISO, %.3f xwOBA\n\n", p.XISO, p.XWOBA)
}

func writeHotPick(b *strings.Builder, i int, p models.Prediction) {
	fmt.Fprintf(b, "%d. %s (%s) - %.1f%% HR chance\n", i, p.Player, p.Team, p.HRProbability*100)
	fmt.Fprintf(b, "   🆚 %s @ %s\n", p.OpponentName, p.Ballpark)

	pitcher := pitcherLabel(p.Pitcher)
	fmt.Fprintf(b, "   ⚾ vs %s", pitcher)
	if pitcher != "🤔 TBD" && p.Bats != models.HandUnknown && p.PitcherThrows != models.HandUnknown {
		fmt.Fprintf(b, " • %s vs %s", p.Bats, p.PitcherThrows)
		if p.PlatoonAdvantage {
			b.WriteString(" (✅ advantage)")
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "   🌡️ %.1f°F", p.WeatherTemp)
	if p.WeatherWind > 5 {
		fmt.Fprintf(b, ", 💨 %.1f mph winds", p.WeatherWind)
	}
	if p.WeatherFactor > 1.05 {
		b.WriteString(" (favorable)")
	} else if p.WeatherFactor < 0.95 {
		b.WriteString(" (unfavorable)")
	}
	b.WriteString("\n")

	var strengths []string
	if p.RecentHRRate > 0.04 {
		strengths = append(strengths, "🔥 Hot bat")
	}
	if p.ParkFactor > 1.05 {
		strengths = append(strengths, "🏟️ HR-friendly park")
	}
	if p.PlatoonAdvantage {
		strengths = append(strengths, fmt.Sprintf("👍 %s vs %s", p.Bats, p.PitcherThrows))
	}
	if p.BarrelPct > 0.08 {
		strengths = append(strengths, "🎯 Quality contact")
	}
	if p.HardHitPct > 0.35 {
		strengths = append(strengths, "💪 Hard hitter")
	}
	if p.ExitVelo > 88 {
		strengths = append(strengths, fmt.Sprintf("💥 %.1f mph exit velo", p.ExitVelo))
	}
	if p.PitchTypeMatchup > 1.05 {
		strengths = append(strengths, "🎯 Matchup advantage")
	}
	if p.HRFBRatio > 0.12 {
		strengths = append(strengths, "⚡ HR efficiency")
	}
	if len(strengths) > 0 {
		fmt.Fprintf(b, "   ➕ Key factors: %s\n", strings.Join(strengths, ", "))
	}
	b.WriteString("\n")
}

func writeSleeper(b *strings.Builder, i int, p models.Prediction) {
	fmt.Fprintf(b, "%d. %s (%s) - %.1f%% HR chance\n", i, p.Player, p.Team, p.HRProbability*100)

	pitcher := pitcherLabel(p.Pitcher)
	fmt.Fprintf(b, "   🆚 vs %s @ %s • 🌡️ %.1f°F", pitcher, p.Ballpark, p.WeatherTemp)
	if p.Bats != models.HandUnknown && p.PitcherThrows != models.HandUnknown && pitcher != "🤔 TBD" {
		fmt.Fprintf(b, " • %s/%s", p.Bats, p.PitcherThrows)
		if p.PlatoonAdvantage {
			b.WriteString("✅")
		}
	}
	b.WriteString("\n")

	var factors []string
	if p.RecentHRRate > 0.03 || p.StreakFactor > 1.0 {
		factors = append(factors, "🔄 Trending up")
	}
	if p.ParkFactor > 1.0 {
		factors = append(factors, "🏟️ Park boost")
	}
	if p.PlatoonAdvantage {
		factors = append(factors, fmt.Sprintf("👍 %s/%s", p.Bats, p.PitcherThrows))
	}
	if p.PullPct > 0.3 {
		factors = append(factors, "↩️ Pull tendency")
	}
	if p.BarrelPct > 0.05 {
		factors = append(factors, "🎯 Barrel potential")
	}
	if p.PitchTypeMatchup > 1.0 {
		factors = append(factors, "⚔️ Good matchup")
	}
	if p.LaunchAngle >= 20 && p.LaunchAngle <= 40 {
		factors = append(factors, "📐 Good angle")
	}
	if len(factors) > 0 {
		fmt.Fprintf(b, "   ➕ %s\n", strings.Join(factors, " • "))
	}
	b.WriteString("\n")
}

// SplitMessage breaks a report into chunks Telegram will accept, cutting
// at newlines so a pick never straddles two messages.
func SplitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > maxMessageLen {
		cut := strings.LastIndex(text[:maxMessageLen], "\n")
		if cut <= 0 {
			cut = maxMessageLen
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if len(text) > 0 {
		chunks = append(chunks, text)
	}
	return chunks
}

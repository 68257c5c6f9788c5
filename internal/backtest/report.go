package backtest

import (
	"fmt"
	"strings"

	"github.com/dingerbot/dingerbot/internal/pkg/storage"
)

const topFactorsShown = 8

// Report renders the backtest results as a human-readable text report.
func (a *Analyzer) Report(perf Performance, factors []FactorImportance) string {
	var b strings.Builder
	b.WriteString("⚾ HOME RUN PREDICTION BACKTEST ⚾\n\n")

	b.WriteString("📊 OVERALL PERFORMANCE\n")
	fmt.Fprintf(&b, "Total Predictions: %d\n", perf.Overall.Total)
	fmt.Fprintf(&b, "Home Runs Hit: %d\n", perf.Overall.Hits)
	fmt.Fprintf(&b, "Overall Accuracy: %.1f%%\n", perf.Overall.Accuracy*100)
	fmt.Fprintf(&b, "Dates Covered: %d\n\n", perf.Overall.Dates)

	b.WriteString("📈 CATEGORY PERFORMANCE\n")
	for _, c := range perf.Categories {
		fmt.Fprintf(&b, "• %s: %.1f%% hit rate (%d/%d), avg predicted %.1f%%\n",
			categoryTitle(c.Category), c.HitRate*100, c.Hits, c.Total, c.AvgProbability*100)
	}
	b.WriteString("\n")

	b.WriteString("🎯 CALIBRATION BY PROBABILITY\n")
	for _, bin := range perf.Bins {
		if bin.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s: %d predictions, predicted %.1f%%, actual %.1f%%\n",
			bin.Label, bin.Count, bin.AvgProbability*100, bin.ActualRate*100)
	}
	b.WriteString("\n")

	if len(factors) > 0 {
		b.WriteString("🔍 TOP FACTORS BY PREDICTIVE POWER\n")
		for i, f := range factors {
			if i >= topFactorsShown {
				break
			}
			fmt.Fprintf(&b, "%d. %s %s: power %.3f, weight %.3f, efficiency %.2f\n",
				i+1, recommendEmoji(f.Recommendation), f.Factor, f.Power, f.Weight, f.Efficiency)
		}
		b.WriteString("\n")
	}

	writeRecommendations(&b, perf, factors)
	return b.String()
}

func writeRecommendations(b *strings.Builder, perf Performance, factors []FactorImportance) {
	b.WriteString("💡 RECOMMENDATIONS\n")

	if up := factorsWith(factors, RecommendIncrease); len(up) > 0 {
		fmt.Fprintf(b, "• Increase weight: %s\n", strings.Join(up, ", "))
	}
	if down := factorsWith(factors, RecommendDecrease); len(down) > 0 {
		fmt.Fprintf(b, "• Decrease weight: %s\n", strings.Join(down, ", "))
	}

	for _, c := range perf.Categories {
		switch {
		case c.Category == storage.CategoryLock && c.Total > 0 && c.HitRate < 0.08:
			b.WriteString("⚠️ Lock hit rate is below 8% - consider tightening lock criteria.\n")
		case c.Category == storage.CategorySleeper && c.Total > 0 && c.HitRate > 0.04:
			b.WriteString("✅ Sleepers are hitting above 4% - good value identification.\n")
		}
	}
}

// factorsWith returns up to three factor names carrying a recommendation,
// in power order.
func factorsWith(factors []FactorImportance, recommendation string) []string {
	var names []string
	for _, f := range factors {
		if f.Recommendation == recommendation {
			names = append(names, f.Factor)
		}
		if len(names) == 3 {
			break
		}
	}
	return names
}

func recommendEmoji(recommendation string) string {
	switch recommendation {
	case RecommendIncrease:
		return "⬆️"
	case RecommendDecrease:
		return "⬇️"
	default:
		return "✅"
	}
}

func categoryTitle(category string) string {
	switch category {
	case storage.CategoryLock:
		return "Locks"
	case storage.CategoryHot:
		return "Hot Picks"
	case storage.CategorySleeper:
		return "Sleepers"
	default:
		return category
	}
}

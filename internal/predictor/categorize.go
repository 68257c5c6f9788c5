package predictor

import (
	"sort"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// DefaultTopN is how many predictions make the daily report.
const DefaultTopN = 10

// Categorize splits the top predictions into locks, hot picks and
// sleepers. With five or more picks the cuts are probability quantiles
// (top ~15% are locks, the next band hot picks); smaller slates fall back
// to fixed head splits so every tier is populated.
func Categorize(predictions []models.Prediction, topN int) models.Categories {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(predictions) == 0 {
		return models.Categories{}
	}

	top := predictions
	if len(top) > topN {
		top = top[:topN]
	}

	if len(top) >= 5 {
		probs := make([]float64, len(top))
		for i, p := range top {
			probs[i] = p.HRProbability
		}
		lockCut := quantile(probs, 0.85)
		hotCut := quantile(probs, 0.55)

		var c models.Categories
		for _, p := range top {
			switch {
			case p.HRProbability >= lockCut:
				c.Locks = append(c.Locks, p)
			case p.HRProbability >= hotCut:
				c.HotPicks = append(c.HotPicks, p)
			default:
				c.Sleepers = append(c.Sleepers, p)
			}
		}
		return c
	}

	numLocks := max(1, len(top)/5)
	numHot := max(1, len(top)/3)

	c := models.Categories{Locks: top[:numLocks]}
	if numLocks < len(top) {
		end := min(numLocks+numHot, len(top))
		c.HotPicks = top[numLocks:end]
		c.Sleepers = top[end:]
	}
	return c
}

// quantile computes the q-th quantile with linear interpolation between
// order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * q
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

package predictor

import (
	"fmt"
	"testing"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

func fakePredictions(n int) []models.Prediction {
	preds := make([]models.Prediction, n)
	for i := range preds {
		preds[i] = models.Prediction{
			Player:        fmt.Sprintf("Player %d", i+1),
			HRProbability: 0.10 - float64(i)*0.01,
		}
	}
	return preds
}

func TestCategorizeQuantiles(t *testing.T) {
	c := Categorize(fakePredictions(10), 10)

	if len(c.Locks) != 2 || len(c.HotPicks) != 3 || len(c.Sleepers) != 5 {
		t.Fatalf("partition = %d/%d/%d, want 2/3/5",
			len(c.Locks), len(c.HotPicks), len(c.Sleepers))
	}
	if c.Locks[0].Player != "Player 1" || c.Locks[1].Player != "Player 2" {
		t.Errorf("locks = %v", c.Locks)
	}
	if c.HotPicks[0].Player != "Player 3" {
		t.Errorf("first hot pick = %s", c.HotPicks[0].Player)
	}

	// Every top prediction lands in exactly one tier.
	if total := len(c.All()); total != 10 {
		t.Errorf("total categorized = %d, want 10", total)
	}
}

func TestCategorizeTruncatesToTopN(t *testing.T) {
	c := Categorize(fakePredictions(30), 10)
	if total := len(c.All()); total != 10 {
		t.Errorf("total categorized = %d, want 10", total)
	}
}

func TestCategorizeSmallSlate(t *testing.T) {
	c := Categorize(fakePredictions(4), 10)

	if len(c.Locks) != 1 || len(c.HotPicks) != 1 || len(c.Sleepers) != 2 {
		t.Errorf("partition = %d/%d/%d, want 1/1/2",
			len(c.Locks), len(c.HotPicks), len(c.Sleepers))
	}
	if c.Locks[0].Player != "Player 1" {
		t.Errorf("lock = %s, want the top prediction", c.Locks[0].Player)
	}
}

func TestCategorizeEmpty(t *testing.T) {
	c := Categorize(nil, 10)
	if len(c.All()) != 0 {
		t.Errorf("expected empty categories, got %+v", c)
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	if got := quantile(values, 0.5); got != 0.03 {
		t.Errorf("median = %v, want 0.03", got)
	}
	if got := quantile(values, 1.0); got != 0.05 {
		t.Errorf("max = %v, want 0.05", got)
	}
	if got := quantile([]float64{0.07}, 0.85); got != 0.07 {
		t.Errorf("single value = %v, want 0.07", got)
	}
}

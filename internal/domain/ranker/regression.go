package ranker

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// RegressionBackend reuses the boosted-tree engine with a least-squares
// objective, boosting from the label average. It backs the validation
// scorers: their synthesized sets carry zero label variance, so the fit
// collapses to a constant model recovering the bootstrap label, the
// expected, not exceptional, outcome there. Not selectable through New.
type RegressionBackend struct{}

// NewRegression constructs the least-squares boosting strategy.
func NewRegression() *RegressionBackend {
	return &RegressionBackend{}
}

func (b *RegressionBackend) Name() string { return "regression" }

func (b *RegressionBackend) FitAndScore(_ context.Context, set *sample.Set) ([]float64, error) {
	if set.Len() == 0 {
		return nil, ErrEmptySet
	}

	p := boostParams{
		rounds:       lmRounds,
		learningRate: lmLearningRate,
		tree: treeParams{
			maxLeaves:  lmMaxLeaves,
			minSamples: lmMinLeaf,
		},
	}
	base := stat.Mean(set.Labels, nil)
	scores := boost(set, p, base, func(scores []float64) ([]float64, []float64) {
		grad := make([]float64, len(scores))
		hess := make([]float64, len(scores))
		for i := range scores {
			grad[i] = set.Labels[i] - scores[i]
			hess[i] = 1
		}
		return grad, hess
	})
	return scores, nil
}

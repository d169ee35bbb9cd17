package ranker

import (
	"context"
	"math"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// Pairwise boosting hyperparameters, fixed by contract.
const (
	pwRounds       = 100
	pwLearningRate = 0.05
	pwMaxDepth     = 6
	pwSubsample    = 0.9
	pwSeed         = 1
)

// PairwiseBackend is the alternate boosted-tree ranker. Same feature, label
// and group contract as LambdaMART, but a plain pairwise logistic (RankNet
// style) loss without NDCG weighting, deeper trees, and seeded row
// subsampling per round. A substitute for LambdaMART, not a complement.
type PairwiseBackend struct{}

// NewPairwise constructs the pairwise boosted-tree ranker.
func NewPairwise() *PairwiseBackend {
	return &PairwiseBackend{}
}

func (b *PairwiseBackend) Name() string { return Pairwise }

func (b *PairwiseBackend) FitAndScore(_ context.Context, set *sample.Set) ([]float64, error) {
	if set.Len() == 0 {
		return nil, ErrEmptySet
	}

	p := boostParams{
		rounds:       pwRounds,
		learningRate: pwLearningRate,
		subsample:    pwSubsample,
		seed:         pwSeed,
		tree: treeParams{
			maxDepth:   pwMaxDepth,
			minSamples: 1,
		},
	}
	scores := boost(set, p, 0, func(scores []float64) ([]float64, []float64) {
		return pairwiseGradients(set.Labels, scores)
	})
	return scores, nil
}

// pairwiseGradients pushes the better-labeled sample of every misorderable
// pair above the other with logistic gradients.
func pairwiseGradients(labels, scores []float64) (grad, hess []float64) {
	n := len(labels)
	grad = make([]float64, n)
	hess = make([]float64, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if labels[i] == labels[j] {
				continue
			}
			hi, lo := i, j
			if labels[j] > labels[i] {
				hi, lo = j, i
			}

			rho := 1 / (1 + math.Exp(scores[hi]-scores[lo]))
			grad[hi] += rho
			grad[lo] -= rho
			h := rho * (1 - rho)
			hess[hi] += h
			hess[lo] += h
		}
	}
	return grad, hess
}

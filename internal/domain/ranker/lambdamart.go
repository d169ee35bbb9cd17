package ranker

import (
	"context"
	"math"
	"sort"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// LambdaMART hyperparameters, fixed by contract.
const (
	lmRounds       = 80
	lmLearningRate = 0.05
	lmMaxLeaves    = 31
	lmMinLeaf      = 5
)

// LambdaMARTBackend boosts regression trees with a listwise ranking
// objective: pairwise logistic gradients weighted by the NDCG swap delta of
// the pair, so misordering high-relevance candidates costs more. Fitting is
// fully deterministic.
type LambdaMARTBackend struct{}

// NewLambdaMART constructs the listwise boosted-tree ranker.
func NewLambdaMART() *LambdaMARTBackend {
	return &LambdaMARTBackend{}
}

func (b *LambdaMARTBackend) Name() string { return LambdaMART }

// FitAndScore trains on the request's single candidate group with its ordinal
// relevance labels and emits one continuous score per candidate.
func (b *LambdaMARTBackend) FitAndScore(_ context.Context, set *sample.Set) ([]float64, error) {
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
	scores := boost(set, p, 0, func(scores []float64) ([]float64, []float64) {
		return lambdaGradients(set.Labels, scores)
	})
	return scores, nil
}

// lambdaGradients derives per-sample gradients for the one candidate group.
// For every pair with differing labels, the better-labeled sample is pushed
// up and the other down by rho * |deltaNDCG| of swapping the pair. Uniform
// labels produce zero gradients everywhere, which downstream becomes a
// constant model rather than an error.
func lambdaGradients(labels, scores []float64) (grad, hess []float64) {
	n := len(labels)
	grad = make([]float64, n)
	hess = make([]float64, n)

	maxDCG := idealDCG(labels)
	if maxDCG == 0 {
		return grad, hess
	}

	pos := rankPositions(scores)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if labels[i] == labels[j] {
				continue
			}
			hi, lo := i, j
			if labels[j] > labels[i] {
				hi, lo = j, i
			}

			gainDiff := relevanceGain(labels[hi]) - relevanceGain(labels[lo])
			discDiff := positionDiscount(pos[hi]) - positionDiscount(pos[lo])
			delta := math.Abs(gainDiff*discDiff) / maxDCG

			rho := 1 / (1 + math.Exp(scores[hi]-scores[lo]))
			grad[hi] += rho * delta
			grad[lo] -= rho * delta
			h := rho * (1 - rho) * delta
			hess[hi] += h
			hess[lo] += h
		}
	}
	return grad, hess
}

// rankPositions returns each sample's 0-based position when ordered by score
// descending, ties keeping sample order.
func rankPositions(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	pos := make([]int, len(scores))
	for p, i := range order {
		pos[i] = p
	}
	return pos
}

func relevanceGain(label float64) float64 {
	return math.Exp2(label) - 1
}

func positionDiscount(pos int) float64 {
	return 1 / math.Log2(float64(pos)+2)
}

// idealDCG is the DCG of the labels in their best possible order.
func idealDCG(labels []float64) float64 {
	sorted := append([]float64(nil), labels...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	var dcg float64
	for p, l := range sorted {
		dcg += relevanceGain(l) * positionDiscount(p)
	}
	return dcg
}

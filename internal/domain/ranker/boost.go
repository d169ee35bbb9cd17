package ranker

import (
	"math/rand"
	"sort"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// gradFunc computes per-sample gradients and hessians for the current scores.
// Gradients point in the direction scores should move.
type gradFunc func(scores []float64) (grad, hess []float64)

// boostParams configure one boosting run.
type boostParams struct {
	rounds       int
	learningRate float64
	subsample    float64 // (0,1) enables seeded row subsampling
	seed         int64
	tree         treeParams
}

// boost runs gradient boosting over the set: each round fits one regression
// tree to fresh gradients and nudges every score by the learning rate. The
// trees live only inside this call.
func boost(set *sample.Set, p boostParams, base float64, gradients gradFunc) []float64 {
	n := set.Len()
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = base
	}

	var rng *rand.Rand
	if p.subsample > 0 && p.subsample < 1 {
		rng = rand.New(rand.NewSource(p.seed)) //nolint:gosec // deterministic seed for reproducible fitting
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	for r := 0; r < p.rounds; r++ {
		grad, hess := gradients(scores)

		rows := all
		if rng != nil {
			rows = sampleRows(rng, n, p.subsample)
		}

		tree := fitTree(set.Vectors, grad, hess, rows, p.tree)
		for i, v := range set.Vectors {
			scores[i] += p.learningRate * tree.predict(v)
		}
	}
	return scores
}

// sampleRows picks ceil(rate*n) distinct rows, returned in ascending order so
// tree construction stays deterministic for a given rng state.
func sampleRows(rng *rand.Rand, n int, rate float64) []int {
	k := int(rate*float64(n) + 0.5)
	if k < 1 {
		k = 1
	}
	if k >= n {
		k = n
	}
	rows := rng.Perm(n)[:k]
	sort.Ints(rows)
	return rows
}

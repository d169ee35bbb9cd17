package ranker

import (
	"sort"

	"github.com/microlearn/sessionrank/internal/domain/feature"
)

// hessianFloor guards Newton leaf values against division by a vanishing
// hessian sum (flat objectives produce exactly that).
const hessianFloor = 1e-12

// treeParams bound the shape of one regression tree.
type treeParams struct {
	maxDepth   int // 0 disables the depth bound
	maxLeaves  int // 0 disables the leaf bound
	minSamples int // minimum samples per leaf
}

// regTree is a binary regression tree fit to per-sample gradient/hessian
// pairs. Leaf values are Newton steps: sum(grad) / sum(hess). On degenerate
// targets no split ever gains, and the tree collapses to a single constant
// leaf, which is still a valid, if uninformative, model.
type regTree struct {
	root *treeNode
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float32
	left      *treeNode
	right     *treeNode
}

// fitTree grows a tree greedily over the rows named by idx. Split search is
// exact and fully deterministic: features in schema order, thresholds in
// ascending value order, strictly better gain wins.
func fitTree(vectors []feature.Vector, grad, hess []float64, idx []int, p treeParams) *regTree {
	leaves := 1
	return &regTree{root: buildNode(vectors, grad, hess, idx, p, 0, &leaves)}
}

// predict routes a vector to its leaf value.
func (t *regTree) predict(v feature.Vector) float64 {
	n := t.root
	for !n.leaf {
		if v[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func buildNode(vectors []feature.Vector, grad, hess []float64, idx []int, p treeParams, depth int, leaves *int) *treeNode {
	if (p.maxDepth > 0 && depth >= p.maxDepth) ||
		(p.maxLeaves > 0 && *leaves >= p.maxLeaves) ||
		len(idx) < 2*p.minSamples {
		return &treeNode{leaf: true, value: leafValue(grad, hess, idx)}
	}

	s, ok := bestSplit(vectors, grad, hess, idx, p.minSamples)
	if !ok {
		return &treeNode{leaf: true, value: leafValue(grad, hess, idx)}
	}

	*leaves++ // one split turns one leaf into two
	return &treeNode{
		feature:   s.feature,
		threshold: s.threshold,
		left:      buildNode(vectors, grad, hess, s.left, p, depth+1, leaves),
		right:     buildNode(vectors, grad, hess, s.right, p, depth+1, leaves),
	}
}

func leafValue(grad, hess []float64, idx []int) float64 {
	var g, h float64
	for _, i := range idx {
		g += grad[i]
		h += hess[i]
	}
	if h < hessianFloor {
		return 0
	}
	return g / h
}

type splitCandidate struct {
	feature   int
	threshold float32
	gain      float64
	left      []int
	right     []int
}

// bestSplit scans every feature for the threshold with the highest gradient
// gain over the parent node. Rows with equal feature values are never torn
// apart. Returns false when no split improves on the parent.
func bestSplit(vectors []feature.Vector, grad, hess []float64, idx []int, minSamples int) (splitCandidate, bool) {
	var totalG, totalH float64
	for _, i := range idx {
		totalG += grad[i]
		totalH += hess[i]
	}
	parent := gainScore(totalG, totalH)

	var best splitCandidate
	found := false
	dims := len(vectors[idx[0]])
	order := make([]int, len(idx))

	for f := 0; f < dims; f++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool {
			return vectors[order[a]][f] < vectors[order[b]][f]
		})

		var leftG, leftH float64
		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			leftG += grad[i]
			leftH += hess[i]

			if k+1 < minSamples || len(order)-k-1 < minSamples {
				continue
			}
			v, next := vectors[i][f], vectors[order[k+1]][f]
			if v == next {
				continue
			}

			gain := gainScore(leftG, leftH) + gainScore(totalG-leftG, totalH-leftH) - parent
			if gain > 0 && (!found || gain > best.gain) {
				best = splitCandidate{
					feature:   f,
					threshold: v,
					gain:      gain,
					left:      append([]int(nil), order[:k+1]...),
					right:     append([]int(nil), order[k+1:]...),
				}
				found = true
			}
		}
	}
	return best, found
}

func gainScore(g, h float64) float64 {
	if h < hessianFloor {
		return 0
	}
	return g * g / h
}

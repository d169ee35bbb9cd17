package ranker

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// Fusion network hyperparameters. The epoch count is the only tunable (see
// WithEpochs); everything else is fixed by contract.
const (
	fusionHidden       = 64
	fusionEpochs       = 300
	fusionLearningRate = 1e-3
)

// Adam optimizer constants.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// FusionBackend ranks with a small two-branch neural network: a semantic
// branch projects the concatenated query+content embeddings, a tabular branch
// projects the session feature vector, and a two-layer head fuses both into a
// single scalar. Weights are freshly initialized per request and trained with
// full-batch Adam steps minimizing MSE against the ordinal labels; the model
// never outlives the call.
//
// Unseeded fitting is non-deterministic across runs. Pin WithSeed when exact
// scores matter.
type FusionBackend struct {
	epochs int
	seed   int64
}

// NewFusion constructs the fusion network ranker.
func NewFusion(opts ...Option) *FusionBackend {
	o := options{epochs: fusionEpochs}
	for _, opt := range opts {
		opt(&o)
	}
	return &FusionBackend{epochs: o.epochs, seed: o.seed}
}

func (b *FusionBackend) Name() string { return Fusion }

func (b *FusionBackend) FitAndScore(_ context.Context, set *sample.Set) ([]float64, error) {
	n := set.Len()
	if n == 0 {
		return nil, ErrEmptySet
	}
	embDim := len(set.Query)
	if embDim == 0 {
		return nil, fmt.Errorf("%w: query embedding", ErrMissingEmbedding)
	}
	if len(set.Content) != n {
		return nil, fmt.Errorf("%w: content embeddings for %d of %d candidates", ErrMissingEmbedding, len(set.Content), n)
	}
	for i, c := range set.Content {
		if len(c) != embDim {
			return nil, fmt.Errorf("%w: content embedding %d has %d dims, query has %d", ErrMissingEmbedding, i, len(c), embDim)
		}
	}

	tabDim := len(set.Vectors[0])
	qc := mat.NewDense(n, 2*embDim, nil) // [query | content] per row
	tab := mat.NewDense(n, tabDim, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		for j, v := range set.Query {
			qc.Set(i, j, float64(v))
		}
		for j, v := range set.Content[i] {
			qc.Set(i, embDim+j, float64(v))
		}
		for j, v := range set.Vectors[i] {
			tab.Set(i, j, float64(v))
		}
		y.Set(i, 0, set.Labels[i])
	}

	seed := b.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	net := newFusionNet(rand.New(rand.NewSource(seed)), 2*embDim, tabDim) //nolint:gosec // model init, not crypto

	net.train(qc, tab, y, b.epochs)

	// Deterministic evaluation pass after training.
	out := net.forward(qc, tab).out
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = out.At(i, 0)
	}
	return scores, nil
}

// fusionNet holds the network parameters. Weight matrices are stored
// input-major so a forward step is X*W + bias.
type fusionNet struct {
	w1, b1 *mat.Dense // semantic branch: 2E -> H
	w2, b2 *mat.Dense // tabular branch:  T -> H
	w3, b3 *mat.Dense // head hidden:    2H -> H
	w4, b4 *mat.Dense // head output:     H -> 1
}

func newFusionNet(rng *rand.Rand, semDim, tabDim int) *fusionNet {
	return &fusionNet{
		w1: heInit(rng, semDim, fusionHidden),
		b1: mat.NewDense(1, fusionHidden, nil),
		w2: heInit(rng, tabDim, fusionHidden),
		b2: mat.NewDense(1, fusionHidden, nil),
		w3: heInit(rng, 2*fusionHidden, fusionHidden),
		b3: mat.NewDense(1, fusionHidden, nil),
		w4: heInit(rng, fusionHidden, 1),
		b4: mat.NewDense(1, 1, nil),
	}
}

// fusionPass carries the intermediate activations one forward pass produced,
// so backward can reuse them.
type fusionPass struct {
	semPre, sem *mat.Dense
	tabPre, tb  *mat.Dense
	fused       *mat.Dense // [sem | tb]
	headPre, hd *mat.Dense
	out         *mat.Dense
}

func (f *fusionNet) forward(qc, tab *mat.Dense) *fusionPass {
	p := &fusionPass{}
	p.semPre = linear(qc, f.w1, f.b1)
	p.sem = relu(p.semPre)
	p.tabPre = linear(tab, f.w2, f.b2)
	p.tb = relu(p.tabPre)
	p.fused = hconcat(p.sem, p.tb)
	p.headPre = linear(p.fused, f.w3, f.b3)
	p.hd = relu(p.headPre)
	p.out = linear(p.hd, f.w4, f.b4)
	return p
}

// train runs fixed full-batch Adam steps against MSE. There is no convergence
// or validation check; the iteration budget is the only stop condition.
func (f *fusionNet) train(qc, tab, y *mat.Dense, epochs int) {
	n, _ := y.Dims()
	opt := newAdam(f.w1, f.b1, f.w2, f.b2, f.w3, f.b3, f.w4, f.b4)

	for e := 0; e < epochs; e++ {
		p := f.forward(qc, tab)

		// dLoss/dOut for mean squared error.
		dOut := mat.NewDense(n, 1, nil)
		dOut.Sub(p.out, y)
		dOut.Scale(2/float64(n), dOut)

		var gw4 mat.Dense
		gw4.Mul(p.hd.T(), dOut)
		gb4 := colSums(dOut)

		var dHd mat.Dense
		dHd.Mul(dOut, f.w4.T())
		dHeadPre := reluBackward(&dHd, p.headPre)

		var gw3 mat.Dense
		gw3.Mul(p.fused.T(), dHeadPre)
		gb3 := colSums(dHeadPre)

		var dFused mat.Dense
		dFused.Mul(dHeadPre, f.w3.T())
		dSem := mat.DenseCopyOf(dFused.Slice(0, n, 0, fusionHidden))
		dTb := mat.DenseCopyOf(dFused.Slice(0, n, fusionHidden, 2*fusionHidden))

		dSemPre := reluBackward(dSem, p.semPre)
		var gw1 mat.Dense
		gw1.Mul(qc.T(), dSemPre)
		gb1 := colSums(dSemPre)

		dTabPre := reluBackward(dTb, p.tabPre)
		var gw2 mat.Dense
		gw2.Mul(tab.T(), dTabPre)
		gb2 := colSums(dTabPre)

		opt.step(&gw1, gb1, &gw2, gb2, &gw3, gb3, &gw4, gb4)
	}
}

func heInit(rng *rand.Rand, fanIn, fanOut int) *mat.Dense {
	std := math.Sqrt(2 / float64(fanIn))
	data := make([]float64, fanIn*fanOut)
	for i := range data {
		data[i] = rng.NormFloat64() * std
	}
	return mat.NewDense(fanIn, fanOut, data)
}

func linear(x, w, bias *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(x, w)
	r, c := out.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, out.At(i, j)+bias.At(0, j))
		}
	}
	return &out
}

func relu(m *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(m)
	out.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, out)
	return out
}

// reluBackward zeroes gradient entries whose pre-activation was clipped.
func reluBackward(dPost, pre *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(dPost)
	r, c := out.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if pre.At(i, j) <= 0 {
				out.Set(i, j, 0)
			}
		}
	}
	return out
}

func hconcat(a, b *mat.Dense) *mat.Dense {
	r, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewDense(r, ca+cb, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < ca; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < cb; j++ {
			out.Set(i, ca+j, b.At(i, j))
		}
	}
	return out
}

func colSums(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(1, c, nil)
	for j := 0; j < c; j++ {
		var s float64
		for i := 0; i < r; i++ {
			s += m.At(i, j)
		}
		out.Set(0, j, s)
	}
	return out
}

// adam tracks first and second moment estimates per parameter and applies
// bias-corrected updates.
type adam struct {
	params []*mat.Dense
	m, v   [][]float64
	t      int
}

func newAdam(params ...*mat.Dense) *adam {
	a := &adam{params: params}
	for _, p := range params {
		r, c := p.Dims()
		a.m = append(a.m, make([]float64, r*c))
		a.v = append(a.v, make([]float64, r*c))
	}
	return a
}

// step applies one Adam update. Gradients must arrive in the same order the
// parameters were registered.
func (a *adam) step(grads ...*mat.Dense) {
	a.t++
	for k, p := range a.params {
		w := p.RawMatrix().Data
		g := grads[k].RawMatrix().Data
		m, v := a.m[k], a.v[k]
		c1 := 1 - math.Pow(adamBeta1, float64(a.t))
		c2 := 1 - math.Pow(adamBeta2, float64(a.t))
		for i := range w {
			m[i] = adamBeta1*m[i] + (1-adamBeta1)*g[i]
			v[i] = adamBeta2*v[i] + (1-adamBeta2)*g[i]*g[i]
			mHat := m[i] / c1
			vHat := v[i] / c2
			w[i] -= fusionLearningRate * mHat / (math.Sqrt(vHat) + adamEps)
		}
	}
}

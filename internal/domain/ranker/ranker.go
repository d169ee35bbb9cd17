// Package ranker implements the interchangeable model backends behind the
// scoring engine.
//
// Every backend shares one contract: fit an ephemeral model on a training
// set and predict a score for each of its samples, all inside a single call.
// The fitted model is owned exclusively by that call: never cached, never
// shared across requests, discarded as soon as the scores are out.
//
// Three ranking variants exist and are drop-in substitutable:
//
//   - lambdamart: boosted trees with a listwise NDCG-weighted objective
//   - pairwise:   boosted trees with a pairwise logistic objective
//   - fusion:     a small neural network fusing embeddings with tabular dims
//
// A fourth, non-selectable strategy (least-squares boosting) backs the
// validation scorers.
package ranker

import (
	"context"
	"fmt"

	"github.com/microlearn/sessionrank/internal/domain/sample"
)

// Backend names accepted by New.
const (
	LambdaMART = "lambdamart"
	Pairwise   = "pairwise"
	Fusion     = "fusion"
)

// Backend fits an ephemeral model and scores the samples it was fit on.
type Backend interface {
	Name() string

	// FitAndScore trains on the set and returns one score per sample, in
	// sample order. Training data with zero label variance yields a
	// degenerate constant model, not an error.
	FitAndScore(ctx context.Context, set *sample.Set) ([]float64, error)
}

// Option tunes backend construction. Only the fusion backend currently has
// tunables; the tree variants ignore options.
type Option func(*options)

type options struct {
	epochs int
	seed   int64
}

// WithEpochs overrides the fusion backend's fixed-iteration training budget.
func WithEpochs(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.epochs = n
		}
	}
}

// WithSeed pins the fusion backend's weight initialization for reproducible
// scores. Without it every request trains from a fresh random init.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// New selects a ranking backend by name. The choice is made once per request;
// an unrecognized name is a fatal configuration error.
func New(name string, opts ...Option) (Backend, error) {
	switch name {
	case LambdaMART:
		return NewLambdaMART(), nil
	case Pairwise:
		return NewPairwise(), nil
	case Fusion:
		return NewFusion(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

package ranker

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrEmptySet         = errors.New("empty training set")
	ErrMissingEmbedding = errors.New("missing embedding")
)

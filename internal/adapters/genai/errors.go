package genai

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMissingAPIKey = errors.New("missing api key")
	ErrMissingModel  = errors.New("missing model")
	ErrGenerate      = errors.New("generate failed")
	ErrBadResponse   = errors.New("bad model response")
)

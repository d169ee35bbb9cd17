package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoCatalog           = errors.New("no catalog loaded")
	ErrRecommenderDisabled = errors.New("recommender not configured")
)

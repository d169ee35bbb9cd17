package catalog

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLoadCatalog = errors.New("load catalog failed")
	ErrNotFound    = errors.New("lecture not found")
)

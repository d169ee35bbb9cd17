// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Backend selects the default ranking backend: lambdamart, pairwise, fusion.
	Backend string `koanf:"backend"`

	// FusionEpochs overrides the fusion training epoch count. Zero keeps the
	// backend default.
	FusionEpochs int `koanf:"fusion_epochs"`

	// FusionSeed fixes the fusion weight initialization for reproducible runs.
	// Zero means seed from the clock.
	FusionSeed int64 `koanf:"fusion_seed"`

	// TopK caps the number of lectures returned by /recommend.
	TopK int `koanf:"top_k"`

	// CatalogPath points at the course catalog JSON file. Empty disables the
	// recommendation endpoints.
	CatalogPath string `koanf:"catalog_path"`

	// GenAIAPIKey, GenAIBaseURL and GenAIModel configure the generative
	// recommendation client. The key is never embedded in source or defaults;
	// it must arrive via file or environment.
	GenAIAPIKey  string `koanf:"genai_api_key"`
	GenAIBaseURL string `koanf:"genai_base_url"`
	GenAIModel   string `koanf:"genai_model"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":9080",
		Backend:  "lambdamart",
		TopK:     3,
	}
}

// Package embedding provides the embedding oracle abstraction used for dense
// semantic similarity, with a Gemini implementation and an offline hashing
// implementation.
package embedding

import "time"

// Provider represents an embedding provider
type Provider string

// Provider constants define supported embedding providers
const (
	// ProviderGemini is the Google Gemini embeddings API
	ProviderGemini Provider = "gemini"
	// ProviderHashing is the deterministic in-process feature-hashing embedder
	ProviderHashing Provider = "hashing"
)

const (
	// DefaultGeminiModel is the Gemini embedding model used when none is configured.
	DefaultGeminiModel = "text-embedding-004"
	// DefaultHashingDimension is the vector size of the hashing embedder.
	DefaultHashingDimension = 768
)

// Config holds the embedding oracle configuration
type Config struct {
	Provider Provider
	Model    string
	// Dimension applies to the hashing provider only.
	Dimension int
	// MaxConcurrency bounds in-flight Embed calls; 0 means unbounded.
	MaxConcurrency int
	// Timeout bounds a single Embed call; 0 means no per-call timeout.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		Model:          DefaultGeminiModel,
		Dimension:      DefaultHashingDimension,
		MaxConcurrency: 4,
		Timeout:        20 * time.Second,
	}
}

// DefaultHashingConfig returns a configuration for the offline hashing embedder
func DefaultHashingConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderHashing
	cfg.Model = ""
	return cfg
}

// WithModel returns a copy of the Config using a different model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}

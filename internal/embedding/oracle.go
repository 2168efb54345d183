package embedding

import (
	"context"
	"math"
)

// Oracle encodes texts into fixed-dimension dense vectors. Implementations
// must be safe for concurrent use and return one vector per input, in order.
type Oracle interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Close releases any resources held by the oracle
	Close() error
}

// NewOracle creates an oracle based on configuration, wrapped with the
// configured concurrency bound and per-call timeout.
func NewOracle(ctx context.Context, config *Config, apiKey string) (Oracle, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		oracle Oracle
		err    error
	)
	switch config.Provider {
	case ProviderHashing:
		oracle = NewHashingOracle(config.Dimension)
	case ProviderGemini, "":
		oracle, err = NewGeminiOracle(ctx, config, apiKey)
	default:
		return nil, &OracleUnavailableError{Provider: config.Provider, Message: "unknown provider"}
	}
	if err != nil {
		return nil, err
	}

	if config.MaxConcurrency > 0 || config.Timeout > 0 {
		oracle = NewBoundedOracle(oracle, config.MaxConcurrency, config.Timeout)
	}
	return oracle, nil
}

// Probe embeds a short text to confirm the oracle answers. Any failure is
// reported as an OracleUnavailableError.
func Probe(ctx context.Context, oracle Oracle, provider Provider) error {
	if oracle == nil {
		return &OracleUnavailableError{Provider: provider, Message: "no oracle configured"}
	}
	vectors, err := oracle.Embed(ctx, []string{"probe"})
	if err != nil {
		return &OracleUnavailableError{Provider: provider, Message: "probe failed", Cause: err}
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return &OracleUnavailableError{Provider: provider, Message: "probe returned no vector"}
	}
	return nil
}

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// Mismatched lengths or a zero vector yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return Clamp01(sim)
}

// Clamp01 limits v to [0, 1]; NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

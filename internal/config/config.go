// Package config provides configuration loading and validation for the CLI and HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_MATCHER_SERVER_PORT.
const EnvPrefix = "RESUME_MATCHER"

// Config is the merged result of defaults, an optional YAML/JSON file and the environment.
type Config struct {
	APIKey      string          `mapstructure:"api_key"`
	CatalogPath string          `mapstructure:"catalog_path"`
	Embedding   EmbeddingConfig `mapstructure:"embedding"`
	Pipeline    PipelineConfig  `mapstructure:"pipeline"`
	Server      ServerConfig    `mapstructure:"server"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Log         LogConfig       `mapstructure:"log"`
}

// EmbeddingConfig selects and tunes the embedding oracle.
type EmbeddingConfig struct {
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	Dimension      int           `mapstructure:"dimension"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// PipelineConfig bounds a single analysis and batch fan-out.
type PipelineConfig struct {
	Workers        int           `mapstructure:"workers"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxChars       int           `mapstructure:"max_chars"`
	TopSentences   int           `mapstructure:"top_sentences"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port         int   `mapstructure:"port"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// RateLimitConfig is a per-client token bucket.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerMinute float64 `mapstructure:"requests_per_minute"`
	Burst             int     `mapstructure:"burst"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// EmbeddingOracleConfig converts the loaded section to the embedding package's config.
func (c *Config) EmbeddingOracleConfig() embedding.Config {
	return embedding.Config{
		Provider:       embedding.Provider(c.Embedding.Provider),
		Model:          c.Embedding.Model,
		Dimension:      c.Embedding.Dimension,
		MaxConcurrency: c.Embedding.MaxConcurrency,
		Timeout:        c.Embedding.Timeout,
	}
}

// New returns a viper instance with every default registered and environment binding enabled.
func New() *viper.Viper {
	v := viper.New()

	emb := embedding.DefaultConfig()
	v.SetDefault("api_key", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("embedding.provider", string(emb.Provider))
	v.SetDefault("embedding.model", emb.Model)
	v.SetDefault("embedding.dimension", embedding.DefaultHashingDimension)
	v.SetDefault("embedding.max_concurrency", emb.MaxConcurrency)
	v.SetDefault("embedding.timeout", emb.Timeout)
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.request_timeout", 60*time.Second)
	v.SetDefault("pipeline.max_chars", 200000)
	v.SetDefault("pipeline.top_sentences", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", int64(16<<20))
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_minute", 60.0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// The Gemini key keeps its conventional unprefixed name.
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")

	return v
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	return LoadWith(New(), path)
}

// LoadWith reads configuration into a caller-prepared viper instance, e.g. one with bound flags.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is not required here; a missing key surfaces when the Gemini oracle is built.
func (c *Config) Validate() error {
	var errs []error

	switch embedding.Provider(c.Embedding.Provider) {
	case embedding.ProviderGemini, embedding.ProviderHashing:
	default:
		errs = append(errs, fmt.Errorf("config error: unknown embedding provider %q", c.Embedding.Provider))
	}
	if c.Embedding.MaxConcurrency < 1 {
		errs = append(errs, errors.New("config error: 'embedding.max_concurrency' must be at least 1"))
	}
	if c.Embedding.Dimension < 1 {
		errs = append(errs, errors.New("config error: 'embedding.dimension' must be positive"))
	}
	if c.Embedding.Timeout < 0 || c.Pipeline.RequestTimeout < 0 {
		errs = append(errs, errors.New("config error: timeouts must be non-negative"))
	}
	if c.Pipeline.Workers < 1 {
		errs = append(errs, errors.New("config error: 'pipeline.workers' must be at least 1"))
	}
	if c.Pipeline.MaxChars < 0 || c.Pipeline.TopSentences < 0 {
		errs = append(errs, errors.New("config error: pipeline limits must be non-negative"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' %d out of range", c.Server.Port))
	}
	if c.Server.MaxBodyBytes < 1 {
		errs = append(errs, errors.New("config error: 'server.max_body_bytes' must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, errors.New("config error: an enabled rate limit needs positive rate limit values"))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath))
		}
	}

	return errors.Join(errs...)
}

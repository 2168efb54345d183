package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Embedding.Provider)
	assert.Equal(t, embedding.DefaultGeminiModel, cfg.Embedding.Model)
	assert.Equal(t, 4, cfg.Embedding.MaxConcurrency)
	assert.Equal(t, 20*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.RequestTimeout)
	assert.Equal(t, 200000, cfg.Pipeline.MaxChars)
	assert.Equal(t, 3, cfg.Pipeline.TopSentences)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60.0, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
embedding:
  provider: hashing
  dimension: 256
  timeout: 5s
pipeline:
  workers: 8
  request_timeout: 2m
server:
  port: 9090
rate_limit:
  enabled: true
  requests_per_minute: 30
  burst: 5
log:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hashing", cfg.Embedding.Provider)
	assert.Equal(t, 256, cfg.Embedding.Dimension)
	assert.Equal(t, 5*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Pipeline.RequestTimeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30.0, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	// Untouched keys keep defaults.
	assert.Equal(t, 3, cfg.Pipeline.TopSentences)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"server": {"port": 7000}, "pipeline": {"max_chars": 1000}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Pipeline.MaxChars)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RESUME_MATCHER_SERVER_PORT", "9999")
	t.Setenv("RESUME_MATCHER_EMBEDDING_PROVIDER", "hashing")
	t.Setenv("RESUME_MATCHER_PIPELINE_REQUEST_TIMEOUT", "15s")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "hashing", cfg.Embedding.Provider)
	assert.Equal(t, 15*time.Second, cfg.Pipeline.RequestTimeout)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  port: 7000\n")
	t.Setenv("RESUME_MATCHER_SERVER_PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeFile(t, "config.yaml", "embedding:\n  provider: openai\nserver:\n  port: 0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown embedding provider")
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"zero workers", func(c *Config) { c.Pipeline.Workers = 0 }, "pipeline.workers"},
		{"zero concurrency", func(c *Config) { c.Embedding.MaxConcurrency = 0 }, "max_concurrency"},
		{"negative timeout", func(c *Config) { c.Embedding.Timeout = -time.Second }, "timeouts"},
		{"enabled zero rate", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RequestsPerMinute = 0 }, "rate limit"},
		{"disabled zero rate", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }, ""},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"missing catalog", func(c *Config) { c.CatalogPath = "/does/not/exist.yaml" }, "catalog file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmbeddingOracleConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Embedding.Provider = "hashing"
	cfg.Embedding.Dimension = 32

	oc := cfg.EmbeddingOracleConfig()
	assert.Equal(t, embedding.ProviderHashing, oc.Provider)
	assert.Equal(t, 32, oc.Dimension)
	assert.Equal(t, cfg.Embedding.MaxConcurrency, oc.MaxConcurrency)
	assert.Equal(t, cfg.Embedding.Timeout, oc.Timeout)
}

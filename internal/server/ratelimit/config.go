package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a limiter config from a per-minute default and burst.
// Batch ranking gets a stricter budget since one call fans out to many analyses.
func NewConfig(enabled bool, requestsPerMinute float64, burst int) *Config {
	limit := int(requestsPerMinute)
	if limit < 1 {
		limit = 1
	}
	if burst < 1 {
		burst = 1
	}
	rankLimit := max(limit/10, 1)
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    limit,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(rankLimit, max(burst/5, 1)),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
func DefaultEndpointConfigs(rankLimit, rankBurst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/rank", Method: http.MethodPost, Limit: rankLimit, Window: time.Minute, Burst: rankBurst},
		{Path: "/metrics", Method: http.MethodGet, Limit: 0},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}

package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// cleanupInterval is how often idle buckets are swept
const cleanupInterval = 5 * time.Minute

// LoadConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT,
// RATE_LIMIT_DEFAULT_WINDOW, RATE_LIMIT_WHITELIST and RATE_LIMIT_BLACKLIST.
// Unparsable or non-positive values keep their defaults.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 600, positive(strconv.Atoi)),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, positive(time.ParseDuration)),
		CleanupInterval: cleanupInterval,
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Script generation renders a full script per request
		{Path: "/api/generate", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/generate/download", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/generate/stream", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// A batch carries up to 64 prompts
		{Path: "/api/generate/batch", Method: "POST", Limit: 6, Window: time.Minute, Burst: 2},

		// Extraction only
		{Path: "/api/extract", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},

		// Read operations fall back to the default limit; /health and /metrics are unlimited
	}
}

// envOr parses the named variable, or returns def when it is unset or invalid
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// positive rejects zero and negative results of parse
func positive[T int | time.Duration](parse func(string) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := parse(s)
		if err == nil && v <= 0 {
			return v, fmt.Errorf("%s must be positive", s)
		}
		return v, err
	}
}

// clientSet turns a comma-separated list of client IDs into a lookup set
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}

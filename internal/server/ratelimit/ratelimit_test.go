package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}, clock.Now)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/vocabulary", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
		assert.Zero(t, info.RetryAfter)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/vocabulary", "GET")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	// 10 per minute refills one token every 6s
	assert.Equal(t, 6*time.Second, info.RetryAfter)
	assert.Equal(t, clock.Now().Add(time.Minute), info.ResetTime)
}

func TestLimiter_Refill(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/generate", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}, clock.Now)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("c", "/api/generate", "POST")
		require.True(t, allowed)
	}
	allowed, info := limiter.Allow("c", "/api/generate", "POST")
	require.False(t, allowed)
	assert.Equal(t, time.Second, info.RetryAfter)

	clock.Advance(time.Second)
	allowed, _ = limiter.Allow("c", "/api/generate", "POST")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow("c", "/api/generate", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/extract", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/generate", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, limiter.size())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}, clock.Now)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("c", "/api/generate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
	}
	allowed, _ := limiter.Allow("c", "/api/generate", "POST")
	assert.False(t, allowed, "burst of 10 should be exhausted")

	// separate bucket per endpoint
	allowed, info := limiter.Allow("c", "/api/generate/download", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)

	allowed, info = limiter.Allow("c", "/api/vocabulary", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	// separate bucket per client
	allowed, _ = limiter.Allow("other", "/api/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		for _, path := range []string{"/health", "/metrics"} {
			allowed, _ := limiter.Allow("c", path, "GET")
			require.True(t, allowed, path)
		}
	}
	assert.Zero(t, limiter.size())
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}, clock.Now)
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/vocabulary", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}, clock.Now)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/extract", "POST")
	}
	require.Equal(t, 10, limiter.size())

	clock.Advance(idleBucketTTL / 2)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/extract", "POST")
	}

	clock.Advance(idleBucketTTL/2 + time.Second)
	limiter.cleanupBuckets()
	assert.Equal(t, 5, limiter.size())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	require.NotNil(t, limiter)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/vocabulary", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Millisecond})
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 1},
		{Path: "/api/generate/download", Method: "POST", Limit: 2},
		{Path: "/api/", Method: "GET", Limit: 3},
		{Path: "/api/schemas/", Method: "GET", Limit: 4},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact", "/api/generate", "POST", 1, false},
		{"exact longer path", "/api/generate/download", "POST", 2, false},
		{"method mismatch", "/api/generate", "GET", 3, false},
		{"prefix", "/api/vocabulary", "GET", 3, false},
		{"longest prefix", "/api/schemas/spec", "GET", 4, false},
		{"health unlimited", "/health", "GET", 0, false},
		{"metrics unlimited", "/metrics", "GET", 0, false},
		{"no match", "/other", "GET", 0, true},
		{"post health not special", "/health", "POST", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
		t.Setenv("RATE_LIMIT_WHITELIST", "")
		cfg := LoadConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 600, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)
		assert.Len(t, cfg.EndpointConfigs, 5)
		assert.Empty(t, cfg.Whitelist)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		assert.False(t, LoadConfig().Enabled)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "true")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
		t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1, ,10.0.0.2")
		cfg := LoadConfig()
		assert.Equal(t, 42, cfg.DefaultLimit)
		assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
		assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	})

	t.Run("bad values fall back", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "maybe")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "lots")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "0s")
		cfg := LoadConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 600, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)

		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "-5")
		assert.Equal(t, 600, LoadConfig().DefaultLimit)
	})

	t.Run("blacklist and cleanup", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_BLACKLIST", "10.0.0.9")
		cfg := LoadConfig()
		assert.Equal(t, map[string]bool{"10.0.0.9": true}, cfg.Blacklist)
		assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	})
}

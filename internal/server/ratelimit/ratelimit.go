// Package ratelimit throttles the expensive tailoring endpoints with
// per-client token buckets.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Config controls the limiter.
type Config struct {
	Enabled         bool
	Limit           int           // requests per window on limited paths
	Window          time.Duration // refill window
	Burst           int           // bucket capacity; defaults to Limit
	CleanupInterval time.Duration // idle-bucket reaping cadence
}

// DefaultConfig limits the tailor endpoints to 10 requests per minute per
// client.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Limit:           10,
		Window:          time.Minute,
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
	}
}

// Info describes the limiter state surfaced via response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// Limiter tracks one token bucket per client on the limited paths.
type Limiter struct {
	cfg     *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
}

// NewLimiter builds a limiter and starts its cleanup goroutine.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Limit
	}

	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.done)
}

// limitedPath reports whether a path is subject to limiting. Only the
// pipeline endpoints are throttled; reads and health checks are free.
func limitedPath(path string) bool {
	return strings.HasPrefix(path, "/api/tailor")
}

// Allow consumes a token for the client if the path is limited. It returns
// whether the request may proceed and the current limiter state.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	if !l.cfg.Enabled || !limitedPath(path) {
		return true, Info{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastRefill: now}
		l.buckets[clientID] = b
	}

	refillRate := float64(l.cfg.Limit) / l.cfg.Window.Seconds()
	b.tokens += now.Sub(b.lastRefill).Seconds() * refillRate
	if b.tokens > float64(l.cfg.Burst) {
		b.tokens = float64(l.cfg.Burst)
	}
	b.lastRefill = now
	b.lastSeen = now

	info := Info{
		Limit:     l.cfg.Limit,
		ResetTime: now.Add(l.cfg.Window),
	}

	if b.tokens < 1 {
		info.Remaining = 0
		info.RetryAfter = time.Duration((1 - b.tokens) / refillRate * float64(time.Second))
		return false, info
	}

	b.tokens--
	info.Remaining = int(b.tokens)
	return true, info
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-2 * l.cfg.CleanupInterval)
			for id, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}

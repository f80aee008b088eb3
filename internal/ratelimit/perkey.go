package ratelimit

import (
	"sync"
	"time"
)

// PerKeyConfig configures a PerKeyLimiter.
type PerKeyConfig struct {
	MaxTokens     float64       // Burst capacity per key
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often idle buckets are discarded
}

// PerKeyLimiter tracks rate limits per key, typically a client IP. A
// separate token bucket is created per key and discarded again once it
// sits idle at full capacity.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	config   PerKeyConfig
	onDrop   func()
	stopCh   chan struct{}
}

// NewPerKey creates a per-key rate limiter and starts its cleanup
// loop. Call Stop when done.
func NewPerKey(cfg PerKeyConfig) *PerKeyLimiter {
	pkl := &PerKeyLimiter{
		limiters: make(map[string]*Limiter),
		config:   cfg,
		stopCh:   make(chan struct{}),
	}

	go pkl.cleanupLoop()

	return pkl
}

// OnDrop registers a callback invoked whenever a request is rejected.
// Used to feed the drop counter metric.
func (pkl *PerKeyLimiter) OnDrop(fn func()) {
	pkl.onDrop = fn
}

// Allow reports whether a request for the given key is admitted.
// An empty key is never limited.
func (pkl *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	pkl.mu.RLock()
	limiter, exists := pkl.limiters[key]
	pkl.mu.RUnlock()

	if !exists {
		pkl.mu.Lock()
		limiter, exists = pkl.limiters[key]
		if !exists {
			limiter = New(pkl.config.MaxTokens, pkl.config.RefillRate)
			pkl.limiters[key] = limiter
		}
		pkl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && pkl.onDrop != nil {
		pkl.onDrop()
	}
	return allowed
}

// ActiveCount returns the number of keys currently tracked.
func (pkl *PerKeyLimiter) ActiveCount() int {
	pkl.mu.RLock()
	defer pkl.mu.RUnlock()
	return len(pkl.limiters)
}

func (pkl *PerKeyLimiter) cleanupLoop() {
	ticker := time.NewTicker(pkl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-pkl.stopCh:
			return
		case <-ticker.C:
			pkl.mu.Lock()
			for key, limiter := range pkl.limiters {
				if limiter.IsFull() {
					delete(pkl.limiters, key)
				}
			}
			pkl.mu.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (pkl *PerKeyLimiter) Stop() {
	select {
	case <-pkl.stopCh:
	default:
		close(pkl.stopCh)
	}
}

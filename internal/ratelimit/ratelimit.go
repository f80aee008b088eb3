// Package ratelimit provides a token bucket rate limiter used to keep
// a single client from flooding the query endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter implements a token bucket rate limiter. It is safe for
// concurrent use. Tokens refill at a constant rate up to the bucket
// capacity; each request consumes one token.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// New creates a rate limiter with the given burst capacity and refill
// rate in tokens per second.
func New(maxTokens, refillRate float64) *Limiter {
	return &Limiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// refill adds tokens based on elapsed time since last refill.
// Must be called with mu held.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()

	l.tokens += elapsed * l.refillRate
	if l.tokens > l.maxTokens {
		l.tokens = l.maxTokens
	}
	l.lastRefill = now
}

// Allow reports whether a request is allowed, consuming a token when
// it is.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}
	return false
}

// Available returns the current number of available tokens.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IsFull reports whether the bucket is back at capacity. Used to
// detect idle limiters that can be discarded.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= l.maxTokens
}

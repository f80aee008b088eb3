// Package timeouts provides centralized timeout constants for the
// application.
package timeouts

import "time"

// HTTP server timeouts. Requests are small JSON bodies except document
// uploads, which stay well under the read timeout at the enforced size
// cap.
const (
	// QueryProcessing is the timeout for resolving a single voice
	// query, including database reads and the optional LLM fallback.
	QueryProcessing = 20 * time.Second

	HTTPRead  = 15 * time.Second
	HTTPWrite = 30 * time.Second
	HTTPIdle  = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is the SQLite busy_timeout pragma value.
	// Handles write contention between admin edits and query reads.
	DatabaseBusyTimeout = 30 * time.Second
)

// Rate limiter housekeeping
const (
	// RateLimiterCleanupInterval is how often idle per-client rate
	// limiters are discarded.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful
	// termination.
	GracefulShutdown = 30 * time.Second

	// SentryFlush is how long shutdown waits for buffered error
	// reports to reach the backend.
	SentryFlush = 2 * time.Second
)

// Package sentry wraps the Sentry Go SDK initialization so the rest of
// the application only deals with a DSN from configuration.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration.
type Config struct {
	// DSN is the Sentry project DSN. Empty disables error reporting.
	DSN string

	// Environment identifies the deployment environment (e.g.
	// "production", "staging").
	Environment string

	// Release identifies the application release version.
	Release string

	// Debug enables Sentry SDK debug logging.
	Debug bool
}

// Initialize sets up the Sentry SDK. With an empty DSN nothing is
// initialized and error reporting stays off.
func Initialize(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to be sent to the server.
// Returns true if all events were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureException captures an error and sends it to Sentry.
func CaptureException(err error) {
	sentry.CaptureException(err)
}

// CaptureExceptionWithContext captures an error with the hub bound to
// the request context when one exists.
func CaptureExceptionWithContext(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

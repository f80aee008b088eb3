// Package server holds the HTTP handlers for the schedule assistant:
// the voice query endpoint, the admin timetable API, the course catalog
// API and the document summarizer.
package server

import (
	"time"

	"github.com/campuspal/schedule-assistant/internal/auth"
	"github.com/campuspal/schedule-assistant/internal/chat"
	"github.com/campuspal/schedule-assistant/internal/config"
	"github.com/campuspal/schedule-assistant/internal/docs"
	"github.com/campuspal/schedule-assistant/internal/logger"
	"github.com/campuspal/schedule-assistant/internal/metrics"
	"github.com/campuspal/schedule-assistant/internal/ratelimit"
	"github.com/campuspal/schedule-assistant/internal/schedule"
	"github.com/campuspal/schedule-assistant/internal/storage"
)

// Handler bundles the endpoint implementations and their dependencies.
type Handler struct {
	cfg        *config.Config
	db         *storage.DB
	assistant  *schedule.Assistant
	responder  chat.Responder
	summarizer *docs.Summarizer
	verifier   *auth.Verifier
	metrics    *metrics.Metrics
	log        *logger.Logger
	limiter    *ratelimit.PerKeyLimiter

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

func NewHandler(
	cfg *config.Config,
	db *storage.DB,
	assistant *schedule.Assistant,
	responder chat.Responder,
	summarizer *docs.Summarizer,
	verifier *auth.Verifier,
	m *metrics.Metrics,
	log *logger.Logger,
	limiter *ratelimit.PerKeyLimiter,
) *Handler {
	return &Handler{
		cfg:        cfg,
		db:         db,
		assistant:  assistant,
		responder:  responder,
		summarizer: summarizer,
		verifier:   verifier,
		metrics:    m,
		log:        log,
		limiter:    limiter,
		now:        time.Now,
	}
}

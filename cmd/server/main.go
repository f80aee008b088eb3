// Package main provides the schedule assistant server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/campuspal/schedule-assistant/internal/auth"
	"github.com/campuspal/schedule-assistant/internal/buildinfo"
	"github.com/campuspal/schedule-assistant/internal/chat"
	"github.com/campuspal/schedule-assistant/internal/config"
	"github.com/campuspal/schedule-assistant/internal/docs"
	"github.com/campuspal/schedule-assistant/internal/logger"
	"github.com/campuspal/schedule-assistant/internal/metrics"
	"github.com/campuspal/schedule-assistant/internal/ratelimit"
	"github.com/campuspal/schedule-assistant/internal/schedule"
	"github.com/campuspal/schedule-assistant/internal/sentry"
	"github.com/campuspal/schedule-assistant/internal/server"
	"github.com/campuspal/schedule-assistant/internal/storage"
	"github.com/campuspal/schedule-assistant/internal/timeouts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).Info("Starting Schedule Assistant Server")

	// Initialize Sentry error reporting (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		Debug:       cfg.LogLevel == "debug",
	}); err != nil {
		log.WithError(err).Error("Failed to initialize Sentry")
		os.Exit(1)
	}
	if sentry.IsEnabled() {
		log.Info("Sentry error reporting enabled")
	}

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	ctx := context.Background()

	// Load the demo timetable on first boot so the assistant has data
	// to answer from
	if cfg.SeedTimetable {
		if err := db.SeedSampleTimetable(ctx); err != nil {
			log.WithError(err).Error("Failed to seed timetable")
			os.Exit(1)
		}
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Record store read outcomes
	db.SetMetrics(m)

	// Create the chat responder (optional - requires an API key)
	responder, err := chat.NewFromConfig(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create chat provider")
		os.Exit(1)
	}
	if responder != nil {
		log.WithField("provider", responder.Name()).Info("Chat fallback enabled")
	} else {
		log.Info("No LLM API key configured, chat fallback disabled")
	}

	// Document summarizer rides on the same chat provider
	summarizer := docs.NewSummarizer(responder)

	// Admin token verifier (optional - requires a JWT secret)
	verifier := auth.NewVerifier(cfg.JWTSecret, db)
	if verifier.Enabled() {
		log.Info("Admin API enabled")
	} else {
		log.Info("JWT secret not configured, admin API disabled")
	}

	// Per-IP rate limiter for the voice endpoint
	var limiter *ratelimit.PerKeyLimiter
	if cfg.RateLimitTokens > 0 {
		limiter = ratelimit.NewPerKey(ratelimit.PerKeyConfig{
			MaxTokens:     cfg.RateLimitTokens,
			RefillRate:    cfg.RateLimitRefillRate,
			CleanupPeriod: timeouts.RateLimiterCleanupInterval,
		})
		defer limiter.Stop()
	}

	assistant := schedule.New(db, nil)
	handler := server.NewHandler(cfg, db, assistant, responder, summarizer, verifier, m,
		log.WithModule("server"), limiter)

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log.WithModule("http")))
	router.Use(cors.New(corsConfig()))

	// Setup routes
	handler.RegisterRoutes(router, registry)

	// Create HTTP server with timeouts sized for voice queries and
	// document uploads
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  timeouts.HTTPRead,
		WriteTimeout: timeouts.HTTPWrite,
		IdleTimeout:  timeouts.HTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Flush buffered Sentry events before exit
	if sentry.IsEnabled() {
		sentry.Flush(timeouts.SentryFlush)
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}

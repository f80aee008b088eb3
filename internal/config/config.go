// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, storage, auth, and optional LLM providers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir       string // Directory for the SQLite database
	SeedTimetable bool   // Insert the sample timetable on startup if the table is empty

	// Auth Configuration
	JWTSecret string // HS256 secret for admin bearer tokens (empty = admin API disabled)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration
	SentryDSN         string // Sentry DSN (empty = error reporting disabled)
	SentryEnvironment string // Deployment environment reported with events

	// Rate Limiting (per client IP on the voice endpoint)
	RateLimitTokens     float64 // Burst capacity (0 = rate limiting disabled)
	RateLimitRefillRate float64 // Tokens refilled per second

	// LLM Configuration (optional, chat fallback + document summaries)
	LLMProvider    string // "openai" or "gemini" (default: "openai")
	OpenAIAPIKey   string
	OpenAIBaseURL  string // Override for OpenAI-compatible providers (Groq etc.)
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string
	LLMTimeout     time.Duration
	MaxUploadBytes int64 // Maximum document upload size for summarization
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:       getEnv("DATA_DIR", "./data"),
		SeedTimetable: getBoolEnv("SEED_TIMETABLE", true),

		JWTSecret: getEnv("JWT_SECRET", ""),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),

		RateLimitTokens:     getFloat64Env("RATE_LIMIT_TOKENS", 10),
		RateLimitRefillRate: getFloat64Env("RATE_LIMIT_REFILL_RATE", 0.5),

		LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMTimeout:     getDurationEnv("LLM_TIMEOUT", 15*time.Second),
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 10<<20), // 10 MiB
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLMTimeout))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.RateLimitTokens > 0 && c.RateLimitRefillRate <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REFILL_RATE must be positive, got %v", c.RateLimitRefillRate))
	}
	switch c.LLMProvider {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be openai or gemini, got %q", c.LLMProvider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "campus.db")
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

// AdminAPIEnabled returns true if the admin API can verify bearer tokens.
func (c *Config) AdminAPIEnabled() bool {
	return c.JWTSecret != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getInt64Env retrieves int64 environment variable with fallback to default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloat64Env retrieves float64 environment variable with fallback to default value
func getFloat64Env(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

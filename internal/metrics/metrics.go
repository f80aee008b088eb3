package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Query metrics
	QueriesTotal         *prometheus.CounterVec
	QueryDurationSeconds *prometheus.HistogramVec

	// Store metrics
	StoreQueriesTotal    *prometheus.CounterVec
	StoreDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec

	// Document metrics
	DocumentsSummarizedTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		QueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_queries_total",
				Help: "Total number of interpreted queries by resolved intent",
			},
			[]string{"intent"}, // intent: friendly, nth_class, day_schedule, follow_up, next_class, current_class, week, count, fallback
		),

		QueryDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_query_duration_seconds",
				Help:    "Query interpretation duration in seconds by intent",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"intent"},
		),

		StoreQueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_store_queries_total",
				Help: "Total number of timetable store reads by status",
			},
			[]string{"status"}, // status: success, error
		),

		StoreDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_store_duration_seconds",
				Help:    "Timetable store read duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"table"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: bad_request, unauthorized, not_found, internal
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_llm_requests_total",
				Help: "Total number of LLM requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, timeout
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_llm_duration_seconds",
				Help:    "LLM request duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		DocumentsSummarizedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_documents_summarized_total",
				Help: "Total number of document summarization requests by format and status",
			},
			[]string{"format", "status"}, // format: txt, md, pdf
		),
	}

	return m
}

// RecordQuery records an interpreted query with its resolved intent
func (m *Metrics) RecordQuery(intent string, duration float64) {
	m.QueriesTotal.WithLabelValues(intent).Inc()
	m.QueryDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordStoreQuery records a timetable store read
func (m *Metrics) RecordStoreQuery(table, status string, duration float64) {
	m.StoreQueriesTotal.WithLabelValues(status).Inc()
	m.StoreDurationSeconds.WithLabelValues(table).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordLLMRequest records an LLM request
func (m *Metrics) RecordLLMRequest(provider, status string, duration float64) {
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordDocumentSummary records a document summarization request
func (m *Metrics) RecordDocumentSummary(format, status string) {
	m.DocumentsSummarizedTotal.WithLabelValues(format, status).Inc()
}

// Package metrics provides Prometheus metrics for the sessionrank scoring
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the sessionrank service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - the scoring pipeline itself
	rankRequests     prometheus.Counter
	rankCandidates   prometheus.Histogram
	fitDuration      *prometheus.HistogramVec
	validationScores *prometheus.HistogramVec
	scoringErrors    prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorsByType *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sessionrank",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates and registers all Prometheus collectors.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rankRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_requests_total",
		Help:      "Total number of ranking requests scored",
	})

	m.rankCandidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_candidates",
		Help:      "Histogram of candidate group sizes per ranking request",
		Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
	})

	m.fitDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fit_duration_milliseconds",
			Help:      "Histogram of per-request model fit and predict duration by backend",
			Buckets:   m.histogramBuckets,
		},
		[]string{"backend"},
	)

	m.validationScores = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_scores",
			Help:      "Histogram of emitted validation scores by entity kind",
			Buckets:   []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"entity"},
	)

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of scoring pipeline failures",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "Histogram of HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of errors by type and severity",
		},
		[]string{"type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager. Handlers expose it for scraping.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordRankRequest counts a scored ranking request and its group size.
func RecordRankRequest(candidates int) {
	if !globalManager.enabled {
		return
	}
	globalManager.rankRequests.Inc()
	globalManager.rankCandidates.Observe(float64(candidates))
}

// ObserveFitDuration records the fit and predict latency of one backend run.
func ObserveFitDuration(backend string, ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fitDuration.WithLabelValues(backend).Observe(ms)
}

// ObserveValidationScore records an emitted validation score.
func ObserveValidationScore(entity string, score float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.validationScores.WithLabelValues(entity).Observe(score)
}

// RecordScoringError counts a scoring pipeline failure.
func RecordScoringError() {
	if !globalManager.enabled {
		return
	}
	globalManager.scoringErrors.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMetrics sets the system gauges.
func UpdateSystemMetrics(heapBytes uint64, goroutines int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(heapBytes))
	globalManager.systemGoroutineCount.Set(float64(goroutines))
}

// Package metrics provides Prometheus metrics for the tactus chart pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the tactus service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline Metrics - One counter per stage that produces an artifact
	songsPrepared     prometheus.Counter
	analysesCompleted prometheus.Counter
	chartsGenerated   *prometheus.CounterVec
	previewsRendered  prometheus.Counter
	stageDuration     *prometheus.HistogramVec
	chartNotes        *prometheus.HistogramVec
	fusedEvents       prometheus.Histogram
	validationIssues  *prometheus.CounterVec
	pipelineErrors    *prometheus.CounterVec

	// Operational Health Metrics
	songsTracked prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "tactus",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.songsPrepared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "songs_prepared_total",
		Help:      "Total number of songs prepared for charting",
	})

	m.analysesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_completed_total",
		Help:      "Total number of beat/energy analyses completed",
	})

	m.chartsGenerated = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "charts_generated_total",
			Help:      "Total number of charts generated by difficulty",
		},
		[]string{"difficulty"},
	)

	m.previewsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "previews_rendered_total",
		Help:      "Total number of chart audio previews rendered",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Pipeline stage duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.chartNotes = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "chart_notes",
			Help:      "Number of notes in generated charts by difficulty",
			Buckets:   []float64{10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"difficulty"},
	)

	m.fusedEvents = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fused_events",
		Help:      "Number of candidate events after beat/onset fusion",
		Buckets:   []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3200},
	})

	m.validationIssues = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_issues_total",
			Help:      "Total number of chart validation issues by severity",
		},
		[]string{"severity"},
	)

	m.pipelineErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of pipeline errors by component",
		},
		[]string{"component"},
	)

	m.songsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "songs_tracked",
		Help:      "Number of prepared songs in the store",
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
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordSongPrepared increments the prepared songs counter.
func RecordSongPrepared() {
	globalManager.songsPrepared.Inc()
}

// RecordAnalysisCompleted increments the completed analyses counter.
func RecordAnalysisCompleted() {
	globalManager.analysesCompleted.Inc()
}

// RecordChartGenerated increments the generated charts counter for a difficulty.
func RecordChartGenerated(difficulty string) {
	globalManager.chartsGenerated.WithLabelValues(difficulty).Inc()
}

// RecordPreviewRendered increments the rendered previews counter.
func RecordPreviewRendered() {
	globalManager.previewsRendered.Inc()
}

// RecordStageDuration records one pipeline stage duration in milliseconds.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// ObserveChartNotes records the note count of a generated chart.
func ObserveChartNotes(difficulty string, count int) {
	globalManager.chartNotes.WithLabelValues(difficulty).Observe(float64(count))
}

// ObserveFusedEvents records the candidate count after fusion.
func ObserveFusedEvents(count int) {
	globalManager.fusedEvents.Observe(float64(count))
}

// RecordValidationIssue increments the validation issue counter by severity.
func RecordValidationIssue(severity string) {
	globalManager.validationIssues.WithLabelValues(severity).Inc()
}

// RecordPipelineError increments the error counter for a component.
func RecordPipelineError(component string) {
	globalManager.pipelineErrors.WithLabelValues(component).Inc()
}

// UpdateSongsTracked sets the number of prepared songs in the store.
func UpdateSongsTracked(count int) {
	globalManager.songsTracked.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler returns an http.Handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

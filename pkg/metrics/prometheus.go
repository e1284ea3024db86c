// Package metrics provides Prometheus metrics for the badge service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the badge service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Pipeline Metrics - what a run produced
	visitorsLoaded    prometheus.Gauge
	signupsLoaded     prometheus.Gauge
	aliasesLoaded     prometheus.Gauge
	exactMatches      prometheus.Gauge
	fuzzyScores       prometheus.Histogram
	assignments       *prometheus.CounterVec
	sentinels         *prometheus.CounterVec
	remainingCapacity *prometheus.GaugeVec
	pipelineRuns      *prometheus.CounterVec
	pipelineDuration  *prometheus.HistogramVec

	// Badge Metrics
	qrGenerated     prometheus.Counter
	qrErrors        prometheus.Counter
	qrQueueSize     prometheus.Gauge
	qrWorkerCount   prometheus.Gauge
	qrRenderLatency prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "badger",
		subsystem:        "breakout",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.visitorsLoaded = m.gauge("visitors_loaded", "Number of visitors in the last pipeline run")
	m.signupsLoaded = m.gauge("signups_loaded", "Number of distinct signup emails in the last pipeline run")
	m.aliasesLoaded = m.gauge("aliases_loaded", "Number of email aliases in the last pipeline run")
	m.exactMatches = m.gauge("exact_matches", "Visitors linked to a signup record in the last pipeline run")
	m.fuzzyScores = m.histogram("fuzzy_score", "Best local-part similarity score per visitor (0-100)",
		prometheus.LinearBuckets(10, 10, 10))
	m.assignments = m.counterVec("assignments_total", "Visitors placed into a session by the assigner", "slot", "session")
	m.sentinels = m.counterVec("exhausted_total", "Slots that received the no-spots sentinel", "slot")
	m.remainingCapacity = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "remaining_capacity",
		Help:        "Seats left per session after assignment",
		ConstLabels: m.customLabels,
	}, []string{"slot", "session"})
	m.pipelineRuns = m.counterVec("pipeline_runs_total", "Pipeline runs by outcome", "status")
	m.pipelineDuration = m.histogramVec("pipeline_stage_duration_milliseconds",
		"Pipeline stage duration in milliseconds", m.histogramBuckets, "stage")

	m.qrGenerated = m.counter("qr_generated_total", "QR images rendered and stored")
	m.qrErrors = m.counter("qr_errors_total", "QR images that failed to render or store")
	m.qrQueueSize = m.gauge("qr_queue_size", "Badge jobs waiting for a render worker")
	m.qrWorkerCount = m.gauge("qr_worker_count", "Render workers in the current pool")
	m.qrRenderLatency = m.histogram("qr_render_duration_milliseconds",
		"Time to render and store one QR image in milliseconds", m.histogramBuckets)

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Pipeline Metrics Functions.

// UpdateInputs sets the sizes of the loaded inputs.
func UpdateInputs(visitors, signups, aliases int) {
	globalManager.visitorsLoaded.Set(float64(visitors))
	globalManager.signupsLoaded.Set(float64(signups))
	globalManager.aliasesLoaded.Set(float64(aliases))
}

// UpdateExactMatches sets the number of exact-matched visitors.
func UpdateExactMatches(count int) {
	globalManager.exactMatches.Set(float64(count))
}

// RecordFuzzyScore observes one visitor's best similarity score.
func RecordFuzzyScore(score float64) {
	globalManager.fuzzyScores.Observe(score)
}

// RecordAssignments counts visitors placed into session for slot.
func RecordAssignments(slot, session string, count int) {
	globalManager.assignments.WithLabelValues(slot, session).Add(float64(count))
}

// RecordExhausted counts slots that received the sentinel.
func RecordExhausted(slot string, count int) {
	globalManager.sentinels.WithLabelValues(slot).Add(float64(count))
}

// UpdateRemainingCapacity sets the seats left in a session.
func UpdateRemainingCapacity(slot, session string, remaining int) {
	globalManager.remainingCapacity.WithLabelValues(slot, session).Set(float64(remaining))
}

// RecordPipelineRun counts a finished run with status "ok" or "error".
func RecordPipelineRun(status string) {
	globalManager.pipelineRuns.WithLabelValues(status).Inc()
}

// RecordPipelineStage records how long a pipeline stage took.
func RecordPipelineStage(stage string, durationMs float64) {
	globalManager.pipelineDuration.WithLabelValues(stage).Observe(durationMs)
}

// Badge Metrics Functions.

// RecordQRGenerated increments the rendered QR counter.
func RecordQRGenerated() {
	globalManager.qrGenerated.Inc()
}

// RecordQRError increments the QR failure counter.
func RecordQRError() {
	globalManager.qrErrors.Inc()
}

// UpdateQRQueueSize sets the number of queued badge jobs.
func UpdateQRQueueSize(size int) {
	globalManager.qrQueueSize.Set(float64(size))
}

// UpdateQRWorkerCount sets the number of render workers.
func UpdateQRWorkerCount(count int) {
	globalManager.qrWorkerCount.Set(float64(count))
}

// RecordQRRenderLatency records how long one badge took to render and store.
func RecordQRRenderLatency(latencyMs float64) {
	globalManager.qrRenderLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

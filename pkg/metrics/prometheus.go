// Package metrics provides Prometheus metrics for the drug-safety service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Upstream fetch metrics
	upstreamRequests *prometheus.CounterVec
	upstreamRetries  prometheus.Counter
	upstreamFailures *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram

	// Pipeline metrics
	recordsFetched   prometheus.Counter
	malformedRecords prometheus.Counter
	queriesServed    prometheus.Counter
	queryDuration    prometheus.Histogram

	// Cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheSize   prometheus.Gauge

	// Watchlist refresher metrics
	refreshCycles prometheus.Counter
	refreshErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collector noise.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "faers",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_requests_total",
		Help:      "Upstream attempts by outcome class (2xx, 4xx, 5xx, transport_error)",
	}, []string{"class"})

	m.upstreamRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_retries_total",
		Help:      "Retry attempts issued after transient upstream failures",
	})

	m.upstreamFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_failures_total",
		Help:      "Terminal upstream failures by kind (rejected, exhausted)",
	}, []string{"kind"})

	m.upstreamLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_latency_ms",
		Help:      "Latency of individual upstream attempts in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recordsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_fetched_total",
		Help:      "Raw report records received from the upstream API",
	})

	m.malformedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_records_total",
		Help:      "Raw records skipped during normalization",
	})

	m.queriesServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_served_total",
		Help:      "Drug summary queries answered",
	})

	m.queryDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_duration_ms",
		Help:      "End-to-end fetch-and-transform duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Summary cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Summary cache misses",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_entries",
		Help:      "Live entries in the summary cache",
	})

	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Completed watchlist refresh cycles",
	})

	m.refreshErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_errors_total",
		Help:      "Watchlist refresh attempts that ended in error",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers on the global manager.

// RecordUpstreamRequest counts one upstream attempt by outcome class.
func RecordUpstreamRequest(class string) {
	globalManager.upstreamRequests.WithLabelValues(class).Inc()
}

// RecordUpstreamRetry counts one retry after a transient failure.
func RecordUpstreamRetry() {
	globalManager.upstreamRetries.Inc()
}

// RecordUpstreamFailure counts a terminal upstream failure by kind.
func RecordUpstreamFailure(kind string) {
	globalManager.upstreamFailures.WithLabelValues(kind).Inc()
}

// RecordUpstreamLatency observes one attempt's latency in milliseconds.
func RecordUpstreamLatency(latencyMs float64) {
	globalManager.upstreamLatency.Observe(latencyMs)
}

// RecordRecordsFetched counts raw records received in one batch.
func RecordRecordsFetched(n int) {
	globalManager.recordsFetched.Add(float64(n))
}

// RecordMalformedRecords counts records skipped during normalization.
func RecordMalformedRecords(n int) {
	globalManager.malformedRecords.Add(float64(n))
}

// RecordQueryServed counts one answered drug summary query.
func RecordQueryServed() {
	globalManager.queriesServed.Inc()
}

// RecordQueryDuration observes one end-to-end query duration.
func RecordQueryDuration(latencyMs float64) {
	globalManager.queryDuration.Observe(latencyMs)
}

// RecordCacheHit counts a summary cache hit.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a summary cache miss.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheSize sets the live cache entry gauge.
func UpdateCacheSize(n int) {
	globalManager.cacheSize.Set(float64(n))
}

// RecordRefreshCycle counts one completed watchlist refresh cycle.
func RecordRefreshCycle() {
	globalManager.refreshCycles.Inc()
}

// RecordRefreshError counts one failed watchlist refresh attempt.
func RecordRefreshError() {
	globalManager.refreshErrors.Inc()
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, latencyMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(latencyMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

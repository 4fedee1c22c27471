// Package metrics provides Prometheus metrics for the Lynx export service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle results used as label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Cycle metrics
	cycles          *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
	cycleErrors     *prometheus.CounterVec
	lastSuccessUnix prometheus.Gauge
	busySkips       prometheus.Counter

	// Source metrics
	tableReadDuration *prometheus.HistogramVec
	tableRows         *prometheus.GaugeVec
	strategyFailures  *prometheus.CounterVec
	rowsDropped       *prometheus.CounterVec

	// Snapshot metrics
	snapshotRaces   prometheus.Gauge
	snapshotLanes   prometheus.Gauge
	snapshotsPublic prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gcpv",
		subsystem:        "lynx",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.cycles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_total",
		Help:      "Export cycles by result",
	}, []string{"result"})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_milliseconds",
		Help:      "Duration of a complete export cycle in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cycleErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_errors_total",
		Help:      "Failed export cycles by error kind",
	}, []string{"kind"})

	m.lastSuccessUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_unix_seconds",
		Help:      "Unix time of the last successful cycle",
	})

	m.busySkips = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_skipped_busy_total",
		Help:      "Cycle requests suppressed because a cycle was already running",
	})

	m.tableReadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_read_duration_milliseconds",
		Help:      "Time to extract one table by table and strategy",
		Buckets:   m.histogramBuckets,
	}, []string{"table", "strategy"})

	m.tableRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_rows",
		Help:      "Rows returned by the last read of each table",
	}, []string{"table"})

	m.strategyFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "strategy_failures_total",
		Help:      "Extraction strategy failures by strategy",
	}, []string{"strategy"})

	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Source rows excluded for missing keys or foreign competition",
	}, []string{"table"})

	m.snapshotRaces = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_races",
		Help:      "Races in the last published snapshot",
	})

	m.snapshotLanes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_lanes",
		Help:      "Lanes in the last published snapshot",
	})

	m.snapshotsPublic = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_published_total",
		Help:      "Snapshots published to live view readers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordCycle counts a cycle outcome and, for completed cycles, its duration.
func RecordCycle(result string, duration time.Duration) {
	globalManager.cycles.WithLabelValues(result).Inc()
	if result == ResultSkipped {
		return
	}
	globalManager.cycleDuration.Observe(float64(duration.Milliseconds()))
	if result == ResultSuccess {
		globalManager.lastSuccessUnix.Set(float64(time.Now().Unix()))
	}
}

// RecordCycleError counts a failed cycle by error kind.
func RecordCycleError(kind string) {
	globalManager.cycleErrors.WithLabelValues(kind).Inc()
}

// RecordBusySkip counts a suppressed overlapping cycle request.
func RecordBusySkip() {
	globalManager.busySkips.Inc()
	globalManager.cycles.WithLabelValues(ResultSkipped).Inc()
}

// RecordTableRead records one successful table extraction.
func RecordTableRead(table, strategy string, rows int, duration time.Duration) {
	globalManager.tableReadDuration.WithLabelValues(table, strategy).Observe(float64(duration.Milliseconds()))
	globalManager.tableRows.WithLabelValues(table).Set(float64(rows))
}

// RecordStrategyFailure counts a failed extraction attempt.
func RecordStrategyFailure(strategy string) {
	globalManager.strategyFailures.WithLabelValues(strategy).Inc()
}

// RecordRowsDropped adds n excluded rows for table.
func RecordRowsDropped(table string, n int) {
	if n <= 0 {
		return
	}
	globalManager.rowsDropped.WithLabelValues(table).Add(float64(n))
}

// RecordSnapshotPublished updates snapshot gauges.
func RecordSnapshotPublished(races, lanes int) {
	globalManager.snapshotRaces.Set(float64(races))
	globalManager.snapshotLanes.Set(float64(lanes))
	globalManager.snapshotsPublic.Inc()
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

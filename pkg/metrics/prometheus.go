// Package metrics provides Prometheus instrumentation for the scoredist
// pipeline. Metrics are recorded on a custom registry and read
// programmatically; the pipeline exposes no network surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage labels used with the duration histogram.
const (
	StageLoad      = "load"
	StageBin       = "bin"
	StageJoin      = "join"
	StageAggregate = "aggregate"
	StageFit       = "fit"
	StageRender    = "render"
)

// Manager holds the Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline throughput
	runsTotal    prometheus.Counter
	runFailures  *prometheus.CounterVec
	datasetRows  prometheus.Gauge
	valuesBinned prometheus.Counter

	// Table shape
	tableBins       prometheus.Gauge
	aggregateGroups prometheus.Gauge

	// Lookup quality
	lookupsTotal prometheus.Counter
	lookupMisses prometheus.Counter

	// Stage timings
	stageDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoredist",
		subsystem:        "pipeline",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of pipeline runs started",
	})

	m.runFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "run_failures_total",
			Help:      "Total number of failed pipeline runs by stage",
		},
		[]string{"stage"},
	)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Rows in the most recently loaded dataset",
	})

	m.valuesBinned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "values_binned_total",
		Help:      "Total raw values assigned to probability bins",
	})

	m.tableBins = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_bins",
		Help:      "Bins in the most recently built probability table",
	})

	m.aggregateGroups = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregate_groups",
		Help:      "Groups in the most recent outcome aggregation",
	})

	m.lookupsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookups_total",
		Help:      "Total percentile lookups served",
	})

	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_misses_total",
		Help:      "Total percentile lookups for scores outside the table",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Histogram of pipeline stage durations in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)
}

// RecordRunStarted increments the pipeline runs counter.
func RecordRunStarted() {
	globalManager.runsTotal.Inc()
}

// RecordRunFailure increments the failed runs counter for a stage.
func RecordRunFailure(stage string) {
	globalManager.runFailures.WithLabelValues(stage).Inc()
}

// UpdateDatasetRows sets the loaded dataset row count.
func UpdateDatasetRows(count int) {
	globalManager.datasetRows.Set(float64(count))
}

// RecordValuesBinned adds to the binned values counter.
func RecordValuesBinned(count int) {
	globalManager.valuesBinned.Add(float64(count))
}

// UpdateTableBins sets the probability table bin count.
func UpdateTableBins(count int) {
	globalManager.tableBins.Set(float64(count))
}

// UpdateAggregateGroups sets the aggregate group count.
func UpdateAggregateGroups(count int) {
	globalManager.aggregateGroups.Set(float64(count))
}

// RecordLookup increments the lookup counter, and the miss counter when
// the score had no table row.
func RecordLookup(hit bool) {
	globalManager.lookupsTotal.Inc()
	if !hit {
		globalManager.lookupMisses.Inc()
	}
}

// RecordStageDuration records one stage duration in seconds.
func RecordStageDuration(stage string, seconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

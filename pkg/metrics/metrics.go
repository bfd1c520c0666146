package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Connection metrics
	OpenConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eavdb_open_connections",
			Help: "Number of connections currently held open by the process-global registry",
		},
	)

	// Transact metrics
	TransactDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eavdb_transact_duration_seconds",
			Help:    "Time taken for a Connection.Transact call to commit or fail, by connection and outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"connection", "outcome"},
	)

	TransactRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eavdb_transact_retries_total",
			Help: "Total number of compare-and-set retries absorbed by Connection.Transact",
		},
		[]string{"connection"},
	)

	SnapshotsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eavdb_snapshots_total",
			Help: "Number of snapshots currently held in a connection's history",
		},
		[]string{"connection"},
	)

	// Query metrics
	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eavdb_query_duration_seconds",
			Help:    "Time taken to execute a query end to end",
			Buckets: prometheus.DefBuckets,
		},
	)

	QueryRowsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eavdb_query_rows_returned",
			Help:    "Number of rows returned by a query",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500, 1000},
		},
	)

	QueryClauseFilterDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eavdb_query_clause_filter_duration_seconds",
			Help:    "Time taken to filter a single clause against its chosen index",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"index"},
	)

	// Index metrics
	IndexSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eavdb_index_size",
			Help: "Number of leaf facts currently held by one permutation index",
		},
		[]string{"connection", "permutation"},
	)

	// Graph metrics
	TraversalVisited = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eavdb_traversal_entities_visited",
			Help:    "Number of entities visited by a single traverse-db walk",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		},
	)
)

func init() {
	prometheus.MustRegister(OpenConnections)
	prometheus.MustRegister(TransactDuration)
	prometheus.MustRegister(TransactRetries)
	prometheus.MustRegister(SnapshotsTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryRowsReturned)
	prometheus.MustRegister(QueryClauseFilterDuration)
	prometheus.MustRegister(IndexSize)
	prometheus.MustRegister(TraversalVisited)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

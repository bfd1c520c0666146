/*
Package metrics provides Prometheus metrics collection and exposition for
epoch.

The metrics package defines and registers every epoch metric using the
Prometheus client library, providing observability into transact latency
and retries, query latency and row counts, snapshot growth, and index
size per permutation. Metrics are exposed via the HTTP handler returned
by Handler() for scraping by a Prometheus server.

# Metric Categories

Connections:
  - eavdb_open_connections: gauge of connections currently registered

Transact:
  - eavdb_transact_duration_seconds: histogram by connection and outcome
  - eavdb_transact_retries_total: counter of CAS retries absorbed
  - eavdb_snapshots_total: gauge of history length per connection

Query:
  - eavdb_query_duration_seconds: histogram of end-to-end query time
  - eavdb_query_rows_returned: histogram of result row counts
  - eavdb_query_clause_filter_duration_seconds: histogram by index chosen

Index:
  - eavdb_index_size: gauge of leaf fact count per connection/permutation

Graph:
  - eavdb_traversal_entities_visited: histogram of traverse-db walk sizes

# Usage

	timer := metrics.NewTimer()
	next, err := conn.Transact(ops...)
	timer.ObserveDurationVec(metrics.TransactDuration, conn.Name, outcome(err))

pkg/conn.Collector periodically refreshes eavdb_snapshots_total and
eavdb_index_size from the connection registry rather than maintaining
them incrementally, since both are cheap to recompute and awkward to keep
correct across compare-and-set retries.

# See also

  - pkg/conn for the Collector and the Transact call sites that report here
  - Prometheus client docs: https://github.com/prometheus/client_golang
*/
package metrics

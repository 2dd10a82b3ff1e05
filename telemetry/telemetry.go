// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: telemetry.go — prometheus instrumentation
//
// Purpose:
//   - Observability only: query batch size, per-table hit/miss counts,
//     reload duration, registry generation. None of this gates
//     correctness — every metric is best-effort and optional, matching
//     "ambient concerns are carried even when a Non-goal names one."
//
// Grounded on:
//   - github.com/prometheus/client_golang/prometheus, the dependency the
//     erigon example wires for metrics. A direct prometheus.NewCounterVec/
//     NewGauge + MustRegister setup is used rather than erigon's
//     VictoriaMetrics-backed wrapper (erigon-lib/metrics) — that wrapper
//     exists to give Erigon a vendor-neutral facade over two metrics
//     backends, a concern this engine doesn't have. See DESIGN.md.
// ─────────────────────────────────────────────────────────────────────────────

package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every counter/gauge this engine emits. The zero value is
// unusable; use New to obtain a registered instance.
type Metrics struct {
	QueryBatchSize  prometheus.Histogram
	TableHit        *prometheus.CounterVec
	TableMiss       *prometheus.CounterVec
	ReloadDuration  *prometheus.HistogramVec
	RegistryGeneration *prometheus.GaugeVec
}

// New creates and registers every metric against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueryBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "callfwd",
			Name:      "query_batch_size",
			Help:      "Number of phone numbers in one batch query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		TableHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callfwd",
			Name:      "table_hit_total",
			Help:      "Lookups that found a row, by table.",
		}, []string{"table"}),
		TableMiss: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callfwd",
			Name:      "table_miss_total",
			Help:      "Lookups that found no row, by table.",
		}, []string{"table"}),
		ReloadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "callfwd",
			Name:      "reload_duration_seconds",
			Help:      "Time to build and publish a new table version.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table"}),
		RegistryGeneration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callfwd",
			Name:      "registry_generation",
			Help:      "Monotonic publish count for each table's registry slot.",
		}, []string{"table"}),
	}
	reg.MustRegister(m.QueryBatchSize, m.TableHit, m.TableMiss, m.ReloadDuration, m.RegistryGeneration)
	return m
}

// ObserveBatch records a query's key count.
func (m *Metrics) ObserveBatch(n int) {
	m.QueryBatchSize.Observe(float64(n))
}

// RecordLookups adds hit/miss counts for one table.
func (m *Metrics) RecordLookups(table string, hits, misses int) {
	m.TableHit.WithLabelValues(table).Add(float64(hits))
	m.TableMiss.WithLabelValues(table).Add(float64(misses))
}

// TimeReload returns a func to call when a table's rebuild finishes; it
// records both the duration and bumps the generation gauge.
func (m *Metrics) TimeReload(table string) func() {
	start := time.Now()
	return func() {
		m.ReloadDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
		m.RegistryGeneration.WithLabelValues(table).Inc()
	}
}

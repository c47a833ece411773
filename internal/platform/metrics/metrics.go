// Copyright (c) 2026 Palmares. All rights reserved.

// Package metrics provides Prometheus observability for the ingestion pipeline.
//
// All metrics are registered on the default registry via promauto and exposed
// through promhttp at /metrics. Methods are nil-safe so components can run
// without metrics wired (e.g. in unit tests).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ingestion pipeline.
type Metrics struct {
	// Entries extracted per ceremony unit, by outcome
	EntriesExtracted *prometheus.CounterVec

	// Metadata-service resolutions by result ("hit", "miss", "error")
	Resolutions *prometheus.CounterVec

	// Canonical records written, by entity and operation
	RecordsUpserted *prometheus.CounterVec

	// Ceremony units that failed and were skipped by the orchestrator
	UnitFailures prometheus.Counter

	// Wall-clock duration of complete pipeline runs
	RunDuration prometheus.Histogram
}

// New creates a new Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		EntriesExtracted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "palmares_ingest_entries_total",
			Help: "Total raw entries extracted from award pages by outcome",
		}, []string{"outcome"}), // outcome: "processed", "refreshed", "failed"

		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "palmares_metadata_resolutions_total",
			Help: "Total metadata-service resolution attempts by result",
		}, []string{"result"}), // result: "resolved", "unavailable"

		RecordsUpserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "palmares_records_upserted_total",
			Help: "Total canonical records written by entity and operation",
		}, []string{"entity", "op"}), // op: "create", "backfill", "upsert", "refresh", "append"

		UnitFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "palmares_ingest_unit_failures_total",
			Help: "Total ceremony units skipped after an unrecoverable per-unit error",
		}),

		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "palmares_ingest_run_duration_seconds",
			Help:    "Duration of complete ingestion runs",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800},
		}),
	}
}

// IncrementEntries records an extraction outcome.
func (m *Metrics) IncrementEntries(outcome string) {
	if m != nil {
		m.EntriesExtracted.WithLabelValues(outcome).Inc()
	}
}

// IncrementResolution records a metadata-service resolution result.
func (m *Metrics) IncrementResolution(result string) {
	if m != nil {
		m.Resolutions.WithLabelValues(result).Inc()
	}
}

// IncrementUpsert records a canonical record write.
func (m *Metrics) IncrementUpsert(entity, op string) {
	if m != nil {
		m.RecordsUpserted.WithLabelValues(entity, op).Inc()
	}
}

// IncrementUnitFailure records a skipped ceremony unit.
func (m *Metrics) IncrementUnitFailure() {
	if m != nil {
		m.UnitFailures.Inc()
	}
}

// ObserveRunDuration records the wall-clock time of a finished run.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Observe(d.Seconds())
	}
}

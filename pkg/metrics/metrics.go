// Package metrics provides Prometheus metrics for the Protea service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotRefreshesTotal tracks dataset refetches by result
	SnapshotRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protea",
			Subsystem: "snapshot",
			Name:      "refreshes_total",
			Help:      "Total number of dataset snapshot refreshes by result",
		},
		[]string{"result"},
	)

	// SnapshotRefreshDuration tracks dataset refetch duration in seconds
	SnapshotRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "protea",
			Subsystem: "snapshot",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of dataset snapshot refreshes in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// SnapshotRecords tracks the record count in the current snapshot
	SnapshotRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "protea",
			Subsystem: "snapshot",
			Name:      "records",
			Help:      "Number of records in the current snapshot by collection",
		},
		[]string{"collection"},
	)

	// ChangeEventsTotal tracks consumed CDC change events by table
	ChangeEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protea",
			Subsystem: "cdc",
			Name:      "change_events_total",
			Help:      "Total number of consumed CDC change events by table and operation",
		},
		[]string{"table", "op"},
	)

	// RecordWritesTotal tracks API writes by record type and operation
	RecordWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protea",
			Subsystem: "records",
			Name:      "writes_total",
			Help:      "Total number of record writes by type and operation",
		},
		[]string{"record", "operation"},
	)

	// StatsCacheTotal tracks dashboard stats cache lookups by result
	StatsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protea",
			Subsystem: "cache",
			Name:      "stats_lookups_total",
			Help:      "Total number of dashboard stats cache lookups by result",
		},
		[]string{"result"},
	)
)

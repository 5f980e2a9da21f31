package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChecksTotal counts checks by entry point ("item" or "inventory")
	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookban_checks_total",
		Help: "The total number of container checks",
	}, []string{"entry"})

	// RemovalsTotal counts books removed for exceeding the budget
	RemovalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookban_removals_total",
		Help: "The total number of books removed",
	})

	// ScannedBytes observes the aggregate payload size of each scanned tree
	ScannedBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookban_scanned_bytes",
		Help:    "Aggregate serialized page bytes per scanned container tree",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	})

	// FlushesTotal counts view flushes after eviction
	FlushesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookban_flushes_total",
		Help: "The total number of container view flushes",
	}, []string{"status"})

	// EvictionExhaustedTotal counts passes that ran out of candidates over budget
	EvictionExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookban_eviction_exhausted_total",
		Help: "Eviction passes that ended over budget with no candidates left",
	})
)

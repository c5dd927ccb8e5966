package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsProcessed tracks total catalogue rows enriched
	RowsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enricher_rows_processed_total",
			Help: "Total number of catalogue rows enriched",
		},
	)

	// LookupRetries tracks retried lookup attempts per source
	LookupRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enricher_lookup_retries_total",
			Help: "Total number of retried lookup attempts",
		},
		[]string{"source"},
	)

	// LookupFailures tracks lookups that exhausted their retry budget
	LookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enricher_lookup_failures_total",
			Help: "Total number of lookups that exhausted retries",
		},
		[]string{"source"},
	)

	// LookupLatency tracks external lookup latency per source
	LookupLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enricher_lookup_latency_seconds",
			Help:    "External lookup latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Flushes tracks output/checkpoint flushes
	Flushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enricher_flushes_total",
			Help: "Total number of output and checkpoint flushes",
		},
	)

	// CheckpointPosition tracks the last persisted checkpoint position
	CheckpointPosition = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enricher_checkpoint_position",
			Help: "Last persisted checkpoint position",
		},
	)

	// CacheHits tracks lookup cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enricher_cache_hits_total",
			Help: "Total number of lookup cache hits",
		},
	)

	// CacheMisses tracks lookup cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enricher_cache_misses_total",
			Help: "Total number of lookup cache misses",
		},
	)
)

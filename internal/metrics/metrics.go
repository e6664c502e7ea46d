package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChunksTotal tracks total number of chunks created across all pools
	ChunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_chunks_total",
			Help: "Total number of pool chunks created",
		},
	)

	// ArenaBytes tracks bytes currently held by chunk arenas
	ArenaBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mempool_arena_bytes",
			Help: "Bytes currently held by chunk arenas",
		},
		[]string{"type"},
	)

	// GetsTotal counts successful slot acquisitions
	GetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_gets_total",
			Help: "Total number of successful pool Gets",
		},
	)

	// PutsTotal counts successful slot returns
	PutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_puts_total",
			Help: "Total number of successful pool Puts",
		},
	)

	// ForeignPutsTotal counts Puts of pointers no chunk owns
	ForeignPutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_foreign_puts_total",
			Help: "Total number of Puts rejected because the pointer belongs to no chunk",
		},
	)

	// InitFailuresTotal counts element constructions that failed and rolled back
	InitFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_init_failures_total",
			Help: "Total number of element init failures rolled back by GetWith",
		},
	)

	// GrowthFailuresTotal counts chunk-chain growth attempts the memory source refused
	GrowthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mempool_chunk_growth_failures_total",
			Help: "Total number of failed chunk-chain growth attempts",
		},
	)

	// SpinRetriesTotal counts CAS retries in the free-list claim/release loops
	SpinRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mempool_freelist_spin_retries_total",
			Help: "Total number of free-list CAS retries while the opposing operation was in flight",
		},
		[]string{"op"},
	)
)

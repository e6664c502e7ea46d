// Package mempool implements a fixed-element-size, thread-safe object
// pool. A Pool hands out and reclaims same-type element slots from
// pre-allocated contiguous chunks, avoiding heap allocator contention and
// fragmentation on hot construct/destroy paths.
//
// # Basic Usage
//
//	pool, err := mempool.New[Order](mempool.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	order, err := pool.Get() // zeroed *Order
//	if err != nil {
//		return err
//	}
//	// ... use order ...
//	_ = pool.Put(order)
//
// Construction with arguments goes through GetWith; a failing init
// function returns the slot to the pool before the error propagates.
//
// # Concurrency
//
// Any goroutine may Get or Put; there is no slot affinity. Both
// operations are lock-free except for the rare chunk-growth path, which
// briefly holds a per-chunk lock. No ordering of slots across goroutines
// is guaranteed; the only guarantee is that every claimed slot was free
// immediately before the claim.
//
// # Limitations
//
// One element type and one slot size per pool. Chunks are never freed
// before Close. Double Put of the same pointer is not detected and
// corrupts the free list. Diagnostics (ChunkCount, Cap, Allocated, Stats)
// are approximate while operations are in flight.
package mempool

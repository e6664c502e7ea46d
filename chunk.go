package mempool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/a-bronx/MemPool/internal/metrics"
)

// chunk pairs one arena with one free list and a free-capacity counter.
// Chunks form a singly-linked, append-only chain; a chunk exclusively owns
// its successor and no chunk is ever removed while the pool lives.
type chunk[T any] struct {
	arena slotArena[T]
	frees *freeList

	// free is a best-effort count of free slots. It may transiently go
	// negative when concurrent allocations overshoot the last slot; the
	// losers restore it after delegating down the chain.
	free atomic.Int64

	next   atomic.Pointer[chunk[T]]
	growMu sync.Mutex
}

func newChunk[T any](src Source[T], size int) (*chunk[T], error) {
	slots, err := src.Allocate(size)
	if err != nil {
		return nil, fmt.Errorf("mempool: chunk arena: %w", err)
	}
	c := &chunk[T]{
		arena: newSlotArena(slots),
		frees: newFreeList(size),
	}
	c.free.Store(int64(size))

	metrics.ChunksTotal.Inc()
	metrics.ArenaBytes.WithLabelValues("chunk").Add(float64(uintptr(size) * c.arena.elemSize))
	return c, nil
}

func (c *chunk[T]) size() int { return c.arena.size() }

// allocate hands out a raw slot, delegating down the chain when this chunk
// is exhausted. No element construction happens here.
func (c *chunk[T]) allocate(p *Pool[T]) (*T, error) {
	if c.free.Load() <= 0 {
		return c.allocateNext(p)
	}

	// Claim capacity speculatively. Add returns the new value, so a
	// non-negative result means the pre-decrement value was positive and
	// one slot is ours.
	if c.free.Add(-1) >= 0 {
		return c.arena.slot(c.frees.claim()), nil
	}

	// Another goroutine took the last slot between the check and the
	// decrement. Delegate, then give the overdrawn capacity back.
	elem, err := c.allocateNext(p)
	c.free.Add(1)
	return elem, err
}

// allocateNext forwards to the successor chunk, creating it on first
// overflow. The double-checked lock guarantees at most one successor per
// chunk no matter how many goroutines overflow at once; a failed creation
// leaves next unset so a later allocation can retry.
func (c *chunk[T]) allocateNext(p *Pool[T]) (*T, error) {
	next := c.next.Load()
	if next == nil {
		c.growMu.Lock()
		next = c.next.Load()
		if next == nil {
			grown, err := newChunk[T](p.source, c.size())
			if err != nil {
				c.growMu.Unlock()
				metrics.GrowthFailuresTotal.Inc()
				return nil, err
			}
			c.next.Store(grown)
			next = grown
			p.logger.Debug("mempool: chunk chain grown")
		}
		c.growMu.Unlock()
	}
	return next.allocate(p)
}

// owner walks the chain and locates the chunk whose arena contains elem.
func (c *chunk[T]) owner(elem *T) (*chunk[T], uint32, bool) {
	for ; c != nil; c = c.next.Load() {
		if idx, ok := c.arena.indexOf(elem); ok {
			return c, idx, true
		}
	}
	return nil, 0, false
}

// reclaim returns a previously claimed slot to this chunk.
func (c *chunk[T]) reclaim(idx uint32) {
	c.frees.release(idx)
	c.free.Add(1)
}

func (c *chunk[T]) allocated() int {
	return c.size() - int(c.free.Load())
}

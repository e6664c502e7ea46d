package mempool

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/a-bronx/MemPool/internal/metrics"
)

// Pool is a fixed-element-size, thread-safe object pool. It hands out *T
// slots carved from pre-allocated contiguous chunks and reclaims them on
// Put, bypassing the general-purpose heap on the hot path.
//
// Get and Put never block: contention resolves through CAS retry loops,
// except for the rare chunk-growth path which briefly holds a per-chunk
// lock. The pool never shrinks; chunks live until Close.
type Pool[T any] struct {
	cfg    Config
	source Source[T]
	logger *zap.Logger
	reset  func(*T)

	root   *chunk[T]
	closed atomic.Bool
}

// New creates a pool with cfg and options applied in order. A zero
// cfg.ChunkSize falls back to DefaultChunkSize. When cfg.InitialCapacity
// exceeds one chunk, the chain is pre-grown up front instead of lazily.
func New[T any](cfg Config, opts ...Option[T]) (*Pool[T], error) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return nil, ErrZeroSizedElement
	}

	p := &Pool[T]{
		cfg:    cfg,
		source: NewHeapSource[T](),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	root, err := newChunk[T](p.source, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}
	p.root = root

	tail := root
	for have := cfg.ChunkSize; have < cfg.InitialCapacity; have += cfg.ChunkSize {
		grown, err := newChunk[T](p.source, cfg.ChunkSize)
		if err != nil {
			p.releaseChunks()
			return nil, err
		}
		tail.next.Store(grown)
		tail = grown
	}
	return p, nil
}

// Get returns a zeroed element slot. It fails only when the chain must
// grow and the memory source cannot supply a new arena.
func (p *Pool[T]) Get() (*T, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}
	elem, err := p.root.allocate(p)
	if err != nil {
		return nil, err
	}
	// The slot still holds its previous occupant's bytes.
	var zero T
	*elem = zero
	metrics.GetsTotal.Inc()
	return elem, nil
}

// GetWith obtains a zeroed slot and constructs the element in place with
// init. If init fails, the slot is returned to the free list before the
// error is propagated; no slot is ever stranded on a failed construction.
func (p *Pool[T]) GetWith(init func(*T) error) (*T, error) {
	elem, err := p.Get()
	if err != nil {
		return nil, err
	}
	if init == nil {
		return elem, nil
	}
	if err := init(elem); err != nil {
		own, idx, _ := p.root.owner(elem)
		own.reclaim(idx)
		metrics.InitFailuresTotal.Inc()
		return nil, fmt.Errorf("mempool: element init: %w", err)
	}
	return elem, nil
}

// Put runs the reset hook, if any, and returns the element's slot to its
// owning chunk. A nil elem is a no-op. A pointer no chunk owns yields
// ErrForeignPointer and leaves the pool untouched.
func (p *Pool[T]) Put(elem *T) error {
	if elem == nil {
		return nil
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}
	own, idx, ok := p.root.owner(elem)
	if !ok {
		metrics.ForeignPutsTotal.Inc()
		return fmt.Errorf("%w: %p", ErrForeignPointer, elem)
	}
	if p.reset != nil {
		p.reset(elem)
	}
	own.reclaim(idx)
	metrics.PutsTotal.Inc()
	return nil
}

// ChunkSize returns the number of slots per chunk.
func (p *Pool[T]) ChunkSize() int { return p.cfg.ChunkSize }

// ChunkCount returns the current chain length. Approximate while
// allocations are in flight, exact at quiescence.
func (p *Pool[T]) ChunkCount() int {
	n := 0
	for c := p.root; c != nil; c = c.next.Load() {
		n++
	}
	return n
}

// Cap returns the total slot capacity across the chain. Approximate under
// concurrent growth.
func (p *Pool[T]) Cap() int {
	total := 0
	for c := p.root; c != nil; c = c.next.Load() {
		total += c.size()
	}
	return total
}

// Allocated returns the number of slots currently handed out. Approximate
// while operations are in flight, exact at quiescence.
func (p *Pool[T]) Allocated() int {
	total := 0
	for c := p.root; c != nil; c = c.next.Load() {
		total += c.allocated()
	}
	return total
}

// Stats is a point-in-time diagnostic snapshot of a pool.
type Stats struct {
	ChunkSize  int
	ChunkCount int
	Capacity   int
	Allocated  int
}

// Stats walks the chain once and reports all diagnostic counts together.
func (p *Pool[T]) Stats() Stats {
	s := Stats{ChunkSize: p.cfg.ChunkSize}
	for c := p.root; c != nil; c = c.next.Load() {
		s.ChunkCount++
		s.Capacity += c.size()
		s.Allocated += c.allocated()
	}
	return s
}

// Close releases every arena back to the memory source. The pool must be
// quiescent; Get and Put fail with ErrPoolClosed afterwards. If elements
// were never returned their count is reported via ErrLeakedSlots, though
// the arenas are released regardless.
func (p *Pool[T]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	leaked := p.Allocated()
	p.releaseChunks()

	if leaked != 0 {
		p.logger.Warn("mempool: closing with live elements", zap.Int("leaked", leaked))
		return fmt.Errorf("%w: %d", ErrLeakedSlots, leaked)
	}
	return nil
}

func (p *Pool[T]) releaseChunks() {
	for c := p.root; c != nil; c = c.next.Load() {
		metrics.ArenaBytes.WithLabelValues("chunk").Sub(float64(uintptr(c.size()) * c.arena.elemSize))
		p.source.Free(c.arena.slots)
	}
}

package mempool

import (
	"runtime"
	"sync/atomic"

	"github.com/a-bronx/MemPool/internal/metrics"
)

// taken marks a ring position whose claim or release is still in flight.
// It is reserved out of the index space, which is why ChunkSize must stay
// below MaxUint32.
const taken = ^uint32(0)

// freeList tracks the free slot indices of one chunk as a logical ring.
// Each cell holds either a free slot index or the taken sentinel. Two
// free-running cursors award every caller an exclusive ring position, so
// claims never race other claims and releases never race other releases;
// the only cross-thread conflict is a claim meeting a not-yet-finished
// release on the same position, resolved by the CAS retry loops below.
type freeList struct {
	cells    []atomic.Uint32
	claims   atomic.Uint64
	releases atomic.Uint64
}

func newFreeList(size int) *freeList {
	fl := &freeList{cells: make([]atomic.Uint32, size)}
	for i := range fl.cells {
		fl.cells[i].Store(uint32(i))
	}
	return fl
}

// claim hands out the index of a slot that was free immediately before the
// call. The caller must have secured capacity through the chunk's free
// counter first; without that reservation the ring position may never be
// filled and claim would spin forever.
func (fl *freeList) claim() uint32 {
	pos := (fl.claims.Add(1) - 1) % uint64(len(fl.cells))
	cell := &fl.cells[pos]
	spins := 0
	for {
		idx := cell.Load()
		if idx != taken && cell.CompareAndSwap(idx, taken) {
			if spins > 0 {
				metrics.SpinRetriesTotal.WithLabelValues("claim").Add(float64(spins))
			}
			return idx
		}
		// The release that will refill this position is mid-flight on
		// another goroutine; yield so it can finish.
		spins++
		runtime.Gosched()
	}
}

// release returns a slot index to the ring. The position handed out by the
// release cursor may still hold the index of a slot whose claim has not
// finished; swap in our index only once the claimant has stamped the cell.
func (fl *freeList) release(idx uint32) {
	pos := (fl.releases.Add(1) - 1) % uint64(len(fl.cells))
	cell := &fl.cells[pos]
	spins := 0
	for !cell.CompareAndSwap(taken, idx) {
		spins++
		runtime.Gosched()
	}
	if spins > 0 {
		metrics.SpinRetriesTotal.WithLabelValues("release").Add(float64(spins))
	}
}

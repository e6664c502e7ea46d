package mempool

import (
	"unsafe"
)

// slotArena is the fixed contiguous storage for one chunk's worth of
// elements. It only deals in raw slots and address arithmetic; pairing of
// construction and release lives in Pool.
type slotArena[T any] struct {
	slots    []T
	base     uintptr
	elemSize uintptr
}

func newSlotArena[T any](slots []T) slotArena[T] {
	var zero T
	return slotArena[T]{
		slots:    slots,
		base:     uintptr(unsafe.Pointer(unsafe.SliceData(slots))),
		elemSize: unsafe.Sizeof(zero),
	}
}

func (a *slotArena[T]) size() int { return len(a.slots) }

func (a *slotArena[T]) slot(idx uint32) *T { return &a.slots[idx] }

// indexOf maps elem back to its slot index. An address outside the arena,
// or inside it but off a slot boundary, reports false: a misaligned pointer
// fed into the free list would hand the same storage out twice.
func (a *slotArena[T]) indexOf(elem *T) (uint32, bool) {
	addr := uintptr(unsafe.Pointer(elem))
	if addr < a.base {
		return 0, false
	}
	off := addr - a.base
	if off >= a.elemSize*uintptr(len(a.slots)) {
		return 0, false
	}
	if off%a.elemSize != 0 {
		return 0, false
	}
	return uint32(off / a.elemSize), true
}

package mempool

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Source supplies and reclaims the raw storage backing one chunk's arena.
// Allocate is called once per chunk, Free once per chunk at Close. A
// Source must tolerate concurrent calls; the pool serializes growth but
// distinct pools may share one Source.
type Source[T any] interface {
	Allocate(n int) ([]T, error)
	Free(slots []T)
}

// NewHeapSource returns the default Source, backed by the Go heap. Freeing
// is left to the garbage collector.
func NewHeapSource[T any]() Source[T] {
	return heapSource[T]{}
}

type heapSource[T any] struct{}

func (heapSource[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

func (heapSource[T]) Free([]T) {}

// NewArrowSource adapts an Apache Arrow allocator as a chunk storage
// source.
//
// WARNING: the returned slots view raw allocator memory that the garbage
// collector does not scan. T must not contain pointers, or anything an
// element references may be collected while still in use.
func NewArrowSource[T any](mem memory.Allocator) Source[T] {
	return &arrowSource[T]{mem: mem, bufs: make(map[uintptr][]byte)}
}

type arrowSource[T any] struct {
	mem memory.Allocator

	mu   sync.Mutex
	bufs map[uintptr][]byte // arena base -> backing buffer, for Free
}

var errShortArrowBuffer = errors.New("arrow allocator returned a short buffer")

func (s *arrowSource[T]) Allocate(n int) ([]T, error) {
	var zero T
	size := n * int(unsafe.Sizeof(zero))
	buf := s.mem.Allocate(size)
	if len(buf) < size {
		return nil, errShortArrowBuffer
	}
	base := unsafe.Pointer(unsafe.SliceData(buf))
	slots := unsafe.Slice((*T)(base), n)

	s.mu.Lock()
	s.bufs[uintptr(base)] = buf
	s.mu.Unlock()
	return slots, nil
}

func (s *arrowSource[T]) Free(slots []T) {
	if len(slots) == 0 {
		return
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(slots)))

	s.mu.Lock()
	buf, ok := s.bufs[base]
	delete(s.bufs, base)
	s.mu.Unlock()

	if ok {
		s.mem.Free(buf)
	}
}

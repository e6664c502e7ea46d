package mempool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// T workers each run I iterations of claiming Q elements and returning
// them all; the pool must drain to zero once every worker finishes.
func TestPool_ConcurrentChurn(t *testing.T) {
	const (
		workers    = 16
		iterations = 100
		quota      = 100
	)

	pool, err := New[pair](Config{ChunkSize: 64})
	require.NoError(t, err)
	defer pool.Close()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		id := int64(w)
		g.Go(func() error {
			held := make([]*pair, 0, quota)
			for i := 0; i < iterations; i++ {
				for q := 0; q < quota; q++ {
					elem, err := pool.Get()
					if err != nil {
						return err
					}
					elem.A = id
					held = append(held, elem)
				}
				for _, elem := range held {
					if elem.A != id {
						t.Errorf("slot aliased across workers: got %d, want %d", elem.A, id)
					}
					if err := pool.Put(elem); err != nil {
						return err
					}
				}
				held = held[:0]
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, pool.Allocated())
	assert.Zero(t, pool.Cap()%pool.ChunkSize())
}

// Producers Get and hand elements to consumers that Put them, so claims
// and releases of the same slots land on different goroutines.
func TestPool_ConcurrentHandoff(t *testing.T) {
	const (
		producers = 8
		perWorker = 2000
	)

	pool, err := New[pair](Config{ChunkSize: 32})
	require.NoError(t, err)
	defer pool.Close()

	elems := make(chan *pair, 128)
	var g errgroup.Group

	for w := 0; w < producers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				elem, err := pool.Get()
				if err != nil {
					return err
				}
				elems <- elem
			}
			return nil
		})
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if err := pool.Put(<-elems); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, pool.Allocated())
}

// Concurrent overflow of an exhausted chunk must create exactly one
// successor.
func TestPool_ConcurrentGrowth(t *testing.T) {
	const workers = 16

	pool, err := New[pair](Config{ChunkSize: workers})
	require.NoError(t, err)
	defer pool.Close()

	// Exhaust the root chunk.
	held := make([]*pair, 0, workers)
	for i := 0; i < workers; i++ {
		elem, err := pool.Get()
		require.NoError(t, err)
		held = append(held, elem)
	}

	// Everyone overflows at once.
	var start sync.WaitGroup
	start.Add(1)
	var g errgroup.Group
	overflowed := make(chan *pair, workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			start.Wait()
			elem, err := pool.Get()
			if err != nil {
				return err
			}
			overflowed <- elem
			return nil
		})
	}
	start.Done()
	require.NoError(t, g.Wait())
	close(overflowed)

	assert.Equal(t, 2, pool.ChunkCount())

	for elem := range overflowed {
		require.NoError(t, pool.Put(elem))
	}
	for _, elem := range held {
		require.NoError(t, pool.Put(elem))
	}
	assert.Equal(t, 0, pool.Allocated())
}

func FuzzPool_ConcurrentChurn(f *testing.F) {
	f.Add(uint8(4), uint8(16), uint8(8))
	f.Add(uint8(16), uint8(64), uint8(3))
	f.Add(uint8(255), uint8(2), uint8(255))

	f.Fuzz(func(t *testing.T, workers, chunkSize, burst uint8) {
		if workers == 0 || chunkSize < 2 || burst == 0 {
			return
		}

		pool, err := New[pair](Config{ChunkSize: int(chunkSize)})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer pool.Close()

		var wg sync.WaitGroup
		wg.Add(int(workers))
		for w := uint8(0); w < workers; w++ {
			go func() {
				defer wg.Done()
				held := make([]*pair, 0, burst)
				for i := uint8(0); i < burst; i++ {
					elem, err := pool.Get()
					if err != nil {
						t.Errorf("Get: %v", err)
						return
					}
					held = append(held, elem)
				}
				for _, elem := range held {
					if err := pool.Put(elem); err != nil {
						t.Errorf("Put: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()

		if got := pool.Allocated(); got != 0 {
			t.Errorf("expected 0 allocated after drain, got %d", got)
		}
	})
}

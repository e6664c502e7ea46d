package mempool

import (
	"testing"
)

func BenchmarkPool_GetPut(b *testing.B) {
	pool, err := New[pair](Config{ChunkSize: 1024})
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		elem, err := pool.Get()
		if err != nil {
			b.Fatal(err)
		}
		if err := pool.Put(elem); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPool_GetPutParallel(b *testing.B) {
	pool, err := New[pair](Config{ChunkSize: 1024})
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			elem, err := pool.Get()
			if err != nil {
				b.Fatal(err)
			}
			if err := pool.Put(elem); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkPool_Burst(b *testing.B) {
	const burst = 256

	pool, err := New[pair](Config{ChunkSize: 1024})
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	held := make([]*pair, 0, burst)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for q := 0; q < burst; q++ {
			elem, err := pool.Get()
			if err != nil {
				b.Fatal(err)
			}
			held = append(held, elem)
		}
		for _, elem := range held {
			if err := pool.Put(elem); err != nil {
				b.Fatal(err)
			}
		}
		held = held[:0]
	}
}

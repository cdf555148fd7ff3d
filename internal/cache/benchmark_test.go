package cache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Alex-Alec/Project2-LRUCache/internal/cache"
	"github.com/Alex-Alec/Project2-LRUCache/internal/provider"
)

func newBenchCache(b *testing.B, capacity int) (*cache.LRU[int, int], *provider.Map[int, int]) {
	b.Helper()
	p := provider.NewMap[int, int]()
	p.Populate(2*capacity, func(i int) (int, int) { return i, i })

	c, err := cache.New[int, int](p, capacity)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < capacity; i++ {
		if _, err := c.Get(context.Background(), i); err != nil {
			b.Fatal(err)
		}
	}
	return c, p
}

// BenchmarkGetHit measures promotion cost at several resident sizes.
func BenchmarkGetHit(b *testing.B) {
	for _, capacity := range []int{1_000, 10_000, 100_000, 500_000} {
		b.Run(fmt.Sprintf("capacity=%d", capacity), func(b *testing.B) {
			c, _ := newBenchCache(b, capacity)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = c.Get(ctx, i%capacity)
			}
		})
	}
}

// BenchmarkGetMiss measures evict + fetch + insert at several resident sizes.
// Keys alternate between two disjoint ranges so every lookup misses.
func BenchmarkGetMiss(b *testing.B) {
	for _, capacity := range []int{1_000, 10_000, 100_000, 500_000} {
		b.Run(fmt.Sprintf("capacity=%d", capacity), func(b *testing.B) {
			c, _ := newBenchCache(b, capacity)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = c.Get(ctx, (capacity+i)%(2*capacity))
			}
		})
	}
}

func BenchmarkSynchronizedGet(b *testing.B) {
	lru, _ := newBenchCache(b, 10_000)
	c := cache.NewSynchronized(lru)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		i := 0
		for pb.Next() {
			_, _ = c.Get(ctx, i%20_000)
			i++
		}
	})
}

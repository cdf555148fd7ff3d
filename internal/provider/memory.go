package provider

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Alex-Alec/Project2-LRUCache/internal/cache"
)

// Map is an in-memory provider. It counts every Get, found or not, so tests
// can assert exactly when the cache consulted it.
type Map[K comparable, V any] struct {
	mu      sync.RWMutex
	data    map[K]V
	fetches atomic.Int64
}

// NewMap returns an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{data: make(map[K]V)}
}

// NewStringInt returns a Map resolving "0".."n-1" to 0..n-1.
func NewStringInt(n int) *Map[string, int] {
	m := NewMap[string, int]()
	m.Populate(n, func(i int) (string, int) {
		return strconv.Itoa(i), i
	})
	return m
}

// Add stores or replaces a value.
func (m *Map[K, V]) Add(key K, value V) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
}

// Populate adds n entries produced by fn(0)..fn(n-1).
func (m *Map[K, V]) Populate(n int, fn func(i int) (K, V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		k, v := fn(i)
		m.data[k] = v
	}
}

// Get implements cache.Provider.
func (m *Map[K, V]) Get(_ context.Context, key K) (V, error) {
	m.fetches.Add(1)

	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return v, cache.NotFound(key)
	}
	return v, nil
}

// Fetches returns how many times Get has been called.
func (m *Map[K, V]) Fetches() int64 {
	return m.fetches.Load()
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Func adapts a function to cache.Provider.
type Func[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Get implements cache.Provider.
func (f Func[K, V]) Get(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}

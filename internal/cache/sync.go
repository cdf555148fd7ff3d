package cache

import (
	"context"
	"sync"
)

// Synchronized guards an LRU with a single mutex so it can be shared between
// goroutines.
//
// The lock covers the whole Get, including the provider call on a miss: the
// hit/miss decision and the evict-then-insert sequence happen atomically, so
// the cache can never transiently exceed capacity or evict twice for one
// insert. Provider calls are serialized as a consequence.
type Synchronized[K comparable, V any] struct {
	mu  sync.Mutex
	lru *LRU[K, V]
}

// NewSynchronized wraps lru. The caller must not use lru directly afterwards.
func NewSynchronized[K comparable, V any](lru *LRU[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{lru: lru}
}

// Get is LRU.Get under the lock.
func (s *Synchronized[K, V]) Get(ctx context.Context, key K) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(ctx, key)
}

// MissCount returns the number of misses since construction.
func (s *Synchronized[K, V]) MissCount() int64 {
	// Statistics are atomic; no lock needed.
	return s.lru.MissCount()
}

// Len returns the number of resident entries.
func (s *Synchronized[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Keys returns keys in MRU -> LRU order.
func (s *Synchronized[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Keys()
}

// Stats returns the statistics tracker of the wrapped cache.
func (s *Synchronized[K, V]) Stats() *Statistics {
	return s.lru.Stats()
}

// Verify runs LRU.Verify under the lock.
func (s *Synchronized[K, V]) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Verify()
}

package cache

import (
	"sync/atomic"
	"time"
)

// Statistics tracks cache activity. Counters are atomic so a snapshot can be
// taken from another goroutine while the owner keeps serving lookups.
type Statistics struct {
	hits           atomic.Int64
	misses         atomic.Int64
	evictions      atomic.Int64
	notFound       atomic.Int64
	providerErrors atomic.Int64
	currentSize    atomic.Int64
	maxSize        atomic.Int64

	startTime time.Time
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{startTime: time.Now()}
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a provider consultation.
func (s *Statistics) Miss() { s.misses.Add(1) }

// Eviction records an LRU eviction.
func (s *Statistics) Eviction() { s.evictions.Add(1) }

// NotFound records a miss the provider could not resolve.
func (s *Statistics) NotFound() { s.notFound.Add(1) }

// ProviderError records a miss where the provider failed.
func (s *Statistics) ProviderError() { s.providerErrors.Add(1) }

// UpdateSize records the number of resident entries.
func (s *Statistics) UpdateSize(size int64) {
	s.currentSize.Store(size)
	for {
		peak := s.maxSize.Load()
		if size <= peak || s.maxSize.CompareAndSwap(peak, size) {
			return
		}
	}
}

// Hits returns the total number of cache hits.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the total number of misses.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Evictions returns the total number of evictions.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// NotFounds returns how many misses ended in a not-found result.
func (s *Statistics) NotFounds() int64 { return s.notFound.Load() }

// ProviderErrors returns how many misses ended in a provider failure.
func (s *Statistics) ProviderErrors() int64 { return s.providerErrors.Load() }

// CurrentSize returns the number of resident entries.
func (s *Statistics) CurrentSize() int64 { return s.currentSize.Load() }

// MaxSize returns the largest number of entries ever resident.
func (s *Statistics) MaxSize() int64 { return s.maxSize.Load() }

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s *Statistics) HitRatio() float64 {
	hits := s.Hits()
	total := hits + s.Misses()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// Uptime returns how long the tracker has existed.
func (s *Statistics) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// StatsSummary is a point-in-time copy of Statistics.
type StatsSummary struct {
	Hits           int64         `json:"hits"`
	Misses         int64         `json:"misses"`
	Evictions      int64         `json:"evictions"`
	NotFound       int64         `json:"not_found"`
	ProviderErrors int64         `json:"provider_errors"`
	CurrentSize    int64         `json:"current_size"`
	MaxSize        int64         `json:"max_size"`
	HitRatio       float64       `json:"hit_ratio"`
	Uptime         time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Hits:           s.Hits(),
		Misses:         s.Misses(),
		Evictions:      s.Evictions(),
		NotFound:       s.NotFounds(),
		ProviderErrors: s.ProviderErrors(),
		CurrentSize:    s.CurrentSize(),
		MaxSize:        s.MaxSize(),
		HitRatio:       s.HitRatio(),
		Uptime:         s.Uptime(),
	}
}

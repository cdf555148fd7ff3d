package cache

import (
	"context"
	"log/slog"

	"github.com/jmgilman/go/errors"
)

// Provider is the slow data source the cache sits in front of.
//
// Get returns the value for key, or an error carrying errors.CodeNotFound when
// the key cannot be resolved. Any other error is treated as a provider failure.
type Provider[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, error)
}

// LRU is a fixed-capacity lookup cache with least-recently-used eviction.
//
// The core design is intentionally explicit:
// a map gives O(1) key lookup, and an arena-backed doubly-linked list
// maintains recency ordering. The map stores list handles, never pointers.
//
// LRU is not safe for concurrent use. Wrap it with NewSynchronized when
// several goroutines share one instance.
type LRU[K comparable, V any] struct {
	provider Provider[K, V]
	capacity int

	index map[K]int           // key -> handle into order
	order *recencyList[K, V] // head = LRU, tail = MRU

	stats   *Statistics   // always present
	metrics *cacheMetrics // optional
	evictFn EvictCallback[K, V]
	logger  *slog.Logger
}

// New constructs a cache of the given capacity in front of p.
//
// A capacity of zero is valid: nothing is stored and every Get goes to the
// provider. A negative capacity or a nil provider fails with
// errors.CodeInvalidConfig.
func New[K comparable, V any](p Provider[K, V], capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if p == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "cache provider must not be nil")
	}
	if capacity < 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig, "cache capacity must be >= 0, got %d", capacity)
	}

	o := applyOptions(opts...)

	var metrics *cacheMetrics
	if o.metricsReg != nil {
		var err error
		metrics, err = newCacheMetrics(o.metricsReg, o.metricsName)
		if err != nil {
			return nil, err
		}
	}

	return &LRU[K, V]{
		provider: p,
		capacity: capacity,
		index:    make(map[K]int, min(capacity, maxPreallocate)),
		order:    newRecencyList[K, V](capacity),
		stats:    NewStatistics(),
		metrics:  metrics,
		evictFn:  o.evictCallback,
		logger:   o.logger,
	}, nil
}

// Get returns the value for key.
//
// A hit promotes the entry to most recently used and never consults the
// provider. A miss evicts the least recently used entry if the cache is full,
// asks the provider once, and stores the result. Not-found results and
// provider failures are returned to the caller and are not stored; both still
// count as a miss.
//
// ctx is only forwarded to the provider.
//
// Complexity: O(1) expected for both hits and misses.
func (c *LRU[K, V]) Get(ctx context.Context, key K) (V, error) {
	if c.capacity == 0 {
		return c.fetch(ctx, key)
	}

	if h, ok := c.index[key]; ok {
		c.order.moveToBack(h)
		c.stats.Hit()
		if c.metrics != nil {
			c.metrics.recordHit()
		}
		return c.order.nodes[h].value, nil
	}

	// Evict before inserting so the cache never holds more than capacity.
	if len(c.index) == c.capacity {
		c.evictLRU(ctx)
	}

	value, err := c.fetch(ctx, key)
	if err != nil {
		return value, err
	}

	c.index[key] = c.order.pushBack(key, value)
	c.updateSize()
	return value, nil
}

// MissCount returns the number of misses since construction.
func (c *LRU[K, V]) MissCount() int64 {
	return c.stats.Misses()
}

// Contains reports whether key is resident without changing its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of resident entries.
func (c *LRU[K, V]) Len() int {
	return len(c.index)
}

// Cap returns the capacity the cache was built with.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper; it is O(n).
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, c.order.Len())
	for h := c.order.tail; h != nilHandle; h = c.order.nodes[h].prev {
		out = append(out, c.order.nodes[h].key)
	}
	return out
}

// Stats returns the always-on statistics tracker.
func (c *LRU[K, V]) Stats() *Statistics {
	return c.stats
}

// fetch consults the provider and accounts for the miss.
func (c *LRU[K, V]) fetch(ctx context.Context, key K) (V, error) {
	c.stats.Miss()
	if c.metrics != nil {
		c.metrics.recordMiss()
	}

	value, err := c.provider.Get(ctx, key)
	if err == nil {
		return value, nil
	}

	var zero V
	if IsNotFound(err) {
		c.stats.NotFound()
		if c.metrics != nil {
			c.metrics.recordNotFound()
		}
		return zero, err
	}

	c.stats.ProviderError()
	if c.metrics != nil {
		c.metrics.recordProviderError()
	}
	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.DebugContext(ctx, "provider lookup failed", "key", key, "error", err)
	}
	if errors.GetCode(err) == errors.CodeUnknown {
		err = errors.Wrap(err, errors.CodeUnavailable, "provider lookup failed")
	}
	return zero, err
}

// evictLRU removes the least recently used entry from both structures.
func (c *LRU[K, V]) evictLRU(ctx context.Context) {
	key, value, ok := c.order.popFront()
	if !ok {
		return
	}
	delete(c.index, key)

	c.stats.Eviction()
	if c.metrics != nil {
		c.metrics.recordEviction()
	}
	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.DebugContext(ctx, "evicted least recently used entry", "key", key)
	}
	if c.evictFn != nil {
		c.evictFn(key, value)
	}
	c.updateSize()
}

func (c *LRU[K, V]) updateSize() {
	size := int64(len(c.index))
	c.stats.UpdateSize(size)
	if c.metrics != nil {
		c.metrics.updateSize(size)
	}
}

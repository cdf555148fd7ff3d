package cache

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// EvictCallback is called after an entry has been evicted.
type EvictCallback[K comparable, V any] func(key K, value V)

// Option configures a cache using the functional options pattern.
type Option[K comparable, V any] func(*cacheOptions[K, V])

type cacheOptions[K comparable, V any] struct {
	// metricsReg is optional; when set, statistics are also exported to Prometheus.
	metricsReg  prometheus.Registerer
	metricsName string

	evictCallback EvictCallback[K, V]
	logger        *slog.Logger
}

// WithMetrics exports cache activity as Prometheus metrics labelled with name.
// A nil registerer or empty name leaves metrics disabled.
func WithMetrics[K comparable, V any](reg prometheus.Registerer, name string) Option[K, V] {
	return func(o *cacheOptions[K, V]) {
		if reg != nil && name != "" {
			o.metricsReg = reg
			o.metricsName = name
		}
	}
}

// WithEvictionCallback sets a function called with every evicted entry.
func WithEvictionCallback[K comparable, V any](fn EvictCallback[K, V]) Option[K, V] {
	return func(o *cacheOptions[K, V]) {
		o.evictCallback = fn
	}
}

// WithLogger sets the logger used for debug records. Nil is ignored.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(o *cacheOptions[K, V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions[K comparable, V any](options ...Option[K, V]) *cacheOptions[K, V] {
	o := &cacheOptions[K, V]{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

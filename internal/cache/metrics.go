package cache

import (
	stderrors "errors"

	"github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// cacheMetrics holds Prometheus metrics for one cache instance.
type cacheMetrics struct {
	hits           prometheus.Counter
	misses         prometheus.Counter
	evictions      prometheus.Counter
	notFound       prometheus.Counter
	providerErrors prometheus.Counter

	size prometheus.Gauge
}

func newCacheMetrics(reg prometheus.Registerer, name string) (*cacheMetrics, error) {
	labels := prometheus.Labels{"cache": name}
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        metric,
			ConstLabels: labels,
			Help:        help,
		})
	}

	m := &cacheMetrics{
		hits:           counter("hits_total", "Total number of cache hits"),
		misses:         counter("misses_total", "Total number of cache misses"),
		evictions:      counter("evictions_total", "Total number of LRU evictions"),
		notFound:       counter("not_found_total", "Total number of misses the provider could not resolve"),
		providerErrors: counter("provider_errors_total", "Total number of failed provider lookups"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "entries",
			ConstLabels: labels,
			Help:        "Current number of resident entries",
		}),
	}

	collectors := []prometheus.Collector{m.hits, m.misses, m.evictions, m.notFound, m.providerErrors, m.size}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			var already prometheus.AlreadyRegisteredError
			if stderrors.As(err, &already) {
				return nil, errors.Wrapf(err, errors.CodeAlreadyExists, "metrics for cache %q already registered", name)
			}
			return nil, errors.Wrap(err, errors.CodeInternal, "register cache metrics")
		}
	}
	return m, nil
}

func (m *cacheMetrics) recordHit()           { m.hits.Inc() }
func (m *cacheMetrics) recordMiss()          { m.misses.Inc() }
func (m *cacheMetrics) recordEviction()      { m.evictions.Inc() }
func (m *cacheMetrics) recordNotFound()      { m.notFound.Inc() }
func (m *cacheMetrics) recordProviderError() { m.providerErrors.Inc() }

func (m *cacheMetrics) updateSize(size int64) {
	m.size.Set(float64(size))
}

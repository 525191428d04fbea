package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the translation engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolutionsTotal     *prometheus.CounterVec
	providerAttempts     *prometheus.CounterVec
	providerDuration     *prometheus.HistogramVec
	cacheLookups         *prometheus.CounterVec
	cacheStoreErrors     prometheus.Counter
	coalescedResolutions prometheus.Counter

	registry *prometheus.Registry
}

// New creates the collectors on a private registry. namespace prefixes every
// metric name.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "translation_resolutions_total",
				Help:      "Resolutions by request kind and the tier that answered",
			},
			[]string{"kind", "tier"},
		),

		providerAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "translation_provider_attempts_total",
				Help:      "Provider calls by provider and outcome (accepted or error kind)",
			},
			[]string{"provider", "outcome"},
		),

		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "translation_provider_duration_seconds",
				Help:      "Provider call latency in seconds",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 4, 8},
			},
			[]string{"provider"},
		),

		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "translation_cache_lookups_total",
				Help:      "Cache lookups by tier and result (hit, miss, expired)",
			},
			[]string{"tier", "result"},
		),

		cacheStoreErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "translation_cache_store_errors_total",
				Help:      "Persistent cache operations that failed and were treated as misses",
			},
		),

		coalescedResolutions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "translation_coalesced_resolutions_total",
				Help:      "Resolutions answered by an identical in-flight resolution",
			},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.resolutionsTotal,
		m.providerAttempts,
		m.providerDuration,
		m.cacheLookups,
		m.cacheStoreErrors,
		m.coalescedResolutions,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordResolution records which tier answered a resolution.
func (m *Metrics) RecordResolution(kind, tier string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(kind, tier).Inc()
}

// RecordProviderAttempt records one provider call.
func (m *Metrics) RecordProviderAttempt(provider, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.providerAttempts.WithLabelValues(provider, outcome).Inc()
	m.providerDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheLookup records a lookup in one cache tier.
func (m *Metrics) RecordCacheLookup(tier, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(tier, result).Inc()
}

// RecordCacheStoreError records a failed persistent cache operation.
func (m *Metrics) RecordCacheStoreError() {
	if m == nil {
		return
	}
	m.cacheStoreErrors.Inc()
}

// RecordCoalesced records a resolution that shared an in-flight result.
func (m *Metrics) RecordCoalesced() {
	if m == nil {
		return
	}
	m.coalescedResolutions.Inc()
}

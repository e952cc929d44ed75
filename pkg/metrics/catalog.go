package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks calls against the external product feed.
type CatalogMetrics struct {
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCatalogMetrics registers the feed metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_feed_fetches_total",
		Help: "External feed fetches, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_feed_fetch_duration_seconds",
		Help:    "External feed fetch latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(fetches, duration)
	return &CatalogMetrics{
		fetches:  fetches,
		duration: duration,
	}
}

// ObserveFetch records a single feed call.
func (c *CatalogMetrics) ObserveFetch(operation string, err error, elapsed time.Duration) {
	if c == nil || c.fetches == nil {
		return
	}
	operation = normalizeLabel(operation)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.fetches.WithLabelValues(operation, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

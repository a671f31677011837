package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry              *prometheus.Registry
	RequestsTotal         *prometheus.CounterVec
	RequestDuration       prometheus.Histogram
	CacheHitsTotal        prometheus.Counter
	ReviewsExtractedTotal *prometheus.CounterVec
	ErrorsTotal           *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_requests_total",
			Help: "Total page requests issued by the scraper.",
		},
		[]string{"outcome"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviews_request_duration_seconds",
			Help:    "HTTP request latency for page fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_page_cache_hits_total",
			Help: "Page fetches served from the in-memory cache.",
		},
	)
	reviewsExtracted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_extracted_total",
			Help: "Total reviews extracted, by category.",
		},
		[]string{"category"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_scrape_errors_total",
			Help: "Total category scrape failures.",
		},
		[]string{"category"},
	)

	registry.MustRegister(requests, requestDuration, cacheHits, reviewsExtracted, errorsTotal)

	return &Metrics{
		Registry:              registry,
		RequestsTotal:         requests,
		RequestDuration:       requestDuration,
		CacheHitsTotal:        cacheHits,
		ReviewsExtractedTotal: reviewsExtracted,
		ErrorsTotal:           errorsTotal,
	}
}

// IncRequest increments the requests total counter for an outcome label.
func (m *Metrics) IncRequest(outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncCacheHit increments the page cache hit counter.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// AddReviews adds to the extracted reviews counter for a category.
func (m *Metrics) AddReviews(category string, n int) {
	if m == nil {
		return
	}
	m.ReviewsExtractedTotal.WithLabelValues(category).Add(float64(n))
}

// IncError increments the scrape error counter for a category.
func (m *Metrics) IncError(category string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(category).Inc()
}

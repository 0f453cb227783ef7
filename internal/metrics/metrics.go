// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FootprintEstimates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecovision_footprint_estimates_total",
			Help: "Total number of footprint estimates by rating band",
		},
		[]string{"band"},
	)

	FootprintTotalKg = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ecovision_footprint_total_kg",
			Help:    "Distribution of estimated footprint totals in kg CO2",
			Buckets: []float64{50, 100, 200, 300, 500, 700, 1000, 2000},
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecovision_cache_hits_total",
			Help: "Total number of indicator cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecovision_cache_misses_total",
			Help: "Total number of indicator cache misses",
		},
		[]string{"cache_type"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecovision_upstream_requests_total",
			Help: "Total number of climate API requests",
		},
		[]string{"status"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ecovision_upstream_request_duration_seconds",
			Help:    "Climate API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecovision_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordEstimate records one footprint estimate.
func RecordEstimate(band string, totalKg float64) {
	FootprintEstimates.WithLabelValues(band).Inc()
	FootprintTotalKg.Observe(totalKg)
}

// RecordCacheLookup records hits and misses of one batch lookup.
func RecordCacheLookup(cacheType string, hits, misses int) {
	CacheHits.WithLabelValues(cacheType).Add(float64(hits))
	CacheMisses.WithLabelValues(cacheType).Add(float64(misses))
}

// RecordUpstreamRequest records a climate API call.
func RecordUpstreamRequest(duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
}

func RecordRateLimitExceeded() {
	RateLimitExceeded.Inc()
}

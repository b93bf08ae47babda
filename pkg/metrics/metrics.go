// Package metrics holds the Prometheus collectors for the listing proxy.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Upstream feed
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Duration of upstream feed fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"result"}, // "success", "failure"
	)

	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of failed upstream feed fetches by class",
		},
		[]string{"class"},
	)

	FeedBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_body_bytes",
			Help:    "Size of fetched feed bodies in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// Transformation
	TransformOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_transform_outcomes_total",
			Help: "Feed transformations by outcome (films, empty, unparseable)",
		},
		[]string{"outcome"},
	)

	FilmsListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_films_listed",
			Help: "Number of films in the most recent listing response",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFeedFetch records one upstream fetch. errClass is empty on success.
func RecordFeedFetch(duration time.Duration, size int, errClass string) {
	if errClass != "" {
		FeedFetchDuration.WithLabelValues("failure").Observe(duration.Seconds())
		FeedFetchErrors.WithLabelValues(errClass).Inc()
		return
	}
	FeedFetchDuration.WithLabelValues("success").Observe(duration.Seconds())
	FeedBytes.Observe(float64(size))
}

func RecordTransform(outcome string, films int) {
	TransformOutcomes.WithLabelValues(outcome).Inc()
	FilmsListed.Set(float64(films))
}

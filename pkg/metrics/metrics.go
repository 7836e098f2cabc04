package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tube_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tube_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	MediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tube_media_operations_total",
			Help: "Uploads and deletions against the media host",
		},
		[]string{"operation", "resource_type", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tube_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	OutboxEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tube_outbox_events_total",
			Help: "Outbox events by final status of a relay attempt",
		},
		[]string{"kind", "status"},
	)

	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tube_toggle_total",
			Help: "Toggle relation flips by kind and resulting state",
		},
		[]string{"kind", "state"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tube_rate_limited_total",
			Help: "Requests rejected by the rate limiter or flow control",
		},
	)
)

func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordMediaOperation(operation, resourceType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	MediaOperations.WithLabelValues(operation, resourceType, result).Inc()
}

func RecordOutbox(kind, status string) {
	OutboxEvents.WithLabelValues(kind, status).Inc()
}

func RecordToggle(kind string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	ToggleTotal.WithLabelValues(kind, state).Inc()
}

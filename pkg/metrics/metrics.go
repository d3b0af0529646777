package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contacts_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// result: hit, miss, negative_hit, error
	PostalCodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_postal_code_lookups_total",
			Help: "Postal code validations by cache outcome",
		},
		[]string{"result"},
	)

	// status: enqueued, enqueue_failed, sent, retried, dropped
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_notifications_total",
			Help: "Contact notifications by delivery stage",
		},
		[]string{"status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_exports_total",
			Help: "Contact exports by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	RateLimitBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_rate_limit_blocks_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"prefix"},
	)
)

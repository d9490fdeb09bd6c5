// README: Prometheus collectors for the order-intake pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_decisions_total",
			Help: "Routing decisions by outcome",
		},
		[]string{"source", "kind"}, // source: chat, verify; kind: forwarded, rejected_closed, rejected_too_far, pass_through
	)

	CompletionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_completion_requests_total",
			Help: "Calls to the completion service",
		},
		[]string{"provider", "status"},
	)

	CompletionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pedidos_completion_seconds",
			Help:    "Completion service round trip time",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	DistanceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_distance_lookups_total",
			Help: "Delivery distance lookups",
		},
		[]string{"status"},
	)

	Forwards = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pedidos_forwards_total",
			Help: "Orders pushed to downstream sinks",
		},
		[]string{"sink", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPResponseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "HTTP response time",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "path"},
	)
)

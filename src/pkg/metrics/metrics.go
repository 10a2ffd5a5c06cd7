package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LifecycleEvents counts job lifecycle transitions (post created, bid submitted, offer created, ...).
	LifecycleEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_lifecycle_events_total",
		Help: "Job lifecycle operations by outcome.",
	}, []string{"operation", "outcome"})

	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_side_effect_failures_total",
		Help: "Post-commit side effects (events, notifications, email) that failed.",
	}, []string{"kind"})
)

func Lifecycle(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	LifecycleEvents.WithLabelValues(operation, outcome).Inc()
}

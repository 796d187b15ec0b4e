package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TrackEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizintel_track_events_total",
			Help: "Tracking events received, by action; unknown actions are reported as other",
		},
		[]string{"action"},
	)
)

// ActionLabel keeps the action label bounded.
func ActionLabel(action string) string {
	switch action {
	case "view", "click":
		return action
	}
	return "other"
}

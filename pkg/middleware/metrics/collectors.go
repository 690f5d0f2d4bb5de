package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	triggerTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pusher_trigger_total", Help: "provider trigger calls by outcome"},
		[]string{"outcome"},
	)

	triggerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pusher_trigger_duration_seconds",
			Help:    "provider trigger latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsToUri,
		totalHttpRequests,
		triggerTotal,
		triggerDuration,
	)
}

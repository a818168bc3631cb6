// ABOUTME: Prometheus instrumentation for the HTTP surface
// ABOUTME: Request counter and latency histogram by method and status code

package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoresh_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		},
		[]string{"code", "method"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoresh_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)
)

// instrumentHandler wraps the router with the request counter and the
// latency histogram. Labels stay at method+code; paths carry user-supplied
// words and would blow up cardinality.
func instrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(httpRequestDuration,
		promhttp.InstrumentHandlerCounter(httpRequestsTotal, next))
}

// metricsHandler serves the default Prometheus registry.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

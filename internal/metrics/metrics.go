package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phishguard_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phishguard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 10, 30},
		},
		[]string{"route", "method"},
	)

	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phishguard_emails_sent_total",
			Help: "Total number of outbound emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

// ObserveHTTPRequest records one completed request.
func ObserveHTTPRequest(route, method, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveEmail records one send attempt. kind is "verify" or "reset";
// outcome is "ok" or "error".
func ObserveEmail(kind, outcome string) {
	emailsSentTotal.WithLabelValues(kind, outcome).Inc()
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

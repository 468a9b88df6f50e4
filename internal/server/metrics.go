// Package server exposes the application's Prometheus metrics and a health
// probe over HTTP. The server is optional; it only runs when a listen
// address is configured.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP-level metrics. These are process-wide singletons; Metrics instances
// share them so repeated construction never re-registers a collector.
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "permcalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "permcalc_requests_total",
		Help: "Total number of HTTP requests served.",
	})
)

// Metrics bundles the Prometheus exposition handler with the HTTP request
// tracking instruments.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics backed by the default Prometheus registry,
// which also carries the run metrics and the Go runtime collectors.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests records the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
	requestsTotal.Inc()
}

// DecrementActiveRequests records the completion of an HTTP request.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// WritePrometheus writes the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

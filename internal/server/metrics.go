package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the HTTP server.
// Each Metrics value carries its own registry so multiple servers (and
// tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal     *prometheus.CounterVec
	activeRequests    prometheus.Gauge
	summationDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all server metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "harmcalc_requests_total",
			Help: "Total number of HTTP requests processed, by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "harmcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		summationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harmcalc_summation_duration_seconds",
			Help:    "Duration of harmonic summation runs served over HTTP.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"engine"}),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ObserveSummationDuration records the duration of a summation run in seconds.
func (m *Metrics) ObserveSummationDuration(engine string, seconds float64) {
	m.summationDuration.WithLabelValues(engine).Observe(seconds)
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

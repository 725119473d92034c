// Package metrics exposes Prometheus instrumentation for the shortener.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so several
// instances can coexist (one per server, one per test).
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	linksCreated    prometheus.Counter
	slugCollisions  prometheus.Counter
}

// New registers the shortener collectors plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortener_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shortener_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortener_links_created_total",
			Help: "Short links successfully stored.",
		}),
		slugCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortener_slug_collisions_total",
			Help: "Generated slugs rejected because they were already taken.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.linksCreated,
		m.slugCollisions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncLinksCreated counts a stored short link.
func (m *Metrics) IncLinksCreated() {
	if m == nil {
		return
	}
	m.linksCreated.Inc()
}

// IncSlugCollisions counts a generated slug that was already taken.
func (m *Metrics) IncSlugCollisions() {
	if m == nil {
		return
	}
	m.slugCollisions.Inc()
}

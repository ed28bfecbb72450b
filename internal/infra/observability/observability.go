// Package observability provides Prometheus instrumentation for the HTTP
// surface and the entry write paths.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	entryWrites     *prometheus.CounterVec
	pagesServed     prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry-backed set.
// Registered via promauto on the default registry; construct once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hourbook_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hourbook_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		entryWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hourbook_entry_writes_total",
			Help: "Time entry mutations by operation (create, update, delete).",
		}, []string{"op"}),
		pagesServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hourbook_entry_pages_served_total",
			Help: "Date-paginated entry pages served.",
		}),
	}
}

// RecordEntryWrite counts one entry mutation.
func (m *Metrics) RecordEntryWrite(op string) {
	if m == nil {
		return
	}
	m.entryWrites.WithLabelValues(op).Inc()
}

// RecordPageServed counts one pagination page response.
func (m *Metrics) RecordPageServed() {
	if m == nil {
		return
	}
	m.pagesServed.Inc()
}

// Middleware instruments every request with count and latency, labeled by
// the chi route pattern so path parameters don't explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Package metrics holds the Prometheus collectors of the service. A nil *Metrics is valid
// and records nothing, so callers never need to check whether metrics are enabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kottos"

// Metrics bundles the collectors registered on a dedicated registry
type Metrics struct {
	registry        *prometheus.Registry
	recordOps       *prometheus.CounterVec
	uploads         *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	pendingConfirms prometheus.Gauge
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_operations_total",
			Help:      "Collection record operations by collection, operation and result.",
		}, []string{"collection", "operation", "result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_tasks_total",
			Help:      "Finished asset upload tasks by final state.",
		}, []string{"state"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pendingConfirms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_confirmations",
			Help:      "Delete requests waiting for confirmation.",
		}),
	}

	m.registry.MustRegister(
		m.recordOps,
		m.uploads,
		m.httpRequests,
		m.httpDuration,
		m.pendingConfirms,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts one create, update or delete
func (m *Metrics) RecordOperation(collection, operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.recordOps.WithLabelValues(collection, operation, result).Inc()
}

// UploadFinished counts an upload task reaching state
func (m *Metrics) UploadFinished(state string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(state).Inc()
}

// HTTPRequest observes one served request
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetPendingConfirmations sets the number of open confirmation gates
func (m *Metrics) SetPendingConfirmations(n int) {
	if m == nil {
		return
	}
	m.pendingConfirms.Set(float64(n))
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the directory service. Each
// instance owns its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	// Collection metrics
	CollectionOpsTotal   *prometheus.CounterVec
	CollectionParseFails *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// SSE metrics
	SSEClients prometheus.Gauge
}

// New creates a Metrics instance with every collector registered
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		CollectionOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tooldir_collection_operations_total",
				Help: "Total number of collection loads and saves",
			},
			[]string{"collection", "operation"},
		),
		CollectionParseFails: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tooldir_collection_parse_failures_total",
				Help: "Stored collections that failed to parse and fell back to seed data",
			},
			[]string{"collection"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tooldir_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tooldir_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tooldir_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		SSEClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tooldir_sse_clients",
				Help: "Connected server-sent-events clients",
			},
		),
	}

	reg.MustRegister(
		m.CollectionOpsTotal,
		m.CollectionParseFails,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SSEClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordCollectionOp counts a load or save of collection. Safe on nil.
func (m *Metrics) RecordCollectionOp(collection, operation string) {
	if m == nil {
		return
	}
	m.CollectionOpsTotal.WithLabelValues(collection, operation).Inc()
}

// RecordParseFailure counts a malformed stored collection. Safe on nil.
func (m *Metrics) RecordParseFailure(collection string) {
	if m == nil {
		return
	}
	m.CollectionParseFails.WithLabelValues(collection).Inc()
}

// RecordHTTPRequest records one finished request. Safe on nil.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "safetydocs"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	reportsRendered *prometheus.CounterVec
	reportBytes     *prometheus.HistogramVec
	highRiskHazards prometheus.Counter
	archiveFailures prometheus.Counter
}

// New creates collectors on a fresh registry, so several instances can
// live in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		reportsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "rendered_total",
			Help:      "Rendered PDF reports by kind",
		}, []string{"kind"}),
		reportBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "size_bytes",
			Help:      "Size of rendered PDF reports",
			Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
		}, []string{"kind"}),
		highRiskHazards: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hazard",
			Name:      "high_risk_writes_total",
			Help:      "Hazard writes that resulted in risk band high",
		}),
		archiveFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "archive_failures_total",
			Help:      "Failed report uploads to the archive bucket",
		}),
	}
}

func (m *Metrics) ObserveRequest(route, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func (m *Metrics) ReportRendered(kind string, size int) {
	if m == nil {
		return
	}
	m.reportsRendered.WithLabelValues(kind).Inc()
	m.reportBytes.WithLabelValues(kind).Observe(float64(size))
}

func (m *Metrics) HighRiskHazard() {
	if m == nil {
		return
	}
	m.highRiskHazards.Inc()
}

func (m *Metrics) ArchiveFailed() {
	if m == nil {
		return
	}
	m.archiveFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer is exposed for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

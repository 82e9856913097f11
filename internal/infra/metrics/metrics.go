package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the portal's Prometheus metrics. One instance is wired into
// the HTTP middleware and the billing/platform layers.
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	purchasesTotal      *prometheus.CounterVec
	platformCallsTotal  *prometheus.CounterVec
	platformCallSeconds *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		purchasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_purchases_total",
				Help: "Purchase attempts by outcome",
			},
			[]string{"outcome"},
		),
		platformCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_platform_calls_total",
				Help: "Calls to the hosted backend by operation and result",
			},
			[]string{"operation", "result"},
		),
		platformCallSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_platform_call_duration_seconds",
				Help:    "Hosted backend round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	c.registry.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.purchasesTotal,
		c.platformCallsTotal,
		c.platformCallSeconds,
	)

	return c
}

func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordPurchase(outcome string) {
	c.purchasesTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObservePlatformCall(operation, result string, duration time.Duration) {
	c.platformCallsTotal.WithLabelValues(operation, result).Inc()
	c.platformCallSeconds.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

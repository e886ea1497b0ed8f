// Package metrics provides the Prometheus collectors of the post-board
// server and the handler that exposes them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "post_board"

// DelayBuckets covers throttle delays from one step (500ms) up to the
// delay of the last admitted request in a window (15s).
var DelayBuckets = []float64{0.5, 1, 2.5, 5, 7.5, 10, 15}

// Metrics owns a private registry so that several servers (or tests) can
// coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts HTTP requests by method, route pattern and status class.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration records HTTP request duration in seconds by method and route pattern.
	RequestDuration *prometheus.HistogramVec

	// RateLimitRejectedTotal counts requests rejected with 429.
	RateLimitRejectedTotal prometheus.Counter

	// ThrottleDelay records the delay imposed on throttled requests.
	ThrottleDelay prometheus.Histogram

	// RateLimitStoreKeys reports the number of client windows held in memory.
	RateLimitStoreKeys *prometheus.GaugeVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimitRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ratelimit_rejected_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
		ThrottleDelay: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "throttle_delay_seconds",
				Help:      "Delay imposed on throttled requests",
				Buckets:   DelayBuckets,
			},
		),
		RateLimitStoreKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ratelimit_store_keys",
				Help:      "Client windows held by the in-memory counter stores",
			},
			[]string{"store"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.RateLimitRejectedTotal,
		m.ThrottleDelay,
		m.RateLimitStoreKeys,
	)

	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, StatusClass(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRejected records a request rejected by the rate limiter.
func (m *Metrics) ObserveRejected() {
	m.RateLimitRejectedTotal.Inc()
}

// ObserveDelay records a throttle delay. Zero delays are not recorded.
func (m *Metrics) ObserveDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	m.ThrottleDelay.Observe(delay.Seconds())
}

// SetStoreKeys reports the size of a counter store.
func (m *Metrics) SetStoreKeys(store string, keys int) {
	m.RateLimitStoreKeys.WithLabelValues(store).Set(float64(keys))
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StatusClass turns 404 into "4xx".
func StatusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

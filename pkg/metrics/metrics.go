package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webhook"

// Metrics holds all Prometheus collectors of the receiver. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Webhook metrics
	ChallengesTotal      *prometheus.CounterVec
	DeliveriesTotal      *prometheus.CounterVec
	RateLimitedTotal     prometheus.Counter
	RateLimitErrorsTotal prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all collectors on registry, together with
// the Go runtime and process collectors.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ChallengesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "challenges_total",
				Help:      "Subscription verification handshakes by result",
			},
			[]string{"result"},
		),
		DeliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_total",
				Help:      "Event deliveries by pipeline result",
			},
			[]string{"result"},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Deliveries rejected by the rate limiter",
			},
		),
		RateLimitErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_errors_total",
				Help:      "Rate limiter backend errors (request allowed)",
			},
		),
		gatherer: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ChallengesTotal,
		m.DeliveriesTotal,
		m.RateLimitedTotal,
		m.RateLimitErrorsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if path == "" {
		path = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveChallenge records a handshake result ("verified" or "rejected").
func (m *Metrics) ObserveChallenge(result string) {
	if m == nil {
		return
	}
	m.ChallengesTotal.WithLabelValues(result).Inc()
}

// ObserveDelivery records a delivery pipeline result.
func (m *Metrics) ObserveDelivery(result string) {
	if m == nil {
		return
	}
	m.DeliveriesTotal.WithLabelValues(result).Inc()
}

// ObserveRateLimited counts a request turned away by the limiter.
func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}

// ObserveRateLimitError counts a limiter backend failure.
func (m *Metrics) ObserveRateLimitError() {
	if m == nil {
		return
	}
	m.RateLimitErrorsTotal.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

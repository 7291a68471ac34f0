package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus collectors. It implements both the
// bookingapi request recorder and the wizard counters.
type Metrics struct {
	registry *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	bookingsCreated prometheus.Counter
	staleDiscarded  prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backend_requests_total",
			Help:        "Booking backend requests by endpoint and outcome.",
			ConstLabels: labels,
		}, []string{"endpoint", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "backend_request_duration_seconds",
			Help:        "Booking backend request duration by endpoint.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Appointments successfully created through the bot.",
			ConstLabels: labels,
		}),
		staleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_stale_responses_total",
			Help:        "Out-of-order availability responses discarded by the generation guard.",
			ConstLabels: labels,
		}),
	}

	registry.MustRegister(m.backendRequests, m.backendDuration, m.bookingsCreated, m.staleDiscarded)
	return m
}

// ObserveRequest records one backend call.
func (m *Metrics) ObserveRequest(endpoint string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// BookingCreated counts a successful submission.
func (m *Metrics) BookingCreated() {
	m.bookingsCreated.Inc()
}

// StaleSlotsDiscarded counts a discarded out-of-order availability response.
func (m *Metrics) StaleSlotsDiscarded() {
	m.staleDiscarded.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

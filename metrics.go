package moodlews

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the client's request
// lifecycle: validation outcomes, descriptor builds, dispatched requests and
// shortcut invocations. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	requestsInFlight   *prometheus.GaugeVec
	descriptorsBuilt   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	shortcutCalls      *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodlews_requests_total",
				Help: "Total number of web-service requests dispatched",
			},
			[]string{"method", "wsfunction", "status"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moodlews_request_duration_seconds",
				Help:    "Duration of dispatched web-service requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "wsfunction"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moodlews_requests_in_flight",
				Help: "Number of web-service requests currently in flight",
			},
			[]string{"method"},
		),
		descriptorsBuilt: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodlews_request_descriptors_built_total",
				Help: "Total number of request descriptors assembled",
			},
			[]string{"method", "wsfunction"},
		),
		validationFailures: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodlews_validation_failures_total",
				Help: "Total number of rejected construction or call parameters",
			},
			[]string{"parameter", "reason"},
		),
		shortcutCalls: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodlews_shortcut_invocations_total",
				Help: "Total number of shortcut invocations",
			},
			[]string{"name"},
		),
	}
}

// RecordRequest records a completed dispatch with its terminal status label.
func (m *MetricsCollector) RecordRequest(method, wsfunction, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, wsfunction, status).Inc()
	m.requestDuration.WithLabelValues(method, wsfunction).Observe(duration.Seconds())
}

// RecordRequestStart marks a request in flight.
func (m *MetricsCollector) RecordRequestStart(method string) {
	m.requestsInFlight.WithLabelValues(method).Inc()
}

// RecordRequestEnd marks a request no longer in flight.
func (m *MetricsCollector) RecordRequestEnd(method string) {
	m.requestsInFlight.WithLabelValues(method).Dec()
}

// RecordDescriptorBuilt records a successfully assembled descriptor.
func (m *MetricsCollector) RecordDescriptorBuilt(method, wsfunction string) {
	m.descriptorsBuilt.WithLabelValues(method, wsfunction).Inc()
}

// RecordValidationFailure records a rejected parameter.
func (m *MetricsCollector) RecordValidationFailure(parameter string, reason ErrorType) {
	m.validationFailures.WithLabelValues(parameter, string(reason)).Inc()
}

// RecordShortcutCall records one shortcut invocation.
func (m *MetricsCollector) RecordShortcutCall(name string) {
	m.shortcutCalls.WithLabelValues(name).Inc()
}

package moodlews

import (
	"github.com/hashicorp/go-hclog"
)

// WithAcceptUntrustedCert disables TLS certificate verification on outgoing
// requests. Defaults to false.
func WithAcceptUntrustedCert(accept bool) Option {
	return func(c *config) {
		c.options[OptionAcceptUntrustedCert] = accept
	}
}

// WithDataFormat sets the response format requested from the service, json
// or xml (case-insensitive). Defaults to json.
func WithDataFormat(format string) Option {
	return func(c *config) {
		c.options[OptionDataFormat] = format
	}
}

// WithTimeout sets the per-request timeout. Any duration descriptor is
// accepted: a time.Duration, an integer or numeric-string millisecond count,
// Go duration syntax ("2s"), or a structured descriptor with
// days/hours/minutes/seconds/milliseconds components. Defaults to 5000 ms;
// descriptors resolving to zero or below are rejected at construction.
func WithTimeout(timeout any) Option {
	return func(c *config) {
		c.options[OptionTimeout] = timeout
	}
}

// WithOptions merges a raw options bag. Declared keys go through the same
// defaulting and validation as the dedicated options above; unknown keys are
// preserved unchanged and readable via OptionValue.
func WithOptions(options map[string]any) Option {
	return func(c *config) {
		for k, v := range options {
			c.options[k] = v
		}
	}
}

// WithExecutor injects the transport the client dispatches request
// descriptors to. Defaults to an HTTPExecutor.
func WithExecutor(executor Executor) Option {
	return func(c *config) {
		c.executor = executor
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics collection on the default
// registerer.
func WithMetrics() Option {
	return func(c *config) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *config) {
		c.metrics = collector
	}
}

package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/drover-dev/drover/pkg/delegate"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "drover").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for handler duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics returns middleware that records dispatch counts and handler
// durations. Events that match no binding never reach middleware; those
// are visible in the server's receive-side metrics instead.
func Metrics(opts ...MetricsOption) delegate.Middleware {
	cfg := MetricsConfig{
		Namespace: "drover",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	dispatched := promauto.With(cfg.Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "events_dispatched_total",
		Help:        "Events dispatched to a handler, by event type.",
		ConstLabels: cfg.ConstLabels,
	}, []string{"event_type"})

	duration := promauto.With(cfg.Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "handler_duration_seconds",
		Help:        "Handler execution time, by event type.",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"event_type"})

	return func(next delegate.Handler) delegate.Handler {
		return func(e *delegate.Event) {
			start := time.Now()
			defer func() {
				duration.WithLabelValues(e.Type).Observe(time.Since(start).Seconds())
				dispatched.WithLabelValues(e.Type).Inc()
			}()
			next(e)
		}
	}
}

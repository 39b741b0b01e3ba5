package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/drover-dev/drover/pkg/delegate"
)

// Default tracer name for drover applications.
const defaultTracerName = "drover"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "drover").
	TracerName string

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(e *delegate.Event) bool

	// AttributeExtractor extracts custom attributes from the event.
	// Called for each traced event.
	AttributeExtractor func(e *delegate.Event) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e *delegate.Event) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(e *delegate.Event) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing returns middleware that wraps each handler execution in an
// OpenTelemetry span. Handlers carry no context, so spans are rooted per
// dispatch turn.
func Tracing(opts ...TracingOption) delegate.Middleware {
	cfg := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	return func(next delegate.Handler) delegate.Handler {
		return func(e *delegate.Event) {
			if cfg.Filter != nil && !cfg.Filter(e) {
				next(e)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("event.type", e.Type),
			}
			if e.Target != nil {
				attrs = append(attrs, attribute.String("event.target", e.Target.Tag()))
			}
			if e.Matched != nil {
				attrs = append(attrs,
					attribute.String("event.matched", e.Matched.Tag()),
					attribute.String("event.matched_id", e.Matched.ID()))
			}
			if cfg.AttributeExtractor != nil {
				attrs = append(attrs, cfg.AttributeExtractor(e)...)
			}

			_, span := cfg.tracer.Start(context.Background(), "delegate.dispatch",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...))
			defer span.End()

			next(e)
		}
	}
}

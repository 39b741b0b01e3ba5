package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's receive-side Prometheus collectors. Handler
// execution metrics live in pkg/middleware; these cover what happens
// before a handler is chosen.
type Metrics struct {
	SessionsActive  prometheus.Gauge
	SessionsTotal   prometheus.Counter
	EventsReceived  prometheus.Counter
	EventsDropped   prometheus.Counter
	EventsUnmatched prometheus.Counter
	UnknownTargets  prometheus.Counter
	HandlerPanics   prometheus.Counter
	ReadErrors      prometheus.Counter
	WriteErrors     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "sessions_active", Help: "Currently connected sessions.",
		}),
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "sessions_total", Help: "Sessions created since start.",
		}),
		EventsReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "events_received_total", Help: "Event messages read from clients.",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "events_dropped_total", Help: "Events dropped because a session queue was full.",
		}),
		EventsUnmatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "events_unmatched_total", Help: "Events whose bubble path matched no binding.",
		}),
		UnknownTargets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "unknown_targets_total", Help: "Events naming a target id absent from the session document.",
		}),
		HandlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "handler_panics_total", Help: "Handler panics recovered by the event loop.",
		}),
		ReadErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "read_errors_total", Help: "Websocket read or decode failures.",
		}),
		WriteErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drover", Subsystem: "server",
			Name: "write_errors_total", Help: "Websocket write failures.",
		}),
	}
}

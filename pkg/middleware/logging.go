package middleware

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/drover-dev/drover/pkg/delegate"
)

// Logging returns middleware that logs each dispatched event at debug
// level with the matched node and handler duration.
func Logging(logger *slog.Logger) delegate.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next delegate.Handler) delegate.Handler {
		return func(e *delegate.Event) {
			start := time.Now()
			next(e)
			logger.Debug("event dispatched",
				"event", e.Type,
				"target", e.Target.Tag(),
				"matched", e.Matched.ID(),
				"duration", time.Since(start))
		}
	}
}

// Recovery returns middleware that recovers handler panics and logs them
// with a stack trace. The router itself never recovers (a panicking
// handler propagates to the dispatch caller); apply this middleware where
// one misbehaving handler must not take down the event loop.
func Recovery(logger *slog.Logger) delegate.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next delegate.Handler) delegate.Handler {
		return func(e *delegate.Event) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic",
						"panic", r,
						"event", e.Type,
						"target", e.Target.Tag(),
						"stack", string(debug.Stack()))
				}
			}()
			next(e)
		}
	}
}

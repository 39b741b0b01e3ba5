// Package middleware provides handler middleware for delegated event
// routing: Prometheus metrics, OpenTelemetry tracing, structured logging,
// and panic recovery.
//
// Middleware wraps the single winning handler of a dispatch turn:
//
//	router := delegate.NewRouter()
//	router.Use(middleware.Metrics())
//	router.Use(middleware.Recovery(logger))
package middleware

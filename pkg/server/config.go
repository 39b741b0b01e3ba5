package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the demo host server.
type Config struct {
	// Addr is the listen address (default ":8420").
	Addr string

	// ReadTimeout bounds how long a websocket read may idle before the
	// session is considered dead.
	ReadTimeout time.Duration

	// WriteTimeout bounds each websocket write.
	WriteTimeout time.Duration

	// QueueDepth is the per-session event queue capacity. A full queue
	// drops events rather than blocking the read loop.
	QueueDepth int

	// AllowedOrigins restricts websocket upgrades to the listed Origin
	// headers. Empty allows all origins.
	AllowedOrigins []string

	// Logger is the server logger. Defaults to slog.Default scoped with
	// component=server.
	Logger *slog.Logger

	// Registry receives the server's Prometheus collectors and backs the
	// /metrics endpoint. Nil creates a private registry.
	Registry *prometheus.Registry
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         ":8420",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		QueueDepth:   64,
	}
}

// withDefaults fills unset fields in place and returns the config.
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = def.QueueDepth
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "server")
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	return c
}

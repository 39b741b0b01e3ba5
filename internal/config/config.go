package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "drover.json"

// Config is the complete drover configuration. Values resolve in order:
// defaults, then the JSON config file, then DROVER_* environment
// variables.
type Config struct {
	// Addr is the listen address for the demo host.
	Addr string `json:"addr,omitempty" env:"DROVER_ADDR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" env:"DROVER_LOG_LEVEL"`

	// QueueDepth is the per-session event queue capacity.
	QueueDepth int `json:"queue_depth,omitempty" env:"DROVER_QUEUE_DEPTH"`

	// AllowedOrigins restricts websocket upgrades. Empty allows all.
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"DROVER_ALLOWED_ORIGINS"`

	// Record configures dispatch trace export.
	Record RecordConfig `json:"record,omitempty"`
}

// RecordConfig configures the trace recorder.
type RecordConfig struct {
	// Sink selects the export target: "none", "file", or "s3".
	Sink string `json:"sink,omitempty" env:"DROVER_RECORD_SINK"`

	// Path is the trace file path for the file sink.
	Path string `json:"path,omitempty" env:"DROVER_RECORD_PATH"`

	// Bucket and Prefix locate trace objects for the s3 sink.
	Bucket string `json:"bucket,omitempty" env:"DROVER_RECORD_BUCKET"`
	Prefix string `json:"prefix,omitempty" env:"DROVER_RECORD_PREFIX"`

	// FlushAt is the batch size that triggers a flush (0 = default).
	FlushAt int `json:"flush_at,omitempty" env:"DROVER_RECORD_FLUSH_AT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:       ":8420",
		LogLevel:   "info",
		QueueDepth: 64,
		Record: RecordConfig{
			Sink: "none",
		},
	}
}

// Load resolves the configuration. A non-empty path names a required
// config file; with an empty path, ConfigFileName is read if present.
func Load(path string) (Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = ConfigFileName
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !required:
		// Optional default file; fall through to env.
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.QueueDepth <= 0 {
		return fmt.Errorf("config: queue depth must be positive, got %d", c.QueueDepth)
	}
	switch c.Record.Sink {
	case "none", "":
	case "file":
		if c.Record.Path == "" {
			return fmt.Errorf("config: file sink requires record.path")
		}
	case "s3":
		if c.Record.Bucket == "" {
			return fmt.Errorf("config: s3 sink requires record.bucket")
		}
	default:
		return fmt.Errorf("config: unknown record sink %q", c.Record.Sink)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/drover-dev/drover/internal/config"
	"github.com/drover-dev/drover/pkg/record"
	"github.com/drover-dev/drover/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo host",
		Long: `Serve the live delegation demo: an index page, a websocket endpoint at
/ws, health at /healthz, and Prometheus metrics at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to drover.json")

	return cmd
}

func runServe(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()

	recorder, err := newRecorder(cfg.Record)
	if err != nil {
		return err
	}

	srvCfg := &server.Config{
		Addr:           cfg.Addr,
		QueueDepth:     cfg.QueueDepth,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger.With("component", "server"),
		Registry:       registry,
	}

	opts := []server.ServerOption{
		server.WithIndexHandler(demoIndex()),
	}
	if recorder != nil {
		opts = append(opts, server.WithRecorder(recorder))
	}

	srv := server.NewServer(srvCfg, demoSetup(registry, logger), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newRecorder builds the trace recorder from config, or nil when tracing
// is disabled.
func newRecorder(cfg config.RecordConfig) (*record.Recorder, error) {
	switch cfg.Sink {
	case "", "none":
		return nil, nil
	case "file":
		sink, err := record.NewFileSink(cfg.Path)
		if err != nil {
			return nil, err
		}
		return record.NewRecorder(sink, cfg.FlushAt), nil
	case "s3":
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-1"
		}
		// Credentials come from the usual AWS environment.
		client := s3.New(s3.Options{Region: region})
		sink := record.NewS3Sink(client, cfg.Bucket, cfg.Prefix)
		return record.NewRecorder(sink, cfg.FlushAt), nil
	default:
		return nil, fmt.Errorf("unknown record sink %q", cfg.Sink)
	}
}

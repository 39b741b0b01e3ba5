package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drover-dev/drover/pkg/record"
)

// Server hosts live delegation sessions: an index page, a websocket
// endpoint feeding per-session routers, health, and Prometheus metrics.
type Server struct {
	config   *Config
	logger   *slog.Logger
	mux      chi.Router
	manager  *Manager
	metrics  *Metrics
	setup    SetupFunc
	recorder *record.Recorder
	upgrader websocket.Upgrader
	index    http.HandlerFunc

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithIndexHandler replaces the default index page handler.
func WithIndexHandler(h http.HandlerFunc) ServerOption {
	return func(s *Server) { s.index = h }
}

// WithRecorder exports dispatch traces for every session.
func WithRecorder(r *record.Recorder) ServerOption {
	return func(s *Server) { s.recorder = r }
}

// NewServer creates a server whose sessions are populated by setup.
func NewServer(config *Config, setup SetupFunc, opts ...ServerOption) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	config.withDefaults()

	s := &Server{
		config:  config,
		logger:  config.Logger,
		metrics: newMetrics(config.Registry),
		setup:   setup,
	}
	s.manager = NewManager(s.logger, s.metrics)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager { return s.manager }

// Handler returns the server's HTTP handler, usable with httptest.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))

	s.mux = r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.index != nil {
		s.index(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!doctype html><title>drover</title><p>drover demo host</p>"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleWS upgrades the connection and runs the session until the client
// disconnects. The event loop gets its own goroutine; reads happen on the
// request goroutine, the way gorilla expects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess, err := s.manager.Create(conn, s.config, s.setup, s.recorder)
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		return
	}
	defer s.manager.Remove(sess.ID)

	go sess.EventLoop()
	sess.ReadLoop()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.config.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.config.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.mux,
	}
	s.logger.Info("listening", "addr", s.config.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections, closes all sessions, and flushes
// the recorder.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.manager.CloseAll()
	if s.recorder != nil {
		if cerr := s.recorder.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

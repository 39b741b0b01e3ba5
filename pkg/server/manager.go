package server

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/drover-dev/drover/pkg/record"
)

// Manager tracks live sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *slog.Logger
	metrics  *Metrics

	totalCreated int64
	totalClosed  int64
	peak         int
}

// ManagerStats is a point-in-time snapshot of session counts.
type ManagerStats struct {
	Active       int
	TotalCreated int64
	TotalClosed  int64
	Peak         int
}

// NewManager creates an empty session manager.
func NewManager(logger *slog.Logger, metrics *Metrics) *Manager {
	if logger == nil {
		logger = slog.Default().With("component", "server")
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
		metrics:  metrics,
	}
}

// Create builds a session for the connection, runs setup on it, and
// registers it. Setup failures close the connection and create nothing.
func (m *Manager) Create(conn *websocket.Conn, config *Config, setup SetupFunc, recorder *record.Recorder) (*Session, error) {
	s := newSession(conn, config, m.logger, m.metrics, recorder)
	if setup != nil {
		if err := setup(s); err != nil {
			conn.Close()
			return nil, fmt.Errorf("server: session setup: %w", err)
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.totalCreated++
	if len(m.sessions) > m.peak {
		m.peak = len(m.sessions)
	}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsActive.Inc()
		m.metrics.SessionsTotal.Inc()
	}
	m.logger.Info("session created", "session", s.ID)
	return s, nil
}

// Get returns a session by id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Remove closes and forgets a session. Unknown ids are a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		m.totalClosed++
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Close()
	if m.metrics != nil {
		m.metrics.SessionsActive.Dec()
	}
	m.logger.Info("session closed", "session", id)
}

// CloseAll closes every live session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Remove(id)
	}
}

// Stats returns a snapshot of session counts.
func (m *Manager) Stats() ManagerStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ManagerStats{
		Active:       len(m.sessions),
		TotalCreated: m.totalCreated,
		TotalClosed:  m.totalClosed,
		Peak:         m.peak,
	}
}

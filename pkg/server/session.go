package server

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/drover-dev/drover/pkg/delegate"
	"github.com/drover-dev/drover/pkg/dom"
	"github.com/drover-dev/drover/pkg/record"
)

// Session errors.
var (
	ErrQueueFull     = errors.New("server: session event queue is full")
	ErrSessionClosed = errors.New("server: session is closed")
)

// SetupFunc populates a fresh session: build the document and register
// the session's delegated bindings. It runs before the session's loops
// start, so it may touch the document directly.
type SetupFunc func(s *Session) error

// Session is the host runtime for one connected client: a document, a
// delegated event router, and a strict FIFO event queue. The read loop
// queues decoded event messages; a single event loop goroutine resolves
// targets and dispatches, so a second event is only processed after the
// current dispatch turn completes.
type Session struct {
	ID string

	conn     *websocket.Conn
	doc      *dom.Document
	router   *delegate.Router
	config   *Config
	logger   *slog.Logger
	metrics  *Metrics
	recorder *record.Recorder

	events    chan eventMessage
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex

	// lastMatched is written by the observe middleware during a dispatch
	// turn and read right after; both happen on the event loop goroutine.
	lastMatched *dom.Node
}

func newSession(conn *websocket.Conn, config *Config, logger *slog.Logger, metrics *Metrics, recorder *record.Recorder) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		conn:     conn,
		doc:      dom.NewDocument(),
		config:   config,
		metrics:  metrics,
		recorder: recorder,
		events:   make(chan eventMessage, config.QueueDepth),
		done:     make(chan struct{}),
	}
	s.logger = logger.With("session", s.ID)
	s.router = delegate.NewRouter(delegate.WithLogger(s.logger))
	s.router.Use(s.observe)
	return s
}

// Document returns the session's document.
func (s *Session) Document() *dom.Document { return s.doc }

// Router returns the session's delegated event router.
func (s *Session) Router() *delegate.Router { return s.router }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// observe is the outermost router middleware; it records which node the
// winning binding matched so the session can report dispatch results.
func (s *Session) observe(next delegate.Handler) delegate.Handler {
	return func(e *delegate.Event) {
		s.lastMatched = e.Matched
		next(e)
	}
}

// QueueEvent enqueues a decoded event message for the event loop. It
// never blocks: a full queue drops the event.
func (s *Session) QueueEvent(msg eventMessage) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.events <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// EventLoop processes queued events one at a time until the session
// closes. It must run on its own goroutine; it is the only goroutine that
// touches the session document after setup.
func (s *Session) EventLoop() {
	for {
		select {
		case msg := <-s.events:
			s.processEvent(msg)
		case <-s.done:
			return
		}
	}
}

// processEvent resolves the target node and dispatches one event.
func (s *Session) processEvent(msg eventMessage) {
	target := s.doc.GetElementByID(msg.Target)
	if target == nil {
		s.metrics.UnknownTargets.Inc()
		s.logger.Warn("unknown event target", "event", msg.Type, "target", msg.Target)
		s.writeResult(resultMessage{Seq: msg.Seq, Error: "unknown target: " + msg.Target})
		return
	}

	ev := &dom.Event{
		Type: msg.Type,
		Data: msg.Data,
		Time: time.Now(),
	}

	s.lastMatched = nil
	s.safeDispatch(target, ev)

	handled := s.lastMatched != nil
	matchedID := ""
	if handled {
		matchedID = s.lastMatched.ID()
	} else {
		s.metrics.EventsUnmatched.Inc()
	}

	if s.recorder != nil {
		s.recorder.Record(context.Background(), record.Entry{
			SessionID: s.ID,
			EventType: msg.Type,
			TargetID:  msg.Target,
			MatchedID: matchedID,
			Handled:   handled,
			At:        ev.Time,
		})
	}

	s.writeResult(resultMessage{Seq: msg.Seq, Handled: handled, Matched: matchedID})
}

// safeDispatch runs one dispatch turn with panic recovery. The router
// itself provides no isolation; the host runtime keeps a panicking
// handler from killing the event loop.
func (s *Session) safeDispatch(target *dom.Node, ev *dom.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.HandlerPanics.Inc()
			s.logger.Error("handler panic",
				"panic", r,
				"event", ev.Type,
				"target", target.ID(),
				"stack", string(debug.Stack()))
		}
	}()
	target.DispatchEvent(ev)
}

// Close shuts the session down. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		if s.recorder != nil {
			if err := s.recorder.Flush(context.Background()); err != nil {
				s.logger.Warn("trace flush failed", "error", err)
			}
		}
	})
}

// Done is closed when the session shuts down.
func (s *Session) Done() <-chan struct{} { return s.done }

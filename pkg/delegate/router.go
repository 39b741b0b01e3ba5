package delegate

import (
	"log/slog"
	"sync"

	"github.com/drover-dev/drover/pkg/dom"
)

// Router dispatches bubbling tree events to bound handlers. One native
// listener is attached per (root, eventType) pair; descendants added or
// removed after registration need no bookkeeping because the router only
// reacts to events that bubble through the root.
//
// Register, Bind, and Unregister are safe to call from multiple
// goroutines, but mutating bindings while a dispatch for the same root is
// in flight is disallowed by contract: set up bindings before steady-state
// dispatch begins.
type Router struct {
	mu         sync.RWMutex
	regs       map[registrationKey]*registration
	middleware []Middleware
	logger     *slog.Logger
}

type registrationKey struct {
	root      *dom.Node
	eventType string
}

type registration struct {
	bindings   []binding
	listenerID int
	attached   bool
}

type binding struct {
	matcher Matcher
	handler Handler
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger. Defaults to slog.Default scoped
// with component=delegate.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// NewRouter creates an empty router.
func NewRouter(opts ...Option) *Router {
	r := &Router{regs: make(map[registrationKey]*registration)}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "delegate")
	}
	return r
}

// Use registers middleware applied to every handler the router fires.
// Middleware runs in registration order (first registered outermost).
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// Register attaches the router to a root for one event type and, when
// matcher is non-nil, appends an initial binding. The native listener is
// attached at most once per (root, eventType) pair; calling Register
// again for a registered pair only appends the binding.
//
// Register fails with *InvalidTargetError when root is nil or not
// attached to a document. The error is reported synchronously; nothing is
// retained from the failed call.
func (r *Router) Register(root *dom.Node, eventType string, matcher Matcher, handler Handler) error {
	if root == nil {
		return &InvalidTargetError{EventType: eventType}
	}
	if !root.IsConnected() {
		return &InvalidTargetError{EventType: eventType, Tag: root.Tag()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := registrationKey{root: root, eventType: eventType}
	reg := r.regs[key]
	if reg == nil {
		reg = &registration{}
		r.regs[key] = reg
	}
	if matcher != nil {
		reg.bindings = append(reg.bindings, binding{matcher: matcher, handler: handler})
	}
	if !reg.attached {
		reg.listenerID = root.AddEventListener(eventType, func(e *dom.Event) {
			// Delegation only acts when the bubble reaches the root.
			if e.CurrentTarget != root {
				return
			}
			r.dispatch(root, eventType, e)
		})
		reg.attached = true
	}
	return nil
}

// Bind appends a binding to the ordered sequence for a (root, eventType)
// pair. It never fails: binding a pair that has not been registered is
// allowed, and the bindings become live once Register attaches the
// listener. Insertion order decides priority when several matchers match
// the same node.
func (r *Router) Bind(root *dom.Node, eventType string, matcher Matcher, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registrationKey{root: root, eventType: eventType}
	reg := r.regs[key]
	if reg == nil {
		reg = &registration{}
		r.regs[key] = reg
	}
	reg.bindings = append(reg.bindings, binding{matcher: matcher, handler: handler})
}

// Unregister detaches the native listener and clears all bindings for the
// pair. It is idempotent: unregistering an unknown pair is a no-op.
func (r *Router) Unregister(root *dom.Node, eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registrationKey{root: root, eventType: eventType}
	reg := r.regs[key]
	if reg == nil {
		return
	}
	if reg.attached {
		root.RemoveEventListener(eventType, reg.listenerID)
	}
	delete(r.regs, key)
}

// Bindings returns the number of bindings currently held for a pair.
func (r *Router) Bindings(root *dom.Node, eventType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg := r.regs[registrationKey{root: root, eventType: eventType}]
	if reg == nil {
		return 0
	}
	return len(reg.bindings)
}

// dispatch walks the bubble path from the event target up to and
// including root. The first node on the walk that satisfies any binding
// selects the handler; among bindings matching that node, the first
// registered wins. Exactly one handler runs per event; no match is the
// expected steady state and raises nothing.
func (r *Router) dispatch(root *dom.Node, eventType string, e *dom.Event) {
	r.mu.RLock()
	reg := r.regs[registrationKey{root: root, eventType: eventType}]
	if reg == nil || len(reg.bindings) == 0 {
		r.mu.RUnlock()
		return
	}
	bindings := make([]binding, len(reg.bindings))
	copy(bindings, reg.bindings)
	mws := make([]Middleware, len(r.middleware))
	copy(mws, r.middleware)
	r.mu.RUnlock()

	for n := e.Target; n != nil; n = n.Parent() {
		for _, b := range bindings {
			if b.matcher != nil && b.matcher.Matches(n) {
				handler := b.handler
				for i := len(mws) - 1; i >= 0; i-- {
					handler = mws[i](handler)
				}
				handler(&Event{Event: e, Matched: n, Root: root})
				return
			}
		}
		if n == root {
			break
		}
	}
	r.logger.Debug("no binding matched",
		"event", eventType,
		"target", e.Target.Tag())
}

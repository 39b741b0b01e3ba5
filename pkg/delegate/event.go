package delegate

import "github.com/drover-dev/drover/pkg/dom"

// Event is what a bound handler receives: the underlying tree event plus
// the node on the bubble path that satisfied the binding's matcher. The
// matched node is often an ancestor of Target — clicking a <span> inside
// a bound <li> reports the <li> as Matched.
type Event struct {
	*dom.Event

	// Matched is the node the winning binding matched.
	Matched *dom.Node

	// Root is the registration root the event was delegated through.
	Root *dom.Node
}

// Handler is invoked for the single winning binding of a dispatch.
// Handlers run synchronously inside the dispatch turn; a panic propagates
// to the caller of DispatchEvent (the router provides no isolation).
type Handler func(*Event)

// Middleware wraps a handler with an ambient concern (logging, metrics,
// tracing, recovery). Middleware registered on a router applies to every
// handler it fires.
type Middleware func(Handler) Handler

// Package server is the host runtime for delegated event routing: it
// owns the per-client document and router, supplies events in strict FIFO
// order, and hosts the live demo page.
//
// Each websocket client gets a Session with its own Document, its own
// delegate.Router, and a buffered event queue drained by a single event
// loop goroutine. The read loop decodes JSON event messages {seq, type,
// target, data} and queues them; the event loop resolves the target node,
// dispatches one event at a time, and reports each turn back as {seq,
// handled, matched}. Handler panics are recovered at the loop boundary so
// one bad handler cannot kill the session.
package server

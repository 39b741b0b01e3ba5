// Package delegate implements delegated event routing: one listener on a
// stable ancestor, dispatching to logical handlers chosen by inspecting
// the node the event bubbled from.
//
// A Router holds an ordered binding sequence per (root, eventType) pair.
// When an event bubbles through a registered root, the router walks the
// path from the event target up to and including the root; the first node
// that satisfies any binding's Matcher selects a handler, ties between
// bindings on the same node break by insertion order, and exactly one
// handler runs. An event whose path matches nothing is silently ignored.
//
//	router := delegate.NewRouter()
//	err := router.Register(list, "click", delegate.Class("item"), func(e *delegate.Event) {
//	    log = append(log, e.Matched.ID())
//	})
//
// Because dispatch inspects the live bubble path, children added to the
// tree after Register are handled without re-registration, and removed
// children need no cleanup.
//
// The router never recovers handler panics; wrap handlers with
// pkg/middleware.Recovery when isolation is wanted.
package delegate

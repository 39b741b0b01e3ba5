package dom

import "time"

// Event is a single dispatch through the tree. Events are transient: the
// runtime (or a test) constructs one per occurrence and hands it to
// DispatchEvent; nothing retains it afterwards.
type Event struct {
	// Type is the event type, e.g. "click" or "input".
	Type string

	// Target is the node the event originated on. Set by DispatchEvent.
	Target *Node

	// CurrentTarget is the node whose listeners are currently running.
	CurrentTarget *Node

	// Data carries event payload fields supplied by the event source
	// (key, value, coordinates serialized as strings). May be nil.
	Data map[string]string

	// Time is when the event was observed by the event source.
	Time time.Time

	stopped bool
}

// NewEvent creates an event of the given type stamped with the current time.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType, Time: time.Now()}
}

// StopPropagation prevents the event from bubbling to ancestors once the
// current node's listeners have run.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation has been called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Listener receives events dispatched through a node.
type Listener func(*Event)

type listenerEntry struct {
	id int
	fn Listener
}

// AddEventListener registers a listener for an event type and returns an
// id usable with RemoveEventListener. Listeners run in registration order
// during the bubble phase.
func (n *Node) AddEventListener(eventType string, fn Listener) int {
	if n.listeners == nil {
		n.listeners = make(map[string][]listenerEntry)
	}
	n.nextListID++
	n.listeners[eventType] = append(n.listeners[eventType], listenerEntry{
		id: n.nextListID,
		fn: fn,
	})
	return n.nextListID
}

// RemoveEventListener unregisters a listener by id. Unknown ids are ignored.
func (n *Node) RemoveEventListener(eventType string, id int) {
	entries := n.listeners[eventType]
	for i, e := range entries {
		if e.id == id {
			n.listeners[eventType] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// DispatchEvent delivers the event to n and bubbles it through n's
// ancestors up to the root. Listeners on each node run in registration
// order; StopPropagation halts the walk after the current node. Dispatch
// runs synchronously to completion before returning.
func (n *Node) DispatchEvent(e *Event) {
	e.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		e.CurrentTarget = cur

		// Snapshot so listeners may add/remove listeners on this node.
		entries := cur.listeners[e.Type]
		snapshot := make([]listenerEntry, len(entries))
		copy(snapshot, entries)

		for _, entry := range snapshot {
			entry.fn(e)
		}
		if e.stopped {
			return
		}
	}
}

package delegate

import "fmt"

// InvalidTargetError reports a Register call whose root is not attached
// to a document. It is returned synchronously from Register; the
// registration takes no effect.
type InvalidTargetError struct {
	// EventType is the event type the registration was for.
	EventType string

	// Tag is the root's tag name, or "" when the root was nil.
	Tag string
}

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("delegate: register %q: root is nil", e.EventType)
	}
	return fmt.Sprintf("delegate: register %q: root <%s> is not attached to a document", e.EventType, e.Tag)
}

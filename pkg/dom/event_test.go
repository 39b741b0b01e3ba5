package dom

import (
	"reflect"
	"testing"
)

func TestDispatchEventBubbles(t *testing.T) {
	doc := NewDocument()
	list := doc.Root().AppendChild(Ul(ID("list")))
	item := list.AppendChild(Li(ID("row-1")))
	span := item.AppendChild(Span())

	var order []string
	listen := func(name string) {
		var n *Node
		switch name {
		case "span":
			n = span
		case "item":
			n = item
		case "list":
			n = list
		case "body":
			n = doc.Root()
		}
		n.AddEventListener("click", func(e *Event) {
			order = append(order, name)
			if e.Target != span {
				t.Errorf("listener %s: target = %v, want span", name, e.Target)
			}
			if e.CurrentTarget != n {
				t.Errorf("listener %s: current target mismatch", name)
			}
		})
	}
	listen("body")
	listen("list")
	listen("item")
	listen("span")

	span.DispatchEvent(NewEvent("click"))

	want := []string{"span", "item", "list", "body"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("bubble order = %v, want %v", order, want)
	}
}

func TestDispatchEventStopPropagation(t *testing.T) {
	doc := NewDocument()
	list := doc.Root().AppendChild(Ul())
	item := list.AppendChild(Li())

	var order []string
	item.AddEventListener("click", func(e *Event) {
		order = append(order, "item")
		e.StopPropagation()
	})
	item.AddEventListener("click", func(e *Event) {
		// Same-node listeners still run after StopPropagation.
		order = append(order, "item2")
	})
	list.AddEventListener("click", func(e *Event) {
		order = append(order, "list")
	})

	item.DispatchEvent(NewEvent("click"))

	want := []string{"item", "item2"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRemoveEventListener(t *testing.T) {
	doc := NewDocument()
	n := doc.Root().AppendChild(Div())

	calls := 0
	id := n.AddEventListener("click", func(*Event) { calls++ })

	n.DispatchEvent(NewEvent("click"))
	n.RemoveEventListener("click", id)
	n.DispatchEvent(NewEvent("click"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// Removing twice is a no-op.
	n.RemoveEventListener("click", id)
}

func TestListenersPerEventType(t *testing.T) {
	doc := NewDocument()
	n := doc.Root().AppendChild(Div())

	var got []string
	n.AddEventListener("click", func(*Event) { got = append(got, "click") })
	n.AddEventListener("input", func(*Event) { got = append(got, "input") })

	n.DispatchEvent(NewEvent("input"))

	if !reflect.DeepEqual(got, []string{"input"}) {
		t.Errorf("got %v, want [input]", got)
	}
}

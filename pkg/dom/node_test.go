package dom

import "testing"

func TestAppendChildConnects(t *testing.T) {
	doc := NewDocument()
	list := Ul(ID("list"))
	item := Li(ID("row-1"))
	list.AppendChild(item)

	if list.IsConnected() {
		t.Fatal("detached list should not be connected")
	}

	doc.Root().AppendChild(list)

	if !list.IsConnected() {
		t.Error("list should be connected after append to root")
	}
	if !item.IsConnected() {
		t.Error("descendant should be connected transitively")
	}
	if got := doc.GetElementByID("row-1"); got != item {
		t.Errorf("GetElementByID(row-1) = %v, want item", got)
	}
}

func TestRemoveChildDisconnects(t *testing.T) {
	doc := NewDocument()
	list := doc.Root().AppendChild(Ul(ID("list")))
	item := list.AppendChild(Li(ID("row-1")))

	list.RemoveChild(item)

	if item.IsConnected() {
		t.Error("removed child should be disconnected")
	}
	if item.Parent() != nil {
		t.Error("removed child should have nil parent")
	}
	if doc.GetElementByID("row-1") != nil {
		t.Error("removed child should be unindexed")
	}
	if doc.GetElementByID("list") != list {
		t.Error("list should remain indexed")
	}
}

func TestAppendChildReparents(t *testing.T) {
	doc := NewDocument()
	a := doc.Root().AppendChild(Div(ID("a")))
	b := doc.Root().AppendChild(Div(ID("b")))
	child := a.AppendChild(Span())

	b.AppendChild(child)

	if child.Parent() != b {
		t.Errorf("child parent = %v, want b", child.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("a should have no children, has %d", len(a.Children()))
	}
}

func TestSetAttrIDReindexes(t *testing.T) {
	doc := NewDocument()
	n := doc.Root().AppendChild(Div(ID("before")))

	n.SetAttr("id", "after")

	if doc.GetElementByID("before") != nil {
		t.Error("old id should be unindexed")
	}
	if doc.GetElementByID("after") != n {
		t.Error("new id should resolve to the node")
	}

	n.RemoveAttr("id")
	if doc.GetElementByID("after") != nil {
		t.Error("removed id should be unindexed")
	}
}

func TestClassHelpers(t *testing.T) {
	n := Div(Class("item row"))

	if !n.HasClass("item") || !n.HasClass("row") {
		t.Fatalf("classes = %v, want item and row", n.Classes())
	}
	if n.HasClass("it") {
		t.Error("HasClass must match whole class names only")
	}

	n.AddClass("active")
	if !n.HasClass("active") {
		t.Error("AddClass should add a new class")
	}
	n.AddClass("active")
	if got := len(n.Classes()); got != 3 {
		t.Errorf("AddClass must be idempotent, got %d classes", got)
	}

	n.RemoveClass("row")
	if n.HasClass("row") {
		t.Error("RemoveClass should remove the class")
	}
	if !n.HasClass("item") || !n.HasClass("active") {
		t.Errorf("other classes must survive removal, got %v", n.Classes())
	}
}

func TestTextNodes(t *testing.T) {
	n := Li(Class("item"), "hello")

	if len(n.Children()) != 1 {
		t.Fatalf("children = %d, want 1", len(n.Children()))
	}
	child := n.Children()[0]
	if child.Kind() != KindText || child.Text() != "hello" {
		t.Errorf("child = %v %q, want text node %q", child.Kind(), child.Text(), "hello")
	}
	if child.ID() != "" {
		t.Error("text nodes have no attributes")
	}
}

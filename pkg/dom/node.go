package dom

import "strings"

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <button>, etc.
	KindText                    // Plain text node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a single node in a document tree. Element nodes carry a tag,
// attributes, children, and per-type listener sets; text nodes carry only
// their text.
//
// Nodes are not safe for concurrent use. A document and all of its nodes
// belong to a single goroutine, typically the session event loop that
// dispatches events into the tree.
type Node struct {
	kind NodeKind
	tag  string
	text string

	attrs    map[string]string
	parent   *Node
	children []*Node

	// doc is non-nil while the node is connected to a document.
	doc *Document

	listeners  map[string][]listenerEntry
	nextListID int
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{kind: KindElement, tag: strings.ToLower(tag)}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{kind: KindText, text: text}
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag name (lowercase), or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice is the node's
// own; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Document returns the owning document, or nil if the node is detached.
func (n *Node) Document() *Document { return n.doc }

// IsConnected reports whether the node is reachable from a document root.
func (n *Node) IsConnected() bool { return n != nil && n.doc != nil }

// ID returns the node's id attribute, or "".
func (n *Node) ID() string { return n.attrs["id"] }

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. Setting "id" on a connected node updates the
// document's id index.
func (n *Node) SetAttr(key, value string) {
	if n.kind != KindElement {
		return
	}
	key = strings.ToLower(key)
	if key == "id" && n.doc != nil {
		n.doc.unindex(n)
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	if key == "id" && n.doc != nil {
		n.doc.index(n)
	}
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(key string) {
	key = strings.ToLower(key)
	if _, ok := n.attrs[key]; !ok {
		return
	}
	if key == "id" && n.doc != nil {
		n.doc.unindex(n)
	}
	delete(n.attrs, key)
}

// Classes returns the node's class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.attrs["class"])
}

// HasClass reports whether the node's class attribute contains the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class if not already present.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	cur := n.attrs["class"]
	if cur == "" {
		n.SetAttr("class", class)
		return
	}
	n.SetAttr("class", cur+" "+class)
}

// RemoveClass removes a class if present.
func (n *Node) RemoveClass(class string) {
	classes := n.Classes()
	out := classes[:0]
	for _, c := range classes {
		if c != class {
			out = append(out, c)
		}
	}
	n.SetAttr("class", strings.Join(out, " "))
}

// AppendChild adds a child to the end of the node's child list. If the
// child is already attached elsewhere it is removed from its old parent
// first. Appending to a connected node connects the child's subtree.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil || child == n {
		return child
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if n.doc != nil {
		connect(child, n.doc)
	}
	return child
}

// RemoveChild detaches a direct child. Removing from a connected node
// disconnects the child's subtree. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			if child.doc != nil {
				disconnect(child)
			}
			return
		}
	}
}

// connect marks a subtree as owned by doc and indexes its ids.
func connect(n *Node, doc *Document) {
	n.doc = doc
	doc.index(n)
	for _, c := range n.children {
		connect(c, doc)
	}
}

// disconnect clears document ownership for a subtree.
func disconnect(n *Node) {
	if n.doc != nil {
		n.doc.unindex(n)
	}
	n.doc = nil
	for _, c := range n.children {
		disconnect(c)
	}
}

// Document owns a node tree and provides id lookup. The root element is
// created by NewDocument and cannot be detached.
type Document struct {
	root *Node
	byID map[string]*Node
}

// NewDocument creates a document with an empty <body> root.
func NewDocument() *Document {
	doc := &Document{byID: make(map[string]*Node)}
	root := NewElement("body")
	root.doc = doc
	doc.root = root
	return doc
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// GetElementByID returns the connected element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	return d.byID[id]
}

func (d *Document) index(n *Node) {
	if id := n.attrs["id"]; id != "" {
		if _, taken := d.byID[id]; !taken {
			d.byID[id] = n
		}
	}
}

func (d *Document) unindex(n *Node) {
	if id := n.attrs["id"]; id != "" && d.byID[id] == n {
		delete(d.byID, id)
	}
}

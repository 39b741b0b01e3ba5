package dom

// Attr represents a single attribute for the element builders.
type Attr struct {
	Key   string
	Value string
}

// ID sets the id attribute.
func ID(v string) Attr { return Attr{Key: "id", Value: v} }

// Class sets the class attribute.
func Class(v string) Attr { return Attr{Key: "class", Value: v} }

// Data sets a data-* attribute.
func Data(name, v string) Attr { return Attr{Key: "data-" + name, Value: v} }

// El builds an element from variadic arguments. Arguments may be:
//
//	Attr    — set as an attribute
//	*Node   — appended as a child
//	string  — appended as a text child
//
// Unknown argument types are ignored.
func El(tag string, args ...any) *Node {
	n := NewElement(tag)
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			n.SetAttr(v.Key, v.Value)
		case *Node:
			n.AppendChild(v)
		case string:
			n.AppendChild(NewText(v))
		}
	}
	return n
}

// Common element shorthands used by the demo host and tests.

func Div(args ...any) *Node    { return El("div", args...) }
func Span(args ...any) *Node   { return El("span", args...) }
func Ul(args ...any) *Node     { return El("ul", args...) }
func Li(args ...any) *Node     { return El("li", args...) }
func Button(args ...any) *Node { return El("button", args...) }
func P(args ...any) *Node      { return El("p", args...) }
func H1(args ...any) *Node     { return El("h1", args...) }
func A(args ...any) *Node      { return El("a", args...) }
func Input(args ...any) *Node  { return El("input", args...) }
func Pre(args ...any) *Node    { return El("pre", args...) }

package delegate

import "github.com/drover-dev/drover/pkg/dom"

// Matcher decides whether a node on the bubble path is a dispatch target.
// Implementations must be pure: matching must not mutate the node.
type Matcher interface {
	Matches(n *dom.Node) bool
}

// MatchFunc adapts a predicate function to the Matcher interface.
type MatchFunc func(n *dom.Node) bool

// Matches implements Matcher.
func (f MatchFunc) Matches(n *dom.Node) bool { return f(n) }

// Selector returns a matcher for a selector list ("li.item", "#list",
// "[data-kind=row]"). It returns an error if the selector does not parse.
func Selector(source string) (Matcher, error) {
	return dom.Compile(source)
}

// MustSelector is like Selector but panics on a malformed selector.
// Intended for selectors known at compile time.
func MustSelector(source string) Matcher {
	return dom.MustCompile(source)
}

// Class matches elements whose class list contains the given class.
func Class(class string) Matcher {
	return MatchFunc(func(n *dom.Node) bool {
		return n != nil && n.HasClass(class)
	})
}

// Tag matches elements by tag name.
func Tag(tag string) Matcher {
	return MatchFunc(func(n *dom.Node) bool {
		return n != nil && n.Kind() == dom.KindElement && n.Tag() == tag
	})
}

// Attr matches elements that carry the attribute with the given value.
// An empty value matches mere presence of the attribute.
func Attr(key, value string) Matcher {
	return MatchFunc(func(n *dom.Node) bool {
		if n == nil {
			return false
		}
		v, ok := n.Attr(key)
		if !ok {
			return false
		}
		return value == "" || v == value
	})
}

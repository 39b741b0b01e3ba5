package dom

import (
	"fmt"
	"strings"
)

// Selector is a compiled selector list. It supports compound simple
// selectors (tag, #id, .class, [attr], [attr=value]) joined by commas:
//
//	"li.item"
//	"#list"
//	"button, a[href]"
//	"[data-kind=row]"
//
// Combinators (descendant, child) are not supported; delegation walks the
// bubble path itself, so per-node matching is all that is needed.
type Selector struct {
	source string
	groups []compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrCond
}

type attrCond struct {
	key      string
	value    string
	hasValue bool
}

// Compile parses a selector list. It returns an error for empty or
// malformed input.
func Compile(source string) (*Selector, error) {
	sel := &Selector{source: source}
	for _, part := range strings.Split(source, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("dom: empty selector in %q", source)
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		sel.groups = append(sel.groups, c)
	}
	return sel, nil
}

// MustCompile is like Compile but panics on error. Intended for selectors
// known at compile time.
func MustCompile(source string) *Selector {
	sel, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the source text the selector was compiled from.
func (s *Selector) String() string { return s.source }

// Matches reports whether the node satisfies any group of the selector.
// Only element nodes can match.
func (s *Selector) Matches(n *Node) bool {
	if n == nil || n.kind != KindElement {
		return false
	}
	for _, g := range s.groups {
		if g.matches(n) {
			return true
		}
	}
	return false
}

func (c compound) matches(n *Node) bool {
	if c.tag != "" && n.tag != c.tag {
		return false
	}
	if c.id != "" && n.ID() != c.id {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.key)
		if !ok {
			return false
		}
		if a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0

	// Optional leading tag name.
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i > start {
		c.tag = strings.ToLower(s[start:i])
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			name, next, err := readName(s, i)
			if err != nil {
				return c, fmt.Errorf("dom: bad id in selector %q", s)
			}
			c.id = name
			i = next
		case '.':
			i++
			name, next, err := readName(s, i)
			if err != nil {
				return c, fmt.Errorf("dom: bad class in selector %q", s)
			}
			c.classes = append(c.classes, name)
			i = next
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("dom: unterminated attribute in selector %q", s)
			}
			body := s[i+1 : i+end]
			i += end + 1
			cond, err := parseAttrCond(body)
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, cond)
		default:
			return c, fmt.Errorf("dom: unexpected %q in selector %q", s[i], s)
		}
	}

	if c.tag == "" && c.id == "" && len(c.classes) == 0 && len(c.attrs) == 0 {
		return c, fmt.Errorf("dom: empty selector %q", s)
	}
	return c, nil
}

func parseAttrCond(body string) (attrCond, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return attrCond{}, fmt.Errorf("dom: empty attribute selector")
	}
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return attrCond{key: strings.ToLower(body)}, nil
	}
	key := strings.TrimSpace(body[:eq])
	if key == "" {
		return attrCond{}, fmt.Errorf("dom: attribute selector missing key: [%s]", body)
	}
	value := strings.TrimSpace(body[eq+1:])
	value = strings.Trim(value, `"'`)
	return attrCond{key: strings.ToLower(key), value: value, hasValue: true}, nil
}

func readName(s string, i int) (string, int, error) {
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", i, fmt.Errorf("empty name")
	}
	return s[start:i], i, nil
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '-' || b == '_'
}

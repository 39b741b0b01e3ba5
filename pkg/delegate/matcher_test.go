package delegate

import (
	"testing"

	"github.com/drover-dev/drover/pkg/dom"
)

func TestMatchers(t *testing.T) {
	node := dom.Li(dom.ID("row-1"), dom.Class("item"), dom.Data("kind", "row"))

	tests := []struct {
		name    string
		matcher Matcher
		want    bool
	}{
		{"class hit", Class("item"), true},
		{"class miss", Class("row"), false},
		{"tag hit", Tag("li"), true},
		{"tag miss", Tag("ul"), false},
		{"attr presence", Attr("data-kind", ""), true},
		{"attr value hit", Attr("data-kind", "row"), true},
		{"attr value miss", Attr("data-kind", "cell"), false},
		{"attr missing", Attr("href", ""), false},
		{"selector", MustSelector("li.item"), true},
		{"selector miss", MustSelector("ul.item"), false},
		{"predicate", MatchFunc(func(n *dom.Node) bool { return n.ID() == "row-1" }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher.Matches(node); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchersNilNode(t *testing.T) {
	for _, m := range []Matcher{Class("item"), Tag("li"), Attr("id", ""), MustSelector("li")} {
		if m.Matches(nil) {
			t.Errorf("%T must not match nil", m)
		}
	}
}

func TestSelectorError(t *testing.T) {
	if _, err := Selector("[broken"); err == nil {
		t.Error("Selector should surface compile errors")
	}
	if m, err := Selector(".item"); err != nil || m == nil {
		t.Errorf("Selector(.item) = %v, %v", m, err)
	}
}

func TestTagIgnoresTextNodes(t *testing.T) {
	if Tag("li").Matches(dom.NewText("li")) {
		t.Error("text nodes must not match tag matchers")
	}
}

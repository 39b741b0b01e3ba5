package dom

import "testing"

func TestSelectorMatches(t *testing.T) {
	node := Li(ID("row-3"), Class("item selected"), Data("kind", "row"))

	tests := []struct {
		selector string
		want     bool
	}{
		{"li", true},
		{"ul", false},
		{".item", true},
		{".selected", true},
		{".missing", false},
		{"#row-3", true},
		{"#row-4", false},
		{"li.item", true},
		{"li.item.selected", true},
		{"ul.item", false},
		{"li#row-3.item", true},
		{"[data-kind]", true},
		{"[data-kind=row]", true},
		{"[data-kind='row']", true},
		{`[data-kind="row"]`, true},
		{"[data-kind=cell]", false},
		{"[href]", false},
		{"ul, li", true},
		{"div, .missing", false},
		{"a, .item, #nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			sel, err := Compile(tt.selector)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.selector, err)
			}
			if got := sel.Matches(node); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectorOnlyMatchesElements(t *testing.T) {
	sel := MustCompile(".item")
	if sel.Matches(NewText("item")) {
		t.Error("text nodes must never match")
	}
	if sel.Matches(nil) {
		t.Error("nil must never match")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []string{
		"",
		"  ",
		".item,",
		".",
		"#",
		"li..",
		"[unterminated",
		"[=value]",
		"li>span",
		"ul li",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, err := Compile(src); err == nil {
				t.Errorf("Compile(%q) should fail", src)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on malformed selector")
		}
	}()
	MustCompile("[broken")
}

func TestSelectorString(t *testing.T) {
	src := "li.item, #list"
	if got := MustCompile(src).String(); got != src {
		t.Errorf("String() = %q, want %q", got, src)
	}
}

package h

import (
	"testing"

	"github.com/vango-dev/hyperdom/pkg/dom"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		tag     string
		classes []string
		id      string
	}{
		{"div", "div", nil, ""},
		{"div.a.b#x", "div", []string{"a", "b"}, "x"},
		{"span#x.a", "span", []string{"a"}, "x"},
		{".card", "div", []string{"card"}, ""},
		{"#main", "div", nil, "main"},
		{"#first#second", "div", nil, "second"},
		{"my-widget.x", "my-widget", []string{"x"}, ""},
		{"svg:rect.shape", "svg:rect", []string{"shape"}, ""},
		{"p..a", "p", []string{"a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e := parseSelector(dom.NewDocument(), tt.in)
			if e == nil {
				t.Fatalf("parseSelector(%q) = nil", tt.in)
			}
			if e.TagName() != tt.tag {
				t.Errorf("tag = %q, want %q", e.TagName(), tt.tag)
			}
			if got := e.ClassList().Values(); !equalStrings(got, tt.classes) {
				t.Errorf("classes = %v, want %v", got, tt.classes)
			}
			if e.ID() != tt.id {
				t.Errorf("id = %q, want %q", e.ID(), tt.id)
			}
			if tt.id == "" && e.HasAttribute("id") {
				t.Errorf("unexpected id attribute")
			}
		})
	}
}

func TestParseSelectorEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", ".", "#.#"} {
		if e := parseSelector(dom.NewDocument(), in); e != nil {
			t.Errorf("parseSelector(%q) = %v, want nil", in, e.TagName())
		}
	}
}

func TestSelectorOnlyForFirstString(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("p.a", "p.b", "#c")

	if el.ClassList().Contains("b") || el.HasAttribute("id") {
		t.Fatal("later strings must not be parsed as selectors")
	}
	if got := childTexts(el); !equalStrings(got, []string{"p.b", "#c"}) {
		t.Fatalf("children = %v", got)
	}
}

func TestEmptySelectorThenSelector(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("", "li.item")

	if el == nil || el.TagName() != "li" || !el.ClassList().Contains("item") {
		t.Fatalf("empty string should be a no-op before the selector, got %v", el)
	}
}

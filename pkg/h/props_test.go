package h

import (
	"testing"

	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

func TestHandlerProperty(t *testing.T) {
	ctx, _ := newTestContext(t)
	clicks := 0
	var seen *dom.Event

	el := ctx.H("button", Props{
		"onclick": func(ev *dom.Event) { clicks++; seen = ev },
		"onFocus": func() { clicks += 10 },
	})

	ev := dom.NewEvent("click")
	el.DispatchEvent(ev)
	if clicks != 1 || seen != ev {
		t.Fatalf("click handler: clicks=%d", clicks)
	}
	el.DispatchEvent(dom.NewEvent("focus"))
	if clicks != 11 {
		t.Fatalf("focus handler: clicks=%d", clicks)
	}
	if ctx.Pending() != 0 {
		t.Fatal("handlers must not queue cleanups")
	}
	if len(el.Attributes()) != 0 {
		t.Fatalf("handlers should not become attributes: %v", el.Attributes())
	}
}

func TestNonHandlerFuncUnderOnKey(t *testing.T) {
	ctx, _ := newTestContext(t)
	fn := func(int) string { return "" }

	el := ctx.H("div", Props{"onx": fn, "online": "yes"})

	if el.Handler("x") != nil || el.Handler("onx") != nil {
		t.Fatal("unexpected handler")
	}
	if el.Property("onx") == nil {
		t.Fatal("non-handler value should be stored as a property")
	}
	if el.Property("online") != "yes" {
		t.Fatalf("online = %v", el.Property("online"))
	}
}

func TestObservablePropertyBinding(t *testing.T) {
	ctx, _ := newTestContext(t)
	obs := &fakeObservable{value: "Sam"}

	el := ctx.H("div", Props{"title": obs})

	if el.GetAttribute("title") != "Sam" {
		t.Fatalf("title = %q", el.GetAttribute("title"))
	}
	obs.emit("Alex")
	if el.GetAttribute("title") != "Alex" {
		t.Fatalf("title after emit = %q", el.GetAttribute("title"))
	}
	if ctx.Pending() != 1 || len(obs.subs) != 1 {
		t.Fatalf("pending=%d subs=%d", ctx.Pending(), len(obs.subs))
	}

	ctx.Cleanup()
	obs.emit("Kim")
	if el.GetAttribute("title") != "Alex" {
		t.Fatal("binding still active after Cleanup")
	}
	if obs.unsubs != 1 {
		t.Fatalf("unsubs = %d, want 1", obs.unsubs)
	}
}

func TestObservableBagProperty(t *testing.T) {
	ctx, _ := newTestContext(t)
	sig := reactive.NewSignal(3)

	el := ctx.H("input", Props{"value": sig})

	if el.Property("value") != 3 {
		t.Fatalf("value = %v", el.Property("value"))
	}
	sig.Set(4)
	if el.Property("value") != 4 {
		t.Fatalf("value = %v", el.Property("value"))
	}
	ctx.Cleanup()
	if sig.Subscribers() != 0 {
		t.Fatalf("subscribers = %d", sig.Subscribers())
	}
}

func TestObservableStyleKey(t *testing.T) {
	ctx, _ := newTestContext(t)
	obs := &fakeObservable{value: "color: red"}

	el := ctx.H("div", Props{"style": obs})

	if el.Style().GetPropertyValue("color") != "red" {
		t.Fatalf("style = %q", el.Style().CSSText())
	}
	obs.emit("color: blue; margin: 0")
	if got := el.GetAttribute("style"); got != "color: blue; margin: 0;" {
		t.Fatalf("style attribute = %q", got)
	}
}

func TestStyleString(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("div", Props{"style": "color: red; font-weight: bold"})

	if got := el.GetAttribute("style"); got != "color: red; font-weight: bold;" {
		t.Fatalf("style = %q", got)
	}
}

func TestStyleRecord(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("div", Props{"style": Props{
		"backgroundColor": "black",
		"color":           "red !important",
		"zIndex":          2,
		"--gap":           "4px",
	}})

	st := el.Style()
	tests := []struct {
		name, value, priority string
	}{
		{"background-color", "black", ""},
		{"color", "red", "important"},
		{"z-index", "2", ""},
		{"--gap", "4px", ""},
	}
	for _, tt := range tests {
		if got := st.GetPropertyValue(tt.name); got != tt.value {
			t.Errorf("%s = %q, want %q", tt.name, got, tt.value)
		}
		if got := st.GetPropertyPriority(tt.name); got != tt.priority {
			t.Errorf("%s priority = %q, want %q", tt.name, got, tt.priority)
		}
	}
}

func TestStyleImportantVariants(t *testing.T) {
	tests := []struct {
		in, value, priority string
	}{
		{"red !important", "red", "important"},
		{"red!important", "red!important", ""},
		{"1px solid  !important ", "1px solid", "important"},
		{"red", "red", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			el := ctx.H("div", Props{"style": Props{"border": tt.in}})

			if got := el.Style().GetPropertyValue("border"); got != tt.value {
				t.Fatalf("value = %q, want %q", got, tt.value)
			}
			if got := el.Style().GetPropertyPriority("border"); got != tt.priority {
				t.Fatalf("priority = %q, want %q", got, tt.priority)
			}
		})
	}
}

func TestObservableStyleProperty(t *testing.T) {
	ctx, _ := newTestContext(t)
	obs := &fakeObservable{value: "red"}

	el := ctx.H("div", Props{"style": Props{"color": obs}})

	if el.Style().GetPropertyValue("color") != "red" {
		t.Fatal("initial style not applied")
	}
	obs.emit("blue")
	if el.Style().GetPropertyValue("color") != "blue" {
		t.Fatal("style not updated")
	}
	ctx.Cleanup()
	obs.emit("green")
	if el.Style().GetPropertyValue("color") != "blue" {
		t.Fatal("style binding still active after Cleanup")
	}
}

func TestAttrs(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("svg", Props{"attrs": Props{"viewBox": "0 0 10 10", "width": 10}})

	if el.GetAttribute("viewbox") != "0 0 10 10" || el.GetAttribute("width") != "10" {
		t.Fatalf("attributes = %v", el.Attributes())
	}
	if el.Property("attrs") != nil {
		t.Fatal("attrs should not be stored as a property")
	}
}

func TestDataAttributes(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("div", Props{"data-id": 42, "data-name": "x"})

	if el.GetAttribute("data-id") != "42" || el.GetAttribute("data-name") != "x" {
		t.Fatalf("attributes = %v", el.Attributes())
	}
}

func TestPlainProperties(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("a", Props{
		"id":        "home",
		"className": "nav active",
		"href":      "/",
		"tabIndex":  3,
	})

	if el.ID() != "home" || !el.ClassList().Contains("active") {
		t.Fatalf("reflected properties not applied: %v", el.Attributes())
	}
	if el.Property("href") != "/" || el.Property("tabIndex") != 3 {
		t.Fatal("bag properties not stored")
	}
	if el.HasAttribute("href") {
		t.Fatal("plain properties should not become attributes")
	}
}

func TestRecordsApplyInOrder(t *testing.T) {
	ctx, _ := newTestContext(t)

	el := ctx.H("div", Props{"title": "a"}, Props{"title": "b"})

	if el.GetAttribute("title") != "b" {
		t.Fatalf("title = %q, want later record to win", el.GetAttribute("title"))
	}
}

func TestIsHandlerKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"onclick", true},
		{"onClick", true},
		{"on_input", true},
		{"on", false},
		{"on-click", false},
		{"once", true},
		{"button", false},
	}

	for _, tt := range tests {
		if got := IsHandlerKey(tt.key); got != tt.want {
			t.Fatalf("IsHandlerKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// Package h builds live DOM subtrees from a compact, call-style description.
//
// A Context owns the cleanup list for every reactive binding created through
// it. Its H method takes a selector shorthand followed by any mix of content:
//
//	ctx := h.New(dom.NewDocument())
//	count := reactive.NewSignal(0)
//
//	el := ctx.H("button.primary#save",
//	    h.Props{
//	        "onclick": func(*dom.Event) { count.Update(func(n int) int { return n + 1 }) },
//	        "style":   h.Props{"color": "red !important"},
//	        "attrs":   h.Props{"type": "submit"},
//	    },
//	    "Saved ", count, " times",
//	)
//
//	// later
//	ctx.Cleanup() // stops every binding made through ctx
//
// # Arguments
//
// The first string establishes the element: "tag.class#id", or ".class" /
// "#id" for a div. Later strings, numbers, booleans, time.Time and
// *regexp.Regexp values become text nodes. Slices are flattened. Nodes are
// appended as they are. Props (or any map keyed by string) set handlers,
// properties, styles and attributes. A reactive.Observable becomes a child
// whose content follows the observable.
//
// Appending content before an element exists is a programming error and
// panics with an error matching ErrNoElement.
package h

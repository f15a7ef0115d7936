// Package script runs JavaScript that builds DOM trees with the h builder.
//
// Scripts see the familiar hyperscript globals:
//
//	var name = observable("world");
//	setTimeout(function () { name.set("there"); }, 10);
//	h("p.greeting", { style: { color: "red" } }, "hello ", name);
//
// The value of the last expression must be an element. Go values such as
// elements and events are exposed with lower-cased method names, so
// el.setAttribute("x", "1") and ev.preventDefault() work as expected.
//
// All JavaScript and DOM work happens on one event-loop goroutine owned by
// the Runtime. Other goroutines must go through Runtime.Do.
package script

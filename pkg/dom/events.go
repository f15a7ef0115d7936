package dom

import "strings"

// EventHandler is the signature of an on* handler property.
type EventHandler func(ev *Event)

// Event is a dispatched event.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string

	// Bubbles controls whether the event propagates to ancestors.
	Bubbles bool

	// Detail carries caller-supplied data.
	Detail any

	Target        *Element
	CurrentTarget *Element

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates a bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// PreventDefault marks the event as canceled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// SetHandler assigns an on* handler property. A nil handler clears it.
func (e *Element) SetHandler(name string, fn EventHandler) {
	name = strings.ToLower(name)
	if fn == nil {
		delete(e.handlers, name)
		return
	}
	if e.handlers == nil {
		e.handlers = make(map[string]EventHandler)
	}
	e.handlers[name] = fn
}

// Handler returns the handler assigned to an on* property, or nil.
func (e *Element) Handler(name string) EventHandler {
	return e.handlers[strings.ToLower(name)]
}

// DispatchEvent invokes the "on"+ev.Type handler on e and, for bubbling
// events, on each ancestor until propagation is stopped. It returns false
// if a handler called PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	if ev == nil {
		return true
	}
	ev.Target = e
	prop := "on" + strings.ToLower(ev.Type)

	for cur := e; cur != nil; cur = cur.parent {
		if fn := cur.handlers[prop]; fn != nil {
			ev.CurrentTarget = cur
			fn(ev)
		}
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

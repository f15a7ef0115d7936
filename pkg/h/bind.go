package h

import (
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// bindProperty keeps el[name] in sync with obs.
func (b *build) bindProperty(el *dom.Element, name string, obs reactive.Observable) {
	c := b.ctx
	el.SetProperty(name, obs.Current())
	unsub := obs.Subscribe(func(v any) {
		el.SetProperty(name, v)
		c.metrics.BindingUpdated(BindingProperty)
	})
	c.track(unsub, BindingProperty)
}

// bindStyle keeps one style property in sync with obs.
func (b *build) bindStyle(el *dom.Element, name string, obs reactive.Observable) {
	c := b.ctx
	el.Style().Set(name, toText(obs.Current()))
	unsub := obs.Subscribe(func(v any) {
		el.Style().Set(name, toText(v))
		c.metrics.BindingUpdated(BindingStyle)
	})
	c.track(unsub, BindingStyle)
}

// slot is the state of one observable child: the element it belongs to and
// the node currently rendered for it. It is shared by pointer with the
// subscription so every emission sees the latest node.
type slot struct {
	ctx     *Context
	owner   *dom.Element
	current dom.Node
}

// bindChild appends the observable's current value as a child and keeps it
// updated.
func (b *build) bindChild(obs reactive.Observable) dom.Node {
	el := b.require("observable")

	s := &slot{ctx: b.ctx, owner: el}
	s.current = s.render(obs.Current())
	if err := el.AppendChild(s.current); err != nil {
		b.ctx.logger.Warn("append failed", "error", err)
	}

	b.ctx.track(obs.Subscribe(s.update), BindingChild)
	return s.current
}

// render returns v itself when it is node-shaped and a text node otherwise.
func (s *slot) render(v any) dom.Node {
	if n, ok := dom.AsNode(v); ok {
		return n
	}
	return s.ctx.doc.CreateTextNode(toText(v))
}

// update swaps in a new node when v is node-shaped and the current node is
// attached, and rewrites the current node's text otherwise.
func (s *slot) update(v any) {
	defer s.ctx.metrics.BindingUpdated(BindingChild)

	if n, ok := dom.AsNode(v); ok {
		if parent := s.current.ParentElement(); parent != nil {
			if err := parent.ReplaceChild(n, s.current); err != nil {
				s.ctx.logger.Warn("replace failed", "owner", s.owner.NodeName(), "error", err)
				return
			}
			s.current = n
			return
		}
	}
	s.current.SetTextContent(toText(v))
}

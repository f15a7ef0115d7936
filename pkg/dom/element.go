package dom

import (
	"fmt"
	"strings"
)

// Attr is a single attribute name/value pair.
type Attr struct {
	Name  string
	Value string
}

// Element is an element node.
type Element struct {
	node

	tag       string
	attrs     []Attr
	children  []Node
	props     map[string]any
	handlers  map[string]EventHandler
	style     *Style
	classList *ClassList
}

// NodeType implements Node.
func (e *Element) NodeType() NodeType { return ElementNode }

// NodeName returns the upper-cased tag name.
func (e *Element) NodeName() string { return strings.ToUpper(e.tag) }

// TagName returns the tag name exactly as it was passed to CreateElement.
func (e *Element) TagName() string { return e.tag }

// ParentElement implements Node.
func (e *Element) ParentElement() *Element { return e.parent }

// OwnerDocument implements Node.
func (e *Element) OwnerDocument() *Document { return e.doc }

// ID returns the value of the id attribute.
func (e *Element) ID() string { return e.GetAttribute("id") }

// ClassList returns the live class token list.
func (e *Element) ClassList() *ClassList { return e.classList }

// Style returns the inline style declaration.
func (e *Element) Style() *Style { return e.style }

// =============================================================================
// Attributes
// =============================================================================

// SetAttribute sets an attribute. Names are lower-cased.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	if name == "" {
		return
	}
	e.setAttr(name, value)
	if name == "style" {
		e.style.parse(value)
	}
}

// setAttr writes the attribute list without reflecting into the style
// declaration.
func (e *Element) setAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			e.doc.notify(Mutation{Kind: MutationAttributes, Target: e, Name: name})
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	e.doc.notify(Mutation{Kind: MutationAttributes, Target: e, Name: name})
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.LookupAttribute(name)
	return v
}

// LookupAttribute returns the attribute value and whether it is present.
func (e *Element) LookupAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.LookupAttribute(name)
	return ok
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			if name == "style" {
				e.style.parse("")
			}
			e.doc.notify(Mutation{Kind: MutationAttributes, Target: e, Name: name})
			return
		}
	}
}

// Attributes returns a copy of the attribute list in insertion order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// =============================================================================
// Properties
// =============================================================================

// SetProperty assigns an element property. The id, className, title, style
// and textContent properties reflect into the tree the way a browser does;
// any other name is stored in the element's property bag.
func (e *Element) SetProperty(name string, value any) {
	switch name {
	case "id":
		e.SetAttribute("id", stringify(value))
	case "className":
		e.SetAttribute("class", stringify(value))
	case "title":
		e.SetAttribute("title", stringify(value))
	case "style":
		e.style.SetCSSText(stringify(value))
	case "textContent":
		e.SetTextContent(stringify(value))
	default:
		if e.props == nil {
			e.props = make(map[string]any)
		}
		e.props[name] = value
		e.doc.notify(Mutation{Kind: MutationProperty, Target: e, Name: name})
	}
}

// Property returns the value of an element property.
func (e *Element) Property(name string) any {
	switch name {
	case "id":
		return e.ID()
	case "className":
		return e.GetAttribute("class")
	case "title":
		return e.GetAttribute("title")
	case "style":
		return e.style.CSSText()
	case "textContent":
		return e.TextContent()
	}
	return e.props[name]
}

// PropertyNames returns the names stored in the property bag.
func (e *Element) PropertyNames() []string {
	names := make([]string, 0, len(e.props))
	for k := range e.props {
		names = append(names, k)
	}
	return names
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

// =============================================================================
// Children
// =============================================================================

// ChildNodes returns a snapshot of the element's children.
func (e *Element) ChildNodes() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// FirstChild returns the first child or nil.
func (e *Element) FirstChild() Node {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// LastChild returns the last child or nil.
func (e *Element) LastChild() Node {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// AppendChild appends child, detaching it from any previous parent first.
func (e *Element) AppendChild(child Node) error {
	if child == nil {
		return nil
	}
	if err := e.checkInsert(child); err != nil {
		return err
	}
	detach(child)
	e.adopt(child)
	e.children = append(e.children, child)
	e.doc.notify(Mutation{Kind: MutationChildList, Target: e})
	return nil
}

// ReplaceChild replaces oldChild with newChild at the same position.
func (e *Element) ReplaceChild(newChild, oldChild Node) error {
	if newChild == nil || oldChild == nil {
		return ErrNotFound
	}
	if oldChild.ParentElement() != e {
		return ErrNotFound
	}
	if newChild == oldChild {
		return nil
	}
	if err := e.checkInsert(newChild); err != nil {
		return err
	}
	detach(newChild)

	idx := e.indexOf(oldChild)
	if idx < 0 {
		return ErrNotFound
	}
	e.adopt(newChild)
	e.children[idx] = newChild
	oldChild.links().parent = nil
	e.doc.notify(Mutation{Kind: MutationChildList, Target: e})
	return nil
}

// RemoveChild removes child from the element.
func (e *Element) RemoveChild(child Node) error {
	if child == nil || child.ParentElement() != e {
		return ErrNotFound
	}
	e.removeAt(e.indexOf(child))
	e.doc.notify(Mutation{Kind: MutationChildList, Target: e})
	return nil
}

// TextContent returns the concatenated data of all descendant text nodes.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Text:
			sb.WriteString(n.data)
		case *Element:
			n.writeText(sb)
		}
	}
}

// SetTextContent removes all children and, for non-empty text, appends a
// single text node.
func (e *Element) SetTextContent(text string) {
	for _, c := range e.children {
		c.links().parent = nil
	}
	e.children = nil
	if text != "" {
		t := e.doc.CreateTextNode(text)
		t.parent = e
		e.children = append(e.children, t)
	}
	e.doc.notify(Mutation{Kind: MutationChildList, Target: e})
}

// Contains reports whether n is e or one of its descendants.
func (e *Element) Contains(n Node) bool {
	for cur := n; cur != nil; {
		if el, ok := cur.(*Element); ok && el == e {
			return true
		}
		p := cur.ParentElement()
		if p == nil {
			return false
		}
		cur = p
	}
	return false
}

func (e *Element) checkInsert(child Node) error {
	if el, ok := child.(*Element); ok && el.Contains(e) {
		return ErrHierarchy
	}
	return nil
}

func (e *Element) adopt(child Node) {
	l := child.links()
	l.parent = e
	if l.doc == nil {
		l.doc = e.doc
	}
}

func (e *Element) indexOf(child Node) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (e *Element) removeAt(idx int) {
	if idx < 0 {
		return
	}
	e.children[idx].links().parent = nil
	e.children = append(e.children[:idx], e.children[idx+1:]...)
}

// detach removes n from its current parent, if any.
func detach(n Node) {
	p := n.ParentElement()
	if p == nil {
		return
	}
	p.removeAt(p.indexOf(n))
	p.doc.notify(Mutation{Kind: MutationChildList, Target: p})
}

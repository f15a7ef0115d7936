package dom

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the HTML serialization of n to w.
func Render(w io.Writer, n Node) error {
	hn := toHTML(n)
	if hn == nil {
		return nil
	}
	return html.Render(w, hn)
}

// OuterHTML returns the HTML serialization of n.
func OuterHTML(n Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML returns the serialization of e's children.
func InnerHTML(e *Element) (string, error) {
	var buf bytes.Buffer
	for _, c := range e.children {
		if err := Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// toHTML converts a subtree into golang.org/x/net/html nodes.
func toHTML(n Node) *html.Node {
	switch v := n.(type) {
	case *Element:
		if v == nil {
			return nil
		}
		hn := &html.Node{
			Type:     html.ElementNode,
			Data:     v.tag,
			DataAtom: atom.Lookup([]byte(v.tag)),
		}
		for _, a := range v.attrs {
			hn.Attr = append(hn.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		for _, c := range v.children {
			if child := toHTML(c); child != nil {
				hn.AppendChild(child)
			}
		}
		return hn
	case *Text:
		if v == nil {
			return nil
		}
		return &html.Node{Type: html.TextNode, Data: v.data}
	case *Comment:
		if v == nil {
			return nil
		}
		return &html.Node{Type: html.CommentNode, Data: v.data}
	}
	return nil
}

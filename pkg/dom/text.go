package dom

// Text is a text node.
type Text struct {
	node
	data string
}

// NodeType implements Node.
func (t *Text) NodeType() NodeType { return TextNode }

// NodeName implements Node.
func (t *Text) NodeName() string { return "#text" }

// ParentElement implements Node.
func (t *Text) ParentElement() *Element { return t.parent }

// OwnerDocument implements Node.
func (t *Text) OwnerDocument() *Document { return t.doc }

// Data returns the node's text.
func (t *Text) Data() string { return t.data }

// SetData replaces the node's text in place.
func (t *Text) SetData(data string) {
	t.data = data
	t.doc.notify(Mutation{Kind: MutationCharacterData, Target: t})
}

// TextContent implements Node.
func (t *Text) TextContent() string { return t.data }

// SetTextContent implements Node. The node keeps its identity.
func (t *Text) SetTextContent(text string) { t.SetData(text) }

// String returns the node's text.
func (t *Text) String() string { return t.data }

// Comment is a comment node.
type Comment struct {
	node
	data string
}

// NodeType implements Node.
func (c *Comment) NodeType() NodeType { return CommentNode }

// NodeName implements Node.
func (c *Comment) NodeName() string { return "#comment" }

// ParentElement implements Node.
func (c *Comment) ParentElement() *Element { return c.parent }

// OwnerDocument implements Node.
func (c *Comment) OwnerDocument() *Document { return c.doc }

// Data returns the comment text.
func (c *Comment) Data() string { return c.data }

// SetData replaces the comment text.
func (c *Comment) SetData(data string) {
	c.data = data
	c.doc.notify(Mutation{Kind: MutationCharacterData, Target: c})
}

// TextContent implements Node.
func (c *Comment) TextContent() string { return c.data }

// SetTextContent implements Node.
func (c *Comment) SetTextContent(text string) { c.SetData(text) }

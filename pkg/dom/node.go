package dom

// NodeType is the node type discriminator. Values match the DOM constants.
type NodeType uint16

const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	CommentNode  NodeType = 8
	DocumentNode NodeType = 9
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	default:
		return "Unknown"
	}
}

// Node is a node that can live in an element's child list.
// Only this package implements it.
type Node interface {
	// NodeType returns the type discriminator of the node.
	NodeType() NodeType

	// NodeName returns the upper-cased tag for elements, "#text" for text
	// nodes and "#comment" for comments.
	NodeName() string

	// ParentElement returns the element this node is attached to, or nil.
	ParentElement() *Element

	// OwnerDocument returns the document that created the node.
	OwnerDocument() *Document

	// TextContent returns the concatenated text of the node and its descendants.
	TextContent() string

	// SetTextContent replaces the node's content with the given text.
	SetTextContent(text string)

	links() *node
}

// node holds the tree linkage shared by every node kind.
type node struct {
	doc    *Document
	parent *Element
}

func (n *node) links() *node { return n }

// named is the structural check used by IsNode.
type named interface {
	NodeName() string
	NodeType() NodeType
}

// IsNode reports whether v is node-shaped: it exposes a non-empty node name
// and a non-zero node type. Nil pointers are not node-shaped.
func IsNode(v any) bool {
	n, ok := v.(named)
	if !ok || isNilNode(v) {
		return false
	}
	return n.NodeName() != "" && n.NodeType() != 0
}

func isNilNode(v any) bool {
	switch n := v.(type) {
	case *Element:
		return n == nil
	case *Text:
		return n == nil
	case *Comment:
		return n == nil
	}
	return v == nil
}

// AsNode returns v as a Node when it is node-shaped and attachable.
func AsNode(v any) (Node, bool) {
	if !IsNode(v) {
		return nil, false
	}
	n, ok := v.(Node)
	return n, ok
}

package dom

import (
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/css"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	// ElementNode is an element with a tag, attributes and children.
	ElementNode NodeType = iota + 1
	// TextNode holds character data.
	TextNode
	// DocumentNode is the root of a document tree.
	DocumentNode
	// FragmentNode is a document fragment or shadow root.
	FragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case DocumentNode:
		return "document"
	case FragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

// Attr is a single attribute. Values are always strings.
type Attr struct {
	Name  string
	Value string
}

// Node is a DOM node. Elements, text, documents and fragments share this
// type and are distinguished by Type.
type Node struct {
	Type NodeType

	tag   string
	data  string
	attrs []Attr

	parent   *Node
	children []*Node
	owner    *Document

	host   *Node // set on shadow roots
	shadow *Node // set on shadow hosts

	sheets    []*css.Sheet
	listeners map[string][]*listener
	observers []*registration

	behavior  any
	connected bool
}

// Tag returns the lowercase tag name of an element.
func (n *Node) Tag() string { return n.tag }

// Data returns the character data of a text node.
func (n *Node) Data() string { return n.data }

// SetData replaces the character data of a text node.
func (n *Node) SetData(data string) {
	if n.Type != TextNode || n.data == data {
		return
	}
	old := n.data
	n.data = data
	n.queueMutation(MutationRecord{Type: MutationCharacterData, Target: n, OldValue: &old})
}

// OwnerDocument returns the document that created the node.
func (n *Node) OwnerDocument() *Document { return n.owner }

// Behavior returns the custom element behavior attached at upgrade, if any.
func (n *Node) Behavior() any { return n.behavior }

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool { return n.Type == ElementNode }

// IsRoot reports whether the node is a document or a fragment (including
// shadow roots), i.e. a scope that can adopt style sheets.
func (n *Node) IsRoot() bool {
	return n.Type == DocumentNode || n.Type == FragmentNode
}

// IsConnected reports whether the node is in a document tree.
func (n *Node) IsConnected() bool { return n.connected }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Host returns the host element of a shadow root.
func (n *Node) Host() *Node { return n.host }

// ShadowRoot returns the shadow root attached to an element, or nil.
func (n *Node) ShadowRoot() *Node { return n.shadow }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// FirstElementChild returns the first element child, or nil.
func (n *Node) FirstElementChild() *Node {
	for _, c := range n.children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// RootNode returns the topmost ancestor, stopping at shadow roots.
func (n *Node) RootNode() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Contains reports whether other is n or a descendant of n. Shadow trees
// are not crossed.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.data
	}
	var sb strings.Builder
	Walk(n, func(d *Node) bool {
		if d.Type == TextNode {
			sb.WriteString(d.data)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.Type == TextNode {
		n.SetData(text)
		return
	}
	var nodes []*Node
	if text != "" {
		nodes = append(nodes, n.owner.CreateTextNode(text))
	}
	n.ReplaceChildren(nodes...)
}

// AttachShadow creates (or returns the existing) shadow root of an element.
func (n *Node) AttachShadow() *Node {
	if n.shadow != nil {
		return n.shadow
	}
	root := n.owner.CreateFragment()
	root.host = n
	root.connected = n.connected
	n.shadow = root
	return root
}

// AdoptedStyleSheets returns the sheets adopted by a document or fragment.
func (n *Node) AdoptedStyleSheets() []*css.Sheet {
	return slices.Clone(n.sheets)
}

// SetAdoptedStyleSheets replaces the adopted sheets of a document or
// fragment. It is a no-op on other node types.
func (n *Node) SetAdoptedStyleSheets(sheets []*css.Sheet) {
	if !n.IsRoot() {
		return
	}
	n.sheets = slices.Clone(sheets)
}

// AdoptsSheet reports whether sheet is adopted by the node.
func (n *Node) AdoptsSheet(sheet *css.Sheet) bool {
	return slices.Contains(n.sheets, sheet)
}

// Walk visits n and its descendants in tree order. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		Walk(c, fn)
	}
}

// ElementsByTag returns the elements below n with the given tag, in tree
// order. Shadow trees are not searched.
func (n *Node) ElementsByTag(tag string) []*Node {
	tag = strings.ToLower(tag)
	var out []*Node
	for _, c := range n.children {
		Walk(c, func(d *Node) bool {
			if d.Type == ElementNode && d.tag == tag {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

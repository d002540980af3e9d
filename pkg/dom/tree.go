package dom

import (
	"fmt"
	"slices"
)

// AppendChild appends child, moving it from its current parent. Appending a
// fragment moves the fragment's children instead.
//
// Like golang.org/x/net/html, hierarchy violations (inserting a node into
// itself or its own descendant, or inserting a document) panic.
func (n *Node) AppendChild(child *Node) *Node {
	n.insertAt(expand(child), len(n.children))
	return child
}

// Append appends nodes in order.
func (n *Node) Append(nodes ...*Node) {
	var all []*Node
	for _, c := range nodes {
		all = append(all, expand(c)...)
	}
	n.insertAt(all, len(n.children))
}

// InsertBefore inserts child before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if ref == nil {
		return n.AppendChild(child)
	}
	nodes := expand(child)
	for _, c := range nodes {
		if c == ref {
			return child
		}
		n.detachForInsert(c)
	}
	idx := n.indexOf(ref)
	if idx < 0 {
		panic(fmt.Sprintf("dom: InsertBefore reference is not a child of <%s>", n.tag))
	}
	n.insertAt(nodes, idx)
	return child
}

// RemoveChild removes child from n. It panics when child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	idx := n.indexOf(child)
	if idx < 0 {
		panic(fmt.Sprintf("dom: RemoveChild node is not a child of <%s>", n.tag))
	}
	n.removeAt(idx)
	return child
}

// Remove detaches the node from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// ReplaceChild replaces old with replacement.
func (n *Node) ReplaceChild(replacement, old *Node) *Node {
	if replacement == old {
		return old
	}
	n.InsertBefore(replacement, old)
	n.RemoveChild(old)
	return old
}

// ReplaceChildren removes all children and appends nodes.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	var all []*Node
	for _, c := range nodes {
		all = append(all, expand(c)...)
	}
	for len(n.children) > 0 {
		n.removeAt(len(n.children) - 1)
	}
	if len(all) > 0 {
		n.insertAt(all, len(n.children))
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// expand flattens a plain fragment into its children.
func expand(child *Node) []*Node {
	if child == nil {
		panic("dom: insert nil node")
	}
	if child.Type == FragmentNode && child.host == nil {
		return slices.Clone(child.children)
	}
	return []*Node{child}
}

func (n *Node) detachForInsert(child *Node) {
	if child.Type == DocumentNode {
		panic("dom: cannot insert a document")
	}
	if child.Contains(n) {
		panic(fmt.Sprintf("dom: cannot insert <%s> into its own subtree", child.tag))
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
}

func (n *Node) insertAt(nodes []*Node, idx int) {
	if len(nodes) == 0 {
		return
	}
	if n.Type == TextNode {
		panic("dom: text nodes cannot have children")
	}
	for _, c := range nodes {
		n.detachForInsert(c)
	}
	if idx > len(n.children) {
		idx = len(n.children)
	}
	n.children = slices.Insert(n.children, idx, nodes...)
	for _, c := range nodes {
		c.parent = n
	}
	n.queueMutation(MutationRecord{Type: MutationChildList, Target: n, AddedNodes: slices.Clone(nodes)})
	if n.connected {
		for _, c := range nodes {
			connectTree(c)
		}
	}
}

func (n *Node) removeAt(idx int) {
	child := n.children[idx]
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	n.queueMutation(MutationRecord{Type: MutationChildList, Target: n, RemovedNodes: []*Node{child}})
	if child.connected {
		disconnectTree(child)
	}
}

// walkComposed visits n, its descendants and their shadow trees in tree
// order.
func walkComposed(n *Node, fn func(*Node)) {
	fn(n)
	if n.shadow != nil {
		walkComposed(n.shadow, fn)
	}
	for _, c := range slices.Clone(n.children) {
		walkComposed(c, fn)
	}
}

func connectTree(root *Node) {
	walkComposed(root, func(d *Node) {
		if d.connected {
			return
		}
		d.connected = true
		if d.Type == ElementNode && d.owner != nil {
			d.owner.registry.connected(d)
		}
	})
}

func disconnectTree(root *Node) {
	walkComposed(root, func(d *Node) {
		if !d.connected {
			return
		}
		d.connected = false
		if d.Type == ElementNode && d.owner != nil {
			d.owner.registry.disconnected(d)
		}
	})
}

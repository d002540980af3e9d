package dom

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ParseFragment parses markup into a document fragment owned by d. The
// parser is permissive: HTML entities are known, unquoted and value-less
// attributes are accepted. Whitespace-only text between elements is dropped.
//
// Elements are created before their attributes are set, so defined custom
// elements see their attributes through AttributeChanged while still
// disconnected.
func (d *Document) ParseFragment(markup string) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString("<root>" + markup + "</root>"); err != nil {
		return nil, fmt.Errorf("dom: parse markup: %w", err)
	}
	frag := d.CreateFragment()
	if root := doc.Root(); root != nil {
		d.appendTokens(frag, root.Child)
	}
	return frag, nil
}

func (d *Document) appendTokens(parent *Node, tokens []etree.Token) {
	for _, tok := range tokens {
		switch t := tok.(type) {
		case *etree.Element:
			tag := t.Tag
			if t.Space != "" {
				tag = t.Space + ":" + t.Tag
			}
			el := d.CreateElement(tag)
			for _, a := range t.Attr {
				el.SetAttribute(a.FullKey(), a.Value)
			}
			d.appendTokens(el, t.Child)
			parent.AppendChild(el)
		case *etree.CharData:
			if t.IsWhitespace() {
				continue
			}
			parent.AppendChild(d.CreateTextNode(t.Data))
		}
	}
}

// SetInnerHTML replaces the children of n with parsed markup.
func (n *Node) SetInnerHTML(markup string) error {
	frag, err := n.owner.ParseFragment(markup)
	if err != nil {
		return err
	}
	n.ReplaceChildren(frag)
	return nil
}

// OuterHTML serializes n and its light-tree descendants. Documents and
// fragments serialize as their children.
func (n *Node) OuterHTML() string {
	if n.IsRoot() {
		return n.InnerHTML()
	}
	return serialize([]*Node{n})
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	return serialize(n.children)
}

func serialize(nodes []*Node) string {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	for _, n := range nodes {
		if tok := toToken(n); tok != nil {
			doc.AddChild(tok)
		}
	}
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func toToken(n *Node) etree.Token {
	switch n.Type {
	case TextNode:
		return etree.NewText(n.data)
	case ElementNode:
		el := etree.NewElement(n.tag)
		for _, a := range n.attrs {
			el.CreateAttr(a.Name, a.Value)
		}
		for _, c := range n.children {
			if tok := toToken(c); tok != nil {
				el.AddChild(tok)
			}
		}
		return el
	}
	return nil
}

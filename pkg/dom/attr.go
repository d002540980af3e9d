package dom

import (
	"strings"

	"github.com/go-drift/elements/pkg/css"
)

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	v, _ := n.GetAttribute(name)
	return v
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// AttributeNames returns attribute names in insertion order.
func (n *Node) AttributeNames() []string {
	names := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		names[i] = a.Name
	}
	return names
}

// Attributes returns a copy of the attribute list.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// SetAttribute sets an attribute on an element. Like the browser, setting an
// attribute to its current value still notifies observers.
func (n *Node) SetAttribute(name, value string) {
	if n.Type != ElementNode {
		return
	}
	name = strings.ToLower(name)
	var old *string
	found := false
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			prev := n.attrs[i].Value
			old = &prev
			n.attrs[i].Value = value
			found = true
			break
		}
	}
	if !found {
		n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	}
	n.attributeChanged(name, old, &value)
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range n.attrs {
		if a.Name == name {
			old := a.Value
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.attributeChanged(name, &old, nil)
			return
		}
	}
}

// ToggleAttribute adds an empty attribute when force is true and removes it
// otherwise.
func (n *Node) ToggleAttribute(name string, force bool) {
	switch {
	case force && !n.HasAttribute(name):
		n.SetAttribute(name, "")
	case !force:
		n.RemoveAttribute(name)
	}
}

func (n *Node) attributeChanged(name string, old, value *string) {
	n.queueMutation(MutationRecord{
		Type:          MutationAttributes,
		Target:        n,
		AttributeName: name,
		OldValue:      old,
	})
	if n.owner != nil {
		n.owner.registry.attributeChanged(n, name, old, value)
	}
}

// StyleProperty returns a declaration from the inline style attribute.
func (n *Node) StyleProperty(property string) string {
	decls, _ := css.ParseDeclarations(n.Attr("style"))
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].Property == property {
			return decls[i].Value
		}
	}
	return ""
}

// SetStyleProperty sets or replaces one declaration in the inline style
// attribute. An empty value removes it. A style attribute that fails to
// parse is replaced.
func (n *Node) SetStyleProperty(property, value string) {
	decls, _ := css.ParseDeclarations(n.Attr("style"))
	out := decls[:0]
	for _, d := range decls {
		if d.Property != property {
			out = append(out, d)
		}
	}
	if value != "" {
		out = append(out, css.Decl(property, value))
	}
	if len(out) == 0 {
		n.RemoveAttribute("style")
		return
	}
	n.SetAttribute("style", css.FormatDeclarations(out))
}

package dom

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidName is returned by Define for tags that are not valid custom
	// element names.
	ErrInvalidName = errors.New("dom: invalid custom element name")
	// ErrAlreadyDefined is returned by Define when the tag is taken.
	ErrAlreadyDefined = errors.New("dom: custom element already defined")
)

// ConnectedCallback is implemented by behaviors that want to know when their
// host enters a document.
type ConnectedCallback interface {
	Connected()
}

// DisconnectedCallback is implemented by behaviors that want to know when
// their host leaves a document.
type DisconnectedCallback interface {
	Disconnected()
}

// AttributeChangedCallback receives changes to observed attributes. nil
// means the attribute is absent.
type AttributeChangedCallback interface {
	AttributeChanged(name string, old, value *string)
}

// Definition describes a custom element.
type Definition struct {
	Tag string
	// New creates the behavior attached to host. The behavior may implement
	// any of the callback interfaces.
	New func(host *Node) any
	// ObservedAttributes lists the attributes reported to
	// AttributeChanged.
	ObservedAttributes []string
}

// Registry maps custom element names to definitions.
type Registry struct {
	doc       *Document
	defs      map[string]*Definition
	undefined []func(tag string)
	requested map[string]bool
}

func newRegistry(d *Document) *Registry {
	return &Registry{
		doc:       d,
		defs:      make(map[string]*Definition),
		requested: make(map[string]bool),
	}
}

// Define registers def and upgrades existing elements of that tag in the
// document, including ones inside shadow trees.
func (r *Registry) Define(def Definition) error {
	if !ValidCustomElementName(def.Tag) {
		return fmt.Errorf("%w: %q", ErrInvalidName, def.Tag)
	}
	if _, ok := r.defs[def.Tag]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, def.Tag)
	}
	if def.New == nil {
		return fmt.Errorf("dom: definition for %q has no constructor", def.Tag)
	}
	d := def
	d.ObservedAttributes = slices.Clone(def.ObservedAttributes)
	r.defs[def.Tag] = &d

	var candidates []*Node
	walkComposed(r.doc.Node, func(n *Node) {
		if n.Type == ElementNode && n.tag == def.Tag && n.behavior == nil {
			candidates = append(candidates, n)
		}
	})
	for _, n := range candidates {
		r.upgrade(n)
		if n.connected {
			if cb, ok := n.behavior.(ConnectedCallback); ok {
				cb.Connected()
			}
		}
	}
	return nil
}

// Get returns the definition for tag.
func (r *Registry) Get(tag string) (*Definition, bool) {
	d, ok := r.defs[tag]
	return d, ok
}

// IsDefined reports whether tag has a definition.
func (r *Registry) IsDefined(tag string) bool {
	_, ok := r.defs[tag]
	return ok
}

// OnUndefined registers a hook called once per tag when an element with a
// valid but undefined custom element name is connected. Loaders use it to
// fetch and Define the component lazily.
func (r *Registry) OnUndefined(fn func(tag string)) {
	r.undefined = append(r.undefined, fn)
}

// upgrade attaches the behavior of a defined element and replays observed
// attributes already present.
func (r *Registry) upgrade(n *Node) {
	def, ok := r.defs[n.tag]
	if !ok || n.behavior != nil {
		return
	}
	n.behavior = def.New(n)
	cb, ok := n.behavior.(AttributeChangedCallback)
	if !ok {
		return
	}
	for _, a := range slices.Clone(n.attrs) {
		if slices.Contains(def.ObservedAttributes, a.Name) {
			v := a.Value
			cb.AttributeChanged(a.Name, nil, &v)
		}
	}
}

func (r *Registry) connected(n *Node) {
	if n.behavior == nil {
		if _, ok := r.defs[n.tag]; !ok {
			if ValidCustomElementName(n.tag) && !r.requested[n.tag] {
				r.requested[n.tag] = true
				for _, fn := range r.undefined {
					fn(n.tag)
				}
			}
			return
		}
		r.upgrade(n)
	}
	if cb, ok := n.behavior.(ConnectedCallback); ok {
		cb.Connected()
	}
}

func (r *Registry) disconnected(n *Node) {
	if cb, ok := n.behavior.(DisconnectedCallback); ok {
		cb.Disconnected()
	}
}

func (r *Registry) attributeChanged(n *Node, name string, old, value *string) {
	if n.behavior == nil {
		return
	}
	def, ok := r.defs[n.tag]
	if !ok || !slices.Contains(def.ObservedAttributes, name) {
		return
	}
	if cb, ok := n.behavior.(AttributeChangedCallback); ok {
		cb.AttributeChanged(name, old, value)
	}
}

var reservedNames = []string{
	"annotation-xml", "color-profile", "font-face", "font-face-src",
	"font-face-uri", "font-face-format", "font-face-name", "missing-glyph",
}

// ValidCustomElementName reports whether tag can name a custom element: it
// starts with a lowercase letter, contains a hyphen and is not reserved.
func ValidCustomElementName(tag string) bool {
	if tag == "" || tag[0] < 'a' || tag[0] > 'z' || slices.Contains(reservedNames, tag) {
		return false
	}
	hyphen := false
	for _, r := range tag {
		switch {
		case r == '-':
			hyphen = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
		case r > 0x7f:
		default:
			return false
		}
	}
	return hyphen
}

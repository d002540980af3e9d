package core

import (
	"fmt"
	"slices"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/loop"
	"github.com/go-drift/elements/pkg/style"
)

// Phase is the lifecycle phase of a component instance.
type Phase int

const (
	// Constructing is the phase between upgrade and the first attach.
	// Attribute changes received here are queued.
	Constructing Phase = iota
	// Attached means the host is in a document and wired.
	Attached
	// Detached means the host left the document. Attribute changes are
	// still applied but nothing is painted.
	Detached
)

func (p Phase) String() string {
	switch p {
	case Constructing:
		return "constructing"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Element is implemented by every type that embeds Component.
type Element interface {
	component() *Component
}

// Attacher is implemented by components that want a callback after the
// runtime finished wiring an attach.
type Attacher interface {
	Attached()
}

// Detacher is implemented by components that want a callback on detach.
type Detacher interface {
	Detached()
}

// PropertyObserver is implemented by components that react to property
// changes directly instead of listening for update events.
type PropertyObserver interface {
	PropertyChanged(change Change)
}

// AttributeObserver receives changes to attributes listed in
// Definition.Observed that are not bound to a property.
type AttributeObserver interface {
	AttributeChanged(name string, old, value *string)
}

// UpdateEvent is the type of the event dispatched on the host after a
// property changed. Its Detail is a Change.
const UpdateEvent = "update"

// Change describes a property change.
type Change struct {
	Name      string
	Attribute string
	Old       any
	New       any
}

// Mixin is a capability attached to a component host. Attach runs on every
// attach after the component is wired; Detach on every detach.
type Mixin interface {
	Attach(host *dom.Node)
	Detach()
}

// MixinFactory creates a mixin for a host.
type MixinFactory func(host *dom.Node) Mixin

// Definition declares a component type.
type Definition struct {
	Tag        string
	Properties []PropertyDescriptor
	// New returns a fresh instance. The returned value must embed
	// Component.
	New    func() Element
	Mixins []MixinFactory
	// Styles are adopted into the root the component renders into while
	// at least one instance is attached there.
	Styles []*css.Sheet
	// StyleRegistry adopts Styles. Defaults to style.Shared().
	StyleRegistry *style.Registry
	// ShadowRoot paints into an attached shadow root and leaves slot
	// placeholders to the host environment.
	ShadowRoot bool
	// Painter turns render output into nodes. Defaults to MarkupPainter.
	Painter Painter
	// Observed lists extra attributes reported to AttributeObserver.
	Observed []string
}

// ObservedAttributes returns the attribute names the definition watches.
func (d *Definition) ObservedAttributes() []string {
	var names []string
	for _, p := range d.Properties {
		if a := p.AttributeName(); a != "" && !slices.Contains(names, a) {
			names = append(names, a)
		}
	}
	for _, a := range d.Observed {
		if !slices.Contains(names, a) {
			names = append(names, a)
		}
	}
	return names
}

// Define registers def with reg. Instances are created by the registry when
// an element with the tag is created or upgraded.
func Define(reg *dom.Registry, def Definition) error {
	if def.New == nil {
		return fmt.Errorf("core: definition %q has no constructor", def.Tag)
	}
	for _, p := range def.Properties {
		if p.decode == nil {
			return fmt.Errorf("core: property %q of %q was not built with a Prop helper", p.Name, def.Tag)
		}
	}
	d := &def
	return reg.Define(dom.Definition{
		Tag:                def.Tag,
		ObservedAttributes: d.ObservedAttributes(),
		New: func(host *dom.Node) any {
			el := d.New()
			el.component().init(host, d, el)
			return &behavior{el: el}
		},
	})
}

// Instance returns the component attached to host, if any.
func Instance(host *dom.Node) (Element, bool) {
	b, ok := host.Behavior().(*behavior)
	if !ok {
		return nil, false
	}
	return b.el, true
}

// behavior adapts a component to the dom callback interfaces.
type behavior struct {
	el Element
}

func (b *behavior) Connected()    { b.el.component().attach() }
func (b *behavior) Disconnected() { b.el.component().detach() }
func (b *behavior) AttributeChanged(name string, old, value *string) {
	b.el.component().attributeChanged(name, old, value)
}

type attributeChange struct {
	name       string
	old, value *string
}

// Component is the reactive base of a custom element. Embed it in the
// concrete component type:
//
//	type Counter struct {
//	    core.Component
//	}
//
//	var count = core.NumberProp("count")
//
//	func (c *Counter) Render() templ.Component {
//	    return counterView(count.Get(c))
//	}
//
// Property and state writes request a render; requests made before the
// next animation frame coalesce into one paint.
//
// Component is NOT thread-safe. Use loop.Dispatch to reach it from other
// goroutines.
type Component struct {
	host *dom.Node
	def  *Definition
	self Element

	props  *Store
	state  *Store
	byName map[string]PropertyDescriptor
	byAttr map[string]PropertyDescriptor

	phase   Phase
	pending []attributeChange

	frame     loop.FrameID
	scheduled bool
	stats     Stats

	slots    Slots
	tracked  []*dom.Node
	owned    []*dom.Node
	observer *dom.MutationObserver

	mixins    []Mixin
	detachers []func()
}

func (c *Component) component() *Component { return c }

func (c *Component) init(host *dom.Node, def *Definition, self Element) {
	c.host = host
	c.def = def
	c.self = self
	c.props = NewStore()
	c.state = NewStore()
	c.byName = make(map[string]PropertyDescriptor, len(def.Properties))
	c.byAttr = make(map[string]PropertyDescriptor, len(def.Properties))
	for _, p := range def.Properties {
		c.byName[p.Name] = p
		if a := p.AttributeName(); a != "" {
			c.byAttr[a] = p
		}
		c.props.Set(p.Name, p.Default)
	}
	c.props.AddListener(c.RequestRender)
	c.state.AddListener(c.RequestRender)
	c.slots = Slots{}
	c.observer = dom.NewMutationObserver(host.OwnerDocument(), func(records []dom.MutationRecord, _ *dom.MutationObserver) {
		c.onMutations(records)
	})
	for _, f := range def.Mixins {
		c.mixins = append(c.mixins, f(host))
	}
}

// Host returns the host element.
func (c *Component) Host() *dom.Node { return c.host }

// Phase returns the lifecycle phase.
func (c *Component) Phase() Phase { return c.phase }

// IsAttached reports whether the component is attached.
func (c *Component) IsAttached() bool { return c.phase == Attached }

// Properties returns the store backing declared properties. Prefer the
// typed Prop handles; writes made here bypass reflection.
func (c *Component) Properties() *Store { return c.props }

// State returns the store for internal state. Writes request a render and
// are never reflected.
func (c *Component) State() *Store { return c.state }

// Stats returns the render counters.
func (c *Component) Stats() Stats { return c.stats }

// OnDetach registers fn to run on the next detach. Detachers run in reverse
// registration order and are cleared afterwards.
func (c *Component) OnDetach(fn func()) {
	if fn != nil {
		c.detachers = append(c.detachers, fn)
	}
}

// renderTarget is the node render output is painted into.
func (c *Component) renderTarget() *dom.Node {
	if !c.def.ShadowRoot {
		return c.host
	}
	if root := c.host.ShadowRoot(); root != nil {
		return root
	}
	return c.host.AttachShadow()
}

func (c *Component) styleRegistry() *style.Registry {
	if c.def.StyleRegistry != nil {
		return c.def.StyleRegistry
	}
	return style.Shared()
}

func (c *Component) attach() {
	if c.phase == Attached {
		return
	}
	from := c.phase
	c.phase = Attached
	logging.Get("core").Trace().
		Str("tag", c.def.Tag).
		Stringer("from", from).
		Int("pending", len(c.pending)).
		Msg("attach")

	pending := c.pending
	c.pending = nil
	for _, ch := range pending {
		c.attributeChanged(ch.name, ch.old, ch.value)
	}

	if len(c.def.Styles) > 0 {
		c.OnDetach(c.styleRegistry().Adopt(c.renderTarget(), c.def.Styles...))
	}
	c.observer.Observe(c.host, dom.ObserveOptions{
		ChildList:     true,
		Subtree:       true,
		CharacterData: true,
	})
	c.distribute()
	for _, m := range c.mixins {
		m.Attach(c.host)
	}
	if h, ok := c.self.(Attacher); ok {
		h.Attached()
	}
	c.RequestRender()
}

func (c *Component) detach() {
	if c.phase != Attached {
		return
	}
	c.observer.Disconnect()
	for i := len(c.mixins) - 1; i >= 0; i-- {
		c.mixins[i].Detach()
	}
	detachers := c.detachers
	c.detachers = nil
	for i := len(detachers) - 1; i >= 0; i-- {
		detachers[i]()
	}
	c.phase = Detached
	logging.Get("core").Trace().Str("tag", c.def.Tag).Msg("detach")
	if h, ok := c.self.(Detacher); ok {
		h.Detached()
	}
}

func (c *Component) attributeChanged(name string, old, value *string) {
	if c.phase == Constructing {
		c.pending = append(c.pending, attributeChange{name, old, value})
		return
	}
	desc, ok := c.byAttr[name]
	if !ok {
		if h, ok := c.self.(AttributeObserver); ok {
			h.AttributeChanged(name, old, value)
		}
		return
	}
	v, err := desc.decode(value)
	if err != nil {
		raw := ""
		if value != nil {
			raw = *value
		}
		errors.Report(&errors.ElementError{
			Op:   "core.attributeChanged",
			Kind: errors.KindDecode,
			Tag:  c.def.Tag,
			Err: &errors.DecodeError{
				Attribute: name,
				Property:  desc.Name,
				Type:      desc.Type.String(),
				Value:     raw,
				Err:       err,
			},
		})
		return
	}
	c.setProperty(desc, v)
}

func (c *Component) setProperty(desc PropertyDescriptor, v any) {
	old, _ := c.props.Get(desc.Name)
	if !c.props.Set(desc.Name, v) {
		return
	}
	if desc.Reflect {
		c.reflect(desc, v)
	}
	change := Change{Name: desc.Name, Attribute: desc.AttributeName(), Old: old, New: v}
	if h, ok := c.self.(PropertyObserver); ok {
		h.PropertyChanged(change)
	}
	c.host.DispatchEvent(dom.NewEvent(UpdateEvent, change))
}

// reflect writes the attribute form of v unless the current attribute
// already decodes to v. Comparing decoded values keeps the attribute and
// the property from feeding each other.
func (c *Component) reflect(desc PropertyDescriptor, v any) {
	attr := desc.AttributeName()
	if attr == "" {
		return
	}
	var current *string
	if s, ok := c.host.GetAttribute(attr); ok {
		current = &s
	}
	if decoded, err := desc.decode(current); err == nil && equalValues(decoded, v) {
		return
	}
	if want := desc.encode(v); want == nil {
		c.host.RemoveAttribute(attr)
	} else {
		c.host.SetAttribute(attr, *want)
	}
}

// Package core provides the reactive base for custom elements.
//
// A component is a Go type embedding Component, registered with Define. The
// document's element registry creates an instance for every element with
// the component's tag and drives it through its lifecycle:
//
//	Constructing -> Attached <-> Detached
//
// Attribute changes that arrive while Constructing are queued and replayed
// in order when the host is first attached.
//
// # Properties
//
// Properties are declared statically with typed handles. Each handle maps
// the property to an attribute (kebab-case of its name unless overridden)
// and converts between the attribute text and the typed value:
//
//	var (
//	    count    = core.NumberProp("count")
//	    disabled = core.BoolProp("disabled").Reflected()
//	    items    = core.ArrayProp[string]("items")
//	)
//
//	core.Define(doc.Registry(), core.Definition{
//	    Tag:        "x-counter",
//	    Properties: []core.PropertyDescriptor{count.Descriptor(), disabled.Descriptor(), items.Descriptor()},
//	    New:        func() core.Element { return &Counter{} },
//	})
//
// Boolean properties follow attribute presence. Array and object properties
// hold JSON; a value that does not decode is reported as an
// errors.DecodeError and the property keeps its previous value.
//
// # Rendering
//
// Components implementing Renderer produce a templ.Component. Every
// effective property or state write requests a render; requests coalesce
// into one paint on the next animation frame of the document's loop. The
// default MarkupPainter renders the markup, parses it into nodes and
// distributes the host's content children into <slot> placeholders.
//
// # State
//
// State holds internal values that are never reflected. Store and List are
// observable containers; nesting one inside another opts the inner one into
// change notification through its parent. Managed and Observable cover
// single values, and UseListenable and UseObservable bind external
// notifiers to a component until it detaches.
package core

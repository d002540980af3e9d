// Package styled makes elements stylable by attribute.
//
// A styled host turns attributes such as bg="purple.600" or mt-hover="large"
// into rules in the style registry's shared sheet, keyed by tag and value so
// that every element with the same attribute value shares a rule. Layout
// attributes (column, reverse, wrap, nowrap, center, space) are covered by
// the tag's base rules and never synthesized per value.
//
// Plain elements get the capability through Define; reactive components
// list Mixin in their core.Definition.
package styled

import (
	"slices"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/tokens"
)

// Reserved lists the attributes excluded from rule synthesis on every
// styled host.
var Reserved = []string{
	"as", "class", "center", "column", "disabled", "hidden",
	"nowrap", "reverse", "space", "style", "wrap",
}

const (
	// SheetUpdateEvent is dispatched on the host after each style pass.
	SheetUpdateEvent = "sheetupdate"
	// UpdateSheetEvent can be dispatched on a host to force a style pass.
	UpdateSheetEvent = "updatesheet"
)

// Options configure a styled host.
type Options struct {
	// Ghost overrides the catalog's ghost setting. In ghost mode the host
	// is a flow-root wrapper and rules target its first child.
	Ghost *bool
	// Reserved adds attributes to exclude from synthesis, for components
	// that handle them themselves.
	Reserved []string
	// Registry receives the rules. Defaults to style.Shared().
	Registry *style.Registry
}

// Supports reports whether attr names a style-token attribute: an alias or
// a CSS property, optionally with a pseudo-state suffix.
func Supports(attr string) bool {
	return tokens.Supports(attr)
}

// Styled is the capability attached to one host.
type Styled struct {
	host     *dom.Node
	registry *style.Registry
	ghost    bool
	reserved []string

	observer *dom.MutationObserver
	release  func()
	attached bool
}

// New creates the capability for host. It does nothing until Attach.
func New(host *dom.Node, opts Options) *Styled {
	reg := opts.Registry
	if reg == nil {
		reg = style.Shared()
	}
	ghost := reg.Catalog().Ghost
	if opts.Ghost != nil {
		ghost = *opts.Ghost
	}
	s := &Styled{
		host:     host,
		registry: reg,
		ghost:    ghost,
		reserved: append(slices.Clone(Reserved), opts.Reserved...),
	}
	s.observer = dom.NewMutationObserver(host.OwnerDocument(), func(records []dom.MutationRecord, _ *dom.MutationObserver) {
		s.onMutations(records)
	})
	return s
}

// Mixin returns a factory for core.Definition.Mixins.
func Mixin(opts Options) core.MixinFactory {
	return func(host *dom.Node) core.Mixin {
		return New(host, opts)
	}
}

// Host returns the host element.
func (s *Styled) Host() *dom.Node { return s.host }

// Ghost reports whether the host renders in ghost mode.
func (s *Styled) Ghost() bool { return s.ghost }

// Registry returns the registry rules go to.
func (s *Styled) Registry() *style.Registry { return s.registry }

// IsReserved reports whether attr is excluded from synthesis.
func (s *Styled) IsReserved(attr string) bool {
	return slices.Contains(s.reserved, attr)
}

// Qualifies reports whether attr gets a synthesized rule.
func (s *Styled) Qualifies(attr string) bool {
	return !s.IsReserved(attr) && Supports(attr)
}

// Attach ensures the tag's base rules, synthesizes rules for the current
// attributes and starts observing attribute changes. host must be the node
// passed to New.
func (s *Styled) Attach(host *dom.Node) {
	if s.attached {
		return
	}
	s.attached = true
	s.registry.EnsureBaseRules(host.Tag(), s.ghost)
	s.Update()
	s.observer.Observe(host, dom.ObserveOptions{Attributes: true, AttributeOldValue: true})
	s.release = host.AddEventListener(UpdateSheetEvent, func(*dom.Event) { s.Update() })
}

// Detach stops observing the host. Rules stay in the sheet.
func (s *Styled) Detach() {
	if !s.attached {
		return
	}
	s.attached = false
	s.observer.Disconnect()
	s.release()
}

// Update runs a full style pass: it adopts the sheet into the host's
// current root and ensures a rule for every qualifying attribute.
func (s *Styled) Update() {
	s.registry.Attach(s.host)
	names := s.host.AttributeNames()
	for _, attr := range names {
		s.ensure(attr, names)
	}
	s.host.DispatchEvent(&dom.Event{Type: SheetUpdateEvent})
}

func (s *Styled) ensure(attr string, names []string) {
	if !s.Qualifies(attr) {
		return
	}
	value, ok := s.host.GetAttribute(attr)
	if !ok {
		return
	}
	s.registry.EnsureAttributeRule(style.RuleKey{
		Tag:        s.host.Tag(),
		Attribute:  attr,
		Value:      value,
		AsTarget:   s.host.HasAttribute("as"),
		Ghost:      s.ghost,
		Conditions: style.Conditions(attr, names),
	}, names)
}

// onMutations handles a batch of attribute changes. A change of "as"
// retargets every rule, so it triggers a full pass; other changes only
// need rules for the attributes involved and for the generated attributes
// that consult them.
func (s *Styled) onMutations(records []dom.MutationRecord) {
	var changed []string
	for _, rec := range records {
		if rec.Type != dom.MutationAttributes {
			continue
		}
		if rec.AttributeName == "as" {
			s.Update()
			return
		}
		if !slices.Contains(changed, rec.AttributeName) {
			changed = append(changed, rec.AttributeName)
		}
	}
	if len(changed) == 0 {
		return
	}
	s.registry.Attach(s.host)
	names := s.host.AttributeNames()
	for _, attr := range names {
		if !slices.Contains(changed, attr) && consultsAny(attr, changed) {
			changed = append(changed, attr)
		}
	}
	for _, attr := range changed {
		s.ensure(attr, names)
	}
	logging.Get("styled").Trace().
		Str("tag", s.host.Tag()).
		Strs("attributes", changed).
		Msg("incremental style pass")
	s.host.DispatchEvent(&dom.Event{Type: SheetUpdateEvent})
}

func consultsAny(attr string, names []string) bool {
	for _, c := range tokens.Consults(attr) {
		if slices.Contains(names, c) {
			return true
		}
	}
	return false
}

// Partition splits the host's attributes into style-token attributes and
// ordinary ones. Hosts that render into an inner root keep the former and
// hand the latter, including class and style, to the root. Other reserved
// attributes are in neither list.
func (s *Styled) Partition() (styles, ordinary []dom.Attr) {
	for _, a := range s.host.Attributes() {
		switch {
		case a.Name == "class" || a.Name == "style":
			ordinary = append(ordinary, a)
		case s.IsReserved(a.Name):
		case Supports(a.Name):
			styles = append(styles, a)
		default:
			ordinary = append(ordinary, a)
		}
	}
	return styles, ordinary
}

// element is the behavior of a plain styled element.
type element struct {
	*Styled
}

func (e element) Connected()    { e.Attach(e.host) }
func (e element) Disconnected() { e.Detach() }

// Define registers tag as a plain element with the styled capability.
func Define(reg *dom.Registry, tag string, opts Options) error {
	return reg.Define(dom.Definition{
		Tag: tag,
		New: func(host *dom.Node) any {
			return element{New(host, opts)}
		},
	})
}

// Of returns the capability of a host defined through Define.
func Of(host *dom.Node) (*Styled, bool) {
	e, ok := host.Behavior().(element)
	if !ok {
		return nil, false
	}
	return e.Styled, true
}

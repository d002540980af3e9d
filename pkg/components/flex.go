package components

import (
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/styled"
)

// flexCSS is adopted next to the synthesized rules. With as set, the host
// drops out of layout and its inner root becomes the flex container.
const flexCSS = `m-flex[as] { display: contents; }`

// Flex is the behavior of an m-flex element. The host is the flex container
// unless it carries as="tag", in which case its children live in an inner
// element of that tag, and ordinary attributes (class, style, data-*, ...)
// move to it. Style-token and layout attributes stay on the host.
type Flex struct {
	*styled.Styled

	host    *dom.Node
	root    *dom.Node
	sheet   *css.Sheet
	queued  bool
	release []func()
}

// DefineFlex registers m-flex in reg.
func DefineFlex(reg *dom.Registry, styles *style.Registry) error {
	sheet, err := css.ParseSheet(flexCSS)
	if err != nil {
		return err
	}
	ghost := false
	opts := styled.Options{Ghost: &ghost, Registry: styles}
	return reg.Define(dom.Definition{
		Tag: FlexTag,
		New: func(host *dom.Node) any {
			return &Flex{Styled: styled.New(host, opts), host: host, root: host, sheet: sheet}
		},
		ObservedAttributes: []string{"as"},
	})
}

// FlexOf returns the behavior of an m-flex host.
func FlexOf(host *dom.Node) (*Flex, bool) {
	f, ok := host.Behavior().(*Flex)
	return f, ok
}

// Root returns the element holding the children: the host, or the inner
// element created for as.
func (f *Flex) Root() *dom.Node { return f.root }

func (f *Flex) Connected() {
	f.release = append(f.release,
		f.Registry().Adopt(f.host, f.sheet),
		f.host.AddEventListener(styled.SheetUpdateEvent, func(*dom.Event) {
			if f.root != f.host {
				f.queue()
			}
		}),
	)
	f.Attach(f.host)
}

func (f *Flex) Disconnected() {
	f.Detach()
	for i := len(f.release) - 1; i >= 0; i-- {
		f.release[i]()
	}
	f.release = nil
}

func (f *Flex) AttributeChanged(name string, _, _ *string) {
	if name == "as" {
		f.queue()
	}
}

// queue schedules a sync for the next microtask checkpoint. Several changes
// in one task share one sync.
func (f *Flex) queue() {
	if f.queued {
		return
	}
	f.queued = true
	f.host.OwnerDocument().Loop().QueueMicrotask(f.sync)
}

// sync brings the inner root in line with the as attribute, then moves any
// ordinary attributes added to the host since the last sync.
func (f *Flex) sync() {
	f.queued = false
	as := strings.ToLower(strings.TrimSpace(f.host.Attr("as")))
	switch {
	case as != "" && (f.root == f.host || f.root.Tag() != as):
		f.updateRoot(as)
	case as == "" && f.root != f.host:
		f.updateRoot("")
	case f.root != f.host:
		f.moveAttrs(f.host, f.root)
	}
}

func (f *Flex) updateRoot(as string) {
	doc := f.host.OwnerDocument()
	frag := doc.CreateFragment()
	frag.Append(f.root.Children()...)

	prev := f.root
	if as != "" {
		root := doc.CreateElement(as)
		root.AppendChild(frag)
		if prev != f.host {
			f.moveAttrs(prev, root)
		}
		f.replace(prev, root)
		f.root = root
		f.moveAttrs(f.host, root)
	} else {
		f.moveAttrs(prev, f.host)
		f.replace(prev, frag)
		f.root = f.host
	}
	logging.Get("components").Trace().
		Str("from", prev.Tag()).
		Str("to", f.root.Tag()).
		Msg("flex root updated")

	if f.host.IsConnected() {
		f.Update()
	}
}

// replace puts node where the current root is. A host root, or an inner
// root that was removed from the host, gets node appended to the host.
func (f *Flex) replace(old, node *dom.Node) {
	if old != f.host && old.Parent() != nil {
		old.Parent().ReplaceChild(node, old)
		return
	}
	f.host.AppendChild(node)
}

// moveAttrs moves class, style and ordinary attributes from source to
// target. Classes and style declarations are merged into what target
// already has. slot stays with the host, which is what gets distributed.
func (f *Flex) moveAttrs(source, target *dom.Node) {
	var attrs []dom.Attr
	if source == f.host {
		_, attrs = f.Partition()
	} else {
		attrs = source.Attributes()
	}
	for _, a := range attrs {
		if a.Name == "slot" && source == f.host {
			continue
		}
		switch a.Name {
		case "class":
			mergeClass(target, a.Value)
		case "style":
			mergeStyle(target, a.Value)
		default:
			target.SetAttribute(a.Name, a.Value)
		}
		source.RemoveAttribute(a.Name)
	}
}

func mergeClass(target *dom.Node, value string) {
	classes := strings.Fields(target.Attr("class"))
	for _, c := range strings.Fields(value) {
		if !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	if len(classes) > 0 {
		target.SetAttribute("class", strings.Join(classes, " "))
	}
}

func mergeStyle(target *dom.Node, value string) {
	decls, err := css.ParseDeclarations(value)
	if err != nil || len(decls) == 0 {
		return
	}
	merged, _ := css.ParseDeclarations(target.Attr("style"))
	for _, d := range decls {
		merged = slices.DeleteFunc(merged, func(m css.Declaration) bool { return m.Property == d.Property })
		merged = append(merged, d)
	}
	target.SetAttribute("style", css.FormatDeclarations(merged))
}

package dom

import (
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/loop"
)

// Document owns a node tree, the custom element registry used to upgrade
// its elements, and the event loop that delivers mutation records.
//
// A Document is not safe for concurrent use. All access must happen on the
// goroutine that runs its loop; other goroutines hand work over with
// [loop.Loop.Dispatch].
type Document struct {
	*Node

	loop     *loop.Loop
	registry *Registry
	body     *Node

	pending        []*MutationObserver
	deliveryQueued bool
}

// NewDocument creates a connected document with an empty body element. A nil
// loop gets a fresh one.
func NewDocument(l *loop.Loop) *Document {
	if l == nil {
		l = loop.New()
	}
	d := &Document{loop: l}
	d.Node = &Node{Type: DocumentNode, owner: d, connected: true}
	d.registry = newRegistry(d)
	d.body = d.CreateElement("body")
	d.AppendChild(d.body)
	return d
}

// Loop returns the event loop driving the document.
func (d *Document) Loop() *loop.Loop { return d.loop }

// Registry returns the custom element registry of the document.
func (d *Document) Registry() *Registry { return d.registry }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates an element. When tag names a defined custom element
// the element is upgraded immediately.
func (d *Document) CreateElement(tag string) *Node {
	n := &Node{Type: ElementNode, tag: strings.ToLower(tag), owner: d}
	d.registry.upgrade(n)
	return n
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{Type: TextNode, data: text, owner: d}
}

// CreateFragment creates an empty document fragment.
func (d *Document) CreateFragment() *Node {
	return &Node{Type: FragmentNode, owner: d}
}

func (d *Document) scheduleMutationDelivery(o *MutationObserver) {
	if !slices.Contains(d.pending, o) {
		d.pending = append(d.pending, o)
	}
	if d.deliveryQueued {
		return
	}
	d.deliveryQueued = true
	d.loop.QueueMicrotask(d.deliverMutations)
}

func (d *Document) deliverMutations() {
	observers := d.pending
	d.pending = nil
	d.deliveryQueued = false
	for _, o := range observers {
		if recs := o.TakeRecords(); len(recs) > 0 && o.callback != nil {
			o.callback(recs, o)
		}
	}
}

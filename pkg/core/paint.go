package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/go-drift/elements/pkg/dom"
)

// PaintRequest is the input of a paint pass.
type PaintRequest struct {
	// Target receives the output: the host, or its shadow root.
	Target  *dom.Node
	Content templ.Component
	Slots   Slots
	// Previous is the output of the last pass, to be replaced.
	Previous []*dom.Node
	// KeepSlots leaves <slot> placeholders in the output.
	KeepSlots bool
}

// Painter turns render output into nodes under the target. It returns the
// nodes it owns afterwards.
type Painter interface {
	Paint(ctx context.Context, req PaintRequest) ([]*dom.Node, error)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(ctx context.Context, req PaintRequest) ([]*dom.Node, error)

// Paint calls f.
func (f PainterFunc) Paint(ctx context.Context, req PaintRequest) ([]*dom.Node, error) {
	return f(ctx, req)
}

// MarkupPainter renders content to markup and parses it into nodes. Each
// <slot name="x"> placeholder is replaced by the nodes assigned to x, or by
// its own children when the slot is empty. The previous output is removed
// and the new one appended, so content children that no placeholder
// claimed stay where they are. Slotted nodes are never reported as owned,
// even when a placeholder sits at the top level of the output.
type MarkupPainter struct{}

// Paint implements Painter.
func (MarkupPainter) Paint(ctx context.Context, req PaintRequest) ([]*dom.Node, error) {
	var buf bytes.Buffer
	if err := req.Content.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	frag, err := req.Target.OwnerDocument().ParseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	if !req.KeepSlots {
		fillSlots(frag, req.Slots)
	}
	for _, n := range req.Previous {
		if n.Parent() == req.Target {
			req.Target.RemoveChild(n)
		}
	}
	var owned []*dom.Node
	for _, n := range frag.Children() {
		if !req.Slots.contains(n) {
			owned = append(owned, n)
		}
	}
	req.Target.AppendChild(frag)
	return owned, nil
}

func fillSlots(frag *dom.Node, slots Slots) {
	for _, placeholder := range frag.ElementsByTag("slot") {
		parent := placeholder.Parent()
		if parent == nil {
			continue
		}
		nodes := slots[placeholder.Attr("name")]
		if len(nodes) == 0 {
			nodes = placeholder.Children()
		}
		for _, n := range nodes {
			parent.InsertBefore(n, placeholder)
		}
		parent.RemoveChild(placeholder)
	}
}

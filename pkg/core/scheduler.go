package core

import (
	"context"
	"time"

	"github.com/a-h/templ"

	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/logging"
)

// Renderer is implemented by components that paint content. Components
// without a Render method never schedule. A nil result paints nothing and
// leaves the previous output in place.
type Renderer interface {
	Render() templ.Component
}

// Stats counts render scheduling for a component.
type Stats struct {
	// Scheduled counts frame requests.
	Scheduled int
	// Cancelled counts requests replaced by a later one before their frame.
	Cancelled int
	// Painted counts render passes that reached the painter.
	Painted int
	// Distributions counts slot recomputations.
	Distributions int
}

// RequestRender schedules a paint on the next animation frame. A request
// made while one is pending cancels and replaces it, so any number of
// requests within a task produce a single paint. Components that are not
// attached or do not render ignore the request. Content is only known once
// Render runs in the frame, so a nil result is dropped there and leaves
// the host untouched.
func (c *Component) RequestRender() {
	if c.phase != Attached {
		return
	}
	if _, ok := c.self.(Renderer); !ok {
		return
	}
	l := c.host.OwnerDocument().Loop()
	if c.scheduled {
		l.CancelAnimationFrame(c.frame)
		c.stats.Cancelled++
	}
	c.frame = l.RequestAnimationFrame(c.paintFrame)
	c.scheduled = true
	c.stats.Scheduled++
}

// RenderPending reports whether a paint is scheduled.
func (c *Component) RenderPending() bool { return c.scheduled }

func (c *Component) paintFrame(time.Time) {
	c.scheduled = false
	if c.phase != Attached || !c.host.IsConnected() {
		logging.Get("core").Trace().Str("tag", c.def.Tag).Msg("dropped render of detached component")
		return
	}
	c.paint()
}

func (c *Component) paint() {
	defer errors.RecoverRender(c.def.Tag, nil)

	content := c.self.(Renderer).Render()
	if content == nil {
		return
	}
	painter := c.def.Painter
	if painter == nil {
		painter = MarkupPainter{}
	}
	owned, err := painter.Paint(context.Background(), PaintRequest{
		Target:    c.renderTarget(),
		Content:   content,
		Slots:     c.slots,
		Previous:  c.owned,
		KeepSlots: c.def.ShadowRoot,
	})
	if err != nil {
		errors.ReportRender(&errors.RenderError{Tag: c.def.Tag, Err: err})
		return
	}
	c.owned = owned
	c.stats.Painted++
}

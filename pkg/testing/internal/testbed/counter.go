// Package testbed provides internal test components for the testing
// harness.
package testbed

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/style"
)

// CounterTag is the tag Define registers.
const CounterTag = "x-counter"

// Count is the counter value, reflected to the count attribute.
var Count = core.NumberProp("count").Reflected()

// Counter displays its count and increments on click.
type Counter struct {
	core.Component
	Renders int
}

func (c *Counter) Attached() {
	c.OnDetach(c.Host().AddEventListener("click", func(*dom.Event) {
		Count.Set(c, Count.Get(c)+1)
	}))
}

func (c *Counter) Render() templ.Component {
	c.Renders++
	text := strconv.FormatFloat(Count.Get(c), 'f', -1, 64)
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<span>%s</span><slot></slot>", text)
		return err
	})
}

// Define registers the counter in reg.
func Define(reg *dom.Registry, styles *style.Registry) error {
	return core.Define(reg, core.Definition{
		Tag:           CounterTag,
		Properties:    []core.PropertyDescriptor{Count.Descriptor()},
		New:           func() core.Element { return &Counter{} },
		StyleRegistry: styles,
	})
}

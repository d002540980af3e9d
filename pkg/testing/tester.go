package testing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/elements/pkg/dom"
	elerrors "github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/loop"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/theme"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: loop did not settle")

// Tester owns an isolated document, event loop, fake clock and style
// registry, and records every error reported while it is installed.
type Tester struct {
	doc    *dom.Document
	loop   *loop.Loop
	clock  *FakeClock
	styles *style.Registry

	prevHandler elerrors.ErrorHandler
	reported    []error
}

// NewTester creates a tester with the default theme catalog.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	return NewTesterWithCatalog(theme.Default())
}

// NewTesterWithCatalog creates a tester whose style registry uses catalog.
func NewTesterWithCatalog(catalog *theme.Catalog) *Tester {
	clk := NewFakeClock()
	l := loop.New()
	l.SetClock(clk)
	t := &Tester{
		doc:    dom.NewDocument(l),
		loop:   l,
		clock:  clk,
		styles: style.NewRegistry(catalog),
	}
	t.prevHandler = elerrors.SetHandler(t)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup empties the document and restores the previous error handler.
func (t *Tester) Cleanup() {
	t.doc.Body().ReplaceChildren()
	t.loop.RunMicrotasks()
	elerrors.SetHandler(t.prevHandler)
}

// Document returns the tester's document.
func (t *Tester) Document() *dom.Document { return t.doc }

// Registry returns the custom element registry of the document.
func (t *Tester) Registry() *dom.Registry { return t.doc.Registry() }

// Loop returns the event loop driving the document.
func (t *Tester) Loop() *loop.Loop { return t.loop }

// Clock returns the fake frame clock.
func (t *Tester) Clock() *FakeClock { return t.clock }

// Styles returns the style registry. Pass it to component definitions so
// their rules stay out of the process-wide registry.
func (t *Tester) Styles() *style.Registry { return t.styles }

// Body returns the document body that Mount appends to.
func (t *Tester) Body() *dom.Node { return t.doc.Body() }

// Mount parses markup, appends it to the body and pumps one frame. It
// returns the first top-level element.
func (t *Tester) Mount(markup string) (*dom.Node, error) {
	frag, err := t.doc.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	var first *dom.Node
	for _, n := range frag.Children() {
		if n.IsElement() {
			first = n
			break
		}
	}
	t.doc.Body().AppendChild(frag)
	if first == nil {
		return nil, fmt.Errorf("Mount: markup has no element: %q", markup)
	}
	return first, t.Pump()
}

// Pump runs a single frame cycle: queued tasks and their microtasks, then
// one animation frame one frame interval later.
func (t *Tester) Pump() error {
	t.loop.RunUntilIdle()
	t.clock.Advance(loop.FrameInterval)
	t.loop.Frame()
	return nil
}

// PumpAndSettle pumps until the loop has no pending work or the timeout is
// reached in fake time. Components that request a render from every render
// never settle.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.loop.NeedsWork() {
			return nil
		}
		elapsed += loop.FrameInterval
	}
	return ErrSettleTimeout
}

// Dispatch queues fn as a task for the next Pump, like a callback from
// another goroutine would be.
func (t *Tester) Dispatch(fn func()) {
	t.loop.Dispatch(fn)
}

// Find evaluates a finder against the body.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		nodes:  finder.Evaluate(t.doc.Body()),
		finder: finder,
	}
}

// Errors returns the errors reported since the tester was created, in
// order. Panics recovered by the runtime are included as *errors.PanicError.
func (t *Tester) Errors() []error {
	return t.reported
}

func (t *Tester) HandleError(err *elerrors.ElementError) {
	t.reported = append(t.reported, err)
}

func (t *Tester) HandlePanic(err *elerrors.PanicError) {
	t.reported = append(t.reported, err)
}

func (t *Tester) HandleRenderError(err *elerrors.RenderError) {
	t.reported = append(t.reported, err)
}

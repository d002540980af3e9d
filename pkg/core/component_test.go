package core

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/style"
)

var (
	countProp    = NumberProp("count")
	disabledProp = BoolProp("disabled").Reflected()
	tagsProp     = ArrayProp[string]("tags")
	maxCountProp = NumberProp("maxCount").Reflected()
)

type counter struct {
	Component
	renders []float64
}

func (c *counter) Increment() { countProp.Set(c, countProp.Get(c)+1) }

func (c *counter) Render() templ.Component {
	n := countProp.Get(c)
	c.renders = append(c.renders, n)
	return markup(fmt.Sprintf("<p>count = %s</p>", strconv.FormatFloat(n, 'f', -1, 64)))
}

func markup(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func counterDefinition() Definition {
	return Definition{
		Tag: "x-counter",
		Properties: []PropertyDescriptor{
			countProp.Descriptor(),
			disabledProp.Descriptor(),
			tagsProp.Descriptor(),
			maxCountProp.Descriptor(),
		},
		New: func() Element { return &counter{} },
	}
}

func newDocument(t *testing.T, defs ...Definition) *dom.Document {
	t.Helper()
	doc := dom.NewDocument(nil)
	for _, def := range defs {
		require.NoError(t, Define(doc.Registry(), def))
	}
	return doc
}

func mount[T Element](t *testing.T, doc *dom.Document, tag string) (*dom.Node, T) {
	t.Helper()
	el := doc.CreateElement(tag)
	doc.Body().AppendChild(el)
	inst, ok := Instance(el)
	require.True(t, ok)
	return el, inst.(T)
}

type recordingHandler struct {
	errors  []*errors.ElementError
	renders []*errors.RenderError
}

func (h *recordingHandler) HandleError(err *errors.ElementError)      { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(*errors.PanicError)            {}
func (h *recordingHandler) HandleRenderError(err *errors.RenderError) { h.renders = append(h.renders, err) }

func recordErrors(t *testing.T) *recordingHandler {
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func TestBooleanReflectRoundTrip(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")

	disabledProp.Set(c, true)
	v, ok := el.GetAttribute("disabled")
	require.True(t, ok)
	assert.Equal(t, "", v)

	disabledProp.Set(c, false)
	assert.False(t, el.HasAttribute("disabled"))

	el.SetAttribute("disabled", "false")
	assert.True(t, disabledProp.Get(c))

	el.RemoveAttribute("disabled")
	assert.False(t, disabledProp.Get(c))
}

func TestReflectUsesDerivedAttributeName(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")

	maxCountProp.Set(c, 12.5)
	assert.Equal(t, "12.5", el.Attr("max-count"))

	// An equivalent attribute spelling is left alone.
	el.SetAttribute("max-count", "12.50")
	maxCountProp.Set(c, 12.5)
	assert.Equal(t, "12.50", el.Attr("max-count"))
}

func TestNoopWriteDoesNotSchedule(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	_, c := mount[*counter](t, doc, "x-counter")
	require.Equal(t, 1, c.Stats().Scheduled)

	countProp.Set(c, 0)
	tagsProp.Set(c, nil)
	assert.Equal(t, 1, c.Stats().Scheduled)

	c.State().Set("open", true)
	c.State().Set("open", true)
	assert.Equal(t, 2, c.Stats().Scheduled)
}

func TestWritesCoalesceIntoOneFrame(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")
	l := doc.Loop()
	l.Frame()

	for range 5 {
		c.Increment()
	}
	assert.Equal(t, 1, l.PendingFrames())
	assert.Equal(t, 4, c.Stats().Cancelled)

	l.Frame()
	assert.Equal(t, []float64{0, 5}, c.renders)
	assert.Equal(t, "<p>count = 5</p>", el.InnerHTML())
}

func TestCounterRendersOncePerTask(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")
	l := doc.Loop()
	l.Frame()

	l.Post(func() {
		c.Increment()
		c.Increment()
		c.Increment()
	})
	l.RunUntilIdle()
	l.Frame()

	assert.Equal(t, []float64{0, 3}, c.renders)
	assert.Equal(t, "<p>count = 3</p>", el.InnerHTML())
}

func TestCounterRendersOncePerFrame(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")
	l := doc.Loop()
	l.Frame()

	for range 3 {
		l.Post(c.Increment)
		l.RunUntilIdle()
		l.Frame()
	}

	assert.Equal(t, []float64{0, 1, 2, 3}, c.renders)
	assert.Equal(t, 4, c.Stats().Painted)
	assert.Equal(t, "<p>count = 3</p>", el.InnerHTML())
}

func TestAttributesBeforeAttachAreQueued(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el := doc.CreateElement("x-counter")
	inst, _ := Instance(el)
	c := inst.(*counter)

	el.SetAttribute("count", "5")
	assert.Equal(t, Constructing, c.Phase())
	assert.Equal(t, 0.0, countProp.Get(c))

	doc.Body().AppendChild(el)
	assert.Equal(t, Attached, c.Phase())
	assert.Equal(t, 5.0, countProp.Get(c))
}

func TestParsedAttributesApplyOnAttach(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	require.NoError(t, doc.Body().SetInnerHTML(`<x-counter count="7" tags='["a","b"]' disabled></x-counter>`))

	inst, ok := Instance(doc.Body().FirstChild())
	require.True(t, ok)
	c := inst.(*counter)
	assert.Equal(t, 7.0, countProp.Get(c))
	assert.Equal(t, []string{"a", "b"}, tagsProp.Get(c))
	assert.True(t, disabledProp.Get(c))
}

func TestDecodeFailureKeepsPreviousValue(t *testing.T) {
	h := recordErrors(t)
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")

	el.SetAttribute("tags", `["a","b"]`)
	require.Equal(t, []string{"a", "b"}, tagsProp.Get(c))

	el.SetAttribute("tags", `["a",`)
	assert.Equal(t, []string{"a", "b"}, tagsProp.Get(c))
	assert.Equal(t, Attached, c.Phase())

	require.Len(t, h.errors, 1)
	assert.Equal(t, errors.KindDecode, h.errors[0].Kind)
	assert.Equal(t, "x-counter", h.errors[0].Tag)
	var decodeErr *errors.DecodeError
	require.ErrorAs(t, h.errors[0], &decodeErr)
	assert.Equal(t, "tags", decodeErr.Attribute)
	assert.Equal(t, "array", decodeErr.Type)
	assert.Equal(t, `["a",`, decodeErr.Value)
}

func TestUpdateEventCarriesChange(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, _ := mount[*counter](t, doc, "x-counter")

	var changes []Change
	el.AddEventListener(UpdateEvent, func(ev *dom.Event) {
		changes = append(changes, ev.Detail.(Change))
	})
	el.SetAttribute("count", "2")
	el.SetAttribute("count", "2.0")
	el.SetAttribute("max-count", "9")

	want := []Change{
		{Name: "count", Attribute: "count", Old: 0.0, New: 2.0},
		{Name: "maxCount", Attribute: "max-count", Old: 0.0, New: 9.0},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestDetachedComponentsDoNotPaint(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	el, c := mount[*counter](t, doc, "x-counter")

	el.Remove()
	assert.Equal(t, Detached, c.Phase())
	doc.Loop().Frame()
	assert.Empty(t, c.renders)

	c.Increment()
	assert.Equal(t, 1, c.Stats().Scheduled)
	assert.False(t, c.RenderPending())
}

type broken struct {
	Component
	fail bool
}

func (b *broken) Render() templ.Component {
	if b.fail {
		panic("boom")
	}
	return markup("<span>ok</span>")
}

func TestRenderPanicIsReported(t *testing.T) {
	h := recordErrors(t)
	doc := newDocument(t, Definition{Tag: "x-broken", New: func() Element { return &broken{fail: true} }})
	el, b := mount[*broken](t, doc, "x-broken")

	doc.Loop().Frame()
	require.Len(t, h.renders, 1)
	assert.Equal(t, "boom", h.renders[0].Recovered)
	assert.Equal(t, "x-broken", h.renders[0].Tag)
	assert.NotEmpty(t, h.renders[0].StackTrace)

	b.fail = false
	b.RequestRender()
	doc.Loop().Frame()
	assert.Equal(t, "<span>ok</span>", el.InnerHTML())
}

type card struct {
	Component
}

func (c *card) Render() templ.Component {
	return markup(`<header><slot name="header"><i>untitled</i></slot></header><main><slot></slot></main>`)
}

func cardDefinition(shadow bool) Definition {
	return Definition{Tag: "x-card", New: func() Element { return &card{} }, ShadowRoot: shadow}
}

func TestSlotPartition(t *testing.T) {
	doc := newDocument(t, cardDefinition(false))
	el := doc.CreateElement("x-card")
	require.NoError(t, el.SetInnerHTML(`<p>one</p><h1 slot="header">Title</h1><p>two</p>`))
	doc.Body().AppendChild(el)
	inst, _ := Instance(el)
	c := inst.(*card)

	assert.Equal(t, []string{"", "header"}, c.Slots().Names())
	assert.Equal(t, []string{"one", "two"}, texts(c.Slot(DefaultSlot)))
	assert.Equal(t, []string{"Title"}, texts(c.Slot("header")))

	l := doc.Loop()
	l.Frame()
	assert.Equal(t, `<header><h1 slot="header">Title</h1></header><main><p>one</p><p>two</p></main>`, el.InnerHTML())

	// The paint moved slotted nodes around; nothing new arrived.
	assert.Equal(t, 1, c.Stats().Distributions)
	assert.Zero(t, l.PendingFrames())
}

func TestSlotRedistribution(t *testing.T) {
	doc := newDocument(t, cardDefinition(false))
	el := doc.CreateElement("x-card")
	require.NoError(t, el.SetInnerHTML(`<h1 slot="header">Title</h1><p>one</p>`))
	doc.Body().AppendChild(el)
	inst, _ := Instance(el)
	c := inst.(*card)
	l := doc.Loop()
	l.Frame()

	extra := doc.CreateElement("p")
	extra.SetTextContent("two")
	el.AppendChild(extra)
	l.RunMicrotasks()
	assert.Equal(t, 2, c.Stats().Distributions)
	assert.Equal(t, []string{"one", "two"}, texts(c.Slot(DefaultSlot)))

	l.Frame()
	assert.Equal(t, `<header><h1 slot="header">Title</h1></header><main><p>one</p><p>two</p></main>`, el.InnerHTML())

	el.ElementsByTag("h1")[0].Remove()
	l.RunMicrotasks()
	assert.Equal(t, 3, c.Stats().Distributions)
	assert.Empty(t, c.Slot("header"))

	l.Frame()
	assert.Equal(t, `<header><i>untitled</i></header><main><p>one</p><p>two</p></main>`, el.InnerHTML())
}

func TestShadowRootKeepsSlotPlaceholders(t *testing.T) {
	doc := newDocument(t, cardDefinition(true))
	el := doc.CreateElement("x-card")
	require.NoError(t, el.SetInnerHTML(`<p>one</p>`))
	doc.Body().AppendChild(el)
	doc.Loop().Frame()

	require.NotNil(t, el.ShadowRoot())
	assert.Equal(t, `<header><slot name="header"><i>untitled</i></slot></header><main><slot></slot></main>`, el.ShadowRoot().InnerHTML())
	assert.Equal(t, `<p>one</p>`, el.InnerHTML())
}

type recordingMixin struct {
	events *[]string
}

func (m recordingMixin) Attach(host *dom.Node) { *m.events = append(*m.events, "attach "+host.Tag()) }
func (m recordingMixin) Detach()               { *m.events = append(*m.events, "detach") }

type hooked struct {
	Component
	events *[]string
}

func (h *hooked) Attached() { *h.events = append(*h.events, "attached") }
func (h *hooked) Detached() { *h.events = append(*h.events, "detached") }

func TestReattachRewiresOnce(t *testing.T) {
	var events []string
	reg := style.NewRegistry(nil)
	sheet := css.NewSheet()
	doc := newDocument(t, Definition{
		Tag:           "x-hooked",
		New:           func() Element { return &hooked{events: &events} },
		Mixins:        []MixinFactory{func(*dom.Node) Mixin { return recordingMixin{&events} }},
		Styles:        []*css.Sheet{sheet},
		StyleRegistry: reg,
	})
	el, h := mount[*hooked](t, doc, "x-hooked")
	assert.True(t, doc.AdoptsSheet(sheet))

	el.Remove()
	assert.False(t, doc.AdoptsSheet(sheet))
	doc.Body().AppendChild(el)
	assert.True(t, doc.AdoptsSheet(sheet))

	want := []string{"attach x-hooked", "attached", "detach", "detached", "attach x-hooked", "attached"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}

	// One observer, one redistribution per batch.
	el.AppendChild(doc.CreateElement("span"))
	doc.Loop().RunMicrotasks()
	assert.Equal(t, 3, h.Stats().Distributions)
}

type watcher struct {
	Component
	seen []string
}

func (w *watcher) AttributeChanged(name string, _, value *string) {
	v := "<nil>"
	if value != nil {
		v = *value
	}
	w.seen = append(w.seen, name+"="+v)
}

func TestObservedAttributesReachObserver(t *testing.T) {
	doc := newDocument(t, Definition{
		Tag:      "x-watcher",
		New:      func() Element { return &watcher{} },
		Observed: []string{"mode"},
	})
	el := doc.CreateElement("x-watcher")
	el.SetAttribute("mode", "dark")
	el.SetAttribute("other", "x")
	inst, _ := Instance(el)
	w := inst.(*watcher)
	assert.Empty(t, w.seen)

	doc.Body().AppendChild(el)
	el.RemoveAttribute("mode")
	assert.Equal(t, []string{"mode=dark", "mode=<nil>"}, w.seen)
}

func TestDefineValidates(t *testing.T) {
	doc := dom.NewDocument(nil)
	assert.Error(t, Define(doc.Registry(), Definition{Tag: "x-empty"}))
	assert.Error(t, Define(doc.Registry(), Definition{
		Tag:        "x-raw",
		New:        func() Element { return &counter{} },
		Properties: []PropertyDescriptor{{Name: "raw", Type: String}},
	}))
	assert.ErrorIs(t, Define(doc.Registry(), Definition{Tag: "nohyphen", New: func() Element { return &counter{} }}), dom.ErrInvalidName)
}

func texts(nodes []*dom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.TextContent()
	}
	return out
}

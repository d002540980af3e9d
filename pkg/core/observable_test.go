package core

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreNotifiesOncePerEffectiveWrite(t *testing.T) {
	s := NewStore()
	var keys []string
	s.OnChange(func(key string) { keys = append(keys, key) })
	calls := 0
	s.AddListener(func() { calls++ })

	assert.True(t, s.Set("a", 1))
	assert.False(t, s.Set("a", 1))
	assert.True(t, s.Set("b", []int{1, 2}))
	assert.False(t, s.Set("b", []int{1, 2}))
	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))

	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(3), s.Version())
	assert.Equal(t, []string{"b"}, s.Keys())
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Set("z", 1)
	s.Set("a", 2)
	s.Set("z", 3)
	assert.Equal(t, []string{"z", "a"}, s.Keys())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
}

func TestNestedContainersAreLinkedOnRead(t *testing.T) {
	parent := NewStore()
	child := NewStore()
	parent.Set("child", child)

	var keys []string
	parent.OnChange(func(key string) { keys = append(keys, key) })

	// Not read through the parent yet.
	child.Set("x", 1)
	assert.Empty(t, keys)

	got, ok := parent.Get("child")
	require.True(t, ok)
	got.(*Store).Set("x", 2)
	assert.Equal(t, []string{"child"}, keys)

	// Reading again does not link twice.
	parent.Get("child")
	child.Set("x", 3)
	assert.Equal(t, []string{"child", "child"}, keys)

	// Replacing the child unlinks the old one.
	parent.Set("child", NewStore())
	child.Set("x", 4)
	assert.Equal(t, []string{"child", "child", "child"}, keys)
}

func TestPlainValuesAreNotObserved(t *testing.T) {
	s := NewStore()
	m := map[string]int{"a": 1}
	s.Set("m", m)
	calls := 0
	s.AddListener(func() { calls++ })

	v, _ := s.Get("m")
	v.(map[string]int)["a"] = 2
	assert.Zero(t, calls)
}

func TestContainersCompareByIdentity(t *testing.T) {
	s := NewStore()
	a, b := NewList(1), NewList(1)
	assert.True(t, s.Set("l", a))
	assert.True(t, s.Set("l", b))
	assert.False(t, s.Set("l", b))
}

func TestList(t *testing.T) {
	l := NewList("a", "b")
	calls := 0
	l.AddListener(func() { calls++ })

	l.Append("c")
	assert.False(t, l.Set(0, "a"))
	assert.True(t, l.Set(0, "z"))
	l.Remove(1)
	l.Append()

	assert.Equal(t, []any{"z", "c"}, l.Values())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(3), l.Version())
}

func TestListLinksNestedStores(t *testing.T) {
	inner := NewStore()
	l := NewList(inner)
	calls := 0
	l.AddListener(func() { calls++ })

	inner.Set("x", 1)
	assert.Zero(t, calls)

	l.At(0).(*Store).Set("x", 2)
	assert.Equal(t, 1, calls)

	l.Remove(0)
	inner.Set("x", 3)
	assert.Equal(t, 2, calls)
}

func TestObservable(t *testing.T) {
	o := NewObservable(1)
	var seen []int
	remove := o.AddListener(func(v int) { seen = append(seen, v) })

	o.Set(1)
	o.Set(2)
	remove()
	o.Set(3)

	assert.Equal(t, []int{2}, seen)
	assert.Equal(t, 3, o.Value())
}

func TestObservableWithoutEquality(t *testing.T) {
	o := NewObservableWithEquality("x", nil)
	calls := 0
	o.AddListener(func(string) { calls++ })
	o.Set("x")
	o.Set("x")
	assert.Equal(t, 2, calls)
}

func TestNotifierRemoveListener(t *testing.T) {
	var n Notifier
	calls := 0
	remove := n.AddListener(func() { calls++ })
	n.AddListener(func() { calls += 10 })

	n.NotifyListeners()
	remove()
	n.NotifyListeners()

	assert.Equal(t, 21, calls)
	assert.Equal(t, 1, n.ListenerCount())
}

type ticker struct {
	Component
	ticks *Observable[int]
	feed  Notifier
}

func (tk *ticker) Attached() {
	UseObservable(tk, tk.ticks)
	UseListenable(tk, &tk.feed)
}

func (tk *ticker) Render() templ.Component { return nil }

func TestHooksSubscribeUntilDetach(t *testing.T) {
	ticks := NewObservable(0)
	doc := newDocument(t, Definition{Tag: "x-ticker", New: func() Element { return &ticker{ticks: ticks} }})
	el, tk := mount[*ticker](t, doc, "x-ticker")
	require.Equal(t, 1, tk.Stats().Scheduled)

	ticks.Set(1)
	tk.feed.NotifyListeners()
	assert.Equal(t, 3, tk.Stats().Scheduled)

	el.Remove()
	assert.Zero(t, tk.feed.ListenerCount())
	ticks.Set(2)
	assert.Equal(t, 3, tk.Stats().Scheduled)

	// A nil render paints nothing.
	doc.Body().AppendChild(el)
	doc.Loop().Frame()
	assert.Zero(t, tk.Stats().Painted)
}

func TestNilRenderSkipsPaint(t *testing.T) {
	doc := newDocument(t, Definition{Tag: "x-ticker", New: func() Element { return &ticker{ticks: NewObservable(0)} }})
	el, tk := mount[*ticker](t, doc, "x-ticker")
	doc.Loop().RunMicrotasks()
	before := el.InnerHTML()

	// The frame is still requested; the nil content is dropped when it runs.
	require.True(t, tk.RenderPending())
	doc.Loop().Frame()
	assert.False(t, tk.RenderPending())
	assert.Equal(t, 1, tk.Stats().Scheduled)
	assert.Zero(t, tk.Stats().Painted)
	assert.Equal(t, before, el.InnerHTML())
}

func TestManaged(t *testing.T) {
	doc := newDocument(t, counterDefinition())
	_, c := mount[*counter](t, doc, "x-counter")
	m := NewManaged(c, "a")

	m.Set("b")
	m.Update(func(s string) string { return s + "c" })
	assert.Equal(t, "bc", m.Value())
	assert.Equal(t, 3, c.Stats().Scheduled)
	assert.Equal(t, 1, doc.Loop().PendingFrames())
}

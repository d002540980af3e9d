package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/style"
)

func setup(t *testing.T) (*dom.Document, *style.Registry) {
	t.Helper()
	styles := style.NewRegistry(nil)
	doc := dom.NewDocument(nil)
	require.NoError(t, Register(doc.Registry(), styles))
	return doc, styles
}

func mount(t *testing.T, doc *dom.Document, markup string) *dom.Node {
	t.Helper()
	frag, err := doc.ParseFragment(markup)
	require.NoError(t, err)
	el := frag.FirstChild()
	require.NotNil(t, el)
	doc.Body().AppendChild(el)
	return el
}

// adopted finds the rule for selector in any sheet adopted by the document.
func adopted(doc *dom.Document, selector string) *css.Rule {
	for _, s := range doc.AdoptedStyleSheets() {
		if r := s.FindRule(selector); r != nil {
			return r
		}
	}
	return nil
}

func TestRegisterIsIdempotent(t *testing.T) {
	doc, styles := setup(t)
	require.NoError(t, Register(doc.Registry(), styles))
	for _, tag := range []string{FlexTag, SpinnerTag, ButtonTag} {
		assert.True(t, doc.Registry().IsDefined(tag), tag)
	}
}

func TestFlexIsTheContainer(t *testing.T) {
	doc, styles := setup(t)
	el := mount(t, doc, `<m-flex bg="red" space="small"><p>a</p></m-flex>`)
	doc.Loop().RunMicrotasks()

	f, ok := FlexOf(el)
	require.True(t, ok)
	assert.Same(t, el, f.Root())
	assert.False(t, f.Ghost())

	assert.True(t, styles.Sheet().Has(`m-flex[bg="red"]`))
	assert.False(t, styles.Sheet().Has(`m-flex[space="small"]`))
	require.NotNil(t, adopted(doc, "m-flex[as]"))
}

func TestFlexAsMovesChildrenAndAttributes(t *testing.T) {
	doc, styles := setup(t)
	el := mount(t, doc, `<m-flex as="section" bg="red" column="" class="card" style="color: red" data-id="7"><p>a</p><p>b</p></m-flex>`)
	doc.Loop().RunMicrotasks()

	f, _ := FlexOf(el)
	root := f.Root()
	require.Equal(t, 1, el.ChildCount())
	assert.Same(t, root, el.FirstChild())
	assert.Equal(t, "section", root.Tag())
	assert.Equal(t, "<p>a</p><p>b</p>", root.InnerHTML())

	assert.Equal(t, "card", root.Attr("class"))
	assert.Equal(t, "color: red", root.Attr("style"))
	assert.Equal(t, "7", root.Attr("data-id"))
	assert.Equal(t, []string{"as", "bg", "column"}, el.AttributeNames())

	assert.True(t, styles.Sheet().Has(`m-flex[as][bg="red"] > :first-child`))

	// Later ordinary attributes follow; classes and styles merge.
	el.SetAttribute("class", "wide")
	el.SetAttribute("style", "color: blue; margin: 0")
	el.SetAttribute("title", "hello")
	doc.Loop().RunMicrotasks()
	assert.Equal(t, "card wide", root.Attr("class"))
	assert.Equal(t, "color: blue; margin: 0", root.Attr("style"))
	assert.Equal(t, "hello", root.Attr("title"))
	assert.False(t, el.HasAttribute("title"))
}

func TestFlexAsRetargetAndRevert(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-flex as="section" class="card"><p>a</p></m-flex>`)
	doc.Loop().RunMicrotasks()

	el.SetAttribute("as", "article")
	doc.Loop().RunMicrotasks()
	f, _ := FlexOf(el)
	require.Equal(t, "article", f.Root().Tag())
	assert.Equal(t, 1, el.ChildCount())
	assert.Equal(t, "card", f.Root().Attr("class"))
	assert.Equal(t, "<p>a</p>", f.Root().InnerHTML())

	el.RemoveAttribute("as")
	doc.Loop().RunMicrotasks()
	assert.Same(t, el, f.Root())
	assert.Equal(t, "<p>a</p>", el.InnerHTML())
	assert.Equal(t, "card", el.Attr("class"))
}

func TestFlexKeepsSlotOnHost(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-flex as="div" slot="header" lang="en"></m-flex>`)
	doc.Loop().RunMicrotasks()

	f, _ := FlexOf(el)
	assert.Equal(t, "header", el.Attr("slot"))
	assert.Equal(t, "en", f.Root().Attr("lang"))
}

func spinnerOf(t *testing.T, n *dom.Node) *Spinner {
	t.Helper()
	inst, ok := core.Instance(n)
	require.True(t, ok)
	return inst.(*Spinner)
}

func TestSpinnerColor(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-spinner color="red"></m-spinner>`)
	s := spinnerOf(t, el)
	assert.Equal(t, "red", s.Color())

	el.SetAttribute("color", "not-a-color")
	assert.Equal(t, "red", s.Color())
	assert.Equal(t, "not-a-color", SpinnerColor.Get(s))

	el.SetAttribute("color", "#0af")
	assert.Equal(t, "#0af", s.Color())
	assert.Equal(t, "--color: #0af", el.Attr("style"))
}

func TestSpinnerStyles(t *testing.T) {
	doc, styles := setup(t)
	mount(t, doc, `<m-spinner size="small" m="auto"></m-spinner>`)

	assert.True(t, styles.Sheet().Has(`m-spinner[m="auto"] > :first-child`))
	assert.False(t, styles.Sheet().Has(`m-spinner[size="small"] > :first-child`))

	rule := adopted(doc, "m-spinner[size='small']")
	require.NotNil(t, rule)
	v, _ := rule.Value("height")
	assert.Equal(t, "var(--m-font-small)", v)
	require.NotNil(t, adopted(doc, "@keyframes m-spin"))
}

func buttonOf(t *testing.T, n *dom.Node) *Button {
	t.Helper()
	inst, ok := core.Instance(n)
	require.True(t, ok)
	return inst.(*Button)
}

func TestButtonRender(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-button>Save</m-button>`)
	doc.Loop().Frame()

	assert.Equal(t, "button", el.Attr("role"))
	assert.Equal(t, "0", el.Attr("tabindex"))

	flexes := el.ElementsByTag(FlexTag)
	require.Len(t, flexes, 2)
	assert.True(t, flexes[0].HasAttribute("center"))
	assert.False(t, flexes[1].HasAttribute("hidden"))
	assert.Equal(t, "Save", flexes[1].TextContent())

	spinners := el.ElementsByTag(SpinnerTag)
	require.Len(t, spinners, 1)
	assert.True(t, spinners[0].HasAttribute("hidden"))
	assert.Equal(t, "small", spinners[0].Attr("size"))
}

func TestButtonLoading(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-button>Save</m-button>`)
	doc.Loop().Frame()
	b := buttonOf(t, el)

	ButtonLoading.Set(b, true)
	assert.True(t, el.HasAttribute("loading"))
	doc.Loop().Frame()

	spinners := el.ElementsByTag(SpinnerTag)
	require.Len(t, spinners, 1)
	assert.False(t, spinners[0].HasAttribute("hidden"))
	flexes := el.ElementsByTag(FlexTag)
	require.Len(t, flexes, 2)
	assert.True(t, flexes[1].HasAttribute("hidden"))
	assert.Equal(t, "Save", el.TextContent(), "slotted content survives repaints")
}

func TestButtonSuppressesClicks(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-button disabled="">Save</m-button>`)
	doc.Loop().Frame()
	b := buttonOf(t, el)

	clicks := 0
	el.AddEventListener("click", func(*dom.Event) { clicks++ })
	label := el.ElementsByTag(FlexTag)[1]

	label.DispatchEvent(dom.NewEvent("click", nil))
	el.DispatchEvent(dom.NewEvent("click", nil))
	assert.Zero(t, clicks)
	assert.True(t, b.Inactive())

	el.RemoveAttribute("disabled")
	label.DispatchEvent(dom.NewEvent("click", nil))
	assert.Equal(t, 1, clicks)

	ButtonLoading.Set(b, true)
	label.DispatchEvent(dom.NewEvent("click", nil))
	assert.Equal(t, 1, clicks)

	// Detached buttons no longer intercept.
	el.Remove()
	label.DispatchEvent(dom.NewEvent("click", nil))
	assert.Equal(t, 2, clicks)
}

func TestButtonColorReachesSpinner(t *testing.T) {
	doc, _ := setup(t)
	el := mount(t, doc, `<m-button>Go</m-button>`)
	doc.Loop().Frame()

	el.SetAttribute("color", "teal")
	doc.Loop().Frame()
	spinners := el.ElementsByTag(SpinnerTag)
	require.Len(t, spinners, 1)
	assert.Equal(t, "teal", spinners[0].Attr("color"))
	assert.Equal(t, "teal", spinnerOf(t, spinners[0]).Color())
}

func TestButtonStyles(t *testing.T) {
	doc, styles := setup(t)
	mount(t, doc, `<m-button intent="danger" size="small" m="small">Delete</m-button>`)

	rule := adopted(doc, `m-button[intent="danger"]`)
	require.NotNil(t, rule)
	v, _ := rule.Value("background")
	assert.Equal(t, "var(--m-color-red-400)", v)

	rule = adopted(doc, "m-button[size='small']")
	require.NotNil(t, rule)
	v, _ = rule.Value("font-size")
	assert.Equal(t, "var(--m-font-small)", v)

	rule = adopted(doc, `m-button[color="blue-gray"][variant='outline']`)
	require.NotNil(t, rule)
	v, _ = rule.Value("color")
	assert.Equal(t, "var(--m-color-blue-gray-500)", v)

	assert.True(t, styles.Sheet().Has(`m-button[m="small"] > :first-child`))
	assert.False(t, styles.Sheet().Has(`m-button[intent="danger"] > :first-child`))
	assert.False(t, styles.Sheet().Has(`m-button[size="small"] > :first-child`))
}

package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleString(t *testing.T) {
	rule := NewRule("m-box", "m-box[as] > :first-child").
		Set("display", "flex").
		Add(Declaration{Property: "color", Value: "red", Important: true})

	assert.Equal(t, "m-box, m-box[as] > :first-child", rule.SelectorText())
	assert.Equal(t, "m-box, m-box[as] > :first-child { display: flex; color: red !important; }", rule.String())

	v, ok := rule.Value("display")
	assert.True(t, ok)
	assert.Equal(t, "flex", v)
	_, ok = rule.Value("margin")
	assert.False(t, ok)
}

func TestSheetInsertAndFind(t *testing.T) {
	s := NewSheet()
	a := NewRule("a").Set("color", "red")
	b := NewRule("b").Set("color", "blue")

	assert.Equal(t, 0, s.AppendRule(a))
	idx, err := s.InsertRule(b, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	assert.Equal(t, 2, s.Len())
	assert.Same(t, b, s.Rules()[0])
	assert.Same(t, a, s.FindRule("a"))
	assert.True(t, s.Has("b"))
	assert.Nil(t, s.FindRule("c"))

	_, err = s.InsertRule(NewRule("c"), 5)
	require.Error(t, err)
	_, err = s.InsertRule(nil, 0)
	require.Error(t, err)

	require.NoError(t, s.DeleteRule(0))
	assert.False(t, s.Has("b"))
	require.Error(t, s.DeleteRule(3))
}

func TestSheetOnInsert(t *testing.T) {
	s := NewSheet()
	var seen []string
	stop := s.OnInsert(func(r *Rule) { seen = append(seen, r.SelectorText()) })

	s.AppendRule(NewRule("a"))
	stop()
	s.AppendRule(NewRule("b"))

	assert.Equal(t, []string{"a"}, seen)
}

func TestParse(t *testing.T) {
	rules, err := Parse(`
		m-button, m-button[size='medium'] { color: #fff; display: inline-flex !important; }
		@keyframes spin { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }
	`)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	want := []string{"m-button", "m-button[size='medium']"}
	if diff := cmp.Diff(want, rules[0].Selectors); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []Declaration{
		{Property: "color", Value: "#fff"},
		{Property: "display", Value: "inline-flex", Important: true},
	}, rules[0].Declarations)

	assert.Equal(t, "@keyframes spin", rules[1].AtRule)
	assert.Len(t, rules[1].Nested, 2)
}

func TestReplaceSync(t *testing.T) {
	s := NewSheet()
	s.AppendRule(NewRule("old"))

	require.NoError(t, s.ReplaceSync("a { color: red; } b { color: blue; }"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has("old"))
	assert.Equal(t, "a { color: red; }\nb { color: blue; }", s.String())

	require.NoError(t, s.AppendText("c { margin: 0; }"))
	assert.True(t, s.Has("c"))
}

func TestSupports(t *testing.T) {
	tests := []struct {
		property string
		value    string
		want     bool
	}{
		{"width", "40px", true},
		{"width", "40", false},
		{"width", "0", true},
		{"width", "auto", true},
		{"width", "calc(100% - 2px)", true},
		{"z-index", "10", true},
		{"opacity", "0.5", true},
		{"background", "purple.600", false},
		{"background", "red", true},
		{"background", "#ff00aa", true},
		{"background", "var(--a)", true},
		{"color", "tomato", true},
		{"border", "1px solid red", true},
		{"border", "1px solid danger", false},
		{"box-shadow", "0 0 0 1px rgb(0 0 0 / 10%), inset 0 0 2px #000", true},
		{"font-family", `"Helvetica Neue", sans-serif`, true},
		{"bg", "red", false},
		{"--color", "anything", true},
		{"display", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.property+"="+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, Supports(tt.property, tt.value))
		})
	}
}

func TestKnownProperty(t *testing.T) {
	assert.True(t, KnownProperty("margin-top"))
	assert.True(t, KnownProperty("--m-spacing-small"))
	assert.False(t, KnownProperty("--"))
	assert.False(t, KnownProperty("mt"))
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ParseDeclarations("color: red; --color: #0af ;margin:0 !important")
	require.NoError(t, err)
	assert.Equal(t, []Declaration{
		{Property: "color", Value: "red"},
		{Property: "--color", Value: "#0af"},
		{Property: "margin", Value: "0", Important: true},
	}, decls)
	assert.Equal(t, "color: red; --color: #0af; margin: 0 !important", FormatDeclarations(decls))

	decls, err = ParseDeclarations("  ")
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestParseDeclarationsWithoutTerminator(t *testing.T) {
	tests := []struct {
		text string
		want []Declaration
	}{
		{"color: red", []Declaration{{Property: "color", Value: "red"}}},
		{" --color: #0af ", []Declaration{{Property: "--color", Value: "#0af"}}},
		{"margin: 0; padding: 4px", []Declaration{
			{Property: "margin", Value: "0"},
			{Property: "padding", Value: "4px"},
		}},
		{"color: red;", []Declaration{{Property: "color", Value: "red"}}},
	}
	for _, tt := range tests {
		decls, err := ParseDeclarations(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, decls, tt.text)
	}

	decls, err := ParseDeclarations("color: red")
	require.NoError(t, err)
	assert.Equal(t, "color: red", FormatDeclarations(decls))
}

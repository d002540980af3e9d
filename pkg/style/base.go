package style

import (
	"fmt"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/theme"
)

const (
	firstChild = " > :first-child"
	siblings   = " > *:not([hidden]):not(:first-child)"
)

func sentinel(tag string) string { return tag + "[hidden]" }

// orientation is one arm of the spacing family: the host conditions that
// select it and the margin pair it assigns.
type orientation struct {
	conditions []string
	start, end string
	reversed   bool
}

var orientations = []orientation{
	{
		conditions: []string{`:not([column]):not([reverse]):not([flex-dir*="column"]):not([flex-direction*="column"])`},
		start:      "margin-left",
		end:        "margin-right",
	},
	{
		conditions: []string{`[reverse]:not([column])`, `[flex-dir="horizontal-reverse"]`, `[flex-direction="horizontal-reverse"]`},
		start:      "margin-left",
		end:        "margin-right",
		reversed:   true,
	},
	{
		conditions: []string{`[column]:not([reverse])`, `[flex-dir="column"]`, `[flex-direction="column"]`},
		start:      "margin-top",
		end:        "margin-bottom",
	},
	{
		conditions: []string{`[column][reverse]`, `[flex-dir="column-reverse"]`, `[flex-direction="column-reverse"]`},
		start:      "margin-top",
		end:        "margin-bottom",
		reversed:   true,
	},
}

// SpacingRules returns the four rules that space the children of tag hosts
// with space=size: plain, reversed, column and column-reversed. Every
// non-first visible child gets the size's spacing on its leading side.
func SpacingRules(tag, prefix, size string, ghost bool) []*css.Rule {
	suffix := ""
	if ghost {
		suffix = firstChild
	}
	space := fmt.Sprintf(`[space="%s"]`, size)
	spacing := theme.Var(prefix, "spacing", size)

	rules := make([]*css.Rule, 0, len(orientations))
	for _, o := range orientations {
		var plain, as []string
		for _, cond := range o.conditions {
			plain = append(plain, tag+space+cond+suffix+siblings)
			as = append(as, tag+"[as]"+space+cond+firstChild+siblings)
		}
		lead, trail := "0", "0"
		if o.reversed {
			lead, trail = "1", "1"
		}
		rule := css.NewRule(append(plain, as...)...).
			Set(o.start, fmt.Sprintf("calc(%s * calc(1 - %s))", spacing, lead)).
			Set(o.end, fmt.Sprintf("calc(%s * %s)", spacing, trail))
		rules = append(rules, rule)
	}
	return rules
}

// modifiers are the boolean layout attributes and what they set on the flex
// container.
var modifiers = []struct {
	cond  string
	decls []css.Declaration
}{
	{`[column]:not([reverse])`, []css.Declaration{css.Decl("flex-direction", "column")}},
	{`[column][reverse]`, []css.Declaration{css.Decl("flex-direction", "column-reverse")}},
	{`[reverse]:not([column])`, []css.Declaration{css.Decl("flex-direction", "row-reverse")}},
	{`[reverse][wrap]`, []css.Declaration{css.Decl("flex-wrap", "wrap-reverse")}},
	{`[center]`, []css.Declaration{css.Decl("align-items", "center"), css.Decl("justify-content", "center")}},
	{`[nowrap]`, []css.Declaration{css.Decl("flex-wrap", "nowrap")}},
	{`[wrap]`, []css.Declaration{css.Decl("flex-wrap", "wrap")}},
}

// BaseRules returns the structural rule set of tag: the spacing family for
// every size followed by the display, hidden and layout modifier rules. The
// hidden rule doubles as the sentinel that marks the set as installed.
func BaseRules(tag, prefix string, sizes []string, ghost bool) []*css.Rule {
	var rules []*css.Rule
	for _, size := range sizes {
		rules = append(rules, SpacingRules(tag, prefix, size, ghost)...)
	}

	suffix, display := "", "flex"
	if ghost {
		suffix, display = firstChild, "flow-root"
	}
	rules = append(rules, css.NewRule(tag).Set("display", display))
	if ghost {
		rules = append(rules, css.NewRule(tag+suffix).Set("display", "flex"))
	}
	rules = append(rules,
		css.NewRule(tag+"[as]"+firstChild).Set("display", "flex"),
		css.NewRule(sentinel(tag)).Set("display", "none"),
	)
	for _, m := range modifiers {
		rules = append(rules, css.NewRule(tag+m.cond+suffix, tag+"[as]"+m.cond+firstChild).Add(m.decls...))
	}
	return rules
}

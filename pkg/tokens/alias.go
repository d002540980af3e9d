package tokens

import (
	"slices"
	"sort"

	"github.com/go-drift/elements/pkg/css"
)

// Alias maps a short attribute name to CSS. It is either a fixed list of
// target properties, each receiving the resolved value, or a generator that
// builds the declarations from the resolved value and the host's attribute
// names.
type Alias struct {
	Properties []string

	// Generate builds declarations for compound attributes. When set,
	// Properties is ignored.
	Generate func(value string, attrs []string) []css.Declaration

	// Via is the property whose resolution rules apply to the value passed
	// to Generate. Empty uses the alias name.
	Via string

	// Consults names the host attributes whose presence changes the output
	// of Generate. Rules built by a generator must be scoped on them.
	Consults []string
}

// IsGenerator reports whether the alias is a generator.
func (a Alias) IsGenerator() bool { return a.Generate != nil }

// resolveAs returns the property name used for token resolution.
func (a Alias) resolveAs(name string) string {
	switch {
	case a.Generate != nil && a.Via != "":
		return a.Via
	case a.Generate == nil && len(a.Properties) > 0:
		return a.Properties[0]
	}
	return name
}

func props(p ...string) Alias { return Alias{Properties: p} }

var aliases = map[string]Alias{
	// colors
	"bg":        props("background"),
	"shadow":    props("box-shadow"),
	"elevation": props("box-shadow"),

	// flex
	"align":    props("align-items"),
	"justify":  props("justify-content"),
	"flex-dir": props("flex-direction"),

	// layout
	"d":      props("display"),
	"w":      props("width"),
	"h":      props("height"),
	"dir":    props("direction"),
	"size":   props("width", "height"),
	"radius": props("border-radius"),
	"min-w":  props("min-width"),
	"max-w":  props("max-width"),
	"min-h":  props("min-height"),
	"max-h":  props("max-height"),

	// position
	"pos":   props("position"),
	"t":     props("top"),
	"l":     props("left"),
	"r":     props("right"),
	"b":     props("bottom"),
	"z":     props("z-index"),
	"inset": {Generate: inset, Via: "top", Consults: []string{"pos", "position"}},

	// spacing
	"m":         props("margin"),
	"mt":        props("margin-top"),
	"ml":        props("margin-left"),
	"mr":        props("margin-right"),
	"mb":        props("margin-bottom"),
	"mx":        props("margin-left", "margin-right"),
	"my":        props("margin-bottom", "margin-top"),
	"p":         props("padding"),
	"pt":        props("padding-top"),
	"pl":        props("padding-left"),
	"pr":        props("padding-right"),
	"pb":        props("padding-bottom"),
	"px":        props("padding-left", "padding-right"),
	"py":        props("padding-bottom", "padding-top"),
	"margin-x":  props("margin-left", "margin-right"),
	"margin-y":  props("margin-bottom", "margin-top"),
	"padding-x": props("padding-left", "padding-right"),
	"padding-y": props("padding-bottom", "padding-top"),
	"gutter":    {Generate: gutter, Via: "padding", Consults: []string{"column"}},
}

// gutter spaces children along the main axis: row-gap in column layouts,
// column-gap otherwise.
func gutter(value string, attrs []string) []css.Declaration {
	if slices.Contains(attrs, "column") {
		return []css.Declaration{css.Decl("row-gap", value)}
	}
	return []css.Declaration{css.Decl("column-gap", value)}
}

// inset pins all four edges and makes the host absolutely positioned unless
// a position is set explicitly.
func inset(value string, attrs []string) []css.Declaration {
	decls := []css.Declaration{
		css.Decl("top", value),
		css.Decl("right", value),
		css.Decl("bottom", value),
		css.Decl("left", value),
	}
	if !slices.Contains(attrs, "pos") && !slices.Contains(attrs, "position") {
		decls = append(decls, css.Decl("position", "absolute"))
	}
	return decls
}

// Lookup returns the alias registered for name.
func Lookup(name string) (Alias, bool) {
	a, ok := aliases[name]
	return a, ok
}

// Consults returns the host attributes the generator behind attr depends
// on. attr may carry a pseudo-state suffix. Fixed aliases and plain CSS
// properties depend on nothing.
func Consults(attr string) []string {
	name, _ := Split(attr)
	return aliases[name].Consults
}

// IsAlias reports whether name is an alias key.
func IsAlias(name string) bool {
	_, ok := aliases[name]
	return ok
}

// Names returns the alias keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(aliases))
	for k := range aliases {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Supports reports whether attr (optionally carrying a pseudo-state suffix)
// is a style attribute: an alias key or a CSS property.
func Supports(attr string) bool {
	name, _ := Split(attr)
	return IsAlias(name) || css.KnownProperty(name)
}

// Package tokens resolves style attribute values into CSS values.
//
// Attribute values that the browser would not understand natively for the
// target property, or that mention a size token, are treated as design
// token references and turned into custom property lookups:
//
//	bg="purple.600"   background: var(--m-color-purple-600)
//	radius="8"        border-radius: 8px
//	radius="medium"   border-radius: var(--m-radius-medium)
//	mt="large"        margin-top: var(--m-spacing-large)
//
// Everything else passes through unchanged.
package tokens

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/theme"
)

var pseudoStates = []string{"active", "focus", "hover", "first", "last"}

// Split separates an attribute name into its base name and pseudo-state
// suffix: "bg-hover" yields ("bg", "hover"). pseudo is empty when absent.
func Split(attr string) (name, pseudo string) {
	for _, p := range pseudoStates {
		if base, ok := strings.CutSuffix(attr, "-"+p); ok && base != "" {
			return base, p
		}
	}
	return attr, ""
}

// PseudoClass maps a pseudo-state suffix to its CSS pseudo-class.
func PseudoClass(pseudo string) string {
	switch pseudo {
	case "first":
		return "first-of-type"
	case "last":
		return "last-of-type"
	}
	return pseudo
}

var (
	borderRx = regexp.MustCompile(`^border(-(top|left|right|bottom))?$`)
	boxRx    = regexp.MustCompile(`(width|height|margin|padding|top|left|right|bottom)`)
	shadeRx  = regexp.MustCompile(`\w+-\d+`)
)

// Resolver turns attribute values into CSS values for one tag.
type Resolver struct {
	catalog *theme.Catalog
	prefix  string
}

// NewResolver creates a resolver for tag. A nil catalog uses
// theme.Default().
func NewResolver(catalog *theme.Catalog, tag string) *Resolver {
	if catalog == nil {
		catalog = theme.Default()
	}
	return &Resolver{catalog: catalog, prefix: catalog.PrefixFor(tag)}
}

// Prefix returns the custom property prefix.
func (r *Resolver) Prefix() string { return r.prefix }

// Resolve returns the CSS value for attribute attr set to raw. Aliases
// resolve against their first target property, so "mt" follows the
// margin-top rules.
func (r *Resolver) Resolve(attr, raw string) string {
	name, _ := Split(attr)
	if a, ok := aliases[name]; ok {
		name = a.resolveAs(name)
	}
	return r.value(name, raw)
}

// Declarations expands attr set to raw into CSS declarations. attrs are the
// attribute names present on the host; generators consult them.
func (r *Resolver) Declarations(attr, raw string, attrs []string) []css.Declaration {
	name, _ := Split(attr)
	a, ok := aliases[name]
	switch {
	case !ok:
		return []css.Declaration{css.Decl(name, r.value(name, raw))}
	case a.IsGenerator():
		return a.Generate(r.value(a.resolveAs(name), raw), attrs)
	}
	decls := make([]css.Declaration, len(a.Properties))
	for i, p := range a.Properties {
		decls[i] = css.Decl(p, r.value(p, raw))
	}
	return decls
}

func (r *Resolver) value(name, value string) string {
	if value == "" || !(r.mentionsSize(value) || !css.Supports(name, value)) {
		return value
	}
	val := strings.Replace(value, ".", "-", 1)
	npx := pixels(value)

	switch {
	case name == "bg" || strings.Contains(name, "background") || strings.Contains(name, "color"):
		return theme.Var(r.prefix, "color", val)
	case strings.Contains(name, "shadow"):
		return theme.Var(r.prefix, "shadow", val)
	case strings.Contains(name, "radius"):
		if npx != "" {
			return npx
		}
		return theme.Var(r.prefix, "radius", val)
	case borderRx.MatchString(name):
		val = replaceTokens(val, r.catalog.Intents, func(t string) string {
			return theme.Var(r.prefix, "color", t)
		})
		if loc := shadeRx.FindStringIndex(val); loc != nil {
			val = val[:loc[0]] + theme.Var(r.prefix, "color", val[loc[0]:loc[1]]) + val[loc[1]:]
		}
		return val
	case boxRx.MatchString(name):
		if npx != "" {
			return npx
		}
		return replaceTokens(val, r.catalog.Sizes, func(t string) string {
			return theme.Var(r.prefix, "spacing", t)
		})
	case name == "font-size":
		if npx != "" {
			return npx
		}
		return replaceTokens(val, r.catalog.Sizes, func(t string) string {
			return theme.Var(r.prefix, "font", t)
		})
	}
	return value
}

// mentionsSize reports whether value contains a size token that is not
// immediately followed by a hyphen.
func (r *Resolver) mentionsSize(value string) bool {
	found := false
	replaceTokens(value, r.catalog.Sizes, func(t string) string {
		found = true
		return t
	})
	return found
}

// pixels returns "<n>px" when value is a plain number.
func pixels(value string) string {
	s := strings.TrimSpace(value)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return value + "px"
}

// replaceTokens replaces every occurrence of a token that is not followed
// by a hyphen. At each position tokens are tried in catalog order.
func replaceTokens(s string, tokens []string, fn func(string) string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		matched := ""
		for _, t := range tokens {
			if t == "" || !strings.HasPrefix(s[i:], t) {
				continue
			}
			if end := i + len(t); end < len(s) && s[end] == '-' {
				continue
			}
			matched = t
			break
		}
		if matched == "" {
			sb.WriteByte(s[i])
			i++
			continue
		}
		sb.WriteString(fn(matched))
		i += len(matched)
	}
	return sb.String()
}

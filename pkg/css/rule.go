package css

import (
	"strings"
)

// Declaration is a single property/value pair inside a rule body.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Decl is shorthand for a non-important declaration.
func Decl(property, value string) Declaration {
	return Declaration{Property: property, Value: value}
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// Rule is a style rule: a selector list and an ordered declaration list.
//
// At-rules (@keyframes, @media) set AtRule to the full prelude, e.g.
// "@keyframes spin", and carry their body in Nested.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
	AtRule       string
	Nested       []*Rule
}

// NewRule starts a rule for the given selectors.
func NewRule(selectors ...string) *Rule {
	return &Rule{Selectors: selectors}
}

// Set appends a declaration and returns the rule for chaining.
func (r *Rule) Set(property, value string) *Rule {
	r.Declarations = append(r.Declarations, Decl(property, value))
	return r
}

// Add appends declarations and returns the rule for chaining.
func (r *Rule) Add(decls ...Declaration) *Rule {
	r.Declarations = append(r.Declarations, decls...)
	return r
}

// SelectorText returns the selector list the way it is matched against
// existing rules: selectors joined with ", ". At-rules return their prelude.
func (r *Rule) SelectorText() string {
	if r.AtRule != "" {
		return r.AtRule
	}
	return strings.Join(r.Selectors, ", ")
}

// Value returns the last value declared for property.
func (r *Rule) Value(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// String renders the rule as CSS text on one line.
func (r *Rule) String() string {
	var sb strings.Builder
	r.write(&sb)
	return sb.String()
}

func (r *Rule) write(sb *strings.Builder) {
	sb.WriteString(r.SelectorText())
	sb.WriteString(" {")
	if r.AtRule != "" {
		for _, nested := range r.Nested {
			sb.WriteByte(' ')
			nested.write(sb)
		}
		sb.WriteString(" }")
		return
	}
	for _, d := range r.Declarations {
		sb.WriteByte(' ')
		sb.WriteString(d.String())
		sb.WriteByte(';')
	}
	sb.WriteString(" }")
}

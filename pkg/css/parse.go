package css

import (
	"fmt"
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Parse converts CSS text into rules. Qualified rules keep their selector
// list and declarations; at-rules keep their prelude and nested rules.
func Parse(text string) ([]*Rule, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("css: parse: %w", err)
	}
	return convertRules(sheet.Rules), nil
}

// MustParse is like Parse but panics on error. It is meant for static
// component styles known at compile time.
func MustParse(text string) []*Rule {
	rules, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return rules
}

// ParseSheet builds a new sheet from CSS text.
func ParseSheet(text string) (*Sheet, error) {
	s := NewSheet()
	if err := s.ReplaceSync(text); err != nil {
		return nil, err
	}
	return s, nil
}

func convertRules(in []*dcss.Rule) []*Rule {
	out := make([]*Rule, 0, len(in))
	for _, r := range in {
		out = append(out, convertRule(r))
	}
	return out
}

func convertRule(r *dcss.Rule) *Rule {
	if r.Kind == dcss.AtRule {
		prelude := strings.TrimSpace(r.Name + " " + r.Prelude)
		rule := &Rule{AtRule: prelude, Nested: convertRules(r.Rules)}
		rule.Declarations = convertDeclarations(r.Declarations)
		return rule
	}

	selectors := r.Selectors
	if len(selectors) == 0 && r.Prelude != "" {
		for _, sel := range strings.Split(r.Prelude, ",") {
			selectors = append(selectors, strings.TrimSpace(sel))
		}
	}
	rule := NewRule(selectors...)
	rule.Declarations = convertDeclarations(r.Declarations)
	return rule
}

func convertDeclarations(in []*dcss.Declaration) []Declaration {
	out := make([]Declaration, 0, len(in))
	for _, d := range in {
		out = append(out, Declaration{
			Property:  d.Property,
			Value:     d.Value,
			Important: d.Important,
		})
	}
	return out
}

// ParseDeclarations parses the body of a style attribute, such as
// "color: red; --size: 4px".
func ParseDeclarations(text string) ([]Declaration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	// douceur drops a final declaration that lacks its terminator.
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("css: parse declarations: %w", err)
	}
	return convertDeclarations(decls), nil
}

// FormatDeclarations is the inverse of ParseDeclarations.
func FormatDeclarations(decls []Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}

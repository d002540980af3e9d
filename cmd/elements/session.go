package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/components"
	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/loop"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/styled"
	"github.com/go-drift/elements/pkg/theme"
)

// session is a headless document with the built-in components defined
// against a private style registry.
type session struct {
	loop   *loop.Loop
	doc    *dom.Document
	styles *style.Registry
}

func newSession(catalog *theme.Catalog) (*session, error) {
	l := loop.New()
	s := &session{
		loop:   l,
		doc:    dom.NewDocument(l),
		styles: style.NewRegistry(catalog),
	}
	if err := components.Register(s.doc.Registry(), s.styles); err != nil {
		return nil, err
	}
	return s, nil
}

// define registers tag as a plain styled element unless it is already
// defined. ghost overrides the catalog when non-nil.
func (s *session) define(tag string, ghost *bool) error {
	if s.doc.Registry().IsDefined(tag) {
		return nil
	}
	return styled.Define(s.doc.Registry(), tag, styled.Options{
		Ghost:    ghost,
		Registry: s.styles,
	})
}

// mount appends a tag element carrying attrs to the body and runs the
// loop until its rules and first render are in place.
func (s *session) mount(tag string, attrs []attribute) *dom.Node {
	el := s.doc.CreateElement(tag)
	for _, a := range attrs {
		el.SetAttribute(a.name, a.value)
	}
	s.doc.Body().AppendChild(el)
	s.settle()
	return el
}

func (s *session) settle() {
	for range 8 {
		s.loop.RunUntilIdle()
		if s.loop.PendingFrames() == 0 {
			return
		}
		s.loop.Frame()
	}
}

// sheets returns the sheets adopted by the document, registry sheet first.
func (s *session) sheets() []*css.Sheet {
	adopted := s.doc.AdoptedStyleSheets()
	out := []*css.Sheet{s.styles.Sheet()}
	for _, sh := range adopted {
		if !slices.Contains(out, sh) {
			out = append(out, sh)
		}
	}
	return out
}

type attribute struct {
	name  string
	value string
}

// parseAttributes turns name=value arguments into attributes. A bare name
// is a boolean attribute with an empty value.
func parseAttributes(args []string) ([]attribute, error) {
	attrs := make([]attribute, 0, len(args))
	for _, arg := range args {
		name, value, _ := strings.Cut(arg, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("invalid attribute %q: missing name", arg)
		}
		attrs = append(attrs, attribute{name: name, value: value})
	}
	return attrs, nil
}

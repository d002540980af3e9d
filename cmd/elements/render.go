package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/elements/pkg/css"
)

// printer writes styled output. Colors are dropped when w is not a
// terminal.
type printer struct {
	w io.Writer

	selector lipgloss.Style
	property lipgloss.Style
	attr     lipgloss.Style
	dim      lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:        w,
		selector: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		property: r.NewStyle().Foreground(lipgloss.Color("14")),
		attr:     r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		dim:      r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// sheet writes one block per rule, declarations indented.
func (p *printer) sheet(sheet *css.Sheet) {
	for _, r := range sheet.Rules() {
		p.rule(r, "")
	}
}

func (p *printer) rule(r *css.Rule, indent string) {
	fmt.Fprintf(p.w, "%s%s {\n", indent, p.selector.Render(r.SelectorText()))
	for _, nested := range r.Nested {
		p.rule(nested, indent+"  ")
	}
	for _, d := range r.Declarations {
		fmt.Fprint(p.w, indent)
		p.declaration(d)
	}
	fmt.Fprintf(p.w, "%s}\n", indent)
}

func (p *printer) declaration(d css.Declaration) {
	value := d.Value
	if d.Important {
		value += " !important"
	}
	fmt.Fprintf(p.w, "  %s: %s;\n", p.property.Render(d.Property), value)
}

// heading writes an attribute label followed by a dimmed note.
func (p *printer) heading(label, note string) {
	if note == "" {
		fmt.Fprintln(p.w, p.attr.Render(label))
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.attr.Render(label), p.dim.Render(note))
}

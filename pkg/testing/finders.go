package testing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/dom"
)

// Finder locates nodes in a document tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order),
	// root included.
	Evaluate(root *dom.Node) []*dom.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*dom.Node
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *dom.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in document order.
func (r FinderResult) All() []*dom.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Component returns the component instance of the first match, or nil when
// it is not a component host. Panics if no matches.
func (r FinderResult) Component() core.Element {
	inst, _ := core.Instance(r.First())
	return inst
}

// --- Concrete finders ---

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*dom.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*dom.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	tag = strings.ToLower(tag)
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.IsElement() && n.Tag() == tag },
		desc: fmt.Sprintf("ByTag(%s)", tag),
	}
}

// ByAttribute returns a finder that matches elements carrying name set to
// value.
func ByAttribute(name, value string) Finder {
	return &predicateFinder{
		fn: func(n *dom.Node) bool {
			v, ok := n.GetAttribute(name)
			return ok && v == value
		},
		desc: fmt.Sprintf("ByAttribute(%s=%q)", name, value),
	}
}

// HasAttribute returns a finder that matches elements carrying name, with
// any value.
func HasAttribute(name string) Finder {
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.HasAttribute(name) },
		desc: fmt.Sprintf("HasAttribute(%s)", name),
	}
}

// ByText returns a finder that matches text nodes with exact content.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.Type == dom.TextNode && n.Data() == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches text nodes containing
// substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn:   func(n *dom.Node) bool { return n.Type == dom.TextNode && strings.Contains(n.Data(), substring) },
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Node) []*dom.Node {
	var results []*dom.Node
	for _, ancestor := range f.of.Evaluate(root) {
		// Search each ancestor's subtree, skipping the ancestor itself.
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !slices.Contains(results, match) {
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds nodes matching 'matching' that are ancestors of
// nodes matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *dom.Node) []*dom.Node {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []*dom.Node
	for _, candidate := range f.matching.Evaluate(root) {
		for _, d := range descendants {
			if candidate != d && candidate.Contains(d) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches nodes satisfying 'matching' that
// are ancestors of nodes matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs a depth-first pre-order traversal of the light
// tree, collecting nodes that satisfy the predicate.
func collectMatches(root *dom.Node, predicate func(*dom.Node) bool) []*dom.Node {
	var results []*dom.Node
	dom.Walk(root, func(n *dom.Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// Package style owns the shared style sheet that attribute-driven rules are
// synthesized into.
//
// Rules are scoped per tag and keyed by attribute value, so every element
// carrying bg="purple.600" shares a single rule. Insertion is idempotent:
// the registry checks the sheet for the selector before inserting, and the
// sheet only ever grows.
package style

import (
	"slices"
	"strings"
	"sync"

	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/theme"
	"github.com/go-drift/elements/pkg/tokens"
)

// RuleKey identifies a synthesized attribute rule. Attribute keeps its
// pseudo-state suffix ("bg-hover").
type RuleKey struct {
	Tag       string
	Attribute string
	Value     string
	// AsTarget is set when the host renders into an inner root chosen by
	// its "as" attribute; the rule then targets that first child.
	AsTarget bool
	Ghost    bool
	// Conditions pins the host attributes a generator consulted, as built
	// by Conditions. Empty for attributes that depend on nothing else.
	Conditions string
}

// Selector returns the selector text of the rule for k.
func (k RuleKey) Selector() string {
	_, pseudo := tokens.Split(k.Attribute)
	state := ""
	if pseudo != "" {
		state = ":" + tokens.PseudoClass(pseudo)
	}
	attr := "[" + k.Attribute + `="` + escape(k.Value) + `"]` + k.Conditions
	switch {
	case k.AsTarget:
		return k.Tag + "[as]" + attr + state + " > :first-child"
	case k.Ghost:
		return k.Tag + attr + state + " > :first-child"
	default:
		return k.Tag + attr + state
	}
}

// Conditions returns the selector fragment that scopes the rule for attr to
// hosts with the same consulted attributes as a host carrying attrs: each
// one becomes [name] when present and :not([name]) when absent.
func Conditions(attr string, attrs []string) string {
	var b strings.Builder
	for _, name := range tokens.Consults(attr) {
		if slices.Contains(attrs, name) {
			b.WriteString("[" + name + "]")
		} else {
			b.WriteString(":not([" + name + "])")
		}
	}
	return b.String()
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}

// Registry synthesizes rules into one sheet and adopts sheets into document
// and shadow roots.
//
// A Registry is not safe for concurrent use; it is driven from the event
// loop like the documents it serves.
type Registry struct {
	sheet     *css.Sheet
	catalog   *theme.Catalog
	resolvers map[string]*tokens.Resolver
	adoptions map[adoption]int
}

type adoption struct {
	root  *dom.Node
	sheet *css.Sheet
}

var (
	shared     *Registry
	sharedOnce sync.Once
)

// Shared returns the process-wide registry, creating it on first use with
// the default catalog.
func Shared() *Registry {
	sharedOnce.Do(func() {
		shared = NewRegistry(nil)
	})
	return shared
}

// NewRegistry creates a registry with its own sheet. A nil catalog uses
// theme.Default().
func NewRegistry(catalog *theme.Catalog) *Registry {
	if catalog == nil {
		catalog = theme.Default()
	}
	return &Registry{
		sheet:     css.NewSheet(),
		catalog:   catalog,
		resolvers: make(map[string]*tokens.Resolver),
		adoptions: make(map[adoption]int),
	}
}

// Sheet returns the shared sheet.
func (r *Registry) Sheet() *css.Sheet { return r.sheet }

// Catalog returns the token catalog.
func (r *Registry) Catalog() *theme.Catalog { return r.catalog }

// Resolver returns the token resolver for tag.
func (r *Registry) Resolver(tag string) *tokens.Resolver {
	res, ok := r.resolvers[tag]
	if !ok {
		res = tokens.NewResolver(r.catalog, tag)
		r.resolvers[tag] = res
	}
	return res
}

// EnsureBaseRules installs the structural rules for tag once. It reports
// whether anything was inserted.
func (r *Registry) EnsureBaseRules(tag string, ghost bool) bool {
	if r.sheet.Has(sentinel(tag)) {
		return false
	}
	rules := BaseRules(tag, r.catalog.PrefixFor(tag), r.catalog.Sizes, ghost)
	for _, rule := range rules {
		r.sheet.AppendRule(rule)
	}
	logging.Get("style").Debug().
		Str("tag", tag).
		Bool("ghost", ghost).
		Int("rules", len(rules)).
		Msg("base rules installed")
	return true
}

// EnsureAttributeRule inserts the rule for key unless a rule with the same
// selector exists. attrs are the host's attribute names, passed to alias
// generators; key.Conditions must agree with them so that hosts whose
// generated declarations differ never share a selector. It returns the rule
// for key and whether it was inserted.
func (r *Registry) EnsureAttributeRule(key RuleKey, attrs []string) (*css.Rule, bool) {
	sel := key.Selector()
	if existing := r.sheet.FindRule(sel); existing != nil {
		return existing, false
	}
	decls := r.Resolver(key.Tag).Declarations(key.Attribute, key.Value, attrs)
	rule := css.NewRule(sel).Add(decls...)
	r.sheet.AppendRule(rule)
	logging.Get("style").Debug().Str("rule", rule.String()).Msg("rule inserted")
	return rule, true
}

// Attach adopts the shared sheet into the nearest root of n and returns
// that root. Calling it again is cheap and safe; hosts call it on every
// update pass because they may have been moved to another root.
func (r *Registry) Attach(n *dom.Node) *dom.Node {
	root := RootOf(n)
	if !root.AdoptsSheet(r.sheet) {
		root.SetAdoptedStyleSheets(append(root.AdoptedStyleSheets(), r.sheet))
	}
	return root
}

// Adopt adopts sheets into the nearest root of target and returns a release
// function. Adoptions are reference counted per root, so a sheet stays
// adopted until every holder has released it. Releasing twice is a no-op.
func (r *Registry) Adopt(target *dom.Node, sheets ...*css.Sheet) (release func()) {
	root := RootOf(target)
	for _, s := range sheets {
		key := adoption{root, s}
		r.adoptions[key]++
		if !root.AdoptsSheet(s) {
			root.SetAdoptedStyleSheets(append(root.AdoptedStyleSheets(), s))
		}
	}
	var once sync.Once
	return func() {
		once.Do(func() { r.release(root, sheets) })
	}
}

func (r *Registry) release(root *dom.Node, sheets []*css.Sheet) {
	current := root.AdoptedStyleSheets()
	changed := false
	for _, s := range sheets {
		key := adoption{root, s}
		if r.adoptions[key]--; r.adoptions[key] > 0 {
			continue
		}
		delete(r.adoptions, key)
		for i, a := range current {
			if a == s {
				current = append(current[:i], current[i+1:]...)
				changed = true
				break
			}
		}
	}
	if changed {
		root.SetAdoptedStyleSheets(current)
	}
}

// RootOf walks from n to the nearest document or fragment root. Nodes that
// are not in any rooted tree resolve to their owner document.
func RootOf(n *dom.Node) *dom.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.IsRoot() {
			return cur
		}
	}
	return n.OwnerDocument().Node
}

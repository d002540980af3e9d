// Package theme holds the design-token catalogs used to resolve attribute
// values into CSS custom property references.
//
// A [Catalog] names the size scale (tiny through huge) and the intent scale
// (info, danger, success, warning). Token references take the form
//
//	var(--<prefix>-<scale>-<token>)
//
// where prefix defaults to the part of the custom element tag before the
// first hyphen, so "m-flex" resolves sizes to "var(--m-spacing-medium)".
package theme

import (
	"slices"
	"strings"
)

// Size tokens in ascending order.
const (
	SizeTiny   = "tiny"
	SizeMini   = "mini"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeBig    = "big"
	SizeHuge   = "huge"
)

// Intent tokens.
const (
	IntentInfo    = "info"
	IntentDanger  = "danger"
	IntentSuccess = "success"
	IntentWarning = "warning"
)

// Catalog is the set of token names known to the resolver and the style
// registry.
type Catalog struct {
	// Prefix overrides the variable prefix. Empty derives it from the tag.
	Prefix string

	// Sizes is the size scale, in ascending order. Each size gets its own
	// spacing rule family.
	Sizes []string

	// Intents is the semantic color scale.
	Intents []string

	// Ghost makes styled hosts act as display: flow-root wrappers whose
	// first child carries the generated layout. With Ghost unset the host
	// itself is the flex container.
	Ghost bool
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Sizes:   []string{SizeTiny, SizeMini, SizeSmall, SizeMedium, SizeLarge, SizeBig, SizeHuge},
		Intents: []string{IntentInfo, IntentDanger, IntentSuccess, IntentWarning},
		Ghost:   true,
	}
}

// PrefixFor returns the custom property prefix used for tag.
func (c *Catalog) PrefixFor(tag string) string {
	if c.Prefix != "" {
		return c.Prefix
	}
	prefix, _, _ := strings.Cut(strings.ToLower(tag), "-")
	return prefix
}

// IsSize reports whether token is on the size scale.
func (c *Catalog) IsSize(token string) bool {
	return slices.Contains(c.Sizes, token)
}

// IsIntent reports whether token is on the intent scale.
func (c *Catalog) IsIntent(token string) bool {
	return slices.Contains(c.Intents, token)
}

// Var formats a custom property reference, e.g. Var("m", "spacing",
// "large") returns "var(--m-spacing-large)".
func Var(prefix, scale, token string) string {
	return "var(--" + prefix + "-" + scale + "-" + token + ")"
}

// CopyWith returns a copy of the catalog with the non-nil fields replaced.
func (c *Catalog) CopyWith(prefix *string, sizes, intents []string, ghost *bool) *Catalog {
	result := &Catalog{
		Prefix:  c.Prefix,
		Sizes:   slices.Clone(c.Sizes),
		Intents: slices.Clone(c.Intents),
		Ghost:   c.Ghost,
	}
	if prefix != nil {
		result.Prefix = *prefix
	}
	if sizes != nil {
		result.Sizes = slices.Clone(sizes)
	}
	if intents != nil {
		result.Intents = slices.Clone(intents)
	}
	if ghost != nil {
		result.Ghost = *ghost
	}
	return result
}

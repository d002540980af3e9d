package components

import (
	"fmt"
	"strings"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/styled"
	"github.com/go-drift/elements/pkg/theme"
)

var (
	// SpinnerColor sets the ring color. Values that are not CSS colors are
	// ignored and the previous color stays.
	SpinnerColor = core.StringProp("color")
	// SpinnerSize is one of the catalog sizes.
	SpinnerSize = core.StringProp("size")
)

// Spinner is the m-spinner component. It has no render output; the ring is
// drawn by its sheet from the --color custom property.
type Spinner struct {
	core.Component
}

func (s *Spinner) PropertyChanged(change core.Change) {
	if change.Name != SpinnerColor.Name() {
		return
	}
	if color, _ := change.New.(string); css.IsColor(color) {
		s.Host().SetStyleProperty("--color", color)
	}
}

// Color returns the color the ring is drawn with, or "" for the default.
func (s *Spinner) Color() string {
	return s.Host().StyleProperty("--color")
}

// DefineSpinner registers m-spinner in reg.
func DefineSpinner(reg *dom.Registry, styles *style.Registry) error {
	sheet, err := css.ParseSheet(spinnerCSS(styles.Catalog(), SpinnerTag))
	if err != nil {
		return err
	}
	return core.Define(reg, core.Definition{
		Tag: SpinnerTag,
		Properties: []core.PropertyDescriptor{
			SpinnerColor.Descriptor(),
			SpinnerSize.Descriptor(),
		},
		New:           func() core.Element { return &Spinner{} },
		Styles:        []*css.Sheet{sheet},
		StyleRegistry: styles,
		Mixins: []core.MixinFactory{
			styled.Mixin(styled.Options{Reserved: []string{"color", "size"}, Registry: styles}),
		},
	})
}

func spinnerCSS(catalog *theme.Catalog, tag string) string {
	prefix := catalog.PrefixFor(tag)
	var b strings.Builder
	fmt.Fprintf(&b, `
		%[1]s {
			--color: %[2]s;
			display: inline-block;
			height: %[3]s;
			width: %[3]s;
		}
		%[1]s::after {
			animation: %[4]s-spin 0.75s linear infinite;
			border: 2px solid var(--color);
			border-radius: 50%%;
			border-right-color: transparent;
			box-sizing: border-box;
			content: "";
			display: block;
			height: 100%%;
			width: 100%%;
		}
		%[1]s[hidden] { display: none; }
		@keyframes %[4]s-spin { to { transform: rotate(360deg); } }
	`, tag, theme.Var(prefix, "color", "primary-400"), theme.Var(prefix, "font", theme.SizeMedium), prefix)
	for _, size := range catalog.Sizes {
		fmt.Fprintf(&b, "%s[size='%s'] { height: %s; width: %s; }\n",
			tag, size, theme.Var(prefix, "font", size), theme.Var(prefix, "font", size))
	}
	return b.String()
}

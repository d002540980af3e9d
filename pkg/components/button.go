package components

import (
	"context"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/css"
	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/style"
	"github.com/go-drift/elements/pkg/styled"
	"github.com/go-drift/elements/pkg/theme"
)

// Button properties.
var (
	ButtonDisabled = core.BoolProp("disabled").Reflected()
	ButtonLoading  = core.BoolProp("loading").Reflected()
	ButtonIntent   = core.StringProp("intent")
	ButtonSize     = core.StringProp("size")
	// ButtonVariant is "", "ghost" or "outline".
	ButtonVariant = core.StringProp("variant")
)

// Button is the m-button component. While disabled or loading it swallows
// clicks before they reach any other listener.
type Button struct {
	core.Component
}

// DefineButton registers m-button in reg.
func DefineButton(reg *dom.Registry, styles *style.Registry) error {
	sheet, err := css.ParseSheet(buttonCSS(styles.Catalog(), ButtonTag))
	if err != nil {
		return err
	}
	return core.Define(reg, core.Definition{
		Tag: ButtonTag,
		Properties: []core.PropertyDescriptor{
			ButtonDisabled.Descriptor(),
			ButtonLoading.Descriptor(),
			ButtonIntent.Descriptor(),
			ButtonSize.Descriptor(),
			ButtonVariant.Descriptor(),
		},
		Observed:      []string{"color"},
		New:           func() core.Element { return &Button{} },
		Styles:        []*css.Sheet{sheet},
		StyleRegistry: styles,
		Mixins: []core.MixinFactory{
			styled.Mixin(styled.Options{
				Reserved: []string{"color", "intent", "loading", "size", "variant"},
				Registry: styles,
			}),
		},
	})
}

// Inactive reports whether clicks are currently suppressed.
func (b *Button) Inactive() bool {
	return ButtonDisabled.Get(b) || ButtonLoading.Get(b)
}

func (b *Button) Attached() {
	host := b.Host()
	host.SetAttribute("role", "button")
	host.SetAttribute("tabindex", "0")
	b.OnDetach(host.AddEventListenerWithOptions("click", func(ev *dom.Event) {
		if b.Inactive() {
			ev.StopImmediatePropagation()
		}
	}, dom.ListenerOptions{Capture: true}))
}

// AttributeChanged repaints when color changes; the spinner follows it.
func (b *Button) AttributeChanged(name string, _, _ *string) {
	if name == "color" {
		b.RequestRender()
	}
}

func (b *Button) Render() templ.Component {
	loading := ButtonLoading.Get(b)
	spinner := templ.Attributes{"size": theme.SizeSmall}
	if color := b.Host().Attr("color"); css.IsColor(color) {
		spinner["color"] = color
	}
	label := templ.Attributes{}
	if loading {
		label["hidden"] = ""
	} else {
		spinner["hidden"] = ""
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<m-flex center=""><m-spinner%s></m-spinner><m-flex%s><slot></slot></m-flex></m-flex>`,
			attributes(spinner), attributes(label))
		return err
	})
}

// attributes renders attrs in name order with escaped values.
func attributes(attrs templ.Attributes) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, ` %s="%s"`, name, html.EscapeString(fmt.Sprint(attrs[name])))
	}
	return b.String()
}

// buttonPalette pairs an attribute selector with the palette color that
// backs it. The first entry styles a button without intent or color.
type buttonPalette struct {
	selector string
	bg       string
	fg       string
}

var intentColors = map[string]string{
	theme.IntentDanger:  "red",
	theme.IntentInfo:    "blue",
	theme.IntentSuccess: "green",
	theme.IntentWarning: "orange",
	"primary":           "primary",
}

var namedColors = []string{
	"amber", "blue-gray", "blue", "brown", "cyan", "deep-orange", "deep-purple",
	"fuchsia", "gray", "green", "indigo", "light-blue", "light-green", "lime",
	"orange", "pink", "purple", "red", "teal", "yellow",
}

func palettes(catalog *theme.Catalog) []buttonPalette {
	out := []buttonPalette{{bg: "text", fg: "text"}}
	intents := slices.Clone(catalog.Intents)
	if !slices.Contains(intents, "primary") {
		intents = append(intents, "primary")
	}
	for _, intent := range intents {
		bg, ok := intentColors[intent]
		if !ok {
			bg = intent
		}
		out = append(out, buttonPalette{selector: fmt.Sprintf(`[intent="%s"]`, intent), bg: bg, fg: bg})
	}
	for _, c := range namedColors {
		out = append(out, buttonPalette{selector: fmt.Sprintf(`[color="%s"]`, c), bg: c, fg: c})
	}
	return out
}

func buttonCSS(catalog *theme.Catalog, tag string) string {
	prefix := catalog.PrefixFor(tag)
	color := func(name string, shade int) string {
		return theme.Var(prefix, "color", fmt.Sprintf("%s-%d", name, shade))
	}
	active := ":not([disabled]):not([loading])"

	var b strings.Builder
	fmt.Fprintf(&b, `
		%[1]s {
			align-items: center;
			border: 1px solid transparent;
			color: #fff;
			display: inline-flex !important;
			font-family: var(--%[2]s-font-family);
			outline: none;
			transition: all var(--%[2]s-animation-duration);
			user-select: none;
		}
		%[1]s[disabled], %[1]s[loading] {
			cursor: not-allowed;
			opacity: 0.5;
		}
	`, tag, prefix)

	for _, p := range palettes(catalog) {
		sel := tag + p.selector
		ring := fmt.Sprintf("0 0 0 1px %[1]s, inset 0 0 0 1px %[1]s", color(p.bg, 400))
		fmt.Fprintf(&b, "%s { background: %s; border-color: %s; }\n", sel, color(p.bg, 400), color(p.bg, 400))
		fmt.Fprintf(&b, "%[1]s%[2]s:hover, %[1]s%[2]s:active { background: %[3]s; border-color: %[3]s; }\n", sel, active, color(p.bg, 500))
		fmt.Fprintf(&b, "%s%s:focus { border-color: #fff; box-shadow: %s; }\n", sel, active, ring)
		fmt.Fprintf(&b, "%s[variant='ghost'] { background: transparent; border-color: transparent; color: %s; }\n", sel, color(p.fg, 500))
		fmt.Fprintf(&b, "%[1]s[variant='ghost']%[2]s:active, %[1]s[variant='ghost']%[2]s:hover { background: %[3]s; border-color: transparent; box-shadow: none; }\n", sel, active, color(p.bg, 50))
		fmt.Fprintf(&b, "%[1]s[variant='ghost']%[2]s:active:focus, %[1]s[variant='ghost']%[2]s:hover:focus { box-shadow: %[3]s; }\n", sel, active, ring)
		fmt.Fprintf(&b, "%s[variant='outline'] { background: transparent; border-color: %s; color: %s; }\n", sel, color(p.bg, 400), color(p.fg, 500))
		fmt.Fprintf(&b, "%[1]s[variant='outline']%[2]s:hover, %[1]s[variant='outline']%[2]s:active { background: %[3]s; }\n", sel, active, color(p.bg, 50))
	}

	for _, size := range catalog.Sizes {
		sel := fmt.Sprintf("%s[size='%s']", tag, size)
		if size == theme.SizeMedium {
			sel = tag + ", " + sel
		}
		fmt.Fprintf(&b, `%s {
			border-radius: %s;
			font-size: %s;
			height: calc(%s * 1.25);
			line-height: %s;
			padding: calc(%s * 0.5) %s;
		}
`, sel, theme.Var(prefix, "radius", theme.SizeSmall), theme.Var(prefix, "font", size), theme.Var(prefix, "font", size),
			theme.Var(prefix, "line", size), theme.Var(prefix, "spacing", size), theme.Var(prefix, "spacing", size))
	}
	return b.String()
}

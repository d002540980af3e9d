package css

import (
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// knownProperties is the set of CSS properties the runtime treats as
// natively understood by the style engine.
var knownProperties = toSet(
	"align-content", "align-items", "align-self", "animation", "animation-delay",
	"animation-duration", "animation-name", "animation-timing-function", "appearance",
	"aspect-ratio", "backdrop-filter", "background", "background-color", "background-image",
	"background-position", "background-repeat", "background-size", "border", "border-bottom",
	"border-bottom-color", "border-bottom-left-radius", "border-bottom-right-radius",
	"border-bottom-width", "border-collapse", "border-color", "border-left", "border-left-color",
	"border-left-width", "border-radius", "border-right", "border-right-color",
	"border-right-width", "border-spacing", "border-style", "border-top", "border-top-color",
	"border-top-left-radius", "border-top-right-radius", "border-top-width", "border-width",
	"bottom", "box-shadow", "box-sizing", "caret-color", "clear", "clip-path", "color",
	"column-gap", "columns", "content", "cursor", "direction", "display", "fill", "filter",
	"flex", "flex-basis", "flex-direction", "flex-flow", "flex-grow", "flex-shrink",
	"flex-wrap", "float", "font", "font-family", "font-size", "font-style", "font-weight",
	"gap", "grid", "grid-area", "grid-auto-flow", "grid-column", "grid-row",
	"grid-template-areas", "grid-template-columns", "grid-template-rows", "height", "inset",
	"isolation", "justify-content", "justify-items", "justify-self", "left", "letter-spacing",
	"line-height", "list-style", "margin", "margin-bottom", "margin-left", "margin-right",
	"margin-top", "max-height", "max-width", "min-height", "min-width", "mix-blend-mode",
	"object-fit", "object-position", "opacity", "order", "outline", "outline-color",
	"outline-offset", "outline-style", "outline-width", "overflow", "overflow-wrap",
	"overflow-x", "overflow-y", "padding", "padding-bottom", "padding-left", "padding-right",
	"padding-top", "place-content", "place-items", "place-self", "pointer-events", "position",
	"resize", "right", "row-gap", "scroll-behavior", "stroke", "stroke-width", "tab-size",
	"table-layout", "text-align", "text-decoration", "text-indent", "text-overflow",
	"text-shadow", "text-transform", "top", "transform", "transform-origin", "transition",
	"transition-delay", "transition-duration", "transition-property", "user-select",
	"vertical-align", "visibility", "white-space", "width", "will-change", "word-break",
	"word-spacing", "writing-mode", "z-index", "zoom",
)

// unitlessProperties accept bare numbers.
var unitlessProperties = toSet(
	"aspect-ratio", "column-count", "flex", "flex-grow", "flex-shrink", "font-weight",
	"line-height", "opacity", "order", "orphans", "tab-size", "widows", "z-index", "zoom",
)

var keywords = toSet(
	"inherit", "initial", "unset", "revert",
	"auto", "none", "normal", "hidden", "visible", "scroll", "clip", "contents",
	"block", "inline", "inline-block", "flex", "inline-flex", "grid", "inline-grid",
	"flow-root", "table", "list-item",
	"row", "row-reverse", "column", "column-reverse", "wrap", "nowrap", "wrap-reverse",
	"start", "end", "center", "flex-start", "flex-end", "left", "right", "top", "bottom",
	"stretch", "baseline", "space-between", "space-around", "space-evenly",
	"static", "relative", "absolute", "fixed", "sticky",
	"solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset",
	"thin", "medium", "thick", "small", "large", "x-small", "x-large", "smaller", "larger",
	"bold", "bolder", "lighter", "italic", "uppercase", "lowercase", "capitalize",
	"pointer", "default", "not-allowed", "text", "move", "grab",
	"ltr", "rtl", "transparent", "currentcolor", "border-box", "content-box",
	"cover", "contain", "fill", "repeat", "no-repeat", "ease", "ease-in", "ease-out",
	"ease-in-out", "linear", "infinite", "both", "forwards", "backwards",
	"min-content", "max-content", "fit-content",
	"serif", "sans-serif", "monospace", "system-ui", "cursive",
)

var units = []string{
	"px", "em", "rem", "%", "vh", "vw", "vmin", "vmax", "dvh", "dvw", "ch", "ex",
	"fr", "pt", "pc", "cm", "mm", "in", "deg", "rad", "turn", "ms", "s",
}

// KnownProperty reports whether name is a CSS property the engine
// understands, including custom properties ("--x").
func KnownProperty(name string) bool {
	if strings.HasPrefix(name, "--") && len(name) > 2 {
		return true
	}
	return knownProperties[name]
}

// Supports reports whether value is a native value for property. An
// unknown property is never supported.
func Supports(property, value string) bool {
	if !KnownProperty(property) {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if strings.HasPrefix(property, "--") {
		return true
	}
	for _, tok := range tokenize(value) {
		if !validToken(property, tok) {
			return false
		}
	}
	return true
}

// IsColor reports whether value is a hex or named CSS color.
func IsColor(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if isHexColor(value) {
		return true
	}
	_, ok := colornames.Map[value]
	return ok || value == "transparent" || value == "currentcolor"
}

func validToken(property, tok string) bool {
	lower := strings.ToLower(tok)
	switch {
	case tok == "/" || tok == ",":
		return true
	case keywords[lower]:
		return true
	case isFunction(tok):
		return true
	case isQuoted(tok):
		return true
	case IsColor(lower):
		return true
	case isDimension(tok):
		return true
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return n == 0 || unitlessProperties[property]
	}
	return false
}

func isDimension(tok string) bool {
	for _, u := range units {
		if num, ok := strings.CutSuffix(tok, u); ok && num != "" {
			if _, err := strconv.ParseFloat(num, 64); err == nil {
				return true
			}
		}
	}
	return false
}

func isFunction(tok string) bool {
	open := strings.IndexByte(tok, '(')
	if open <= 0 || !strings.HasSuffix(tok, ")") {
		return false
	}
	for _, r := range tok[:open] {
		if !(r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isQuoted(tok string) bool {
	return len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0]
}

func isHexColor(v string) bool {
	if !strings.HasPrefix(v, "#") {
		return false
	}
	hex := v[1:]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// tokenize splits a value on top-level whitespace, commas and slashes,
// keeping parenthesised groups and quoted strings intact.
func tokenize(value string) []string {
	var (
		out   []string
		start = -1
		depth int
		quote rune
	)
	flush := func(end int) {
		if start >= 0 {
			out = append(out, value[start:end])
			start = -1
		}
	}
	for i, r := range value {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			continue
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush(i)
			continue
		case depth == 0 && (r == ',' || r == '/'):
			flush(i)
			out = append(out, string(r))
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(value))
	return out
}

func toSet(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

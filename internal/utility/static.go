package utility

import "github.com/yacobolo/twgen/internal/stylesheet"

func decl(property, value string) stylesheet.Declaration {
	return stylesheet.Declaration{Property: property, Value: value}
}

func single(property, value string) []stylesheet.Declaration {
	return []stylesheet.Declaration{decl(property, value)}
}

// staticUtilities are classes that take no value.
var staticUtilities = map[string][]stylesheet.Declaration{
	"block":        single("display", "block"),
	"inline-block": single("display", "inline-block"),
	"inline":       single("display", "inline"),
	"flex":         single("display", "flex"),
	"inline-flex":  single("display", "inline-flex"),
	"grid":         single("display", "grid"),
	"inline-grid":  single("display", "inline-grid"),
	"table":        single("display", "table"),
	"contents":     single("display", "contents"),
	"hidden":       single("display", "none"),

	"static":   single("position", "static"),
	"fixed":    single("position", "fixed"),
	"absolute": single("position", "absolute"),
	"relative": single("position", "relative"),
	"sticky":   single("position", "sticky"),

	"visible":   single("visibility", "visible"),
	"invisible": single("visibility", "hidden"),

	"flex-row":         single("flex-direction", "row"),
	"flex-row-reverse": single("flex-direction", "row-reverse"),
	"flex-col":         single("flex-direction", "column"),
	"flex-col-reverse": single("flex-direction", "column-reverse"),
	"flex-wrap":        single("flex-wrap", "wrap"),
	"flex-nowrap":      single("flex-wrap", "nowrap"),
	"flex-1":           single("flex", "1 1 0%"),
	"flex-auto":        single("flex", "1 1 auto"),
	"flex-none":        single("flex", "none"),
	"grow":             single("flex-grow", "1"),
	"shrink-0":         single("flex-shrink", "0"),

	"items-start":     single("align-items", "flex-start"),
	"items-end":       single("align-items", "flex-end"),
	"items-center":    single("align-items", "center"),
	"items-baseline":  single("align-items", "baseline"),
	"items-stretch":   single("align-items", "stretch"),
	"justify-start":   single("justify-content", "flex-start"),
	"justify-end":     single("justify-content", "flex-end"),
	"justify-center":  single("justify-content", "center"),
	"justify-between": single("justify-content", "space-between"),
	"justify-around":  single("justify-content", "space-around"),
	"justify-evenly":  single("justify-content", "space-evenly"),

	"text-left":    single("text-align", "left"),
	"text-center":  single("text-align", "center"),
	"text-right":   single("text-align", "right"),
	"text-justify": single("text-align", "justify"),

	"uppercase":    single("text-transform", "uppercase"),
	"lowercase":    single("text-transform", "lowercase"),
	"capitalize":   single("text-transform", "capitalize"),
	"normal-case":  single("text-transform", "none"),
	"italic":       single("font-style", "italic"),
	"not-italic":   single("font-style", "normal"),
	"underline":    single("text-decoration-line", "underline"),
	"line-through": single("text-decoration-line", "line-through"),
	"no-underline": single("text-decoration-line", "none"),
	"truncate": {
		decl("overflow", "hidden"),
		decl("text-overflow", "ellipsis"),
		decl("white-space", "nowrap"),
	},
	"whitespace-nowrap": single("white-space", "nowrap"),

	"overflow-auto":   single("overflow", "auto"),
	"overflow-hidden": single("overflow", "hidden"),
	"overflow-scroll": single("overflow", "scroll"),

	"pointer-events-none": single("pointer-events", "none"),
	"cursor-pointer":      single("cursor", "pointer"),
	"select-none":         single("user-select", "none"),
}

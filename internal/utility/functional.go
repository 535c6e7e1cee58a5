package utility

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yacobolo/twgen/internal/stylesheet"
	"github.com/yacobolo/twgen/internal/theme"
)

// value is the part of a class after its utility root.
type value struct {
	key       string // Theme key, "" for the bare utility
	arbitrary string
	isArb     bool
	negative  bool
}

// handler produces declarations for a root, or nil when the value does not
// belong to it.
type handler func(t *theme.Theme, v value) []stylesheet.Declaration

type functional struct {
	handler  handler
	negative bool // Accepts a "-" prefix
}

var functionalUtilities = map[string]functional{
	"text":    {handler: textUtility},
	"bg":      {handler: bgUtility},
	"border":  {handler: borderUtility},
	"font":    {handler: fontUtility},
	"rounded": {handler: roundedUtility},
	"opacity": {handler: lookup("opacity", func(t *theme.Theme) map[string]string { return t.Opacity })},
	"z":       {handler: lookup("z-index", func(t *theme.Theme) map[string]string { return t.ZIndex }), negative: true},
	"animate": {handler: animateUtility},

	"w":     {handler: sizing("width", "vw")},
	"h":     {handler: sizing("height", "vh")},
	"min-w": {handler: sizing("min-width", "vw")},
	"min-h": {handler: sizing("min-height", "vh")},
	"max-w": {handler: maxWidthUtility},
	"max-h": {handler: sizing("max-height", "vh")},

	"p":  {handler: spacing("padding")},
	"px": {handler: spacing("padding-left", "padding-right")},
	"py": {handler: spacing("padding-top", "padding-bottom")},
	"pt": {handler: spacing("padding-top")},
	"pr": {handler: spacing("padding-right")},
	"pb": {handler: spacing("padding-bottom")},
	"pl": {handler: spacing("padding-left")},

	"m":  {handler: margin("margin"), negative: true},
	"mx": {handler: margin("margin-left", "margin-right"), negative: true},
	"my": {handler: margin("margin-top", "margin-bottom"), negative: true},
	"mt": {handler: margin("margin-top"), negative: true},
	"mr": {handler: margin("margin-right"), negative: true},
	"mb": {handler: margin("margin-bottom"), negative: true},
	"ml": {handler: margin("margin-left"), negative: true},

	"gap":   {handler: spacing("gap")},
	"gap-x": {handler: spacing("column-gap")},
	"gap-y": {handler: spacing("row-gap")},

	"inset":   {handler: inset("inset"), negative: true},
	"inset-x": {handler: inset("left", "right"), negative: true},
	"inset-y": {handler: inset("top", "bottom"), negative: true},
	"top":     {handler: inset("top"), negative: true},
	"right":   {handler: inset("right"), negative: true},
	"bottom":  {handler: inset("bottom"), negative: true},
	"left":    {handler: inset("left"), negative: true},
}

// roots lists functional roots longest first so "min-w-4" is tried as
// "min-w" before "w".
var roots = func() []string {
	out := make([]string, 0, len(functionalUtilities))
	for root := range functionalUtilities {
		out = append(out, root)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

func many(value string, properties ...string) []stylesheet.Declaration {
	out := make([]stylesheet.Declaration, len(properties))
	for i, p := range properties {
		out[i] = decl(p, value)
	}
	return out
}

func textUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		kind, val := inferKind(v.arbitrary)
		switch kind {
		case kindLength, kindNumber:
			return single("font-size", val)
		case kindURL:
			return nil
		}
		return single("color", val)
	}
	if fs, ok := t.FontSize[v.key]; ok {
		if fs.LineHeight == "" {
			return single("font-size", fs.Size)
		}
		return []stylesheet.Declaration{decl("font-size", fs.Size), decl("line-height", fs.LineHeight)}
	}
	if c, ok := t.Colors[v.key]; ok {
		return single("color", c)
	}
	return nil
}

func bgUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		kind, val := inferKind(v.arbitrary)
		switch kind {
		case kindURL:
			return single("background-image", val)
		case kindLength, kindNumber:
			return single("background-size", val)
		}
		return single("background-color", val)
	}
	if c, ok := t.Colors[v.key]; ok {
		return single("background-color", c)
	}
	return nil
}

func borderUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		kind, val := inferKind(v.arbitrary)
		switch kind {
		case kindLength, kindNumber:
			return single("border-width", val)
		case kindURL:
			return nil
		}
		return single("border-color", val)
	}
	key := v.key
	if key == "" {
		key = "DEFAULT"
	}
	if w, ok := t.BorderWidth[key]; ok {
		return single("border-width", w)
	}
	if c, ok := t.Colors[v.key]; ok {
		return single("border-color", c)
	}
	return nil
}

func fontUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		kind, val := inferKind(v.arbitrary)
		if kind == kindNumber {
			return single("font-weight", val)
		}
		return single("font-family", val)
	}
	if w, ok := t.FontWeight[v.key]; ok {
		return single("font-weight", w)
	}
	return nil
}

func roundedUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		return single("border-radius", v.arbitrary)
	}
	key := v.key
	if key == "" {
		key = "DEFAULT"
	}
	if r, ok := t.BorderRadius[key]; ok {
		return single("border-radius", r)
	}
	return nil
}

func animateUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		return single("animation", v.arbitrary)
	}
	if a, ok := t.Animation[v.key]; ok {
		return single("animation", a)
	}
	return nil
}

func lookup(property string, section func(*theme.Theme) map[string]string) handler {
	return func(t *theme.Theme, v value) []stylesheet.Declaration {
		if v.isArb {
			return single(property, signed(v.arbitrary, v.negative))
		}
		val, ok := section(t)[v.key]
		if !ok || v.key == "" {
			return nil
		}
		if v.negative {
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				return nil
			}
		}
		return single(property, signed(val, v.negative))
	}
}

// spaced resolves a keyword, a spacing-scale key, a fraction (when
// allowed) or an arbitrary value.
func spaced(t *theme.Theme, v value, keywords map[string]string, fractions bool) (string, bool) {
	if v.isArb {
		return v.arbitrary, true
	}
	if v.key == "" {
		return "", false
	}
	if val, ok := keywords[v.key]; ok {
		return val, true
	}
	if val, ok := t.Spacing[v.key]; ok {
		return val, true
	}
	if fractions {
		if pct, ok := fraction(v.key); ok {
			return pct, true
		}
	}
	return "", false
}

func spacing(properties ...string) handler {
	return func(t *theme.Theme, v value) []stylesheet.Declaration {
		val, ok := spaced(t, v, nil, false)
		if !ok {
			return nil
		}
		return many(val, properties...)
	}
}

func margin(properties ...string) handler {
	keywords := map[string]string{"auto": "auto"}
	return func(t *theme.Theme, v value) []stylesheet.Declaration {
		val, ok := spaced(t, v, keywords, false)
		if !ok || (v.negative && val == "auto") {
			return nil
		}
		return many(signed(val, v.negative), properties...)
	}
}

func inset(properties ...string) handler {
	keywords := map[string]string{"auto": "auto", "full": "100%"}
	return func(t *theme.Theme, v value) []stylesheet.Declaration {
		val, ok := spaced(t, v, keywords, true)
		if !ok || (v.negative && val == "auto") {
			return nil
		}
		return many(signed(val, v.negative), properties...)
	}
}

func sizing(property, viewport string) handler {
	keywords := map[string]string{
		"auto":   "auto",
		"full":   "100%",
		"screen": "100" + viewport,
		"min":    "min-content",
		"max":    "max-content",
		"fit":    "fit-content",
	}
	return func(t *theme.Theme, v value) []stylesheet.Declaration {
		val, ok := spaced(t, v, keywords, true)
		if !ok {
			return nil
		}
		return single(property, val)
	}
}

var maxWidths = map[string]string{
	"none":  "none",
	"xs":    "20rem",
	"sm":    "24rem",
	"md":    "28rem",
	"lg":    "32rem",
	"xl":    "36rem",
	"2xl":   "42rem",
	"3xl":   "48rem",
	"4xl":   "56rem",
	"5xl":   "64rem",
	"6xl":   "72rem",
	"7xl":   "80rem",
	"full":  "100%",
	"min":   "min-content",
	"max":   "max-content",
	"fit":   "fit-content",
	"prose": "65ch",
}

func maxWidthUtility(t *theme.Theme, v value) []stylesheet.Declaration {
	if v.isArb {
		return single("max-width", v.arbitrary)
	}
	if w, ok := maxWidths[v.key]; ok {
		return single("max-width", w)
	}
	if screen, ok := strings.CutPrefix(v.key, "screen-"); ok {
		if w, ok := t.Screens[screen]; ok {
			return single("max-width", w)
		}
	}
	return nil
}

// fraction converts "1/2" to "50%".
func fraction(key string) (string, bool) {
	num, den, ok := strings.Cut(key, "/")
	if !ok {
		return "", false
	}
	n, err1 := strconv.Atoi(num)
	d, err2 := strconv.Atoi(den)
	if err1 != nil || err2 != nil || d <= 0 || n < 0 {
		return "", false
	}
	pct := math.Round(float64(n)*100/float64(d)*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%", true
}

// signed negates a length for "-m-4" style classes.
func signed(val string, negative bool) string {
	if !negative {
		return val
	}
	switch {
	case val == "0" || val == "0px" || val == "0%":
		return val
	case strings.HasPrefix(val, "-"):
		return val[1:]
	case len(val) > 0 && (val[0] >= '0' && val[0] <= '9' || val[0] == '.'):
		return "-" + val
	}
	return "calc(" + val + " * -1)"
}

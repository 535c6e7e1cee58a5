package utility

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yacobolo/twgen/internal/stylesheet"
	"github.com/yacobolo/twgen/internal/theme"
)

// Utility is a resolved class.
type Utility struct {
	Rule      stylesheet.Rule
	Keyframes []string // Keyframe names the rule's animation references
	Order     int      // 0 without a screen variant, else 1 + screen rank

	variants int
}

var pseudoVariants = map[string]string{
	"hover":         ":hover",
	"focus":         ":focus",
	"active":        ":active",
	"disabled":      ":disabled",
	"visited":       ":visited",
	"first":         ":first-child",
	"last":          ":last-child",
	"odd":           ":nth-child(odd)",
	"even":          ":nth-child(even)",
	"focus-within":  ":focus-within",
	"focus-visible": ":focus-visible",
}

var groupVariants = map[string]string{
	"group-hover": ".group:hover",
	"group-focus": ".group:focus",
}

// Resolver maps class tokens to rules against one resolved theme. It is
// safe for concurrent use.
type Resolver struct {
	theme   *theme.Theme
	screens map[string]int // name -> 1-based rank by min-width
}

// NewResolver returns a resolver for t.
func NewResolver(t *theme.Theme) *Resolver {
	return &Resolver{theme: t, screens: rankScreens(t.Screens)}
}

// Theme returns the theme the resolver reads from.
func (r *Resolver) Theme() *theme.Theme { return r.theme }

// Resolve maps token to its utility. It reports false for a well-formed
// token that names no utility, and an error wrapping diag.ErrInvalidClass
// for a token that fails the class-name grammar.
func (r *Resolver) Resolve(token string) (Utility, bool, error) {
	c, err := ParseCandidate(token)
	if err != nil {
		return Utility{}, false, err
	}
	u, ok := r.ResolveCandidate(c)
	return u, ok, nil
}

// Known reports whether token resolves to a utility.
func (r *Resolver) Known(token string) bool {
	_, ok, err := r.Resolve(token)
	return ok && err == nil
}

// ResolveCandidate maps an already parsed candidate.
func (r *Resolver) ResolveCandidate(c Candidate) (Utility, bool) {
	decls := r.declarations(c)
	if len(decls) == 0 {
		return Utility{}, false
	}

	selector, media, order, ok := r.applyVariants(c)
	if !ok {
		return Utility{}, false
	}

	if c.Important {
		for i := range decls {
			decls[i].Important = true
		}
	}

	u := Utility{
		Rule: stylesheet.Rule{
			Class:        c.Raw,
			Selector:     selector,
			Media:        media,
			Declarations: decls,
		},
		Order:    order,
		variants: len(c.Variants),
	}
	for _, d := range decls {
		if d.Property != "animation" {
			continue
		}
		// Theme shorthands were validated when the theme resolved. Arbitrary
		// ones may name keyframes the theme lacks; callers check them.
		names, _ := theme.KeyframeNames(d.Value)
		u.Keyframes = append(u.Keyframes, names...)
	}
	return u, true
}

func (r *Resolver) declarations(c Candidate) []stylesheet.Declaration {
	if !c.HasArbitrary && !c.Negative {
		if decls, ok := staticUtilities[c.Base]; ok {
			return append([]stylesheet.Declaration(nil), decls...)
		}
	}

	if c.HasArbitrary {
		f, ok := functionalUtilities[c.Root]
		if !ok || (c.Negative && !f.negative) {
			return nil
		}
		return f.handler(r.theme, value{arbitrary: c.Arbitrary, isArb: true, negative: c.Negative})
	}

	for _, root := range roots {
		var key string
		switch {
		case c.Base == root:
		case strings.HasPrefix(c.Base, root+"-"):
			key = c.Base[len(root)+1:]
		default:
			continue
		}
		f := functionalUtilities[root]
		if c.Negative && !f.negative {
			continue
		}
		if decls := f.handler(r.theme, value{key: key, negative: c.Negative}); len(decls) > 0 {
			return decls
		}
	}
	return nil
}

// applyVariants builds the selector and media query. At most one screen
// variant is allowed.
func (r *Resolver) applyVariants(c Candidate) (selector, media string, order int, ok bool) {
	var prefix, pseudo strings.Builder
	for _, v := range c.Variants {
		if p, ok := pseudoVariants[v]; ok {
			pseudo.WriteString(p)
			continue
		}
		if g, ok := groupVariants[v]; ok {
			if prefix.Len() > 0 {
				return "", "", 0, false
			}
			prefix.WriteString(g)
			prefix.WriteByte(' ')
			continue
		}
		if rank, ok := r.screens[v]; ok {
			if media != "" {
				return "", "", 0, false
			}
			media = "(min-width: " + r.theme.Screens[v] + ")"
			order = rank
			continue
		}
		return "", "", 0, false
	}
	return prefix.String() + stylesheet.ClassSelector(c.Raw) + pseudo.String(), media, order, true
}

// rankScreens orders screens by their min-width, falling back to name for
// values that are not plain pixel lengths.
func rankScreens(screens map[string]string) map[string]int {
	names := make([]string, 0, len(screens))
	for name := range screens {
		names = append(names, name)
	}
	width := func(name string) float64 {
		v := strings.TrimSuffix(strings.TrimSpace(screens[name]), "px")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return -1
		}
		return f
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := width(names[i]), width(names[j])
		if wi != wj {
			return wi < wj
		}
		return names[i] < names[j]
	})

	ranks := make(map[string]int, len(names))
	for i, name := range names {
		ranks[name] = i + 1
	}
	return ranks
}

// Sort orders utilities for output: plain rules before screen variants,
// screens ascending, then variant-free before variant rules, then by class.
func Sort(us []Utility) {
	sort.SliceStable(us, func(i, j int) bool {
		a, b := us[i], us[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if (a.variants == 0) != (b.variants == 0) {
			return a.variants == 0
		}
		return a.Rule.Class < b.Rule.Class
	})
}

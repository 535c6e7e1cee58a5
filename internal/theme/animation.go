package theme

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Animation is one entry of an animation shorthand list.
type Animation struct {
	Name           string
	Duration       string
	TimingFunction string
	Delay          string
	IterationCount string
	Direction      string
	FillMode       string
	PlayState      string
}

var (
	timingKeywords    = setOf("linear", "ease", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end")
	timingFunctions   = setOf("cubic-bezier(", "steps(", "linear(")
	directionKeywords = setOf("normal", "reverse", "alternate", "alternate-reverse")
	fillKeywords      = setOf("forwards", "backwards", "both")
	playKeywords      = setOf("running", "paused")
	globalKeywords    = setOf("inherit", "initial", "unset", "revert")
)

// ParseAnimation parses an animation shorthand such as
// "shrinkProgress 10s linear forwards". Comma-separated lists yield one
// Animation each.
func ParseAnimation(value string) ([]Animation, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty animation value")
	}
	if globalKeywords[strings.ToLower(value)] {
		return nil, nil
	}

	groups, err := splitComponents(value)
	if err != nil {
		return nil, err
	}

	out := make([]Animation, 0, len(groups))
	for _, components := range groups {
		anim, err := classify(components)
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", value, err)
		}
		out = append(out, anim)
	}
	return out, nil
}

// KeyframeNames returns the keyframe names referenced by a shorthand,
// excluding "none".
func KeyframeNames(value string) ([]string, error) {
	anims, err := ParseAnimation(value)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(anims))
	for _, a := range anims {
		if a.Name != "" && a.Name != "none" {
			names = append(names, a.Name)
		}
	}
	return names, nil
}

type component struct {
	tt   css.TokenType
	text string
}

// splitComponents lexes the value into space-separated components grouped
// by top-level commas. Function calls stay one component.
func splitComponents(value string) ([][]component, error) {
	lexer := css.NewLexer(parse.NewInputString(value))

	var groups [][]component
	var current []component
	var fn strings.Builder
	depth := 0

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)

		if depth > 0 {
			fn.WriteString(text)
			switch tt {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
				if depth == 0 {
					current = append(current, component{tt: css.FunctionToken, text: fn.String()})
					fn.Reset()
				}
			}
			continue
		}

		switch tt {
		case css.WhitespaceToken, css.CommentToken:
		case css.FunctionToken:
			depth = 1
			fn.WriteString(text)
		case css.CommaToken:
			if len(current) == 0 {
				return nil, fmt.Errorf("animation %q: empty entry before ','", value)
			}
			groups = append(groups, current)
			current = nil
		case css.IdentToken, css.DimensionToken, css.NumberToken, css.StringToken:
			current = append(current, component{tt: tt, text: text})
		default:
			return nil, fmt.Errorf("animation %q: unexpected %q", value, text)
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("animation %q: unbalanced parentheses", value)
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("animation %q: empty entry", value)
	}
	return append(groups, current), nil
}

func classify(components []component) (Animation, error) {
	var a Animation

	for _, c := range components {
		lower := strings.ToLower(c.text)

		switch c.tt {
		case css.DimensionToken:
			if !isTime(lower) {
				return a, fmt.Errorf("%q is not a time value", c.text)
			}
			switch {
			case a.Duration == "":
				a.Duration = c.text
			case a.Delay == "":
				a.Delay = c.text
			default:
				return a, fmt.Errorf("too many time values at %q", c.text)
			}
			continue

		case css.NumberToken:
			if a.IterationCount != "" {
				return a, fmt.Errorf("duplicate iteration count %q", c.text)
			}
			a.IterationCount = c.text
			continue

		case css.FunctionToken:
			name := lower[:strings.Index(lower, "(")+1]
			if !timingFunctions[name] || a.TimingFunction != "" {
				return a, fmt.Errorf("unexpected function %q", c.text)
			}
			a.TimingFunction = c.text
			continue

		case css.StringToken:
			if a.Name != "" {
				return a, fmt.Errorf("more than one keyframe name (%q, %q)", a.Name, c.text)
			}
			a.Name = strings.Trim(c.text, `"'`)
			continue
		}

		switch {
		case timingKeywords[lower] && a.TimingFunction == "":
			a.TimingFunction = c.text
		case lower == "infinite" && a.IterationCount == "":
			a.IterationCount = c.text
		case directionKeywords[lower] && a.Direction == "":
			a.Direction = c.text
		case fillKeywords[lower] && a.FillMode == "":
			a.FillMode = c.text
		case lower == "none" && a.FillMode == "" && a.Name != "":
			a.FillMode = c.text
		case playKeywords[lower] && a.PlayState == "":
			a.PlayState = c.text
		case a.Name == "":
			a.Name = c.text
		default:
			return a, fmt.Errorf("more than one keyframe name (%q, %q)", a.Name, c.text)
		}
	}

	if a.Name == "" {
		return a, fmt.Errorf("missing keyframe name")
	}
	return a, nil
}

func isTime(dim string) bool {
	return strings.HasSuffix(dim, "ms") || (strings.HasSuffix(dim, "s") && !strings.HasSuffix(dim, "ms"))
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

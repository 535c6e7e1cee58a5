package utility

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// DecodeArbitrary turns the inside of "[...]" into a CSS value: "_" becomes
// a space, "\_" a literal underscore. The value must lex as a single CSS
// component value list.
func DecodeArbitrary(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty arbitrary value")
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == '_':
			b.WriteByte('_')
			i++
		case raw[i] == '_':
			b.WriteByte(' ')
		default:
			b.WriteByte(raw[i])
		}
	}
	value := strings.TrimSpace(b.String())
	if value == "" {
		return "", fmt.Errorf("empty arbitrary value")
	}
	if err := validateValue(value); err != nil {
		return "", err
	}
	return value, nil
}

func validateValue(value string) error {
	lexer := css.NewLexer(parse.NewInputString(value))
	depth := 0
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if depth != 0 {
				return fmt.Errorf("unbalanced parentheses in %q", value)
			}
			return nil
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced parentheses in %q", value)
			}
		case css.BadStringToken, css.BadURLToken:
			return fmt.Errorf("malformed value %q", value)
		case css.URLToken:
			if !strings.HasSuffix(string(data), ")") {
				return fmt.Errorf("unterminated url in %q", value)
			}
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken, css.CDOToken, css.CDCToken:
			return fmt.Errorf("%q is not allowed in a value", string(data))
		}
	}
}

type valueKind int

const (
	kindAny valueKind = iota
	kindColor
	kindLength
	kindNumber
	kindURL
)

var colorFunctions = map[string]bool{
	"rgb(": true, "rgba(": true, "hsl(": true, "hsla(": true, "hwb(": true,
	"lab(": true, "lch(": true, "oklab(": true, "oklch(": true, "color(": true, "color-mix(": true,
}

var lengthFunctions = map[string]bool{
	"calc(": true, "min(": true, "max(": true, "clamp(": true,
}

var typeHints = map[string]valueKind{
	"color":      kindColor,
	"length":     kindLength,
	"percentage": kindLength,
	"number":     kindNumber,
	"url":        kindURL,
}

// inferKind classifies an arbitrary value from its first token. A
// "color:" or "length:" hint overrides the inference.
func inferKind(value string) (valueKind, string) {
	if hint, rest, ok := strings.Cut(value, ":"); ok {
		if kind, known := typeHints[hint]; known {
			return kind, rest
		}
	}

	lexer := css.NewLexer(parse.NewInputString(value))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.WhitespaceToken:
			continue
		case css.HashToken:
			return kindColor, value
		case css.DimensionToken, css.PercentageToken:
			return kindLength, value
		case css.NumberToken:
			return kindNumber, value
		case css.URLToken:
			return kindURL, value
		case css.FunctionToken:
			name := strings.ToLower(string(data))
			switch {
			case colorFunctions[name]:
				return kindColor, value
			case lengthFunctions[name]:
				return kindLength, value
			case name == "url(":
				return kindURL, value
			}
			return kindAny, value
		case css.IdentToken:
			return kindColor, value
		}
		return kindAny, value
	}
}

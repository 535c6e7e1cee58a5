// Package utility maps class tokens to CSS declarations.
//
// A token is "[variant:]*[!][-]base". The base is a utility root followed by
// a theme key ("text-red-500"), a fraction ("w-1/2") or a bracketed
// arbitrary value ("text-[10px]").
package utility

import (
	"fmt"
	"strings"

	"github.com/yacobolo/twgen/internal/diag"
)

// Candidate is a token that passed the class-name grammar.
type Candidate struct {
	Raw          string
	Variants     []string // Outermost first, as written
	Important    bool     // "!" prefix
	Negative     bool     // "-" prefix
	Base         string   // Without variants and prefixes
	Root         string   // Base up to the arbitrary value, without the trailing "-"
	Arbitrary    string   // Decoded arbitrary value
	HasArbitrary bool
}

// ParseCandidate checks token against the class-name grammar. Errors wrap
// diag.ErrInvalidClass.
func ParseCandidate(token string) (Candidate, error) {
	c := Candidate{Raw: token}
	if token == "" {
		return c, invalid(token, "empty class name")
	}

	parts, err := splitVariants(token)
	if err != nil {
		return c, invalid(token, "%v", err)
	}

	for _, v := range parts[:len(parts)-1] {
		if !isVariantName(v) {
			return c, invalid(token, "malformed variant %q", v)
		}
		c.Variants = append(c.Variants, v)
	}

	base := parts[len(parts)-1]
	if strings.HasPrefix(base, "!") {
		c.Important = true
		base = base[1:]
	}
	if strings.HasPrefix(base, "-") {
		c.Negative = true
		base = base[1:]
	}
	if base == "" {
		return c, invalid(token, "missing utility name")
	}
	c.Base = base

	if open := strings.IndexByte(base, '['); open >= 0 {
		if !strings.HasSuffix(base, "]") {
			return c, invalid(token, "arbitrary value must end the class")
		}
		if open == 0 || base[open-1] != '-' {
			return c, invalid(token, "arbitrary value must follow \"<utility>-\"")
		}
		c.Root = base[:open-1]
		if !isBaseName(c.Root) {
			return c, invalid(token, "malformed utility name %q", c.Root)
		}
		value, err := DecodeArbitrary(base[open+1 : len(base)-1])
		if err != nil {
			return c, invalid(token, "%v", err)
		}
		c.Arbitrary = value
		c.HasArbitrary = true
		return c, nil
	}

	if !isBaseName(base) {
		return c, invalid(token, "malformed utility name %q", base)
	}
	c.Root = base
	return c, nil
}

func invalid(token, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", diag.ErrInvalidClass, token, fmt.Sprintf(format, args...))
}

// splitVariants splits on ":" outside brackets.
func splitVariants(token string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(token); i++ {
		switch c := token[i]; {
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']' at offset %d", i)
			}
		case c == ':' && depth == 0:
			parts = append(parts, token[start:i])
			start = i + 1
		case depth == 0 && (c <= ' ' || c == '"' || c == '\'' || c == '`' || c == '{' || c == '}' || c == ';'):
			return nil, fmt.Errorf("unexpected %q", c)
		case depth > 0 && c <= ' ':
			return nil, fmt.Errorf("whitespace inside arbitrary value (use \"_\")")
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}
	return append(parts, token[start:]), nil
}

func isVariantName(v string) bool {
	if v == "" || v[0] == '-' || v[len(v)-1] == '-' {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}

func isBaseName(s string) bool {
	if s == "" || s[len(s)-1] == '-' {
		return false
	}
	if c := s[0]; !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == '/', c == '%':
		default:
			return false
		}
	}
	return true
}

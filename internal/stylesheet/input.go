package stylesheet

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Layer names accepted by the @tailwind directive.
const (
	LayerBase       = "base"
	LayerComponents = "components"
	LayerUtilities  = "utilities"
	LayerVariants   = "variants"
)

// Splice copies an input stylesheet, replacing each "@tailwind <layer>;"
// directive with the bytes returned by layer. It reports whether a
// utilities directive was present.
func Splice(input []byte, layer func(name string) []byte) ([]byte, bool, error) {
	var out bytes.Buffer
	out.Grow(len(input))
	found := false

	lexer := css.NewLexer(parse.NewInputBytes(input))
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, false, fmt.Errorf("lex input stylesheet: %w", err)
			}
			break
		}

		if tt != css.AtKeywordToken || string(text) != "@tailwind" {
			out.Write(text)
			continue
		}

		name, err := readDirectiveName(lexer)
		if err != nil {
			return nil, false, err
		}
		switch name {
		case LayerUtilities:
			found = true
			out.Write(layer(name))
		case LayerBase, LayerComponents, LayerVariants:
			out.Write(layer(name))
		default:
			return nil, false, fmt.Errorf("unknown @tailwind layer %q", name)
		}
	}

	return out.Bytes(), found, nil
}

// readDirectiveName consumes "<ws> ident <ws> ;" after @tailwind.
func readDirectiveName(lexer *css.Lexer) (string, error) {
	name := ""
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.IdentToken:
			if name != "" {
				return "", fmt.Errorf("@tailwind takes one layer name, got %q and %q", name, text)
			}
			name = string(text)
		case css.SemicolonToken:
			if name == "" {
				return "", fmt.Errorf("@tailwind directive without a layer name")
			}
			return name, nil
		case css.ErrorToken:
			if name != "" {
				return name, nil
			}
			return "", fmt.Errorf("unterminated @tailwind directive")
		default:
			return "", fmt.Errorf("unexpected %q in @tailwind directive", text)
		}
	}
}

// DefinedClasses returns the sorted class names that appear in selectors
// of an input stylesheet.
func DefinedClasses(input []byte) []string {
	seen := map[string]bool{}
	lexer := css.NewLexer(parse.NewInputBytes(input))

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		// ".5rem" lexes as a number, so a '.' delimiter followed by an
		// identifier is always a class selector.
		if tt == css.DelimToken && len(text) == 1 && text[0] == '.' {
			if next, name := lexer.Next(); next == css.IdentToken {
				seen[string(name)] = true
			}
		}
	}

	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

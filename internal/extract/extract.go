// Package extract pulls candidate class tokens out of template text.
//
// Extraction is lexical: any run of class-like characters is a candidate,
// whether it sits in a class attribute, a string literal or plain text.
// Candidates that are not utilities are dropped later by the resolver, so
// over-matching only costs a lookup.
package extract

import "unicode/utf8"

// MaxTokenLength caps candidate length. Longer runs are minified data,
// not class names.
const MaxTokenLength = 256

// Candidates returns the distinct candidate tokens in content, in order of
// first occurrence. Bracketed arbitrary values ("text-[10px]") stay intact.
func Candidates(content []byte) []string {
	var out []string
	seen := make(map[string]bool)

	emit := func(tok []byte) {
		tok = trimToken(tok)
		if len(tok) == 0 || len(tok) > MaxTokenLength || !hasLetter(tok) {
			return
		}
		s := string(tok)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	start := -1
	depth := 0
	for i := 0; i < len(content); i++ {
		c := content[i]

		if depth > 0 {
			switch {
			case c == '[':
				depth++
			case c == ']':
				depth--
			case isBreak(c):
				// Unterminated bracket: not a class.
				start, depth = -1, 0
			}
			continue
		}

		switch {
		case c == '[':
			if start < 0 {
				start = i
			}
			depth = 1
		case isClassByte(c):
			if start < 0 {
				start = i
			}
		default:
			if start >= 0 {
				emit(content[start:i])
				start = -1
			}
		}
	}
	if start >= 0 && depth == 0 {
		emit(content[start:])
	}
	return out
}

// Tokens splits a class attribute value on whitespace.
func Tokens(value string) []Token {
	var out []Token
	start := -1
	for i := 0; i <= len(value); i++ {
		if i == len(value) || isSpace(value[i]) {
			if start >= 0 {
				out = append(out, Token{Text: value[start:i], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// Token is a class token and its byte offset within the scanned value.
type Token struct {
	Text   string
	Offset int
}

func isClassByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == ':', c == '.', c == '/', c == '%', c == '!':
		return true
	case c >= utf8.RuneSelf:
		return true
	}
	return false
}

// isBreak ends an arbitrary value. Quotes end it because a bracket inside
// a string literal is JS or JSON array syntax.
func isBreak(c byte) bool {
	return isSpace(c) || c == '"' || c == '\'' || c == '`' || c == '<' || c == '>'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// trimToken drops punctuation that ends sentences or key paths.
func trimToken(tok []byte) []byte {
	for len(tok) > 0 {
		switch tok[len(tok)-1] {
		case '.', ':', '!', '/':
			tok = tok[:len(tok)-1]
			continue
		}
		break
	}
	for len(tok) > 0 && (tok[0] == ':' || tok[0] == '.' || tok[0] == '/') {
		tok = tok[1:]
	}
	return tok
}

func hasLetter(tok []byte) bool {
	for _, c := range tok {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

package stylesheet

import (
	"fmt"
	"strings"
)

// ClassSelector returns ".class" with the class name escaped.
func ClassSelector(class string) string {
	return "." + EscapeClass(class)
}

// EscapeClass escapes a class name for use in a selector. Characters other
// than letters, digits, "-" and "_" (and non-ASCII) get a backslash; a
// leading digit uses a hex escape as CSS requires.
func EscapeClass(class string) string {
	var b strings.Builder
	b.Grow(len(class) + 8)

	for i, r := range class {
		switch {
		case r >= '0' && r <= '9':
			if i == 0 || (i == 1 && class[0] == '-') {
				fmt.Fprintf(&b, "\\%x ", r)
				continue
			}
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r >= 0x80:
			b.WriteRune(r)
		case r == '-':
			if i == 0 && len(class) == 1 {
				b.WriteString("\\-")
				continue
			}
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnescapeClass reverses EscapeClass.
func UnescapeClass(escaped string) string {
	var b strings.Builder
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' || i == len(escaped)-1 {
			b.WriteByte(c)
			continue
		}

		// Hex escape: up to six hex digits and an optional trailing space.
		j := i + 1
		for j < len(escaped) && j-i <= 6 && isHex(escaped[j]) {
			j++
		}
		if j > i+1 {
			var r rune
			fmt.Sscanf(escaped[i+1:j], "%x", &r)
			b.WriteRune(r)
			if j < len(escaped) && escaped[j] == ' ' {
				j++
			}
			i = j - 1
			continue
		}

		i++
		b.WriteByte(escaped[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Package diag defines the diagnostic kinds reported while loading a
// configuration descriptor and building a stylesheet.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic kinds. Every Diagnostic carries one of these so callers can
// test for a failure class with errors.Is.
var (
	ErrInvalidGlob       = errors.New("malformed content glob")
	ErrInvalidClass      = errors.New("invalid class name")
	ErrDanglingKeyframes = errors.New("animation references undefined keyframes")
	ErrInvalidKeyframes  = errors.New("invalid keyframes")
	ErrInvalidTheme      = errors.New("invalid theme value")
	ErrDuplicateConfig   = errors.New("multiple configuration sources")
	ErrUnknownPlugin     = errors.New("unknown plugin")
	ErrUnsupportedSyntax = errors.New("unsupported configuration syntax")
)

// Diagnostic identifies one offending configuration entry.
type Diagnostic struct {
	Kind    error  // One of the Err* sentinels
	Source  string // Config file the entry came from, if known
	Entry   string // "safelist[5]", "theme.extend.animation.toast-progress"
	Line    int    // 1-based, 0 when unknown
	Column  int    // 1-based, 0 when unknown
	Message string
}

// Location renders "source:line:col" with the parts that are known.
func (d Diagnostic) Location() string {
	loc := d.Source
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, d.Line, d.Column)
	}
	return loc
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if loc := d.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	if d.Entry != "" {
		b.WriteString(d.Entry)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Error aggregates every diagnostic found in one pass.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "no diagnostics"
	case 1:
		return e.Diagnostics[0].String()
	}
	lines := make([]string, 0, len(e.Diagnostics)+1)
	lines = append(lines, fmt.Sprintf("%d configuration errors:", len(e.Diagnostics)))
	for _, d := range e.Diagnostics {
		lines = append(lines, "  "+d.String())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the diagnostic kinds to errors.Is.
func (e *Error) Unwrap() []error {
	kinds := make([]error, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		if d.Kind != nil {
			kinds = append(kinds, d.Kind)
		}
	}
	return kinds
}

// List collects diagnostics and turns them into an error.
type List []Diagnostic

// Add appends a diagnostic with a formatted message.
func (l *List) Add(kind error, entry, format string, args ...any) {
	*l = append(*l, Diagnostic{Kind: kind, Entry: entry, Message: fmt.Sprintf(format, args...)})
}

// WithSource fills in Source for every diagnostic that has none.
func (l List) WithSource(source string) List {
	for i := range l {
		if l[i].Source == "" {
			l[i].Source = source
		}
	}
	return l
}

// Err returns nil for an empty list and an *Error otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return &Error{Diagnostics: append([]Diagnostic(nil), l...)}
}

// From extracts the diagnostics carried by err, if any.
func From(err error) []Diagnostic {
	var de *Error
	if errors.As(err, &de) {
		return de.Diagnostics
	}
	return nil
}

// Package config loads the configuration descriptor: which template files
// to scan, which classes to always keep, and how to extend the theme.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yacobolo/twgen/internal/diag"
)

// Descriptor is the parsed configuration. It is built once per build and
// not mutated afterwards.
type Descriptor struct {
	Sources  []string // Files the descriptor was loaded from, in load order
	Content  []string // Glob patterns, "./" stripped, "!" prefix excludes
	Safelist []string // Class tokens kept regardless of scan results
	Theme    Theme
	Plugins  []string // Plugin names, applied in order
	Warnings []string // Keys that were recognised but ignored
}

// Theme holds the raw theme sections as written in the config file.
// Section values are normalised by the theme package, which knows their shape.
type Theme struct {
	Sections map[string]any // theme.<section>: replaces the base section
	Extend   map[string]any // theme.extend.<section>: merged into the base section
}

// Source returns the primary config path for diagnostics.
func (d *Descriptor) Source() string {
	if len(d.Sources) == 0 {
		return ""
	}
	return d.Sources[len(d.Sources)-1]
}

// ignoredKeys are top-level keys of the upstream config format that twgen
// accepts without acting on them.
var ignoredKeys = map[string]bool{
	"darkMode":    true,
	"prefix":      true,
	"important":   true,
	"separator":   true,
	"corePlugins": true,
	"presets":     true,
	"future":      true,
}

// decode converts a raw config map into a Descriptor. Every problem is
// reported; a non-empty list means the descriptor must not be used.
func decode(raw map[string]any, source string) (*Descriptor, diag.List) {
	var diags diag.List
	d := &Descriptor{
		Sources: []string{source},
		Theme: Theme{
			Sections: map[string]any{},
			Extend:   map[string]any{},
		},
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch key {
		case "content":
			d.Content = decodeContent(value, &diags)
		case "safelist":
			d.Safelist = decodeStrings(value, "safelist", &diags)
		case "plugins":
			d.Plugins = decodeStrings(value, "plugins", &diags)
		case "theme":
			decodeTheme(value, &d.Theme, &diags)
		default:
			if ignoredKeys[key] {
				d.Warnings = append(d.Warnings, fmt.Sprintf("ignoring unsupported option %q", key))
				continue
			}
			diags.Add(diag.ErrUnsupportedSyntax, key, "unknown configuration key")
		}
	}

	d.Safelist = dedupe(d.Safelist)
	d.Plugins = dedupe(d.Plugins)

	return d, diags.WithSource(source)
}

// decodeContent accepts a single glob, a list of globs, or an object with a
// "files" list.
func decodeContent(value any, diags *diag.List) []string {
	if obj, ok := value.(map[string]any); ok {
		files, found := obj["files"]
		if !found {
			diags.Add(diag.ErrUnsupportedSyntax, "content", "content object must have a \"files\" list")
			return nil
		}
		value = files
	}

	patterns := decodeStrings(value, "content", diags)
	result := make([]string, 0, len(patterns))
	for i, pattern := range patterns {
		normalized := NormalizePattern(pattern)
		if normalized == "" {
			diags.Add(diag.ErrInvalidGlob, fmt.Sprintf("content[%d]", i), "empty glob pattern")
			continue
		}
		if !doublestar.ValidatePattern(strings.TrimPrefix(normalized, "!")) {
			diags.Add(diag.ErrInvalidGlob, fmt.Sprintf("content[%d]", i), "malformed glob pattern %q", pattern)
			continue
		}
		result = append(result, normalized)
	}
	return dedupe(result)
}

// NormalizePattern strips "./" so patterns match paths relative to the root.
// An exclusion prefix "!" is kept.
func NormalizePattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	negate := strings.HasPrefix(pattern, "!")
	pattern = strings.TrimPrefix(pattern, "!")
	pattern = strings.ReplaceAll(pattern, "\\", "/")
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}
	if pattern == "" {
		return ""
	}
	if negate {
		return "!" + pattern
	}
	return pattern
}

func decodeStrings(value any, entry string, diags *diag.List) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				diags.Add(diag.ErrUnsupportedSyntax, fmt.Sprintf("%s[%d]", entry, i), "expected a string, got %T", item)
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		diags.Add(diag.ErrUnsupportedSyntax, entry, "expected a list of strings, got %T", value)
		return nil
	}
}

func decodeTheme(value any, theme *Theme, diags *diag.List) {
	obj, ok := value.(map[string]any)
	if !ok {
		if value != nil {
			diags.Add(diag.ErrInvalidTheme, "theme", "expected an object, got %T", value)
		}
		return
	}

	for section, sectionValue := range obj {
		if section != "extend" {
			theme.Sections[section] = sectionValue
			continue
		}
		extend, ok := sectionValue.(map[string]any)
		if !ok {
			diags.Add(diag.ErrInvalidTheme, "theme.extend", "expected an object, got %T", sectionValue)
			continue
		}
		for name, v := range extend {
			theme.Extend[name] = v
		}
	}
}

// dedupe removes repeated entries, keeping the first occurrence.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

package theme

import (
	"fmt"
	"sort"

	"github.com/yacobolo/twgen/internal/config"
	"github.com/yacobolo/twgen/internal/diag"
)

// Resolve applies the configured theme over base and validates the result.
// Top-level sections replace the base section, extend sections are merged
// into it key by key with the extension winning. base is not modified.
//
// Unknown sections are returned as warnings. Every invalid entry and every
// animation without matching keyframes is reported in the returned error.
func Resolve(base *Theme, cfg config.Theme) (*Theme, []string, error) {
	if base == nil {
		base = Default()
	}
	t := base.Clone()

	var diags diag.List
	var warnings []string
	origins := map[string]string{}

	for _, name := range sortedKeys(cfg.Sections) {
		entry := "theme." + name
		if !t.apply(name, cfg.Sections[name], entry, true, origins, &diags) {
			warnings = append(warnings, fmt.Sprintf("%s: unsupported theme section ignored", entry))
		}
	}
	for _, name := range sortedKeys(cfg.Extend) {
		entry := "theme.extend." + name
		if !t.apply(name, cfg.Extend[name], entry, false, origins, &diags) {
			warnings = append(warnings, fmt.Sprintf("%s: unsupported theme section ignored", entry))
		}
	}

	t.validateAnimations(origins, &diags)

	if err := diags.Err(); err != nil {
		return nil, warnings, err
	}
	return t, warnings, nil
}

// apply merges one raw section into t. It reports false for sections the
// resolver does not know.
func (t *Theme) apply(name string, value any, entry string, replace bool, origins map[string]string, diags *diag.List) bool {
	switch name {
	case SectionColors:
		t.Colors = mergeSection(t.Colors, normalizeStrings(value, entry, true, diags), replace)
	case SectionSpacing:
		t.Spacing = mergeSection(t.Spacing, normalizeStrings(value, entry, false, diags), replace)
	case SectionFontWeight:
		t.FontWeight = mergeSection(t.FontWeight, normalizeStrings(value, entry, false, diags), replace)
	case SectionBorderRadius:
		t.BorderRadius = mergeSection(t.BorderRadius, normalizeStrings(value, entry, false, diags), replace)
	case SectionBorderWidth:
		t.BorderWidth = mergeSection(t.BorderWidth, normalizeStrings(value, entry, false, diags), replace)
	case SectionOpacity:
		t.Opacity = mergeSection(t.Opacity, normalizeStrings(value, entry, false, diags), replace)
	case SectionZIndex:
		t.ZIndex = mergeSection(t.ZIndex, normalizeStrings(value, entry, false, diags), replace)
	case SectionScreens:
		t.Screens = mergeSection(t.Screens, normalizeStrings(value, entry, false, diags), replace)
	case SectionFontSize:
		t.FontSize = mergeSection(t.FontSize, normalizeFontSize(value, entry, diags), replace)
	case SectionKeyframes:
		t.Keyframes = mergeSection(t.Keyframes, normalizeKeyframes(value, entry, diags), replace)
	case SectionAnimation:
		anims := normalizeStrings(value, entry, false, diags)
		if replace {
			for k := range origins {
				delete(origins, k)
			}
		}
		for k := range anims {
			origins[k] = entry + "." + k
		}
		t.Animation = mergeSection(t.Animation, anims, replace)
	default:
		return false
	}
	return true
}

// validateAnimations checks every configured shorthand parses and that each
// keyframe name it references is defined. Base animations whose keyframes
// were replaced by a keyframes override are dropped.
func (t *Theme) validateAnimations(origins map[string]string, diags *diag.List) {
	names := make([]string, 0, len(t.Animation))
	for name := range t.Animation {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, configured := origins[name]
		if !configured {
			entry = "theme.animation." + name
		}

		refs, err := KeyframeNames(t.Animation[name])
		if err != nil {
			diags.Add(diag.ErrInvalidTheme, entry, "%v", err)
			continue
		}
		for _, ref := range refs {
			if _, ok := t.Keyframes[ref]; ok {
				continue
			}
			if !configured {
				delete(t.Animation, name)
				break
			}
			diags.Add(diag.ErrDanglingKeyframes, entry, "keyframes %q are not defined", ref)
		}
	}
}

func mergeSection[V any](dst, src map[string]V, replace bool) map[string]V {
	if src == nil {
		return dst
	}
	if replace || dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

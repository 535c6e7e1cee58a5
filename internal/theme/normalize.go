package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/twgen/internal/diag"
	"github.com/yacobolo/twgen/internal/stylesheet"
)

// scalar renders a config leaf as a CSS token string.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// normalizeStrings converts a section of plain values. With flatten set,
// nested objects become "parent-child" keys and DEFAULT maps to the parent.
func normalizeStrings(value any, entry string, flatten bool, diags *diag.List) map[string]string {
	obj, ok := value.(map[string]any)
	if !ok {
		diags.Add(diag.ErrInvalidTheme, entry, "expected an object, got %T", value)
		return nil
	}
	out := make(map[string]string, len(obj))
	flattenInto(out, "", obj, entry, flatten, diags)
	return out
}

func flattenInto(out map[string]string, prefix string, obj map[string]any, entry string, flatten bool, diags *diag.List) {
	for _, key := range sortedKeys(obj) {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
			if key == "DEFAULT" {
				name = prefix
			}
		}
		path := entry + "." + key

		switch v := obj[key].(type) {
		case map[string]any:
			if !flatten {
				diags.Add(diag.ErrInvalidTheme, path, "nested objects are not allowed here")
				continue
			}
			flattenInto(out, name, v, path, flatten, diags)
		default:
			s, ok := scalar(v)
			if !ok {
				diags.Add(diag.ErrInvalidTheme, path, "expected a string or number, got %T", v)
				continue
			}
			out[name] = s
		}
	}
}

// normalizeFontSize accepts "1rem", ["1rem", "1.5rem"] and
// ["1rem", {lineHeight: "1.5rem"}].
func normalizeFontSize(value any, entry string, diags *diag.List) map[string]FontSize {
	obj, ok := value.(map[string]any)
	if !ok {
		diags.Add(diag.ErrInvalidTheme, entry, "expected an object, got %T", value)
		return nil
	}

	out := make(map[string]FontSize, len(obj))
	for _, key := range sortedKeys(obj) {
		path := entry + "." + key
		switch v := obj[key].(type) {
		case []any:
			if len(v) == 0 || len(v) > 2 {
				diags.Add(diag.ErrInvalidTheme, path, "expected [size] or [size, lineHeight]")
				continue
			}
			size, ok := scalar(v[0])
			if !ok {
				diags.Add(diag.ErrInvalidTheme, path+"[0]", "expected a size, got %T", v[0])
				continue
			}
			fs := FontSize{Size: size}
			if len(v) == 2 {
				switch lh := v[1].(type) {
				case map[string]any:
					if fs.LineHeight, ok = scalar(lh["lineHeight"]); !ok {
						diags.Add(diag.ErrInvalidTheme, path+"[1].lineHeight", "expected a line height, got %T", lh["lineHeight"])
						continue
					}
				default:
					if fs.LineHeight, ok = scalar(lh); !ok {
						diags.Add(diag.ErrInvalidTheme, path+"[1]", "expected a line height, got %T", lh)
						continue
					}
				}
			}
			out[key] = fs
		default:
			size, ok := scalar(v)
			if !ok {
				diags.Add(diag.ErrInvalidTheme, path, "expected a size, got %T", v)
				continue
			}
			out[key] = FontSize{Size: size}
		}
	}
	return out
}

// normalizeKeyframes validates every keyframe set in the section.
func normalizeKeyframes(value any, entry string, diags *diag.List) map[string]Keyframes {
	obj, ok := value.(map[string]any)
	if !ok {
		diags.Add(diag.ErrInvalidKeyframes, entry, "expected an object, got %T", value)
		return nil
	}

	out := make(map[string]Keyframes, len(obj))
	for _, name := range sortedKeys(obj) {
		path := entry + "." + name
		kf, ok := normalizeKeyframeSet(obj[name], path, diags)
		if ok {
			out[name] = kf
		}
	}
	return out
}

type offsetStop struct {
	offset float64
	stop   stylesheet.Stop
}

func normalizeKeyframeSet(value any, entry string, diags *diag.List) (Keyframes, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		diags.Add(diag.ErrInvalidKeyframes, entry, "expected an object of stops, got %T", value)
		return Keyframes{}, false
	}
	if len(obj) == 0 {
		diags.Add(diag.ErrInvalidKeyframes, entry, "at least one stop is required")
		return Keyframes{}, false
	}

	before := len(*diags)
	stops := make([]offsetStop, 0, len(obj))
	for _, key := range sortedKeys(obj) {
		path := entry + "." + key

		selectors, offset, err := parseStopSelectors(key)
		if err != nil {
			diags.Add(diag.ErrInvalidKeyframes, path, "%v", err)
			continue
		}

		props, ok := obj[key].(map[string]any)
		if !ok {
			diags.Add(diag.ErrInvalidKeyframes, path, "expected an object of declarations, got %T", obj[key])
			continue
		}

		decls := make([]stylesheet.Declaration, 0, len(props))
		for _, prop := range sortedKeys(props) {
			val, ok := scalar(props[prop])
			if !ok || strings.TrimSpace(val) == "" {
				diags.Add(diag.ErrInvalidKeyframes, path+"."+prop, "expected a non-empty CSS value, got %v", props[prop])
				continue
			}
			decls = append(decls, stylesheet.Declaration{Property: kebab(prop), Value: val})
		}
		sort.SliceStable(decls, func(i, j int) bool { return decls[i].Property < decls[j].Property })

		stops = append(stops, offsetStop{offset: offset, stop: stylesheet.Stop{Selectors: selectors, Declarations: decls}})
	}
	if len(*diags) > before {
		return Keyframes{}, false
	}

	sort.SliceStable(stops, func(i, j int) bool { return stops[i].offset < stops[j].offset })
	out := Keyframes{Stops: make([]stylesheet.Stop, len(stops))}
	for i, s := range stops {
		out.Stops[i] = s.stop
	}
	return out, true
}

// parseStopSelectors splits "0%, 100%" and returns the lowest offset.
func parseStopSelectors(key string) ([]string, float64, error) {
	parts := strings.Split(key, ",")
	selectors := make([]string, 0, len(parts))
	lowest := 101.0

	for _, part := range parts {
		sel := strings.TrimSpace(part)
		var offset float64
		switch strings.ToLower(sel) {
		case "from":
			offset = 0
		case "to":
			offset = 100
		default:
			num, ok := strings.CutSuffix(sel, "%")
			if !ok {
				return nil, 0, fmt.Errorf("stop %q must be a percentage, from or to", sel)
			}
			f, err := strconv.ParseFloat(num, 64)
			if err != nil || f < 0 || f > 100 {
				return nil, 0, fmt.Errorf("stop %q is outside 0%%..100%%", sel)
			}
			offset = f
		}
		if offset < lowest {
			lowest = offset
		}
		selectors = append(selectors, sel)
	}
	return selectors, lowest, nil
}

// kebab converts camelCase property names ("animationTimingFunction").
func kebab(prop string) string {
	if strings.ContainsRune(prop, '-') {
		return prop
	}
	var b strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package config

// Merge layers overlay on top of base and returns a new descriptor.
//
// Lists (content, safelist, plugins) are unioned in load order. Theme
// sections and extensions merge key by key; on collision the overlay wins,
// recursively for nested objects. Neither input is modified.
func Merge(base, overlay *Descriptor) *Descriptor {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	return &Descriptor{
		Sources:  concat(base.Sources, overlay.Sources),
		Content:  dedupe(concat(base.Content, overlay.Content)),
		Safelist: dedupe(concat(base.Safelist, overlay.Safelist)),
		Plugins:  dedupe(concat(base.Plugins, overlay.Plugins)),
		Warnings: concat(base.Warnings, overlay.Warnings),
		Theme: Theme{
			Sections: mergeMaps(base.Theme.Sections, overlay.Theme.Sections),
			Extend:   mergeMaps(base.Theme.Extend, overlay.Theme.Extend),
		},
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// mergeMaps deep-merges two raw maps into a fresh map.
func mergeMaps(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range overlay {
		existing, ok := out[k].(map[string]any)
		incoming, isMap := v.(map[string]any)
		if ok && isMap {
			out[k] = mergeMaps(existing, incoming)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return mergeMaps(val, nil)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

package theme

import (
	"strconv"

	"github.com/yacobolo/twgen/internal/stylesheet"
)

var palette = map[string]map[string]string{
	"gray": {
		"50": "#f9fafb", "100": "#f3f4f6", "200": "#e5e7eb", "300": "#d1d5db", "400": "#9ca3af",
		"500": "#6b7280", "600": "#4b5563", "700": "#374151", "800": "#1f2937", "900": "#111827", "950": "#030712",
	},
	"red": {
		"50": "#fef2f2", "100": "#fee2e2", "200": "#fecaca", "300": "#fca5a5", "400": "#f87171",
		"500": "#ef4444", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b", "900": "#7f1d1d", "950": "#450a0a",
	},
	"yellow": {
		"50": "#fefce8", "100": "#fef9c3", "200": "#fef08a", "300": "#fde047", "400": "#facc15",
		"500": "#eab308", "600": "#ca8a04", "700": "#a16207", "800": "#854d0e", "900": "#713f12", "950": "#422006",
	},
	"green": {
		"50": "#f0fdf4", "100": "#dcfce7", "200": "#bbf7d0", "300": "#86efac", "400": "#4ade80",
		"500": "#22c55e", "600": "#16a34a", "700": "#15803d", "800": "#166534", "900": "#14532d", "950": "#052e16",
	},
	"blue": {
		"50": "#eff6ff", "100": "#dbeafe", "200": "#bfdbfe", "300": "#93c5fd", "400": "#60a5fa",
		"500": "#3b82f6", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af", "900": "#1e3a8a", "950": "#172554",
	},
}

var spacingSteps = []string{
	"0.5", "1", "1.5", "2", "2.5", "3", "3.5", "4", "5", "6", "7", "8", "9", "10", "11", "12",
	"14", "16", "20", "24", "28", "32", "36", "40", "44", "48", "52", "56", "60", "64", "72", "80", "96",
}

// Default returns a fresh copy of the base theme.
func Default() *Theme {
	t := &Theme{
		Colors: map[string]string{
			"inherit":     "inherit",
			"current":     "currentColor",
			"transparent": "transparent",
			"black":       "#000",
			"white":       "#fff",
		},
		Spacing: map[string]string{"0": "0px", "px": "1px"},
		FontSize: map[string]FontSize{
			"xs":   {"0.75rem", "1rem"},
			"sm":   {"0.875rem", "1.25rem"},
			"base": {"1rem", "1.5rem"},
			"lg":   {"1.125rem", "1.75rem"},
			"xl":   {"1.25rem", "1.75rem"},
			"2xl":  {"1.5rem", "2rem"},
			"3xl":  {"1.875rem", "2.25rem"},
			"4xl":  {"2.25rem", "2.5rem"},
			"5xl":  {"3rem", "1"},
			"6xl":  {"3.75rem", "1"},
			"7xl":  {"4.5rem", "1"},
			"8xl":  {"6rem", "1"},
			"9xl":  {"8rem", "1"},
		},
		FontWeight: map[string]string{
			"thin":       "100",
			"extralight": "200",
			"light":      "300",
			"normal":     "400",
			"medium":     "500",
			"semibold":   "600",
			"bold":       "700",
			"extrabold":  "800",
			"black":      "900",
		},
		BorderRadius: map[string]string{
			"none":    "0px",
			"sm":      "0.125rem",
			"DEFAULT": "0.25rem",
			"md":      "0.375rem",
			"lg":      "0.5rem",
			"xl":      "0.75rem",
			"2xl":     "1rem",
			"3xl":     "1.5rem",
			"full":    "9999px",
		},
		BorderWidth: map[string]string{
			"DEFAULT": "1px",
			"0":       "0px",
			"2":       "2px",
			"4":       "4px",
			"8":       "8px",
		},
		Opacity: map[string]string{},
		ZIndex: map[string]string{
			"0": "0", "10": "10", "20": "20", "30": "30", "40": "40", "50": "50", "auto": "auto",
		},
		Screens: map[string]string{
			"sm":  "640px",
			"md":  "768px",
			"lg":  "1024px",
			"xl":  "1280px",
			"2xl": "1536px",
		},
		Animation: map[string]string{
			"none":   "none",
			"spin":   "spin 1s linear infinite",
			"ping":   "ping 1s cubic-bezier(0, 0, 0.2, 1) infinite",
			"pulse":  "pulse 2s cubic-bezier(0.4, 0, 0.6, 1) infinite",
			"bounce": "bounce 1s infinite",
		},
		Keyframes: map[string]Keyframes{
			"spin": {Stops: []stylesheet.Stop{
				{Selectors: []string{"to"}, Declarations: []stylesheet.Declaration{{Property: "transform", Value: "rotate(360deg)"}}},
			}},
			"ping": {Stops: []stylesheet.Stop{
				{Selectors: []string{"75%", "100%"}, Declarations: []stylesheet.Declaration{
					{Property: "opacity", Value: "0"},
					{Property: "transform", Value: "scale(2)"},
				}},
			}},
			"pulse": {Stops: []stylesheet.Stop{
				{Selectors: []string{"50%"}, Declarations: []stylesheet.Declaration{{Property: "opacity", Value: ".5"}}},
			}},
			"bounce": {Stops: []stylesheet.Stop{
				{Selectors: []string{"0%", "100%"}, Declarations: []stylesheet.Declaration{
					{Property: "animation-timing-function", Value: "cubic-bezier(0.8, 0, 1, 1)"},
					{Property: "transform", Value: "translateY(-25%)"},
				}},
				{Selectors: []string{"50%"}, Declarations: []stylesheet.Declaration{
					{Property: "animation-timing-function", Value: "cubic-bezier(0, 0, 0.2, 1)"},
					{Property: "transform", Value: "none"},
				}},
			}},
		},
	}

	for name, shades := range palette {
		for shade, hex := range shades {
			t.Colors[name+"-"+shade] = hex
		}
	}
	for _, step := range spacingSteps {
		n, _ := strconv.ParseFloat(step, 64)
		t.Spacing[step] = strconv.FormatFloat(n/4, 'f', -1, 64) + "rem"
	}
	for i := 0; i <= 100; i += 5 {
		key := strconv.Itoa(i)
		t.Opacity[key] = strconv.FormatFloat(float64(i)/100, 'f', -1, 64)
	}

	return t
}

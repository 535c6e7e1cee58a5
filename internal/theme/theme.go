// Package theme holds design tokens and merges configuration over the base
// theme.
package theme

import (
	"github.com/yacobolo/twgen/internal/stylesheet"
)

// FontSize pairs a font size with its default line height.
type FontSize struct {
	Size       string
	LineHeight string
}

// Keyframes is a validated keyframe sequence, stops ordered by offset.
type Keyframes struct {
	Stops []stylesheet.Stop
}

// Theme is the resolved set of design tokens utilities draw from.
type Theme struct {
	Colors       map[string]string // "red-500" -> "#ef4444"
	Spacing      map[string]string
	FontSize     map[string]FontSize
	FontWeight   map[string]string
	BorderRadius map[string]string // "DEFAULT" is the bare utility
	BorderWidth  map[string]string
	Opacity      map[string]string
	ZIndex       map[string]string
	Screens      map[string]string
	Animation    map[string]string // name -> shorthand
	Keyframes    map[string]Keyframes
}

// Section names as written in configuration files.
const (
	SectionColors       = "colors"
	SectionSpacing      = "spacing"
	SectionFontSize     = "fontSize"
	SectionFontWeight   = "fontWeight"
	SectionBorderRadius = "borderRadius"
	SectionBorderWidth  = "borderWidth"
	SectionOpacity      = "opacity"
	SectionZIndex       = "zIndex"
	SectionScreens      = "screens"
	SectionAnimation    = "animation"
	SectionKeyframes    = "keyframes"
)

// Clone returns a deep copy.
func (t *Theme) Clone() *Theme {
	out := &Theme{
		Colors:       cloneStrings(t.Colors),
		Spacing:      cloneStrings(t.Spacing),
		FontSize:     make(map[string]FontSize, len(t.FontSize)),
		FontWeight:   cloneStrings(t.FontWeight),
		BorderRadius: cloneStrings(t.BorderRadius),
		BorderWidth:  cloneStrings(t.BorderWidth),
		Opacity:      cloneStrings(t.Opacity),
		ZIndex:       cloneStrings(t.ZIndex),
		Screens:      cloneStrings(t.Screens),
		Animation:    cloneStrings(t.Animation),
		Keyframes:    make(map[string]Keyframes, len(t.Keyframes)),
	}
	for k, v := range t.FontSize {
		out.FontSize[k] = v
	}
	for name, kf := range t.Keyframes {
		stops := make([]stylesheet.Stop, len(kf.Stops))
		for i, stop := range kf.Stops {
			stops[i] = stylesheet.Stop{
				Selectors:    append([]string(nil), stop.Selectors...),
				Declarations: append([]stylesheet.Declaration(nil), stop.Declarations...),
			}
		}
		out.Keyframes[name] = Keyframes{Stops: stops}
	}
	return out
}

// KeyframesBlock returns the named keyframes as a stylesheet block.
func (t *Theme) KeyframesBlock(name string) (stylesheet.Keyframes, bool) {
	kf, ok := t.Keyframes[name]
	if !ok {
		return stylesheet.Keyframes{}, false
	}
	return stylesheet.Keyframes{Name: name, Stops: kf.Stops}, true
}

func cloneStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

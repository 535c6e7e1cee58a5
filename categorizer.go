package twgen

import (
	"sort"
	"strings"

	"github.com/yacobolo/twgen/internal/stylesheet"
)

// propertyCategories maps emitted CSS properties to report categories
var propertyCategories = map[string]PropertyCategory{
	// Visual
	"color":            CategoryVisual,
	"background-color": CategoryVisual,
	"background-image": CategoryVisual,
	"background-size":  CategoryVisual,
	"border-color":     CategoryVisual,
	"border-radius":    CategoryVisual,
	"border-width":     CategoryVisual,
	"opacity":          CategoryVisual,
	"visibility":       CategoryVisual,
	"cursor":           CategoryVisual,

	// Typography
	"font-family":          CategoryTypography,
	"font-size":            CategoryTypography,
	"font-style":           CategoryTypography,
	"font-weight":          CategoryTypography,
	"line-height":          CategoryTypography,
	"text-align":           CategoryTypography,
	"text-decoration-line": CategoryTypography,
	"text-overflow":        CategoryTypography,
	"text-transform":       CategoryTypography,
	"white-space":          CategoryTypography,

	// Effects
	"animation":                 CategoryEffects,
	"animation-timing-function": CategoryEffects,
	"transform":                 CategoryEffects,
	"transition":                CategoryEffects,
}

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}

	// Vendor-prefixed properties
	if strings.HasPrefix(name, "-webkit-") || strings.HasPrefix(name, "-moz-") || strings.HasPrefix(name, "-ms-") {
		return CategoryInternal
	}
	if strings.HasPrefix(name, "border-") || strings.HasPrefix(name, "background-") {
		return CategoryVisual
	}
	if strings.HasPrefix(name, "animation-") || strings.HasPrefix(name, "transition-") {
		return CategoryEffects
	}

	// Display, position, sizing, spacing and everything else
	return CategoryLayout
}

// categorizeRules counts emitted declarations per category.
func categorizeRules(rules []stylesheet.Rule) map[PropertyCategory]int {
	counts := make(map[PropertyCategory]int)
	for _, rule := range rules {
		for _, d := range rule.Declarations {
			counts[categorizeProperty(d.Property)]++
		}
	}
	return counts
}

// sortedCategories returns the categories present in counts, most
// declarations first.
func sortedCategories(counts map[PropertyCategory]int) []PropertyCategory {
	cats := make([]PropertyCategory, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

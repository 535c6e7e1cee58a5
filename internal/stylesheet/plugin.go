package stylesheet

import (
	"sort"
	"strings"
)

// Plugin transforms the stylesheet after rules are generated. Plugins run
// in configuration order.
type Plugin interface {
	Name() string
	Apply(s *Stylesheet) error
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc struct {
	ID string
	Fn func(s *Stylesheet) error
}

// Name implements Plugin.
func (p PluginFunc) Name() string { return p.ID }

// Apply implements Plugin.
func (p PluginFunc) Apply(s *Stylesheet) error { return p.Fn(s) }

var builtins = map[string]func() Plugin{
	"reduced-motion": func() Plugin { return reducedMotion{} },
	"important":      func() Plugin { return important{} },
}

// LookupPlugin returns the built-in plugin registered under name.
func LookupPlugin(name string) (Plugin, bool) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// PluginNames lists the built-in plugin names.
func PluginNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reducedMotion disables every generated animation for users who ask the
// browser for reduced motion.
type reducedMotion struct{}

func (reducedMotion) Name() string { return "reduced-motion" }

func (reducedMotion) Apply(s *Stylesheet) error {
	var extra []Rule
	for _, rule := range s.Rules {
		if rule.Media != "" || !hasProperty(rule.Declarations, "animation") {
			continue
		}
		extra = append(extra, Rule{
			Class:        rule.Class,
			Selector:     rule.Selector,
			Media:        "(prefers-reduced-motion: reduce)",
			Declarations: []Declaration{{Property: "animation", Value: "none"}},
		})
	}
	s.Rules = append(s.Rules, extra...)
	return nil
}

// important marks every utility declaration !important.
type important struct{}

func (important) Name() string { return "important" }

func (important) Apply(s *Stylesheet) error {
	for i := range s.Rules {
		for j := range s.Rules[i].Declarations {
			s.Rules[i].Declarations[j].Important = true
		}
	}
	return nil
}

func hasProperty(decls []Declaration, property string) bool {
	for _, d := range decls {
		if strings.EqualFold(d.Property, property) {
			return true
		}
	}
	return false
}

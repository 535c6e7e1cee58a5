package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/twgen"
	"github.com/yacobolo/twgen/internal/theme"
)

// resolvedConfig is the YAML document printed by resolve.
type resolvedConfig struct {
	Sources  []string      `yaml:"sources"`
	Content  []string      `yaml:"content"`
	Files    []string      `yaml:"files"`
	Safelist []string      `yaml:"safelist"`
	Plugins  []string      `yaml:"plugins"`
	Theme    resolvedTheme `yaml:"theme"`
}

type resolvedTheme struct {
	Colors       map[string]string         `yaml:"colors"`
	Spacing      map[string]string         `yaml:"spacing"`
	FontSize     map[string][]string       `yaml:"fontSize"`
	FontWeight   map[string]string         `yaml:"fontWeight"`
	BorderRadius map[string]string         `yaml:"borderRadius"`
	BorderWidth  map[string]string         `yaml:"borderWidth"`
	Opacity      map[string]string         `yaml:"opacity"`
	ZIndex       map[string]string         `yaml:"zIndex"`
	Screens      map[string]string         `yaml:"screens"`
	Animation    map[string]string         `yaml:"animation"`
	Keyframes    map[string][]resolvedStop `yaml:"keyframes"`
}

type resolvedStop struct {
	At           string            `yaml:"at"`
	Declarations map[string]string `yaml:"declarations"`
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved configuration as YAML",
		Long: `Print the configuration after layering config files and merging the
theme over the defaults. Use --section to print a single theme section.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := twgen.Check(buildConfig())
			if err != nil {
				return err
			}
			section, _ := cmd.Flags().GetString("section")
			return writeResolved(cmd.OutOrStdout(), result, section)
		},
	}
	cmd.Flags().String("section", "", "Only print this theme section (e.g. animation, keyframes)")
	return cmd
}

func writeResolved(w io.Writer, result *twgen.CheckResult, section string) error {
	doc := resolvedConfig{
		Sources:  result.Descriptor.Sources,
		Content:  result.Descriptor.Content,
		Files:    result.Files,
		Safelist: result.Descriptor.Safelist,
		Plugins:  result.Descriptor.Plugins,
		Theme:    toResolvedTheme(result.Theme),
	}

	var value any = doc
	if section != "" {
		sections := map[string]any{
			theme.SectionColors:       doc.Theme.Colors,
			theme.SectionSpacing:      doc.Theme.Spacing,
			theme.SectionFontSize:     doc.Theme.FontSize,
			theme.SectionFontWeight:   doc.Theme.FontWeight,
			theme.SectionBorderRadius: doc.Theme.BorderRadius,
			theme.SectionBorderWidth:  doc.Theme.BorderWidth,
			theme.SectionOpacity:      doc.Theme.Opacity,
			theme.SectionZIndex:       doc.Theme.ZIndex,
			theme.SectionScreens:      doc.Theme.Screens,
			theme.SectionAnimation:    doc.Theme.Animation,
			theme.SectionKeyframes:    doc.Theme.Keyframes,
		}
		v, ok := sections[section]
		if !ok {
			names := make([]string, 0, len(sections))
			for name := range sections {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown theme section %q (available: %s)", section, strings.Join(names, ", "))
		}
		value = v
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encoding resolved config: %w", err)
	}
	return enc.Close()
}

func toResolvedTheme(t *theme.Theme) resolvedTheme {
	out := resolvedTheme{
		Colors:       t.Colors,
		Spacing:      t.Spacing,
		FontSize:     make(map[string][]string, len(t.FontSize)),
		FontWeight:   t.FontWeight,
		BorderRadius: t.BorderRadius,
		BorderWidth:  t.BorderWidth,
		Opacity:      t.Opacity,
		ZIndex:       t.ZIndex,
		Screens:      t.Screens,
		Animation:    t.Animation,
		Keyframes:    make(map[string][]resolvedStop, len(t.Keyframes)),
	}
	for name, fs := range t.FontSize {
		entry := []string{fs.Size}
		if fs.LineHeight != "" {
			entry = append(entry, fs.LineHeight)
		}
		out.FontSize[name] = entry
	}
	for name, kf := range t.Keyframes {
		stops := make([]resolvedStop, len(kf.Stops))
		for i, stop := range kf.Stops {
			decls := make(map[string]string, len(stop.Declarations))
			for _, d := range stop.Declarations {
				decls[d.Property] = d.Value
			}
			stops[i] = resolvedStop{At: strings.Join(stop.Selectors, ", "), Declarations: decls}
		}
		out.Keyframes[name] = stops
	}
	return out
}

package twgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/yacobolo/twgen/internal/config"
	"github.com/yacobolo/twgen/internal/diag"
	twlog "github.com/yacobolo/twgen/internal/log"
	"github.com/yacobolo/twgen/internal/stylesheet"
	"github.com/yacobolo/twgen/internal/theme"
	"github.com/yacobolo/twgen/internal/utility"
)

// Builder runs builds. It keeps a scan cache across builds, so one
// Builder should be reused for repeated builds of the same project.
// Builds on one Builder are serialised.
type Builder struct {
	mu      sync.Mutex
	scanner *Scanner
	logger  zerolog.Logger
}

// NewBuilder returns a builder with a fresh scan cache.
func NewBuilder() *Builder {
	return &Builder{
		scanner: NewScanner(DefaultCacheSize),
		logger:  twlog.WithComponent("build"),
	}
}

// Scanner returns the builder's scanner, for cache invalidation.
func (b *Builder) Scanner() *Scanner { return b.scanner }

// Build runs one build with a throwaway Builder.
func Build(ctx context.Context, cfg Config) (*BuildResult, error) {
	return NewBuilder().Build(ctx, cfg)
}

// project is the resolved configuration a build or lint works from.
type project struct {
	desc     *config.Descriptor
	theme    *theme.Theme
	resolver *utility.Resolver
	plugins  []stylesheet.Plugin
	warnings []string
}

// loadProject loads the descriptor, resolves the theme and validates the
// safelist and plugins. All configuration diagnostics are reported at once.
func loadProject(cfg Config) (*project, error) {
	desc, err := config.Load(cfg.Root, cfg.ConfigPaths)
	if err != nil {
		return nil, err
	}
	source := desc.Source()

	p := &project{desc: desc}
	p.warnings = append(p.warnings, desc.Warnings...)

	var diags diag.List

	resolved, themeWarnings, err := theme.Resolve(theme.Default(), desc.Theme)
	p.warnings = append(p.warnings, themeWarnings...)
	if err != nil {
		diags = append(diags, diag.From(err)...)
		if len(diags) == 0 {
			return nil, err
		}
	}

	if resolved != nil {
		p.theme = resolved
		p.resolver = utility.NewResolver(resolved)

		for i, token := range desc.Safelist {
			entry := fmt.Sprintf("safelist[%d]", i)
			u, ok, err := p.resolver.Resolve(token)
			switch {
			case err != nil:
				diags.Add(diag.ErrInvalidClass, entry, "%v", unwrapMessage(err))
			case !ok:
				diags.Add(diag.ErrInvalidClass, entry, "%q does not match any utility", token)
			default:
				for _, name := range missingKeyframes(resolved, u) {
					diags.Add(diag.ErrDanglingKeyframes, entry, "%q references undefined keyframes %q", token, name)
				}
			}
		}
	}

	for i, name := range desc.Plugins {
		plugin, ok := stylesheet.LookupPlugin(name)
		if !ok {
			diags.Add(diag.ErrUnknownPlugin, fmt.Sprintf("plugins[%d]", i), "unknown plugin %q (available: %v)", name, stylesheet.PluginNames())
			continue
		}
		p.plugins = append(p.plugins, plugin)
	}
	p.plugins = append(p.plugins, cfg.Plugins...)

	if err := diags.WithSource(source).Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// missingKeyframes lists the keyframe names u animates that t does not define.
func missingKeyframes(t *theme.Theme, u utility.Utility) []string {
	var missing []string
	for _, name := range u.Keyframes {
		if _, ok := t.Keyframes[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// unwrapMessage strips the leading kind from a wrapped class error so the
// diagnostic does not repeat it.
func unwrapMessage(err error) string {
	msg := err.Error()
	prefix := diag.ErrInvalidClass.Error() + " "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

// Build loads the configuration, scans content files and emits the
// stylesheet. On any configuration error nothing is written.
func (b *Builder) Build(ctx context.Context, cfg Config) (*BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	if cfg.Root == "" {
		cfg.Root = "."
	}

	p, err := loadProject(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range p.warnings {
		b.logger.Warn().Str("config", p.desc.Source()).Msg(w)
	}

	files, err := ResolveContent(cfg.Root, p.desc.Content)
	if err != nil {
		return nil, withSource(err, p.desc.Source())
	}
	b.logger.Debug().Int("files", len(files)).Strs("patterns", p.desc.Content).Msg("resolved content globs")

	candidates, stats, err := b.scanner.Scan(ctx, files)
	if err != nil {
		return nil, err
	}
	b.logger.Debug().
		Int("scanned", stats.FilesScanned).
		Int("cached", stats.CacheHits).
		Int("candidates", stats.Candidates).
		Msg("scanned content")

	sheet, retained, keyframes := generate(p, candidates)
	for _, plugin := range p.plugins {
		if err := plugin.Apply(sheet); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", plugin.Name(), err)
		}
	}

	css, err := render(sheet, cfg)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Descriptor: p.desc,
		Files:      files,
		Stats:      stats,
		Retained:   retained,
		Keyframes:  keyframes,
		Stylesheet: sheet,
		CSS:        css,
		Warnings:   p.warnings,
		Categories: categorizeRules(sheet.Rules),
	}

	if cfg.Output != "" && cfg.Output != "-" {
		if err := WriteFile(cfg.Output, css); err != nil {
			return nil, err
		}
		result.Output = cfg.Output
	}

	result.Duration = time.Since(start)
	b.logger.Info().
		Int("classes", len(retained)).
		Int("keyframes", len(keyframes)).
		Int("bytes", len(css)).
		Dur("took", result.Duration).
		Msg("stylesheet built")

	return result, nil
}

// generate computes the retained set (resolvable candidates plus the
// safelist) and builds the stylesheet model.
func generate(p *project, candidates []string) (*stylesheet.Stylesheet, []string, []string) {
	seen := make(map[string]bool)
	var utilities []utility.Utility

	add := func(token string) {
		if seen[token] {
			return
		}
		u, ok, err := p.resolver.Resolve(token)
		if err != nil || !ok || len(missingKeyframes(p.theme, u)) > 0 {
			return
		}
		seen[token] = true
		utilities = append(utilities, u)
	}
	for _, token := range candidates {
		add(token)
	}
	for _, token := range p.desc.Safelist {
		add(token)
	}

	utility.Sort(utilities)

	sheet := &stylesheet.Stylesheet{}
	retained := make([]string, 0, len(utilities))
	needed := make(map[string]bool)
	for _, u := range utilities {
		sheet.Rules = append(sheet.Rules, u.Rule)
		retained = append(retained, u.Rule.Class)
		for _, name := range u.Keyframes {
			needed[name] = true
		}
	}

	keyframes := make([]string, 0, len(needed))
	for name := range needed {
		if block, ok := p.theme.KeyframesBlock(name); ok {
			sheet.Keyframes = append(sheet.Keyframes, block)
			keyframes = append(keyframes, name)
		}
	}
	sort.Strings(keyframes)
	sort.Slice(sheet.Keyframes, func(i, j int) bool { return sheet.Keyframes[i].Name < sheet.Keyframes[j].Name })

	return sheet, retained, keyframes
}

// render serializes the stylesheet, splicing it into the input stylesheet
// when one is configured.
func render(sheet *stylesheet.Stylesheet, cfg Config) ([]byte, error) {
	var generated bytes.Buffer
	if err := stylesheet.Write(&generated, sheet, stylesheet.Options{Minify: cfg.Minify}); err != nil {
		return nil, fmt.Errorf("serialize stylesheet: %w", err)
	}
	if cfg.Input == "" {
		return generated.Bytes(), nil
	}

	input, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("read input stylesheet: %w", err)
	}
	out, found, err := stylesheet.Splice(input, func(layer string) []byte {
		if layer == stylesheet.LayerUtilities {
			return generated.Bytes()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("input stylesheet %s: %w", cfg.Input, err)
	}
	if !found {
		out = append(append(input, '\n'), generated.Bytes()...)
	}
	return out, nil
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending stylesheet: %w", err)
	}
	defer func() {
		// Removes the temp file unless it was committed
		_ = pendingFile.Cleanup()
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

func withSource(err error, source string) error {
	if diags := diag.From(err); diags != nil {
		return diag.List(diags).WithSource(source).Err()
	}
	return err
}

package twgen

import (
	"context"

	"github.com/yacobolo/twgen/internal/config"
	"github.com/yacobolo/twgen/internal/theme"
)

// CheckResult is a validated configuration: the descriptor as loaded, the
// theme after merging it over the defaults, and the files the content
// globs match.
type CheckResult struct {
	Descriptor *config.Descriptor
	Theme      *theme.Theme
	Files      []string
	Warnings   []string
}

// Check validates the configuration without scanning content or writing
// output. It reports the same diagnostics Build would.
func Check(cfg Config) (*CheckResult, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}

	p, err := loadProject(cfg)
	if err != nil {
		return nil, err
	}

	files, err := ResolveContent(cfg.Root, p.desc.Content)
	if err != nil {
		return nil, withSource(err, p.desc.Source())
	}

	return &CheckResult{
		Descriptor: p.desc,
		Theme:      p.theme,
		Files:      files,
		Warnings:   p.warnings,
	}, nil
}

// Watch builds and then rebuilds on every change with a fresh Builder.
func Watch(ctx context.Context, cfg Config, opts WatchOptions) error {
	return NewBuilder().Watch(ctx, cfg, opts)
}

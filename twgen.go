// Package twgen builds utility-first stylesheets on demand.
//
// A project configuration names the content files to scan, a safelist of
// classes to always emit, and a theme that extends the default design
// tokens. Build scans the content files for class candidates, resolves
// each one against the theme and writes a stylesheet holding only the
// utilities in use, plus the keyframes their animations reference:
//
//	result, err := twgen.Build(ctx, twgen.Config{
//		Root:   ".",
//		Output: "dist/app.css",
//	})
//
// Lint reports class attribute tokens that are malformed or resolve to no
// utility, in golangci-lint format:
//
//	result, err := twgen.Lint(ctx, twgen.LintConfig{Config: cfg})
//	_ = twgen.WriteOutput(os.Stdout, result, twgen.OutputIssues, lintCfg)
//
// Builder.Watch rebuilds on file changes and reuses the scan cache across
// rebuilds. The twgen command in cmd/twgen wraps all three.
package twgen

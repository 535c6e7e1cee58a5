package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twgen"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestSettingsFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twgen.yaml")
	settingsContent := `
output: dist/site.css
input: src/app.css
minify: true
verbose: true

watch:
  debounce: 250ms

lint:
  strict: true
  max-same-issues: 3
  print-lines: false
`
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0o644))
	require.NoError(t, loadConfigFromPath(settingsPath))

	cfg := buildConfig()
	assert.Equal(t, "dist/site.css", cfg.Output)
	assert.Equal(t, "src/app.css", cfg.Input)
	assert.True(t, cfg.Minify)
	assert.Equal(t, ".", cfg.Root)
	assert.True(t, k.Bool("verbose"))

	wait, err := debounce()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, wait)

	lint := buildLintConfig()
	assert.True(t, lint.Strict)
	assert.Equal(t, 3, lint.MaxSameIssues)
	assert.False(t, lint.PrintIssuedLines)
	assert.True(t, lint.PrintLinterName)
}

func TestSettingsFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent settings; should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.twgen.yaml"))

	cfg := buildConfig()
	assert.Equal(t, ".", cfg.Root)
	assert.Empty(t, cfg.Output)
	assert.Empty(t, cfg.ConfigPaths)
	assert.False(t, cfg.Minify)

	wait, err := debounce()
	require.NoError(t, err)
	assert.Equal(t, twgen.DefaultDebounce, wait)

	lint := buildLintConfig()
	assert.False(t, lint.Strict)
	assert.True(t, lint.PrintIssuedLines)
	assert.True(t, lint.PrintLinterName)
	assert.Equal(t, 0, lint.MaxSameIssues)
}

func TestEnvVarOverridesSettingsFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twgen.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("output: from-file.css\nlint:\n  strict: false\n"), 0o644))

	t.Setenv("TWGEN_OUTPUT", "from-env.css")
	t.Setenv("TWGEN_LINT_STRICT", "true")
	t.Setenv("TWGEN_LINT_MAX_SAME_ISSUES", "5")
	t.Setenv("TWGEN_WATCH_DEBOUNCE", "40")

	require.NoError(t, loadConfigFromPath(settingsPath))

	assert.Equal(t, "from-env.css", buildConfig().Output)
	assert.True(t, buildLintConfig().Strict)
	assert.Equal(t, 5, buildLintConfig().MaxSameIssues)

	wait, err := debounce()
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, wait)
}

func TestInvalidDebounce(t *testing.T) {
	resetKoanf()
	t.Setenv("TWGEN_WATCH_DEBOUNCE", "soon")
	require.NoError(t, loadConfigFromPath("/nonexistent/.twgen.yaml"))

	_, err := debounce()
	require.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"TWGEN_OUTPUT":               "output",
		"TWGEN_WATCH_DEBOUNCE":       "watch.debounce",
		"TWGEN_LINT_STRICT":          "lint.strict",
		"TWGEN_LINT_MAX_SAME_ISSUES": "lint.max-same-issues",
		"TWGEN_LOG_LEVEL":            "log-level",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, envKey(in))
		})
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/twgen/internal/diag"
)

// execute runs the CLI with a fresh command tree and captured output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	settings := filepath.Join(t.TempDir(), "missing.yaml")
	cmd.SetArgs(append(args, "--settings", settings))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	_, _, err := execute(t, "init", "--root", root)
	require.NoError(t, err)

	templates := filepath.Join(root, "app", "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "toast.html"),
		[]byte(`<div class="animate-toast-progress flex"></div>`), 0o644))
	return root
}

func TestInitRefusesOverwrite(t *testing.T) {
	root := newProject(t)

	_, _, err := execute(t, "init", "--root", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	stdout, _, err := execute(t, "init", "--root", root, "--force", "--with-settings")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created "+filepath.Join(root, ".twgen.yaml"))
}

func TestBuildToStdout(t *testing.T) {
	root := newProject(t)

	stdout, stderr, err := execute(t, "build", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "@keyframes shrinkProgress {")
	assert.Contains(t, stdout, ".animate-toast-progress {\n  animation: shrinkProgress 10s linear forwards;\n}")
	assert.Contains(t, stderr, "stdout: 10 utilities, 1 keyframes")
}

func TestBuildToFileIsDefaultCommand(t *testing.T) {
	root := newProject(t)
	output := filepath.Join(root, "dist.css")

	stdout, _, err := execute(t, "--root", root, "-o", output, "--minify", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	css, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(css), "@keyframes shrinkProgress{0%{width:100%}100%{width:0%}}")
}

func TestBuildConfigError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "twgen.config.yaml"),
		[]byte("content: []\nsafelist: [not-a-utility]\n"), 0o644))

	_, _, err := execute(t, "build", "--root", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrInvalidClass))
}

func TestCheckAndResolve(t *testing.T) {
	root := newProject(t)

	stdout, _, err := execute(t, "check", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 content files, 8 safelisted classes")

	stdout, _, err = execute(t, "resolve", "--root", root, "--section", "keyframes")
	require.NoError(t, err)

	var keyframes map[string][]resolvedStop
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &keyframes))
	assert.Equal(t, []resolvedStop{
		{At: "0%", Declarations: map[string]string{"width": "100%"}},
		{At: "100%", Declarations: map[string]string{"width": "0%"}},
	}, keyframes["shrinkProgress"])

	_, _, err = execute(t, "resolve", "--root", root, "--section", "gradients")
	require.Error(t, err)
}

func TestLintExitCodes(t *testing.T) {
	root := newProject(t)
	page := filepath.Join(root, "app", "templates", "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<p class="text-chartreuse">x</p>`), 0o644))

	// Unknown classes are warnings: soft gate passes
	stdout, _, err := execute(t, "lint", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, `unknown class "text-chartreuse"`)

	_, _, err = execute(t, "lint", "--root", root, "--strict")
	var exit exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.code)

	require.NoError(t, os.WriteFile(page, []byte(`<p class="text-[10px">x</p>`), 0o644))
	_, _, err = execute(t, "lint", "--root", root, "--quiet")
	require.ErrorAs(t, err, &exit)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "twgen dev\n", stdout)
}

package twgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twgen/internal/diag"
	"github.com/yacobolo/twgen/internal/stylesheet"
)

const referenceConfig = `content:
  - ./app/templates/**/*.html
safelist:
  - text-white
  - text-red-600
  - text-red-500
  - bg-red-600
  - bg-red-500
  - "text-[10px]"
  - font-bold
  - rounded-full
theme:
  extend:
    animation:
      toast-progress: shrinkProgress 10s linear forwards
    keyframes:
      shrinkProgress:
        "0%":
          width: "100%"
        "100%":
          width: "0%"
plugins: []
`

var referenceSafelist = []string{
	"bg-red-500", "bg-red-600", "font-bold", "rounded-full",
	"text-[10px]", "text-red-500", "text-red-600", "text-white",
}

// writeProject creates files under a temporary root and returns the root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestBuildReferenceProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":         referenceConfig,
		"app/templates/toast.html":  `<div class="animate-toast-progress flex"></div>`,
		"app/templates/ignored.txt": `<div class="hidden"></div>`,
		"app/templates/page/x.html": `<p class="text-white">hi</p>`,
	})

	result, err := Build(context.Background(), Config{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"animate-toast-progress", "bg-red-500", "bg-red-600", "flex", "font-bold",
		"rounded-full", "text-[10px]", "text-red-500", "text-red-600", "text-white",
	}, result.Retained)
	assert.Equal(t, []string{"shrinkProgress"}, result.Keyframes)
	assert.Len(t, result.Files, 2)

	css := string(result.CSS)
	assert.Contains(t, css, "@keyframes shrinkProgress {\n  0% {\n    width: 100%;\n  }\n  100% {\n    width: 0%;\n  }\n}\n")
	assert.Contains(t, css, ".animate-toast-progress {\n  animation: shrinkProgress 10s linear forwards;\n}\n")
	assert.Contains(t, css, ".text-\\[10px\\] {\n  font-size: 10px;\n}\n")
	assert.Contains(t, css, ".bg-red-600 {\n  background-color: #dc2626;\n}\n")
	assert.NotContains(t, css, ".hidden")
	assert.True(t, strings.HasPrefix(css, "@keyframes"), "keyframes are emitted before rules")

	assert.NotEmpty(t, result.Categories)
	assert.Empty(t, result.Output)
}

func TestBuildSafelistWithoutContent(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": referenceConfig,
	})

	result, err := Build(context.Background(), Config{Root: root})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Equal(t, referenceSafelist, result.Retained)
	// Nothing references the animation, so its keyframes stay out
	assert.Empty(t, result.Keyframes)
	assert.NotContains(t, string(result.CSS), "@keyframes")
}

func TestBuildDeterministic(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":      referenceConfig,
		"app/templates/a.html":   `<div class="md:p-4 p-2 hover:bg-red-500 animate-toast-progress"></div>`,
		"app/templates/b/b.html": `<div class="sm:flex -mt-2 w-1/2 text-[#ff0000]"></div>`,
		"app/templates/b/c.html": `<div class="group-hover:text-white z-10"></div>`,
	})
	cfg := Config{Root: root}

	first, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	builder := NewBuilder()
	for i := 0; i < 3; i++ {
		again, err := builder.Build(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, string(first.CSS), string(again.CSS))
	}
}

func TestBuildReusesScanCache(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":    referenceConfig,
		"app/templates/a.html": `<div class="flex"></div>`,
	})
	builder := NewBuilder()

	first, err := builder.Build(context.Background(), Config{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.FilesScanned)
	assert.Equal(t, 0, first.Stats.CacheHits)

	second, err := builder.Build(context.Background(), Config{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Stats.FilesScanned)
	assert.Equal(t, 1, second.Stats.CacheHits)
}

func TestBuildInvalidSafelist(t *testing.T) {
	config := strings.Replace(referenceConfig, "  - font-bold\n", "  - font-bold\n  - not-a-utility\n  - \"text-[10px\"\n", 1)
	root := writeProject(t, map[string]string{"twgen.config.yaml": config})
	output := filepath.Join(root, "out.css")

	_, err := Build(context.Background(), Config{Root: root, Output: output})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrInvalidClass))

	diags := diag.From(err)
	require.Len(t, diags, 2)
	assert.Equal(t, "safelist[7]", diags[0].Entry)
	assert.Equal(t, "safelist[8]", diags[1].Entry)
	assert.Equal(t, filepath.Join(root, "twgen.config.yaml"), diags[0].Source)

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no output on configuration error")
}

func TestBuildDanglingKeyframes(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": `content: ["**/*.html"]
theme:
  extend:
    animation:
      fade: fadeIn 1s ease-in
`,
	})

	_, err := Build(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrDanglingKeyframes))
	assert.Contains(t, err.Error(), "fadeIn")
}

func TestBuildSafelistArbitraryAnimation(t *testing.T) {
	config := strings.Replace(referenceConfig, "  - rounded-full\n",
		"  - rounded-full\n  - \"animate-[shrinkProgress_1s_linear]\"\n  - \"animate-[nope_1s]\"\n", 1)
	root := writeProject(t, map[string]string{"twgen.config.yaml": config})
	output := filepath.Join(root, "out.css")

	_, err := Build(context.Background(), Config{Root: root, Output: output})
	require.ErrorIs(t, err, diag.ErrDanglingKeyframes)

	diags := diag.From(err)
	require.Len(t, diags, 1)
	assert.Equal(t, "safelist[9]", diags[0].Entry)
	assert.Contains(t, diags[0].Message, `"nope"`)

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no output on configuration error")
}

func TestBuildSkipsContentAnimationWithoutKeyframes(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":        referenceConfig,
		"app/templates/toast.html": `<div class="animate-[shrinkProgress_1s_linear] animate-[nope_1s]"></div>`,
	})

	result, err := Build(context.Background(), Config{Root: root})
	require.NoError(t, err)

	assert.Contains(t, result.Retained, "animate-[shrinkProgress_1s_linear]")
	assert.NotContains(t, result.Retained, "animate-[nope_1s]")
	assert.Equal(t, []string{"shrinkProgress"}, result.Keyframes)
	assert.Contains(t, string(result.CSS), "@keyframes shrinkProgress")
	assert.NotContains(t, string(result.CSS), "nope")
}

func TestBuildInvalidGlob(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": "content:\n  - \"../outside/**/*.html\"\n",
	})

	_, err := Build(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrInvalidGlob))

	diags := diag.From(err)
	require.Len(t, diags, 1)
	assert.Equal(t, "content[0]", diags[0].Entry)
}

func TestBuildWritesOutputAtomically(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": referenceConfig,
	})
	output := filepath.Join(root, "dist", "app.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))
	require.NoError(t, os.WriteFile(output, []byte("stale"), 0o644))

	result, err := Build(context.Background(), Config{Root: root, Output: output})
	require.NoError(t, err)
	assert.Equal(t, output, result.Output)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, result.CSS, written)

	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
}

func TestBuildMinify(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":    referenceConfig,
		"app/templates/a.html": `<div class="animate-toast-progress"></div>`,
	})

	result, err := Build(context.Background(), Config{Root: root, Minify: true})
	require.NoError(t, err)

	css := string(result.CSS)
	assert.NotContains(t, css, "\n")
	assert.Contains(t, css, "@keyframes shrinkProgress{0%{width:100%}100%{width:0%}}")
	assert.Contains(t, css, `.text-\[10px\]{font-size:10px}`)
}

func TestBuildSplicesInputStylesheet(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": "content: []\nsafelist: [font-bold]\n",
		"input.css":         "body { margin: 0; }\n@tailwind utilities;\n.btn { color: red; }\n",
		"plain.css":         "body { margin: 0; }\n",
	})

	result, err := Build(context.Background(), Config{Root: root, Input: filepath.Join(root, "input.css")})
	require.NoError(t, err)
	assert.Equal(t, "body { margin: 0; }\n.font-bold {\n  font-weight: 700;\n}\n\n\n.btn { color: red; }\n", string(result.CSS))

	appended, err := Build(context.Background(), Config{Root: root, Input: filepath.Join(root, "plain.css")})
	require.NoError(t, err)
	assert.Equal(t, "body { margin: 0; }\n\n.font-bold {\n  font-weight: 700;\n}\n\n", string(appended.CSS))
}

func TestBuildPlugins(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": "content: []\nsafelist: [font-bold, animate-spin]\nplugins: [reduced-motion]\n",
	})

	var seen int
	counter := stylesheet.PluginFunc{ID: "count", Fn: func(s *stylesheet.Stylesheet) error {
		seen = len(s.Rules)
		return nil
	}}

	result, err := Build(context.Background(), Config{Root: root, Plugins: []stylesheet.Plugin{counter}})
	require.NoError(t, err)

	// animate-spin, font-bold and the reduced-motion override
	assert.Equal(t, 3, seen)
	assert.Contains(t, string(result.CSS), "@media (prefers-reduced-motion: reduce) {\n  .animate-spin {\n    animation: none;\n  }\n}\n")
}

func TestBuildUnknownPlugin(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": "content: []\nplugins: [typography]\n",
	})

	_, err := Build(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrUnknownPlugin))
}

func TestBuildDuplicateConfig(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":  referenceConfig,
		"tailwind.config.js": "module.exports = { content: [] }\n",
	})

	_, err := Build(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrDuplicateConfig))

	// An explicit path resolves the ambiguity
	_, err = Build(context.Background(), Config{Root: root, ConfigPaths: []string{filepath.Join(root, "twgen.config.yaml")}})
	require.NoError(t, err)
}

func TestCheck(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":    referenceConfig,
		"app/templates/a.html": `<div class="flex"></div>`,
	})

	result, err := Check(Config{Root: root})
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
	assert.Equal(t, "shrinkProgress 10s linear forwards", result.Theme.Animation["toast-progress"])
	assert.Contains(t, result.Theme.Keyframes, "shrinkProgress")
	// Defaults survive the extension
	assert.Contains(t, result.Theme.Animation, "spin")
	assert.Equal(t, referenceSafelist, sortedCopy(result.Descriptor.Safelist))
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

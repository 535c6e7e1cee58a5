package twgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildEvent struct {
	result *BuildResult
	err    error
}

func nextBuild(t *testing.T, builds <-chan buildEvent) buildEvent {
	t.Helper()
	select {
	case ev := <-builds:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a build")
		return buildEvent{}
	}
}

func TestWatchRebuildsOnChange(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml":    referenceConfig,
		"app/templates/a.html": `<div class="flex"></div>`,
		"node_modules/x.html":  "",
	})
	output := filepath.Join(root, "out.css")

	builds := make(chan buildEvent, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- NewBuilder().Watch(ctx, Config{Root: root, Output: output}, WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnBuild: func(r *BuildResult, err error) {
				builds <- buildEvent{r, err}
			},
		})
	}()

	initial := nextBuild(t, builds)
	require.NoError(t, initial.err)
	assert.Contains(t, initial.result.Retained, "flex")
	assert.NotContains(t, initial.result.Retained, "grid")

	// A new file in a new directory is picked up
	dir := filepath.Join(root, "app", "templates", "new")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html"), []byte(`<div class="grid"></div>`), 0o644))

	var rebuilt buildEvent
	for {
		rebuilt = nextBuild(t, builds)
		require.NoError(t, rebuilt.err)
		if len(rebuilt.result.Files) == 2 {
			break
		}
	}
	assert.Contains(t, rebuilt.result.Retained, "grid")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), ".grid {")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchKeepsRunningAfterConfigError(t *testing.T) {
	root := writeProject(t, map[string]string{
		"twgen.config.yaml": "content: []\nsafelist: [nope]\n",
	})

	builds := make(chan buildEvent, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = NewBuilder().Watch(ctx, Config{Root: root}, WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnBuild: func(r *BuildResult, err error) {
				builds <- buildEvent{r, err}
			},
		})
	}()

	initial := nextBuild(t, builds)
	require.Error(t, initial.err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "twgen.config.yaml"), []byte("content: []\nsafelist: [flex]\n"), 0o644))

	fixed := nextBuild(t, builds)
	for fixed.err != nil {
		fixed = nextBuild(t, builds)
	}
	assert.Equal(t, []string{"flex"}, fixed.result.Retained)
}

func TestSkipWatchPath(t *testing.T) {
	assert.True(t, skipWatchPath(".git", nil))
	assert.True(t, skipWatchPath("web/node_modules/pkg", nil))
	assert.False(t, skipWatchPath("app/templates", nil))
	assert.False(t, skipWatchPath(".", nil))
}

func TestIsOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "app.css")

	assert.True(t, isOutputFile(output, output))
	assert.True(t, isOutputFile(filepath.Join(dir, ".app.css123456"), output))
	assert.False(t, isOutputFile(filepath.Join(dir, "other.css"), output))
}

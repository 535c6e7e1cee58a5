package twgen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultDebounce is how long Watch waits after the last change before
// rebuilding.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration

	// OnBuild is called after every build, the initial one included.
	// A failed rebuild leaves the previous output in place.
	OnBuild func(*BuildResult, error)
}

// Watch builds once, then rebuilds whenever a file under cfg.Root changes,
// until ctx is cancelled. Bursts of events within the debounce window
// produce a single rebuild.
func (b *Builder) Watch(ctx context.Context, cfg Config, opts WatchOptions) error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	onBuild := opts.OnBuild
	if onBuild == nil {
		onBuild = func(*BuildResult, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	gi := loadGitIgnore(cfg.Root)
	if err := addWatchDirs(watcher, cfg.Root, gi); err != nil {
		return err
	}

	output := ""
	if cfg.Output != "" && cfg.Output != "-" {
		if abs, err := filepath.Abs(cfg.Output); err == nil {
			output = abs
		}
	}

	onBuild(b.Build(ctx, cfg))
	b.logger.Info().Str("root", cfg.Root).Dur("debounce", opts.Debounce).Msg("watching for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !b.handleEvent(watcher, cfg.Root, gi, output, event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Error().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil
			result, err := b.Build(ctx, cfg)
			if err != nil {
				b.logger.Error().Err(err).Msg("rebuild failed")
			}
			onBuild(result, err)
		}
	}
}

// handleEvent invalidates cached tokens for the changed path and reports
// whether the event should trigger a rebuild.
func (b *Builder) handleEvent(watcher *fsnotify.Watcher, root string, gi *ignore.GitIgnore, output string, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if output != "" && isOutputFile(event.Name, output) {
		return false
	}

	rel, err := filepath.Rel(root, event.Name)
	if err != nil {
		return false
	}
	if skipWatchPath(filepath.ToSlash(rel), gi) {
		return false
	}

	b.logger.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("file event")
	b.scanner.Invalidate(event.Name)

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addWatchDirs(watcher, event.Name, nil); err != nil {
				b.logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
			}
		}
	}
	return true
}

// isOutputFile matches the output stylesheet and the temporary files an
// atomic write creates next to it.
func isOutputFile(name, output string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if abs == output {
		return true
	}
	return filepath.Dir(abs) == filepath.Dir(output) &&
		strings.HasPrefix(filepath.Base(abs), "."+filepath.Base(output))
}

// addWatchDirs watches dir and every directory below it that is not
// skipped. dir itself must be a directory.
func addWatchDirs(watcher *fsnotify.Watcher, dir string, gi *ignore.GitIgnore) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			if path == dir {
				return fmt.Errorf("%s is not a directory", dir)
			}
			return nil
		}
		if path != dir {
			rel, err := filepath.Rel(dir, path)
			if err == nil && skipWatchPath(filepath.ToSlash(rel), gi) {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// skipWatchPath reports whether a root-relative path is never watched.
func skipWatchPath(rel string, gi *ignore.GitIgnore) bool {
	for _, part := range strings.Split(rel, "/") {
		switch part {
		case ".git", "node_modules":
			return true
		}
	}
	return gi != nil && gi.MatchesPath(rel)
}

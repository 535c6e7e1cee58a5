package twgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twgen/internal/diag"
	"github.com/yacobolo/twgen/internal/extract"
)

// MmapThreshold is the file size above which content files are memory
// mapped instead of read.
const MmapThreshold = 256 << 10

// DefaultCacheSize is the number of files whose tokens a Scanner keeps.
const DefaultCacheSize = 4096

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Files matched by content globs
	FilesScanned    int // Files read from disk
	CacheHits       int // Files served from the token cache
	Candidates      int // Distinct candidate tokens
}

// ResolveContent expands content globs relative to root. Files come back in
// pattern order, lexically sorted within a pattern, without duplicates.
// Patterns prefixed with "!" remove matches; gitignored files are skipped.
// A pattern that matches nothing is not an error.
func ResolveContent(root string, patterns []string) ([]string, error) {
	var includes, excludes []string
	var diags diag.List

	for i, raw := range patterns {
		pattern, exclude := strings.CutPrefix(raw, "!")
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		entry := fmt.Sprintf("content[%d]", i)

		switch {
		case pattern == "":
			diags.Add(diag.ErrInvalidGlob, entry, "empty pattern")
			continue
		case path.IsAbs(pattern), pattern == "..", strings.HasPrefix(pattern, "../"), strings.Contains(pattern, "/../"):
			diags.Add(diag.ErrInvalidGlob, entry, "pattern %q must stay inside the project root", raw)
			continue
		case !doublestar.ValidatePattern(pattern):
			diags.Add(diag.ErrInvalidGlob, entry, "malformed glob %q", raw)
			continue
		}

		if exclude {
			excludes = append(excludes, pattern)
		} else {
			includes = append(includes, pattern)
		}
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}

	gi := loadGitIgnore(root)
	fsys := os.DirFS(root)

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			if seen[match] || isExcluded(match, excludes) {
				continue
			}
			if gi != nil && gi.MatchesPath(match) {
				continue
			}
			seen[match] = true
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
		}
	}

	return files, nil
}

func isExcluded(match string, excludes []string) bool {
	for _, ex := range excludes {
		if ok, _ := doublestar.Match(ex, match); ok {
			return true
		}
	}
	return false
}

// loadGitIgnore loads root/.gitignore.
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	tokens  []string
}

// Scanner extracts candidate tokens from content files. Results are cached
// per file and reused while the file's mtime and size are unchanged. A
// Scanner is safe for concurrent use.
type Scanner struct {
	cache   *lru.Cache[string, cacheEntry]
	workers int
}

// NewScanner returns a scanner caching up to cacheSize files.
func NewScanner(cacheSize int) *Scanner {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, cacheEntry](cacheSize)
	if err != nil {
		// Only returned for a non-positive size
		panic(fmt.Sprintf("failed to create scan cache: %v", err))
	}
	return &Scanner{cache: cache, workers: defaultWorkers()}
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Invalidate drops the cached tokens for path.
func (s *Scanner) Invalidate(path string) {
	s.cache.Remove(path)
}

// Purge drops every cached entry.
func (s *Scanner) Purge() {
	s.cache.Purge()
}

// Scan reads files concurrently and returns the sorted, distinct candidate
// tokens. Files that vanish between globbing and reading are skipped.
func (s *Scanner) Scan(ctx context.Context, files []string) ([]string, ScanStats, error) {
	stats := ScanStats{FilesDiscovered: len(files)}
	results := make([][]string, len(files))
	var scanned, hits atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokens, cached, err := s.scanFile(file)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("scan %s: %w", file, err)
			}
			if cached {
				hits.Add(1)
			} else {
				scanned.Add(1)
			}
			results[i] = tokens
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, tokens := range results {
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	sort.Strings(out)

	stats.FilesScanned = int(scanned.Load())
	stats.CacheHits = int(hits.Load())
	stats.Candidates = len(out)
	return out, stats, nil
}

func (s *Scanner) scanFile(path string) ([]string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if entry, ok := s.cache.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.tokens, true, nil
	}

	var tokens []string
	err = withContent(path, info.Size(), func(data []byte) error {
		tokens = extract.Candidates(data)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.cache.Add(path, cacheEntry{modTime: info.ModTime(), size: info.Size(), tokens: tokens})
	return tokens, false, nil
}

// withContent hands fn the file's bytes, memory mapping large files. The
// slice is only valid during fn.
func withContent(path string, size int64, fn func([]byte) error) error {
	if size <= MmapThreshold {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Fall back to a plain read, e.g. on filesystems without mmap support
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		return fn(data)
	}
	defer m.Unmap()

	return fn(m)
}

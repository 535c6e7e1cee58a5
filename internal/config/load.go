package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/yacobolo/twgen/internal/diag"
)

// keyDelim separates koanf key paths. Theme keys such as "12.5%" or "1/2"
// contain the usual delimiters, so a control character is used instead.
const keyDelim = "\x1f"

// CandidateNames are the file names Discover looks for, in priority order.
var CandidateNames = []string{
	"twgen.config.yaml",
	"twgen.config.yml",
	"tailwind.config.js",
	"tailwind.config.cjs",
	"tailwind.config.mjs",
	"tailwind.config.ts",
}

// ErrNoConfig is returned by Discover when no candidate exists.
var ErrNoConfig = errors.New("no configuration file found")

// Discover returns the single configuration file in root. Finding more than
// one candidate is an error: there must be one authoritative source.
func Discover(root string) (string, error) {
	var found []string
	for _, name := range CandidateNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			found = append(found, path)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoConfig, root, strings.Join(CandidateNames, ", "))
	case 1:
		return found[0], nil
	}

	var diags diag.List
	diags.Add(diag.ErrDuplicateConfig, "", "found %d configuration files (%s); keep exactly one or pass --config",
		len(found), strings.Join(found, ", "))
	return "", diags.WithSource(root).Err()
}

// Load reads the descriptor. With no explicit paths the root is searched
// via Discover; multiple explicit paths are layered with Merge in order.
func Load(root string, paths []string) (*Descriptor, error) {
	if len(paths) == 0 {
		path, err := Discover(root)
		if err != nil {
			return nil, err
		}
		paths = []string{path}
	}

	var merged *Descriptor
	for _, path := range paths {
		d, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, d)
	}
	return merged, nil
}

// LoadFile parses one YAML or JavaScript config file.
func LoadFile(path string) (*Descriptor, error) {
	k := koanf.New(keyDelim)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	case ".js", ".cjs", ".mjs", ".ts", ".mts", ".cts":
		if err := k.Load(JSProvider(path), nil); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q", path)
	}

	d, diags := decode(k.Raw(), path)
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

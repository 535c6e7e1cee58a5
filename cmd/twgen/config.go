package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twgen"
	twlog "github.com/yacobolo/twgen/internal/log"
)

const defaultSettingsFile = ".twgen.yaml"

var k = koanf.New(".")

// flagKeys maps command flags onto their nested settings keys. Flags not
// listed use their own name.
var flagKeys = map[string]string{
	"debounce":          "watch.debounce",
	"strict":            "lint.strict",
	"max-same-issues":   "lint.max-same-issues",
	"print-lines":       "lint.print-lines",
	"print-linter-name": "lint.print-linter-name",
}

// loadConfig loads tool settings with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	settingsPath, _ := cmd.Flags().GetString("settings")
	if settingsPath == "" {
		settingsPath = defaultSettingsFile
	}

	// Load settings file and env vars
	if err := loadConfigFromPath(settingsPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; defaults only fill unset keys)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		key := f.Name
		if nested, ok := flagKeys[key]; ok {
			key = nested
		}
		return key, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	configureLogging()
	return nil
}

// loadConfigFromPath loads settings from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(settingsPath string) error {
	// 1. Settings file (lowest precedence among providers)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading settings file %s: %w", settingsPath, err)
		}
	}

	// 2. Environment variables (TWGEN_* prefix)
	if err := k.Load(env.Provider("TWGEN_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps environment variables onto settings keys:
//
//	TWGEN_OUTPUT -> output
//	TWGEN_WATCH_DEBOUNCE -> watch.debounce
//	TWGEN_LINT_MAX_SAME_ISSUES -> lint.max-same-issues
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "TWGEN_"))
	if section, rest, ok := strings.Cut(key, "_"); ok && (section == "watch" || section == "lint") {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// configureLogging points the global logger at stderr.
func configureLogging() {
	level := "warn"
	switch {
	case k.Bool("quiet"):
		level = "disabled"
	case k.Bool("verbose"):
		level = "debug"
	}
	twlog.Configure(twlog.Config{
		Level:   level,
		Output:  os.Stderr,
		Console: true,
		NoColor: !twgen.ShouldUseColors(k.Bool("color"), os.Stderr),
	})
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() twgen.Config {
	root := k.String("root")
	if root == "" {
		root = "."
	}
	return twgen.Config{
		Root:        root,
		ConfigPaths: k.Strings("config"),
		Input:       k.String("input"),
		Output:      k.String("output"),
		Minify:      k.Bool("minify"),
	}
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() twgen.LintConfig {
	return twgen.LintConfig{
		Config:           buildConfig(),
		Strict:           getBoolWithDefault("lint.strict", false),
		PrintIssuedLines: getBoolWithDefault("lint.print-lines", true),
		PrintLinterName:  getBoolWithDefault("lint.print-linter-name", true),
		UseColors:        k.Bool("color"),
		MaxSameIssues:    k.Int("lint.max-same-issues"),
	}
}

// debounce returns the watch debounce. Plain numbers are milliseconds.
func debounce() (time.Duration, error) {
	raw := k.String("watch.debounce")
	if raw == "" {
		return twgen.DefaultDebounce, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	if ms := k.Int("watch.debounce"); ms > 0 {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return 0, fmt.Errorf("invalid watch.debounce %q: want a duration such as 100ms", raw)
}

// getBoolWithDefault returns the key's value, or defaultVal when unset.
func getBoolWithDefault(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

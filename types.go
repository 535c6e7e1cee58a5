package twgen

import (
	"time"

	"github.com/yacobolo/twgen/internal/config"
	"github.com/yacobolo/twgen/internal/stylesheet"
)

// Config holds build configuration
type Config struct {
	Root        string   // Project root; content globs are relative to it (default ".")
	ConfigPaths []string // Explicit config files layered in order; empty means discover in Root
	Input       string   // Optional input stylesheet with @tailwind directives
	Output      string   // Output file; "" or "-" leaves writing to the caller
	Minify      bool

	// Plugins run after the plugins named in the config file.
	Plugins []stylesheet.Plugin
}

// BuildResult contains build output and stats
type BuildResult struct {
	Descriptor *config.Descriptor
	Files      []string // Content files matched by the globs
	Stats      ScanStats
	Retained   []string // Emitted class tokens, in output order
	Keyframes  []string // Emitted keyframe names
	Stylesheet *stylesheet.Stylesheet
	CSS        []byte
	Warnings   []string
	Categories map[PropertyCategory]int // Emitted declarations per category
	Output     string                   // File written, empty when none
	Duration   time.Duration
}

// LintConfig holds linting configuration
type LintConfig struct {
	Config

	Strict           bool // Unknown classes count as failures
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (twlint) suffix
	UseColors        bool // Force color output
	MaxSameIssues    int  // 0 = unlimited
}

// LintResult contains linting analysis results
type LintResult struct {
	Issues         []Issue
	FilesScanned   int
	ClassesFound   int // Class tokens found in class attributes
	KnownClasses   int // Tokens that resolve to a utility or an input stylesheet class
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed by MaxSameIssues
	Warnings       []string
	TopUnknown     []ClassCount // Most frequent unknown tokens
}

// ClassCount pairs a class token with its number of occurrences.
type ClassCount struct {
	Class       string
	Occurrences int
}

// PropertyCategory groups related CSS properties
type PropertyCategory string

// Property categories for organizing CSS properties
const (
	CategoryVisual     PropertyCategory = "Visual"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryInternal   PropertyCategory = "Internal"
)

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

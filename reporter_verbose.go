package twgen

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// VerboseReporter handles detailed statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs detailed linting statistics
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class Linter Statistics", r.useColors))
	fmt.Fprintln(r.w, "-----------------------")

	known := 0.0
	if result.ClassesFound > 0 {
		known = float64(result.KnownClasses) / float64(result.ClassesFound) * 100
	}

	fmt.Fprintf(r.w, "Files Scanned:   %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Class Tokens:    %d\n", result.ClassesFound)
	fmt.Fprintf(r.w, "Known:           %d (%.1f%%)\n", result.KnownClasses, known)
	fmt.Fprintf(r.w, "Malformed:       %d\n", result.ErrorCount)
	fmt.Fprintf(r.w, "Unknown:         %d\n", result.WarningCount)
}

// PrintTopUnknown lists the most frequent unknown classes.
func (r *VerboseReporter) PrintTopUnknown(result LintResult) {
	if len(result.TopUnknown) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Most Frequent Unknown Classes", r.useColors))
	fmt.Fprintln(r.w, "-----------------------------")

	for i, c := range result.TopUnknown {
		fmt.Fprintf(r.w, "%d. %q - %s\n", i+1, c.Class, pluralizeCount(c.Occurrences, "occurrence", "occurrences"))
	}
}

// PrintWarnings shows linter warnings
func (r *VerboseReporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// PrintBuild outputs a summary of a build: sources, scan statistics,
// retained utilities, keyframes and declarations per property category.
func (r *VerboseReporter) PrintBuild(result *BuildResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Build Summary", r.useColors))
	fmt.Fprintln(r.w, "-------------")

	if result.Descriptor != nil && len(result.Descriptor.Sources) > 0 {
		fmt.Fprintf(r.w, "Config:          %s\n", strings.Join(result.Descriptor.Sources, ", "))
	}
	fmt.Fprintf(r.w, "Files:           %d matched, %d scanned, %d cached\n",
		result.Stats.FilesDiscovered, result.Stats.FilesScanned, result.Stats.CacheHits)
	fmt.Fprintf(r.w, "Candidates:      %d\n", result.Stats.Candidates)
	fmt.Fprintf(r.w, "Utilities:       %d\n", len(result.Retained))
	if len(result.Keyframes) > 0 {
		fmt.Fprintf(r.w, "Keyframes:       %s\n", strings.Join(result.Keyframes, ", "))
	}
	fmt.Fprintf(r.w, "Size:            %d bytes\n", len(result.CSS))
	fmt.Fprintf(r.w, "Duration:        %s\n", result.Duration.Round(time.Millisecond))

	if len(result.Categories) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Declarations by Category", r.useColors))
		for _, cat := range sortedCategories(result.Categories) {
			fmt.Fprintf(r.w, "  %-12s %d\n", string(cat)+":", result.Categories[cat])
		}
	}

	r.PrintWarnings(result.Warnings)
}

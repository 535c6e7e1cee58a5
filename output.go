package twgen

import (
	"fmt"
	"io"
)

// DetermineOutputFormat selects the output format from the --format flag.
// Unknown values fall back to the issues format.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet keeps issues only; the caller suppresses printing
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) error {
	switch format {
	case OutputSummary:
		verbose := NewVerboseReporter(w, ShouldUseColors(config.UseColors, w))
		verbose.PrintStatistics(*result)
		verbose.PrintTopUnknown(*result)
		verbose.PrintWarnings(result.Warnings)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintTopUnknown(*result)
		verbose.PrintWarnings(result.Warnings)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}
	return nil
}

// WriteBuildSummary prints the build summary.
func WriteBuildSummary(w io.Writer, result *BuildResult, useColors bool) {
	NewVerboseReporter(w, useColors).PrintBuild(result)
}


package twgen

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string           `json:"version"`
	Timestamp  string           `json:"timestamp"`
	Summary    JSONSummary      `json:"summary"`
	Issues     []JSONIssue      `json:"issues"`
	TopUnknown []JSONClassCount `json:"top_unknown"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
	ClassesFound int `json:"classes_found"`
	KnownClasses int `json:"known_classes"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Class    string `json:"class"`
	Source   string `json:"source,omitempty"`
}

// JSONClassCount is an unknown class and how often it appears.
type JSONClassCount struct {
	Class       string `json:"class"`
	Occurrences int    `json:"occurrences"`
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(result *LintResult, now time.Time) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Class:    issue.Class,
			Source:   source,
		}
	}

	top := make([]JSONClassCount, len(result.TopUnknown))
	for i, c := range result.TopUnknown {
		top[i] = JSONClassCount{Class: c.Class, Occurrences: c.Occurrences}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
			ClassesFound: result.ClassesFound,
			KnownClasses: result.KnownClasses,
		},
		Issues:     issues,
		TopUnknown: top,
		Warnings:   result.Warnings,
	}
}

// JSONBuild is the machine-readable build summary.
type JSONBuild struct {
	Version    string         `json:"version"`
	Sources    []string       `json:"sources"`
	Output     string         `json:"output,omitempty"`
	Files      int            `json:"files"`
	Scanned    int            `json:"scanned"`
	CacheHits  int            `json:"cache_hits"`
	Candidates int            `json:"candidates"`
	Retained   []string       `json:"retained"`
	Keyframes  []string       `json:"keyframes"`
	Bytes      int            `json:"bytes"`
	DurationMS float64        `json:"duration_ms"`
	Categories map[string]int `json:"categories"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// WriteBuildJSON writes the build summary as JSON
func WriteBuildJSON(w io.Writer, result *BuildResult) error {
	out := JSONBuild{
		Version:    "1.0",
		Output:     result.Output,
		Files:      result.Stats.FilesDiscovered,
		Scanned:    result.Stats.FilesScanned,
		CacheHits:  result.Stats.CacheHits,
		Candidates: result.Stats.Candidates,
		Retained:   result.Retained,
		Keyframes:  result.Keyframes,
		Bytes:      len(result.CSS),
		DurationMS: float64(result.Duration.Microseconds()) / 1000,
		Categories: make(map[string]int, len(result.Categories)),
		Warnings:   result.Warnings,
	}
	if result.Descriptor != nil {
		out.Sources = result.Descriptor.Sources
	}
	for cat, n := range result.Categories {
		out.Categories[string(cat)] = n
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

package twgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twgen/internal/diag"
)

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div class=\"flex\">",
			column:     15,
			want:       "              ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<span class=\"p-4\">",
			column:     16,
			want:       "\t\t             ^",
		},
		{
			name:       "start of line",
			sourceLine: "class=\"flex\"",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, buildCaretIndicator(tt.sourceLine, tt.column))
		})
	}
}

func sampleLintResult() *LintResult {
	return &LintResult{
		Issues: []Issue{
			{
				FromLinter:  LinterName,
				Text:        `unknown class "text-chartreuse": no utility or stylesheet class matches`,
				Severity:    SeverityWarning,
				SourceLines: []string{`<div class="flex text-chartreuse">`},
				Pos:         IssuePos{Filename: "b.html", Line: 1, Column: 18},
				Class:       "text-chartreuse",
			},
			{
				FromLinter:  LinterName,
				Text:        `malformed class "text-[10px": unbalanced brackets`,
				Severity:    SeverityError,
				SourceLines: []string{`<p class="text-[10px">`},
				Pos:         IssuePos{Filename: "a.html", Line: 3, Column: 11},
				Class:       "text-[10px",
			},
		},
		FilesScanned: 2,
		ClassesFound: 4,
		KnownClasses: 2,
		ErrorCount:   1,
		WarningCount: 1,
		TopUnknown:   []ClassCount{{Class: "text-chartreuse", Occurrences: 1}},
	}
}

func TestReporterPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, LintConfig{PrintIssuedLines: true, PrintLinterName: true})
	require.False(t, reporter.UseColors(), "a buffer is not a terminal")

	result := sampleLintResult()
	reporter.PrintIssues(result.Issues)
	reporter.PrintSummary(*result)

	want := `a.html:3:11: malformed class "text-[10px": unbalanced brackets (twlint)
	<p class="text-[10px">
	          ^
b.html:1:18: unknown class "text-chartreuse": no utility or stylesheet class matches (twlint)
	<div class="flex text-chartreuse">
	                 ^

2 issues (1 error, 1 warning):
* twlint: 2

Hint: Run with --format full to see statistics
`
	assert.Equal(t, want, buf.String())
}

func TestReporterSummaryNoIssues(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, LintConfig{}).PrintSummary(LintResult{})
	assert.Equal(t, "\n0 issues:\n", buf.String())
}

func TestPrintError(t *testing.T) {
	var diags diag.List
	diags.Add(diag.ErrInvalidClass, "safelist[2]", "%q does not match any utility", "nope")
	diags.Add(diag.ErrDanglingKeyframes, "theme.extend.animation.fade", "keyframes %q are not defined", "fadeIn")
	err := diags.WithSource("twgen.config.yaml").Err()

	var buf bytes.Buffer
	PrintError(&buf, err, false)
	assert.Equal(t, `2 configuration errors:
  twgen.config.yaml: safelist[2]: "nope" does not match any utility
  twgen.config.yaml: theme.extend.animation.fade: keyframes "fadeIn" are not defined
`, buf.String())

	buf.Reset()
	PrintError(&buf, fmt.Errorf("read input stylesheet: %w", errors.New("boom")), false)
	assert.Equal(t, "error: read input stylesheet: boom\n", buf.String())
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "default", expected: OutputIssues},
		{name: "issues", formatFlag: "issues", expected: OutputIssues},
		{name: "summary", formatFlag: "summary", expected: OutputSummary},
		{name: "full", formatFlag: "full", expected: OutputFull},
		{name: "json", formatFlag: "json", expected: OutputJSON},
		{name: "unknown falls back", formatFlag: "xml", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestWriteOutputSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleLintResult(), OutputSummary, LintConfig{}))

	out := buf.String()
	assert.Contains(t, out, "Files Scanned:   2\n")
	assert.Contains(t, out, "Known:           2 (50.0%)\n")
	assert.Contains(t, out, `1. "text-chartreuse" - 1 occurrence`)
	assert.NotContains(t, out, "a.html:3:11")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleLintResult(), OutputJSON, LintConfig{}))

	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0", decoded.Version)
	assert.Equal(t, 2, decoded.Summary.TotalIssues)
	assert.Equal(t, 1, decoded.Summary.Errors)
	assert.Equal(t, 1, decoded.Summary.Warnings)
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "text-chartreuse", decoded.Issues[0].Class)
	assert.Equal(t, []JSONClassCount{{Class: "text-chartreuse", Occurrences: 1}}, decoded.TopUnknown)

	_, err := time.Parse(time.RFC3339, decoded.Timestamp)
	assert.NoError(t, err)
}

func TestPrintBuild(t *testing.T) {
	result := &BuildResult{
		Stats:      ScanStats{FilesDiscovered: 3, FilesScanned: 2, CacheHits: 1, Candidates: 12},
		Retained:   []string{"flex", "animate-toast-progress"},
		Keyframes:  []string{"shrinkProgress"},
		CSS:        []byte("0123456789"),
		Categories: map[PropertyCategory]int{CategoryLayout: 1, CategoryEffects: 1},
		Warnings:   []string{`ignoring unsupported option "darkMode"`},
	}

	var buf bytes.Buffer
	WriteBuildSummary(&buf, result, false)

	out := buf.String()
	assert.Contains(t, out, "Files:           3 matched, 2 scanned, 1 cached\n")
	assert.Contains(t, out, "Utilities:       2\n")
	assert.Contains(t, out, "Keyframes:       shrinkProgress\n")
	assert.Contains(t, out, "Size:            10 bytes\n")
	assert.Contains(t, out, "  Effects:     1\n  Layout:      1\n")
	assert.Contains(t, out, `• ignoring unsupported option "darkMode"`)
}

func TestWriteBuildJSON(t *testing.T) {
	result := &BuildResult{
		Retained:   []string{"flex"},
		Keyframes:  []string{},
		CSS:        []byte(".flex{display:flex}"),
		Categories: map[PropertyCategory]int{CategoryLayout: 1},
		Duration:   1500 * time.Microsecond,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBuildJSON(&buf, result))

	var decoded JSONBuild
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"flex"}, decoded.Retained)
	assert.Equal(t, 19, decoded.Bytes)
	assert.InDelta(t, 1.5, decoded.DurationMS, 0.001)
	assert.Equal(t, map[string]int{"Layout": 1}, decoded.Categories)
}

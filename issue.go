package twgen

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "twlint"
	Text        string     `json:"Text"`        // "unknown class \"text-chartreuse\""
	Severity    string     `json:"Severity"`    // "warning", "error"
	SourceLines []string   `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Optional range
	Class       string     `json:"-"`
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "app/templates/base.html"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the class token)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// LinterName is reported in Issue.FromLinter.
const LinterName = "twlint"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue messages
const (
	IssueMalformedClass = "malformed class %q: %s"
	IssueUnknownClass   = "unknown class %q: no utility or stylesheet class matches"
)

package twgen

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twgen/internal/diag"
	"github.com/yacobolo/twgen/internal/extract"
	"github.com/yacobolo/twgen/internal/stylesheet"
	"github.com/yacobolo/twgen/internal/utility"
)

// classAttr finds class attribute openings: class=, className=, className={
// and the :class / v-bind:class bindings. The last group is the quote.
var classAttr = regexp.MustCompile(`(:?)\b(?:class|className)\s*=\s*(?:\{\s*)?(["'` + "`" + `])`)

// templateExpr matches template interpolations, which are blanked before
// tokenizing so their contents are not reported.
var templateExpr = regexp.MustCompile(`\{\{.*?\}\}|\$\{.*?\}|\{%.*?%\}|<%.*?%>`)

// classValue is a class attribute value and its 0-based byte offset within
// the line.
type classValue struct {
	text   string
	offset int
}

// findClassValues extracts class attribute values from one line. Bound
// attributes (":class") contribute their quoted string literals.
func findClassValues(line string) []classValue {
	var out []classValue

	for _, m := range classAttr.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > 0 && line[m[0]-1] == '-' {
			// data-class=, aria-class= and friends
			continue
		}
		quote := line[m[4]]
		start := m[5]
		end := strings.IndexByte(line[start:], quote)
		if end < 0 {
			continue
		}
		value := line[start : start+end]

		if m[3] > m[2] {
			out = append(out, quotedLiterals(value, start, quote)...)
			continue
		}
		out = append(out, classValue{text: value, offset: start})
	}
	return out
}

// quotedLiterals returns the string literals inside a bound expression.
func quotedLiterals(expr string, base int, outer byte) []classValue {
	inner := byte('\'')
	if outer == '\'' {
		inner = '"'
	}

	var out []classValue
	for i := 0; i < len(expr); i++ {
		if expr[i] != inner {
			continue
		}
		end := strings.IndexByte(expr[i+1:], inner)
		if end < 0 {
			break
		}
		out = append(out, classValue{text: expr[i+1 : i+1+end], offset: base + i + 1})
		i += end + 1
	}
	return out
}

// blankTemplates replaces interpolations with spaces, keeping offsets.
func blankTemplates(value string) string {
	return templateExpr.ReplaceAllStringFunc(value, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
}

// findClassColumn returns the 1-based column of className within line, or 0.
func findClassColumn(line string, className string) int {
	for _, v := range findClassValues(line) {
		for _, tok := range extract.Tokens(blankTemplates(v.text)) {
			if tok.Text == className {
				return v.offset + tok.Offset + 1
			}
		}
	}
	return 0
}

// Lint scans content files for class attributes. Tokens that fail the
// class-name grammar are errors; tokens that match neither a utility, the
// safelist nor a class defined in the input stylesheet are warnings.
func Lint(ctx context.Context, cfg LintConfig) (*LintResult, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}

	p, err := loadProject(cfg.Config)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, token := range p.desc.Safelist {
		known[token] = true
	}
	if cfg.Input != "" {
		input, err := os.ReadFile(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("read input stylesheet: %w", err)
		}
		for _, class := range stylesheet.DefinedClasses(input) {
			known[class] = true
		}
	}

	files, err := ResolveContent(cfg.Root, p.desc.Content)
	if err != nil {
		return nil, withSource(err, p.desc.Source())
	}

	perFile := make([][]Issue, len(files))
	counts := make([]fileCounts, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers())
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issues, c, err := lintFile(file, p.resolver, known)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("lint %s: %w", file, err)
			}
			perFile[i], counts[i] = issues, c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LintResult{FilesScanned: len(files), Warnings: p.warnings}
	unknown := make(map[string]int)
	for i := range files {
		result.Issues = append(result.Issues, perFile[i]...)
		result.ClassesFound += counts[i].found
		result.KnownClasses += counts[i].known
	}
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
			unknown[issue.Class]++
		}
	}

	result.TopUnknown = topClasses(unknown, 10)
	result.Issues, result.TruncatedCount = limitSameIssues(result.Issues, cfg.MaxSameIssues)
	return result, nil
}

type fileCounts struct {
	found int
	known int
}

func lintFile(path string, resolver *utility.Resolver, known map[string]bool) ([]Issue, fileCounts, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileCounts{}, err
	}

	var issues []Issue
	var counts fileCounts

	err = withContent(path, info.Size(), func(data []byte) error {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
		lineNum := 0

		for scanner.Scan() {
			lineNum++
			line := scanner.Text()

			for _, v := range findClassValues(line) {
				for _, tok := range extract.Tokens(blankTemplates(v.text)) {
					counts.found++
					column := v.offset + tok.Offset + 1

					c, err := utility.ParseCandidate(tok.Text)
					if err != nil {
						issues = append(issues, newIssue(path, line, lineNum, column, tok.Text, SeverityError,
							fmt.Sprintf(IssueMalformedClass, tok.Text, classErrorReason(err, tok.Text))))
						continue
					}
					if known[tok.Text] {
						counts.known++
						continue
					}
					if _, ok := resolver.ResolveCandidate(c); ok {
						counts.known++
						continue
					}
					issues = append(issues, newIssue(path, line, lineNum, column, tok.Text, SeverityWarning,
						fmt.Sprintf(IssueUnknownClass, tok.Text)))
				}
			}
		}
		return scanner.Err()
	})
	return issues, counts, err
}

func newIssue(file, line string, lineNum, column int, class, severity, text string) Issue {
	return Issue{
		FromLinter:  LinterName,
		Text:        text,
		Severity:    severity,
		SourceLines: []string{line},
		Pos:         IssuePos{Filename: file, Line: lineNum, Column: column},
		Class:       class,
	}
}

// classErrorReason strips the kind and token from a grammar error.
func classErrorReason(err error, token string) string {
	prefix := diag.ErrInvalidClass.Error() + " " + strconv.Quote(token) + ": "
	return strings.TrimPrefix(err.Error(), prefix)
}

// limitSameIssues keeps at most limit issues with identical text. A limit
// of zero keeps everything.
func limitSameIssues(issues []Issue, limit int) ([]Issue, int) {
	if limit <= 0 {
		return issues, 0
	}
	seen := make(map[string]int)
	kept := issues[:0]
	truncated := 0
	for _, issue := range issues {
		seen[issue.Text]++
		if seen[issue.Text] > limit {
			truncated++
			continue
		}
		kept = append(kept, issue)
	}
	return kept, truncated
}

func topClasses(counts map[string]int, n int) []ClassCount {
	out := make([]ClassCount, 0, len(counts))
	for class, count := range counts {
		out = append(out, ClassCount{Class: class, Occurrences: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Class < out[j].Class
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	"github.com/yacobolo/twgen/internal/diag"
)

// jsProvider is a koanf.Provider that evaluates the literal exported by a
// tailwind.config.js or tailwind.config.ts file. Only static data is supported: the file is
// parsed, never executed.
type jsProvider struct {
	path string
}

// JSProvider returns a koanf provider for a JavaScript config file.
func JSProvider(path string) *jsProvider {
	return &jsProvider{path: path}
}

// ReadBytes is not supported; the provider returns a parsed map.
func (p *jsProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("js provider does not support this method")
}

// Read parses the file and returns the exported object.
func (p *jsProvider) Read() (map[string]interface{}, error) {
	// #nosec G304 - path comes from discovery or an explicit flag
	src, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	return ParseJS(src, p.path)
}

// isTypeScript reports whether a config path names a TypeScript file.
func isTypeScript(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return true
	}
	return false
}

// ParseJS extracts the configuration object from JavaScript source. A
// source name ending in .ts is parsed as TypeScript; type annotations,
// "as" and "satisfies" are ignored.
func ParseJS(src []byte, source string) (map[string]any, error) {
	parser := ts.NewParser()
	defer parser.Close()

	lang := ts.NewLanguage(ts_javascript.Language())
	if isTypeScript(source) {
		lang = ts.NewLanguage(ts_typescript.LanguageTypescript())
	}
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set parser language: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", source)
	}
	defer tree.Close()

	ev := &jsEvaluator{src: src, bindings: map[string]*ts.Node{}}
	root := tree.RootNode()

	if root.HasError() {
		ev.fail(firstError(root), "", "syntax error")
		return nil, ev.diags.WithSource(source).Err()
	}

	exported := ev.findExport(root)
	if exported == nil {
		ev.diags.Add(diag.ErrUnsupportedSyntax, "", "no module.exports or export default found")
		return nil, ev.diags.WithSource(source).Err()
	}

	value := ev.eval(exported, "")
	if err := ev.diags.WithSource(source).Err(); err != nil {
		return nil, err
	}

	obj, ok := value.(map[string]any)
	if !ok {
		ev.fail(exported, "", "exported value must be an object")
		return nil, ev.diags.WithSource(source).Err()
	}
	return obj, nil
}

type jsEvaluator struct {
	src      []byte
	bindings map[string]*ts.Node // const/let/var name -> initialiser
	diags    diag.List
	depth    int
}

func (ev *jsEvaluator) text(n *ts.Node) string {
	return n.Utf8Text(ev.src)
}

func (ev *jsEvaluator) fail(n *ts.Node, entry, format string, args ...any) {
	d := diag.Diagnostic{
		Kind:    diag.ErrUnsupportedSyntax,
		Entry:   entry,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		pos := n.StartPosition()
		d.Line = int(pos.Row) + 1
		d.Column = int(pos.Column) + 1
	}
	ev.diags = append(ev.diags, d)
}

// findExport walks top-level statements, recording variable bindings, and
// returns the node assigned to module.exports or exported as default.
func (ev *jsEvaluator) findExport(root *ts.Node) *ts.Node {
	var exported *ts.Node

	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Kind() {
		case "lexical_declaration", "variable_declaration":
			ev.recordBindings(stmt)

		case "expression_statement":
			expr := stmt.NamedChild(0)
			if expr == nil || expr.Kind() != "assignment_expression" {
				continue
			}
			left := expr.ChildByFieldName("left")
			if left != nil && strings.ReplaceAll(ev.text(left), " ", "") == "module.exports" {
				exported = expr.ChildByFieldName("right")
			}

		case "export_statement":
			if value := stmt.ChildByFieldName("value"); value != nil {
				exported = value
				continue
			}
			if decl := stmt.ChildByFieldName("declaration"); decl != nil {
				ev.recordBindings(decl)
			}
		}
	}

	return exported
}

func (ev *jsEvaluator) recordBindings(decl *ts.Node) {
	for i := uint(0); i < uint(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Kind() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if name != nil && value != nil && name.Kind() == "identifier" {
			ev.bindings[ev.text(name)] = value
		}
	}
}

// eval converts a literal expression node into Go values: map[string]any,
// []any, string, int, float64, bool or nil.
func (ev *jsEvaluator) eval(n *ts.Node, entry string) any {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > 64 {
		ev.fail(n, entry, "expression nested too deeply")
		return nil
	}

	switch n.Kind() {
	case "object":
		return ev.evalObject(n, entry)

	case "array":
		var out []any
		idx := 0
		for i := uint(0); i < uint(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Kind() == "comment" {
				continue
			}
			out = append(out, ev.eval(child, fmt.Sprintf("%s[%d]", entry, idx)))
			idx++
		}
		if out == nil {
			out = []any{}
		}
		return out

	case "string":
		return unquoteJS(ev.text(n))

	case "template_string":
		for i := uint(0); i < uint(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Kind() == "template_substitution" {
				ev.fail(n, entry, "template substitutions are not supported")
				return nil
			}
		}
		raw := ev.text(n)
		return raw[1 : len(raw)-1]

	case "number":
		return parseJSNumber(ev.text(n))

	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil

	case "unary_expression":
		operand := n.ChildByFieldName("argument")
		op := n.ChildByFieldName("operator")
		if operand != nil && op != nil && ev.text(op) == "-" && operand.Kind() == "number" {
			switch v := parseJSNumber(ev.text(operand)).(type) {
			case int:
				return -v
			case float64:
				return -v
			}
		}

	case "parenthesized_expression", "satisfies_expression", "as_expression", "non_null_expression":
		if inner := n.NamedChild(0); inner != nil {
			return ev.eval(inner, entry)
		}

	case "identifier":
		name := ev.text(n)
		if bound, ok := ev.bindings[name]; ok {
			return ev.eval(bound, entry)
		}
		ev.fail(n, entry, "identifier %q is not a top-level constant", name)
		return nil

	case "call_expression":
		// require('plugin-name') resolves to the plugin's name.
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn != nil && args != nil && ev.text(fn) == "require" && args.NamedChildCount() == 1 {
			if arg := args.NamedChild(0); arg.Kind() == "string" {
				return unquoteJS(ev.text(arg))
			}
		}
	}

	ev.fail(n, entry, "unsupported expression %s", n.Kind())
	return nil
}

func (ev *jsEvaluator) evalObject(n *ts.Node, entry string) map[string]any {
	out := map[string]any{}

	for i := uint(0); i < uint(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "comment":
			continue
		case "pair":
			keyNode := child.ChildByFieldName("key")
			valueNode := child.ChildByFieldName("value")
			if keyNode == nil || valueNode == nil {
				continue
			}
			key, ok := ev.keyName(keyNode, entry)
			if !ok {
				continue
			}
			out[key] = ev.eval(valueNode, joinEntry(entry, key))
		case "shorthand_property_identifier":
			name := ev.text(child)
			if bound, ok := ev.bindings[name]; ok {
				out[name] = ev.eval(bound, joinEntry(entry, name))
				continue
			}
			ev.fail(child, joinEntry(entry, name), "identifier %q is not a top-level constant", name)
		default:
			ev.fail(child, entry, "unsupported object member %s", child.Kind())
		}
	}

	return out
}

func (ev *jsEvaluator) keyName(n *ts.Node, entry string) (string, bool) {
	switch n.Kind() {
	case "property_identifier", "number":
		return ev.text(n), true
	case "string":
		return unquoteJS(ev.text(n)), true
	}
	ev.fail(n, entry, "unsupported object key %s", n.Kind())
	return "", false
}

func joinEntry(entry, key string) string {
	if entry == "" {
		return key
	}
	return entry + "." + key
}

func firstError(n *ts.Node) *ts.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	return n
}

func parseJSNumber(text string) any {
	clean := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f
	}
	return text
}

// unquoteJS strips the quotes of a single- or double-quoted JS string
// literal and resolves the common escape sequences.
func unquoteJS(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	inner := lit[1 : len(lit)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i == len(inner)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(inner) {
				if r, err := strconv.ParseUint(inner[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}

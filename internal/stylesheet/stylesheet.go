// Package stylesheet holds the generated CSS model and its serializer.
package stylesheet

import (
	"bufio"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is one generated utility rule.
type Rule struct {
	Class        string // Raw class token, e.g. "text-[10px]"
	Selector     string // Escaped selector with variants applied
	Media        string // Media query without "@media", empty for none
	Declarations []Declaration
}

// Stop is one keyframe step. Selectors are "from", "to" or percentages.
type Stop struct {
	Selectors    []string
	Declarations []Declaration
}

// Keyframes is a named @keyframes block.
type Keyframes struct {
	Name  string
	Stops []Stop
}

// Stylesheet is the complete generated output before serialization.
type Stylesheet struct {
	Keyframes []Keyframes
	Rules     []Rule
}

// Options controls serialization.
type Options struct {
	Minify bool
}

// Write serializes the stylesheet. Keyframes come first, then rules in
// order; consecutive rules sharing a media query share one @media block.
func Write(w io.Writer, s *Stylesheet, opts Options) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, minify: opts.Minify}

	for _, kf := range s.Keyframes {
		p.keyframes(kf)
	}

	for i := 0; i < len(s.Rules); {
		media := s.Rules[i].Media
		j := i
		for j < len(s.Rules) && s.Rules[j].Media == media {
			j++
		}
		if media == "" {
			for _, rule := range s.Rules[i:j] {
				p.rule(rule.Selector, rule.Declarations, 0)
			}
		} else {
			p.open("@media "+media, 0)
			for _, rule := range s.Rules[i:j] {
				p.rule(rule.Selector, rule.Declarations, 1)
			}
			p.close(0)
			p.blank()
		}
		i = j
	}

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// String serializes the stylesheet to a string.
func (s *Stylesheet) String() string {
	var b strings.Builder
	_ = Write(&b, s, Options{})
	return b.String()
}

type printer struct {
	w      *bufio.Writer
	minify bool
	err    error
}

func (p *printer) write(parts ...string) {
	if p.err != nil {
		return
	}
	for _, part := range parts {
		if _, err := p.w.WriteString(part); err != nil {
			p.err = err
			return
		}
	}
}

func (p *printer) indent(depth int) {
	if !p.minify {
		p.write(strings.Repeat("  ", depth))
	}
}

func (p *printer) open(header string, depth int) {
	p.indent(depth)
	if p.minify {
		p.write(header, "{")
		return
	}
	p.write(header, " {\n")
}

func (p *printer) close(depth int) {
	p.indent(depth)
	if p.minify {
		p.write("}")
		return
	}
	p.write("}\n")
}

func (p *printer) blank() {
	if !p.minify {
		p.write("\n")
	}
}

func (p *printer) declarations(decls []Declaration, depth int) {
	for i, d := range decls {
		value := d.Value
		if d.Important {
			value += " !important"
		}
		if p.minify {
			p.write(d.Property, ":", value)
			if i < len(decls)-1 {
				p.write(";")
			}
			continue
		}
		p.indent(depth)
		p.write(d.Property, ": ", value, ";\n")
	}
}

func (p *printer) rule(selector string, decls []Declaration, depth int) {
	p.open(selector, depth)
	p.declarations(decls, depth+1)
	p.close(depth)
	if depth == 0 {
		p.blank()
	}
}

func (p *printer) keyframes(kf Keyframes) {
	p.open("@keyframes "+kf.Name, 0)
	sep := ", "
	if p.minify {
		sep = ","
	}
	for _, stop := range kf.Stops {
		p.open(strings.Join(stop.Selectors, sep), 1)
		p.declarations(stop.Declarations, 2)
		p.close(1)
	}
	p.close(0)
	p.blank()
}

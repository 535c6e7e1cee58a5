package stylesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

func sampleSheet() *Stylesheet {
	return &Stylesheet{
		Keyframes: []Keyframes{{
			Name: "shrinkProgress",
			Stops: []Stop{
				{Selectors: []string{"0%"}, Declarations: []Declaration{{Property: "width", Value: "100%"}}},
				{Selectors: []string{"100%"}, Declarations: []Declaration{{Property: "width", Value: "0%"}}},
			},
		}},
		Rules: []Rule{
			{Class: "animate-toast-progress", Selector: ClassSelector("animate-toast-progress"), Declarations: []Declaration{{Property: "animation", Value: "shrinkProgress 10s linear forwards"}}},
			{Class: "text-[10px]", Selector: ClassSelector("text-[10px]"), Declarations: []Declaration{{Property: "font-size", Value: "10px"}}},
			{Class: "sm:font-bold", Selector: ClassSelector("sm:font-bold"), Media: "(min-width: 640px)", Declarations: []Declaration{{Property: "font-weight", Value: "700"}}},
		},
	}
}

func TestWritePretty(t *testing.T) {
	want := `@keyframes shrinkProgress {
  0% {
    width: 100%;
  }
  100% {
    width: 0%;
  }
}

.animate-toast-progress {
  animation: shrinkProgress 10s linear forwards;
}

.text-\[10px\] {
  font-size: 10px;
}

@media (min-width: 640px) {
  .sm\:font-bold {
    font-weight: 700;
  }
}

`
	assert.Equal(t, want, sampleSheet().String())
}

func TestWriteMinified(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Write(&b, sampleSheet(), Options{Minify: true}))
	assert.Equal(t,
		`@keyframes shrinkProgress{0%{width:100%}100%{width:0%}}`+
			`.animate-toast-progress{animation:shrinkProgress 10s linear forwards}`+
			`.text-\[10px\]{font-size:10px}`+
			`@media (min-width: 640px){.sm\:font-bold{font-weight:700}}`,
		b.String())
}

// The serializer output must be valid CSS: every rule parses back with the
// selector and declarations intact.
func TestWriteParsesBack(t *testing.T) {
	p := css.NewParser(parse.NewInputString(sampleSheet().String()), false)

	var selectors []string
	declarations := map[string]string{}
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		}
		switch gt {
		case css.BeginRulesetGrammar:
			var sel strings.Builder
			for _, val := range p.Values() {
				sel.Write(val.Data)
			}
			selectors = append(selectors, strings.TrimSpace(sel.String()))
		case css.DeclarationGrammar:
			var val strings.Builder
			for _, v := range p.Values() {
				val.Write(v.Data)
			}
			declarations[string(data)] = strings.TrimSpace(val.String())
		}
	}

	assert.Contains(t, selectors, `.text-\[10px\]`)
	assert.Contains(t, selectors, `.sm\:font-bold`)
	assert.Equal(t, "10px", declarations["font-size"])
	assert.Equal(t, "700", declarations["font-weight"])
}

func TestEscapeClass(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"bg-red-600", `bg-red-600`},
		{"text-[10px]", `text-\[10px\]`},
		{"hover:bg-red-500", `hover\:bg-red-500`},
		{"w-1/2", `w-1\/2`},
		{"p-0.5", `p-0\.5`},
		{"bg-[#ff0000]", `bg-\[\#ff0000\]`},
		{"-m-4", `-m-4`},
		{"2xl:p-4", `\32 xl\:p-4`},
		{"w-[calc(100%-1rem)]", `w-\[calc\(100\%-1rem\)\]`},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			got := EscapeClass(tt.class)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.class, UnescapeClass(got), "round trip")
		})
	}
}

func TestSplice(t *testing.T) {
	input := []byte("/* app */\n@tailwind base;\n@tailwind components;\n@tailwind utilities;\n.btn { color: red; }\n")
	out, found, err := Splice(input, func(name string) []byte {
		if name == LayerUtilities {
			return []byte(".font-bold{font-weight:700}")
		}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/* app */\n\n\n.font-bold{font-weight:700}\n.btn { color: red; }\n", string(out))
}

func TestSpliceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown layer", input: "@tailwind everything;"},
		{name: "missing layer", input: "@tailwind ;"},
		{name: "two layers", input: "@tailwind base components;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Splice([]byte(tt.input), func(string) []byte { return nil })
			require.Error(t, err)
		})
	}
}

func TestSpliceWithoutDirective(t *testing.T) {
	out, found, err := Splice([]byte(".a { color: red; }"), func(string) []byte { return []byte("x") })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, ".a { color: red; }", string(out))
}

func TestDefinedClasses(t *testing.T) {
	input := []byte(`@layer components {
  .btn { padding: .5rem 1rem; }
  .btn:hover, .card > .card__title { color: red; }
}
.toast { background: url(img/bg.png); }`)
	assert.Equal(t, []string{"btn", "card", "card__title", "toast"}, DefinedClasses(input))
}

func TestPlugins(t *testing.T) {
	t.Run("reduced-motion", func(t *testing.T) {
		plugin, ok := LookupPlugin("reduced-motion")
		require.True(t, ok)

		s := sampleSheet()
		require.NoError(t, plugin.Apply(s))
		last := s.Rules[len(s.Rules)-1]
		assert.Equal(t, "animate-toast-progress", last.Class)
		assert.Equal(t, "(prefers-reduced-motion: reduce)", last.Media)
		assert.Equal(t, []Declaration{{Property: "animation", Value: "none"}}, last.Declarations)
	})

	t.Run("important", func(t *testing.T) {
		plugin, ok := LookupPlugin("important")
		require.True(t, ok)

		s := sampleSheet()
		require.NoError(t, plugin.Apply(s))
		assert.Contains(t, s.String(), "font-size: 10px !important;")
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := LookupPlugin("@tailwindcss/forms")
		assert.False(t, ok)
	})

	assert.Equal(t, []string{"important", "reduced-motion"}, PluginNames())
}

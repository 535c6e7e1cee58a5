package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "class attribute",
			content: `<div class="flex text-red-500 font-bold"></div>`,
			want:    []string{"div", "class", "flex", "text-red-500", "font-bold"},
		},
		{
			name:    "arbitrary value kept intact",
			content: `<span class="text-[10px] bg-[#ff0000]">`,
			want:    []string{"span", "class", "text-[10px]", "bg-[#ff0000]"},
		},
		{
			name:    "arbitrary value with underscores",
			content: `class="grid-cols-[1fr_2fr]"`,
			want:    []string{"class", "grid-cols-[1fr_2fr]"},
		},
		{
			name:    "variants",
			content: `class="hover:bg-blue-500 md:w-1/2"`,
			want:    []string{"class", "hover:bg-blue-500", "md:w-1/2"},
		},
		{
			name:    "duplicates collapse",
			content: `p-4 p-4 m-2 p-4`,
			want:    []string{"p-4", "m-2"},
		},
		{
			name:    "sentence punctuation trimmed",
			content: `Use rounded-full. Or shadow:`,
			want:    []string{"Use", "rounded-full", "Or", "shadow"},
		},
		{
			name:    "js string arrays",
			content: `const cls = ["animate-toast-progress", 'text-white'];`,
			want:    []string{"const", "cls", "animate-toast-progress", "text-white"},
		},
		{
			name:    "numbers alone are not candidates",
			content: `width: 100 200`,
			want:    []string{"width"},
		},
		{
			name:    "unterminated bracket dropped",
			content: `text-[10px more`,
			want:    []string{"more"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates([]byte(tt.content)))
		})
	}
}

func TestCandidatesEmpty(t *testing.T) {
	assert.Empty(t, Candidates(nil))
	assert.Empty(t, Candidates([]byte("  \n\t ")))
}

func TestTokens(t *testing.T) {
	got := Tokens("  btn  text-[10px]\tp-4 ")
	assert.Equal(t, []Token{
		{Text: "btn", Offset: 2},
		{Text: "text-[10px]", Offset: 7},
		{Text: "p-4", Offset: 19},
	}, got)
}

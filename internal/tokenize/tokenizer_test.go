package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_CountsOccurrences(t *testing.T) {
	tok := New(nil)

	words := tok.Tokenize("Hello world hello HELLO")

	assert.Equal(t, map[string]int{"hello": 3, "world": 1}, words)
}

func TestTokenize_BoundaryPunctuation(t *testing.T) {
	tok := New(nil)

	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{"trailing period", "end.", map[string]int{"end": 1}},
		{"sentence periods", "one. two. three.", map[string]int{"one": 1, "two": 1, "three": 1}},
		{"trailing colon", "label: value", map[string]int{"label": 1, "value": 1}},
		{"commas", "a, b, c", map[string]int{"a": 1, "b": 1, "c": 1}},
		{"dangling hyphens", "- start - end -", map[string]int{"start": 1, "end": 1}},
		{"hyphenated word kept", "e-mail", map[string]int{"e-mail": 1}},
		{"dotted token kept", "v1.2.3", map[string]int{"v1.2.3": 1}},
		{"punctuation only", ". , : -", map[string]int{}},
		{"plus prefix stripped", "+go +rust", map[string]int{"go": 1, "rust": 1}},
		{"apostrophe kept inside", "don't", map[string]int{"don't": 1}},
		{"accent quotes folded", "don´t", map[string]int{"don't": 1}},
		{"symbols dropped", "a&b (c)", map[string]int{"a": 1, "b": 1, "c": 1}},
		{"numbers kept", "im Jahr 2024", map[string]int{"im": 1, "jahr": 1, "2024": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestTokenize_FiltersStopwords(t *testing.T) {
	tok := New(NewStopwordSet())

	words := tok.Tokenize("the quick fox und der Hund")

	assert.NotContains(t, words, "the")
	assert.NotContains(t, words, "und")
	assert.NotContains(t, words, "der")
	assert.Contains(t, words, "quick")
	assert.Contains(t, words, "fox")
	assert.Contains(t, words, "hund")
}

func TestTokenize_NilStopwordSet(t *testing.T) {
	tok := New(nil)

	words := tok.Tokenize("the und")

	assert.Equal(t, map[string]int{"the": 1, "und": 1}, words)
}

func TestTokenize_Empty(t *testing.T) {
	tok := New(NewStopwordSet())

	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("   "))
}

func TestNewStopwordSet_Languages(t *testing.T) {
	both := NewStopwordSet()
	assert.True(t, both.Contains("the"))
	assert.True(t, both.Contains("und"))

	english := NewStopwordSet("en")
	assert.True(t, english.Contains("the"))
	assert.False(t, english.Contains("und"))

	german := NewStopwordSet("de")
	assert.True(t, german.Contains("und"))
	assert.False(t, german.Contains("the"))
}

func TestStopwordSet_ExactMatchOnly(t *testing.T) {
	set := NewStopwordSet("en")

	// "theme" starts with a stopword but is not one.
	assert.False(t, set.Contains("theme"))
}

func TestStopwordSet_UnknownLanguageIgnored(t *testing.T) {
	set := NewStopwordSet("fr")

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains("le"))
}

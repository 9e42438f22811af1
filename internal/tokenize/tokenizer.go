package tokenize

import (
	"regexp"
	"strings"
)

// Pre-compiled normalization rules. The big alternation keeps letters,
// digits and the set ' . : , + _ - while folding boundary punctuation
// around words (trailing ". ", ": ", ", " runs and dangling hyphens and
// apostrophes) to spaces.
var (
	nonIndexable = regexp.MustCompile(`[^\pL\pN'.:,+_-]|- | -|' | '|\. |\.$|: |:$|, |,$`)
	punctOnly    = regexp.MustCompile(`^[.:,'_-]+$`)
	leadingPunct = regexp.MustCompile(`^[':,]`)
	trailerPunct = regexp.MustCompile(`[':,.]$`)
)

// quoteChars folds acute and grave accents used as quotes to a
// canonical apostrophe.
var quoteChars = strings.NewReplacer("´", "'", "`", "'")

// Tokenizer splits text into counted words, filtering stopwords.
type Tokenizer struct {
	stop *StopwordSet
}

// New creates a Tokenizer with the given stopword set. A nil set
// disables stopword filtering.
func New(stop *StopwordSet) *Tokenizer {
	return &Tokenizer{stop: stop}
}

// Tokenize normalizes text and returns the surviving word→occurrence
// multiset.
func (t *Tokenizer) Tokenize(text string) map[string]int {
	text = quoteChars.Replace(text)
	text = nonIndexable.ReplaceAllString(text, " ")
	text = strings.ToLower(text)

	words := make(map[string]int)
	for _, word := range strings.Fields(text) {
		word = strings.TrimPrefix(word, "+")
		word = strings.TrimSpace(word)

		if word == "" || punctOnly.MatchString(word) {
			continue
		}
		if leadingPunct.MatchString(word) {
			word = word[1:]
		}
		if m := trailerPunct.FindStringIndex(word); m != nil {
			word = word[:m[0]]
		}
		if word == "" {
			continue
		}
		if t.stop.Contains(word) {
			continue
		}
		words[word]++
	}
	return words
}

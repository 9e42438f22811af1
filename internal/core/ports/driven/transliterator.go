package driven

// Transliterator maps a word to its comparable form: a transliterated,
// diacritic-normalized representation used for approximate matching.
// Implementations must be pure: same input, same output, no side effects.
type Transliterator interface {
	Transliterate(word string) string
}

// TransliterateFunc adapts a plain function to the Transliterator interface.
type TransliterateFunc func(string) string

// Transliterate calls f(word).
func (f TransliterateFunc) Transliterate(word string) string {
	return f(word)
}

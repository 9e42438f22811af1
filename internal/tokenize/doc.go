// Package tokenize splits normalized page text into a word-frequency
// multiset. Punctuation is folded per a fixed ruleset, words are
// lowercased with full multi-byte awareness, and stopwords from every
// active language list are dropped regardless of the document language.
package tokenize

package domain

// Phrase is a quoted query phrase.
type Phrase struct {
	// Raw is the phrase text without the surrounding quotes.
	Raw string

	// Words are the constituent words, each of which must be present
	// in a matching document's index entries.
	Words []string

	// Pattern is the word-boundary-safe, regex-escaped representation
	// used for verbatim containment checks against document text.
	Pattern string
}

// ParsedQuery is the structured boolean expression parsed from a raw
// query string. All terms are normalized to lower case.
type ParsedQuery struct {
	// Keywords are plain terms.
	Keywords []string

	// Wildcards are LIKE-style patterns with % wildcards.
	Wildcards []string

	// Included are terms prefixed with + (document must contain one).
	Included []string

	// Excluded are terms prefixed with - (document must contain none).
	Excluded []string

	// Phrases are quoted phrases.
	Phrases []Phrase
}

// SearchOptions configures a search call.
type SearchOptions struct {
	// Or switches to OR semantics: any matched term qualifies a
	// document. Default is AND: all terms are required.
	Or bool

	// Contains turns plain keywords into %keyword% substring
	// wildcards before planning.
	Contains bool

	// ParentIDs restricts results to documents whose parent is in
	// the set. Empty means no restriction.
	ParentIDs []string

	// Limit caps the number of results; 0 means unlimited.
	Limit int

	// Offset skips the first N results.
	Offset int
}

// QueryPlan is the compiled store lookup built from a ParsedQuery.
// Stores execute it as a single grouped, relevance-aggregated query.
type QueryPlan struct {
	// Keywords match index entries exactly.
	Keywords []string

	// Wildcards match index entries with LIKE semantics (% wildcards).
	Wildcards []string

	// Comparables match the transliterated word form exactly. Used by
	// the fuzzy path in place of raw words.
	Comparables []string

	// Phrases must appear verbatim in the document text.
	Phrases []Phrase

	// RequiredCount is the per-document match threshold under AND
	// semantics: keywords + included + phrase words.
	RequiredCount int

	// WildcardCount is the number of wildcard terms. Wildcard matches
	// count flexibly against the threshold: a document qualifies when
	// its wildcard-match count reaches at least this number.
	WildcardCount int

	// Or disables the RequiredCount threshold and combines phrase
	// conditions with OR instead of AND.
	Or bool

	// Included terms require at least one matching entry per document.
	Included []string

	// Excluded terms disqualify any document holding a matching entry.
	Excluded []string

	// ParentIDs restricts results by immediate parent.
	ParentIDs []string

	// Limit and Offset page the result set. Limit 0 means unlimited.
	Limit  int
	Offset int
}

// DocumentMatch is one ranked search hit.
type DocumentMatch struct {
	// Document is the matched document.
	Document Document

	// Words are the index words that matched, for highlighting.
	Words []string

	// Count is the number of matching index entries.
	Count int

	// Relevance is the summed occurrence relevance of the matching
	// entries. Results are ordered by it, descending.
	Relevance int
}

// FuzzyMatch is a near match found by the edit-distance scan.
type FuzzyMatch struct {
	// Word is the original indexed word form.
	Word string

	// Comparable is the transliterated form the distance was
	// computed against.
	Comparable string
}

// FuzzyResult is the outcome of an approximate search.
type FuzzyResult struct {
	// Exact holds ranked hits for query chunks that matched an
	// indexed word at distance 0. Empty when nothing matched exactly.
	Exact []DocumentMatch

	// More buckets near matches by edit distance (1..maxDistance),
	// for presentation as suggestions.
	More map[int][]FuzzyMatch
}

// Distances returns the ascending bucket keys of More.
func (r *FuzzyResult) Distances() []int {
	keys := make([]int, 0, len(r.More))
	for d := range r.More {
		keys = append(keys, d)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

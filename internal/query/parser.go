package query

import (
	"html"
	"regexp"
	"strings"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

// Pre-compiled query cleaning and chunking patterns.
var (
	disallowed   = regexp.MustCompile(`[^\pL\pN *+'".:,_-]|\. |\.$|: |:$|, |,$`)
	chunkPattern = regexp.MustCompile(`"[^"]+"|[+\-]?[^ ]+`)
)

// Phrase boundary fragments. \b is ASCII-only in Go's regexp, so phrases
// starting or ending on a non-ASCII letter need explicit non-word
// anchors.
const (
	phraseOpen  = `(?:^|[^\pL\pN])`
	phraseGap   = `[^\pL\pN]+`
	phraseClose = `(?:[^\pL\pN]|$)`
)

// Chunks normalizes a raw query string and splits it into chunks:
// quoted phrases stay single units, everything else splits on spaces.
// Returns domain.ErrEmptyQuery when nothing survives cleaning.
func Chunks(raw string) ([]string, error) {
	cleaned := strings.ToLower(raw)
	cleaned = html.UnescapeString(cleaned)
	cleaned = disallowed.ReplaceAllString(cleaned, " ")

	if strings.TrimSpace(cleaned) == "" {
		return nil, domain.ErrEmptyQuery
	}
	return chunkPattern.FindAllString(cleaned, -1), nil
}

// Parse builds the structured boolean expression for a query string.
// With contains set, plain keywords become %keyword% substring wildcards.
func Parse(raw string, contains bool) (*domain.ParsedQuery, error) {
	chunks, err := Chunks(raw)
	if err != nil {
		return nil, err
	}

	var q domain.ParsedQuery
	for _, chunk := range chunks {
		// Trailing-* wildcards take precedence over prefix operators.
		if strings.HasSuffix(chunk, "*") && len(chunk) > 1 {
			q.Wildcards = append(q.Wildcards, strings.ReplaceAll(chunk, "*", "%"))
			continue
		}

		switch chunk[0] {
		case '"':
			if raw := strings.TrimSpace(strings.Trim(chunk, `"`)); raw != "" {
				q.Phrases = append(q.Phrases, newPhrase(raw))
			}
		case '+':
			if kw := strings.TrimSpace(chunk[1:]); kw != "" {
				q.Included = append(q.Included, kw)
			}
		case '-':
			if kw := strings.TrimSpace(chunk[1:]); kw != "" {
				q.Excluded = append(q.Excluded, kw)
			}
		case '*':
			if len(chunk) > 1 {
				q.Wildcards = append(q.Wildcards, strings.ReplaceAll(chunk, "*", "%"))
			}
		default:
			q.Keywords = append(q.Keywords, chunk)
		}
	}

	if contains {
		for _, kw := range q.Keywords {
			q.Wildcards = append(q.Wildcards, "%"+kw+"%")
		}
		q.Keywords = nil
	}

	return &q, nil
}

// newPhrase derives the constituent words and the word-boundary-safe
// containment pattern for a quoted phrase. Embedded * wildcards are
// dropped; phrases match verbatim only.
func newPhrase(raw string) domain.Phrase {
	words := strings.Fields(strings.ReplaceAll(raw, "*", ""))

	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}

	return domain.Phrase{
		Raw:     raw,
		Words:   words,
		Pattern: phraseOpen + strings.Join(escaped, phraseGap) + phraseClose,
	}
}

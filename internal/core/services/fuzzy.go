package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/logger"
	"github.com/smohring/contao-cearch-pro/internal/query"
)

// DefaultMaxDistance is the edit distance used for approximate matching
// when the caller does not request one.
const DefaultMaxDistance = 2

// Near matches this short are almost always noise.
const minSuggestionLen = 2

// SearchFuzzy matches keywords approximately. Every chunk of the query
// is transliterated and compared against the indexed comparable forms
// within maxDistance edits. Exact comparable hits are re-run as a
// regular OR query; everything else is returned as suggestions grouped
// by distance.
func (s *Searcher) SearchFuzzy(ctx context.Context, keywords string, opts domain.SearchOptions, maxDistance int) (*domain.FuzzyResult, error) {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	chunks, err := query.Chunks(keywords)
	if err != nil {
		return nil, err
	}

	scan, err := s.scanIndex(ctx, chunks, maxDistance)
	if err != nil {
		return nil, err
	}
	logger.Debug("fuzzy scan: %d exact form(s), %d distance bucket(s)", len(scan.exact), len(scan.more))

	result := &domain.FuzzyResult{More: scan.more}
	if len(scan.exact) == 0 {
		return result, nil
	}

	plan := query.FuzzyPlan(scan.exact, opts)
	matches, err := s.store.SearchDocuments(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	result.Exact = matches
	return result, nil
}

type fuzzyScan struct {
	exact []string
	more  map[int][]domain.FuzzyMatch
}

// scanIndex compares each chunk against the stored word forms whose
// comparable length is within maxDist of the chunk's. Chunks are
// scanned concurrently; the merged result keeps chunk order.
func (s *Searcher) scanIndex(ctx context.Context, chunks []string, maxDist int) (*fuzzyScan, error) {
	results := make([]*fuzzyScan, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			trans := s.translit.Transliterate(chunk)
			forms, err := s.store.ScanWords(ctx, len(trans)-maxDist, len(trans)+maxDist)
			if err != nil {
				return fmt.Errorf("scanning word forms: %w", err)
			}

			sc := &fuzzyScan{more: make(map[int][]domain.FuzzyMatch)}
			for _, form := range forms {
				d := levenshtein(trans, form.Comparable, maxDist)
				switch {
				case d > maxDist:
				case d == 0:
					sc.exact = append(sc.exact, form.Comparable)
				case len(form.Comparable) <= minSuggestionLen:
				case isNumeric(form.Comparable) && !isNumeric(trans):
				default:
					sc.more[d] = append(sc.more[d], domain.FuzzyMatch{Word: form.Word, Comparable: form.Comparable})
				}
			}
			results[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &fuzzyScan{more: make(map[int][]domain.FuzzyMatch)}
	seen := make(map[string]bool)
	for _, sc := range results {
		for _, form := range sc.exact {
			if !seen[form] {
				seen[form] = true
				merged.exact = append(merged.exact, form)
			}
		}
		for d, matches := range sc.more {
			merged.more[d] = append(merged.more[d], matches...)
		}
	}
	return merged, nil
}

// levenshtein returns the edit distance between a and b, or max+1 as
// soon as the distance provably exceeds max.
func levenshtein(a, b string, max int) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la-lb > max || lb-la > max {
		return max + 1
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		best := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
			if curr[j] < best {
				best = curr[j]
			}
		}
		if best > max {
			return max + 1
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

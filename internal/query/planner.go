package query

import "github.com/smohring/contao-cearch-pro/internal/core/domain"

// BuildPlan translates a parsed query into a store lookup plan.
//
// Under AND semantics the per-document match threshold counts keywords,
// included terms and phrase words; wildcard terms are tracked separately
// because one wildcard may legitimately match several distinct words in
// the same document.
func BuildPlan(q *domain.ParsedQuery, opts domain.SearchOptions) domain.QueryPlan {
	required := len(q.Keywords) + len(q.Included)
	for _, p := range q.Phrases {
		required += len(p.Words)
	}

	return domain.QueryPlan{
		Keywords:      q.Keywords,
		Wildcards:     q.Wildcards,
		Phrases:       q.Phrases,
		Included:      q.Included,
		Excluded:      q.Excluded,
		RequiredCount: required,
		WildcardCount: len(q.Wildcards),
		Or:            opts.Or,
		ParentIDs:     opts.ParentIDs,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}
}

// FuzzyPlan builds the relevance-ranked lookup for exact fuzzy matches:
// terms match the transliterated comparable form, any match qualifies.
func FuzzyPlan(comparables []string, opts domain.SearchOptions) domain.QueryPlan {
	return domain.QueryPlan{
		Comparables: comparables,
		Or:          true,
		ParentIDs:   opts.ParentIDs,
		Limit:       opts.Limit,
		Offset:      opts.Offset,
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driving"
	"github.com/smohring/contao-cearch-pro/internal/logger"
	"github.com/smohring/contao-cearch-pro/internal/query"
)

// Searcher answers queries against the index.
type Searcher struct {
	store    driven.IndexStore
	translit driven.Transliterator
}

var _ driving.Searcher = (*Searcher)(nil)

func NewSearcher(store driven.IndexStore, translit driven.Transliterator) *Searcher {
	return &Searcher{store: store, translit: translit}
}

// Search parses keywords into a boolean query and runs it. Results are
// ordered by relevance, most relevant first.
func (s *Searcher) Search(ctx context.Context, keywords string, opts domain.SearchOptions) ([]domain.DocumentMatch, error) {
	parsed, err := query.Parse(keywords, opts.Contains)
	if err != nil {
		return nil, err
	}
	plan := query.BuildPlan(parsed, opts)

	logger.Debug("query: %d keyword(s), %d wildcard(s), %d phrase(s), %d included, %d excluded",
		len(plan.Keywords), len(plan.Wildcards), len(plan.Phrases), len(plan.Included), len(plan.Excluded))

	matches, err := s.store.SearchDocuments(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return matches, nil
}

package driving

import (
	"context"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

// Indexer feeds rendered pages into the search index.
type Indexer interface {
	// IndexDocument extracts, tokenizes and persists a page. It returns
	// true if a new document was created, false when the content was
	// unchanged, updated in place, or merged into a duplicate.
	IndexDocument(ctx context.Context, meta domain.PageMeta, markup string) (bool, error)

	// RemoveDocument removes every document stored under the URL,
	// cascading to their index entries.
	RemoveDocument(ctx context.Context, url string) error
}

// Searcher answers queries against the index.
type Searcher interface {
	// Search parses the keyword string and returns ranked matches.
	// Returns domain.ErrEmptyQuery when the cleaned query is empty.
	Search(ctx context.Context, keywords string, opts domain.SearchOptions) ([]domain.DocumentMatch, error)

	// SearchFuzzy runs the edit-distance matching path. Chunks matching
	// an indexed word exactly produce ranked hits; near misses within
	// maxDistance are returned as suggestion buckets.
	SearchFuzzy(ctx context.Context, keywords string, opts domain.SearchOptions, maxDistance int) (*domain.FuzzyResult, error)
}

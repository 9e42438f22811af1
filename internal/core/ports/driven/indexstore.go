package driven

import (
	"context"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

// IndexStore persists documents and their inverted-index entries and
// executes compiled search plans. Implementations must serialize
// conflicting writes: the indexer's read-checksum-then-write sequence runs
// inside InTransaction and relies on the store for atomicity.
type IndexStore interface {
	// FindDocument returns the document with the given URL within a
	// parent scope, or domain.ErrNotFound.
	FindDocument(ctx context.Context, url, parentID string) (*domain.Document, error)

	// FindDuplicate returns a document in the same parent scope with an
	// identical checksum, or domain.ErrNotFound.
	FindDuplicate(ctx context.Context, parentID, checksum string) (*domain.Document, error)

	// InsertDocument stores a new document and returns its assigned ID.
	InsertDocument(ctx context.Context, doc *domain.Document) (string, error)

	// UpdateDocument replaces the stored fields of an existing document,
	// preserving its ID.
	UpdateDocument(ctx context.Context, id string, doc *domain.Document) error

	// UpdateDocumentURL repoints a document to a more canonical URL.
	UpdateDocumentURL(ctx context.Context, id, url string) error

	// DeleteEntries removes all index entries owned by a document.
	DeleteEntries(ctx context.Context, documentID string) error

	// InsertEntries bulk-inserts index entries.
	InsertEntries(ctx context.Context, entries []domain.IndexEntry) error

	// SearchDocuments executes a compiled query plan and returns
	// matching documents with their matched words, ordered by summed
	// relevance descending.
	SearchDocuments(ctx context.Context, plan domain.QueryPlan) ([]domain.DocumentMatch, error)

	// ScanWords returns the distinct indexed word forms whose comparable
	// form length lies in [minLen, maxLen].
	ScanWords(ctx context.Context, minLen, maxLen int) ([]domain.WordForm, error)

	// DocumentsByURL returns all documents stored under a URL,
	// regardless of parent scope.
	DocumentsByURL(ctx context.Context, url string) ([]domain.Document, error)

	// DeleteDocument removes a document and cascades to its entries.
	DeleteDocument(ctx context.Context, id string) error

	// InTransaction runs fn against a transactional view of the store.
	// fn's writes are committed atomically, or rolled back on error.
	InTransaction(ctx context.Context, fn func(IndexStore) error) error
}

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedDocument(t *testing.T, s *Store, doc domain.Document, words map[string]int) string {
	t.Helper()
	ctx := context.Background()

	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	id, err := s.InsertDocument(ctx, &doc)
	require.NoError(t, err)

	entries := make([]domain.IndexEntry, 0, len(words))
	for word, relevance := range words {
		entries = append(entries, domain.IndexEntry{
			DocumentID: id,
			Word:       word,
			Comparable: word,
			Relevance:  relevance,
		})
	}
	require.NoError(t, s.InsertEntries(ctx, entries))
	return id
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, filepath.Join(dir, "index.db"), s.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestStore_InsertAndFindDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.InsertDocument(ctx, &domain.Document{
		URL:       "/page.html",
		Title:     "Page",
		ParentID:  "p1",
		Protected: true,
		Groups:    []string{"g1", "g2"},
		FileSize:  1.25,
		Checksum:  "abc",
		Text:      "some text",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.FindDocument(ctx, "/page.html", "p1")
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "Page", doc.Title)
	assert.True(t, doc.Protected)
	assert.Equal(t, []string{"g1", "g2"}, doc.Groups)
	assert.InDelta(t, 1.25, doc.FileSize, 0.001)

	_, err = s.FindDocument(ctx, "/page.html", "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_FindDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/a", ParentID: "p1", Checksum: "same"}, nil)

	dup, err := s.FindDuplicate(ctx, "p1", "same")
	require.NoError(t, err)
	assert.Equal(t, id, dup.ID)

	_, err = s.FindDuplicate(ctx, "p1", "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/a", Checksum: "old"}, nil)

	err := s.UpdateDocument(ctx, id, &domain.Document{
		URL:       "/a",
		Checksum:  "new",
		Title:     "Updated",
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	doc, err := s.FindDocument(ctx, "/a", "")
	require.NoError(t, err)
	assert.Equal(t, "new", doc.Checksum)
	assert.Equal(t, "Updated", doc.Title)

	err = s.UpdateDocument(ctx, "missing", &domain.Document{UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateDocumentURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/a?page=2"}, nil)

	require.NoError(t, s.UpdateDocumentURL(ctx, id, "/a"))

	doc, err := s.FindDocument(ctx, "/a", "")
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	err = s.UpdateDocumentURL(ctx, "missing", "/b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteDocumentCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/a"}, map[string]int{"word": 1})

	require.NoError(t, s.DeleteDocument(ctx, id))

	_, err := s.FindDocument(ctx, "/a", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	forms, err := s.ScanWords(ctx, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestStore_DeleteEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/a"}, map[string]int{"word": 1})

	require.NoError(t, s.DeleteEntries(ctx, id))

	forms, err := s.ScanWords(ctx, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, forms)

	// The document itself survives.
	_, err = s.FindDocument(ctx, "/a", "")
	assert.NoError(t, err)
}

func TestStore_DocumentsByURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedDocument(t, s, domain.Document{URL: "/a", ParentID: "p1"}, nil)
	seedDocument(t, s, domain.Document{URL: "/a", ParentID: "p2"}, nil)
	seedDocument(t, s, domain.Document{URL: "/b", ParentID: "p1"}, nil)

	docs, err := s.DocumentsByURL(ctx, "/a")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_ScanWords_LengthBand(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/a"}, map[string]int{"ab": 1, "abcd": 1, "abcdefgh": 1})

	forms, err := s.ScanWords(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "abcd", forms[0].Word)
}

func TestStore_Search_AndSemantics(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/fox", Text: "the quick brown fox"},
		map[string]int{"quick": 1, "brown": 2, "fox": 1})
	seedDocument(t, s, domain.Document{URL: "/dog", Text: "lazy brown dog"},
		map[string]int{"lazy": 1, "brown": 1, "dog": 1})

	plan := domain.QueryPlan{
		Keywords:      []string{"brown", "fox"},
		RequiredCount: 2,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/fox", matches[0].Document.URL)
	assert.Equal(t, 2, matches[0].Count)
	assert.Equal(t, 3, matches[0].Relevance)
	assert.ElementsMatch(t, []string{"brown", "fox"}, matches[0].Words)
}

func TestStore_Search_OrSemantics(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/fox", Text: "quick brown fox"},
		map[string]int{"brown": 2, "fox": 1})
	seedDocument(t, s, domain.Document{URL: "/dog", Text: "lazy brown dog"},
		map[string]int{"brown": 1, "dog": 1})

	plan := domain.QueryPlan{
		Keywords:      []string{"brown", "fox"},
		RequiredCount: 2,
		Or:            true,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "/fox", matches[0].Document.URL)
	assert.Equal(t, "/dog", matches[1].Document.URL)
}

func TestStore_Search_Excluded(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/fox"}, map[string]int{"brown": 1, "fox": 1})
	seedDocument(t, s, domain.Document{URL: "/dog"}, map[string]int{"brown": 1, "dog": 1})

	plan := domain.QueryPlan{
		Keywords:      []string{"brown"},
		Excluded:      []string{"dog"},
		RequiredCount: 1,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/fox", matches[0].Document.URL)
}

func TestStore_Search_Wildcard(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/fox"}, map[string]int{"brown": 1, "browse": 1})
	seedDocument(t, s, domain.Document{URL: "/dog"}, map[string]int{"dog": 1})

	plan := domain.QueryPlan{
		Wildcards:     []string{"bro%"},
		WildcardCount: 1,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Count)
}

func TestStore_Search_Phrase(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/dog", Text: "the lazy brown dog"},
		map[string]int{"lazy": 1, "brown": 1, "dog": 1})
	seedDocument(t, s, domain.Document{URL: "/fox", Text: "brown and lazy fox"},
		map[string]int{"lazy": 1, "brown": 1, "fox": 1})

	plan := domain.QueryPlan{
		Phrases: []domain.Phrase{{
			Raw:     "lazy brown",
			Words:   []string{"lazy", "brown"},
			Pattern: `(?:^|[^\pL\pN])lazy[^\pL\pN]+brown(?:[^\pL\pN]|$)`,
		}},
		RequiredCount: 2,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/dog", matches[0].Document.URL)
}

func TestStore_Search_PhraseWithUmlauts(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/de", Text: "zebra über Nacht gewandert"},
		map[string]int{"über": 1, "nacht": 1})

	plan := domain.QueryPlan{
		Phrases: []domain.Phrase{{
			Raw:     "über nacht",
			Words:   []string{"über", "nacht"},
			Pattern: `(?:^|[^\pL\pN])über[^\pL\pN]+nacht(?:[^\pL\pN]|$)`,
		}},
		RequiredCount: 2,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/de", matches[0].Document.URL)
}

func TestStore_Search_Comparables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seedDocument(t, s, domain.Document{URL: "/de"}, nil)
	require.NoError(t, s.InsertEntries(ctx, []domain.IndexEntry{
		{DocumentID: id, Word: "grüße", Comparable: "gruesse", Relevance: 1},
	}))

	plan := domain.QueryPlan{Comparables: []string{"gruesse"}, Or: true}

	matches, err := s.SearchDocuments(ctx, plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"grüße"}, matches[0].Words)
}

func TestStore_Search_ParentScopeAndPagination(t *testing.T) {
	s := newTestStore(t)

	seedDocument(t, s, domain.Document{URL: "/1", ParentID: "p1"}, map[string]int{"word": 3})
	seedDocument(t, s, domain.Document{URL: "/2", ParentID: "p1"}, map[string]int{"word": 2})
	seedDocument(t, s, domain.Document{URL: "/3", ParentID: "p2"}, map[string]int{"word": 1})

	plan := domain.QueryPlan{
		Keywords:      []string{"word"},
		RequiredCount: 1,
		ParentIDs:     []string{"p1"},
		Limit:         1,
		Offset:        1,
	}

	matches, err := s.SearchDocuments(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/2", matches[0].Document.URL)
}

func TestStore_Search_EmptyPlan(t *testing.T) {
	s := newTestStore(t)

	matches, err := s.SearchDocuments(context.Background(), domain.QueryPlan{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_InTransaction_Commit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InTransaction(ctx, func(tx driven.IndexStore) error {
		_, err := tx.InsertDocument(ctx, &domain.Document{URL: "/a", UpdatedAt: time.Now()})
		return err
	})
	require.NoError(t, err)

	_, err = s.FindDocument(ctx, "/a", "")
	assert.NoError(t, err)
}

func TestStore_InTransaction_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTransaction(ctx, func(tx driven.IndexStore) error {
		if _, err := tx.InsertDocument(ctx, &domain.Document{URL: "/a", UpdatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindDocument(ctx, "/a", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_InTransaction_Nested(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InTransaction(ctx, func(tx driven.IndexStore) error {
		return tx.InTransaction(ctx, func(inner driven.IndexStore) error {
			_, err := inner.InsertDocument(ctx, &domain.Document{URL: "/a", UpdatedAt: time.Now()})
			return err
		})
	})
	require.NoError(t, err)

	_, err = s.FindDocument(ctx, "/a", "")
	assert.NoError(t, err)
}

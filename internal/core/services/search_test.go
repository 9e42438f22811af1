package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/storage/memory"
	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/translit"
	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

func seedSearchStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ix := newTestIndexer(store)
	ctx := context.Background()

	pages := map[string]string{
		"/fox.html": "<p>The quick brown fox jumps over the lazy dog</p>",
		"/dog.html": "<p>A lazy brown dog sleeps</p>",
		"/cat.html": "<p>A curious cat watches birds</p>",
	}
	for url, body := range pages {
		_, err := ix.IndexDocument(ctx, domain.PageMeta{URL: url}, pageMarkup(body))
		require.NoError(t, err)
	}
	return store
}

func TestSearch_AllKeywordsRequired(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "brown fox", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "/fox.html", matches[0].Document.URL)
}

func TestSearch_OrMode(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "fox cat", domain.SearchOptions{Or: true})
	require.NoError(t, err)

	assert.Len(t, matches, 2)
}

func TestSearch_ExcludedKeyword(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "brown -fox", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "/dog.html", matches[0].Document.URL)
}

func TestSearch_Phrase(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), `"lazy brown dog"`, domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "/dog.html", matches[0].Document.URL)
}

func TestSearch_PhraseWithUmlauts(t *testing.T) {
	store := memory.NewStore()
	ix := newTestIndexer(store)
	ctx := context.Background()

	_, err := ix.IndexDocument(ctx, domain.PageMeta{URL: "/de.html"},
		pageMarkup("<p>zebra über Nacht gewandert</p>"))
	require.NoError(t, err)

	s := NewSearcher(store, translit.New(0))

	matches, err := s.Search(ctx, `"über nacht"`, domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/de.html", matches[0].Document.URL)

	// Adjacency still binds for non-ASCII phrase edges.
	matches, err = s.Search(ctx, `"über gewandert"`, domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearch_Wildcard(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "jump*", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "/fox.html", matches[0].Document.URL)
}

func TestSearch_ContainsMode(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "rown", domain.SearchOptions{Contains: true})
	require.NoError(t, err)

	assert.Len(t, matches, 2)
}

func TestSearch_NoResults(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "elephant", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Empty(t, matches)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := NewSearcher(memory.NewStore(), translit.New(0))

	_, err := s.Search(context.Background(), "  ", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSearch_Limit(t *testing.T) {
	s := NewSearcher(seedSearchStore(t), translit.New(0))

	matches, err := s.Search(context.Background(), "lazy", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)

	assert.Len(t, matches, 1)
}

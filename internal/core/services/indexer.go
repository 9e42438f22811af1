package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driving"
	"github.com/smohring/contao-cearch-pro/internal/extract"
	"github.com/smohring/contao-cearch-pro/internal/logger"
	"github.com/smohring/contao-cearch-pro/internal/tokenize"
)

// Transform mutates extracted page text before it is stored and
// tokenized. Transforms run in registration order.
type Transform func(text string) string

// Indexer turns rendered pages into index entries.
type Indexer struct {
	store      driven.IndexStore
	translit   driven.Transliterator
	tokenizer  *tokenize.Tokenizer
	transforms []Transform
	now        func() time.Time
}

var _ driving.Indexer = (*Indexer)(nil)

func NewIndexer(store driven.IndexStore, translit driven.Transliterator, tokenizer *tokenize.Tokenizer, transforms ...Transform) *Indexer {
	return &Indexer{
		store:      store,
		translit:   translit,
		tokenizer:  tokenizer,
		transforms: transforms,
		now:        time.Now,
	}
}

// IndexDocument extracts the indexable content of markup and writes it
// to the store. It reports whether a new document was created; an
// unchanged page (same checksum at the same URL) and a duplicate page
// (same checksum under another URL of the same parent) both leave the
// index untouched.
func (ix *Indexer) IndexDocument(ctx context.Context, meta domain.PageMeta, markup string) (bool, error) {
	if strings.TrimSpace(meta.URL) == "" {
		return false, fmt.Errorf("%w: missing document URL", domain.ErrInvalidInput)
	}

	page := extract.Page(markup, meta)
	if meta.FileSize == 0 {
		meta.FileSize = math.Round(float64(len(markup))/1024*100) / 100
	}

	text := page.Text
	for _, tr := range ix.transforms {
		text = tr(text)
	}

	// The checksum covers the post-transform text: changing the
	// transform pipeline re-indexes otherwise unchanged markup.
	checksum := extract.Checksum(text)

	created := false
	err := ix.store.InTransaction(ctx, func(tx driven.IndexStore) error {
		existing, err := tx.FindDocument(ctx, meta.URL, meta.ParentID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("looking up document: %w", err)
		}
		if existing != nil && existing.Checksum == checksum {
			logger.Debug("unchanged checksum for %s, skipping", meta.URL)
			return nil
		}

		doc := &domain.Document{
			URL:         meta.URL,
			Title:       meta.Title,
			Description: page.Description,
			Keywords:    page.Keywords,
			ImageURL:    page.ImageURL,
			Protected:   meta.Protected,
			Groups:      meta.Groups,
			FileSize:    meta.FileSize,
			ParentID:    meta.ParentID,
			Language:    meta.Language,
			Checksum:    checksum,
			Text:        text,
			UpdatedAt:   ix.now(),
		}

		var docID string
		switch {
		case existing != nil:
			docID = existing.ID
			if err := tx.UpdateDocument(ctx, docID, doc); err != nil {
				return fmt.Errorf("updating document: %w", err)
			}
		default:
			dup, err := tx.FindDuplicate(ctx, meta.ParentID, checksum)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("checking for duplicate content: %w", err)
			}
			if dup != nil {
				if moreCanonical(meta.URL, dup.URL) {
					logger.Debug("repointing duplicate %s to %s", dup.URL, meta.URL)
					if err := tx.UpdateDocumentURL(ctx, dup.ID, meta.URL); err != nil {
						return fmt.Errorf("updating duplicate URL: %w", err)
					}
				}
				return nil
			}
			docID, err = tx.InsertDocument(ctx, doc)
			if err != nil {
				return fmt.Errorf("inserting document: %w", err)
			}
			created = true
		}

		return ix.writeEntries(ctx, tx, docID, text, meta.Language)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// RemoveDocument deletes every indexed document registered under url,
// across all parents.
func (ix *Indexer) RemoveDocument(ctx context.Context, url string) error {
	docs, err := ix.store.DocumentsByURL(ctx, url)
	if err != nil {
		return fmt.Errorf("looking up documents for %s: %w", url, err)
	}
	for _, doc := range docs {
		if err := ix.store.DeleteDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("deleting document %s: %w", doc.ID, err)
		}
	}
	logger.Debug("removed %d document(s) for %s", len(docs), url)
	return nil
}

func (ix *Indexer) writeEntries(ctx context.Context, tx driven.IndexStore, docID, text, language string) error {
	words := ix.tokenizer.Tokenize(text)
	if err := tx.DeleteEntries(ctx, docID); err != nil {
		return fmt.Errorf("clearing index entries: %w", err)
	}
	entries := make([]domain.IndexEntry, 0, len(words))
	for word, count := range words {
		entries = append(entries, domain.IndexEntry{
			DocumentID: docID,
			Word:       word,
			Comparable: ix.translit.Transliterate(word),
			Relevance:  count,
			Language:   language,
		})
	}
	if err := tx.InsertEntries(ctx, entries); err != nil {
		return fmt.Errorf("writing index entries: %w", err)
	}
	logger.Debug("indexed %d distinct word(s) for document %s", len(entries), docID)
	return nil
}

// moreCanonical reports whether candidate should replace stored as the
// canonical URL of a duplicate document. Fewer path segments win, and a
// URL wins over itself with a query string appended.
func moreCanonical(candidate, stored string) bool {
	return strings.Count(candidate, "/") < strings.Count(stored, "/") ||
		strings.HasPrefix(stored, candidate+"?")
}

// Package memory provides an in-memory IndexStore used in tests and as
// the reference implementation of query-plan semantics.
package memory

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store is an in-memory implementation of driven.IndexStore.
type Store struct {
	mu   sync.RWMutex
	data *data
}

// data is the lock-free inner state, shared with transaction views.
type data struct {
	docs    map[string]domain.Document
	entries map[string][]domain.IndexEntry
}

// NewStore creates an empty in-memory index store.
func NewStore() *Store {
	return &Store{data: &data{
		docs:    make(map[string]domain.Document),
		entries: make(map[string][]domain.IndexEntry),
	}}
}

// FindDocument returns the document with the given URL and parent scope.
func (s *Store) FindDocument(_ context.Context, url, parentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.findDocument(url, parentID)
}

// FindDuplicate returns a same-scope document with an identical checksum.
func (s *Store) FindDuplicate(_ context.Context, parentID, checksum string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.findDuplicate(parentID, checksum)
}

// InsertDocument stores a new document and assigns its ID.
func (s *Store) InsertDocument(_ context.Context, doc *domain.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.insertDocument(doc)
}

// UpdateDocument replaces a stored document, preserving its ID.
func (s *Store) UpdateDocument(_ context.Context, id string, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.updateDocument(id, doc)
}

// UpdateDocumentURL repoints a document to a new URL.
func (s *Store) UpdateDocumentURL(_ context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.updateDocumentURL(id, url)
}

// DeleteEntries removes all entries of a document.
func (s *Store) DeleteEntries(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.entries, documentID)
	return nil
}

// InsertEntries bulk-inserts index entries.
func (s *Store) InsertEntries(_ context.Context, entries []domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.insertEntries(entries)
}

// SearchDocuments executes a query plan.
func (s *Store) SearchDocuments(_ context.Context, plan domain.QueryPlan) ([]domain.DocumentMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.search(plan)
}

// ScanWords returns distinct word forms within a comparable-length band.
func (s *Store) ScanWords(_ context.Context, minLen, maxLen int) ([]domain.WordForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.scanWords(minLen, maxLen)
}

// DocumentsByURL returns all documents stored under a URL.
func (s *Store) DocumentsByURL(_ context.Context, url string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.Document
	for _, doc := range s.data.docs {
		if doc.URL == url {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// DeleteDocument removes a document and cascades to its entries.
func (s *Store) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.docs, id)
	delete(s.data.entries, id)
	return nil
}

// InTransaction runs fn against a snapshot-backed view. The store lock
// is held for the duration, serializing conflicting writers; on error
// the snapshot is restored.
func (s *Store) InTransaction(_ context.Context, fn func(driven.IndexStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&txStore{data: s.data}); err != nil {
		s.data.docs = snapshot.docs
		s.data.entries = snapshot.entries
		return err
	}
	return nil
}

// txStore is the unlocked transactional view handed to InTransaction
// callbacks. The outer store holds its lock while this is live.
type txStore struct {
	data *data
}

var _ driven.IndexStore = (*txStore)(nil)

func (t *txStore) FindDocument(_ context.Context, url, parentID string) (*domain.Document, error) {
	return t.data.findDocument(url, parentID)
}

func (t *txStore) FindDuplicate(_ context.Context, parentID, checksum string) (*domain.Document, error) {
	return t.data.findDuplicate(parentID, checksum)
}

func (t *txStore) InsertDocument(_ context.Context, doc *domain.Document) (string, error) {
	return t.data.insertDocument(doc)
}

func (t *txStore) UpdateDocument(_ context.Context, id string, doc *domain.Document) error {
	return t.data.updateDocument(id, doc)
}

func (t *txStore) UpdateDocumentURL(_ context.Context, id, url string) error {
	return t.data.updateDocumentURL(id, url)
}

func (t *txStore) DeleteEntries(_ context.Context, documentID string) error {
	delete(t.data.entries, documentID)
	return nil
}

func (t *txStore) InsertEntries(_ context.Context, entries []domain.IndexEntry) error {
	return t.data.insertEntries(entries)
}

func (t *txStore) SearchDocuments(_ context.Context, plan domain.QueryPlan) ([]domain.DocumentMatch, error) {
	return t.data.search(plan)
}

func (t *txStore) ScanWords(_ context.Context, minLen, maxLen int) ([]domain.WordForm, error) {
	return t.data.scanWords(minLen, maxLen)
}

func (t *txStore) DocumentsByURL(_ context.Context, url string) ([]domain.Document, error) {
	var docs []domain.Document
	for _, doc := range t.data.docs {
		if doc.URL == url {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (t *txStore) DeleteDocument(_ context.Context, id string) error {
	delete(t.data.docs, id)
	delete(t.data.entries, id)
	return nil
}

func (t *txStore) InTransaction(_ context.Context, fn func(driven.IndexStore) error) error {
	return fn(t)
}

// ---- inner state ----

func (d *data) findDocument(url, parentID string) (*domain.Document, error) {
	for _, doc := range d.docs {
		if doc.URL == url && doc.ParentID == parentID {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (d *data) findDuplicate(parentID, checksum string) (*domain.Document, error) {
	for _, doc := range d.docs {
		if doc.ParentID == parentID && doc.Checksum == checksum {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (d *data) insertDocument(doc *domain.Document) (string, error) {
	doc.ID = uuid.New().String()
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	d.docs[doc.ID] = *doc
	return doc.ID, nil
}

func (d *data) updateDocument(id string, doc *domain.Document) error {
	if _, ok := d.docs[id]; !ok {
		return domain.ErrNotFound
	}
	updated := *doc
	updated.ID = id
	d.docs[id] = updated
	return nil
}

func (d *data) updateDocumentURL(id, url string) error {
	doc, ok := d.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.URL = url
	d.docs[id] = doc
	return nil
}

func (d *data) insertEntries(entries []domain.IndexEntry) error {
	for _, e := range entries {
		d.entries[e.DocumentID] = append(d.entries[e.DocumentID], e)
	}
	return nil
}

func (d *data) scanWords(minLen, maxLen int) ([]domain.WordForm, error) {
	seen := make(map[string]struct{})
	var forms []domain.WordForm
	for _, entries := range d.entries {
		for _, e := range entries {
			if len(e.Comparable) < minLen || len(e.Comparable) > maxLen {
				continue
			}
			key := e.Comparable + "\x00" + e.Word
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			forms = append(forms, domain.WordForm{Word: e.Word, Comparable: e.Comparable})
		}
	}
	return forms, nil
}

func (d *data) clone() *data {
	c := &data{
		docs:    make(map[string]domain.Document, len(d.docs)),
		entries: make(map[string][]domain.IndexEntry, len(d.entries)),
	}
	for id, doc := range d.docs {
		c.docs[id] = doc
	}
	for id, entries := range d.entries {
		c.entries[id] = append([]domain.IndexEntry(nil), entries...)
	}
	return c
}

// search interprets a query plan with the same semantics the SQL
// adapter compiles: candidate entries grouped per document, aggregated
// count and relevance, flexible wildcard threshold, phrase containment,
// include/exclude and parent-scope filters, relevance ordering.
func (d *data) search(plan domain.QueryPlan) ([]domain.DocumentMatch, error) {
	phrasePatterns := make([]*regexp.Regexp, len(plan.Phrases))
	for i, p := range plan.Phrases {
		re, err := regexp.Compile(`(?i)` + p.Pattern)
		if err != nil {
			return nil, err
		}
		phrasePatterns[i] = re
	}

	wildcardPatterns := make([]*regexp.Regexp, len(plan.Wildcards))
	for i, w := range plan.Wildcards {
		wildcardPatterns[i] = likePattern(w)
	}

	exactWords := make(map[string]struct{})
	for _, w := range plan.Keywords {
		exactWords[w] = struct{}{}
	}
	for _, w := range plan.Included {
		exactWords[w] = struct{}{}
	}
	for _, p := range plan.Phrases {
		for _, w := range p.Words {
			exactWords[w] = struct{}{}
		}
	}
	comparables := make(map[string]struct{})
	for _, c := range plan.Comparables {
		comparables[c] = struct{}{}
	}
	included := make(map[string]struct{})
	for _, w := range plan.Included {
		included[w] = struct{}{}
	}
	excluded := make(map[string]struct{})
	for _, w := range plan.Excluded {
		excluded[w] = struct{}{}
	}
	parents := make(map[string]struct{})
	for _, p := range plan.ParentIDs {
		parents[p] = struct{}{}
	}

	var matches []domain.DocumentMatch
	for id, doc := range d.docs {
		if len(parents) > 0 {
			if _, ok := parents[doc.ParentID]; !ok {
				continue
			}
		}

		var match domain.DocumentMatch
		wildcardHits := 0
		skip := false
		hasIncluded := false

		for _, e := range d.entries[id] {
			if _, bad := excluded[e.Word]; bad {
				skip = true
				break
			}
			if _, ok := included[e.Word]; ok {
				hasIncluded = true
			}

			hit := false
			if _, ok := exactWords[e.Word]; ok {
				hit = true
			}
			if _, ok := comparables[e.Comparable]; ok {
				hit = true
			}
			for _, re := range wildcardPatterns {
				if re.MatchString(e.Word) {
					hit = true
					wildcardHits++
					break
				}
			}
			if hit {
				match.Words = append(match.Words, e.Word)
				match.Count++
				match.Relevance += e.Relevance
			}
		}

		if skip || match.Count == 0 {
			continue
		}
		if len(included) > 0 && !hasIncluded {
			continue
		}

		if !phrasesSatisfied(doc.Text, phrasePatterns, plan.Or) {
			continue
		}

		if !plan.Or {
			threshold := plan.RequiredCount
			if plan.WildcardCount > 0 {
				if wildcardHits > plan.WildcardCount {
					threshold += wildcardHits
				} else {
					threshold += plan.WildcardCount
				}
			}
			if match.Count < threshold {
				continue
			}
		}

		match.Document = doc
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Relevance > matches[j].Relevance
	})

	return paginate(matches, plan.Offset, plan.Limit), nil
}

// phrasesSatisfied applies phrase containment: OR mode needs any phrase
// present, AND mode needs all of them.
func phrasesSatisfied(text string, patterns []*regexp.Regexp, or bool) bool {
	if len(patterns) == 0 {
		return true
	}
	if or {
		for _, re := range patterns {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
	for _, re := range patterns {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}

// likePattern converts a SQL LIKE pattern (% wildcards) to a regexp.
func likePattern(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "%")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)^` + strings.Join(parts, `.*`) + `$`)
}

// paginate applies offset and limit. Limit 0 means unlimited.
func paginate(matches []domain.DocumentMatch, offset, limit int) []domain.DocumentMatch {
	if limit <= 0 {
		return matches
	}
	if offset >= len(matches) {
		return nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end]
}

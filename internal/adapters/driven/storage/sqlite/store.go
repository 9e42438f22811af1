package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	sqlite3 "modernc.org/sqlite"

	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

func init() {
	// MySQL-compatible REGEXP: case-insensitive, called as
	// regexp(pattern, text) by the X REGEXP Y operator.
	sqlite3.MustRegisterDeterministicScalarFunction("regexp", 2,
		func(_ *sqlite3.FunctionContext, args []driver.Value) (driver.Value, error) {
			pattern, ok := args[0].(string)
			if !ok {
				return false, nil
			}
			text, ok := args[1].(string)
			if !ok {
				return false, nil
			}
			re, err := compilePattern(pattern)
			if err != nil {
				return nil, err
			}
			return re.MatchString(text), nil
		})
}

// compiled phrase patterns, reused across rows of one query.
var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp)
)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	patternCache[pattern] = re
	return re, nil
}

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting the same store methods run inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite-backed IndexStore.
type Store struct {
	db   *sql.DB // nil on transactional views
	q    dbtx
	path string
}

// NewStore opens (and migrates) the index database under dataDir.
// If dataDir is empty, defaults to ~/.cearch/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cearch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, q: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

const documentColumns = `id, url, title, description, keywords, image_url,
	protected, access_groups, file_size, parent_id, language, checksum, text, updated_at`

// FindDocument returns the document with the given URL and parent scope.
func (s *Store) FindDocument(ctx context.Context, url, parentID string) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE url = ? AND parent_id = ?
		LIMIT 1
	`, url, parentID)

	return scanDocumentRow(row)
}

// FindDuplicate returns a same-scope document with an identical checksum.
func (s *Store) FindDuplicate(ctx context.Context, parentID, checksum string) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE parent_id = ? AND checksum = ?
		LIMIT 1
	`, parentID, checksum)

	return scanDocumentRow(row)
}

// InsertDocument stores a new document and returns its assigned ID.
func (s *Store) InsertDocument(ctx context.Context, doc *domain.Document) (string, error) {
	id := newDocumentID()
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO documents
			(id, url, title, description, keywords, image_url,
			 protected, access_groups, file_size, parent_id, language, checksum, text, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, doc.URL, doc.Title, doc.Description, doc.Keywords, doc.ImageURL,
		boolToInt(doc.Protected), strings.Join(doc.Groups, ","), doc.FileSize,
		doc.ParentID, doc.Language, doc.Checksum, doc.Text, doc.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	doc.ID = id
	return id, nil
}

// UpdateDocument replaces the stored fields of a document in place.
func (s *Store) UpdateDocument(ctx context.Context, id string, doc *domain.Document) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE documents SET
			url = ?, title = ?, description = ?, keywords = ?, image_url = ?,
			protected = ?, access_groups = ?, file_size = ?, parent_id = ?,
			language = ?, checksum = ?, text = ?, updated_at = ?
		WHERE id = ?
	`, doc.URL, doc.Title, doc.Description, doc.Keywords, doc.ImageURL,
		boolToInt(doc.Protected), strings.Join(doc.Groups, ","), doc.FileSize,
		doc.ParentID, doc.Language, doc.Checksum, doc.Text, doc.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDocumentURL repoints a document to a more canonical URL.
func (s *Store) UpdateDocumentURL(ctx context.Context, id, url string) error {
	res, err := s.q.ExecContext(ctx, "UPDATE documents SET url = ? WHERE id = ?", url, id)
	if err != nil {
		return fmt.Errorf("updating document url: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEntries removes all index entries of a document.
func (s *Store) DeleteEntries(ctx context.Context, documentID string) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM index_entries WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting index entries: %w", err)
	}
	return nil
}

// InsertEntries bulk-inserts index entries in one statement batch.
func (s *Store) InsertEntries(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO index_entries (document_id, word, comparable, relevance, language) VALUES ")
	args := make([]any, 0, len(entries)*5)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, e.DocumentID, e.Word, e.Comparable, e.Relevance, e.Language)
	}

	if _, err := s.q.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("inserting index entries: %w", err)
	}
	return nil
}

// ScanWords returns the distinct word forms within a comparable-length band.
func (s *Store) ScanWords(ctx context.Context, minLen, maxLen int) ([]domain.WordForm, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT DISTINCT comparable, word FROM index_entries
		WHERE length(comparable) BETWEEN ? AND ?
	`, minLen, maxLen)
	if err != nil {
		return nil, fmt.Errorf("scanning index words: %w", err)
	}
	defer rows.Close()

	var forms []domain.WordForm //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.WordForm
		if err := rows.Scan(&f.Comparable, &f.Word); err != nil {
			return nil, fmt.Errorf("scanning word form: %w", err)
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating word forms: %w", err)
	}
	return forms, nil
}

// DocumentsByURL returns all documents stored under a URL.
func (s *Store) DocumentsByURL(ctx context.Context, url string) ([]domain.Document, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE url = ?
	`, url)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document; the schema cascades to its entries.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// InTransaction runs fn inside one database transaction. Nested calls
// reuse the enclosing transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(driven.IndexStore) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&Store{q: tx, path: s.path}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// newDocumentID assigns store-side document identifiers.
func newDocumentID() string {
	return uuid.New().String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var protected int
	var groups string

	err := r.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Description, &doc.Keywords,
		&doc.ImageURL, &protected, &groups, &doc.FileSize, &doc.ParentID,
		&doc.Language, &doc.Checksum, &doc.Text, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	doc.Protected = protected != 0
	if groups != "" {
		doc.Groups = strings.Split(groups, ",")
	}
	return &doc, nil
}

func scanDocumentRow(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	doc, err := scanDocument(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

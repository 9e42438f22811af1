package domain

import "time"

// Document represents one indexed page or resource.
// At most one live Document exists per distinct URL within a ParentID;
// Checksum is the canonical equality test for "content unchanged".
type Document struct {
	// ID is assigned by the store on first insert.
	ID string

	// URL is the absolute location of the page. When duplicates are
	// merged the more canonical variant wins.
	URL string

	// Title is the page title.
	Title string

	// Description is taken from the description meta tag.
	Description string

	// Keywords combines the keywords meta tag with harvested
	// title/alt attribute values.
	Keywords string

	// ImageURL is the social-preview image from the og:image meta tag.
	ImageURL string

	// Protected marks pages behind an access check.
	Protected bool

	// Groups lists the access groups allowed to see a protected page.
	Groups []string

	// FileSize is the page size in KB. Derived from the raw markup
	// length when the caller does not provide it.
	FileSize float64

	// ParentID is the scope/grouping key (e.g. the site or section).
	ParentID string

	// Language is the page language.
	Language string

	// Checksum is the hash of the normalized page text.
	Checksum string

	// Text is the normalized extracted text, kept for phrase matching.
	Text string

	// UpdatedAt is when the document was last (re)indexed.
	UpdatedAt time.Time
}

// IndexEntry is one (document, word) pair in the inverted index.
// At most one entry exists per (DocumentID, Word); the entry set of a
// document is replaced wholesale on every re-index.
type IndexEntry struct {
	// DocumentID is the owning Document.
	DocumentID string

	// Word is the normalized token.
	Word string

	// Comparable is the transliterated form used for fuzzy matching.
	Comparable string

	// Relevance is the occurrence count within the document.
	Relevance int

	// Language is the owning document's language.
	Language string
}

// WordForm pairs an indexed word with its transliterated comparable form.
type WordForm struct {
	Word       string
	Comparable string
}

// PageMeta is the caller-supplied identity of a page to index.
type PageMeta struct {
	URL       string
	Title     string
	Protected bool
	Groups    []string
	FileSize  float64
	ParentID  string
	Language  string
}

// PageContent is the output of text extraction: the indexable metadata
// and composed full text of a page.
type PageContent struct {
	// Title is the caller-supplied page title.
	Title string

	// Description is the description meta tag content.
	Description string

	// Keywords is the keywords meta tag content plus collected
	// title/alt attribute values.
	Keywords string

	// ImageURL is the og:image meta tag content.
	ImageURL string

	// Text is the composed indexable text:
	// title + description + body text + keywords, entity-decoded and
	// whitespace-collapsed.
	Text string
}

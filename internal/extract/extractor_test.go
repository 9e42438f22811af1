package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

func TestPage_ExtractsMetadata(t *testing.T) {
	markup := `<html><head>
<meta name="description" content="A page about searching">
<meta name="keywords" content="search, index">
<meta property="og:image" content="https://example.org/hero.png">
</head><body><p>Hello World</p></body></html>`

	page := Page(markup, domain.PageMeta{Title: "Start"})

	assert.Equal(t, "Start", page.Title)
	assert.Equal(t, "A page about searching", page.Description)
	assert.Contains(t, page.Keywords, "search, index")
	assert.Equal(t, "https://example.org/hero.png", page.ImageURL)
	assert.Contains(t, page.Text, "Hello World")
}

func TestPage_MetadataOnlyFromHead(t *testing.T) {
	// Without a closing head tag, the whole document counts as body and
	// meta tags are not harvested.
	markup := `<html><meta name="description" content="hidden"><body><p>Text</p></body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Empty(t, page.Description)
	assert.Contains(t, page.Text, "Text")
}

func TestPage_StripsScriptAndStyle(t *testing.T) {
	markup := `<html><head></head><body>
<script>var hidden = "secret";</script>
<style>.hidden { display: none; }</style>
<p>visible</p></body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "visible")
	assert.NotContains(t, page.Text, "secret")
	assert.NotContains(t, page.Text, "display")
}

func TestPage_UnterminatedScriptKeptAsIs(t *testing.T) {
	markup := `<html><head></head><body><p>keep</p><script>var x = 1`

	page := Page(markup, domain.PageMeta{})

	// Best effort: an unterminated region cannot be bounded, so the
	// content stays in place rather than swallowing the document tail.
	assert.Contains(t, page.Text, "keep")
	assert.Contains(t, page.Text, "var x = 1")
}

func TestPage_IndexerMarkers(t *testing.T) {
	markup := `<html><head></head><body>before <!-- indexer::stop --> hidden <!-- indexer::continue --> after</body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "before")
	assert.Contains(t, page.Text, "after")
	assert.NotContains(t, page.Text, "hidden")
}

func TestPage_NestedIndexerMarkers(t *testing.T) {
	markup := `<html><head></head><body>alpha ` +
		`<!-- indexer::stop --> beta ` +
		`<!-- indexer::stop --> gamma <!-- indexer::continue --> delta ` +
		`<!-- indexer::continue --> omega</body></html>`

	page := Page(markup, domain.PageMeta{})

	// The outermost continue closes the region.
	assert.Contains(t, page.Text, "alpha")
	assert.Contains(t, page.Text, "omega")
	assert.NotContains(t, page.Text, "beta")
	assert.NotContains(t, page.Text, "gamma")
	assert.NotContains(t, page.Text, "delta")
}

func TestPage_UnterminatedMarkerKeepsContent(t *testing.T) {
	markup := `<html><head></head><body>before <!-- indexer::stop --> tail</body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "before")
	assert.Contains(t, page.Text, "tail")
}

func TestPage_TitleAndAltAttributes(t *testing.T) {
	markup := `<html><head></head><body>
<img src="a.png" alt="Logo">
<a href="/" title="Home page">start</a>
<img src="b.png" alt="Logo">
</body></html>`

	page := Page(markup, domain.PageMeta{})

	// Deduplicated in first-seen order, appended to keywords.
	assert.Equal(t, "Logo, Home page", page.Keywords)
	assert.Contains(t, page.Text, "Logo, Home page")
}

func TestPage_TagBoundariesSeparateWords(t *testing.T) {
	markup := `<html><head></head><body><p>one</p><p>two</p>three<br>four</body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "one two")
	assert.NotContains(t, page.Text, "onetwo")
	assert.NotContains(t, page.Text, "threefour")
}

func TestPage_UnescapesEntities(t *testing.T) {
	markup := `<html><head></head><body><p>Fish &amp; Chips</p></body></html>`

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "Fish & Chips")
}

func TestPage_CollapsesWhitespace(t *testing.T) {
	markup := "<html><head></head><body><p>a\n\t  b&nbsp;&#160;c</p></body></html>"

	page := Page(markup, domain.PageMeta{})

	assert.Contains(t, page.Text, "a b c")
}

func TestChecksum_IgnoresTagDifferences(t *testing.T) {
	a := Checksum(`<p>Hello World</p>`)
	b := Checksum(`<div>Hello World</div>`)
	c := Checksum(`<p>Hello Mars</p>`)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestChecksum_Format(t *testing.T) {
	sum := Checksum("content")

	require.Len(t, sum, 64)
	assert.Equal(t, strings.ToLower(sum), sum)
}

func TestChecksum_StableAcrossExtraction(t *testing.T) {
	markup := `<html><head></head><body><p>same body</p></body></html>`

	first := Page(markup, domain.PageMeta{Title: "One"})
	second := Page(markup, domain.PageMeta{Title: "One"})

	assert.Equal(t, Checksum(first.Text), Checksum(second.Text))
}

// Package translit provides the default Transliterator: words are
// NFD-decomposed, combining marks are stripped, German umlauts and ß are
// expanded, and remaining non-ASCII runes are dropped. The result is the
// comparable form stored alongside each index word and used for
// edit-distance matching.
package translit

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
)

// DefaultCacheSize bounds the transliteration cache. Indexing hits the
// transliterator once per word occurrence and the word population is
// heavily repetitive across documents.
const DefaultCacheSize = 4096

// Ensure Transliterator implements the interface.
var _ driven.Transliterator = (*Transliterator)(nil)

// germanExpansions maps sounds without a single-mark decomposition.
// Applied before mark stripping so "über" becomes "ueber", not "uber".
var germanExpansions = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
)

// stripMarks removes combining marks after canonical decomposition.
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Transliterator folds words to their ASCII comparable form with an LRU
// cache in front.
type Transliterator struct {
	cache *lru.Cache[string, string]
}

// New creates a Transliterator. cacheSize <= 0 selects DefaultCacheSize.
func New(cacheSize int) *Transliterator {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, string](cacheSize)
	return &Transliterator{cache: cache}
}

// Transliterate returns the comparable form of word.
func (t *Transliterator) Transliterate(word string) string {
	if folded, ok := t.cache.Get(word); ok {
		return folded
	}
	folded := Fold(word)
	t.cache.Add(word, folded)
	return folded
}

// Fold is the uncached transliteration: umlaut expansion, mark
// stripping, then removal of whatever is still outside ASCII.
func Fold(word string) string {
	word = germanExpansions.Replace(word)

	if folded, _, err := transform.String(stripMarks, word); err == nil {
		word = folded
	}

	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

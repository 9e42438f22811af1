package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"regexp"
	"strings"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

// Marker comments fencing non-indexable regions. Nested stop markers are
// honoured: the closing marker used is the outermost matching one.
const (
	markerStop     = "<!-- indexer::stop -->"
	markerContinue = "<!-- indexer::continue -->"
)

// Pre-compiled regular expressions for markup scanning.
var (
	descriptionMeta = regexp.MustCompile(`(?i)<meta[^>]+name="description"[^>]+content="([^"]*)"[^>]*>`)
	keywordsMeta    = regexp.MustCompile(`(?i)<meta[^>]+name="keywords"[^>]+content="([^"]*)"[^>]*>`)
	ogImageMeta     = regexp.MustCompile(`(?i)<meta property="og:image" content="([^"]*)"[^>]*>`)
	titleAltAttr    = regexp.MustCompile(`(?i)<[^>]* (?:title|alt)="([^"]*)"[^>]*>`)
	brTag           = regexp.MustCompile(`(?i)<br`)
	allTags         = regexp.MustCompile(`<[^>]*>`)
	multiSpaces     = regexp.MustCompile(` +`)
)

// specialChars folds literal whitespace escapes and non-breaking spaces
// to plain spaces before any region stripping.
var specialChars = strings.NewReplacer(
	"\n", " ",
	"\r", " ",
	"\t", " ",
	"&#160;", " ",
	"&nbsp;", " ",
)

// Page extracts the indexable content of a rendered page.
// The returned PageContent carries the composed full text and the
// harvested head/body metadata. Pure transformation, no side effects.
func Page(markup string, meta domain.PageMeta) domain.PageContent {
	content := specialChars.Replace(markup)

	content = stripRegion(content, "<script", "</script>")
	content = stripRegion(content, "<style", "</style>")
	content = stripMarked(content)

	head, body := splitHead(content)

	page := domain.PageContent{
		Title: meta.Title,
	}

	if m := descriptionMeta.FindStringSubmatch(head); m != nil {
		page.Description = strings.TrimSpace(multiSpaces.ReplaceAllString(html.UnescapeString(m[1]), " "))
	}
	if m := keywordsMeta.FindStringSubmatch(head); m != nil {
		page.Keywords = strings.TrimSpace(multiSpaces.ReplaceAllString(html.UnescapeString(m[1]), " "))
	}
	if m := ogImageMeta.FindStringSubmatch(head); m != nil {
		page.ImageURL = m[1]
	}

	// Title and alt attribute values carry caption text worth indexing.
	if attrs := collectAttrs(body); len(attrs) > 0 {
		if page.Keywords != "" {
			page.Keywords += " "
		}
		page.Keywords += strings.Join(attrs, ", ")
	}

	// Keep words apart across tag boundaries before tags vanish.
	body = brTag.ReplaceAllString(body, " <br")
	body = strings.ReplaceAll(body, "><", "> <")
	body = allTags.ReplaceAllString(body, "")

	text := page.Title + " " + page.Description + " " + body + " " + page.Keywords
	page.Text = strings.TrimSpace(multiSpaces.ReplaceAllString(html.UnescapeString(text), " "))

	return page
}

// Checksum hashes the whitespace-collapsed, tag-stripped content.
// Stable across identical content; the canonical unchanged test.
func Checksum(content string) string {
	collapsed := multiSpaces.ReplaceAllString(allTags.ReplaceAllString(content, ""), " ")
	sum := sha256.Sum256([]byte(collapsed))
	return hex.EncodeToString(sum[:])
}

// stripRegion removes every region between an opening tag prefix and its
// closing tag, case-insensitively. An opening tag without a close leaves
// the rest of the document untouched.
func stripRegion(content, open, closing string) string {
	for {
		start := indexFold(content, open, 0)
		if start < 0 {
			return content
		}
		end := indexFold(content, closing, start)
		if end < 0 {
			return content
		}
		content = content[:start] + content[end+len(closing):]
	}
}

// stripMarked removes regions fenced by indexer marker comments,
// honouring nested stop markers: for each stop, the continue marker is
// advanced past every nested stop found before the current candidate.
func stripMarked(content string) string {
	for {
		start := strings.Index(content, markerStop)
		if start < 0 {
			return content
		}
		end := strings.Index(content[start:], markerContinue)
		if end < 0 {
			return content
		}
		end += start

		current := start
		for {
			nested := strings.Index(content[current+len(markerStop):], markerStop)
			if nested < 0 {
				break
			}
			nested += current + len(markerStop)
			if nested >= end {
				break
			}
			next := strings.Index(content[end+len(markerContinue):], markerContinue)
			if next < 0 {
				break
			}
			end += len(markerContinue) + next
			current = nested
		}

		content = content[:start] + content[end+len(markerContinue):]
	}
}

// splitHead splits the markup at the first </head>. A missing marker
// yields an empty head and the whole document as body.
func splitHead(content string) (head, body string) {
	at := indexFold(content, "</head>", 0)
	if at < 0 {
		return "", content
	}
	at += len("</head>")
	return content[:at], content[at:]
}

// collectAttrs gathers title and alt attribute values from the body,
// deduplicated in first-seen order.
func collectAttrs(body string) []string {
	matches := titleAltAttr.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var values []string
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		values = append(values, m[1])
	}
	return values
}

// indexFold is a byte-offset ASCII-case-insensitive strings.Index,
// starting the scan at from. Byte offsets stay valid for slicing the
// original string.
func indexFold(s, sub string, from int) int {
	n := len(sub)
	if n == 0 {
		return from
	}
	for i := from; i+n <= len(s); i++ {
		if equalFold(s[i:i+n], sub) {
			return i
		}
	}
	return -1
}

// equalFold compares two equal-length byte strings ASCII-case-insensitively.
func equalFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

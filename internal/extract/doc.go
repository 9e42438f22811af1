// Package extract turns rendered page markup into indexable text.
//
// Extraction is a deliberate best-effort pass: markup is scanned, not
// parsed. Script and style regions, and regions fenced by indexer marker
// comments, are removed; an unterminated region leaves the remainder of
// the document untouched rather than attempting balanced-error recovery.
// Head metadata (description, keywords, social-preview image) and body
// attribute text are harvested before tags are stripped.
package extract

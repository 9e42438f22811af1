// Package query parses raw query strings into structured boolean
// expressions and translates them into store lookup plans.
//
// The grammar: double-quoted phrases are single units; other chunks are
// whitespace-delimited, optionally prefixed with + (must contain) or
// - (must not contain), and may carry * wildcards. Chunks classify into
// exactly one bucket, in this precedence: trailing-* wildcard, phrase,
// included, excluded, leading-* wildcard, plain keyword.
package query

// Package domain defines the core entities of the search engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An indexed page with metadata and extracted text
//   - IndexEntry: One (document, word) row with occurrence-based relevance
//   - ParsedQuery / QueryPlan: A parsed query expression and its compiled
//     store lookup plan
//   - DocumentMatch / FuzzyResult: Search results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

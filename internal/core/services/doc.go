// Package services implements the core use cases: feeding rendered
// pages into the inverted index and answering boolean, phrase, wildcard
// and approximate queries against it.
//
// Services are stateless between calls; everything is store-backed
// through the driven ports. The indexer's read-checksum-then-write
// sequence runs inside a store transaction so concurrent re-indexing of
// one URL is serialized at the storage boundary.
package services

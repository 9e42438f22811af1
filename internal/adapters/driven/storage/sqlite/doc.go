// Package sqlite provides the SQLite-backed implementation of the
// IndexStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. A deterministic
// `regexp` scalar function is registered with the driver so phrase
// containment compiles directly to `text REGEXP ?`.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory as .up.sql/.down.sql pairs.
//
// # Data Location
//
// By default, the database is stored at ~/.cearch/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. WAL mode plus real transactions around
// the indexer's read-then-write sequence close the concurrent re-index
// race at the storage boundary.
package sqlite

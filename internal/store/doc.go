// Package store persists the pet collection.
//
// The collection is a single document: an ordered JSON array of pet records.
// Every mutation round-trips the whole document, so UpdateOne is a
// read-modify-write of the full collection.
//
// # Backends
//
//   - FileBackend: the document lives in a JSON file and is replaced
//     atomically (temp file + rename) on every save.
//   - SQLiteBackend: the document lives in a single row as a versioned blob.
//     Each save bumps the version.
//
// Open picks the SQLite backend for paths ending in .db or .sqlite and the
// file backend for anything else. A missing file or empty row is an empty
// collection, not an error.
//
// # Single writer
//
// Store serializes its own read-modify-write cycles with a mutex, so one
// process never interleaves two UpdateOne calls. Nothing protects against a
// second process writing the same document; concurrent sessions can lose
// updates. That is a known limitation of the whole-document model.
package store

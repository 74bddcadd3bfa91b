// Package disk persists cache records on the local filesystem, one file
// per key, preserving the runtime shape of each record's value across
// the untyped text format.
//
// # Shapes
//
// A stored value is classified into exactly one of four variants:
// scalar, array, collection, or map. The classification, together with
// the registered type names involved, is persisted in the record
// envelope and drives the typed decode on read. See the shape package.
//
// # Retrieval semantics
//
// Every retrieval path reports absence instead of an error: a missing
// file, malformed content, an unresolvable type name, and a failed
// decryption all look identical to the caller, which should fall back
// to the underlying data source. Save failures, by contrast, indicate
// an unusable store and propagate.
//
// # Resource handling
//
// Encrypted retrievals decrypt into a working file that is removed on
// every exit path, success or failure. No file handles outlive the
// operation that opened them.
package disk

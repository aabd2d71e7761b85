// Package record implements a small object-modeling layer: schema-declared
// attributes with optional type constraints, insertion-ordered storage,
// mutable and immutable record variants, and an ordered dict/JSON boundary.
//
// A Schema declares attributes up front (optionally typed, optionally
// defaulted). Records built from a schema validate declared attributes on
// every write; attributes never declared are accepted as dynamic, untyped
// slots. Mutable supports in-place mutation; Immutable rejects it and
// produces new instances through WithValue and WithUpdates instead.
//
// Records are not safe for concurrent mutation. Immutable instances never
// mutate shared state, so they may be shared freely across readers.
package record

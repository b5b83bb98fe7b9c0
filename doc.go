// Package champ implements an immutable, persistent map keyed by
// arbitrary hashable values, built on a Compressed Hash-Array Mapped
// Prefix Trie (CHAMP).
//
// Every mutating operation on a Map returns a new logical map; the
// previous map remains valid and unchanged. Structural sharing between
// versions keeps updates near-logarithmic in time and memory.
//
// Hashing and equality for keys are supplied once per instantiation via
// a Hasher type parameter (see Hasher, ComparableHasher); champ does
// not support swapping the hasher for an existing Map at runtime.
//
// Ordered iteration, concurrent mutation of a single transient builder,
// disk persistence, and weak keys are explicitly out of scope.
package champ

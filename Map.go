package champ

import (
	"iter"
	"sync/atomic"

	"github.com/sirgallo/logger"
)

var cLog = logger.NewCustomLog("champ")

//============================================= Map Facade

// Entry is an immutable (key, value) pair as consumed by Of and produced
// by ToSlice and Reduce. FromEntries and Entries work on iter.Seq2[K, V]
// instead.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map is an immutable, persistent map keyed by K with values V, backed by
// a CHAMP trie. Every write method returns a new Map; the receiver is
// left completely unchanged, with the two versions sharing all
// unmodified subtrees.
//
// Hashing and equality for K are fixed at instantiation by the KH type
// parameter (see Hasher); VH fixes hashing/equality for V, used only by
// Hash, Equal, ContainsValue, and DiffKeys. Neither is swappable per instance.
//
// The zero value of Map is not useful; construct one with Empty, Of,
// From, or FromEntries.
type Map[K any, V any, KH Hasher[K], VH Hasher[V]] struct {
	root  *node[K, V]
	count int

	// hashCache holds the lazily computed, order-independent structural
	// hash of the map, behind an atomic.Pointer so
	// concurrent readers computing it for the first time at the same
	// time race benignly (duplicate work, same answer) instead of
	// racing under the data-race detector. A new Map built from a write
	// always starts with a fresh, unset cache: the cheapest correct
	// invalidation policy is "recompute on next ask."
	hashCache atomic.Pointer[uint32]
}

// Empty returns the canonical empty Map for this (K, V, KH, VH)
// instantiation.
func Empty[K any, V any, KH Hasher[K], VH Hasher[V]]() *Map[K, V, KH, VH] {
	return &Map[K, V, KH, VH]{root: emptyNode[K, V]()}
}

// Of builds a Map from a fixed list of entries, last-writer-wins on
// duplicate keys.
func Of[K any, V any, KH Hasher[K], VH Hasher[V]](entries ...Entry[K, V]) *Map[K, V, KH, VH] {
	m := Empty[K, V, KH, VH]()
	for _, e := range entries {
		m = m.Add(e.Key, e.Value)
	}
	return m
}

// From builds a Map from a native Go map.
func From[K comparable, V any, KH Hasher[K], VH Hasher[V]](src map[K]V) *Map[K, V, KH, VH] {
	return FromEntries[K, V, KH, VH](func(yield func(K, V) bool) {
		for k, v := range src {
			if !yield(k, v) {
				return
			}
		}
	})
}

// FromEntries builds a Map from seq using streaming transient insert:
// allocate one owner, add every entry in place, freeze once at the end.
// O(N log N) and the default bulk constructor; see FromEntriesTwoPass
// for the alternative.
func FromEntries[K any, V any, KH Hasher[K], VH Hasher[V]](seq iter.Seq2[K, V]) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()
	count := 0

	root := transientBuild(emptyNode[K, V](), func(owner *TransientOwner, root *node[K, V]) *node[K, V] {
		for k, v := range seq {
			newRoot, didAdd := add(root, owner, ops, k, v, ops.hash(k), 0)
			root = newRoot
			if didAdd {
				count++
			}
		}
		return root
	})

	cLog.Debug("FromEntries: built map with", count, "entries via streaming transient insert")
	return &Map[K, V, KH, VH]{root: root, count: count}
}

// FromEntriesTwoPass builds a Map from seq with a two-pass partition
// build: materialize all entries, then recursively bucket them by hash
// fragment and assemble content arrays directly, skipping the
// incremental add/copy churn of the streaming strategy. Produces the
// same trie shape as FromEntries; which is faster depends on the
// workload (see cmd/champbench), so both are exposed rather than
// picking one default.
func FromEntriesTwoPass[K any, V any, KH Hasher[K], VH Hasher[V]](seq iter.Seq2[K, V]) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()

	type hashedEntry struct {
		hash uint32
		key  K
		val  V
	}

	// Last-writer-wins dedup by key. K is not constrained to comparable,
	// so dedup buckets candidate indices by hash and falls back to
	// ops.eq for the final check, same two-step lookup the core trie
	// itself uses.
	var order []hashedEntry
	seen := make(map[uint32][]int)
	for k, v := range seq {
		h := ops.hash(k)
		dup := false
		for _, idx := range seen[h] {
			if ops.eq(order[idx].key, k) {
				order[idx] = hashedEntry{hash: h, key: k, val: v}
				dup = true
				break
			}
		}
		if !dup {
			seen[h] = append(seen[h], len(order))
			order = append(order, hashedEntry{hash: h, key: k, val: v})
		}
	}

	owner := newTransientOwner()
	root := buildPartition(owner, 0, order, func(e hashedEntry) (uint32, K, V) {
		return e.hash, e.key, e.val
	})
	root = freeze(root, owner)

	cLog.Debug("FromEntriesTwoPass: built map with", len(order), "entries via two-pass partition build")
	return &Map[K, V, KH, VH]{root: root, count: len(order)}
}

// withRoot returns a new Map sharing everything but root and count with
// m; used by every write method after delegating to the core trie.
func (m *Map[K, V, KH, VH]) withRoot(root *node[K, V], count int) *Map[K, V, KH, VH] {
	if root == m.root && count == m.count {
		return m
	}
	return &Map[K, V, KH, VH]{root: root, count: count}
}

//============================================= Query

// Get returns the value stored under k and whether it was found.
func (m *Map[K, V, KH, VH]) Get(k K) (V, bool) {
	ops := newKeyOps[K, KH]()
	return get(m.root, ops, k, ops.hash(k), 0)
}

// ContainsKey reports whether k is present.
func (m *Map[K, V, KH, VH]) ContainsKey(k K) bool {
	ops := newKeyOps[K, KH]()
	return containsKey(m.root, ops, k, ops.hash(k), 0)
}

// ContainsValue reports whether any entry's value equals v, per V's VH
// equality. This is always O(N): there is no value index.
func (m *Map[K, V, KH, VH]) ContainsValue(v V) bool {
	var vh VH
	return containsValueWith(m.root, func(candidate V) bool { return vh.Equal(candidate, v) })
}

// Len returns the number of entries in the map.
func (m *Map[K, V, KH, VH]) Len() int {
	return m.count
}

// IsEmpty reports whether the map has zero entries.
func (m *Map[K, V, KH, VH]) IsEmpty() bool {
	return m.count == 0
}

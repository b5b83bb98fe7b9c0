package champ

import "iter"

//============================================= Iteration Views

// Entries returns an iterator over (key, value) pairs in the map's
// natural, unspecified-but-deterministic trie order. Two calls to
// Entries on the same frozen Map always yield entries in the identical
// order.
func (m *Map[K, V, KH, VH]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := newIterator(m.root)
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over the map's keys, derived from Entries.
func (m *Map[K, V, KH, VH]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.Entries() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the map's values, derived from
// Entries.
func (m *Map[K, V, KH, VH]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.Entries() {
			if !yield(v) {
				return
			}
		}
	}
}

// NewIterator returns a restartable, stack-based Iterator positioned
// before the first entry of m's frozen root. Prefer Entries/Keys/Values
// for range-over-func loops; NewIterator exists for callers that need to
// hold iteration state across multiple calls (e.g. manual pagination).
func (m *Map[K, V, KH, VH]) NewIterator() *Iterator[K, V] {
	return newIterator(m.root)
}

// ToNativeMap converts m to a native Go map. Like AddAll, this is a free
// function requiring K comparable, since Map itself only requires a
// Hasher[K] (which may back a non-comparable K, e.g. byte slices).
func ToNativeMap[K comparable, V any, KH Hasher[K], VH Hasher[V]](m *Map[K, V, KH, VH]) map[K]V {
	out := make(map[K]V, m.count)
	for k, v := range m.Entries() {
		out[k] = v
	}
	return out
}

// ToSlice collects m's entries into a slice in iteration order. Unlike
// ToNativeMap, this needs no comparable constraint, so it is a plain
// method.
func (m *Map[K, V, KH, VH]) ToSlice() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.count)
	for k, v := range m.Entries() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

//============================================= Indexed & Reducing Queries

// ElementAt returns the (key, value) pair at the given position in m's
// iteration order. Fails with ErrOutOfRange when index is not in
// [0, Len()).
func (m *Map[K, V, KH, VH]) ElementAt(index int) (K, V, error) {
	var zk K
	var zv V
	if index < 0 || index >= m.count {
		return zk, zv, ErrOutOfRange
	}

	i := 0
	for k, v := range m.Entries() {
		if i == index {
			return k, v, nil
		}
		i++
	}
	return zk, zv, ErrOutOfRange
}

// First returns the first (key, value) pair in m's iteration order.
// Fails with ErrEmptyCollection when m is empty.
func (m *Map[K, V, KH, VH]) First() (K, V, error) {
	var zk K
	var zv V
	for k, v := range m.Entries() {
		return k, v, nil
	}
	return zk, zv, ErrEmptyCollection
}

// Last returns the last (key, value) pair in m's iteration order. Fails
// with ErrEmptyCollection when m is empty.
func (m *Map[K, V, KH, VH]) Last() (K, V, error) {
	var zk K
	var zv V
	found := false
	for k, v := range m.Entries() {
		zk, zv = k, v
		found = true
	}
	if !found {
		return zk, zv, ErrEmptyCollection
	}
	return zk, zv, nil
}

// Single returns m's only entry. Fails with ErrEmptyCollection when m is
// empty and ErrAmbiguousSingle when m has more than one entry.
func (m *Map[K, V, KH, VH]) Single() (K, V, error) {
	return m.SingleWhere(func(K, V) bool { return true })
}

// SingleWhere returns the only entry satisfying pred. Fails with
// ErrEmptyCollection when no entry matches and ErrAmbiguousSingle when
// more than one entry matches.
func (m *Map[K, V, KH, VH]) SingleWhere(pred func(K, V) bool) (K, V, error) {
	var rk K
	var rv V
	found := false
	for k, v := range m.Entries() {
		if !pred(k, v) {
			continue
		}
		if found {
			var zk K
			var zv V
			return zk, zv, ErrAmbiguousSingle
		}
		rk, rv = k, v
		found = true
	}
	if !found {
		var zk K
		var zv V
		return zk, zv, ErrEmptyCollection
	}
	return rk, rv, nil
}

// Fold reduces m to a single value of type R by applying fn to an
// accumulator and every (key, value) pair, starting from init, in m's
// iteration order. A free function, like MapEntries, because a method
// cannot introduce the extra type parameter R a generic fold needs.
func Fold[K any, V any, KH Hasher[K], VH Hasher[V], R any](m *Map[K, V, KH, VH], init R, fn func(acc R, k K, v V) R) R {
	acc := init
	for k, v := range m.Entries() {
		acc = fn(acc, k, v)
	}
	return acc
}

// Reduce folds m's entries with fn, using the first entry in iteration
// order as the seed. Fails with ErrEmptyCollection on an empty map.
func (m *Map[K, V, KH, VH]) Reduce(fn func(acc Entry[K, V], k K, v V) Entry[K, V]) (K, V, error) {
	var zk K
	var zv V
	first := true
	var acc Entry[K, V]

	for k, v := range m.Entries() {
		if first {
			acc = Entry[K, V]{Key: k, Value: v}
			first = false
			continue
		}
		acc = fn(acc, k, v)
	}

	if first {
		return zk, zv, ErrEmptyCollection
	}
	return acc.Key, acc.Value, nil
}

package champ

//============================================= Map Writes (single entry)

// Add returns a new Map with key bound to value. If m already maps key
// to an equal value, Add returns m itself, so callers can detect "no new
// map was built" with a plain pointer comparison.
func (m *Map[K, V, KH, VH]) Add(key K, value V) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()
	newRoot, didAdd := add(m.root, nil, ops, key, value, ops.hash(key), 0)
	count := m.count
	if didAdd {
		count++
	}
	return m.withRoot(newRoot, count)
}

// Remove returns a new Map with key absent. If key was already absent,
// Remove returns m itself.
func (m *Map[K, V, KH, VH]) Remove(key K) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()
	newRoot, didRemove := remove(m.root, nil, ops, key, ops.hash(key), 0)
	count := m.count
	if didRemove {
		count--
	}
	return m.withRoot(newRoot, count)
}

// Update applies fn to the value at key, replacing it. If key is absent
// and ifAbsent is non-nil, ifAbsent is consulted for whether to insert a
// new entry: returning (v, true) inserts v, (_, false) leaves the map
// unchanged. A nil ifAbsent makes Update a no-op for absent keys.
func (m *Map[K, V, KH, VH]) Update(key K, fn func(V) V, ifAbsent func() (V, bool)) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()
	newRoot, sizeChanged := update(m.root, nil, ops, key, ops.hash(key), 0, fn, ifAbsent)
	count := m.count
	if sizeChanged {
		count++
	}
	return m.withRoot(newRoot, count)
}

// PutIfAbsent returns the value already stored at key, or the result of
// calling fn if key is absent. It is read-only with respect to the map:
// since Map is immutable, a method returning only a value has no way to
// hand back the map that would contain the new entry, so no insertion is
// observable through the receiver. Callers that need the post-insert map
// should use Update(key, fn, ifAbsent) directly instead.
func (m *Map[K, V, KH, VH]) PutIfAbsent(key K, fn func() V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	v := fn()
	return v
}

// Clear returns the canonical empty Map for this instantiation.
func (m *Map[K, V, KH, VH]) Clear() *Map[K, V, KH, VH] {
	return Empty[K, V, KH, VH]()
}

package champ

import "iter"

//============================================= Two-Pass Partition Build

// buildPartition is the two-pass bulk-construction strategy: partition
// entries into 32 buckets by their hash fragment at shift, recurse on
// buckets with more than one member, and assemble the resulting content
// array directly instead of growing it one add() at a time. extract
// pulls (hash, key, value) out
// of whatever entry representation the caller holds, so this one
// function serves both FromEntriesTwoPass and any future bulk entry
// point without committing to a concrete entry struct.
func buildPartition[K any, V any, E any](owner *TransientOwner, shift uint, entries []E, extract func(E) (uint32, K, V)) *node[K, V] {
	switch len(entries) {
	case 0:
		return emptyNode[K, V]()
	case 1:
		h, k, v := extract(entries[0])
		return newDataNode(h, k, v)
	}

	if shift >= maxDepth*bitChunkSize {
		collEntries := make([]mapEntry[K, V], len(entries))
		var hash uint32
		for i, e := range entries {
			h, k, v := extract(e)
			hash = h
			collEntries[i] = mapEntry[K, V]{key: k, value: v}
		}
		return newCollisionNode[K, V](owner, hash, collEntries)
	}

	// Pre-sizing each bucket's backing array to a rough fair share of the
	// input cuts the repeated-doubling churn a naive append-per-entry loop
	// would otherwise pay.
	hint := len(entries)/8 + 1
	var buckets [32][]E
	for _, e := range entries {
		h, _, _ := extract(e)
		frag := fragment(h, shift)
		if buckets[frag] == nil {
			buckets[frag] = make([]E, 0, hint)
		}
		buckets[frag] = append(buckets[frag], e)
	}

	var dataMap, nodeMap uint32
	var dataPairs []any
	var children []*node[K, V]

	for frag := uint32(0); frag < 32; frag++ {
		bucket := buckets[frag]
		switch len(bucket) {
		case 0:
			continue
		case 1:
			_, k, v := extract(bucket[0])
			dataMap |= bitpos(frag)
			dataPairs = append(dataPairs, k, v)
		default:
			nodeMap |= bitpos(frag)
			children = append(children, buildPartition[K, V](owner, nextShift(shift), bucket, extract))
		}
	}

	content := make([]any, len(dataPairs)+len(children))
	copy(content, dataPairs)
	for i, child := range children {
		content[len(content)-1-i] = child
	}

	return newBranchNode[K, V](owner, dataMap, nodeMap, content)
}

//============================================= Bulk Facade Operations

// AddEntries returns a new Map with every (k, v) of seq added, as if by
// folding seq with Add. Applied via the transient protocol: one owner,
// one mutable clone of the root, N in-place adds, one freeze. This is
// the general bulk-merge entry point;
// AddAll wraps it for the common case of merging a native Go map, which
// requires K to be comparable in a way this method's K any does not.
func (m *Map[K, V, KH, VH]) AddEntries(seq iter.Seq2[K, V]) *Map[K, V, KH, VH] {
	ops := newKeyOps[K, KH]()
	count := m.count

	newRoot := transientBuild(m.root, func(owner *TransientOwner, root *node[K, V]) *node[K, V] {
		for k, v := range seq {
			newChild, didAdd := add(root, owner, ops, k, v, ops.hash(k), 0)
			root = newChild
			if didAdd {
				count++
			}
		}
		return root
	})

	return m.withRoot(newRoot, count)
}

// AddAll returns a new Map with every (k, v) of src merged in. K must be
// comparable here because Go's built-in map type requires it; this is a
// free function rather than a method because a generic type's methods
// cannot tighten the type parameter constraints fixed at its declaration
// (Map[K, V, KH, VH] fixes K any to support non-comparable keys such as
// byte slices via a custom Hasher).
func AddAll[K comparable, V any, KH Hasher[K], VH Hasher[V]](m *Map[K, V, KH, VH], src map[K]V) *Map[K, V, KH, VH] {
	if len(src) == 0 {
		return m
	}

	newMap := m.AddEntries(func(yield func(K, V) bool) {
		for k, v := range src {
			if !yield(k, v) {
				return
			}
		}
	})

	cLog.Debug("AddAll: merged", len(src), "entries")
	return newMap
}

// UpdateAll returns a new Map with every value replaced by
// fn(key, value), as if by folding the key set with
// Update(k, func(v V) V { return fn(k, v) }, nil).
func (m *Map[K, V, KH, VH]) UpdateAll(fn func(K, V) V) *Map[K, V, KH, VH] {
	if m.count == 0 {
		return m
	}

	newRoot := transientBuild(m.root, func(owner *TransientOwner, root *node[K, V]) *node[K, V] {
		return updateAllRecursive(root, owner, fn)
	})

	return m.withRoot(newRoot, m.count)
}

// updateAllRecursive rewrites every entry's value in place under owner,
// descending without needing key hashes (it walks structurally rather
// than re-routing by fragment, since it must visit every entry anyway).
func updateAllRecursive[K any, V any](n *node[K, V], owner *TransientOwner, fn func(K, V) V) *node[K, V] {
	switch n.kind {
	case kindEmpty:
		return n

	case kindData:
		nv := fn(n.key, n.value)
		cn := n.copyForWrite(owner)
		cn.value = nv
		return cn

	case kindCollision:
		cn := n.copyForWrite(owner)
		for i, e := range cn.entries {
			cn.entries[i] = mapEntry[K, V]{key: e.key, value: fn(e.key, e.value)}
		}
		return cn

	default: // kindSparse, kindArray
		cn := n.copyForWrite(owner)

		dataCount := popcount(cn.dataMap)
		for i := 0; i < dataCount; i++ {
			k := cn.content[2*i].(K)
			v := cn.content[2*i+1].(V)
			cn.content[2*i+1] = fn(k, v)
		}

		nodeCount := popcount(cn.nodeMap)
		for i := 0; i < nodeCount; i++ {
			physical := contentIndexForNode(i, len(cn.content))
			child := cn.content[physical].(*node[K, V])
			cn.content[physical] = updateAllRecursive(child, owner, fn)
		}

		return cn
	}
}

// RemoveWhere returns a new Map with every entry matching pred removed,
// as if by folding the matching keys with Remove.
// RemoveWhere(func(K, V) bool { return true }) collapses to the
// canonical empty map.
func (m *Map[K, V, KH, VH]) RemoveWhere(pred func(K, V) bool) *Map[K, V, KH, VH] {
	if m.count == 0 {
		return m
	}

	ops := newKeyOps[K, KH]()
	removedCount := 0

	var keysToRemove []K
	for k, v := range m.Entries() {
		if pred(k, v) {
			keysToRemove = append(keysToRemove, k)
		}
	}
	if len(keysToRemove) == 0 {
		return m
	}

	newRoot := transientBuild(m.root, func(owner *TransientOwner, root *node[K, V]) *node[K, V] {
		for _, k := range keysToRemove {
			newRootInner, didRemove := remove(root, owner, ops, k, ops.hash(k), 0)
			root = newRootInner
			if didRemove {
				removedCount++
			}
		}
		return root
	})

	cLog.Debug("RemoveWhere: removed", removedCount, "entries")
	return m.withRoot(newRoot, m.count-removedCount)
}

// MapEntries converts every (K, V) entry of m to a (K2, V2) entry via fn,
// producing a new Map instantiated over a possibly different key/value
// type and hasher pair. This cannot be a method of Map[K,V,KH,VH]
// because Go forbids a method from introducing new type parameters, so
// it is a free function taking the source map explicitly.
func MapEntries[K any, V any, KH Hasher[K], VH Hasher[V], K2 any, V2 any, KH2 Hasher[K2], VH2 Hasher[V2]](
	m *Map[K, V, KH, VH], fn func(K, V) (K2, V2),
) *Map[K2, V2, KH2, VH2] {
	return FromEntries[K2, V2, KH2, VH2](func(yield func(K2, V2) bool) {
		for k, v := range m.Entries() {
			k2, v2 := fn(k, v)
			if !yield(k2, v2) {
				return
			}
		}
	})
}

// Where returns a new Map containing only the entries satisfying pred,
// equivalent to RemoveWhere with the predicate inverted.
func (m *Map[K, V, KH, VH]) Where(pred func(K, V) bool) *Map[K, V, KH, VH] {
	return m.RemoveWhere(func(k K, v V) bool { return !pred(k, v) })
}

package champ


//============================================= Lookup


// get traverses from n looking for key, whose full hash is hash and
// whose current trie depth is shift. It reports the stored value and
// whether the key was found.
func get[K any, V any](n *node[K, V], ops keyOps[K], key K, hash uint32, shift uint) (V, bool) {
	switch n.kind {
	case kindEmpty:
		var zero V
		return zero, false

	case kindData:
		if n.hash == hash && ops.eq(n.key, key) {
			return n.value, true
		}
		var zero V
		return zero, false

	case kindCollision:
		if n.hash != hash {
			var zero V
			return zero, false
		}
		for _, e := range n.entries {
			if ops.eq(e.key, key) {
				return e.value, true
			}
		}
		var zero V
		return zero, false

	default: // kindSparse, kindArray
		frag := fragment(hash, shift)
		bp := bitpos(frag)

		if n.dataMap&bp != 0 {
			idx := dataIndex(n.dataMap, bp)
			k, v := n.dataAt(idx)
			if ops.eq(k, key) {
				return v, true
			}
			var zero V
			return zero, false
		}

		if n.nodeMap&bp != 0 {
			idx := nodeIndex(n.nodeMap, bp)
			child := n.childAt(idx)
			return get(child, ops, key, hash, nextShift(shift))
		}

		var zero V
		return zero, false
	}
}

// containsKey is get without materializing the value.
func containsKey[K any, V any](n *node[K, V], ops keyOps[K], key K, hash uint32, shift uint) bool {
	_, ok := get(n, ops, key, hash, shift)
	return ok
}

// containsValueWith performs a linear scan of the whole trie looking for
// any entry whose value satisfies pred. There is no index on values, so
// this is always O(N).
// The predicate (rather than a hardcoded equality) lets callers plug in
// the VH Hasher's Equal, keeping value comparison consistent with
// Map.Hash/Map.Equal instead of a separate notion of "equal".
func containsValueWith[K any, V any](n *node[K, V], pred func(V) bool) bool {
	switch n.kind {
	case kindEmpty:
		return false

	case kindData:
		return pred(n.value)

	case kindCollision:
		for _, e := range n.entries {
			if pred(e.value) {
				return true
			}
		}
		return false

	default: // kindSparse, kindArray
		dataCount := popcount(n.dataMap)
		for i := 0; i < dataCount; i++ {
			_, v := n.dataAt(i)
			if pred(v) {
				return true
			}
		}

		nodeCount := popcount(n.nodeMap)
		for i := 0; i < nodeCount; i++ {
			if containsValueWith(n.childAt(i), pred) {
				return true
			}
		}

		return false
	}
}

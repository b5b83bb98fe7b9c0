package champ


//============================================= Merge Helper


// mergeEntries builds the smallest sub-trie that distinguishes two
// colliding Data entries (h1,k1,v1) and (h2,k2,v2), starting at shift.
// Callers guarantee k1 and k2 are distinct keys (by the equality used
// for K); mergeEntries itself never compares keys, only hash fragments:
// levels where the fragments still agree become single-child branch
// wrappers, the first divergence yields a two-entry branch, and running
// out of hash bits altogether yields a Collision node.
func mergeEntries[K any, V any](owner *TransientOwner, shift uint, h1 uint32, k1 K, v1 V, h2 uint32, k2 K, v2 V) *node[K, V] {
	if shift >= maxDepth*bitChunkSize {
		return newCollisionNode[K, V](owner, h1, []mapEntry[K, V]{
			{key: k1, value: v1},
			{key: k2, value: v2},
		})
	}

	f1 := fragment(h1, shift)
	f2 := fragment(h2, shift)

	if f1 == f2 {
		child := mergeEntries(owner, nextShift(shift), h1, k1, v1, h2, k2, v2)
		content := []any{child}
		return newBranchNode[K, V](owner, 0, bitpos(f1), content)
	}

	// Two distinct fragments: both entries become inline data, ordered by
	// ascending bit index so the content array's data region stays sorted.
	var content []any
	if f1 < f2 {
		content = []any{k1, v1, k2, v2}
	} else {
		content = []any{k2, v2, k1, v1}
	}

	dataMap := bitpos(f1) | bitpos(f2)
	return newBranchNode[K, V](owner, dataMap, 0, content)
}

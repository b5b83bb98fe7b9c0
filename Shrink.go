package champ


//============================================= Shrink / Transition


// createBranch classifies a freshly rewritten branching node by its
// child count and returns the node that should actually replace it in
// the trie:
//
//   - 0 children  -> the canonical Empty node.
//   - 1 child, a single inline data slot -> a Data node for that entry,
//     with its hash recomputed via hashFn (the caller doesn't necessarily
//     know the surviving entry's hash already: on the remove path, the key
//     that survives a collapse is whichever one wasn't removed, not the
//     one the caller was looking up).
//   - 1 child, a single node slot -> the child itself (collapsing a
//     useless intermediate level).
//   - >=2 children, count <= sparseThreshold -> Sparse.
//   - >=2 children, count >  sparseThreshold -> Array.
//
// owner, when non-nil, is attached to any newly-built branching node so
// the transient path stays within its owner's region; a collapsed-through
// single child keeps whatever ownership it already had, and a collapsed
// Data node is always born immutable.
func createBranch[K any, V any](owner *TransientOwner, dataMap, nodeMap uint32, content []any, hashFn func(K) uint32) *node[K, V] {
	dataCount := popcount(dataMap)
	nodeCount := popcount(nodeMap)

	switch dataCount + nodeCount {
	case 0:
		return emptyNode[K, V]()

	case 1:
		if dataCount == 1 {
			k := content[0].(K)
			v := content[1].(V)
			return newDataNode(hashFn(k), k, v)
		}
		// A single node slot: collapse the intermediate level away.
		return content[0].(*node[K, V])

	default:
		return newBranchNode[K, V](owner, dataMap, nodeMap, content)
	}
}

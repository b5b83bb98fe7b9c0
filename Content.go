package champ


//============================================= Content Array Rewrites


// These helpers rebuild a branching node's content array under its
// layout invariants: inline (key, value) pairs occupy the head of
// content in ascending bit-index order; child node pointers occupy the
// tail in descending bit-index order. Each helper returns a brand new
// slice. Slot overwrites that don't change the array's shape (replacing
// a value, swapping a child pointer) don't come through here: callers
// write through copyForWrite'd nodes directly, which on the transient
// path keeps those edits allocation-free.

// withDataInserted returns a copy of content with a new (key, value)
// pair inserted into the data region at the position implied by dataMap
// (which must already have the new bit set) and bp.
func withDataInserted[K any, V any](content []any, dataMap, bp uint32, key K, value V) []any {
	idx := dataIndex(dataMap, bp)
	out := make([]any, len(content)+2)
	copy(out, content[:2*idx])
	out[2*idx] = key
	out[2*idx+1] = value
	copy(out[2*idx+2:], content[2*idx:])
	return out
}

// withDataRemoved returns a copy of content with the (key, value) pair at
// data slot idx deleted.
func withDataRemoved(content []any, idx int) []any {
	out := make([]any, len(content)-2)
	copy(out, content[:2*idx])
	copy(out[2*idx:], content[2*idx+2:])
	return out
}

// withNodeRemoved returns a copy of content with the child pointer at
// node slot idx deleted.
func withNodeRemoved(content []any, idx int) []any {
	physical := contentIndexForNode(idx, len(content))
	out := make([]any, len(content)-1)
	copy(out, content[:physical])
	copy(out[physical:], content[physical+1:])
	return out
}

// withDataReplacedByNode rewrites content so the inline pair at data slot
// dataIdx (bit bp) is removed and a child node is inserted in its place
// in the node region, for the case where an inline entry collides with a
// new key and both have to move one level down.
func withDataReplacedByNode[K any, V any](content []any, dataMap, nodeMap, bp uint32, dataIdx int, child *node[K, V]) []any {
	withoutData := withDataRemoved(content, dataIdx)
	newNodeMap := nodeMap | bp
	newNodeIdx := nodeIndex(newNodeMap, bp)
	physical := contentIndexForNode(newNodeIdx, len(withoutData)+1)

	out := make([]any, len(withoutData)+1)
	copy(out, withoutData[:physical])
	out[physical] = child
	copy(out[physical+1:], withoutData[physical:])
	return out
}

// withNodeReplacedByData rewrites content so the child pointer at node
// slot nodeIdx (bit bp) is removed and an inline (key, value) pair is
// inserted in its place in the data region, promoting a child that
// shrank to a single entry back to an inline slot.
func withNodeReplacedByData[K any, V any](content []any, dataMap, nodeMap, bp uint32, nodeIdx int, key K, value V) []any {
	physical := contentIndexForNode(nodeIdx, len(content))
	withoutNode := make([]any, len(content)-1)
	copy(withoutNode, content[:physical])
	copy(withoutNode[physical:], content[physical+1:])

	newDataMap := dataMap | bp
	newDataIdx := dataIndex(newDataMap, bp)

	out := make([]any, len(withoutNode)+2)
	copy(out, withoutNode[:2*newDataIdx])
	out[2*newDataIdx] = key
	out[2*newDataIdx+1] = value
	copy(out[2*newDataIdx+2:], withoutNode[2*newDataIdx:])
	return out
}

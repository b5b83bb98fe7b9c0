package champ


//============================================= Mutation


// add inserts or overwrites (key, value) under n, at trie depth shift.
// owner nil selects the immutable path (every rewritten node is a fresh,
// unowned clone); owner non-nil selects the transient path (nodes already
// owned by owner mutate in place via copyForWrite). On the immutable path
// the returned node's identity equals n iff nothing changed; the boolean
// reports whether a new key was added (as opposed to an existing key's
// value being overwritten).
func add[K any, V any](n *node[K, V], owner *TransientOwner, ops keyOps[K], key K, value V, hash uint32, shift uint) (*node[K, V], bool) {
	switch n.kind {
	case kindEmpty:
		return newDataNode(hash, key, value), true

	case kindData:
		if ops.eq(n.key, key) {
			if valueEqual(n.value, value) {
				return n, false
			}
			cn := n.copyForWrite(owner)
			cn.value = value
			return cn, false
		}
		return mergeEntries(owner, shift, n.hash, n.key, n.value, hash, key, value), true

	case kindCollision:
		if hash != n.hash {
			return spliceIntoCollision(owner, shift, n, hash, key, value), true
		}
		for i, e := range n.entries {
			if ops.eq(e.key, key) {
				if valueEqual(e.value, value) {
					return n, false
				}
				cn := n.copyForWrite(owner)
				cn.entries[i] = mapEntry[K, V]{key: key, value: value}
				return cn, false
			}
		}
		cn := n.copyForWrite(owner)
		cn.entries = append(cn.entries, mapEntry[K, V]{key: key, value: value})
		return cn, true

	default: // kindSparse, kindArray
		frag := fragment(hash, shift)
		bp := bitpos(frag)

		if n.dataMap&bp != 0 {
			idx := dataIndex(n.dataMap, bp)
			ek, ev := n.dataAt(idx)
			if ops.eq(ek, key) {
				if valueEqual(ev, value) {
					return n, false
				}
				cn := n.copyForWrite(owner)
				cn.content[2*idx] = key
				cn.content[2*idx+1] = value
				return cn, false
			}

			child := mergeEntries(owner, nextShift(shift), ops.hash(ek), ek, ev, hash, key, value)
			content := withDataReplacedByNode(n.content, n.dataMap, n.nodeMap, bp, idx, child)
			cn := n.copyForWrite(owner)
			cn.dataMap &^= bp
			cn.nodeMap |= bp
			cn.content = content
			cn.kind = classifyBranchKind(cn.childCount())
			return cn, true
		}

		if n.nodeMap&bp != 0 {
			idx := nodeIndex(n.nodeMap, bp)
			child := n.childAt(idx)
			newChild, didAdd := add(child, owner, ops, key, value, hash, nextShift(shift))
			if newChild == child {
				// Same pointer back: either nothing changed, or the child is
				// owned by owner and was mutated in place. didAdd still has to
				// propagate in the second case.
				return n, didAdd
			}
			cn := n.copyForWrite(owner)
			physical := contentIndexForNode(idx, len(cn.content))
			cn.content[physical] = newChild
			return cn, didAdd
		}

		content := withDataInserted(n.content, n.dataMap|bp, bp, key, value)
		cn := n.copyForWrite(owner)
		cn.dataMap |= bp
		cn.content = content
		cn.kind = classifyBranchKind(cn.childCount())
		return cn, true
	}
}

// remove deletes key from under n at trie depth shift, applying the
// collapse rules on the way back up. The boolean reports whether the key
// was actually present (and so removed).
func remove[K any, V any](n *node[K, V], owner *TransientOwner, ops keyOps[K], key K, hash uint32, shift uint) (*node[K, V], bool) {
	switch n.kind {
	case kindEmpty:
		return n, false

	case kindData:
		if ops.eq(n.key, key) {
			return emptyNode[K, V](), true
		}
		return n, false

	case kindCollision:
		if hash != n.hash {
			return n, false
		}
		for i, e := range n.entries {
			if !ops.eq(e.key, key) {
				continue
			}
			if len(n.entries) == 2 {
				other := n.entries[1-i]
				return newDataNode(n.hash, other.key, other.value), true
			}
			cn := n.copyForWrite(owner)
			cn.entries = append(cn.entries[:i:i], cn.entries[i+1:]...)
			return cn, true
		}
		return n, false

	default: // kindSparse, kindArray
		frag := fragment(hash, shift)
		bp := bitpos(frag)

		if n.dataMap&bp != 0 {
			idx := dataIndex(n.dataMap, bp)
			ek, _ := n.dataAt(idx)
			if !ops.eq(ek, key) {
				return n, false
			}
			newContent := withDataRemoved(n.content, idx)
			newDataMap := n.dataMap &^ bp
			return createBranch[K, V](owner, newDataMap, n.nodeMap, newContent, ops.hash), true
		}

		if n.nodeMap&bp != 0 {
			idx := nodeIndex(n.nodeMap, bp)
			child := n.childAt(idx)
			newChild, didRemove := remove(child, owner, ops, key, hash, nextShift(shift))
			if !didRemove {
				return n, false
			}

			switch {
			case newChild.isEmpty():
				newContent := withNodeRemoved(n.content, idx)
				newNodeMap := n.nodeMap &^ bp
				return createBranch[K, V](owner, n.dataMap, newNodeMap, newContent, ops.hash), true

			case newChild.kind == kindData:
				newContent := withNodeReplacedByData(n.content, n.dataMap, n.nodeMap, bp, idx, newChild.key, newChild.value)
				newDataMap := n.dataMap | bp
				newNodeMap := n.nodeMap &^ bp
				return createBranch[K, V](owner, newDataMap, newNodeMap, newContent, ops.hash), true

			default:
				cn := n.copyForWrite(owner)
				physical := contentIndexForNode(idx, len(cn.content))
				cn.content[physical] = newChild
				return createBranch[K, V](owner, cn.dataMap, cn.nodeMap, cn.content, ops.hash), true
			}
		}

		return n, false
	}
}

// update applies updateFn to the value stored at key (if present) or, if
// absent and ifAbsent is non-nil, consults ifAbsent for whether to insert
// a new entry. The boolean reports sizeChanged: true
// only when ifAbsent actually inserted a new key. A nil ifAbsent means
// "do nothing when the key is absent" (used by the facade's plain Update
// without an ifAbsent callback).
func update[K any, V any](n *node[K, V], owner *TransientOwner, ops keyOps[K], key K, hash uint32, shift uint, updateFn func(V) V, ifAbsent func() (V, bool)) (*node[K, V], bool) {
	switch n.kind {
	case kindEmpty:
		if ifAbsent == nil {
			return n, false
		}
		v, ok := ifAbsent()
		if !ok {
			return n, false
		}
		return newDataNode(hash, key, v), true

	case kindData:
		if ops.eq(n.key, key) {
			nv := updateFn(n.value)
			if valueEqual(nv, n.value) {
				return n, false
			}
			cn := n.copyForWrite(owner)
			cn.value = nv
			return cn, false
		}
		if ifAbsent == nil {
			return n, false
		}
		v, ok := ifAbsent()
		if !ok {
			return n, false
		}
		return mergeEntries(owner, shift, n.hash, n.key, n.value, hash, key, v), true

	case kindCollision:
		if hash == n.hash {
			for i, e := range n.entries {
				if ops.eq(e.key, key) {
					nv := updateFn(e.value)
					if valueEqual(nv, e.value) {
						return n, false
					}
					cn := n.copyForWrite(owner)
					cn.entries[i] = mapEntry[K, V]{key: key, value: nv}
					return cn, false
				}
			}
		}
		if ifAbsent == nil {
			return n, false
		}
		v, ok := ifAbsent()
		if !ok {
			return n, false
		}
		if hash == n.hash {
			cn := n.copyForWrite(owner)
			cn.entries = append(cn.entries, mapEntry[K, V]{key: key, value: v})
			return cn, true
		}
		return spliceIntoCollision(owner, shift, n, hash, key, v), true

	default: // kindSparse, kindArray
		frag := fragment(hash, shift)
		bp := bitpos(frag)

		if n.dataMap&bp != 0 {
			idx := dataIndex(n.dataMap, bp)
			ek, ev := n.dataAt(idx)
			if ops.eq(ek, key) {
				nv := updateFn(ev)
				if valueEqual(nv, ev) {
					return n, false
				}
				cn := n.copyForWrite(owner)
				cn.content[2*idx+1] = nv
				return cn, false
			}
			if ifAbsent == nil {
				return n, false
			}
			v, ok := ifAbsent()
			if !ok {
				return n, false
			}
			child := mergeEntries(owner, nextShift(shift), ops.hash(ek), ek, ev, hash, key, v)
			content := withDataReplacedByNode(n.content, n.dataMap, n.nodeMap, bp, idx, child)
			cn := n.copyForWrite(owner)
			cn.dataMap &^= bp
			cn.nodeMap |= bp
			cn.content = content
			cn.kind = classifyBranchKind(cn.childCount())
			return cn, true
		}

		if n.nodeMap&bp != 0 {
			idx := nodeIndex(n.nodeMap, bp)
			child := n.childAt(idx)
			newChild, sizeChanged := update(child, owner, ops, key, hash, nextShift(shift), updateFn, ifAbsent)
			if newChild == child {
				// In-place transient mutation returns the same pointer; the
				// size flag still has to propagate.
				return n, sizeChanged
			}
			cn := n.copyForWrite(owner)
			physical := contentIndexForNode(idx, len(cn.content))
			cn.content[physical] = newChild
			return cn, sizeChanged
		}

		if ifAbsent == nil {
			return n, false
		}
		v, ok := ifAbsent()
		if !ok {
			return n, false
		}
		content := withDataInserted(n.content, n.dataMap|bp, bp, key, v)
		cn := n.copyForWrite(owner)
		cn.dataMap |= bp
		cn.content = content
		cn.kind = classifyBranchKind(cn.childCount())
		return cn, true
	}
}

// spliceIntoCollision handles the structurally rare case of reaching an
// existing Collision node while inserting an entry whose hash differs
// from the collision's shared hash. mergeEntries only ever produces a
// Collision node at max depth, once every 5-bit fragment has matched, but
// remove's collapse rule (createBranch returning a sole child node) lifts
// a surviving Collision node up past the single-child branch wrappers
// above it, so a later insert can meet it at a shallower shift with a
// different hash. Mirroring mergeEntries, it builds
// the smallest sub-trie splitting the collision from the new entry:
// levels where the fragments still agree become single-child branch
// wrappers, and the first divergence yields a branch holding the new
// entry inline next to the collision as a child.
func spliceIntoCollision[K any, V any](owner *TransientOwner, shift uint, coll *node[K, V], hash uint32, key K, value V) *node[K, V] {
	if shift >= maxDepth*bitChunkSize {
		entries := append(append([]mapEntry[K, V]{}, coll.entries...), mapEntry[K, V]{key: key, value: value})
		return newCollisionNode[K, V](owner, coll.hash, entries)
	}

	cf := fragment(coll.hash, shift)
	nf := fragment(hash, shift)
	if cf == nf {
		child := spliceIntoCollision(owner, nextShift(shift), coll, hash, key, value)
		return newBranchNode[K, V](owner, 0, bitpos(cf), []any{child})
	}

	return newBranchNode[K, V](owner, bitpos(nf), bitpos(cf), []any{key, value, coll})
}

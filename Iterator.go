package champ


//============================================= Iterator


// iterFrame is one stack frame in an Iterator's traversal. cursor means
// different things depending on n.kind: an index into entries for a
// Collision frame, or the next bit-index (0..31) to inspect for a
// branching frame. A Data frame never advances its cursor; it is popped
// the moment it is visited.
type iterFrame[K any, V any] struct {
	n      *node[K, V]
	cursor int
}

// Iterator walks every (key, value) pair reachable from a frozen root
// exactly once, in an order that is unspecified but deterministic for a
// given tree. It is single-threaded,
// forward-only, and restartable only by obtaining a fresh Iterator from
// the map. An Iterator never observes a transient mutation: it is only
// ever constructed over an already-frozen root.
type Iterator[K any, V any] struct {
	stack   []iterFrame[K, V]
	curKey  K
	curVal  V
	started bool
	valid   bool
}

// newIterator builds an Iterator positioned before the first entry of
// root.
func newIterator[K any, V any](root *node[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{}
	if !root.isEmpty() {
		it.stack = []iterFrame[K, V]{{n: root}}
	}
	return it
}

// Next advances the iterator to the next entry and reports whether one
// was found. Call Key/Value (or Entry) only after Next has returned true.
func (it *Iterator[K, V]) Next() bool {
	it.started = true

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		switch top.n.kind {
		case kindData:
			it.stack = it.stack[:len(it.stack)-1]
			it.curKey, it.curVal = top.n.key, top.n.value
			it.valid = true
			return true

		case kindCollision:
			if top.cursor < len(top.n.entries) {
				e := top.n.entries[top.cursor]
				top.cursor++
				it.curKey, it.curVal = e.key, e.value
				it.valid = true
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]

		default: // kindSparse, kindArray
			descended := false
			for top.cursor <= 31 {
				bp := bitpos(uint32(top.cursor))

				if top.n.dataMap&bp != 0 {
					idx := dataIndex(top.n.dataMap, bp)
					k, v := top.n.dataAt(idx)
					top.cursor++
					it.curKey, it.curVal = k, v
					it.valid = true
					return true
				}

				if top.n.nodeMap&bp != 0 {
					idx := nodeIndex(top.n.nodeMap, bp)
					child := top.n.childAt(idx)
					top.cursor++
					it.stack = append(it.stack, iterFrame[K, V]{n: child})
					descended = true
					break
				}

				top.cursor++
			}

			if !descended && top.cursor > 31 {
				it.stack = it.stack[:len(it.stack)-1]
			}
		}
	}

	it.valid = false
	return false
}

// Current returns the entry at the iterator's present position, or
// ErrInvalidIteratorState if Next has never been called, returned false,
// or has not yet been called since construction.
func (it *Iterator[K, V]) Current() (K, V, error) {
	if !it.valid {
		var zk K
		var zv V
		return zk, zv, ErrInvalidIteratorState
	}
	return it.curKey, it.curVal, nil
}

// Key is Current's key, ignoring the validity error.
func (it *Iterator[K, V]) Key() K {
	return it.curKey
}

// Value is Current's value, ignoring the validity error.
func (it *Iterator[K, V]) Value() V {
	return it.curVal
}

package champ

import (
	"reflect"
	"sync"
)


//============================================= Node Construction


// emptySingletons caches the one canonical Empty node per (K, V)
// instantiation. Go generics cannot declare a generic package-level
// variable directly, so champ keys a small registry by reflect.Type,
// which gets one singleton per instantiation. Every emptyNode[K, V]()
// call computes the reflect.Type and reads the sync.Map; only the first
// call per type combination stores a new node.
var emptySingletons sync.Map // map[reflect.Type]any

// emptyNode returns the canonical, immutable, zero-entry node for this
// (K, V) instantiation.
func emptyNode[K any, V any]() *node[K, V] {
	var zero [0]*node[K, V]
	t := reflect.TypeOf(zero).Elem()

	if cached, ok := emptySingletons.Load(t); ok {
		return cached.(*node[K, V])
	}

	n := &node[K, V]{kind: kindEmpty}
	actual, _ := emptySingletons.LoadOrStore(t, n)
	return actual.(*node[K, V])
}

// isEmpty reports whether n is an Empty node: the canonical singleton or
// an owned clone of it made by copyForWrite/ensureMutable.
func (n *node[K, V]) isEmpty() bool {
	return n.kind == kindEmpty
}

// newDataNode creates a new, immutable Data node holding a single entry.
func newDataNode[K any, V any](hash uint32, key K, value V) *node[K, V] {
	return &node[K, V]{kind: kindData, hash: hash, key: key, value: value}
}

// newCollisionNode creates a new Collision node from >=2 entries sharing
// the same full hash. If owner is non-nil the node is transient.
func newCollisionNode[K any, V any](owner *TransientOwner, hash uint32, entries []mapEntry[K, V]) *node[K, V] {
	return &node[K, V]{kind: kindCollision, owner: owner, hash: hash, entries: entries}
}

// newBranchNode creates a new branching node (Sparse or Array, chosen by
// classifyBranchKind based on child count) from an already-built content
// array and bitmaps. If owner is non-nil the node is transient.
func newBranchNode[K any, V any](owner *TransientOwner, dataMap, nodeMap uint32, content []any) *node[K, V] {
	assertInvariant(len(content) == 2*popcount(dataMap)+popcount(nodeMap),
		"branching node content length does not match 2*popcount(dataMap)+popcount(nodeMap)")
	assertInvariant(dataMap&nodeMap == 0, "dataMap and nodeMap overlap")

	n := &node[K, V]{owner: owner, dataMap: dataMap, nodeMap: nodeMap, content: content}
	n.kind = classifyBranchKind(n.childCount())
	return n
}

// classifyBranchKind picks Sparse vs. Array purely from child count; see
// Shrink.go's createBranch for the full collapse classification that
// also handles 0/1-child cases.
func classifyBranchKind(childCount int) kind {
	if childCount <= sparseThreshold {
		return kindSparse
	}
	return kindArray
}


//============================================= Copying


// copyForWrite returns a node ready to receive an in-place edit: if n is
// already transient under owner, n itself is returned (true mutation in
// place); otherwise a shallow clone owned by owner is returned, leaving n
// and anything reachable from it untouched. This is the single place
// both the immutable path (owner == nil, always clones into a fresh,
// unowned node) and the transient path (owner != nil) share their
// clone-vs-reuse decision.
func (n *node[K, V]) copyForWrite(owner *TransientOwner) *node[K, V] {
	if owner != nil && n.ownedBy(owner) {
		return n
	}

	clone := &node[K, V]{
		kind:    n.kind,
		owner:   owner,
		hash:    n.hash,
		key:     n.key,
		value:   n.value,
		dataMap: n.dataMap,
		nodeMap: n.nodeMap,
	}

	if n.entries != nil {
		clone.entries = append([]mapEntry[K, V](nil), n.entries...)
	}
	if n.content != nil {
		clone.content = append([]any(nil), n.content...)
	}

	return clone
}


//============================================= Freezing


// freeze recursively marks a transient subtree as immutable: it clears
// owner on every descendant whose owner matches, seals the node (no
// further copyForWrite short-circuit is possible once owner is nil), and
// returns the same pointer. Nodes not owned by owner (already frozen, or
// owned by some other builder that cloned instead of sharing) are left
// untouched.
func freeze[K any, V any](n *node[K, V], owner *TransientOwner) *node[K, V] {
	if n == nil || !n.ownedBy(owner) {
		return n
	}

	n.owner = nil

	if n.kind == kindSparse || n.kind == kindArray {
		nodeCount := popcount(n.nodeMap)
		for i := 0; i < nodeCount; i++ {
			idx := contentIndexForNode(i, len(n.content))
			child := n.content[idx].(*node[K, V])
			n.content[idx] = freeze(child, owner)
		}
	}

	return n
}

// isTransient reports whether n is currently mutable under owner. A
// stale or mismatched owner (including nil, the immutable-path sentinel)
// always reports false, which is what makes further mutation through a
// freed owner impossible.
func (n *node[K, V]) isTransient(owner *TransientOwner) bool {
	return n.ownedBy(owner)
}

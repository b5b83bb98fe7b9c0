package champ


//============================================= Transient Mutation


// ensureMutable returns a node owned by owner that is safe to mutate in
// place: if n is already owned by owner, n itself; otherwise a clone
// carrying owner. This is the entry point bulk facade operations use to
// obtain a mutable root before looping add/remove/update calls with the
// same owner threaded through every call.
func ensureMutable[K any, V any](n *node[K, V], owner *TransientOwner) *node[K, V] {
	return n.copyForWrite(owner)
}

// transientBuild runs fn, a sequence of owner-threaded mutations starting
// from root, then freezes the result before returning it. Every bulk
// facade operation (AddAll, UpdateAll, RemoveWhere, FromEntries's
// streaming strategy) follows this same allocate-owner / mutate / freeze
// shape; this helper exists so each call site only has to supply the
// mutation loop itself.
func transientBuild[K any, V any](root *node[K, V], fn func(owner *TransientOwner, root *node[K, V]) *node[K, V]) *node[K, V] {
	owner := newTransientOwner()
	mutable := ensureMutable(root, owner)
	result := fn(owner, mutable)
	return freeze(result, owner)
}

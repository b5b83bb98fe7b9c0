package champ

//============================================= Snapshot Diff

// DiffKeys compares two versions of a Map, typically an older snapshot
// a and a newer one b produced from it by one or more writes, and
// reports which keys were added, removed, or had their value changed.
// There is no version chain to consult, just two frozen roots, so the
// comparison walks both directly.
func DiffKeys[K any, V any, KH Hasher[K], VH Hasher[V]](a, b *Map[K, V, KH, VH]) (added, removed, changed []K) {
	var vh VH

	for k, v := range a.Entries() {
		bv, ok := b.Get(k)
		switch {
		case !ok:
			removed = append(removed, k)
		case !vh.Equal(v, bv):
			changed = append(changed, k)
		}
	}

	for k := range b.Entries() {
		if !a.ContainsKey(k) {
			added = append(added, k)
		}
	}

	return added, removed, changed
}

package champ

//============================================= Equality & Hash

// Equal reports whether m and other hold the same multiset of (key,
// value) entries, independent of trie shape or insertion order. Two maps
// built by inserting the same entries in different orders always compare
// Equal.
func (m *Map[K, V, KH, VH]) Equal(other *Map[K, V, KH, VH]) bool {
	if m == other {
		return true
	}
	if m.count != other.count {
		return false
	}

	var vh VH
	for k, v := range m.Entries() {
		ov, ok := other.Get(k)
		if !ok || !vh.Equal(v, ov) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent structural hash of m, combining
// hash(k) XOR hash(v) for every entry under XOR (so entry order cannot
// affect the result) and finalizing with the same avalanche mix used
// elsewhere in the package. The result is cached on m
// after first computation; since every write produces a new Map with a
// nil cache, there is no invalidation to track.
func (m *Map[K, V, KH, VH]) Hash() uint32 {
	if cached := m.hashCache.Load(); cached != nil {
		return *cached
	}

	var kh KH
	var vh VH
	var acc uint32
	for k, v := range m.Entries() {
		acc ^= kh.Hash(k) ^ vh.Hash(v)
	}
	h := avalanche32(acc)
	m.hashCache.Store(&h)
	return h
}

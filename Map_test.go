package champ

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//============================================= Scenario Tests

func TestBasicInsertRemove(t *testing.T) {
	m := Empty[string, int, StringHasher, ComparableHasher[int]]()

	m = m.Add("a", 1)
	m = m.Add("b", 2)
	m = m.Add("c", 3)

	require.Equal(t, 3, m.Len())

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	m2 := m.Remove("b")
	require.Equal(t, 2, m2.Len())
	_, ok = m2.Get("b")
	require.False(t, ok)
	require.False(t, m2.ContainsKey("b"))

	// m is untouched.
	require.Equal(t, 3, m.Len())
	require.True(t, m.ContainsKey("b"))
}

func TestBulkInsertAndIterate(t *testing.T) {
	const n = 10000

	m := FromEntries[string, int, StringHasher, ComparableHasher[int]](func(yield func(string, int) bool) {
		for i := 0; i < n; i++ {
			if !yield(fmt.Sprintf("key%d", i), i) {
				return
			}
		}
	})

	require.Equal(t, n, m.Len())

	v, ok := m.Get("key4999")
	require.True(t, ok)
	require.Equal(t, 4999, v)

	_, ok = m.Get("key10000")
	require.False(t, ok)

	seen := make(map[string]int, n)
	for k, v := range m.Entries() {
		seen[k] = v
	}
	require.Len(t, seen, n)
	for i := 0; i < n; i++ {
		require.Equal(t, i, seen[fmt.Sprintf("key%d", i)])
	}
}

// constantHasher forces every key to the same hash, so every insert after
// the first lands on the Collision-node path.
type constantHasher struct{}

func (constantHasher) Hash(string) uint32     { return 0xC0FFEE }
func (constantHasher) Equal(a, b string) bool { return a == b }

// unwrapSoleChild follows single-child branch wrappers down to the first
// node that is not a pure one-child level, so tests can inspect the node
// a fully-colliding key set actually ends up in.
func unwrapSoleChild[K any, V any](n *node[K, V]) *node[K, V] {
	for (n.kind == kindSparse || n.kind == kindArray) && n.dataMap == 0 && popcount(n.nodeMap) == 1 {
		n = n.childAt(0)
	}
	return n
}

func TestHashCollision(t *testing.T) {
	m := Empty[string, int, constantHasher, ComparableHasher[int]]()

	m = m.Add("ka", 1)
	m = m.Add("kb", 2)

	require.Equal(t, 2, m.Len())
	require.Equal(t, kindCollision, unwrapSoleChild(m.root).kind, "two keys sharing a full hash must land in a Collision node")

	va, ok := m.Get("ka")
	require.True(t, ok)
	require.Equal(t, 1, va)

	vb, ok := m.Get("kb")
	require.True(t, ok)
	require.Equal(t, 2, vb)

	m2 := m.Remove("ka")
	require.Equal(t, 1, m2.Len())
	require.Equal(t, kindData, m2.root.kind, "expected a 2-entry Collision to collapse to a Data node after removing one entry")

	vb2, ok := m2.Get("kb")
	require.True(t, ok)
	require.Equal(t, 2, vb2)
}

func TestUpdateAll(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "c", Value: 3},
	)

	updated := m.UpdateAll(func(k string, v int) int { return v * 10 })

	require.Equal(t, m.Len(), updated.Len())

	a, _ := updated.Get("a")
	b, _ := updated.Get("b")
	c, _ := updated.Get("c")
	require.Equal(t, 10, a)
	require.Equal(t, 20, b)
	require.Equal(t, 30, c)

	// original untouched.
	origA, _ := m.Get("a")
	require.Equal(t, 1, origA)
}

func TestRemoveWhere(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "c", Value: 3},
		Entry[string, int]{Key: "d", Value: 4},
	)

	odds := m.RemoveWhere(func(k string, v int) bool { return v%2 == 0 })
	require.Equal(t, 2, odds.Len())
	_, hasA := odds.Get("a")
	_, hasC := odds.Get("c")
	require.True(t, hasA)
	require.True(t, hasC)
	require.False(t, odds.ContainsKey("b"))
	require.False(t, odds.ContainsKey("d"))

	everything := m.RemoveWhere(func(string, int) bool { return true })
	require.Equal(t, 0, everything.Len())
	require.True(t, everything.IsEmpty())
	require.True(t, everything.root.isEmpty())
}

func TestEqualityOrderIndependent(t *testing.T) {
	forward := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "c", Value: 3},
	)
	reversed := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "c", Value: 3},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "a", Value: 1},
	)

	require.True(t, forward.Equal(reversed))
	require.Equal(t, forward.Hash(), reversed.Hash())

	withExtra := reversed.Add("d", 4)
	require.False(t, forward.Equal(withExtra))
}

//============================================= Property Tests

func TestAddGet(t *testing.T) {
	m := Empty[string, int, StringHasher, ComparableHasher[int]]()
	m = m.Add("x", 42)

	v, ok := m.Get("x")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestRemoveGet(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](Entry[string, int]{Key: "x", Value: 1})
	m2 := m.Remove("x")

	require.False(t, m2.ContainsKey("x"))
	require.Equal(t, m.Len()-1, m2.Len())
}

func TestIdentityPreservation(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](Entry[string, int]{Key: "x", Value: 1})

	v, _ := m.Get("x")
	same := m.Add("x", v)
	require.Same(t, m, same, "Add with the existing value should return the identical Map")

	untouched := m.Remove("absent")
	require.Same(t, m, untouched, "Remove of an absent key should return the identical Map")
}

func TestBulkEquivalence(t *testing.T) {
	base := FromEntries[string, int, StringHasher, ComparableHasher[int]](func(yield func(string, int) bool) {
		for i := 0; i < 50; i++ {
			if !yield(fmt.Sprintf("k%d", i), i) {
				return
			}
		}
	})

	delta := map[string]int{"new1": 100, "new2": 200}
	bulk := AddAll(base, delta)

	folded := base
	for k, v := range delta {
		folded = folded.Add(k, v)
	}

	require.Equal(t, folded.Len(), bulk.Len())
	require.True(t, folded.Equal(bulk))
}

func TestIteratorCompletenessAndDeterminism(t *testing.T) {
	m := FromEntries[string, int, StringHasher, ComparableHasher[int]](func(yield func(string, int) bool) {
		for i := 0; i < 500; i++ {
			if !yield(fmt.Sprintf("k%d", i), i) {
				return
			}
		}
	})

	first := make(map[string]int)
	var firstOrder []string
	for k, v := range m.Entries() {
		first[k] = v
		firstOrder = append(firstOrder, k)
	}

	second := make(map[string]int)
	var secondOrder []string
	for k, v := range m.Entries() {
		second[k] = v
		secondOrder = append(secondOrder, k)
	}

	require.Empty(t, cmp.Diff(first, second), "iteration multiset must match between two passes")
	require.Equal(t, firstOrder, secondOrder, "two iterators over the same frozen root must agree on order")
	require.Len(t, first, 500)
}

func TestCollapseCorrectness(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
	)

	m = m.Remove("a")
	require.Equal(t, 1, m.Len())
	require.Equal(t, kindData, m.root.kind)

	m = m.Remove("b")
	require.Equal(t, 0, m.Len())
	require.True(t, m.root.isEmpty())

	empty := Empty[string, int, StringHasher, ComparableHasher[int]]()
	require.True(t, m.Equal(empty))
}

func TestRoundTripFromEntries(t *testing.T) {
	src := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}

	m := From[string, int, StringHasher, ComparableHasher[int]](src)
	got := ToNativeMap[string, int, StringHasher, ComparableHasher[int]](m)

	require.Empty(t, cmp.Diff(src, got))
}

func TestFromEntriesTwoPassMatchesStreaming(t *testing.T) {
	entries := func(yield func(string, int) bool) {
		for i := 0; i < 2000; i++ {
			if !yield(fmt.Sprintf("key-%d", i), i*2) {
				return
			}
		}
	}

	streaming := FromEntries[string, int, StringHasher, ComparableHasher[int]](entries)
	twoPass := FromEntriesTwoPass[string, int, StringHasher, ComparableHasher[int]](entries)

	require.Equal(t, streaming.Len(), twoPass.Len())
	require.True(t, streaming.Equal(twoPass))
}

func TestMapEntriesConversion(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
	)

	converted := MapEntries[string, int, StringHasher, ComparableHasher[int], string, string, StringHasher, StringHasher](
		m, func(k string, v int) (string, string) { return k, fmt.Sprintf("v%d", v) },
	)

	require.Equal(t, m.Len(), converted.Len())
	v, ok := converted.Get("a")
	require.True(t, ok)
	require.Equal(t, "v1", v)
}

func TestToSlice(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
	)

	slice := m.ToSlice()
	require.Len(t, slice, 2)

	seen := map[string]int{}
	for _, e := range slice {
		seen[e.Key] = e.Value
	}
	require.Equal(t, map[string]int{"a": 1, "b": 2}, seen)

	require.Empty(t, Empty[string, int, StringHasher, ComparableHasher[int]]().ToSlice())
}

func TestWhere(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "c", Value: 3},
	)

	evens := m.Where(func(k string, v int) bool { return v%2 == 0 })
	require.Equal(t, 1, evens.Len())
	require.True(t, evens.ContainsKey("b"))
}

func TestDiffKeys(t *testing.T) {
	a := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "keep", Value: 1},
		Entry[string, int]{Key: "drop", Value: 2},
		Entry[string, int]{Key: "change", Value: 3},
	)
	b := a.Remove("drop").Add("change", 30).Add("fresh", 4)

	added, removed, changed := DiffKeys(a, b)
	require.ElementsMatch(t, []string{"fresh"}, added)
	require.ElementsMatch(t, []string{"drop"}, removed)
	require.ElementsMatch(t, []string{"change"}, changed)
}

func TestElementAtAndOutOfRange(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
	)

	_, _, err := m.ElementAt(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = m.ElementAt(m.Len())
	require.ErrorIs(t, err, ErrOutOfRange)

	k, v, err := m.ElementAt(0)
	require.NoError(t, err)
	got, ok := m.Get(k)
	require.True(t, ok)
	require.Equal(t, got, v)
}

func TestFirstLastEmptyCollection(t *testing.T) {
	empty := Empty[string, int, StringHasher, ComparableHasher[int]]()

	_, _, err := empty.First()
	require.ErrorIs(t, err, ErrEmptyCollection)

	_, _, err = empty.Last()
	require.ErrorIs(t, err, ErrEmptyCollection)

	_, _, err = empty.Single()
	require.ErrorIs(t, err, ErrEmptyCollection)
}

func TestSingleWhereAmbiguous(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 1},
	)

	_, _, err := m.SingleWhere(func(k string, v int) bool { return v == 1 })
	require.ErrorIs(t, err, ErrAmbiguousSingle)

	k, v, err := m.SingleWhere(func(k string, v int) bool { return k == "a" })
	require.NoError(t, err)
	require.Equal(t, "a", k)
	require.Equal(t, 1, v)
}

func TestPutIfAbsentIsReadOnly(t *testing.T) {
	m := Empty[string, int, StringHasher, ComparableHasher[int]]()

	v := m.PutIfAbsent("x", func() int { return 7 })
	require.Equal(t, 7, v)
	require.False(t, m.ContainsKey("x"), "PutIfAbsent must not mutate the map it was called on")

	withX := m.Update("x", func(v int) int { return v }, func() (int, bool) { return 7, true })
	require.True(t, withX.ContainsKey("x"))

	got := withX.PutIfAbsent("x", func() int { return 999 })
	require.Equal(t, 7, got)
}

func TestFoldFreeFunction(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](
		Entry[string, int]{Key: "a", Value: 1},
		Entry[string, int]{Key: "b", Value: 2},
		Entry[string, int]{Key: "c", Value: 3},
	)

	sum := Fold(m, 0, func(acc int, k string, v int) int { return acc + v })
	require.Equal(t, 6, sum)
}

// TestBytesHasherKeys exercises Map with a non-comparable key type
// ([]byte) hashed via BytesHasher, the case Map[K, V, KH, VH]'s K any
// (rather than K comparable) constraint exists to support.
func TestBytesHasherKeys(t *testing.T) {
	m := Empty[[]byte, int, BytesHasher, ComparableHasher[int]]()

	m = m.Add([]byte("alpha"), 1)
	m = m.Add([]byte("beta"), 2)
	m = m.Add([]byte("gamma"), 3)

	require.Equal(t, 3, m.Len())

	v, ok := m.Get([]byte("beta"))
	require.True(t, ok)
	require.Equal(t, 2, v)

	// Equal byte slices under different backing arrays must be treated as
	// the same key (BytesHasher.Equal uses bytes.Equal, not ==).
	key := append([]byte(nil), "alpha"...)
	v, ok = m.Get(key)
	require.True(t, ok)
	require.Equal(t, 1, v)

	m2 := m.Remove([]byte("beta"))
	require.Equal(t, 2, m2.Len())
	require.False(t, m2.ContainsKey([]byte("beta")))
}

func TestClearReturnsCanonicalEmpty(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](Entry[string, int]{Key: "a", Value: 1})
	cleared := m.Clear()

	require.True(t, cleared.IsEmpty())
	require.True(t, cleared.Equal(Empty[string, int, StringHasher, ComparableHasher[int]]()))
}

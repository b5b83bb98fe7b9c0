package champ

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorCurrentBeforeNextFails(t *testing.T) {
	m := Of[string, int, StringHasher, ComparableHasher[int]](Entry[string, int]{Key: "a", Value: 1})
	it := m.NewIterator()

	_, _, err := it.Current()
	require.ErrorIs(t, err, ErrInvalidIteratorState)

	require.True(t, it.Next())
	_, _, err = it.Current()
	require.NoError(t, err)

	require.False(t, it.Next())
	_, _, err = it.Current()
	require.ErrorIs(t, err, ErrInvalidIteratorState)
}

func TestIteratorOverEmptyMap(t *testing.T) {
	m := Empty[string, int, StringHasher, ComparableHasher[int]]()
	it := m.NewIterator()

	require.False(t, it.Next())
}

func TestIteratorRestartable(t *testing.T) {
	m := FromEntries[string, int, StringHasher, ComparableHasher[int]](func(yield func(string, int) bool) {
		for i := 0; i < 100; i++ {
			if !yield(fmt.Sprintf("k%d", i), i) {
				return
			}
		}
	})

	firstPass := m.NewIterator()
	count1 := 0
	for firstPass.Next() {
		count1++
	}

	secondPass := m.NewIterator()
	count2 := 0
	for secondPass.Next() {
		count2++
	}

	require.Equal(t, 100, count1)
	require.Equal(t, count1, count2)
}

func TestIteratorOverCollisionNode(t *testing.T) {
	m := Empty[string, int, constantHasher, ComparableHasher[int]]()
	m = m.Add("ka", 1).Add("kb", 2).Add("kc", 3)

	require.Equal(t, kindCollision, unwrapSoleChild(m.root).kind)

	seen := map[string]int{}
	it := m.NewIterator()
	for it.Next() {
		seen[it.Key()] = it.Value()
	}

	require.Equal(t, map[string]int{"ka": 1, "kb": 2, "kc": 3}, seen)
}

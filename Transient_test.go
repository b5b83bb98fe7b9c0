package champ

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestTransientOwnershipAndFreeze(t *testing.T) {
	c := qt.New(t)

	ops := newKeyOps[string, StringHasher]()
	owner := newTransientOwner()

	root := ensureMutable(emptyNode[string, int](), owner)
	c.Assert(root.isTransient(owner), qt.IsTrue)

	root, didAdd := add(root, owner, ops, "a", 1, ops.hash("a"), 0)
	c.Assert(didAdd, qt.IsTrue)
	root, didAdd = add(root, owner, ops, "b", 2, ops.hash("b"), 0)
	c.Assert(didAdd, qt.IsTrue)

	frozen := freeze(root, owner)
	c.Assert(frozen.isTransient(owner), qt.IsFalse)

	otherOwner := newTransientOwner()
	c.Assert(frozen.isTransient(otherOwner), qt.IsFalse)

	v, ok := get(frozen, ops, "a", ops.hash("a"), 0)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)
}

func TestCopyForWriteClonesWhenNotOwned(t *testing.T) {
	c := qt.New(t)

	base := newDataNode[string, int](42, "k", 1)
	owner := newTransientOwner()

	clone := base.copyForWrite(owner)
	c.Assert(clone, qt.Not(qt.Equals), base)
	c.Assert(clone.key, qt.Equals, base.key)
	c.Assert(clone.value, qt.Equals, base.value)

	// Mutating the clone must not affect base (the immutable source).
	clone.value = 99
	c.Assert(base.value, qt.Equals, 1)
}

func TestCopyForWriteReusesOwnedNode(t *testing.T) {
	c := qt.New(t)

	owner := newTransientOwner()
	n := &node[string, int]{kind: kindData, owner: owner, key: "k", value: 1}

	same := n.copyForWrite(owner)
	c.Assert(same, qt.Equals, n, qt.Commentf("copyForWrite must mutate in place when n is already owned"))
}

func TestTransientBuildFreezesResult(t *testing.T) {
	c := qt.New(t)

	ops := newKeyOps[string, StringHasher]()

	result := transientBuild(emptyNode[string, int](), func(owner *TransientOwner, root *node[string, int]) *node[string, int] {
		root, _ = add(root, owner, ops, "x", 10, ops.hash("x"), 0)
		root, _ = add(root, owner, ops, "y", 20, ops.hash("y"), 0)
		c.Assert(root.isTransient(owner), qt.IsTrue)
		return root
	})

	c.Assert(result.owner, qt.IsNil)

	v, ok := get(result, ops, "x", ops.hash("x"), 0)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 10)
}

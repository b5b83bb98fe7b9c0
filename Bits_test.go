package champ

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPopcount(t *testing.T) {
	c := qt.New(t)

	c.Assert(popcount(0), qt.Equals, 0)
	c.Assert(popcount(1), qt.Equals, 1)
	c.Assert(popcount(0xFFFFFFFF), qt.Equals, 32)
	c.Assert(popcount(0b1010_1010), qt.Equals, 4)
}

func TestFragmentAndBitpos(t *testing.T) {
	c := qt.New(t)

	hash := uint32(0b10101_01010_11111_00000_00000_00001)

	c.Assert(fragment(hash, 0), qt.Equals, uint32(1))
	c.Assert(bitpos(fragment(hash, 0)), qt.Equals, uint32(1<<1))

	c.Assert(fragment(hash, 10), qt.Equals, uint32(0))
	c.Assert(fragment(hash, 15), qt.Equals, uint32(0b11111))
}

func TestDataAndNodeIndex(t *testing.T) {
	c := qt.New(t)

	dataMap := uint32(0b10110) // bits 1, 2, 4 set
	c.Assert(dataIndex(dataMap, bitpos(1)), qt.Equals, 0)
	c.Assert(dataIndex(dataMap, bitpos(2)), qt.Equals, 1)
	c.Assert(dataIndex(dataMap, bitpos(4)), qt.Equals, 2)

	nodeMap := uint32(0b01001) // bits 0, 3 set
	c.Assert(nodeIndex(nodeMap, bitpos(0)), qt.Equals, 0)
	c.Assert(nodeIndex(nodeMap, bitpos(3)), qt.Equals, 1)
}

func TestContentIndexForNodeIsReverseOrdered(t *testing.T) {
	c := qt.New(t)

	// Three node slots (contentLen == 3): nodeIdx 0 (lowest set bit) must
	// land at the tail, nodeIdx 2 (highest set bit) at the head, matching
	// the reverse bit-index node layout.
	c.Assert(contentIndexForNode(0, 3), qt.Equals, 2)
	c.Assert(contentIndexForNode(1, 3), qt.Equals, 1)
	c.Assert(contentIndexForNode(2, 3), qt.Equals, 0)
}

func TestNextShiftAndMaxDepth(t *testing.T) {
	c := qt.New(t)

	shift := uint(0)
	levels := 0
	for shift < maxDepth*bitChunkSize {
		shift = nextShift(shift)
		levels++
	}

	c.Assert(levels, qt.Equals, maxDepth)
}

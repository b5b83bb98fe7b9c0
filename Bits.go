package champ

import "math/bits"


//============================================= Bit Utilities


// bitChunkSize is the number of bits consumed from the hash at each level
// of the trie. A 32 bit hash with a 5 bit chunk gives a branching factor of
// 32 and a maximum logical depth of ceil(32/5) = 7.
const bitChunkSize = 5

// maxDepth is the deepest level the trie can reach by consuming 5 bit
// fragments of a 32 bit hash before the hash is exhausted.
const maxDepth = 7

// sparseThreshold (T) is the maximum number of children a branching node
// may hold before it is promoted from the Sparse to the Array variant.
const sparseThreshold = 8

// popcount returns the number of set bits in the low 32 bits of x.
func popcount(x uint32) int {
	return bits.OnesCount32(x)
}

// fragment extracts the 5 bit hash fragment for the given shift, where
// shift is a multiple of bitChunkSize identifying the current trie depth.
func fragment(hash uint32, shift uint) uint32 {
	return (hash >> shift) & 0x1F
}

// bitpos returns the single-bit mask for a given hash fragment.
func bitpos(frag uint32) uint32 {
	return uint32(1) << frag
}

// dataIndex returns the position within the inline data region of a
// branching node's content array for the given bit position, derived from
// the number of set bits in dataMap below that position.
func dataIndex(dataMap, bp uint32) int {
	return popcount(dataMap & (bp - 1))
}

// nodeIndex returns the logical child-node index (0-based, in bit-index
// order) within a branching node's node region for the given bit position.
func nodeIndex(nodeMap, bp uint32) int {
	return popcount(nodeMap & (bp - 1))
}

// contentIndexForNode converts a logical, ascending-bit-index node slot
// into its physical offset in the reverse-ordered tail of content: the
// child for the lowest set bit in nodeMap sits in the last slot of
// content, and the child for the highest set bit sits at the start of the
// node region.
func contentIndexForNode(nodeIdx, contentLen int) int {
	return contentLen - 1 - nodeIdx
}

// nextShift advances shift by one trie level.
func nextShift(shift uint) uint {
	return shift + bitChunkSize
}

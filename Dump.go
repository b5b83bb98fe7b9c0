package champ

import (
	"fmt"
	"io"
	"strings"
)

//============================================= Debug Tree Dump

// Dump writes a human-readable, indented rendering of m's trie to w: one
// header line per node, showing its kind plus, for branching nodes, its
// bitmaps and child count, followed by one line per inline or collision
// entry. Debug aid only; never called from any hot path.
func Dump[K any, V any, KH Hasher[K], VH Hasher[V]](m *Map[K, V, KH, VH], w io.Writer) {
	fmt.Fprintf(w, "Map(len=%d)\n", m.count)
	dumpNode(w, m.root, 1)
}

func dumpNode[K any, V any](w io.Writer, n *node[K, V], depth int) {
	indent := strings.Repeat("  ", depth)

	switch n.kind {
	case kindEmpty:
		fmt.Fprintf(w, "%sempty\n", indent)

	case kindData:
		fmt.Fprintf(w, "%sdata hash=%#08x key=%v value=%v\n", indent, n.hash, n.key, n.value)

	case kindCollision:
		fmt.Fprintf(w, "%scollision hash=%#08x entries=%d\n", indent, n.hash, len(n.entries))
		for _, e := range n.entries {
			fmt.Fprintf(w, "%s  key=%v value=%v\n", indent, e.key, e.value)
		}

	default: // kindSparse, kindArray
		fmt.Fprintf(w, "%s%s dataMap=%#032b nodeMap=%#032b children=%d\n",
			indent, n.kind, n.dataMap, n.nodeMap, n.childCount())

		dataCount := popcount(n.dataMap)
		for i := 0; i < dataCount; i++ {
			k, v := n.dataAt(i)
			fmt.Fprintf(w, "%s  [data] key=%v value=%v\n", indent, k, v)
		}

		nodeCount := popcount(n.nodeMap)
		for i := 0; i < nodeCount; i++ {
			dumpNode(w, n.childAt(i), depth+1)
		}
	}
}

// Package digraphutils provides utilities for directed graphs, represented as
// a list of node keys and a function returning the edges of a node.
package digraphutils

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/refaktor/fwrapgen/textutils"
)

// TopoSort orders nodes so that every node comes after the nodes its
// edges point to. Among nodes whose dependencies are satisfied, the one
// earliest in nodes goes first, so an already ordered list is returned
// unchanged. Edges to keys not in nodes are ignored.
//
// Nodes on a cycle, or depending on one, cannot be ordered; they are
// returned in cyclic, in input order.
func TopoSort[K comparable](nodes []K, edges func(K) []K) (sorted, cyclic []K) {
	known := make(map[K]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}
	done := make(map[K]bool, len(nodes))
	ready := func(n K) bool {
		for _, e := range edges(n) {
			if known[e] && !done[e] && e != n {
				return false
			}
		}
		return !slices.Contains(edges(n), n)
	}

	remaining := slices.Clone(nodes)
	for {
		i := slices.IndexFunc(remaining, ready)
		if i == -1 {
			break
		}
		done[remaining[i]] = true
		sorted = append(sorted, remaining[i])
		remaining = slices.Delete(remaining, i, i+1)
	}
	if len(remaining) == 0 {
		return sorted, nil
	}
	return sorted, remaining
}

// DOTCode generates graphviz DOT code to visualize a graph.
// nodes represents all nodes included in the graph.
// name is the name of the digraph, prelude DOT code inserted
// in the beginning, and nodeAttrs should return a string representing
// a node's attributes (in []).
func DOTCode[K comparable](nodes []K, edges func(K) []K, name, prelude string, nodeAttrs func(K) string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "digraph %v {\n", name)
	if prelude = strings.TrimSpace(prelude); prelude != "" {
		b.WriteString(textutils.IndentString(prelude, "  ", 1))
		b.WriteByte('\n')
	}
	nodeIDs := map[K]int{}
	for id, key := range nodes {
		fmt.Fprintf(&b, "  %v", id)
		if attrs := nodeAttrs(key); attrs != "" {
			b.WriteByte(' ')
			b.WriteString(attrs)
		}
		b.WriteByte('\n')
		nodeIDs[key] = id
	}
	for id, key := range nodes {
		edgs := slices.DeleteFunc(slices.Clone(edges(key)), func(k K) bool {
			_, ok := nodeIDs[k]
			return !ok
		})
		if len(edgs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %v -> {", id)
		for i, edg := range edgs {
			if i != 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%v", nodeIDs[edg])
		}
		fmt.Fprintf(&b, "}\n")
	}
	fmt.Fprintf(&b, "}\n")
	return b.Bytes()
}

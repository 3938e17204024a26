// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Constructors used by graph providers to produce engine-ready graphs.
// Policy:
//   - Sorting happens here, once, at the provider boundary. The engine never re-sorts.
//   - Stable ordering: equal weights keep their insertion order.

package core

import "sort"

// SortEdges returns a copy of edges ordered ascending by weight.
//
// The sort is stable, so edges with equal weight keep the order in which the
// provider discovered them. IDs are renumbered to the new positions and every
// state is reset to Pending. The input slice is not modified.
//
// Complexity: O(E log E) time, O(E) space.
func SortEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].W < out[j].W
	})
	for i := range out {
		out[i].ID = i
		out[i].State = Pending
	}

	return out
}

// NewGraph builds a Graph with n nodes (ids 0..n-1, origin coordinates) and
// the given edges run through SortEdges. It does not validate; pass the
// result to Validate when the edges come from untrusted input.
//
// Complexity: O(V + E log E).
func NewGraph(n int, edges ...Edge) Graph {
	if n < 0 {
		n = 0
	}
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i].ID = i
	}

	return Graph{Nodes: nodes, Edges: SortEdges(edges)}
}

// WithNodes returns a copy of g whose node list is replaced by nodes.
// Useful when a provider lays nodes out after building the edge list.
func (g Graph) WithNodes(nodes []Node) Graph {
	out := g.Clone()
	out.Nodes = make([]Node, len(nodes))
	copy(out.Nodes, nodes)

	return out
}

// File: methods_clone.go
// Role: Deep copies and run-state clearing for Graph values.
// Determinism:
//   - Clone preserves node and edge order exactly; ids are never renumbered.

package core

// Clone returns a deep copy of g. Node and edge order, ids and states are preserved.
//
// Complexity: O(V + E)
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)

	return out
}

// ClearStates sets every edge back to Pending in place.
//
// Complexity: O(E)
func (g Graph) ClearStates() {
	for i := range g.Edges {
		g.Edges[i].State = Pending
	}
}

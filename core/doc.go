// Package core holds the plain data types that flow between a graph provider,
// the step-through Kruskal engine and whatever renders it.
//
// A Graph is two ordered slices:
//
//   - Nodes: ids 0..n-1, Nodes[i].ID == i. X/Y are layout coordinates the
//     engine passes through untouched.
//   - Edges: ascending by weight, Edges[i].ID == i. Ties keep the order the
//     provider produced them in, which is what makes replays deterministic.
//
// Providers build graphs with NewGraph or SortEdges and check untrusted
// input with Validate, which reports every violation at once:
//
//	g := core.NewGraph(3,
//		core.Edge{U: 0, V: 2, W: 5},
//		core.Edge{U: 0, V: 1, W: 1},
//		core.Edge{U: 1, V: 2, W: 2},
//	)
//	// g.Edges: 0–1 (w=1), 1–2 (w=2), 0–2 (w=5)
//
// Edge.State is owned by the engine (package kruskal). Values handed out by
// the engine are copies; mutating them never affects a running engine.
package core

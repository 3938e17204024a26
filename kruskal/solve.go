package kruskal

import (
	"fmt"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/dsu"
)

// Result is the outcome of a full, non-interactive Kruskal pass.
type Result struct {
	// Edges holds the accepted edges in acceptance order (ascending weight).
	Edges []core.Edge

	// TotalWeight is the sum of W over Edges.
	TotalWeight float64

	// Components is the number of connected components of the whole graph.
	// 1 means Edges is a spanning tree; more means a minimum spanning forest.
	Components int

	// Considered is how many edges were examined before the forest was final.
	Considered int
}

// Spanning reports whether the result connects every node.
func (r Result) Spanning() bool { return r.Components <= 1 }

// Solve runs Kruskal's algorithm to completion on an already sorted graph,
// without any step bookkeeping. It is the reference the step engine must agree
// with once a run completes.
//
// Error Conditions:
//   - ErrInvalidGraph : g fails core.Validate.
//
// Steps:
//  1. Validate structure and weight order (Solve never re-sorts).
//  2. Initialize a DSU over |V| singletons.
//  3. Walk edges in order; accept an edge iff Union merges two sets.
//  4. Stop early once |V|-1 edges are accepted: nothing after can merge.
//
// A disconnected graph is not an error here: the result is a spanning forest.
//
// Complexity: O(V + E·α(V)). Memory: O(V).
func Solve(g core.Graph) (Result, error) {
	// 1. Validate.
	if err := core.Validate(g); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}

	// 2. Fresh disjoint sets.
	n := g.Order()
	sets := dsu.New(n)
	res := Result{Edges: make([]core.Edge, 0, max(n-1, 0))}

	// 3. Greedy pass in weight order.
	for _, e := range g.Edges {
		if n > 0 && len(res.Edges) == n-1 {
			// 4. Spanning tree complete.
			break
		}
		res.Considered++
		if !sets.Union(e.U, e.V) {
			continue
		}
		e.State = core.Accepted
		res.Edges = append(res.Edges, e)
		res.TotalWeight += e.W
	}
	res.Components = sets.Count()

	return res, nil
}

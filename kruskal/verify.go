package kruskal

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/dsu"
)

// Verify checks the run-state invariants and returns an error wrapping
// ErrInvariant on the first breach:
//
//  1. edges before the cursor are Accepted or Rejected, edges from the cursor on are Pending;
//  2. the accepted counter and the total equal what the edge states say;
//  3. the DSU has exactly |nodes| - accepted roots;
//  4. replaying the considered prefix on a fresh DSU reproduces every verdict
//     and the same component partition.
//
// An Idle engine trivially verifies.
//
// Complexity: O(V + E·α(V)).
func (e *Engine) Verify() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.verifyLocked()
}

func (e *Engine) verifyLocked() error {
	if !e.loaded {
		return nil
	}

	var (
		total    float64
		accepted int
		fresh    = dsu.New(e.graph.Order())
	)
	for i, edge := range e.graph.Edges {
		if i >= e.cursor {
			if edge.State != core.Pending {
				return fmt.Errorf("%w: edge %d beyond cursor %d is %s", ErrInvariant, i, e.cursor, edge.State)
			}
			continue
		}
		merged := fresh.Union(edge.U, edge.V)
		switch edge.State {
		case core.Accepted:
			if !merged {
				return fmt.Errorf("%w: edge %d accepted but closes a cycle", ErrInvariant, i)
			}
			total += edge.W
			accepted++
		case core.Rejected:
			if merged {
				return fmt.Errorf("%w: edge %d rejected but joins two components", ErrInvariant, i)
			}
		default:
			return fmt.Errorf("%w: edge %d before cursor %d is %s", ErrInvariant, i, e.cursor, edge.State)
		}
	}

	if accepted != e.accepted {
		return fmt.Errorf("%w: accepted counter %d, states say %d", ErrInvariant, e.accepted, accepted)
	}
	if total != e.total {
		return fmt.Errorf("%w: total weight %g, accepted edges sum to %g", ErrInvariant, e.total, total)
	}
	if want := e.graph.Order() - accepted; e.sets.Count() != want {
		return fmt.Errorf("%w: %d components, expected %d", ErrInvariant, e.sets.Count(), want)
	}
	if !reflect.DeepEqual(e.sets.Components(), fresh.Components()) {
		return fmt.Errorf("%w: component partition differs from replay", ErrInvariant)
	}

	return nil
}

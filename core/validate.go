// SPDX-License-Identifier: MIT
//
// File: validate.go
// Role: Structural validation of provider-supplied graphs.
// Policy:
//   - Report every problem, not just the first one (go-multierror).
//   - Each reported problem wraps exactly one sentinel so callers can branch with errors.Is.

package core

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// pairKey identifies an unordered node pair.
type pairKey struct{ lo, hi int }

func keyOf(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}

	return pairKey{lo: u, hi: v}
}

// Validate checks that g satisfies the structural contract the engine indexes by:
//   - Nodes[i].ID == i
//   - Edges[i].ID == i
//   - every endpoint lies in [0, |nodes|), U != V
//   - at most one edge per unordered pair
//   - every weight is finite
//   - weights ascend along the sequence (ties allowed)
//
// Edge states are not inspected; Load resets them anyway.
//
// Returns nil or a *multierror.Error listing every violation.
// Complexity: O(V + E) time, O(E) space for the pair set.
func Validate(g Graph) error {
	var result *multierror.Error

	for i, n := range g.Nodes {
		if n.ID != i {
			result = multierror.Append(result, fmt.Errorf("node at %d has id %d: %w", i, n.ID, ErrNodeID))
		}
	}

	n := len(g.Nodes)
	seen := make(map[pairKey]int, len(g.Edges))
	for i, e := range g.Edges {
		if e.ID != i {
			result = multierror.Append(result, fmt.Errorf("edge at %d has id %d: %w", i, e.ID, ErrEdgeID))
		}
		if math.IsNaN(e.W) || math.IsInf(e.W, 0) {
			result = multierror.Append(result, fmt.Errorf("edge %d weight %v: %w", i, e.W, ErrWeight))
		}
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			result = multierror.Append(result, fmt.Errorf("edge %d (%d,%d) with %d nodes: %w", i, e.U, e.V, n, ErrEndpoint))
			continue
		}
		if e.U == e.V {
			result = multierror.Append(result, fmt.Errorf("edge %d on node %d: %w", i, e.U, ErrSelfLoop))
			continue
		}
		k := keyOf(e.U, e.V)
		if first, dup := seen[k]; dup {
			result = multierror.Append(result, fmt.Errorf("edge %d repeats edge %d (%d,%d): %w", i, first, k.lo, k.hi, ErrDuplicateEdge))
		} else {
			seen[k] = i
		}
		if i > 0 && e.W < g.Edges[i-1].W {
			result = multierror.Append(result, fmt.Errorf("edge %d weight %g after %g: %w", i, e.W, g.Edges[i-1].W, ErrUnsorted))
		}
	}

	return result.ErrorOrNil()
}

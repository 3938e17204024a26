// Package dsu implements a fixed-size disjoint-set union (union-find) over the
// elements 0..n-1, with union by rank and full path compression.
package dsu

import "sort"

// DSU is a disjoint-set forest over n elements.
//
// The zero value is an empty structure (n == 0). A DSU is not safe for
// concurrent use; the engine that owns it serializes access.
type DSU struct {
	parent []int
	rank   []int
	count  int // number of distinct roots
}

// New creates n singleton sets {0}, {1}, ..., {n-1}. A negative n is treated as 0.
//
// Complexity: O(n).
func New(n int) *DSU {
	if n < 0 {
		n = 0
	}
	d := &DSU{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

// Len returns the number of elements.
func (d *DSU) Len() int { return len(d.parent) }

// Count returns the number of disjoint sets (distinct roots).
func (d *DSU) Count() int { return d.count }

// Find returns the root of x's set and re-points every node on the walk
// directly at that root.
//
// x must lie in [0, Len()); anything else is a caller bug and panics with an
// index-out-of-range error, exactly like indexing a slice.
//
// Complexity: amortized O(α(n)).
func (d *DSU) Find(x int) int {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	// Second pass: compress the whole path.
	for d.parent[x] != root {
		x, d.parent[x] = d.parent[x], root
	}

	return root
}

// Union merges the sets of a and b.
//
// It returns false, and changes nothing but path compression, when a and b
// already share a root. Otherwise the root of lower rank is attached under the
// root of higher rank; on equal rank b's root goes under a's root and a's rank
// grows by one. Returns true on a merge.
//
// Complexity: amortized O(α(n)).
func (d *DSU) Union(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
	d.count--

	return true
}

// Connected reports whether a and b are in the same set.
func (d *DSU) Connected(a, b int) bool {
	return d.Find(a) == d.Find(b)
}

// Rank returns the rank of x's root.
func (d *DSU) Rank(x int) int {
	return d.rank[d.Find(x)]
}

// Groups partitions all elements by root: root id → member ids ascending.
// Every element is visited through Find, so the result reflects (and applies)
// full path compression.
//
// Complexity: O(n·α(n)).
func (d *DSU) Groups() map[int][]int {
	groups := make(map[int][]int, d.count)
	for i := range d.parent {
		r := d.Find(i)
		groups[r] = append(groups[r], i)
	}

	return groups
}

// Components returns the same partition as Groups in a canonical order: each
// component ascending, components ordered by their smallest member. Two DSUs
// describing the same partition always produce equal Components.
func (d *DSU) Components() [][]int {
	groups := d.Groups()
	out := make([][]int, 0, len(groups))
	for _, members := range groups {
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}

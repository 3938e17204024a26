// Package dsu provides the disjoint-set union used by the step-through Kruskal
// engine to decide whether an edge joins two components or closes a cycle.
//
// What & Why
//
//   - Find(x) walks to the representative of x's set and compresses the path
//     so repeated lookups are near-constant.
//
//   - Union(a, b) merges by rank, bounding tree height by O(log n) even
//     before compression kicks in. It returns false for a pair that is
//     already connected: in Kruskal terms, the edge would form a cycle.
//
//   - Groups() is the presentation view: root → members, used to colour
//     components. Components() gives the same partition in canonical order
//     so two structures can be compared directly.
//
// There is deliberately no Split/Undo. The engine steps backward by
// rebuilding a fresh DSU and replaying accepted unions, which keeps this
// type small and its invariants obvious:
//
//   - following parent links always terminates at a root,
//   - Count() == number of distinct roots,
//   - Find is idempotent after compression.
//
// Complexity: New O(n); Find/Union amortized O(α(n)); Groups O(n·α(n)).
package dsu

// Package core defines the Node, Edge and Graph types shared by the engine,
// the graph provider and the playback layer, together with the sentinel
// errors reported by Validate.
//
// This file declares Node, EdgeState, Edge, Graph and the sentinel errors.
//
// Errors:
//
//	ErrNodeID        - node id does not match its position in Graph.Nodes.
//	ErrEdgeID        - edge id does not match its position in Graph.Edges.
//	ErrEndpoint      - edge endpoint is outside [0, |nodes|).
//	ErrSelfLoop      - edge connects a node to itself.
//	ErrDuplicateEdge - more than one edge for the same unordered pair.
//	ErrUnsorted      - edges are not ascending by weight.
//	ErrWeight        - edge weight is NaN or infinite.
//	ErrBadState      - unknown EdgeState text.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph validation.
var (
	// ErrNodeID indicates a node whose ID differs from its index.
	ErrNodeID = errors.New("core: node id does not match position")

	// ErrEdgeID indicates an edge whose ID differs from its index in the sorted sequence.
	ErrEdgeID = errors.New("core: edge id does not match position")

	// ErrEndpoint indicates an edge endpoint that references a non-existent node.
	ErrEndpoint = errors.New("core: edge endpoint out of range")

	// ErrSelfLoop indicates an edge with U == V.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates a second edge for an already connected unordered pair.
	ErrDuplicateEdge = errors.New("core: duplicate edge for node pair")

	// ErrUnsorted indicates the edge sequence is not ascending by weight.
	ErrUnsorted = errors.New("core: edges not sorted by weight")

	// ErrWeight indicates a NaN or infinite edge weight.
	ErrWeight = errors.New("core: edge weight not finite")

	// ErrBadState indicates an unrecognized EdgeState name.
	ErrBadState = errors.New("core: unknown edge state")
)

// Node is a graph vertex. ID is unique within a Graph and lies in [0, n).
// X and Y are layout coordinates carried through untouched for presentation.
type Node struct {
	ID int     `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

// EdgeState is the verdict Kruskal's algorithm has reached for an edge.
type EdgeState uint8

const (
	// Pending marks an edge that has not been considered yet.
	Pending EdgeState = iota
	// Accepted marks an edge that merged two components and belongs to the MST.
	Accepted
	// Rejected marks an edge whose endpoints were already connected (it would close a cycle).
	Rejected
)

var stateNames = [...]string{Pending: "pending", Accepted: "accepted", Rejected: "rejected"}

// String returns the lower-case state name.
func (s EdgeState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("EdgeState(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s EdgeState) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("%w: %d", ErrBadState, uint8(s))
	}

	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string decodes as Pending.
func (s *EdgeState) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = Pending
		return nil
	}
	for i, name := range stateNames {
		if name == string(b) {
			*s = EdgeState(i)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrBadState, string(b))
}

// Edge is an undirected weighted edge.
//
// ID is the edge's position in the weight-sorted sequence and stays stable for
// the lifetime of a loaded graph. State is owned by the engine.
type Edge struct {
	ID    int       `json:"id" yaml:"id"`
	U     int       `json:"u" yaml:"u"`
	V     int       `json:"v" yaml:"v"`
	W     float64   `json:"w" yaml:"w"`
	State EdgeState `json:"state" yaml:"state"`
}

// String renders the edge as "u–v (w=...)" the way the step panel shows it.
func (e Edge) String() string {
	return fmt.Sprintf("%d–%d (w=%g)", e.U, e.V, e.W)
}

// Graph is an ordered node list plus an edge list sorted ascending by weight.
// Equal weights keep the order the provider supplied; nothing downstream re-sorts.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Order returns |V|.
func (g Graph) Order() int { return len(g.Nodes) }

// Size returns |E|.
func (g Graph) Size() int { return len(g.Edges) }

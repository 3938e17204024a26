// SPDX-License-Identifier: MIT
//
// File: graphio.go
// Role: Graph provider. Decodes graph documents, sorts edges once, validates.
// Policy:
//   - yaml.v3 decodes both YAML and JSON documents (JSON is a YAML subset).
//   - Unknown keys are rejected so typos surface instead of silently dropping data.
//   - Every problem in a document is reported (go-multierror), not just the first.

package graphio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kruskalviz/core"
)

// Sentinel errors returned by Decode.
var (
	// ErrSyntax indicates a document that is not well-formed YAML/JSON or has unknown keys.
	ErrSyntax = errors.New("graphio: malformed document")

	// ErrNodeCount indicates a node count outside the configured bounds.
	ErrNodeCount = errors.New("graphio: node count out of bounds")

	// ErrNodeSpec indicates a document giving both a node list and a conflicting count.
	ErrNodeSpec = errors.New("graphio: node list and node_count disagree")

	// ErrWeight indicates a NaN or infinite edge weight. It is core.ErrWeight.
	ErrWeight = core.ErrWeight
)

// Document is the on-disk shape of a graph.
//
//	node_count: 4          # optional when nodes is given
//	nodes:                 # optional; ids 0..n-1 in order
//	  - {id: 0, x: 10, y: 20}
//	edges:
//	  - {u: 0, v: 1, w: 3}
//
// Edge order in the document is the tie-break order for equal weights.
type Document struct {
	NodeCount int         `json:"node_count,omitempty" yaml:"node_count,omitempty"`
	Nodes     []core.Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges     []EdgeSpec  `json:"edges" yaml:"edges"`
}

// EdgeSpec is one undirected edge as written by a user.
type EdgeSpec struct {
	U int     `json:"u" yaml:"u"`
	V int     `json:"v" yaml:"v"`
	W float64 `json:"w" yaml:"w"`
}

// Options bounds what Decode accepts.
type Options struct {
	// MinNodes and MaxNodes bound the node count. Zero MaxNodes means unbounded.
	MinNodes, MaxNodes int
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions accepts any non-negative node count.
func DefaultOptions() Options { return Options{} }

// WithNodeBounds restricts the node count to [lo, hi].
func WithNodeBounds(lo, hi int) Option {
	return func(o *Options) {
		o.MinNodes, o.MaxNodes = lo, hi
	}
}

// Decode reads one graph document from r and returns an engine-ready graph:
// nodes indexed 0..n-1, edges stably sorted by weight with ids assigned.
//
// Errors wrap ErrSyntax for unparsable input; otherwise a *multierror.Error
// lists every structural problem, each wrapping a graphio or core sentinel.
func Decode(r io.Reader, opts ...Option) (core.Graph, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Graph{}, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		return core.Graph{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	return doc.Graph(opts...)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte, opts ...Option) (core.Graph, error) {
	return Decode(bytes.NewReader(b), opts...)
}

// ReadFile opens path and decodes it.
func ReadFile(path string, opts ...Option) (core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Graph{}, fmt.Errorf("graphio: open graph: %w", err)
	}
	defer f.Close()

	g, err := Decode(f, opts...)
	if err != nil {
		return core.Graph{}, fmt.Errorf("graphio: %s: %w", path, err)
	}

	return g, nil
}

// Graph converts the document into an engine-ready graph. See Decode.
func (d Document) Graph(opts ...Option) (core.Graph, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var result *multierror.Error

	n := d.NodeCount
	switch {
	case len(d.Nodes) > 0 && d.NodeCount != 0 && d.NodeCount != len(d.Nodes):
		result = multierror.Append(result, fmt.Errorf("%d nodes listed, node_count %d: %w", len(d.Nodes), d.NodeCount, ErrNodeSpec))
		n = len(d.Nodes)
	case len(d.Nodes) > 0:
		n = len(d.Nodes)
	}
	if n < 0 || n < o.MinNodes || (o.MaxNodes > 0 && n > o.MaxNodes) {
		result = multierror.Append(result, fmt.Errorf("%d nodes: %w", n, ErrNodeCount))
	}

	edges := make([]core.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = core.Edge{U: e.U, V: e.V, W: e.W}
	}
	if result != nil {
		return core.Graph{}, result.ErrorOrNil()
	}

	g := core.NewGraph(n, edges...)
	if len(d.Nodes) > 0 {
		g = g.WithNodes(d.Nodes)
	}
	if err := core.Validate(g); err != nil {
		return core.Graph{}, err
	}

	return g, nil
}

// FromGraph builds the document that round-trips g: node list, then edges in
// their current order. States are not written.
func FromGraph(g core.Graph) Document {
	d := Document{
		Nodes: make([]core.Node, len(g.Nodes)),
		Edges: make([]EdgeSpec, len(g.Edges)),
	}
	copy(d.Nodes, g.Nodes)
	for i, e := range g.Edges {
		d.Edges[i] = EdgeSpec{U: e.U, V: e.V, W: e.W}
	}

	return d
}

package kruskal

import "github.com/katalvlaran/kruskalviz/core"

// Status reports Idle, Running or Complete.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.statusLocked()
}

// Complete reports whether the run is finished under the engine's policy.
// An Idle engine is not complete.
func (e *Engine) Complete() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.completeLocked()
}

// Policy returns the completion policy fixed at construction.
func (e *Engine) Policy() CompletionPolicy { return e.opts.Policy }

// RunID identifies the current Load; empty while Idle.
func (e *Engine) RunID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.runID
}

// Cursor returns the index of the next edge to consider, equal to the number
// of edges considered so far.
func (e *Engine) Cursor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.cursor
}

// Len returns the number of edges in the loaded graph.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.graph.Size()
}

// Current returns the edge under consideration, or false once the run is
// complete (or Idle).
func (e *Engine) Current() (core.Edge, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.loaded || e.completeLocked() {
		return core.Edge{}, false
	}

	return e.graph.Edges[e.cursor], true
}

// EdgeState returns the verdict for edge id; false if id is out of range.
func (e *Engine) EdgeState(id int) (core.EdgeState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if id < 0 || id >= e.graph.Size() {
		return core.Pending, false
	}

	return e.graph.Edges[id].State, true
}

// TotalWeight returns the sum of W over Accepted edges.
func (e *Engine) TotalWeight() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.total
}

// Accepted returns the number of Accepted edges.
func (e *Engine) Accepted() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.accepted
}

// Considered returns (considered, total) edge counts for the progress display.
func (e *Engine) Considered() (int, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.cursor, e.graph.Size()
}

// Graph returns a copy of the loaded graph including current edge states.
func (e *Engine) Graph() core.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.graph.Clone()
}

// Groups delegates to the DSU: root → members. Empty while Idle.
// Takes the write lock because Find compresses paths.
func (e *Engine) Groups() map[int][]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sets == nil {
		return map[int][]int{}
	}

	return e.sets.Groups()
}

// Components returns the component partition in canonical order.
func (e *Engine) Components() [][]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sets == nil {
		return [][]int{}
	}

	return e.sets.Components()
}

// Snapshot copies the full observable state in one consistent read.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		RunID:       e.runID,
		Status:      e.statusLocked(),
		Cursor:      e.cursor,
		EdgeCount:   e.graph.Size(),
		TotalWeight: e.total,
		Accepted:    e.accepted,
		Rejected:    e.cursor - e.accepted,
		Components:  [][]int{},
	}
	g := e.graph.Clone()
	s.Nodes, s.Edges = g.Nodes, g.Edges
	if e.sets != nil {
		s.Components = e.sets.Components()
	}
	if s.Status == Running {
		cur := e.graph.Edges[e.cursor]
		s.Current = &cur
	}

	return s
}

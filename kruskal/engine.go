// SPDX-License-Identifier: MIT
//
// File: engine.go
// Role: The step-through Kruskal state machine: load, step forward/backward, reset, seek.
// Policy:
//   - consider() is the only place the DSU is mutated by a union.
//   - Precondition failures return a sentinel and leave every field untouched.
//   - Commands hold the write lock; read-only queries that touch the DSU also
//     take it, because Find compresses paths.

package kruskal

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/dsu"
)

// Engine replays Kruskal's algorithm one edge at a time over a pre-sorted graph.
//
// Run state (cursor, per-edge verdicts, DSU, accepted weight) is owned
// exclusively by the Engine from Load until the next Load. All methods are
// safe for concurrent use; they are serialized by an internal lock, so a
// timer-driven player and manual commands can share one Engine.
type Engine struct {
	mu   sync.RWMutex
	opts Options
	log  *zap.Logger

	loaded   bool
	runID    string
	graph    core.Graph
	sets     *dsu.DSU
	cursor   int     // index of the next edge to consider
	total    float64 // sum of W over accepted edges
	accepted int
}

// New creates an Idle engine.
//
// Complexity: O(len(opts)).
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{opts: o, log: o.Logger}
}

// Load replaces the owned graph and starts a fresh run on a private copy of g.
//
// The graph must pass core.Validate; otherwise Load returns an error wrapping
// ErrInvalidGraph (and the individual core sentinels) and the engine keeps its
// previous graph and run state. Every edge state in the copy is reset to
// Pending. A new run id is assigned.
//
// Complexity: O(V + E).
func (e *Engine) Load(g core.Graph) error {
	if err := core.Validate(g); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.graph = g.Clone()
	e.loaded = true
	e.runID = uuid.NewString()
	e.resetLocked()

	e.log.Debug("graph loaded",
		zap.String("run", e.runID),
		zap.Int("nodes", e.graph.Order()),
		zap.Int("edges", e.graph.Size()),
		zap.Stringer("policy", e.opts.Policy),
		zap.Stringer("status", e.statusLocked()),
	)
	if e.opts.Observer != nil {
		e.opts.Observer.Loaded(e.runID, e.graph.Order(), e.graph.Size())
	}
	e.checkLocked("Load")

	return nil
}

// StepForward considers the edge under the cursor.
//
// If its endpoints are in different components the DSU merges them, the edge
// becomes Accepted and its weight is added to the total; otherwise it becomes
// Rejected. The cursor then advances by one.
//
// Errors (no state is changed):
//   - ErrNoGraph  : nothing loaded.
//   - ErrComplete : the run is already complete.
//
// Complexity: amortized O(α(V)), plus O(1) for the spanning-tree check.
func (e *Engine) StepForward() (Step, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return Step{}, ErrNoGraph
	}
	if e.completeLocked() {
		return Step{}, ErrComplete
	}

	idx := e.cursor
	e.consider(idx)
	e.cursor++

	edge := e.graph.Edges[idx]
	e.log.Debug("step forward",
		zap.String("run", e.runID),
		zap.Int("edge", idx),
		zap.Int("u", edge.U),
		zap.Int("v", edge.V),
		zap.Float64("w", edge.W),
		zap.Stringer("verdict", edge.State),
		zap.Float64("total", e.total),
		zap.Int("cursor", e.cursor),
	)
	if e.opts.Observer != nil {
		e.opts.Observer.Stepped(Forward, edge)
	}
	e.checkLocked("StepForward")

	return e.stepLocked(Forward, edge), nil
}

// StepBackward moves the cursor back by one edge.
//
// The DSU has no undo, so the run is rebuilt: a fresh DSU, every edge Pending,
// total 0, then edges [0, cursor-2] are considered again in order. The cost is
// proportional to the new cursor position rather than constant; that trade
// keeps the DSU free of rollback logs.
//
// Errors (no state is changed):
//   - ErrNoGraph : nothing loaded.
//   - ErrAtStart : cursor is 0.
//
// Complexity: O(V + cursor·α(V)).
func (e *Engine) StepBackward() (Step, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return Step{}, ErrNoGraph
	}
	if e.cursor == 0 {
		return Step{}, ErrAtStart
	}

	target := e.cursor - 1
	e.replayLocked(target)

	edge := e.graph.Edges[target]
	e.log.Debug("step backward",
		zap.String("run", e.runID),
		zap.Int("edge", target),
		zap.Float64("total", e.total),
		zap.Int("cursor", e.cursor),
	)
	if e.opts.Observer != nil {
		e.opts.Observer.Replayed(target)
		e.opts.Observer.Stepped(Backward, edge)
	}
	e.checkLocked("StepBackward")

	return e.stepLocked(Backward, edge), nil
}

// Reset restarts the run on the currently loaded graph: fresh DSU, cursor 0,
// every edge Pending, total 0. The run id is kept.
//
// Errors: ErrNoGraph if nothing is loaded.
//
// Complexity: O(V + E).
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return ErrNoGraph
	}
	e.resetLocked()

	e.log.Debug("run reset", zap.String("run", e.runID))
	if e.opts.Observer != nil {
		e.opts.Observer.Reset()
	}
	e.checkLocked("Reset")

	return nil
}

// SeekTo moves the cursor to idx and returns the cursor actually reached.
//
// Backward seeks replay from scratch exactly like StepBackward and report
// Replayed to the observer. Forward seeks step edge by edge, reporting each
// decided edge as a forward Stepped, and stop early if the run completes first
// (possible under CompleteOnSpanningTree); that early stop is not an error.
// Seeking to the current cursor does nothing.
//
// Errors (no state is changed):
//   - ErrNoGraph     : nothing loaded.
//   - ErrCursorRange : idx outside [0, |edges|].
//   - ErrComplete    : idx is ahead of the cursor but the run is already complete.
//
// Complexity: O(V + idx·α(V)) backward, O((idx-cursor)·α(V)) forward.
func (e *Engine) SeekTo(idx int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return 0, ErrNoGraph
	}
	if idx < 0 || idx > e.graph.Size() {
		return e.cursor, fmt.Errorf("%w: %d not in [0,%d]", ErrCursorRange, idx, e.graph.Size())
	}

	switch {
	case idx == e.cursor:
		return e.cursor, nil
	case idx < e.cursor:
		e.replayLocked(idx)
		if e.opts.Observer != nil {
			e.opts.Observer.Replayed(e.cursor)
		}
	default:
		if e.completeLocked() {
			return e.cursor, ErrComplete
		}
		for e.cursor < idx && !e.completeLocked() {
			e.consider(e.cursor)
			e.cursor++
			if e.opts.Observer != nil {
				e.opts.Observer.Stepped(Forward, e.graph.Edges[e.cursor-1])
			}
		}
	}

	e.log.Debug("seek",
		zap.String("run", e.runID),
		zap.Int("target", idx),
		zap.Int("cursor", e.cursor),
		zap.Float64("total", e.total),
	)
	e.checkLocked("SeekTo")

	return e.cursor, nil
}

// consider decides edge i: union its endpoints, record the verdict, accrue
// weight. It does not move the cursor.
func (e *Engine) consider(i int) {
	edge := &e.graph.Edges[i]
	if e.sets.Union(edge.U, edge.V) {
		edge.State = core.Accepted
		e.total += edge.W
		e.accepted++
		return
	}
	edge.State = core.Rejected
}

// replayLocked rebuilds the run from scratch up to (excluding) target.
func (e *Engine) replayLocked(target int) {
	e.resetLocked()
	for i := 0; i < target; i++ {
		e.consider(i)
	}
	e.cursor = target
}

func (e *Engine) resetLocked() {
	e.sets = dsu.New(e.graph.Order())
	e.graph.ClearStates()
	e.cursor = 0
	e.total = 0
	e.accepted = 0
}

func (e *Engine) completeLocked() bool {
	if !e.loaded {
		return false
	}
	if e.cursor >= e.graph.Size() {
		return true
	}
	if e.opts.Policy == CompleteOnSpanningTree {
		n := e.graph.Order()
		return n > 0 && e.accepted >= n-1
	}

	return false
}

func (e *Engine) statusLocked() Status {
	switch {
	case !e.loaded:
		return Idle
	case e.completeLocked():
		return Complete
	default:
		return Running
	}
}

func (e *Engine) stepLocked(dir Direction, edge core.Edge) Step {
	return Step{
		Direction:   dir,
		Edge:        edge,
		Cursor:      e.cursor,
		TotalWeight: e.total,
		Complete:    e.completeLocked(),
	}
}

// checkLocked runs Verify when invariant checks are enabled. A failure is a
// bug in the engine, not a caller error, so it panics.
func (e *Engine) checkLocked(op string) {
	if !e.opts.CheckInvariants {
		return
	}
	if err := e.verifyLocked(); err != nil {
		e.log.Error("invariant violated", zap.String("op", op), zap.String("run", e.runID), zap.Error(err))
		panic(fmt.Sprintf("kruskal: %s: %v", op, err))
	}
}

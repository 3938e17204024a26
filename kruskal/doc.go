// Package kruskal provides a step-through Minimum Spanning Tree engine: it
// replays Kruskal's algorithm over a weight-sorted edge list one decision at a
// time, so a UI can show every acceptance, rejection and component merge.
//
// What & Why
//
//   - What is Kruskal's algorithm?
//     Walk the edges from lightest to heaviest. Take an edge if its endpoints
//     lie in different components (it merges them); skip it otherwise (it
//     would close a cycle). The taken edges form a minimum spanning tree, or
//     a minimum spanning forest when the graph is disconnected.
//
//   - Why step through it?
//     The interesting part of Kruskal is the sequence of decisions, not the
//     final answer. Engine exposes each decision as a command the caller can
//     issue, undo, and observe.
//
// Engine
//
//   - New(opts...)           Idle engine.
//   - Load(g)                take a private copy of a sorted graph, start a run.
//   - StepForward()          decide the edge under the cursor, advance.
//   - StepBackward()         rewind one edge by full replay (see below).
//   - SeekTo(i)              jump to any cursor position.
//   - Reset()                restart the run on the same graph.
//   - Snapshot() and friends read-only view: cursor, current edge, verdicts,
//     total weight, component groups, status.
//
// States: Idle (nothing loaded) → Running → Complete. Loading a graph with no
// edges goes straight to Complete. Only Reset, Load, StepBackward and a
// backward SeekTo leave Complete.
//
// Completion policy
//
//	CompleteOnExhaustion (default): complete iff every edge was considered.
//	CompleteOnSpanningTree: also complete once |V|-1 edges are accepted; the
//	remaining edges stay Pending. Pick one per engine with WithCompletionPolicy.
//
// Replay instead of undo
//
//	The DSU cannot split a set, so StepBackward rebuilds: fresh DSU, all edges
//	Pending, then the first cursor-1 edges are decided again. Backward steps
//	therefore cost O(V + cursor·α(V)) instead of O(1). For the graph sizes a
//	visualizer shows this is invisible; a versioned DSU would be the upgrade
//	path if it ever is not.
//
// Error Conditions
//
//	Precondition failures never change state:
//	- ErrNoGraph      command before Load.
//	- ErrComplete     StepForward / forward SeekTo on a finished run.
//	- ErrAtStart      StepBackward at cursor 0.
//	- ErrCursorRange  SeekTo outside [0, |E|].
//	- ErrInvalidGraph Load/Solve with a graph that fails core.Validate.
//	Internal consistency is checked by Verify (ErrInvariant); with
//	WithInvariantChecks every command verifies and panics on a breach.
//
// Concurrency
//
//	Every method is serialized by one lock inside the Engine, which makes the
//	engine the single serialization point for a timer-driven player and
//	manual commands alike.
//
// Solve(g) is the batch counterpart: one pass, no bookkeeping, used to
// cross-check the stepper and to print summaries.
package kruskal

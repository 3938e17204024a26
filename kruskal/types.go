// Package kruskal defines the sentinel errors, options, status values and
// result types of the step-through Kruskal engine.
package kruskal

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kruskalviz/core"
	"go.uber.org/zap"
)

var (
	// ErrNoGraph indicates a command was issued before any graph was loaded.
	ErrNoGraph = errors.New("kruskal: no graph loaded")

	// ErrComplete indicates StepForward (or a forward SeekTo) on a finished run.
	ErrComplete = errors.New("kruskal: run already complete")

	// ErrAtStart indicates StepBackward with the cursor at 0.
	ErrAtStart = errors.New("kruskal: cursor already at start")

	// ErrCursorRange indicates a SeekTo target outside [0, |edges|].
	ErrCursorRange = errors.New("kruskal: cursor out of range")

	// ErrInvalidGraph indicates Load or Solve received a graph that fails core.Validate.
	ErrInvalidGraph = errors.New("kruskal: invalid graph")

	// ErrPolicy indicates an unknown completion policy name.
	ErrPolicy = errors.New("kruskal: unknown completion policy")

	// ErrInvariant indicates an internal consistency failure detected by Verify.
	// It is not reachable through the public API of a correct engine.
	ErrInvariant = errors.New("kruskal: invariant violated")
)

// Status is the coarse engine state.
type Status uint8

const (
	// Idle means no graph has been loaded.
	Idle Status = iota
	// Running means edges remain to be considered.
	Running
	// Complete means the run is finished under the engine's CompletionPolicy.
	Complete
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Direction tells which way a step moved the cursor.
type Direction uint8

const (
	// Forward is a StepForward.
	Forward Direction = iota
	// Backward is a StepBackward.
	Backward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}

	return "forward"
}

// CompletionPolicy decides when a run counts as finished.
type CompletionPolicy uint8

const (
	// CompleteOnExhaustion finishes only when every edge has been considered
	// (cursor == |edges|). Rejections after the tree is spanning are still shown.
	CompleteOnExhaustion CompletionPolicy = iota

	// CompleteOnSpanningTree additionally finishes as soon as |nodes|-1 edges
	// are accepted, leaving the remaining edges Pending. The cursor can then be
	// below |edges| while the run is done.
	CompleteOnSpanningTree
)

// String returns the policy name used in flags and logs.
func (p CompletionPolicy) String() string {
	if p == CompleteOnSpanningTree {
		return "spanning-tree"
	}

	return "exhaustion"
}

// ParseCompletionPolicy maps "exhaustion" / "spanning-tree" to a policy.
func ParseCompletionPolicy(s string) (CompletionPolicy, error) {
	switch s {
	case "", "exhaustion":
		return CompleteOnExhaustion, nil
	case "spanning-tree":
		return CompleteOnSpanningTree, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrPolicy, s)
	}
}

// Step describes the effect of one StepForward or StepBackward.
//
// For Forward, Edge carries the verdict just reached. For Backward, Edge is
// the edge that was un-considered and is Pending again.
type Step struct {
	Direction   Direction
	Edge        core.Edge
	Cursor      int     // cursor after the command
	TotalWeight float64 // accepted weight after the command
	Complete    bool    // run state after the command
}

// Accepted reports whether a forward step merged two components.
func (s Step) Accepted() bool { return s.Edge.State == core.Accepted }

// Snapshot is a self-contained copy of everything a renderer needs after a command.
type Snapshot struct {
	RunID       string      `json:"run_id" yaml:"run_id"`
	Status      Status      `json:"status" yaml:"status"`
	Cursor      int         `json:"cursor" yaml:"cursor"`
	EdgeCount   int         `json:"edge_count" yaml:"edge_count"`
	Current     *core.Edge  `json:"current,omitempty" yaml:"current,omitempty"`
	TotalWeight float64     `json:"total_weight" yaml:"total_weight"`
	Accepted    int         `json:"accepted" yaml:"accepted"`
	Rejected    int         `json:"rejected" yaml:"rejected"`
	Nodes       []core.Node `json:"nodes" yaml:"nodes"`
	Edges       []core.Edge `json:"edges" yaml:"edges"`
	Components  [][]int     `json:"components" yaml:"components"`
}

// Observer receives engine events. Implementations must be cheap and must not
// call back into the engine: they run while the engine lock is held.
type Observer interface {
	Loaded(runID string, nodes, edges int)
	Stepped(dir Direction, e core.Edge)
	Replayed(target int)
	Reset()
}

// Options configures an Engine. Use DefaultOptions() and Option functions.
type Options struct {
	// Policy selects when a run is complete. Default CompleteOnExhaustion.
	Policy CompletionPolicy

	// Logger receives debug records for every command. Default zap.NewNop().
	Logger *zap.Logger

	// Observer, if non-nil, is notified of loads, steps, replays and resets.
	Observer Observer

	// CheckInvariants runs Verify after every mutating command and panics on failure.
	CheckInvariants bool
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns exhaustion policy, a no-op logger, no observer and no invariant checks.
func DefaultOptions() Options {
	return Options{
		Policy: CompleteOnExhaustion,
		Logger: zap.NewNop(),
	}
}

// WithCompletionPolicy selects the completion policy.
func WithCompletionPolicy(p CompletionPolicy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs an event observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithInvariantChecks enables Verify after every command (debug builds, tests).
func WithInvariantChecks() Option {
	return func(o *Options) { o.CheckInvariants = true }
}

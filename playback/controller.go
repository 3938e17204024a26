package playback

import (
	"sync"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/kruskal"
)

// View is a Snapshot plus the playback state, everything a UI redraws from.
type View struct {
	kruskal.Snapshot `yaml:",inline"`

	Playing bool    `json:"playing" yaml:"playing"`
	Speed   float64 `json:"speed" yaml:"speed"`
}

// Controller is the command surface a UI talks to. It owns one Scheduler
// driving one Engine and routes every command through the engine's lock.
//
// Commands that move the cursor anywhere but forward (Load, Reset,
// StepBackward, SeekTo) pause playback first, so a pending tick can never act
// on the new state. The pause and the command run under one controller lock,
// and Play takes the same lock, so playback cannot restart in between. A manual
// StepForward is allowed while playing; it is serialized with the ticks by the
// engine.
//
// Lock order is Controller, then Scheduler, then Engine. Ticks never take the
// controller lock.
type Controller struct {
	mu     sync.Mutex
	engine *kruskal.Engine
	sched  *Scheduler
}

// NewController wires a scheduler (configured by opts) to engine.
func NewController(engine *kruskal.Engine, opts ...Option) *Controller {
	return &Controller{
		engine: engine,
		sched:  NewScheduler(engine, opts...),
	}
}

// Engine returns the driven engine for read-only queries.
func (c *Controller) Engine() *kruskal.Engine { return c.engine }

// Load pauses playback and loads g.
func (c *Controller) Load(g core.Graph) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.PauseWith(ReasonLoad)

	return c.engine.Load(g)
}

// StepForward issues one manual step.
func (c *Controller) StepForward() (kruskal.Step, error) {
	return c.engine.StepForward()
}

// StepBackward pauses playback and rewinds one edge.
func (c *Controller) StepBackward() (kruskal.Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.PauseWith(ReasonSeek)

	return c.engine.StepBackward()
}

// SeekTo pauses playback and moves the cursor to idx.
func (c *Controller) SeekTo(idx int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.PauseWith(ReasonSeek)

	return c.engine.SeekTo(idx)
}

// Reset pauses playback and restarts the run.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.PauseWith(ReasonReset)

	return c.engine.Reset()
}

// SetSpeed clamps and applies the multiplier; returns the applied value.
func (c *Controller) SetSpeed(x float64) float64 { return c.sched.SetSpeed(x) }

// Play starts automatic stepping; false if nothing is loaded or the run is already complete.
func (c *Controller) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.playLocked()
}

func (c *Controller) playLocked() bool {
	if c.engine.Status() == kruskal.Idle {
		return false
	}

	return c.sched.Play()
}

// Pause stops automatic stepping.
func (c *Controller) Pause() { c.sched.Pause() }

// TogglePlay flips play/pause and returns the new playing state.
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sched.Playing() {
		c.sched.Pause()
		return false
	}

	return c.playLocked()
}

// Playing reports whether automatic stepping is active.
func (c *Controller) Playing() bool { return c.sched.Playing() }

// View returns the engine snapshot together with playback state.
func (c *Controller) View() View {
	return View{
		Snapshot: c.engine.Snapshot(),
		Playing:  c.sched.Playing(),
		Speed:    c.sched.Speed(),
	}
}

// Close stops playback and waits for the ticker goroutine.
func (c *Controller) Close() { c.sched.Close() }

// Package playback drives a step engine on a timer and exposes the full
// command surface a UI needs.
//
// Scheduler
//
//	Calls StepForward every max(MinDelay, BaseDelay/speed) until the stepper
//	reports Complete (auto-pause) or Pause is called. Play and Pause are
//	idempotent. Speed is clamped to [MinSpeed, MaxSpeed], by default
//	[0.1, 2.0] around a 600ms base with a 100ms floor.
//
//	Cancellation is race-free: each play session has a generation number,
//	and a tick only steps while holding the scheduler lock and seeing its own
//	generation. Once Pause returns nothing from the old session can step.
//
// Controller
//
//	Pairs one Scheduler with one *kruskal.Engine:
//
//	  c := playback.NewController(kruskal.New(), playback.WithSpeed(1.5))
//	  _ = c.Load(g)
//	  c.Play()
//	  ...
//	  v := c.View() // snapshot + playing + speed
//	  c.Close()
//
//	Load, Reset, StepBackward and SeekTo pause first. StepForward may run
//	alongside playback; the engine lock serializes it with the ticks.
//
// Time is injected through clockwork.Clock so tests can advance a fake clock
// instead of sleeping.
package playback

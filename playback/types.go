// Package playback defines the stepper contract, observer hooks and options
// for timer-driven playback of a step engine.
package playback

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/katalvlaran/kruskalviz/kruskal"
)

// Cadence defaults: delay = max(MinDelay, BaseDelay / speed).
const (
	DefaultBaseDelay = 600 * time.Millisecond
	DefaultMinDelay  = 100 * time.Millisecond

	DefaultSpeed  = 1.0
	MinSpeedLimit = 0.1
	MaxSpeedLimit = 2.0
)

// Reasons passed to Observer.Stopped.
const (
	ReasonPaused   = "paused"
	ReasonComplete = "complete"
	ReasonError    = "error"
	ReasonLoad     = "load"
	ReasonReset    = "reset"
	ReasonSeek     = "seek"
	ReasonClosed   = "closed"
)

// Stepper is the part of the engine contract the scheduler needs.
// *kruskal.Engine satisfies it.
type Stepper interface {
	StepForward() (kruskal.Step, error)
	Complete() bool
}

// Observer receives playback lifecycle events. Called with the scheduler lock
// held; implementations must not call back into the scheduler.
type Observer interface {
	Started(interval time.Duration)
	Ticked()
	Stopped(reason string)
}

// Options configures a Scheduler.
type Options struct {
	// Clock drives the ticker. Default clockwork.NewRealClock().
	Clock clockwork.Clock

	// BaseDelay is the step delay at speed 1.0. Default 600ms.
	BaseDelay time.Duration

	// MinDelay floors the step delay at high speeds. Default 100ms.
	MinDelay time.Duration

	// MinSpeed and MaxSpeed bound SetSpeed. Default [0.1, 2.0].
	MinSpeed, MaxSpeed float64

	// Speed is the initial multiplier, clamped into range. Default 1.0.
	Speed float64

	// Logger records play/pause transitions. Default zap.NewNop().
	Logger *zap.Logger

	// Observer, if non-nil, receives Started/Ticked/Stopped.
	Observer Observer

	// OnStep, if non-nil, is called after every step issued by a tick, with
	// the scheduler lock held. It may read the engine but must not call the
	// scheduler or the Controller.
	OnStep func(kruskal.Step)
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the source cadence: 600ms base, 100ms floor, speed 1.0 in [0.1, 2.0].
func DefaultOptions() Options {
	return Options{
		Clock:     clockwork.NewRealClock(),
		BaseDelay: DefaultBaseDelay,
		MinDelay:  DefaultMinDelay,
		MinSpeed:  MinSpeedLimit,
		MaxSpeed:  MaxSpeedLimit,
		Speed:     DefaultSpeed,
		Logger:    zap.NewNop(),
	}
}

// WithClock injects a clock (clockwork.NewFakeClock() in tests).
func WithClock(c clockwork.Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithBaseDelay sets the delay at speed 1.0. Non-positive values are ignored.
func WithBaseDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.BaseDelay = d
		}
	}
}

// WithMinDelay sets the delay floor. Non-positive values are ignored.
func WithMinDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.MinDelay = d
		}
	}
}

// WithSpeedRange sets the allowed multiplier range. Ignored unless 0 < lo <= hi.
func WithSpeedRange(lo, hi float64) Option {
	return func(o *Options) {
		if lo > 0 && lo <= hi {
			o.MinSpeed, o.MaxSpeed = lo, hi
		}
	}
}

// WithSpeed sets the initial multiplier (clamped at construction).
func WithSpeed(x float64) Option {
	return func(o *Options) { o.Speed = x }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs a lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithOnStep installs a per-tick step callback.
func WithOnStep(fn func(kruskal.Step)) Option {
	return func(o *Options) { o.OnStep = fn }
}

// ClampSpeed bounds x to [lo, hi]. NaN maps to DefaultSpeed clamped into range.
func ClampSpeed(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		x = DefaultSpeed
	}

	return math.Max(lo, math.Min(hi, x))
}

// Interval returns max(minDelay, base / speed), with the quotient floored to a
// whole millisecond.
func Interval(base, minDelay time.Duration, speed float64) time.Duration {
	d := time.Duration(float64(base) / speed).Truncate(time.Millisecond)
	if d < minDelay {
		return minDelay
	}

	return d
}

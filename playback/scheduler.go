// SPDX-License-Identifier: MIT
//
// File: scheduler.go
// Role: Cooperative, cancelable periodic trigger that issues StepForward until
// the stepper completes or playback is paused.
// Concurrency:
//   - mu guards playing/gen/speed and is held for the whole of a tick, step included.
//   - Every start and stop bumps gen; a tick only steps if it still sees the
//     generation it was started with. A tick that fired before Pause but is
//     handled after it is therefore dropped.

package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/katalvlaran/kruskalviz/kruskal"
)

// Scheduler repeatedly calls StepForward on a Stepper at a configurable cadence.
type Scheduler struct {
	mu      sync.Mutex
	stepper Stepper
	opts    Options
	log     *zap.Logger

	speed   float64
	playing bool
	closed  bool
	gen     uint64
	ticker  clockwork.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler returns a paused scheduler driving s.
func NewScheduler(s Stepper, opts ...Option) *Scheduler {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Scheduler{
		stepper: s,
		opts:    o,
		log:     o.Logger,
		speed:   ClampSpeed(o.Speed, o.MinSpeed, o.MaxSpeed),
	}
}

// Speed returns the current multiplier.
func (s *Scheduler) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.speed
}

// Interval returns the current delay between steps.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.intervalLocked()
}

// Playing reports whether ticks are being issued.
func (s *Scheduler) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playing
}

// SetSpeed clamps x into the configured range, applies it and returns the
// applied value. While playing, the ticker is re-armed with the new interval.
func (s *Scheduler) SetSpeed(x float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.speed = ClampSpeed(x, s.opts.MinSpeed, s.opts.MaxSpeed)
	if s.playing {
		interval := s.intervalLocked()
		s.ticker.Reset(interval)
		if s.opts.Observer != nil {
			s.opts.Observer.Started(interval)
		}
	}
	s.log.Debug("speed set", zap.Float64("requested", x), zap.Float64("speed", s.speed))

	return s.speed
}

// Play starts issuing steps. It is idempotent while playing and reports
// whether playback is running afterwards: false when the stepper is already
// complete or the scheduler is closed.
func (s *Scheduler) Play() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if s.playing {
		return true
	}
	if s.stepper.Complete() {
		s.log.Debug("play ignored: run complete")
		return false
	}
	s.startLocked()

	return true
}

// Pause stops issuing steps. Idempotent. When Pause returns, no further step
// will be issued by this playback session, even for a tick already fired.
func (s *Scheduler) Pause() {
	s.PauseWith(ReasonPaused)
}

// PauseWith is Pause with an explicit reason for logs and observers.
func (s *Scheduler) PauseWith(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(reason)
}

// Toggle pauses when playing and plays otherwise; returns the new playing state.
func (s *Scheduler) Toggle() bool {
	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()

	if playing {
		s.Pause()
		return false
	}

	return s.Play()
}

// Close pauses, refuses further Play calls and waits for the tick goroutine to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.stopLocked(ReasonClosed)
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) intervalLocked() time.Duration {
	return Interval(s.opts.BaseDelay, s.opts.MinDelay, s.speed)
}

func (s *Scheduler) startLocked() {
	s.playing = true
	s.gen++
	interval := s.intervalLocked()
	s.ticker = s.opts.Clock.NewTicker(interval)
	s.stop = make(chan struct{})

	s.wg.Add(1)
	go s.loop(s.gen, s.ticker, s.stop)

	s.log.Info("playback started", zap.Duration("interval", interval), zap.Float64("speed", s.speed))
	if s.opts.Observer != nil {
		s.opts.Observer.Started(interval)
	}
}

func (s *Scheduler) stopLocked(reason string) {
	if !s.playing {
		return
	}
	s.playing = false
	s.gen++
	close(s.stop)
	s.stop, s.ticker = nil, nil

	s.log.Info("playback stopped", zap.String("reason", reason))
	if s.opts.Observer != nil {
		s.opts.Observer.Stopped(reason)
	}
}

func (s *Scheduler) loop(gen uint64, ticker clockwork.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if !s.tick(gen) {
				return
			}
		}
	}
}

// tick issues one step for playback session gen and reports whether the
// session should keep running.
func (s *Scheduler) tick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || s.gen != gen {
		return false
	}

	st, err := s.stepper.StepForward()
	switch {
	case errors.Is(err, kruskal.ErrComplete):
		s.stopLocked(ReasonComplete)
		return false
	case err != nil:
		s.log.Warn("playback step failed", zap.Error(err))
		s.stopLocked(ReasonError)
		return false
	}

	if s.opts.Observer != nil {
		s.opts.Observer.Ticked()
	}
	if s.opts.OnStep != nil {
		s.opts.OnStep(st)
	}
	if st.Complete || s.stepper.Complete() {
		s.stopLocked(ReasonComplete)
		return false
	}

	return true
}

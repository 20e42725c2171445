// Package scheduler drives the play and preview simulations from a single
// display-refresh clock.
package scheduler

import (
	"time"

	"github.com/vovakirdan/color-dash/internal/sim"
)

// DefaultMaxDelta is the largest frame delta handed to a simulation.
const DefaultMaxDelta = 32 * time.Millisecond

// Frame is the outcome of one tick.
type Frame struct {
	Dt      float64 // clamped delta in seconds
	Play    sim.StepResult
	Preview sim.StepResult
}

// Scheduler steps play then preview once per tick. It is not safe for
// concurrent use; ticks are delivered on the UI goroutine.
type Scheduler struct {
	maxDelta time.Duration
	last     time.Time

	play    *sim.Simulation
	preview *sim.Simulation

	// OnPreviewStopped is called after StopPreview detaches the preview so
	// the front-end can clear its surface.
	OnPreviewStopped func()
}

// New creates a scheduler. A non-positive maxDelta selects DefaultMaxDelta.
func New(maxDelta time.Duration) *Scheduler {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Scheduler{maxDelta: maxDelta}
}

// SetPlay attaches the play simulation.
func (s *Scheduler) SetPlay(p *sim.Simulation) {
	s.play = p
}

// Play returns the attached play simulation, if any.
func (s *Scheduler) Play() *sim.Simulation {
	return s.play
}

// StopPlay freezes the play simulation. The scheduler keeps ticking so
// particles and the preview continue to animate.
func (s *Scheduler) StopPlay() {
	if s.play != nil {
		s.play.Stop()
	}
}

// StartPreview replaces the preview simulation.
func (s *Scheduler) StartPreview(p *sim.Simulation) {
	s.preview = p
}

// Preview returns the attached preview simulation, if any.
func (s *Scheduler) Preview() *sim.Simulation {
	return s.preview
}

// StopPreview detaches the preview so it is no longer stepped.
func (s *Scheduler) StopPreview() {
	if s.preview == nil {
		return
	}
	s.preview = nil
	if s.OnPreviewStopped != nil {
		s.OnPreviewStopped()
	}
}

// Delta converts the wall-clock gap since the previous tick into a clamped
// frame delta. The first tick yields 0. Time going backwards yields 0.
func (s *Scheduler) Delta(now time.Time) float64 {
	if s.last.IsZero() {
		s.last = now
		return 0
	}
	d := now.Sub(s.last)
	s.last = now
	if d < 0 {
		d = 0
	}
	if d > s.maxDelta {
		d = s.maxDelta
	}
	return d.Seconds()
}

// Tick advances play then preview by the clamped delta since the last tick.
// Missed ticks are absorbed into the next delta; there is no sub-stepping.
func (s *Scheduler) Tick(now time.Time) Frame {
	dt := s.Delta(now)
	f := Frame{Dt: dt}
	if s.play != nil {
		f.Play = s.play.Step(dt)
	}
	if s.preview != nil {
		f.Preview = s.preview.Step(dt)
	}
	return f
}

// Reset forgets the previous tick time so the next tick yields dt = 0.
// Used after pauses such as modal menus.
func (s *Scheduler) Reset() {
	s.last = time.Time{}
}

package effects

import "time"

// HoldForever makes a Static effect run indefinitely, which is the usual
// configuration for idle background lighting.
const HoldForever time.Duration = -1

// Static holds every LED at a constant, uniform brightness level. Combined
// with a scrolling color source this produces a moving color zone without
// any brightness animation.
type Static struct {
	base
	level float64
	hold  time.Duration
}

// NewStatic creates a static-brightness effect. level is clamped to [0,1].
// hold decides when the effect finishes: zero finishes it right after its
// first active tick, a positive value holds the level for that long, and
// HoldForever keeps it running until replaced.
func NewStatic(numLEDs int, level float64, hold time.Duration, opts Options) *Static {
	return &Static{
		base:  newBase(numLEDs, opts),
		level: clamp01(level),
		hold:  hold,
	}
}

// Tick fills the buffer at the configured level and finishes once the hold
// time has elapsed.
func (s *Static) Tick(now time.Time) {
	if s.finished {
		return
	}
	elapsed := s.activate(now)
	if s.pending(elapsed) {
		return
	}

	s.fill(s.level)
	if s.hold >= 0 && s.runtime(elapsed) >= s.hold {
		s.finished = true
	}
}

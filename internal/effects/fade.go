package effects

import "time"

// minFadeDuration guards against division by zero for degenerate fades.
const minFadeDuration = 10 * time.Millisecond

// FadeIn ramps every LED linearly from black to full brightness over a
// fixed duration, then finishes fully lit.
type FadeIn struct {
	base
	duration time.Duration
}

// NewFadeIn creates a fade-in effect. Durations below 10ms are clamped up.
func NewFadeIn(numLEDs int, duration time.Duration, opts Options) *FadeIn {
	if duration < minFadeDuration {
		duration = minFadeDuration
	}
	return &FadeIn{
		base:     newBase(numLEDs, opts),
		duration: duration,
	}
}

// Tick advances the ramp.
func (f *FadeIn) Tick(now time.Time) {
	if f.finished {
		return
	}
	elapsed := f.activate(now)
	if f.pending(elapsed) {
		f.fill(0)
		return
	}

	t := f.runtime(elapsed)
	if t >= f.duration {
		f.finish(1.0)
		return
	}
	f.fill(clamp01(t.Seconds() / f.duration.Seconds()))
}

// FadeToBlack ramps every LED linearly from full brightness to black over
// a fixed duration, then finishes dark. Its pre-start default is fully lit
// so a delayed fade holds the LEDs on until the ramp begins.
type FadeToBlack struct {
	base
	duration time.Duration
}

// NewFadeToBlack creates a fade-out effect. Durations below 10ms are
// clamped up.
func NewFadeToBlack(numLEDs int, duration time.Duration, opts Options) *FadeToBlack {
	if duration < minFadeDuration {
		duration = minFadeDuration
	}
	f := &FadeToBlack{
		base:     newBase(numLEDs, opts),
		duration: duration,
	}
	f.fill(1.0)
	return f
}

// Tick advances the ramp.
func (f *FadeToBlack) Tick(now time.Time) {
	if f.finished {
		return
	}
	elapsed := f.activate(now)
	if f.pending(elapsed) {
		f.fill(1.0)
		return
	}

	t := f.runtime(elapsed)
	if t >= f.duration {
		f.finish(0.0)
		return
	}
	f.fill(clamp01(1.0 - t.Seconds()/f.duration.Seconds()))
}

// Package effects implements the brightness-buffer animation family that
// drives the LED stage. Each effect owns a per-LED brightness buffer in
// [0,1] and advances it from a monotonic timestamp; the stage manager
// composites the buffer with a color source and pushes the result to the
// device sink.
package effects

import (
	"time"
)

// DefaultGamma is the brightness curve exponent applied at composite time
// when no explicit gamma is configured. Tuned for the perceived linearity
// of common addressable LEDs.
const DefaultGamma = 2.9

// Options is the immutable configuration snapshot shared by all effects.
// It is captured at construction and never mutated afterward; re-running an
// effect means creating a new instance.
type Options struct {
	// Speed is a time-scale multiplier. Its unit is defined by the
	// effect (LEDs/sec for spatial effects). Values <= 0 fall back to 1.
	Speed float64

	// Reverse flips the buffer spatially at composite time, running the
	// pattern in the opposite direction.
	Reverse bool

	// Gamma is the brightness curve exponent (> 0). Zero selects
	// DefaultGamma.
	Gamma float64

	// StartDelay holds the effect in its pre-start state (buffer at its
	// default) until the delay has elapsed.
	StartDelay time.Duration

	// DitherStrength adds uniform noise of the given amplitude to the
	// brightness values before quantization, breaking up banding on
	// low-precision hardware. Zero disables dithering.
	DitherStrength float64
}

// withDefaults returns a copy with invalid fields replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Speed <= 0 {
		o.Speed = 1.0
	}
	if o.Gamma <= 0 {
		o.Gamma = DefaultGamma
	}
	if o.StartDelay < 0 {
		o.StartDelay = 0
	}
	if o.DitherStrength < 0 {
		o.DitherStrength = 0
	}
	if o.DitherStrength > 1 {
		o.DitherStrength = 1
	}
	return o
}

// Effect is the contract every animation implements.
//
// Tick must be safe to call every frame, including before the start delay
// has elapsed, and must be idempotent: two calls with the same timestamp
// leave the buffer in the same state as one call. Once Finished reports
// true the buffer is frozen at its final values and further ticks are
// no-ops.
type Effect interface {
	// Tick advances the effect to the given monotonic timestamp,
	// mutating the internal brightness buffer in place. It never blocks.
	Tick(now time.Time)

	// Finished reports whether the effect has completed. Indefinite
	// effects never finish.
	Finished() bool

	// Brightness returns the effect's brightness buffer for compositing.
	// The slice is a view of effect-owned state: callers must not mutate
	// it or retain it across ticks.
	Brightness() []float64

	// Options returns the effect's configuration snapshot.
	Options() Options
}

// base carries the state shared by all effects: the brightness buffer, the
// options snapshot, the activation timestamp and the finished flag.
// Activation happens on the first tick, so constructing an effect ahead of
// time costs nothing.
type base struct {
	opts     Options
	buf      []float64
	start    time.Time
	finished bool
}

func newBase(numLEDs int, opts Options) base {
	if numLEDs < 1 {
		numLEDs = 1
	}
	return base{
		opts: opts.withDefaults(),
		buf:  make([]float64, numLEDs),
	}
}

// activate records the first tick as the effect's reference time and
// returns the time elapsed since then.
func (b *base) activate(now time.Time) time.Duration {
	if b.start.IsZero() {
		b.start = now
	}
	return now.Sub(b.start)
}

// pending reports whether the start delay is still counting down.
func (b *base) pending(elapsed time.Duration) bool {
	return elapsed < b.opts.StartDelay
}

// runtime returns the time elapsed since the start delay ended.
func (b *base) runtime(elapsed time.Duration) time.Duration {
	return elapsed - b.opts.StartDelay
}

// finish freezes the buffer at the given final value and marks the effect
// complete.
func (b *base) finish(value float64) {
	b.fill(value)
	b.finished = true
}

func (b *base) fill(value float64) {
	for i := range b.buf {
		b.buf[i] = value
	}
}

// Finished reports whether the effect has completed.
func (b *base) Finished() bool { return b.finished }

// Brightness returns the brightness buffer.
func (b *base) Brightness() []float64 { return b.buf }

// Options returns the configuration snapshot.
func (b *base) Options() Options { return b.opts }

// phase converts scaled elapsed time into the scalar that drives an
// effect's spatial pattern.
func phase(runtime time.Duration, speed float64) float64 {
	return runtime.Seconds() * speed
}

// stamp writes pattern into buf starting at index head, clipping the
// window to valid buffer bounds at both ends. Partial overlap at the edges
// is the normal case while a comet enters or leaves the strip.
func stamp(buf, pattern []float64, head int) {
	for j, v := range pattern {
		i := head + j
		if i < 0 || i >= len(buf) {
			continue
		}
		buf[i] = v
	}
}

// tailPattern precomputes the comet brightness ramp: full brightness at
// the head tapering linearly to darkness at the tail end.
func tailPattern(width int) []float64 {
	if width < 1 {
		width = 1
	}
	pattern := make([]float64, width)
	if width == 1 {
		pattern[0] = 1.0
		return pattern
	}
	for i := range pattern {
		pattern[i] = 1.0 - float64(i)/float64(width-1)
	}
	return pattern
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package effects

import "time"

// LiquidFill fills the strip with light behind a soft-edged wavefront that
// sweeps from the first LED to the last. The wavefront width controls how
// many LEDs the lit/dark transition is stretched over.
type LiquidFill struct {
	base
	wavefront int
}

// NewLiquidFill creates a liquid-fill effect. wavefrontWidth is clamped to
// a minimum of 1 to avoid a degenerate division.
func NewLiquidFill(numLEDs, wavefrontWidth int, opts Options) *LiquidFill {
	if wavefrontWidth < 1 {
		wavefrontWidth = 1
	}
	return &LiquidFill{
		base:      newBase(numLEDs, opts),
		wavefront: wavefrontWidth,
	}
}

// Tick computes each LED's brightness as a soft step of its distance
// behind the fill front: fully lit behind, fully dark ahead, a linear ramp
// across the wavefront. Finishes fully lit once the front has swept past
// the last LED plus the wavefront width.
func (l *LiquidFill) Tick(now time.Time) {
	if l.finished {
		return
	}
	elapsed := l.activate(now)
	if l.pending(elapsed) {
		return
	}

	pos := phase(l.runtime(elapsed), l.opts.Speed)
	if pos >= float64(len(l.buf)+l.wavefront) {
		l.finish(1.0)
		return
	}

	w := float64(l.wavefront)
	for i := range l.buf {
		l.buf[i] = clamp01((pos - float64(i)) / w)
	}
}

package effects

import (
	"math"
	"time"
)

// ChaseConfig tunes the comet.
type ChaseConfig struct {
	// Width is the comet length in LEDs including the head, clamped to a
	// minimum of 1.
	Width int

	// Loop repeats the run after each full pass instead of finishing.
	Loop bool

	// LoopInterval is the pause between runs while looping.
	LoopInterval time.Duration

	// Duration caps a looping chase. The cap is only checked at loop
	// boundaries: a run that is underway when the duration expires
	// completes before the effect finishes.
	Duration time.Duration
}

// Chase moves a bright head with a linearly tapering tail across the
// strip. The head position advances by Speed LEDs per second; the run
// window is numLEDs+width so the comet fully clears the strip before the
// next run begins.
type Chase struct {
	base
	cfg     ChaseConfig
	pattern []float64
}

// NewChase creates a chase effect.
func NewChase(numLEDs int, cfg ChaseConfig, opts Options) *Chase {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.LoopInterval < 0 {
		cfg.LoopInterval = 0
	}
	return &Chase{
		base:    newBase(numLEDs, opts),
		cfg:     cfg,
		pattern: tailPattern(cfg.Width),
	}
}

// Tick stamps the tail pattern at the current head position. All state is
// derived from the absolute timeline, so redundant ticks at the same
// timestamp are harmless.
func (c *Chase) Tick(now time.Time) {
	if c.finished {
		return
	}
	elapsed := c.activate(now)
	if c.pending(elapsed) {
		return
	}

	t := c.runtime(elapsed).Seconds()
	window := float64(len(c.buf) + c.cfg.Width)
	runDur := window / c.opts.Speed
	cycle := runDur + c.cfg.LoopInterval.Seconds()

	completed := math.Floor(t / cycle)
	inCycle := t - completed*cycle

	if inCycle >= runDur {
		// Loop boundary: the comet has cleared the strip and the
		// effect is waiting out the loop interval.
		c.fill(0)
		if !c.cfg.Loop {
			c.finish(0)
			return
		}
		if c.cfg.Duration > 0 && elapsed >= c.cfg.Duration {
			c.finish(0)
		}
		return
	}

	if completed > 0 {
		if !c.cfg.Loop {
			c.finish(0)
			return
		}
		// The current run only starts if the duration had not expired
		// at the preceding boundary.
		if c.cfg.Duration > 0 {
			runStart := time.Duration(completed * cycle * float64(time.Second))
			if c.opts.StartDelay+runStart >= c.cfg.Duration {
				c.finish(0)
				return
			}
		}
	}

	c.fill(0)
	head := int(inCycle * c.opts.Speed)
	stamp(c.buf, c.pattern, head)
}

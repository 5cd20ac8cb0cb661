package effects

import (
	"math"
	"time"
)

// ChaseRampConfig tunes the accelerating comet.
type ChaseRampConfig struct {
	// Width is the comet length in LEDs, clamped to a minimum of 1.
	Width int

	// InitialSpeed is the starting speed in LEDs/sec.
	InitialSpeed float64

	// Acceleration adds this many LEDs/sec to the speed, per second.
	Acceleration float64

	// MaxSpeed caps the acceleration; reaching it starts the finishing
	// flicker.
	MaxSpeed float64

	// FlickerDuration is how long the comet keeps circling at MaxSpeed
	// before the effect finishes fully lit.
	FlickerDuration time.Duration
}

const (
	defaultRampInitialSpeed = 5.0
	defaultRampAccel        = 2.0
	defaultRampMaxSpeed     = 200.0
	defaultRampFlicker      = 1500 * time.Millisecond
)

// ChaseRamp is a comet that starts slow and continuously accelerates,
// wrapping around the strip until it reaches maximum speed, holds there for
// a flicker period and then finishes fully lit. It shares the Chase
// contract, but its phase is a quadratic function of elapsed time rather
// than a linear one.
type ChaseRamp struct {
	base
	cfg     ChaseRampConfig
	pattern []float64
	rampEnd time.Duration // runtime at which speed hits MaxSpeed
}

// NewChaseRamp creates an accelerating chase effect.
func NewChaseRamp(numLEDs int, cfg ChaseRampConfig, opts Options) *ChaseRamp {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.InitialSpeed <= 0 {
		cfg.InitialSpeed = defaultRampInitialSpeed
	}
	if cfg.Acceleration <= 0 {
		cfg.Acceleration = defaultRampAccel
	}
	if cfg.MaxSpeed < cfg.InitialSpeed {
		cfg.MaxSpeed = defaultRampMaxSpeed
	}
	if cfg.FlickerDuration <= 0 {
		cfg.FlickerDuration = defaultRampFlicker
	}

	rampEndSecs := (cfg.MaxSpeed - cfg.InitialSpeed) / cfg.Acceleration
	return &ChaseRamp{
		base:    newBase(numLEDs, opts),
		cfg:     cfg,
		pattern: tailPattern(cfg.Width),
		rampEnd: time.Duration(rampEndSecs * float64(time.Second)),
	}
}

// phaseAt integrates the speed curve in closed form: quadratic while
// accelerating, linear once the speed is capped. Deriving the position
// from absolute elapsed time keeps ticks idempotent.
func (c *ChaseRamp) phaseAt(t time.Duration) float64 {
	ts := t.Seconds() * c.opts.Speed
	rampEnd := c.rampEnd.Seconds()
	if ts <= rampEnd {
		return c.cfg.InitialSpeed*ts + 0.5*c.cfg.Acceleration*ts*ts
	}
	atRampEnd := c.cfg.InitialSpeed*rampEnd + 0.5*c.cfg.Acceleration*rampEnd*rampEnd
	return atRampEnd + c.cfg.MaxSpeed*(ts-rampEnd)
}

// Tick stamps the comet at its current position, wrapping around the run
// window so the strip keeps flickering while the comet accelerates.
func (c *ChaseRamp) Tick(now time.Time) {
	if c.finished {
		return
	}
	elapsed := c.activate(now)
	if c.pending(elapsed) {
		return
	}

	t := c.runtime(elapsed)
	if t >= c.rampEnd+c.cfg.FlickerDuration {
		c.finish(1.0)
		return
	}

	window := len(c.buf) + c.cfg.Width
	head := int(math.Mod(c.phaseAt(t), float64(window)))

	c.fill(0)
	stamp(c.buf, c.pattern, head)
	// Wrap the visible part of the comet that extends past the window.
	stamp(c.buf, c.pattern, head-window)
}

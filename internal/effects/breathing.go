package effects

import (
	"math"
	"time"
)

// BreathingConfig tunes the breathing waveform.
//
// In the default cosine mode the brightness follows a smooth half-cosine
// pulse between MinBrightness and MaxBrightness over CycleDuration. Setting
// OnDuration or OffDuration switches to trapezoid mode: the effect holds at
// maximum for OnDuration, ramps down over TransitionDuration, holds at
// minimum for OffDuration and ramps back up, which suits long-period on/off
// cycles with soft edges.
type BreathingConfig struct {
	CycleDuration time.Duration // cosine mode, one full breath (default 4s)
	MinBrightness float64       // default 0.1
	MaxBrightness float64       // default 1.0

	// Duration caps the effect; zero breathes forever.
	Duration time.Duration

	// Trapezoid mode.
	OnDuration         time.Duration
	OffDuration        time.Duration
	TransitionDuration time.Duration // ramp length (default 2s)
}

const (
	defaultBreathCycle      = 4 * time.Second
	defaultBreathMin        = 0.1
	defaultBreathMax        = 1.0
	defaultBreathTransition = 2 * time.Second
)

// Breathing smoothly modulates the whole strip's brightness between a low
// and a high bound, looping indefinitely unless capped by Duration.
type Breathing struct {
	base
	cfg       BreathingConfig
	trapezoid bool
	cycle     time.Duration
}

// NewBreathing creates a breathing effect.
func NewBreathing(numLEDs int, cfg BreathingConfig, opts Options) *Breathing {
	if cfg.MaxBrightness <= 0 {
		cfg.MaxBrightness = defaultBreathMax
	}
	cfg.MaxBrightness = clamp01(cfg.MaxBrightness)
	if cfg.MinBrightness <= 0 {
		cfg.MinBrightness = defaultBreathMin
	}
	cfg.MinBrightness = clamp01(cfg.MinBrightness)
	if cfg.MinBrightness > cfg.MaxBrightness {
		cfg.MinBrightness = cfg.MaxBrightness
	}
	if cfg.TransitionDuration <= 0 {
		cfg.TransitionDuration = defaultBreathTransition
	}

	b := &Breathing{
		base: newBase(numLEDs, opts),
		cfg:  cfg,
	}
	b.trapezoid = cfg.OnDuration > 0 || cfg.OffDuration > 0
	if b.trapezoid {
		b.cycle = cfg.OnDuration + cfg.OffDuration + 2*cfg.TransitionDuration
	} else {
		b.cycle = cfg.CycleDuration
		if b.cycle < 100*time.Millisecond {
			b.cycle = defaultBreathCycle
		}
	}
	return b
}

// Tick computes the uniform brightness for the current point in the cycle.
// The Duration cap freezes the buffer at its last computed value.
func (b *Breathing) Tick(now time.Time) {
	if b.finished {
		return
	}
	elapsed := b.activate(now)

	if b.cfg.Duration > 0 && elapsed >= b.cfg.Duration {
		b.finished = true
		return
	}
	if b.pending(elapsed) {
		return
	}

	t := b.runtime(elapsed)
	var level float64
	if b.trapezoid {
		level = b.trapezoidWave(t)
	} else {
		level = b.cosineWave(t)
	}
	b.fill(clamp01(level))
}

// cosineWave starts at maximum brightness and dips to minimum halfway
// through the cycle.
func (b *Breathing) cosineWave(t time.Duration) float64 {
	angle := t.Seconds() * 2 * math.Pi / b.cycle.Seconds()
	normalized := (math.Cos(angle) + 1) / 2
	return b.cfg.MinBrightness + normalized*(b.cfg.MaxBrightness-b.cfg.MinBrightness)
}

// trapezoidWave walks the four phases of one cycle: ramp up, hold on, ramp
// down, hold off.
func (b *Breathing) trapezoidWave(t time.Duration) float64 {
	if b.cycle <= 0 {
		return b.cfg.MinBrightness
	}
	inCycle := t % b.cycle

	fadeInEnd := b.cfg.TransitionDuration
	onEnd := fadeInEnd + b.cfg.OnDuration
	fadeOutEnd := onEnd + b.cfg.TransitionDuration
	span := b.cfg.MaxBrightness - b.cfg.MinBrightness

	switch {
	case inCycle < fadeInEnd:
		progress := inCycle.Seconds() / b.cfg.TransitionDuration.Seconds()
		return b.cfg.MinBrightness + progress*span
	case inCycle < onEnd:
		return b.cfg.MaxBrightness
	case inCycle < fadeOutEnd:
		progress := (inCycle - onEnd).Seconds() / b.cfg.TransitionDuration.Seconds()
		return b.cfg.MaxBrightness - progress*span
	default:
		return b.cfg.MinBrightness
	}
}

// Package ledcolor provides the HSV color model and color sources used by
// the effect engine. A color source maps a normalized LED position (and an
// elapsed time, for moving gradients) to an HSV triple.
package ledcolor

import (
	"sort"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a hue/saturation/value triple with each component in [0,1].
type HSV struct {
	H float64
	S float64
	V float64
}

// RGB is an 8-bit color as sent to the lighting server.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ToRGB converts the HSV triple to an 8-bit RGB color.
func (c HSV) ToRGB() RGB {
	r, g, b := colorful.Hsv(clamp01(c.H)*360.0, clamp01(c.S), clamp01(c.V)).RGB255()
	return RGB{R: r, G: g, B: b}
}

// Source provides colors for LED positions. Implementations must be pure:
// the same position and elapsed time always yield the same color.
type Source interface {
	// ColorAt returns the color for a normalized position in [0,1).
	// elapsed is the time since the owning effect was activated and only
	// matters for animated sources.
	ColorAt(pos float64, elapsed time.Duration) HSV
}

// Static is a single, uniform color source.
type Static struct {
	Color HSV
}

// NewStatic creates a single-color source.
func NewStatic(c HSV) *Static {
	return &Static{Color: c}
}

// ColorAt returns the same color for every position.
func (s *Static) ColorAt(_ float64, _ time.Duration) HSV {
	return s.Color
}

// Stop is a gradient anchor: a color pinned to a normalized position.
type Stop struct {
	Position float64
	Color    HSV
}

// Gradient interpolates linearly between an ordered list of color stops.
// Position 1.0 wraps around to position 0.0, so a gradient is continuous
// across the boundary.
type Gradient struct {
	stops []Stop
}

// NewGradient creates a gradient from the given stops. Stops are sorted by
// position and positions are clamped to [0,1]; a stop at exactly 1.0 pins
// the color at the wraparound boundary. A single stop yields a constant
// color.
func NewGradient(stops []Stop) *Gradient {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	for i := range sorted {
		sorted[i].Position = clamp01(sorted[i].Position)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return &Gradient{stops: sorted}
}

// ColorAt returns the interpolated color at the given position.
func (g *Gradient) ColorAt(pos float64, _ time.Duration) HSV {
	if len(g.stops) == 0 {
		return HSV{}
	}
	if len(g.stops) == 1 {
		return g.stops[0].Color
	}

	pos = wrap01(pos)

	// Find the first stop at or after pos. sort.Search keeps lookup
	// O(log K) in the number of stops.
	idx := sort.Search(len(g.stops), func(i int) bool {
		return g.stops[i].Position > pos
	})

	var lo, hi Stop
	var span, offset float64
	switch idx {
	case 0:
		// Before the first stop: interpolate from the last stop across
		// the wraparound boundary.
		lo = g.stops[len(g.stops)-1]
		hi = g.stops[0]
		span = hi.Position + 1 - lo.Position
		offset = pos + 1 - lo.Position
	case len(g.stops):
		// After the last stop: wrap forward to the first stop.
		lo = g.stops[len(g.stops)-1]
		hi = g.stops[0]
		span = hi.Position + 1 - lo.Position
		offset = pos - lo.Position
	default:
		lo = g.stops[idx-1]
		hi = g.stops[idx]
		span = hi.Position - lo.Position
		offset = pos - lo.Position
	}

	if span <= 0 {
		return lo.Color
	}
	return lerpHSV(lo.Color, hi.Color, offset/span)
}

// Scrolling animates another source by shifting its position over time,
// producing a moving gradient. Rate is in full gradient cycles per second;
// negative rates scroll the other way.
type Scrolling struct {
	Inner Source
	Rate  float64
}

// NewScrolling wraps a source so its colors drift along the strip.
func NewScrolling(inner Source, rate float64) *Scrolling {
	return &Scrolling{Inner: inner, Rate: rate}
}

// ColorAt shifts the position by elapsed time before sampling the inner
// source.
func (s *Scrolling) ColorAt(pos float64, elapsed time.Duration) HSV {
	shifted := wrap01(pos + elapsed.Seconds()*s.Rate)
	return s.Inner.ColorAt(shifted, elapsed)
}

// lerpHSV interpolates each component linearly. t is clamped to [0,1].
func lerpHSV(a, b HSV, t float64) HSV {
	t = clamp01(t)
	return HSV{
		H: a.H + (b.H-a.H)*t,
		S: a.S + (b.S-a.S)*t,
		V: a.V + (b.V-a.V)*t,
	}
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

// wrap01 maps a value onto [0,1) by discarding whole cycles.
func wrap01(v float64) float64 {
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}
	return v
}

package ledcolor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGBPrimaries(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, HSV{H: 0, S: 1, V: 1}.ToRGB())
	assert.Equal(t, RGB{0, 255, 0}, HSV{H: 1.0 / 3.0, S: 1, V: 1}.ToRGB())
	assert.Equal(t, RGB{0, 0, 255}, HSV{H: 2.0 / 3.0, S: 1, V: 1}.ToRGB())
	assert.Equal(t, RGB{255, 255, 255}, HSV{H: 0, S: 0, V: 1}.ToRGB())
	assert.Equal(t, RGB{0, 0, 0}, HSV{H: 0.5, S: 1, V: 0}.ToRGB())
}

func TestHSVToRGBClampsComponents(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, HSV{H: 0, S: 2, V: 3}.ToRGB())
	assert.Equal(t, RGB{0, 0, 0}, HSV{H: -1, S: 1, V: -0.5}.ToRGB())
}

func TestStaticSource(t *testing.T) {
	c := HSV{H: 0.3, S: 0.5, V: 0.9}
	s := NewStatic(c)
	assert.Equal(t, c, s.ColorAt(0, 0))
	assert.Equal(t, c, s.ColorAt(0.7, time.Minute))
}

func TestGradientInterpolates(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: 0.0, Color: HSV{H: 0.0, S: 1.0, V: 0.0}},
		{Position: 1.0, Color: HSV{H: 0.5, S: 0.0, V: 1.0}},
	})

	mid := g.ColorAt(0.5, 0)
	assert.InDelta(t, 0.25, mid.H, 1e-9)
	assert.InDelta(t, 0.5, mid.S, 1e-9)
	assert.InDelta(t, 0.5, mid.V, 1e-9)

	start := g.ColorAt(0, 0)
	assert.InDelta(t, 0.0, start.H, 1e-9)
	assert.InDelta(t, 1.0, start.S, 1e-9)
}

func TestGradientSingleStopIsConstant(t *testing.T) {
	c := HSV{H: 0.6, S: 1, V: 1}
	g := NewGradient([]Stop{{Position: 0.4, Color: c}})
	assert.Equal(t, c, g.ColorAt(0, 0))
	assert.Equal(t, c, g.ColorAt(0.99, 0))
}

func TestGradientEmptyIsBlack(t *testing.T) {
	g := NewGradient(nil)
	assert.Equal(t, HSV{}, g.ColorAt(0.5, 0))
}

func TestGradientSortsStops(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: 1.0, Color: HSV{V: 1.0}},
		{Position: 0.0, Color: HSV{V: 0.0}},
	})
	assert.InDelta(t, 0.5, g.ColorAt(0.5, 0).V, 1e-9)
}

func TestGradientWrapsAcrossBoundary(t *testing.T) {
	// Stops at 0.25 and 0.75: positions outside [0.25,0.75] interpolate
	// across the wraparound.
	g := NewGradient([]Stop{
		{Position: 0.25, Color: HSV{V: 0.0}},
		{Position: 0.75, Color: HSV{V: 1.0}},
	})

	// Exactly between 0.75 and 0.25 going through 0: halfway back.
	assert.InDelta(t, 0.5, g.ColorAt(0.0, 0).V, 1e-9)
	assert.InDelta(t, 0.75, g.ColorAt(0.875, 0).V, 1e-9)
	assert.InDelta(t, 0.25, g.ColorAt(0.125, 0).V, 1e-9)
}

func TestGradientContinuousAtWrap(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: 0.0, Color: HSV{H: 0.1, S: 0.2, V: 0.3}},
		{Position: 0.5, Color: HSV{H: 0.9, S: 0.8, V: 0.7}},
	})
	// Position 1.0 wraps to 0.0.
	assert.Equal(t, g.ColorAt(0.0, 0), g.ColorAt(1.0, 0))
}

func TestGradientClampsPositions(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: -0.5, Color: HSV{V: 0.0}},
		{Position: 1.5, Color: HSV{V: 1.0}},
	})
	assert.InDelta(t, 0.5, g.ColorAt(0.5, 0).V, 1e-9)
}

func TestScrollingShiftsOverTime(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: 0.0, Color: HSV{V: 0.0}},
		{Position: 1.0, Color: HSV{V: 1.0}},
	})
	s := NewScrolling(g, 0.1) // one tenth of a cycle per second

	atZero := s.ColorAt(0.2, 0)
	assert.InDelta(t, g.ColorAt(0.2, 0).V, atZero.V, 1e-9)

	after2s := s.ColorAt(0.2, 2*time.Second)
	assert.InDelta(t, g.ColorAt(0.4, 0).V, after2s.V, 1e-9)

	// A full number of cycles lands back on the same color.
	after10s := s.ColorAt(0.2, 10*time.Second)
	assert.InDelta(t, atZero.V, after10s.V, 1e-9)
}

func TestScrollingNegativeRate(t *testing.T) {
	g := NewGradient([]Stop{
		{Position: 0.0, Color: HSV{V: 0.0}},
		{Position: 1.0, Color: HSV{V: 1.0}},
	})
	s := NewScrolling(g, -0.25)
	got := s.ColorAt(0.5, 1*time.Second)
	assert.InDelta(t, g.ColorAt(0.25, 0).V, got.V, 1e-9)
}

func TestBuiltinPresets(t *testing.T) {
	names := PresetNames()
	assert.NotEmpty(t, names)
	for _, name := range names {
		stops := PresetStops(name)
		assert.NotEmpty(t, stops, "preset %s", name)
		for _, stop := range stops {
			assert.GreaterOrEqual(t, stop.Position, 0.0)
			assert.LessOrEqual(t, stop.Position, 1.0)
		}
		// Every preset must build a usable gradient.
		g := NewGradient(stops)
		c := g.ColorAt(0.5, 0)
		assert.GreaterOrEqual(t, c.V, 0.0)
	}
	assert.Nil(t, PresetStops("no-such-preset"))
}

func TestWrap01(t *testing.T) {
	assert.InDelta(t, 0.25, wrap01(1.25), 1e-9)
	assert.InDelta(t, 0.75, wrap01(-0.25), 1e-9)
	assert.InDelta(t, 0.0, wrap01(0.0), 1e-9)
	assert.InDelta(t, 0.0, wrap01(3.0), 1e-9)
}

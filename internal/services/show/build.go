package show

import (
	"fmt"
	"time"

	"github.com/rgbstage/rgbstage-go/internal/effects"
	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
)

// PresetResolver looks up a named gradient preset. The runner falls back
// to the built-in presets when the resolver returns nothing.
type PresetResolver func(name string) ([]ledcolor.Stop, error)

// buildSource turns a color spec into a color source.
func buildSource(spec ColorSpec, presets PresetResolver) (ledcolor.Source, error) {
	var inner ledcolor.Source

	switch {
	case len(spec.Stops) > 0:
		stops := make([]ledcolor.Stop, len(spec.Stops))
		for i, s := range spec.Stops {
			stops[i] = ledcolor.Stop{
				Position: s.Position,
				Color:    ledcolor.HSV{H: s.H, S: s.S, V: defaultValue(s.V)},
			}
		}
		inner = ledcolor.NewGradient(stops)

	case spec.Preset != "":
		var stops []ledcolor.Stop
		if presets != nil {
			resolved, err := presets(spec.Preset)
			if err != nil {
				return nil, fmt.Errorf("show: resolving preset %q: %w", spec.Preset, err)
			}
			stops = resolved
		}
		if stops == nil {
			stops = ledcolor.PresetStops(spec.Preset)
		}
		if stops == nil {
			return nil, fmt.Errorf("show: unknown gradient preset %q", spec.Preset)
		}
		inner = ledcolor.NewGradient(stops)

	default:
		inner = ledcolor.NewStatic(ledcolor.HSV{H: spec.H, S: spec.S, V: defaultValue(spec.V)})
	}

	if spec.Scroll != 0 {
		return ledcolor.NewScrolling(inner, spec.Scroll), nil
	}
	return inner, nil
}

// buildEffect turns an effect spec into a concrete effect for a device
// with the given LED count.
func buildEffect(spec EffectSpec, numLEDs int, defaultGamma float64) (effects.Effect, error) {
	gamma := spec.Gamma
	if gamma <= 0 {
		gamma = defaultGamma
	}
	opts := effects.Options{
		Speed:          spec.Speed,
		Reverse:        spec.Reverse,
		Gamma:          gamma,
		StartDelay:     seconds(spec.Delay),
		DitherStrength: spec.Dither,
	}

	switch spec.Type {
	case TypeStatic:
		level := spec.Level
		if level <= 0 {
			level = 1.0
		}
		hold := effects.HoldForever
		if spec.Hold != nil && *spec.Hold >= 0 {
			hold = seconds(*spec.Hold)
		}
		return effects.NewStatic(numLEDs, level, hold, opts), nil

	case TypeFadeIn:
		return effects.NewFadeIn(numLEDs, seconds(spec.Duration), opts), nil

	case TypeFadeToBlack:
		return effects.NewFadeToBlack(numLEDs, seconds(spec.Duration), opts), nil

	case TypeBreathing:
		return effects.NewBreathing(numLEDs, effects.BreathingConfig{
			CycleDuration:      seconds(spec.Cycle),
			MinBrightness:      spec.MinBrightness,
			MaxBrightness:      spec.MaxBrightness,
			Duration:           seconds(spec.Duration),
			OnDuration:         seconds(spec.OnDuration),
			OffDuration:        seconds(spec.OffDuration),
			TransitionDuration: seconds(spec.Transition),
		}, opts), nil

	case TypeChase:
		return effects.NewChase(numLEDs, effects.ChaseConfig{
			Width:        spec.Width,
			Loop:         spec.Loop,
			LoopInterval: seconds(spec.LoopInterval),
			Duration:     seconds(spec.Duration),
		}, opts), nil

	case TypeChaseRamp:
		return effects.NewChaseRamp(numLEDs, effects.ChaseRampConfig{
			Width:           spec.Width,
			InitialSpeed:    spec.InitialSpeed,
			Acceleration:    spec.Acceleration,
			MaxSpeed:        spec.MaxSpeed,
			FlickerDuration: seconds(spec.Flicker),
		}, opts), nil

	case TypeLiquidFill:
		return effects.NewLiquidFill(numLEDs, spec.WavefrontWidth, opts), nil

	default:
		return nil, fmt.Errorf("show: unknown effect type %q", spec.Type)
	}
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// defaultValue maps an omitted value component to full brightness.
func defaultValue(v float64) float64 {
	if v <= 0 {
		return 1.0
	}
	return v
}

// Package show loads declarative show definitions and plays them: a show
// is an ordered list of cues, each layering effects onto devices. The
// runner advances to the next cue once every blocking effect of the
// current one has finished, and typically ends on an idle cue that runs
// until shutdown.
package show

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceSpec describes one addressable LED surface in the show file.
// ZoneIndex -1 addresses the whole device.
type DeviceSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DeviceIndex int    `yaml:"device_index"`
	ZoneIndex   int    `yaml:"zone_index"`
	LEDCount    int    `yaml:"led_count"`
}

// ColorSpec selects the color source for an effect. Exactly one of Stops,
// Preset or the H/S/V fields is used, in that order of precedence. Scroll
// wraps the source so its colors drift along the strip, in cycles/sec.
type ColorSpec struct {
	Preset string     `yaml:"preset,omitempty"`
	H      float64    `yaml:"h,omitempty"`
	S      float64    `yaml:"s,omitempty"`
	V      float64    `yaml:"v,omitempty"`
	Stops  []StopSpec `yaml:"stops,omitempty"`
	Scroll float64    `yaml:"scroll,omitempty"`
}

// StopSpec is one gradient anchor in a show file.
type StopSpec struct {
	Position float64 `yaml:"position"`
	H        float64 `yaml:"h"`
	S        float64 `yaml:"s"`
	V        float64 `yaml:"v"`
}

// EffectSpec describes one effect layer within a cue. Durations are in
// seconds. Fields that do not apply to the chosen type are ignored.
type EffectSpec struct {
	Device   string    `yaml:"device"`
	Type     string    `yaml:"type"`
	Blocking bool      `yaml:"blocking,omitempty"`
	Color    ColorSpec `yaml:"color"`

	// Shared options
	Speed   float64 `yaml:"speed,omitempty"`
	Reverse bool    `yaml:"reverse,omitempty"`
	Gamma   float64 `yaml:"gamma,omitempty"`
	Delay   float64 `yaml:"delay,omitempty"`
	Dither  float64 `yaml:"dither,omitempty"`

	// static
	Level float64  `yaml:"level,omitempty"`
	Hold  *float64 `yaml:"hold,omitempty"` // nil holds forever

	// fades, breathing cap, chase cap
	Duration float64 `yaml:"duration,omitempty"`

	// breathing
	Cycle         float64 `yaml:"cycle,omitempty"`
	MinBrightness float64 `yaml:"min_brightness,omitempty"`
	MaxBrightness float64 `yaml:"max_brightness,omitempty"`
	OnDuration    float64 `yaml:"on_duration,omitempty"`
	OffDuration   float64 `yaml:"off_duration,omitempty"`
	Transition    float64 `yaml:"transition,omitempty"`

	// chase / chase_ramp
	Width        int     `yaml:"width,omitempty"`
	Loop         bool    `yaml:"loop,omitempty"`
	LoopInterval float64 `yaml:"loop_interval,omitempty"`

	// chase_ramp
	InitialSpeed float64 `yaml:"initial_speed,omitempty"`
	Acceleration float64 `yaml:"acceleration,omitempty"`
	MaxSpeed     float64 `yaml:"max_speed,omitempty"`
	Flicker      float64 `yaml:"flicker,omitempty"`

	// liquid_fill
	WavefrontWidth int `yaml:"wavefront_width,omitempty"`
}

// Known effect type names.
const (
	TypeStatic      = "static"
	TypeFadeIn      = "fade_in"
	TypeFadeToBlack = "fade_to_black"
	TypeBreathing   = "breathing"
	TypeChase       = "chase"
	TypeChaseRamp   = "chase_ramp"
	TypeLiquidFill  = "liquid_fill"
)

// Cue is one step of the show. When the cue starts, the devices it touches
// are cleared (all devices if ClearAll is set) and its effects layered on.
type Cue struct {
	Name     string       `yaml:"name"`
	ClearAll bool         `yaml:"clear_all,omitempty"`
	Effects  []EffectSpec `yaml:"effects"`
}

// Definition is a full declarative show.
type Definition struct {
	Name    string       `yaml:"name"`
	Devices []DeviceSpec `yaml:"devices"`
	Cues    []Cue        `yaml:"cues"`
}

// Load reads and validates a show definition from a YAML file.
func Load(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("show: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML show definition.
func Parse(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("show: parsing definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks cross-references and effect types.
func (d *Definition) Validate() error {
	if len(d.Cues) == 0 {
		return fmt.Errorf("show %q: no cues", d.Name)
	}

	devices := make(map[string]bool, len(d.Devices))
	for _, dev := range d.Devices {
		if dev.ID == "" {
			return fmt.Errorf("show %q: device with empty id", d.Name)
		}
		if devices[dev.ID] {
			return fmt.Errorf("show %q: duplicate device id %q", d.Name, dev.ID)
		}
		devices[dev.ID] = true
	}

	for _, cue := range d.Cues {
		for _, spec := range cue.Effects {
			if !devices[spec.Device] {
				return fmt.Errorf("show %q: cue %q references unknown device %q", d.Name, cue.Name, spec.Device)
			}
			switch spec.Type {
			case TypeStatic, TypeFadeIn, TypeFadeToBlack, TypeBreathing,
				TypeChase, TypeChaseRamp, TypeLiquidFill:
			default:
				return fmt.Errorf("show %q: cue %q has unknown effect type %q", d.Name, cue.Name, spec.Type)
			}
		}
	}
	return nil
}

// TouchedDevices returns the device IDs the cue layers effects onto.
func (c *Cue) TouchedDevices() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, spec := range c.Effects {
		if !seen[spec.Device] {
			seen[spec.Device] = true
			ids = append(ids, spec.Device)
		}
	}
	return ids
}

package show

// DefaultDefinition returns the built-in startup show used when no show
// file is configured: a liquid fill across the cable strimmer, comet
// chases over the RAM sticks, a fade to black and a persistent idle glow.
func DefaultDefinition() *Definition {
	hold := -1.0
	return &Definition{
		Name: "startup",
		Devices: []DeviceSpec{
			{ID: "strimmer", Name: "D_LED1 Bottom", DeviceIndex: 0, ZoneIndex: 0, LEDCount: 27},
			{ID: "fans", Name: "D_LED2 Top", DeviceIndex: 0, ZoneIndex: 1, LEDCount: 24},
			{ID: "dram0", Name: "DRAM Stick 0", DeviceIndex: 1, ZoneIndex: -1, LEDCount: 8},
			{ID: "dram1", Name: "DRAM Stick 1", DeviceIndex: 2, ZoneIndex: -1, LEDCount: 8},
		},
		Cues: []Cue{
			{
				Name: "liquid-fill",
				Effects: []EffectSpec{
					{
						Device:         "strimmer",
						Type:           TypeLiquidFill,
						Blocking:       true,
						Speed:          5.0,
						WavefrontWidth: 7,
						Color:          ColorSpec{H: 0.05, S: 1.0},
					},
				},
			},
			{
				Name: "main-show",
				Effects: []EffectSpec{
					{
						Device: "strimmer",
						Type:   TypeStatic,
						Color:  ColorSpec{H: 0.05, S: 1.0},
					},
					{
						Device:   "dram0",
						Type:     TypeChase,
						Blocking: true,
						Speed:    20,
						Width:    3,
						Reverse:  true,
						Color: ColorSpec{Stops: []StopSpec{
							{Position: 0.0, H: 0.0, S: 0.0, V: 1.0},
							{Position: 1.0, H: 0.05, S: 1.0, V: 1.0},
						}},
					},
					{
						Device:   "dram1",
						Type:     TypeChase,
						Blocking: true,
						Speed:    20,
						Width:    3,
						Reverse:  true,
						Delay:    0.3,
						Color: ColorSpec{Stops: []StopSpec{
							{Position: 0.0, H: 0.0, S: 0.0, V: 1.0},
							{Position: 1.0, H: 0.05, S: 1.0, V: 1.0},
						}},
					},
				},
			},
			{
				Name:     "fade-out",
				ClearAll: true,
				Effects: []EffectSpec{
					{Device: "strimmer", Type: TypeFadeToBlack, Blocking: true, Duration: 2.0, Color: ColorSpec{H: 0.05, S: 1.0}},
					{Device: "dram0", Type: TypeFadeToBlack, Blocking: true, Duration: 2.0, Color: ColorSpec{H: 0.05, S: 1.0}},
					{Device: "dram1", Type: TypeFadeToBlack, Blocking: true, Duration: 2.0, Color: ColorSpec{H: 0.05, S: 1.0}},
				},
			},
			{
				Name:     "idle",
				ClearAll: true,
				Effects: []EffectSpec{
					{
						Device: "strimmer",
						Type:   TypeStatic,
						Hold:   &hold,
						Color:  ColorSpec{Preset: "ocean-shimmer", Scroll: 0.05},
					},
					{
						Device: "fans",
						Type:   TypeBreathing,
						Cycle:  6.0,
						Color:  ColorSpec{Preset: "ocean-bands"},
					},
				},
			},
		},
	}
}

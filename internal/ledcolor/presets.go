package ledcolor

// Built-in gradient presets. These are seeded into the preset library on
// first startup and remain available even when the database is empty.

// PresetStops returns the stop list for a built-in preset by name, or nil
// if the name is unknown.
func PresetStops(name string) []Stop {
	stops, ok := builtinPresets[name]
	if !ok {
		return nil
	}
	out := make([]Stop, len(stops))
	copy(out, stops)
	return out
}

// PresetNames returns the names of all built-in presets.
func PresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	return names
}

var builtinPresets = map[string][]Stop{
	// Symmetrical gradient with a bright cyan core and deep blue edges.
	"ocean-bands": {
		{Position: 0.0, Color: HSV{H: 0.6, S: 1.0, V: 0.5}},
		{Position: 0.4, Color: HSV{H: 0.5, S: 1.0, V: 1.0}},
		{Position: 0.6, Color: HSV{H: 0.5, S: 1.0, V: 1.0}},
		{Position: 1.0, Color: HSV{H: 0.6, S: 1.0, V: 0.5}},
	},
	// Flows from deep blue through cyan to bright green.
	"tropical-waters": {
		{Position: 0.0, Color: HSV{H: 0.66, S: 1.0, V: 1.0}},
		{Position: 0.5, Color: HSV{H: 0.5, S: 1.0, V: 1.0}},
		{Position: 1.0, Color: HSV{H: 0.33, S: 1.0, V: 1.0}},
	},
	// Alternating dark and light bands; shimmers when scrolled.
	"ocean-shimmer": {
		{Position: 0.0, Color: HSV{H: 0.55, S: 0.8, V: 0.4}},
		{Position: 0.25, Color: HSV{H: 0.5, S: 1.0, V: 1.0}},
		{Position: 0.5, Color: HSV{H: 0.55, S: 0.8, V: 0.4}},
		{Position: 0.75, Color: HSV{H: 0.33, S: 1.0, V: 1.0}},
		{Position: 1.0, Color: HSV{H: 0.55, S: 0.8, V: 0.4}},
	},
	// Dim embers at the edges, bright red core.
	"flame": {
		{Position: 0.0, Color: HSV{H: 0.043, S: 1.0, V: 0.7}},
		{Position: 0.4, Color: HSV{H: 0.0, S: 1.0, V: 1.0}},
		{Position: 0.6, Color: HSV{H: 0.0, S: 1.0, V: 1.0}},
		{Position: 1.0, Color: HSV{H: 0.043, S: 1.0, V: 0.7}},
	},
}

package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/coursemap/pkg/errors"
)

// DefaultStrategy is the preset used when none is configured.
const DefaultStrategy = "linear"

var presets = map[string]func() Strategy{
	"linear":      func() Strategy { return NewLinear() },
	"arc":         func() Strategy { return NewArc() },
	"arc-compact": func() Strategy { return NewCompactArc() },
	"circular":    func() Strategy { return NewCircular() },
	"fan":         func() Strategy { return NewFan() },
	"radial":      func() Strategy { return NewRadial() },
}

var descriptions = map[string]string{
	"linear":      "vertical stack, levels 3.0 apart, nodes centered 2.0 apart",
	"arc":         "horizontal stack with a parabolic bend (curvature 0.3)",
	"arc-compact": "horizontal arc, node spacing shrinks on well-connected levels",
	"circular":    "half-circle arcs, radius 5.0 + 4.0 per level",
	"fan":         "upward fan, span grows with level size up to 108°",
	"radial":      "full circles, radius 2.0 + 2.5 per level, clockwise from 90°",
}

// Preset returns a fresh strategy with the named preset's defaults.
func Preset(name string) (Strategy, error) {
	if f, ok := presets[name]; ok {
		return f(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStrategy,
		"unknown layout strategy %q (available: %v)", name, Names())
}

// Presets resolves several preset names at once, failing on the first
// unknown one.
func Presets(names ...string) ([]Strategy, error) {
	out := make([]Strategy, len(names))
	for i, name := range names {
		s, err := Preset(name)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Describe returns a one-line description of a preset, or "" if unknown.
func Describe(name string) string { return descriptions[name] }

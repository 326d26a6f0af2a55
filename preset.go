package supershape

import (
	"strings"
)

// Preset is a named pair of Superformula parameters.
type Preset struct {
	Name string
	Long Params
	Lat  Params
}

var (
	sphere    = Params{0.01, 1, 1, 0.1, 0.01, 10}
	roundCube = Params{4, 1, 1, 10, 10, 10}
	flower    = Params{7, 1, 1, 0.2, 1.7, 1.7}
)

var presets = []Preset{
	{"Default", flower, flower},
	{"Starfish", Params{7, 1, 1, 0.2, 1.48, 1.48}, Params{1.95, 1, 1, 0.2, 1.12, 1.01}},
	{"Clover", Params{7.93, 1, 1, 0.10, 6.35, -0.23}, Params{4, -0.05, -0.05, 1, -0.28, 1}},
	{"SharkTooth", Params{2.63, 1.03, 1.05, 0.29, 1.48, 1.48}, Params{-1.90, 1.31, 1.78, 0.20, 0.64, 0.95}},
	{"Sphere", sphere, sphere},
	{"RoundCube", roundCube, roundCube},
	{"Flower", flower, flower},
	{"Cone", Params{4, 1, 1, 100, 1, 1}, Params{4, 1, 1, 1, 1, 1}},
}

// Presets returns the built-in presets in a fixed order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset returns the preset with the given name. Names are matched
// case-insensitively.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

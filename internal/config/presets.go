package config

import "sort"

func box(id string, pos, vel float64) BodyConfig {
	return BodyConfig{ID: id, Position: pos, Velocity: vel, Mass: DefaultMass, Radius: DefaultHalfSize}
}

var Presets = map[string]*Scenario{
	"two-box": {
		Name: "two-box", LowerBound: 0, UpperBound: 600, SubSteps: 14, Timestep: 1, Frames: 600,
		Bodies: []BodyConfig{box("b", 400, 0), box("a", 480, 0)},
		Springs: []SpringConfig{
			{A: "a", B: "b", Stiffness: 1e-2, RestingLength: 70},
		},
	},
	"collide": {
		Name: "collide", LowerBound: 0, UpperBound: 600, SubSteps: 14, Timestep: 1, Frames: 300,
		Bodies: []BodyConfig{
			box("a", 100, 4),
			{ID: "b", Position: 300, Velocity: -2, Mass: 20, Radius: DefaultHalfSize},
		},
	},
	"drop": {
		Name: "drop", LowerBound: 0, UpperBound: 600, SubSteps: 14, Timestep: 1, Gravity: 0.1, Frames: 600,
		Bodies: []BodyConfig{box("a", 100, 0)},
	},
	"cradle": {
		Name: "cradle", LowerBound: 0, UpperBound: 600, SubSteps: 20, Timestep: 1, Frames: 400,
		Bodies: []BodyConfig{box("a", 100, 3), box("b", 300, 0), box("c", 312, 0), box("d", 324, 0)},
	},
	"chain": {
		Name: "chain", LowerBound: 0, UpperBound: 600, SubSteps: 14, Timestep: 1, Gravity: 0.02, Frames: 800,
		Bodies: []BodyConfig{
			box("a", 100, 0), box("b", 160, 0), box("c", 220, 0), box("d", 280, 0), box("e", 330, 0),
		},
		Springs: []SpringConfig{
			{A: "a", B: "b", Stiffness: 0.05, RestingLength: 60},
			{A: "b", B: "c", Stiffness: 0.05, RestingLength: 60},
			{A: "c", B: "d", Stiffness: 0.05, RestingLength: 60},
			{A: "d", B: "e", Stiffness: 0.05, RestingLength: 60},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	return s.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

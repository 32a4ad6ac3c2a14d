package config

import (
	"sort"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/trajectory"
)

// Capsule is a 4 m wide blunt capsule outline with its heat shield up.
func Capsule() []aero.Surface {
	return []aero.Surface{
		{A: dynamo.V(-2, 1), B: dynamo.V(2, 1)},
		{A: dynamo.V(-2, 1), B: dynamo.V(-2, -1)},
		{A: dynamo.V(2, 1), B: dynamo.V(2, -1)},
		{A: dynamo.V(-2, -1), B: dynamo.V(2, -1)},
	}
}

// Lander is a squat airless lander with splayed legs.
func Lander() []aero.Surface {
	return []aero.Surface{
		{A: dynamo.V(-1, 0.5), B: dynamo.V(1, 0.5)},
		{A: dynamo.V(-1, 0.5), B: dynamo.V(-1.8, -1)},
		{A: dynamo.V(1, 0.5), B: dynamo.V(1.8, -1)},
	}
}

func vehicle(name string, surfaces []aero.Surface, mass, x, y, vx, vy float64, thermal *trajectory.Thermal) trajectory.Vehicle {
	return trajectory.Vehicle{
		Name:     name,
		Position: dynamo.V(x, y),
		Velocity: dynamo.V(vx, vy),
		Mass:     mass,
		Surfaces: surfaces,
		Thermal:  thermal,
	}
}

const (
	earthR = 6.371e6
	marsR  = 3.3895e6
	moonR  = 1.7374e6
	rockR  = 2.5e5
)

var Presets = map[string]map[string]*Config{
	"earth": {
		"leo": {
			Body: "earth", StepSize: ptr(0.1),
			Vehicle: vehicle("capsule", Capsule(), 5000, 0, earthR+120e3, 7500, -150,
				&trajectory.Thermal{Temperature: 20, ExposedSurface: 3}),
		},
		"skip": {
			Body: "earth", StepSize: ptr(0.5),
			Vehicle: vehicle("capsule", Capsule(), 5000, 0, earthR+120e3, 8500, -300,
				&trajectory.Thermal{Temperature: 20, ExposedSurface: 3}),
		},
		"ballistic": {
			Body: "earth", StepSize: ptr(0.1), Angle: 90,
			Vehicle: vehicle("capsule", Capsule(), 5000, 0, earthR+120e3, 7500, -400,
				&trajectory.Thermal{Temperature: 20, ExposedSurface: 3}),
		},
	},
	"mars": {
		"entry": {
			Body: "mars", StepSize: ptr(0.1),
			Vehicle: vehicle("aeroshell", Capsule(), 900, 0, marsR+125e3, 5500, -300,
				&trajectory.Thermal{Temperature: 0, ExposedSurface: 4}),
		},
	},
	"moon": {
		"drop": {
			Body: "moon", StepSize: ptr(0.1),
			Vehicle: vehicle("lander", Lander(), 1500, 0, moonR+1, 0, -10, nil),
		},
		"descent": {
			Body: "moon", StepSize: ptr(0.5),
			Vehicle: vehicle("lander", Lander(), 1500, 0, moonR+15e3, 1600, 0, nil),
		},
		"escape": {
			Body: "moon", StepSize: ptr(1.0),
			Vehicle: vehicle("lander", Lander(), 1500, 0, moonR+10e3, 0, 3000, nil),
		},
	},
	"asteroid": {
		"hop": {
			Body: "asteroid", StepSize: ptr(1.0),
			Vehicle: vehicle("probe", Lander(), 50, 0, rockR+500, 5, 2, nil),
		},
	},
}

func GetPreset(body, preset string) *Config {
	bodyPresets, ok := Presets[body]
	if !ok {
		return nil
	}
	cfg, ok := bodyPresets[preset]
	if !ok {
		return nil
	}
	c := cfg.Clone()
	c.Name = body + "/" + preset
	return c
}

func ptr[T any](v T) *T { return &v }

func ListPresets(body string) []string {
	bodyPresets, ok := Presets[body]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(bodyPresets))
	for name := range bodyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

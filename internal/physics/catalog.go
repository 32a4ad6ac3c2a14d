package physics

import (
	"fmt"
	"sort"
)

var catalog = map[string]*Planet{
	"earth": {
		Code: "earth", R: 6.371e6, Mu: 3.986004418e14,
		Atmosphere: &Atmosphere{Height: 100e3, SurfaceDensity: 1.225, ScaleHeight: 8500},
		Shock:      ShockModel{Gain: 0.0025, Onset: 300},
	},
	"mars": {
		Code: "mars", R: 3.3895e6, Mu: 4.282837e13,
		Atmosphere: &Atmosphere{Height: 80e3, SurfaceDensity: 0.020, ScaleHeight: 11100},
		Shock:      ShockModel{Gain: 0.0025, Onset: 250},
	},
	"moon": {
		Code: "moon", R: 1.7374e6, Mu: 4.9048695e12,
	},
	"asteroid": {
		Code: "asteroid", R: 2.5e5, Mu: 1.3e9,
	},
}

// Lookup returns a private copy of the named catalog body.
func Lookup(name string) (*Planet, error) {
	p, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown body: %s", name)
	}
	return p.Clone(), nil
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

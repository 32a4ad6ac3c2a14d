package trajectory

import (
	"math"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// uniformBody is an airless body whose gravity is a constant pull along -Y.
type uniformBody struct {
	r, g float64
}

func (u uniformBody) Name() string                              { return "uniform" }
func (u uniformBody) Radius() float64                           { return u.r }
func (u uniformBody) GravParam() float64                        { return u.g * u.r * u.r }
func (u uniformBody) HasAtmosphere() bool                       { return false }
func (u uniformBody) AtmosphereHeight() float64                 { return 0 }
func (u uniformBody) Density(float64) float64                   { return 0 }
func (u uniformBody) Gravity(dynamo.Vec2) dynamo.Vec2           { return dynamo.V(0, -u.g) }
func (u uniformBody) ShockTemperature(_, _ dynamo.Vec2) float64 { return 0 }

func capsule() []aero.Surface {
	return []aero.Surface{
		{A: dynamo.V(-2, 1), B: dynamo.V(2, 1)},
		{A: dynamo.V(-2, 1), B: dynamo.V(-2, -1)},
		{A: dynamo.V(2, 1), B: dynamo.V(2, -1)},
		{A: dynamo.V(-2, -1), B: dynamo.V(2, -1)},
	}
}

func mustBody(name string) *physics.Planet {
	b, err := physics.Lookup(name)
	if err != nil {
		panic(err)
	}
	return b
}

func mustSnapshot(v Vehicle) Snapshot {
	s, err := NewSnapshot(v, 0)
	if err != nil {
		panic(err)
	}
	return s
}

// earthEntry is a capsule entering at 120 km with 7.5 km/s.
func earthEntry() (Snapshot, physics.Body) {
	earth := mustBody("earth")
	v := Vehicle{
		Name:     "capsule",
		Position: dynamo.V(0, earth.Radius()+120e3),
		Velocity: dynamo.V(7500, -150),
		Mass:     5000,
		Surfaces: capsule(),
		Thermal:  &Thermal{Temperature: 20, ExposedSurface: 3},
	}
	return mustSnapshot(v), earth
}

func settingsWith(dt float64, maxSteps int) Settings {
	s := DefaultSettings()
	s.StepSize = dt
	s.MaxSteps = maxSteps
	return s
}

func argmax(n int, f func(int) float64) int {
	best, bestV := 0, math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := f(i); v > bestV {
			best, bestV = i, v
		}
	}
	return best
}

type nanContributor struct{}

func (nanContributor) Acceleration(physics.Body, dynamo.Vec2, dynamo.Vec2) dynamo.Vec2 {
	return dynamo.V(math.NaN(), 0)
}

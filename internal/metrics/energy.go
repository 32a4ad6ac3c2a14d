package metrics

import (
	"math"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// SpecificEnergy is the orbital energy per unit mass, v²/2 - mu/r.
func SpecificEnergy(b physics.Body, p, v dynamo.Vec2) float64 {
	r := p.Len()
	if r < dynamo.Epsilon {
		return math.Inf(-1)
	}
	return 0.5*v.LenSq() - b.GravParam()/r
}

// EnergyDrift tracks the largest relative change in specific orbital
// energy from the first sample. Without drag this is integrator error;
// with drag it is the fraction of energy dissipated.
type EnergyDrift struct {
	name     string
	body     physics.Body
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(b physics.Body) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		body: b,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	energy := SpecificEnergy(e.body, s.Position, s.Velocity)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial == 0 || math.IsInf(energy, 0) {
		return
	}
	drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

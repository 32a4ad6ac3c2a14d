package trajectory

import (
	"math"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
)

// Thermal describes the most heated thermal component of a vehicle.
type Thermal struct {
	Temperature    float64 `yaml:"temperature" json:"temperature"`
	ExposedSurface float64 `yaml:"exposed_surface" json:"exposed_surface"`
}

// Vehicle is the host-side description a snapshot is taken from.
type Vehicle struct {
	Name     string         `yaml:"name" json:"name"`
	Position dynamo.Vec2    `yaml:"position" json:"position"`
	Velocity dynamo.Vec2    `yaml:"velocity" json:"velocity"`
	Mass     float64        `yaml:"mass" json:"mass"`
	Surfaces []aero.Surface `yaml:"surfaces" json:"surfaces"`
	Thermal  *Thermal       `yaml:"thermal,omitempty" json:"thermal,omitempty"`
}

// Snapshot is the immutable initial state of one prediction.
type Snapshot struct {
	Vehicle         string
	Position        dynamo.Vec2
	Velocity        dynamo.Vec2
	Mass            float64
	Angle           float64
	DragCoefficient float64
	HeatingConstant float64
	Temperature     float64
}

// NewSnapshot validates the vehicle and derives the drag coefficient from
// the surfaces exposed at the given entry angle (radians).
func NewSnapshot(v Vehicle, angle float64) (Snapshot, error) {
	bad := func(field, reason string) (Snapshot, error) {
		return Snapshot{}, &dynamo.InputError{Field: field, Reason: reason, Wrapped: dynamo.ErrInvalidSnapshot}
	}
	switch {
	case !v.Position.IsValid():
		return bad("position", "must be finite")
	case v.Position.Len() < dynamo.Epsilon:
		return bad("position", "must not be the body centre")
	case !v.Velocity.IsValid():
		return bad("velocity", "must be finite")
	case !(v.Mass > 0) || math.IsInf(v.Mass, 0):
		return bad("mass", "must be positive and finite")
	case math.IsNaN(angle) || math.IsInf(angle, 0):
		return bad("angle", "must be finite")
	}

	exposed := aero.Exposed(v.Surfaces, angle)
	snap := Snapshot{
		Vehicle:         v.Name,
		Position:        v.Position,
		Velocity:        v.Velocity,
		Mass:            v.Mass,
		Angle:           angle,
		DragCoefficient: aero.DragCoefficient(exposed, v.Mass),
		HeatingConstant: 1,
	}
	if v.Thermal != nil {
		snap.HeatingConstant = aero.HeatingConstant(v.Thermal.ExposedSurface)
		snap.Temperature = initialTemperature(v.Thermal.Temperature)
	}
	return snap, nil
}

func initialTemperature(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return 0
	}
	return t
}

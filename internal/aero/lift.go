package aero

import (
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// Lift is the gliding-surface contribution c * rho * |v|^2 along the
// direction perpendicular to -v.
type Lift struct {
	Coefficient float64
}

func (l Lift) Acceleration(b physics.Body, p, v dynamo.Vec2) dynamo.Vec2 {
	if l.Coefficient == 0 {
		return dynamo.Vec2{}
	}
	rho := b.Density(p.Len() - b.Radius())
	if rho == 0 {
		return dynamo.Vec2{}
	}
	return v.Scale(-1).Normalize().Perp().Scale(l.Coefficient * rho * v.LenSq())
}

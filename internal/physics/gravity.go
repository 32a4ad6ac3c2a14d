package physics

import "github.com/san-kum/reentry/internal/dynamo"

// PointMass returns the acceleration toward the origin from a body with
// gravitational parameter mu. Positions closer than dynamo.Epsilon to the
// centre get zero acceleration instead of a division by zero.
func PointMass(mu float64, p dynamo.Vec2) dynamo.Vec2 {
	r2 := p.LenSq()
	r := p.Len()
	if r < dynamo.Epsilon {
		return dynamo.Vec2{}
	}
	return p.Scale(-mu / (r2 * r))
}

// SurfaceGravity is mu / R^2.
func SurfaceGravity(b Body) float64 {
	return b.GravParam() / (b.Radius() * b.Radius())
}

// Package aero computes the aerodynamic properties of a vehicle that stay
// fixed for one prediction: which drag surfaces face the flow, the drag
// coefficient they add up to, and the thermal response to shock heating.
package aero

import (
	"math"
	"sort"

	"github.com/san-kum/reentry/internal/dynamo"
)

// DragScale multiplies the aggregate drag force before it is divided by
// mass.
const DragScale = 1.5

const minWidth = 1e-9

// Surface is a drag-relevant edge of the vehicle outline, in the vehicle
// frame with the nose toward +Y.
type Surface struct {
	A dynamo.Vec2 `yaml:"a" json:"a"`
	B dynamo.Vec2 `yaml:"b" json:"b"`
}

func (s Surface) Rotate(angle float64) Surface {
	return Surface{A: s.A.Rotate(angle), B: s.B.Rotate(angle)}
}

// Width is the extent of the surface across a flow arriving along -Y.
func (s Surface) Width() float64 {
	return math.Abs(s.B.X - s.A.X)
}

// Incidence is the cosine between the surface normal and the flow.
func (s Surface) Incidence() float64 {
	d := s.B.Sub(s.A)
	l := d.Len()
	if l < dynamo.Epsilon {
		return 0
	}
	return math.Abs(d.X) / l
}

func (s Surface) spans(x float64) bool {
	lo, hi := s.A.X, s.B.X
	if lo > hi {
		lo, hi = hi, lo
	}
	return x > lo && x < hi
}

func (s Surface) yAt(x float64) float64 {
	t := (x - s.A.X) / (s.B.X - s.A.X)
	return s.A.Y + t*(s.B.Y-s.A.Y)
}

func (s Surface) clip(x0, x1 float64) Surface {
	return Surface{A: dynamo.V(x0, s.yAt(x0)), B: dynamo.V(x1, s.yAt(x1))}
}

// Exposed rotates the surfaces by -angle and returns the pieces of the
// upper envelope, i.e. those not hidden behind a higher surface over the
// same x-span.
func Exposed(surfaces []Surface, angle float64) []Surface {
	rotated := make([]Surface, 0, len(surfaces))
	xs := make([]float64, 0, 2*len(surfaces))
	for _, s := range surfaces {
		r := s.Rotate(-angle)
		if r.Width() < minWidth {
			continue
		}
		rotated = append(rotated, r)
		xs = append(xs, r.A.X, r.B.X)
	}
	sort.Float64s(xs)

	var exposed []Surface
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		if x1-x0 < minWidth {
			continue
		}
		mid := 0.5 * (x0 + x1)
		best := -1
		bestY := math.Inf(-1)
		for j, s := range rotated {
			if !s.spans(mid) {
				continue
			}
			if y := s.yAt(mid); y > bestY {
				best, bestY = j, y
			}
		}
		if best >= 0 {
			exposed = append(exposed, rotated[best].clip(x0, x1))
		}
	}
	return exposed
}

// AggregateDragForce sums width * cos^2(incidence) over exposed pieces,
// the Newtonian-flow pressure drag of the outline.
func AggregateDragForce(exposed []Surface) float64 {
	force := 0.0
	for _, s := range exposed {
		c := s.Incidence()
		force += s.Width() * c * c
	}
	return force
}

// DragCoefficient is DragScale * AggregateDragForce / mass, or zero when
// nothing is exposed.
func DragCoefficient(exposed []Surface, mass float64) float64 {
	if len(exposed) == 0 || mass <= 0 {
		return 0
	}
	return DragScale * AggregateDragForce(exposed) / mass
}

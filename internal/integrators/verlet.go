package integrators

import "github.com/san-kum/reentry/internal/dynamo"

// SplitVerlet is the predictor's reference scheme. The position update is
// velocity-Verlet, but the new acceleration is evaluated at the
// pre-update position and velocity:
//
//	p' = p + v dt + a dt^2/2
//	a' = A(p, v)
//	v' = v + (a + a') dt/2
//
// It is exact in a uniform field and first order when the field varies
// along the path. Landing points are defined against this ordering.
type SplitVerlet struct{}

func NewSplitVerlet() *SplitVerlet {
	return &SplitVerlet{}
}

func (s *SplitVerlet) Name() string { return "verlet-pre" }

func (s *SplitVerlet) Step(accel AccelFunc, p, v, a dynamo.Vec2, dt float64) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2) {
	next := p.Add(v.Scale(dt)).Add(a.Scale(0.5 * dt * dt))
	aNew := accel(p, v)
	vNew := v.Add(a.Add(aNew).Scale(0.5 * dt))
	return next, vNew, aNew
}

// Verlet is canonical velocity-Verlet. Velocity-dependent forces are
// evaluated with the old velocity at the new position.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (vv *Verlet) Name() string { return "verlet" }

func (vv *Verlet) Step(accel AccelFunc, p, v, a dynamo.Vec2, dt float64) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2) {
	next := p.Add(v.Scale(dt)).Add(a.Scale(0.5 * dt * dt))
	aNew := accel(next, v)
	vNew := v.Add(a.Add(aNew).Scale(0.5 * dt))
	return next, vNew, aNew
}

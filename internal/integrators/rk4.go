package integrators

import "github.com/san-kum/reentry/internal/dynamo"

// RK4 is classic fourth-order Runge-Kutta on (p, v). The carried
// acceleration is ignored on input and re-evaluated at the new state.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(accel AccelFunc, p, v, _ dynamo.Vec2, dt float64) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2) {
	half := dt * 0.5

	k1p, k1v := v, accel(p, v)

	k2p := v.Add(k1v.Scale(half))
	k2v := accel(p.Add(k1p.Scale(half)), k2p)

	k3p := v.Add(k2v.Scale(half))
	k3v := accel(p.Add(k2p.Scale(half)), k3p)

	k4p := v.Add(k3v.Scale(dt))
	k4v := accel(p.Add(k3p.Scale(dt)), k4p)

	dt6 := dt / 6.0
	pNew := p.Add(k1p.Add(k2p.Scale(2)).Add(k3p.Scale(2)).Add(k4p).Scale(dt6))
	vNew := v.Add(k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(dt6))

	return pNew, vNew, accel(pNew, vNew)
}

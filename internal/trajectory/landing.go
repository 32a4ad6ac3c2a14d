package trajectory

import (
	"math"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// LandingPoint locates a position relative to a body. Angle is in degrees
// counter-clockwise from +X; Height is Radius minus the body radius.
type LandingPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func ResolveLanding(b physics.Body, p dynamo.Vec2) LandingPoint {
	r := p.Len()
	return LandingPoint{
		X:      p.X,
		Y:      p.Y,
		Angle:  p.Angle() * 180 / math.Pi,
		Radius: r,
		Height: r - b.Radius(),
	}
}

// Landing is the outcome of a prediction that reached a terminal point.
type Landing struct {
	Point       LandingPoint       `json:"landingPoint"`
	Body        string             `json:"planet"`
	Steps       int                `json:"steps"`
	Termination dynamo.Termination `json:"-"`
	FlightTime  float64            `json:"flightTime"`
	ImpactTime  float64            `json:"impactTime"`
	Temperature float64            `json:"temperature"`
	Velocity    dynamo.Vec2        `json:"velocity"`
}

// impactTime interpolates the surface crossing linearly in altitude between
// the last two points.
func impactTime(b physics.Body, prev, last dynamo.Vec2, steps int, dt float64) float64 {
	h1 := prev.Len() - b.Radius()
	h2 := last.Len() - b.Radius()
	frac := 1.0
	if d := h1 - h2; d > dynamo.Epsilon && h1 >= 0 {
		frac = math.Min(1, h1/d)
	}
	return (float64(steps-1) + frac) * dt
}

func resolve(b physics.Body, snap Snapshot, samples []dynamo.Sample, reason dynamo.Termination, dt float64) *Landing {
	n := len(samples)
	last := samples[n-1]
	prev := snap.Position
	if n > 1 {
		prev = samples[n-2].Position
	}
	l := &Landing{
		Point:       ResolveLanding(b, last.Position),
		Body:        b.Name(),
		Steps:       n,
		Termination: reason,
		FlightTime:  last.Time,
		ImpactTime:  last.Time,
		Temperature: last.Temperature,
		Velocity:    last.Velocity,
	}
	if reason == dynamo.Impact {
		l.ImpactTime = impactTime(b, prev, last.Position, n, dt)
	}
	return l
}

package dynamo

import "math"

// Epsilon guards divisions by vector lengths.
const Epsilon = 1e-12

// Vec2 is a position, velocity or acceleration in the body-centred frame.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector, or the zero vector when v is shorter
// than Epsilon.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp rotates v by +90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Angle returns atan2(y, x) in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

package aero

import (
	"math"
	"testing"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
	"github.com/stretchr/testify/assert"
)

func TestHeatingConstant(t *testing.T) {
	assert.Equal(t, 1.0, HeatingConstant(0))
	assert.Equal(t, 1.0, HeatingConstant(-3))
	assert.Equal(t, 1.0, HeatingConstant(math.NaN()))
	assert.InDelta(t, 2.0, HeatingConstant(9), 1e-12)
}

func TestHeatingUpdate(t *testing.T) {
	h := NewHeating(DefaultHeating(), 2)

	tests := []struct {
		name       string
		temp, base float64
		dt         float64
		want       float64
	}{
		{"linear gain", 100, 600, 0.1, 100 + 2*500*0.02*0.1},
		{"runaway gain", 0, 2000, 0.1, 2 * (2000 * 2000 / 1000.0) * 0.02 * 0.1},
		{"cooling", 1000, 0, 0.1, 1000 - (10*0.02 + 1000*0.01*0.02)},
		{"cooling ignores dt", 1000, 0, 5, 1000 - (10*0.02 + 1000*0.01*0.02)},
		{"clamp at zero", 0.1, 0, 0.1, 0},
		{"cold stays cold", 0, 0, 0.1, 0},
		{"nan base cools", 50, math.NaN(), 0.1, 50 - (10*0.02 + 50*0.01*0.02)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Update(tt.temp, tt.base, tt.dt)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestHeatingCustomCooling(t *testing.T) {
	cfg := DefaultHeating()
	cfg.CoolingInterval = 0.1
	h := NewHeating(cfg, 1)

	assert.InDelta(t, 100-(10*0.1+100*0.01*0.1), h.Update(100, 0, 0.02), 1e-12)
}

func TestLift(t *testing.T) {
	earth, err := physics.Lookup("earth")
	assert.NoError(t, err)

	p := dynamo.V(0, earth.R+10e3)
	v := dynamo.V(1000, 0)

	assert.Equal(t, dynamo.Vec2{}, Lift{}.Acceleration(earth, p, v), "unset coefficient contributes nothing")

	a := Lift{Coefficient: 0.001}.Acceleration(earth, p, v)
	rho := earth.Density(10e3)
	// -v points along -X; rotated +90 degrees that is -Y
	assert.InDelta(t, 0, a.X, 1e-12)
	assert.InDelta(t, -0.001*rho*1e6, a.Y, 1e-9)
	assert.InDelta(t, 0, a.Dot(v), 1e-9, "lift is perpendicular to velocity")

	above := Lift{Coefficient: 0.001}.Acceleration(earth, dynamo.V(0, earth.R+200e3), v)
	assert.Equal(t, dynamo.Vec2{}, above)
}

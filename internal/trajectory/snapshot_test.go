package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
)

func TestNewSnapshot(t *testing.T) {
	v := Vehicle{
		Name:     "capsule",
		Position: dynamo.V(0, 7e6),
		Velocity: dynamo.V(7000, 0),
		Mass:     5000,
		Surfaces: capsule(),
		Thermal:  &Thermal{Temperature: 35, ExposedSurface: 9},
	}

	snap, err := NewSnapshot(v, 0)
	require.NoError(t, err)

	assert.Equal(t, "capsule", snap.Vehicle)
	assert.InDelta(t, aero.DragScale*4/5000, snap.DragCoefficient, 1e-15)
	assert.InDelta(t, 2.0, snap.HeatingConstant, 1e-12)
	assert.Equal(t, 35.0, snap.Temperature)
}

func TestNewSnapshotNoThermal(t *testing.T) {
	snap, err := NewSnapshot(Vehicle{Position: dynamo.V(0, 7e6), Mass: 1}, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.Temperature)
	assert.Equal(t, 1.0, snap.HeatingConstant)
	assert.Equal(t, 0.0, snap.DragCoefficient, "no surfaces means no drag")
}

func TestNewSnapshotUnheatedTemperature(t *testing.T) {
	for _, temp := range []float64{math.Inf(-1), math.NaN(), -40} {
		v := Vehicle{Position: dynamo.V(0, 7e6), Mass: 1, Thermal: &Thermal{Temperature: temp}}
		snap, err := NewSnapshot(v, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, snap.Temperature, "temperature %v", temp)
	}
}

func TestNewSnapshotAngle(t *testing.T) {
	v := Vehicle{Position: dynamo.V(0, 7e6), Mass: 1, Surfaces: capsule()}

	edge, err := NewSnapshot(v, math.Pi/2)
	require.NoError(t, err)
	flat, err := NewSnapshot(v, 0)
	require.NoError(t, err)

	assert.InDelta(t, aero.DragScale*2, edge.DragCoefficient, 1e-9, "side walls face the flow")
	assert.InDelta(t, aero.DragScale*4, flat.DragCoefficient, 1e-9)
}

func TestNewSnapshotRejects(t *testing.T) {
	base := Vehicle{Position: dynamo.V(0, 7e6), Velocity: dynamo.V(1, 0), Mass: 10}

	tests := []struct {
		name  string
		field string
		edit  func(v *Vehicle)
	}{
		{"zero mass", "mass", func(v *Vehicle) { v.Mass = 0 }},
		{"negative mass", "mass", func(v *Vehicle) { v.Mass = -1 }},
		{"nan mass", "mass", func(v *Vehicle) { v.Mass = math.NaN() }},
		{"centre", "position", func(v *Vehicle) { v.Position = dynamo.Vec2{} }},
		{"nan position", "position", func(v *Vehicle) { v.Position.X = math.NaN() }},
		{"inf velocity", "velocity", func(v *Vehicle) { v.Velocity.Y = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.edit(&v)
			_, err := NewSnapshot(v, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, dynamo.ErrInvalidSnapshot)

			var ie *dynamo.InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name string
		edit func(s *Settings)
	}{
		{"zero dt", func(s *Settings) { s.StepSize = 0 }},
		{"nan dt", func(s *Settings) { s.StepSize = math.NaN() }},
		{"zero budget", func(s *Settings) { s.MaxSteps = 0 }},
		{"negative cooling", func(s *Settings) { s.Heating.CoolingConstant = -1 }},
		{"negative gain", func(s *Settings) { s.Heating.GainRate = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.edit(&s)
			assert.ErrorIs(t, s.Validate(), dynamo.ErrInvalidSettings)
		})
	}
}

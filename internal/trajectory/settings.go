package trajectory

import (
	"math"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/integrators"
)

const (
	DefaultStepSize = 0.1
	DefaultMaxSteps = 10000
)

type Settings struct {
	StepSize   float64            `yaml:"step_size" mapstructure:"step_size"`
	MaxSteps   int                `yaml:"max_steps" mapstructure:"max_steps"`
	Integrator string             `yaml:"integrator" mapstructure:"integrator"`
	Heating    aero.HeatingConfig `yaml:"heating" mapstructure:"heating"`
}

func DefaultSettings() Settings {
	return Settings{
		StepSize:   DefaultStepSize,
		MaxSteps:   DefaultMaxSteps,
		Integrator: integrators.DefaultName,
		Heating:    aero.DefaultHeating(),
	}
}

func (s Settings) Validate() error {
	bad := func(field, reason string) error {
		return &dynamo.InputError{Field: field, Reason: reason, Wrapped: dynamo.ErrInvalidSettings}
	}
	switch {
	case !(s.StepSize > 0) || math.IsInf(s.StepSize, 0):
		return bad("step_size", "must be positive and finite")
	case s.MaxSteps <= 0:
		return bad("max_steps", "must be positive")
	case s.Heating.CoolingInterval < 0 || s.Heating.CoolingConstant < 0 || s.Heating.CoolingFactor < 0:
		return bad("heating", "cooling constants must not be negative")
	case s.Heating.GainRate < 0 || s.Heating.RunawayThreshold < 0:
		return bad("heating", "gain constants must not be negative")
	}
	return nil
}

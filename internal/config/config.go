// Package config loads prediction scenarios and runtime settings.
package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/trajectory"
)

const (
	DefaultBody     = "earth"
	DefaultMass     = 5000.0
	DefaultAltitude = 120e3
)

// Config is one prediction scenario. A nil StepSize or MaxSteps and an empty
// Integrator fall back to the runtime settings; set values are used as given.
type Config struct {
	Name       string             `yaml:"name,omitempty"`
	Body       string             `yaml:"body"`
	Integrator string             `yaml:"integrator,omitempty"`
	StepSize   *float64           `yaml:"step_size,omitempty"`
	MaxSteps   *int               `yaml:"max_steps,omitempty"`
	Angle      float64            `yaml:"angle"`
	Lift       float64            `yaml:"lift,omitempty"`
	Vehicle    trajectory.Vehicle `yaml:"vehicle"`
}

func DefaultConfig() *Config {
	return &Config{
		Body: DefaultBody,
		Vehicle: trajectory.Vehicle{
			Name:     "capsule",
			Position: dynamo.V(0, 6.371e6+DefaultAltitude),
			Velocity: dynamo.V(7500, -150),
			Mass:     DefaultMass,
			Surfaces: Capsule(),
			Thermal:  &trajectory.Thermal{Temperature: 20, ExposedSurface: 3},
		},
	}
}

// Load reads a scenario on top of DefaultConfig. A file that describes a
// vehicle replaces the default vehicle entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Vehicle yaml.Node `yaml:"vehicle"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if !doc.Vehicle.IsZero() {
		cfg.Vehicle = trajectory.Vehicle{}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AngleRadians converts the scenario's entry angle from degrees.
func (c *Config) AngleRadians() float64 {
	return c.Angle * math.Pi / 180
}

func (c *Config) SetStepSize(dt float64) { c.StepSize = &dt }

func (c *Config) SetMaxSteps(n int) { c.MaxSteps = &n }

// Clone returns a copy sharing no memory with c.
func (c *Config) Clone() *Config {
	out := *c
	if c.StepSize != nil {
		out.SetStepSize(*c.StepSize)
	}
	if c.MaxSteps != nil {
		out.SetMaxSteps(*c.MaxSteps)
	}
	if c.Vehicle.Surfaces != nil {
		out.Vehicle.Surfaces = append([]aero.Surface(nil), c.Vehicle.Surfaces...)
	}
	if c.Vehicle.Thermal != nil {
		th := *c.Vehicle.Thermal
		out.Vehicle.Thermal = &th
	}
	return &out
}

// Apply overlays the scenario's explicit values on base. Set values are not
// checked here; the result still has to pass Settings.Validate.
func (c *Config) Apply(base trajectory.Settings) trajectory.Settings {
	if c.StepSize != nil {
		base.StepSize = *c.StepSize
	}
	if c.MaxSteps != nil {
		base.MaxSteps = *c.MaxSteps
	}
	if c.Integrator != "" {
		base.Integrator = c.Integrator
	}
	return base
}

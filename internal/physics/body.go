package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/reentry/internal/dynamo"
)

// Body is the read-only view of a celestial body used by a simulation.
type Body interface {
	Name() string
	Radius() float64
	GravParam() float64
	HasAtmosphere() bool
	AtmosphereHeight() float64
	// Density returns air density at altitude above the surface; it is
	// non-negative and zero above the atmosphere.
	Density(altitude float64) float64
	Gravity(p dynamo.Vec2) dynamo.Vec2
	// ShockTemperature is the host's base shock-heating temperature for a
	// vehicle at p moving with v.
	ShockTemperature(p, v dynamo.Vec2) float64
}

type Planet struct {
	Code       string      `yaml:"name" json:"name"`
	R          float64     `yaml:"radius" json:"radius"`
	Mu         float64     `yaml:"grav_param" json:"grav_param"`
	Atmosphere *Atmosphere `yaml:"atmosphere,omitempty" json:"atmosphere,omitempty"`
	Shock      ShockModel  `yaml:"shock" json:"shock"`
}

func (p *Planet) Name() string       { return p.Code }
func (p *Planet) Radius() float64    { return p.R }
func (p *Planet) GravParam() float64 { return p.Mu }

func (p *Planet) HasAtmosphere() bool {
	return p.Atmosphere != nil && p.Atmosphere.Height > 0
}

func (p *Planet) AtmosphereHeight() float64 {
	if !p.HasAtmosphere() {
		return 0
	}
	return p.Atmosphere.Height
}

func (p *Planet) Density(altitude float64) float64 {
	if !p.HasAtmosphere() {
		return 0
	}
	return p.Atmosphere.Density(altitude)
}

func (p *Planet) Gravity(pos dynamo.Vec2) dynamo.Vec2 {
	return PointMass(p.Mu, pos)
}

func (p *Planet) ShockTemperature(pos, vel dynamo.Vec2) float64 {
	return p.Shock.Temperature(p.Density(pos.Len()-p.R), vel.Len())
}

// Validate reports the first unusable parameter as an InputError.
func (p *Planet) Validate() error {
	bad := func(field, reason string) error {
		return &dynamo.InputError{Field: field, Reason: reason, Wrapped: dynamo.ErrInvalidBody}
	}
	switch {
	case p.Code == "":
		return bad("name", "must not be empty")
	case !(p.R > 0) || math.IsInf(p.R, 0):
		return bad("radius", "must be positive and finite")
	case !(p.Mu >= 0) || math.IsInf(p.Mu, 0):
		return bad("grav_param", "must be non-negative and finite")
	}
	if a := p.Atmosphere; a != nil {
		switch {
		case a.Height < 0:
			return bad("atmosphere.height", "must not be negative")
		case a.SurfaceDensity < 0:
			return bad("atmosphere.surface_density", "must not be negative")
		case a.Height > 0 && !(a.ScaleHeight > 0):
			return bad("atmosphere.scale_height", "must be positive")
		}
	}
	if p.Shock.Gain < 0 || p.Shock.Onset < 0 {
		return bad("shock", "gain and onset must not be negative")
	}
	return nil
}

func (p *Planet) GetParams() map[string]float64 {
	params := map[string]float64{
		"radius":      p.R,
		"grav_param":  p.Mu,
		"shock_gain":  p.Shock.Gain,
		"shock_onset": p.Shock.Onset,
	}
	if p.Atmosphere != nil {
		params["atmosphere_height"] = p.Atmosphere.Height
		params["surface_density"] = p.Atmosphere.SurfaceDensity
		params["scale_height"] = p.Atmosphere.ScaleHeight
	}
	return params
}

func (p *Planet) SetParam(name string, value float64) error {
	switch name {
	case "radius":
		p.R = value
	case "grav_param":
		p.Mu = value
	case "shock_gain":
		p.Shock.Gain = value
	case "shock_onset":
		p.Shock.Onset = value
	case "atmosphere_height", "surface_density", "scale_height":
		if p.Atmosphere == nil {
			p.Atmosphere = &Atmosphere{}
		}
		switch name {
		case "atmosphere_height":
			p.Atmosphere.Height = value
		case "surface_density":
			p.Atmosphere.SurfaceDensity = value
		default:
			p.Atmosphere.ScaleHeight = value
		}
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// Clone returns a deep copy, so catalog entries can be tuned per run.
func (p *Planet) Clone() *Planet {
	c := *p
	if p.Atmosphere != nil {
		a := *p.Atmosphere
		c.Atmosphere = &a
	}
	return &c
}

// IsInsideAtmosphere reports whether radius lies below the top of the
// body's atmosphere. Airless bodies have no inside.
func IsInsideAtmosphere(b Body, radius float64) bool {
	if !b.HasAtmosphere() {
		return false
	}
	return radius < b.Radius()+b.AtmosphereHeight()
}

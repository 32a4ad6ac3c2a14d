package physics

import "math"

// Atmosphere is an exponential density profile shifted so that density
// falls continuously to zero at Height.
type Atmosphere struct {
	Height         float64 `yaml:"height" json:"height"`
	SurfaceDensity float64 `yaml:"surface_density" json:"surface_density"`
	ScaleHeight    float64 `yaml:"scale_height" json:"scale_height"`
}

func (a *Atmosphere) Density(altitude float64) float64 {
	if a.Height <= 0 || altitude >= a.Height || a.SurfaceDensity <= 0 {
		return 0
	}
	if altitude < 0 {
		altitude = 0
	}
	top := math.Exp(-a.Height / a.ScaleHeight)
	rho := a.SurfaceDensity * (math.Exp(-altitude/a.ScaleHeight) - top) / (1 - top)
	if rho < 0 || math.IsNaN(rho) {
		return 0
	}
	return rho
}

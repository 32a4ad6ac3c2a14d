// Package physics provides the celestial body models consumed by the
// trajectory predictor.
//
// A [Body] supplies everything the numerical core reads from the host:
// surface radius, gravitational parameter, the atmosphere model and the
// shock-heating oracle. [Planet] is the concrete implementation:
//
//   - [Atmosphere]: exponential density profile, zero at and above its height
//   - [PointMass]: Newtonian gravity toward the body centre
//   - [ShockModel]: base shock temperature from density and speed
//
// Bodies are immutable once built; simulations only read them, so one Body
// may back any number of concurrent runs.
//
//	earth, _ := physics.Lookup("earth")
//	if physics.IsInsideAtmosphere(earth, r) {
//	    rho := earth.Density(r - earth.Radius())
//	}
package physics

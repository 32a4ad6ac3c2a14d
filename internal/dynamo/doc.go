// Package dynamo provides the primitives shared by the trajectory predictor.
//
// The package defines the value types and contracts used across the
// numerical core:
//
//   - [Vec2]: body-centred 2D vector in double precision
//   - [Sample]: one emitted trajectory point with its telemetry
//   - [Observer], [Metric]: per-step hooks run on the simulating goroutine
//   - [Termination]: why a simulation stopped stepping
//
// # Errors
//
// Failures are reported through the sentinel errors in errors.go and the
// [InputError] and [SimulationError] wrappers; callers match them with
// errors.Is and errors.As.
//
// # Thread Safety
//
// Values in this package are immutable or copied on hand-off. A simulation
// that owns a State never shares it, so nothing here needs locking.
package dynamo

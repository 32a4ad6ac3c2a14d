// Package trajectory predicts the unpowered flight of a vehicle to the
// surface of a body.
//
// A [Snapshot] freezes the vehicle once: position, velocity, the drag
// coefficient at a fixed entry angle, the heating constant and the
// starting temperature. A [Simulation] owns the mutable state and advances
// it one fixed step per [Simulation.Step]. A [Runner] drives fresh
// simulations to termination:
//
//	runner, _ := trajectory.NewRunner(body, snap, trajectory.DefaultSettings())
//	landing, err := runner.RunToCompletion(ctx)
//	switch {
//	case errors.Is(err, dynamo.ErrNonConvergence):
//	case errors.Is(err, dynamo.ErrWillNotImpact):
//	}
//
// [Runner.RunAsync] runs the same loop on its own goroutine and returns the
// points produced before the context was cancelled.
//
// # Thread Safety
//
// A Simulation is confined to one goroutine. Runners build a new
// Simulation per run and only read the Body and Snapshot, so one Runner
// may serve concurrent runs.
package trajectory

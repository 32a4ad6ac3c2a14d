package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory prediction.
var (
	// ErrInvalidSnapshot indicates a vehicle snapshot that cannot be simulated.
	ErrInvalidSnapshot = errors.New("dynamo: invalid vehicle snapshot")

	// ErrInvalidBody indicates a body with unusable physical parameters.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrInvalidSettings indicates a non-positive step size or step budget.
	ErrInvalidSettings = errors.New("dynamo: invalid simulation settings")

	// ErrNonConvergence indicates the step budget ran out before impact or escape.
	ErrNonConvergence = errors.New("dynamo: simulation did not converge within maximum steps")

	// ErrWillNotImpact indicates a trajectory receding from an airless body.
	ErrWillNotImpact = errors.New("dynamo: trajectory will not impact body surface")

	// ErrUnstable indicates a step produced NaN or Inf.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrNoTrajectory indicates the vehicle was already at or below the surface.
	ErrNoTrajectory = errors.New("dynamo: no trajectory, vehicle is at or below the surface")
)

// InputError describes the snapshot or body field that failed validation.
type InputError struct {
	Field   string
	Reason  string
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Wrapped, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step     int
	Position Vec2
	Wrapped  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

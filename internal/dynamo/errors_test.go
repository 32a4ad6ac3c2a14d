package dynamo

import (
	"errors"
	"testing"
)

func TestInputError(t *testing.T) {
	err := error(&InputError{Field: "mass", Reason: "must be positive", Wrapped: ErrInvalidSnapshot})

	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Error("InputError should unwrap to ErrInvalidSnapshot")
	}
	expected := "dynamo: invalid vehicle snapshot: mass: must be positive"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	var ie *InputError
	if !errors.As(err, &ie) || ie.Field != "mass" {
		t.Errorf("errors.As failed: %v", ie)
	}
}

func TestSimulationError(t *testing.T) {
	err := error(&SimulationError{Step: 150, Wrapped: ErrNonConvergence})
	expected := "step 150: dynamo: simulation did not converge within maximum steps"
	if err.Error() != expected {
		t.Errorf("SimulationError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrNonConvergence) {
		t.Error("SimulationError should unwrap to ErrNonConvergence")
	}
}

func TestTerminationString(t *testing.T) {
	tests := map[Termination]string{
		Running:          "running",
		Impact:           "impact",
		AtmosphereEscape: "atmosphere-escape",
		StepBudget:       "step-budget",
		Diverged:         "diverged",
		Receding:         "receding",
		Termination(99):  "unknown",
	}
	for term, want := range tests {
		if got := term.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(term), got, want)
		}
	}
}

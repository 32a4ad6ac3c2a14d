package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/reentry/internal/dynamo"
)

// AccelFunc evaluates the total acceleration at a position and velocity.
type AccelFunc func(p, v dynamo.Vec2) dynamo.Vec2

// Stepper advances position, velocity and the carried acceleration by one
// fixed step. The returned acceleration is carried into the next call.
type Stepper interface {
	Name() string
	Step(accel AccelFunc, p, v, a dynamo.Vec2, dt float64) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2)
}

const DefaultName = "verlet-pre"

var steppers = map[string]func() Stepper{
	"verlet-pre": func() Stepper { return NewSplitVerlet() },
	"verlet":     func() Stepper { return NewVerlet() },
	"rk4":        func() Stepper { return NewRK4() },
}

func New(name string) (Stepper, error) {
	if name == "" {
		name = DefaultName
	}
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/integrators"
	"github.com/san-kum/reentry/internal/metrics"
	"github.com/san-kum/reentry/internal/physics"
)

// Registry resolves the names used by scenarios and the command line.
type Registry struct {
	bodies      map[string]func() physics.Body
	integrators map[string]func() integrators.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		bodies:      make(map[string]func() physics.Body),
		integrators: make(map[string]func() integrators.Stepper),
	}

	for _, name := range physics.Names() {
		r.bodies[name] = func() physics.Body {
			b, _ := physics.Lookup(name)
			return b
		}
	}

	r.integrators["verlet-pre"] = func() integrators.Stepper { return integrators.NewSplitVerlet() }
	r.integrators["verlet"] = func() integrators.Stepper { return integrators.NewVerlet() }
	r.integrators["rk4"] = func() integrators.Stepper { return integrators.NewRK4() }

	return r
}

// RegisterBody adds or replaces a body, e.g. one loaded from a scenario.
func (r *Registry) RegisterBody(name string, fn func() physics.Body) {
	r.bodies[name] = fn
}

func (r *Registry) GetBody(name string) (physics.Body, error) {
	fn, ok := r.bodies[name]
	if !ok {
		return nil, &dynamo.InputError{
			Field:   "body",
			Reason:  fmt.Sprintf("unknown body %q", name),
			Wrapped: dynamo.ErrInvalidBody,
		}
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (integrators.Stepper, error) {
	if name == "" {
		name = integrators.DefaultName
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, &dynamo.InputError{
			Field:   "integrator",
			Reason:  fmt.Sprintf("unknown integrator %q", name),
			Wrapped: dynamo.ErrInvalidSettings,
		}
	}
	return fn(), nil
}

func (r *Registry) ListBodies() []string {
	return sortedKeys(r.bodies)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) DefaultMetrics(b physics.Body) []dynamo.Metric {
	return metrics.Standard(b)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

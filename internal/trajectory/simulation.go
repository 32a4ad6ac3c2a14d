package trajectory

import (
	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/integrators"
	"github.com/san-kum/reentry/internal/physics"
)

// Contributor adds an acceleration term on top of gravity and drag.
type Contributor interface {
	Acceleration(b physics.Body, p, v dynamo.Vec2) dynamo.Vec2
}

// State is the mutable part of a simulation.
type State struct {
	Position          dynamo.Vec2
	Velocity          dynamo.Vec2
	Acceleration      dynamo.Vec2
	Temperature       float64
	EnteredAtmosphere bool
	Step              int
}

type Option func(*Simulation)

// WithStepper overrides the integrator named in the settings.
func WithStepper(s integrators.Stepper) Option {
	return func(sim *Simulation) { sim.stepper = s }
}

func WithContributor(c Contributor) Option {
	return func(sim *Simulation) { sim.extra = append(sim.extra, c) }
}

// Simulation advances one snapshot a fixed step at a time. It is not safe
// for concurrent use.
type Simulation struct {
	body     physics.Body
	snap     Snapshot
	settings Settings
	stepper  integrators.Stepper
	heating  *aero.Heating
	extra    []Contributor

	state  State
	last   dynamo.Sample
	reason dynamo.Termination
}

func NewSimulation(body physics.Body, snap Snapshot, settings Settings, opts ...Option) (*Simulation, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		body:     body,
		snap:     snap,
		settings: settings,
		heating:  aero.NewHeating(settings.Heating, snap.HeatingConstant),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stepper == nil {
		st, err := integrators.New(settings.Integrator)
		if err != nil {
			return nil, &dynamo.InputError{Field: "integrator", Reason: err.Error(), Wrapped: dynamo.ErrInvalidSettings}
		}
		s.stepper = st
	}

	s.state = State{
		Position:    snap.Position,
		Velocity:    snap.Velocity,
		Temperature: snap.Temperature,
	}
	s.state.Acceleration = s.Acceleration(snap.Position, snap.Velocity)
	return s, nil
}

// Acceleration is gravity plus quadratic drag plus any contributors.
func (s *Simulation) Acceleration(p, v dynamo.Vec2) dynamo.Vec2 {
	return s.body.Gravity(p).Add(s.Load(p, v))
}

// Load is the acceleration from drag and contributors alone.
func (s *Simulation) Load(p, v dynamo.Vec2) dynamo.Vec2 {
	var a dynamo.Vec2
	if s.snap.DragCoefficient > 0 && s.body.HasAtmosphere() {
		rho := s.body.Density(p.Len() - s.body.Radius())
		if rho > 0 {
			a = a.Sub(v.Normalize().Scale(s.snap.DragCoefficient * rho * v.LenSq()))
		}
	}
	for _, c := range s.extra {
		a = a.Add(c.Acceleration(s.body, p, v))
	}
	return a
}

// Step advances by one step and returns the new position. It returns false
// once the simulation has terminated; Reason then reports why.
func (s *Simulation) Step() (dynamo.Vec2, bool) {
	if s.reason != dynamo.Running {
		return s.state.Position, false
	}

	r := s.state.Position.Len()
	inside := physics.IsInsideAtmosphere(s.body, r)
	switch {
	case s.state.Step >= s.settings.MaxSteps:
		s.reason = dynamo.StepBudget
	case r <= s.body.Radius():
		s.reason = dynamo.Impact
	case s.state.EnteredAtmosphere && !inside:
		s.reason = dynamo.AtmosphereEscape
	}
	if s.reason != dynamo.Running {
		return s.state.Position, false
	}
	if inside {
		s.state.EnteredAtmosphere = true
	}

	dt := s.settings.StepSize
	p, v, a := s.stepper.Step(s.Acceleration, s.state.Position, s.state.Velocity, s.state.Acceleration, dt)
	if !p.IsValid() || !v.IsValid() || !a.IsValid() {
		s.reason = dynamo.Diverged
		return s.state.Position, false
	}

	s.state.Position, s.state.Velocity, s.state.Acceleration = p, v, a
	s.state.Step++
	if s.body.HasAtmosphere() {
		s.state.Temperature = s.heating.Update(s.state.Temperature, s.body.ShockTemperature(p, v), dt)
	}

	alt := p.Len() - s.body.Radius()
	s.last = dynamo.Sample{
		Step:         s.state.Step,
		Time:         float64(s.state.Step) * dt,
		Position:     p,
		Velocity:     v,
		Acceleration: a,
		Load:         s.Load(p, v),
		Altitude:     alt,
		Density:      s.body.Density(alt),
		Temperature:  s.state.Temperature,
	}
	return p, true
}

func (s *Simulation) Reason() dynamo.Termination { return s.reason }

func (s *Simulation) State() State { return s.state }

// Sample returns the record of the most recent step.
func (s *Simulation) Sample() dynamo.Sample { return s.last }

func (s *Simulation) Snapshot() Snapshot { return s.snap }

func (s *Simulation) Settings() Settings { return s.settings }

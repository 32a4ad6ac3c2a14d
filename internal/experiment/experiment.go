// Package experiment turns a scenario and runtime settings into runnable
// predictions.
package experiment

import (
	"context"
	"log/slog"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
	"github.com/san-kum/reentry/internal/trajectory"
)

type Option func(*options)

type options struct {
	registry  *Registry
	logger    *slog.Logger
	observers []dynamo.Observer
	metrics   bool
}

func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithObserver(obs dynamo.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// WithoutMetrics skips the standard metrics, for runs that share an
// Experiment across goroutines.
func WithoutMetrics() Option {
	return func(o *options) { o.metrics = false }
}

// Experiment is a validated scenario bound to a body and a runner.
type Experiment struct {
	cfg      *config.Config
	settings trajectory.Settings
	body     physics.Body
	snap     trajectory.Snapshot
	runner   *trajectory.Runner
	metrics  []dynamo.Metric
}

// New resolves the scenario and fails fast on an unknown body or
// integrator, an invalid vehicle or invalid settings. Scenario values
// override base.
func New(cfg *config.Config, base trajectory.Settings, opts ...Option) (*Experiment, error) {
	o := options{metrics: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	body, err := o.registry.GetBody(cfg.Body)
	if err != nil {
		return nil, err
	}
	settings := cfg.Apply(base)
	stepper, err := o.registry.GetIntegrator(settings.Integrator)
	if err != nil {
		return nil, err
	}
	snap, err := trajectory.NewSnapshot(cfg.Vehicle, cfg.AngleRadians())
	if err != nil {
		return nil, err
	}

	simOpts := []trajectory.Option{trajectory.WithStepper(stepper)}
	if cfg.Lift != 0 {
		simOpts = append(simOpts, trajectory.WithContributor(aero.Lift{Coefficient: cfg.Lift}))
	}
	runOpts := []trajectory.RunnerOption{
		trajectory.WithLogger(o.logger.With("scenario", cfg.Name, "integrator", stepper.Name())),
		trajectory.WithSimulationOptions(simOpts...),
	}
	for _, obs := range o.observers {
		runOpts = append(runOpts, trajectory.WithObserver(obs))
	}

	e := &Experiment{cfg: cfg, settings: settings, body: body, snap: snap}
	if o.metrics {
		e.metrics = o.registry.DefaultMetrics(body)
		for _, m := range e.metrics {
			runOpts = append(runOpts, trajectory.WithMetric(m))
		}
	}

	e.runner, err = trajectory.NewRunner(body, snap, settings, runOpts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (*trajectory.Result, error) {
	return e.runner.Run(ctx)
}

func (e *Experiment) RunAsync(ctx context.Context) <-chan trajectory.Trace {
	return e.runner.RunAsync(ctx)
}

func (e *Experiment) Runner() *trajectory.Runner { return e.runner }

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Body() physics.Body { return e.body }

func (e *Experiment) Snapshot() trajectory.Snapshot { return e.snap }

func (e *Experiment) Settings() trajectory.Settings { return e.settings }

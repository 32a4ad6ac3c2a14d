package trajectory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// EscapeFactor bounds airless flights: a vehicle moving away from the body
// beyond this multiple of its starting radius will not impact.
const EscapeFactor = 2.0

// Result is the full record of one run. Samples holds every position the
// simulation produced, in order.
type Result struct {
	Samples     []dynamo.Sample
	Termination dynamo.Termination
	Landing     *Landing
	Metrics     map[string]float64
	Elapsed     time.Duration
}

func (r *Result) Points() []dynamo.Vec2 {
	pts := make([]dynamo.Vec2, len(r.Samples))
	for i, s := range r.Samples {
		pts[i] = s.Position
	}
	return pts
}

// Trace is delivered once by RunAsync. Canceled reports a run stopped by
// its context; Samples then holds the prefix produced so far.
type Trace struct {
	Samples     []dynamo.Sample
	Termination dynamo.Termination
	Landing     *Landing
	Canceled    bool
	Err         error
}

func (t Trace) Points() []dynamo.Vec2 {
	return (&Result{Samples: t.Samples}).Points()
}

type RunnerOption func(*Runner)

func WithObserver(o dynamo.Observer) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithMetric registers a metric that is reset before and read after every
// run. Metrics are shared state; do not use them with concurrent runs.
func WithMetric(m dynamo.Metric) RunnerOption {
	return func(r *Runner) { r.metrics = append(r.metrics, m) }
}

func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

func WithSimulationOptions(opts ...Option) RunnerOption {
	return func(r *Runner) { r.simOpts = append(r.simOpts, opts...) }
}

type Runner struct {
	body      physics.Body
	snap      Snapshot
	settings  Settings
	simOpts   []Option
	observers []dynamo.Observer
	metrics   []dynamo.Metric
	logger    *slog.Logger
}

type validator interface {
	Validate() error
}

func NewRunner(body physics.Body, snap Snapshot, settings Settings, opts ...RunnerOption) (*Runner, error) {
	if body == nil {
		return nil, &dynamo.InputError{Field: "body", Reason: "required", Wrapped: dynamo.ErrInvalidBody}
	}
	if v, ok := body.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		body:     body,
		snap:     snap,
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) Body() physics.Body { return r.body }

func (r *Runner) Snapshot() Snapshot { return r.snap }

func (r *Runner) Settings() Settings { return r.settings }

// RunToCompletion runs a fresh simulation and returns where it ended.
func (r *Runner) RunToCompletion(ctx context.Context) (*Landing, error) {
	res, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}
	return res.Landing, nil
}

// Run runs a fresh simulation to termination. On error the returned Result
// still carries the samples produced before the failure.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r.logger.Debug("prediction started",
		"body", r.body.Name(),
		"vehicle", r.snap.Vehicle,
		"step_size", r.settings.StepSize,
		"max_steps", r.settings.MaxSteps)
	res, err := r.run(ctx)
	res.Elapsed = time.Since(start)

	attrs := []any{
		"body", r.body.Name(),
		"vehicle", r.snap.Vehicle,
		"steps", len(res.Samples),
		"termination", res.Termination.String(),
		"elapsed", res.Elapsed,
	}
	switch {
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		r.logger.Debug("prediction cancelled", attrs...)
	case err != nil:
		r.logger.Warn("prediction failed", append(attrs, "error", err)...)
	default:
		r.logger.Info("prediction finished", append(attrs,
			"angle", res.Landing.Point.Angle,
			"height", res.Landing.Point.Height)...)
	}
	return res, err
}

// RunAsync runs a fresh simulation on its own goroutine. The channel
// receives exactly one Trace and is then closed. Cancelling ctx stops the
// run before its next step and is not reported as an error.
func (r *Runner) RunAsync(ctx context.Context) <-chan Trace {
	out := make(chan Trace, 1)
	go func() {
		defer close(out)
		res, err := r.Run(ctx)
		t := Trace{
			Samples:     res.Samples,
			Termination: res.Termination,
			Landing:     res.Landing,
			Err:         err,
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			t.Canceled = true
			t.Err = nil
		}
		out <- t
	}()
	return out
}

func (r *Runner) run(ctx context.Context) (*Result, error) {
	res := &Result{
		Samples: make([]dynamo.Sample, 0, min(r.settings.MaxSteps, 4096)),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}
	defer func() {
		for _, m := range r.metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}()

	sim, err := NewSimulation(r.body, r.snap, r.settings, r.simOpts...)
	if err != nil {
		return res, err
	}

	limit := EscapeFactor * r.snap.Position.Len()
	airless := !r.body.HasAtmosphere()

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		p, ok := sim.Step()
		if !ok {
			break
		}
		sample := sim.Sample()
		res.Samples = append(res.Samples, sample)
		for _, m := range r.metrics {
			m.Observe(sample)
		}
		for _, o := range r.observers {
			o.OnStep(sample)
		}

		if airless && p.Len() > limit && p.Dot(sample.Velocity) > 0 {
			res.Termination = dynamo.Receding
			return res, &dynamo.SimulationError{Step: sample.Step, Position: p, Wrapped: dynamo.ErrWillNotImpact}
		}
	}

	res.Termination = sim.Reason()
	state := sim.State()
	switch res.Termination {
	case dynamo.StepBudget:
		return res, &dynamo.SimulationError{Step: state.Step, Position: state.Position, Wrapped: dynamo.ErrNonConvergence}
	case dynamo.Diverged:
		return res, &dynamo.SimulationError{Step: state.Step + 1, Position: state.Position, Wrapped: dynamo.ErrUnstable}
	}
	if len(res.Samples) == 0 {
		return res, &dynamo.SimulationError{Step: 0, Position: state.Position, Wrapped: dynamo.ErrNoTrajectory}
	}

	res.Landing = resolve(r.body, r.snap, res.Samples, res.Termination, r.settings.StepSize)
	return res, nil
}

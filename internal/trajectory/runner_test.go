package trajectory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

func TestRunnerShortDropOnAirlessBody(t *testing.T) {
	moon := mustBody("moon")
	snap := mustSnapshot(Vehicle{
		Position: dynamo.V(0, moon.Radius()+1),
		Velocity: dynamo.V(0, -10),
		Mass:     100,
	})

	r, err := NewRunner(moon, snap, DefaultSettings())
	require.NoError(t, err)

	landing, err := r.RunToCompletion(t.Context())
	require.NoError(t, err)

	assert.Equal(t, dynamo.Impact, landing.Termination)
	assert.Equal(t, 1, landing.Steps)
	assert.Equal(t, "moon", landing.Body)
	assert.InDelta(t, 0, landing.Point.Height, 0.05)
	assert.InDelta(t, moon.Radius(), landing.Point.Radius, 0.05)
	assert.InDelta(t, 90, landing.Point.Angle, 1e-9)
	assert.Greater(t, landing.ImpactTime, 0.0)
	assert.LessOrEqual(t, landing.ImpactTime, landing.FlightTime)
}

func TestRunnerFreeFall(t *testing.T) {
	const (
		r = 6.371e6
		h = 100.0
		g = 9.81
	)
	body := uniformBody{r: r, g: g}
	snap := mustSnapshot(Vehicle{Position: dynamo.V(0, r+h), Mass: 1})
	exact := math.Sqrt(2 * h / g)
	vImpact := math.Sqrt(2 * g * h)

	var errs []float64
	for _, dt := range []float64{0.2, 0.1, 0.05, 0.025} {
		runner, err := NewRunner(body, snap, settingsWith(dt, 100000))
		require.NoError(t, err)

		res, err := runner.Run(t.Context())
		require.NoError(t, err)

		for _, s := range res.Samples {
			want := r + h - 0.5*g*s.Time*s.Time
			require.InDelta(t, want, s.Position.Y, 1e-5, "sample %d", s.Step)
		}

		diff := math.Abs(res.Landing.ImpactTime - exact)
		assert.LessOrEqual(t, diff, g*dt*dt/(2*vImpact), "dt=%v", dt)
		assert.LessOrEqual(t, math.Abs(res.Landing.FlightTime-exact), dt+1e-9, "dt=%v", dt)
		errs = append(errs, diff)
	}
	assert.Less(t, errs[len(errs)-1], errs[0]/16)
}

func TestRunnerWillNotImpact(t *testing.T) {
	moon := mustBody("moon")
	snap := mustSnapshot(Vehicle{
		Position: dynamo.V(0, moon.Radius()+10e3),
		Velocity: dynamo.V(0, 3000),
		Mass:     100,
	})
	r, err := NewRunner(moon, snap, settingsWith(1, 10000))
	require.NoError(t, err)

	res, err := r.Run(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, dynamo.ErrWillNotImpact)
	assert.Nil(t, res.Landing)
	assert.Equal(t, dynamo.Receding, res.Termination)

	limit := EscapeFactor * snap.Position.Len()
	n := len(res.Samples)
	require.Greater(t, n, 1)
	assert.Less(t, n, 10000)
	assert.Greater(t, res.Samples[n-1].Position.Len(), limit)
	assert.LessOrEqual(t, res.Samples[n-2].Position.Len(), limit)

	var se *dynamo.SimulationError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, n, se.Step)
}

func TestRunnerNonConvergence(t *testing.T) {
	moon := mustBody("moon")
	rad := moon.Radius() + 100e3
	snap := mustSnapshot(Vehicle{
		Position: dynamo.V(0, rad),
		Velocity: dynamo.V(math.Sqrt(moon.GravParam()/rad), 0),
		Mass:     100,
	})
	r, err := NewRunner(moon, snap, settingsWith(1, 500))
	require.NoError(t, err)

	landing, err := r.RunToCompletion(t.Context())
	assert.ErrorIs(t, err, dynamo.ErrNonConvergence)
	assert.Nil(t, landing, "no landing point is fabricated")

	res, err := r.Run(t.Context())
	assert.ErrorIs(t, err, dynamo.ErrNonConvergence)
	assert.Len(t, res.Samples, 500)
	assert.Equal(t, dynamo.StepBudget, res.Termination)
}

func TestRunnerAtmosphereEscape(t *testing.T) {
	earth := mustBody("earth")
	snap := mustSnapshot(Vehicle{
		Position: dynamo.V(0, earth.Radius()+120e3),
		Velocity: dynamo.V(8500, -300),
		Mass:     5000,
		Surfaces: capsule(),
	})
	r, err := NewRunner(earth, snap, settingsWith(0.5, 10000))
	require.NoError(t, err)

	landing, err := r.RunToCompletion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, dynamo.AtmosphereEscape, landing.Termination)
	assert.GreaterOrEqual(t, landing.Point.Height, earth.AtmosphereHeight())
	assert.Equal(t, landing.FlightTime, landing.ImpactTime)
}

func TestRunnerAlreadyBelowSurface(t *testing.T) {
	moon := mustBody("moon")
	snap := mustSnapshot(Vehicle{Position: dynamo.V(0, moon.Radius()-5), Mass: 1})
	r, err := NewRunner(moon, snap, DefaultSettings())
	require.NoError(t, err)

	_, err = r.RunToCompletion(t.Context())
	assert.ErrorIs(t, err, dynamo.ErrNoTrajectory)
}

func TestRunnerUnstable(t *testing.T) {
	body := uniformBody{r: 1000, g: 1}
	snap := mustSnapshot(Vehicle{Position: dynamo.V(0, 2000), Mass: 1})
	r, err := NewRunner(body, snap, DefaultSettings(), WithSimulationOptions(WithContributor(nanContributor{})))
	require.NoError(t, err)

	res, err := r.Run(t.Context())
	assert.ErrorIs(t, err, dynamo.ErrUnstable)
	assert.Empty(t, res.Samples)
	assert.Equal(t, dynamo.Diverged, res.Termination)
}

func TestNewRunnerRejects(t *testing.T) {
	snap, earth := earthEntry()

	_, err := NewRunner(nil, snap, DefaultSettings())
	assert.ErrorIs(t, err, dynamo.ErrInvalidBody)

	bad := earth.(*physics.Planet).Clone()
	bad.R = -1
	_, err = NewRunner(bad, snap, DefaultSettings())
	assert.ErrorIs(t, err, dynamo.ErrInvalidBody)

	_, err = NewRunner(earth, snap, Settings{})
	assert.ErrorIs(t, err, dynamo.ErrInvalidSettings)
}

func TestRunnerObserversSeeEverySample(t *testing.T) {
	snap, earth := earthEntry()
	var seen []int
	r, err := NewRunner(earth, snap, settingsWith(0.5, 10000),
		WithObserver(dynamo.ObserverFunc(func(s dynamo.Sample) { seen = append(seen, s.Step) })))
	require.NoError(t, err)

	res, err := r.Run(t.Context())
	require.NoError(t, err)
	require.Len(t, seen, len(res.Samples))
	for i, step := range seen {
		assert.Equal(t, i+1, step)
	}
}

type countMetric struct{ n int }

func (c *countMetric) Name() string          { return "count" }
func (c *countMetric) Observe(dynamo.Sample) { c.n++ }
func (c *countMetric) Value() float64        { return float64(c.n) }
func (c *countMetric) Reset()                { c.n = 0 }

func TestRunnerMetricsResetPerRun(t *testing.T) {
	snap, earth := earthEntry()
	m := &countMetric{}
	r, err := NewRunner(earth, snap, settingsWith(0.5, 10000), WithMetric(m))
	require.NoError(t, err)

	first, err := r.Run(t.Context())
	require.NoError(t, err)
	second, err := r.Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, float64(len(first.Samples)), first.Metrics["count"])
	assert.Equal(t, first.Metrics["count"], second.Metrics["count"])
}

func TestRunAsyncCompletes(t *testing.T) {
	snap, earth := earthEntry()
	r, err := NewRunner(earth, snap, settingsWith(0.5, 10000))
	require.NoError(t, err)

	trace := <-r.RunAsync(t.Context())
	require.NoError(t, trace.Err)
	assert.False(t, trace.Canceled)
	assert.Equal(t, dynamo.Impact, trace.Termination)
	require.NotNil(t, trace.Landing)
	assert.Len(t, trace.Points(), trace.Landing.Steps)
}

func TestRunAsyncAlreadyCancelled(t *testing.T) {
	snap, earth := earthEntry()
	r, err := NewRunner(earth, snap, DefaultSettings())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ch := r.RunAsync(ctx)
	trace, open := <-ch
	require.True(t, open)
	assert.True(t, trace.Canceled)
	assert.NoError(t, trace.Err)
	assert.Empty(t, trace.Samples)

	_, open = <-ch
	assert.False(t, open, "exactly one trace is delivered")
}

func TestEnsemble(t *testing.T) {
	snap, earth := earthEntry()
	moon := mustBody("moon")

	e := NewEnsemble()
	for _, dt := range []float64{0.5, 1} {
		r, err := NewRunner(earth, snap, settingsWith(dt, 10000))
		require.NoError(t, err)
		e.Add("earth", r)
	}
	r, err := NewRunner(moon, snap, settingsWith(1, 10))
	require.NoError(t, err)
	e.Add("moon", r)

	out := e.Run(t.Context())
	require.Len(t, out, 3)
	assert.NoError(t, out[0].Err)
	assert.NoError(t, out[1].Err)
	assert.ErrorIs(t, out[2].Err, dynamo.ErrNonConvergence)
	assert.Equal(t, "moon", out[2].Label)
	assert.NotNil(t, out[2].Result)
}

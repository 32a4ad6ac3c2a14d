package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/experiment"
	"github.com/san-kum/reentry/internal/trajectory"
)

func TestParseParam(t *testing.T) {
	tests := []struct {
		in   string
		name string
		want []float64
		err  bool
	}{
		{in: "angle=0:90:45", name: "angle", want: []float64{0, 45, 90}},
		{in: "lift=0:0.3:0.1", name: "lift", want: []float64{0, 0.1, 0.2, 0.3}},
		{in: "mass=1000, 2000,4000", name: "mass", want: []float64{1000, 2000, 4000}},
		{in: "dt=0.5", name: "dt", want: []float64{0.5}},
		{in: "angle", err: true},
		{in: "angle=", err: true},
		{in: "spin=1,2", err: true},
		{in: "angle=0:10:0", err: true},
		{in: "angle=10:0:1", err: true},
		{in: "angle=a,b", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseParam(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, p.Name)
			assert.InDeltaSlice(t, tt.want, p.Values, 1e-12)
		})
	}
}

func TestApplyCopies(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := Apply(cfg, map[string]float64{"angle": 30, "lift": 0.2, "mass": 100, "dt": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 30.0, c.Angle)
	assert.Equal(t, 0.2, c.Lift)
	assert.Equal(t, 100.0, c.Vehicle.Mass)
	require.NotNil(t, c.StepSize)
	assert.Equal(t, 0.5, *c.StepSize)
	assert.Nil(t, cfg.StepSize)
	assert.Equal(t, config.DefaultMass, cfg.Vehicle.Mass)

	_, err = Apply(cfg, map[string]float64{"spin": 1})
	assert.Error(t, err)
}

func TestGridSearchSize(t *testing.T) {
	g := NewGridSearch(
		Param{Name: "angle", Values: []float64{0, 45, 90}},
		Param{Name: "lift", Values: []float64{0, 0.1}},
	)
	assert.Equal(t, 6, g.Size())
}

func TestGridSearchLightestHasLowestMaxQ(t *testing.T) {
	base := trajectory.DefaultSettings()
	base.StepSize = 0.5

	g := NewGridSearch(Param{Name: "mass", Values: []float64{20000, -1, 1000, 5000}})
	best, trials, err := g.Search(t.Context(), Builder(config.DefaultConfig(), base), "max_q")
	require.NoError(t, err)
	require.Len(t, trials, 4)

	assert.Equal(t, 1000.0, best.Params["mass"])
	assert.ErrorIs(t, trials[1].Err, dynamo.ErrInvalidSnapshot)
	assert.Less(t, trials[2].Value, trials[3].Value)
	assert.Less(t, trials[3].Value, trials[0].Value)
}

func TestGridSearchRejectsZeroStep(t *testing.T) {
	g := NewGridSearch(Param{Name: "dt", Values: []float64{0, 0.5}})
	best, trials, err := g.Search(t.Context(), Builder(config.DefaultConfig(), trajectory.DefaultSettings()), "max_q")
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.ErrorIs(t, trials[0].Err, dynamo.ErrInvalidSettings)
	require.NoError(t, trials[1].Err)
	assert.Equal(t, 0.5, best.Params["dt"])
}

func TestGridSearchNoFeasible(t *testing.T) {
	g := NewGridSearch(Param{Name: "angle", Values: []float64{0, 10}})
	fail := func(map[string]float64) (*experiment.Experiment, error) {
		return nil, errors.New("boom")
	}
	_, trials, err := g.Search(t.Context(), fail, "max_q")
	assert.ErrorIs(t, err, ErrNoFeasible)
	assert.Len(t, trials, 2)
}

func TestGridSearchUnknownMetric(t *testing.T) {
	base := trajectory.DefaultSettings()
	base.StepSize = 0.5
	g := NewGridSearch(Param{Name: "angle", Values: []float64{0}})
	_, trials, err := g.Search(t.Context(), Builder(config.DefaultConfig(), base), "nope")
	assert.ErrorIs(t, err, ErrNoFeasible)
	require.Len(t, trials, 1)
	assert.Error(t, trials[0].Err)
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	g := NewGridSearch(Param{Name: "angle", Values: []float64{0, 10}})
	_, trials, err := g.Search(ctx, Builder(config.DefaultConfig(), trajectory.DefaultSettings()), "max_q")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, trials)
}

// Package optim searches scenario parameters for the run that minimises a
// metric, e.g. the entry angle with the lowest peak temperature.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/experiment"
	"github.com/san-kum/reentry/internal/trajectory"
)

var ErrNoFeasible = errors.New("optim: no trial produced the metric")

// Param is one swept scenario parameter.
type Param struct {
	Name   string
	Values []float64
}

// ParseParam reads "name=lo:hi:step" or "name=v1,v2,...".
func ParseParam(s string) (Param, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok || name == "" || rng == "" {
		return Param{}, fmt.Errorf("invalid parameter %q: want name=lo:hi:step or name=v1,v2", s)
	}
	if _, err := setter(name); err != nil {
		return Param{}, err
	}

	if parts := strings.Split(rng, ":"); len(parts) == 3 {
		var r [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return Param{}, fmt.Errorf("invalid parameter %q: %w", s, err)
			}
			r[i] = v
		}
		lo, hi, step := r[0], r[1], r[2]
		if !(step > 0) || hi < lo {
			return Param{}, fmt.Errorf("invalid range in %q", s)
		}
		var vals []float64
		for i := 0; ; i++ {
			v := lo + float64(i)*step
			if v > hi+step*1e-9 {
				break
			}
			vals = append(vals, v)
		}
		return Param{Name: name, Values: vals}, nil
	}

	var vals []float64
	for _, p := range strings.Split(rng, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Param{}, fmt.Errorf("invalid parameter %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return Param{Name: name, Values: vals}, nil
}

func setter(name string) (func(*config.Config, float64), error) {
	switch name {
	case "angle":
		return func(c *config.Config, v float64) { c.Angle = v }, nil
	case "lift":
		return func(c *config.Config, v float64) { c.Lift = v }, nil
	case "mass":
		return func(c *config.Config, v float64) { c.Vehicle.Mass = v }, nil
	case "dt":
		return (*config.Config).SetStepSize, nil
	default:
		return nil, fmt.Errorf("unknown parameter: %s (want angle, lift, mass or dt)", name)
	}
}

// Apply returns a copy of cfg with the named parameters set.
func Apply(cfg *config.Config, params map[string]float64) (*config.Config, error) {
	c := cfg.Clone()
	for name, v := range params {
		set, err := setter(name)
		if err != nil {
			return nil, err
		}
		set(c, v)
	}
	return c, nil
}

// Builder returns a build function for Search that applies the trial's
// parameters to cfg.
func Builder(cfg *config.Config, base trajectory.Settings, opts ...experiment.Option) func(map[string]float64) (*experiment.Experiment, error) {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		c, err := Apply(cfg, params)
		if err != nil {
			return nil, err
		}
		return experiment.New(c, base, opts...)
	}
}

// Trial is one evaluated grid point. Err is set when the scenario could
// not be built or the run failed; Value is then meaningless.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	params []Param
}

func NewGridSearch(params ...Param) *GridSearch {
	return &GridSearch{params: params}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, p := range g.params {
		n *= len(p.Values)
	}
	return n
}

// Search evaluates every grid point in order and returns the trial with the
// smallest metric value among the successful ones, plus every trial.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {

	trials := make([]Trial, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &trials); err != nil {
		return Trial{}, trials, err
	}

	best := -1
	bestVal := math.Inf(1)
	for i, t := range trials {
		if t.Err == nil && t.Value < bestVal {
			best, bestVal = i, t.Value
		}
	}
	if best < 0 {
		return Trial{}, trials, ErrNoFeasible
	}
	return trials[best], trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.params) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*trials = append(*trials, evaluate(ctx, params, buildExperiment, metricName))
		return nil
	}

	param := g.params[depth]
	for _, val := range param.Values {
		current[param.Name] = val
		if err := g.searchRecursive(ctx, depth+1, current, buildExperiment, metricName, trials); err != nil {
			return err
		}
	}
	delete(current, param.Name)
	return nil
}

func evaluate(ctx context.Context, params map[string]float64, build func(map[string]float64) (*experiment.Experiment, error), metricName string) Trial {
	t := Trial{Params: params}
	exp, err := build(params)
	if err != nil {
		t.Err = err
		return t
	}
	result, err := exp.Run(ctx)
	if err != nil {
		t.Err = err
		return t
	}
	val, ok := result.Metrics[metricName]
	if !ok {
		t.Err = fmt.Errorf("metric %s not recorded", metricName)
		return t
	}
	t.Value = val
	return t
}

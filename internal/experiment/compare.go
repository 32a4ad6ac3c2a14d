package experiment

import (
	"context"
	"math"

	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/trajectory"
)

// Comparison is one integrator's outcome relative to the first in the set.
type Comparison struct {
	Integrator  string
	Result      *trajectory.Result
	Err         error
	AngleDelta  float64
	ImpactDelta float64
}

// Compare runs the scenario once per integrator, concurrently, and reports
// landing differences against the first integrator that landed.
func Compare(ctx context.Context, cfg *config.Config, base trajectory.Settings, names []string, opts ...Option) ([]Comparison, error) {
	ens := trajectory.NewEnsemble()
	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		exp, err := New(c, base, append(opts[:len(opts):len(opts)], WithoutMetrics())...)
		if err != nil {
			return nil, err
		}
		ens.Add(name, exp.Runner())
	}

	out := make([]Comparison, 0, ens.Len())
	var ref *trajectory.Landing
	for _, o := range ens.Run(ctx) {
		cmp := Comparison{Integrator: o.Label, Result: o.Result, Err: o.Err}
		if o.Err == nil && o.Result.Landing != nil {
			if ref == nil {
				ref = o.Result.Landing
			}
			cmp.AngleDelta = angleDelta(o.Result.Landing.Point.Angle, ref.Point.Angle)
			cmp.ImpactDelta = o.Result.Landing.ImpactTime - ref.ImpactTime
		}
		out = append(out, cmp)
	}
	return out, nil
}

func angleDelta(a, b float64) float64 {
	return math.Mod(a-b+540, 360) - 180
}

package automation

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/experiment"
	"github.com/san-kum/reentry/internal/trajectory"
)

// MonteCarloConfig perturbs the entry state with independent normal draws.
// FlightPathSigma is in degrees and MassSigma is a fraction of the mass.
type MonteCarloConfig struct {
	Trials          int     `yaml:"trials"`
	Seed            int64   `yaml:"seed"`
	SpeedSigma      float64 `yaml:"speed_sigma"`
	FlightPathSigma float64 `yaml:"flight_path_sigma"`
	MassSigma       float64 `yaml:"mass_sigma"`
	Workers         int     `yaml:"workers"`
}

// MonteCarloResult is one trial: the perturbed inputs and where it ended.
type MonteCarloResult struct {
	Trial      int
	Speed      float64
	FlightPath float64
	Mass       float64
	Landing    *trajectory.Landing
	Err        error
}

// RunMonteCarlo draws every trial's inputs up front from one seeded source,
// so results do not depend on scheduling, then runs them Workers at a time.
func RunMonteCarlo(ctx context.Context, scenario *config.Config, base trajectory.Settings, mc MonteCarloConfig, opts ...experiment.Option) ([]MonteCarloResult, error) {
	if mc.Trials <= 0 {
		return nil, errors.New("monte carlo: trials must be positive")
	}
	if mc.SpeedSigma < 0 || mc.FlightPathSigma < 0 || mc.MassSigma < 0 {
		return nil, errors.New("monte carlo: sigmas must be non-negative")
	}
	workers := mc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	results := make([]MonteCarloResult, mc.Trials)
	cfgs := make([]*config.Config, mc.Trials)
	v0 := scenario.Vehicle.Velocity
	for i := range results {
		dv := rng.NormFloat64() * mc.SpeedSigma
		dgamma := rng.NormFloat64() * mc.FlightPathSigma
		dm := rng.NormFloat64() * mc.MassSigma

		c := scenario.Clone()
		speed := v0.Len() + dv
		c.Vehicle.Velocity = v0.Normalize().Scale(speed).Rotate(dgamma * math.Pi / 180)
		c.Vehicle.Mass = scenario.Vehicle.Mass * (1 + dm)
		cfgs[i] = c
		results[i] = MonteCarloResult{Trial: i, Speed: speed, FlightPath: dgamma, Mass: c.Vehicle.Mass}
	}

	opts = append(opts[:len(opts):len(opts)], experiment.WithoutMetrics())
	for start := 0; start < mc.Trials; start += workers {
		if err := ctx.Err(); err != nil {
			return results[:start], err
		}
		end := min(start+workers, mc.Trials)

		ens := trajectory.NewEnsemble()
		idx := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			exp, err := experiment.New(cfgs[i], base, opts...)
			if err != nil {
				results[i].Err = err
				continue
			}
			ens.Add(cfgs[i].Name, exp.Runner())
			idx = append(idx, i)
		}
		for j, o := range ens.Run(ctx) {
			i := idx[j]
			results[i].Err = o.Err
			if o.Err == nil {
				results[i].Landing = o.Result.Landing
			}
		}
	}
	return results, nil
}

// Footprint summarises the landing angles of successful trials. Angles are
// in degrees, averaged on the circle.
type Footprint struct {
	Landed         int
	Failed         int
	MeanAngle      float64
	StdAngle       float64
	MinAngle       float64
	MaxAngle       float64
	MeanImpactTime float64
}

func Summarize(results []MonteCarloResult) Footprint {
	var fp Footprint
	var sinSum, cosSum, impact float64
	for _, r := range results {
		if r.Err != nil || r.Landing == nil {
			fp.Failed++
			continue
		}
		fp.Landed++
		a := r.Landing.Point.Angle * math.Pi / 180
		sinSum += math.Sin(a)
		cosSum += math.Cos(a)
		impact += r.Landing.ImpactTime
	}
	if fp.Landed == 0 {
		return fp
	}

	mean := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	lo, hi, sq := math.Inf(1), math.Inf(-1), 0.0
	for _, r := range results {
		if r.Err != nil || r.Landing == nil {
			continue
		}
		d := math.Remainder(r.Landing.Point.Angle-mean, 360)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
		sq += d * d
	}

	n := float64(fp.Landed)
	fp.MeanAngle = mean
	fp.StdAngle = math.Sqrt(sq / n)
	fp.MinAngle = math.Remainder(mean+lo, 360)
	fp.MaxAngle = math.Remainder(mean+hi, 360)
	fp.MeanImpactTime = impact / n
	return fp
}

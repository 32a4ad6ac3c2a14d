// Package automation runs predictions in bulk: scripted batches of
// scenarios and Monte Carlo dispersions of one scenario.
package automation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/experiment"
	"github.com/san-kum/reentry/internal/trajectory"
)

// Batch is a scripted list of predictions.
type Batch struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []BatchRun `yaml:"runs"`
}

// BatchRun names either a preset ("body/preset") or an inline scenario.
// Integrator, when set, overrides the scenario's.
type BatchRun struct {
	Label      string         `yaml:"label"`
	Preset     string         `yaml:"preset,omitempty"`
	Scenario   *config.Config `yaml:"scenario,omitempty"`
	Integrator string         `yaml:"integrator,omitempty"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Resolve returns the scenario this run describes.
func (r BatchRun) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case r.Preset != "" && r.Scenario != nil:
		return nil, fmt.Errorf("run %q: preset and scenario are exclusive", r.Label)
	case r.Preset != "":
		body, name, ok := strings.Cut(r.Preset, "/")
		if !ok {
			return nil, fmt.Errorf("run %q: preset must be body/name, got %q", r.Label, r.Preset)
		}
		cfg = config.GetPreset(body, name)
		if cfg == nil {
			return nil, fmt.Errorf("run %q: unknown preset %s", r.Label, r.Preset)
		}
	case r.Scenario != nil:
		cfg = r.Scenario.Clone()
	default:
		return nil, fmt.Errorf("run %q: needs a preset or a scenario", r.Label)
	}

	if r.Integrator != "" {
		cfg.Integrator = r.Integrator
	}
	if r.Label != "" {
		cfg.Name = r.Label
	}
	return cfg, nil
}

// BatchOutcome is one finished batch run with the experiment it ran.
type BatchOutcome struct {
	trajectory.Outcome
	Experiment *experiment.Experiment
}

// RunBatch builds every run first, failing on the first invalid one, then
// runs them all concurrently. Outcomes keep the batch order.
func RunBatch(ctx context.Context, b *Batch, base trajectory.Settings, opts ...experiment.Option) ([]BatchOutcome, error) {
	ens := trajectory.NewEnsemble()
	exps := make([]*experiment.Experiment, 0, len(b.Runs))
	for i, run := range b.Runs {
		cfg, err := run.Resolve()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(cfg, base, opts...)
		if err != nil {
			return nil, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		ens.Add(cfg.Name, exp.Runner())
		exps = append(exps, exp)
	}

	out := make([]BatchOutcome, 0, len(exps))
	for i, o := range ens.Run(ctx) {
		out = append(out, BatchOutcome{Outcome: o, Experiment: exps[i]})
	}
	return out, nil
}

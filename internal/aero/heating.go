package aero

import "math"

// HeatingConfig holds the thermal response constants. The cooling terms
// are applied per step over CoolingInterval seconds, independent of dt.
type HeatingConfig struct {
	GainRate         float64 `yaml:"gain_rate" mapstructure:"gain_rate"`
	RunawayThreshold float64 `yaml:"runaway_threshold" mapstructure:"runaway_threshold"`
	CoolingInterval  float64 `yaml:"cooling_interval" mapstructure:"cooling_interval"`
	CoolingConstant  float64 `yaml:"cooling_constant" mapstructure:"cooling_constant"`
	CoolingFactor    float64 `yaml:"cooling_factor" mapstructure:"cooling_factor"`
}

const (
	DefaultGainRate         = 0.02
	DefaultRunawayThreshold = 1000.0
	DefaultCoolingInterval  = 0.02
	DefaultCoolingConstant  = 10.0
	DefaultCoolingFactor    = 0.01
)

func DefaultHeating() HeatingConfig {
	return HeatingConfig{
		GainRate:         DefaultGainRate,
		RunawayThreshold: DefaultRunawayThreshold,
		CoolingInterval:  DefaultCoolingInterval,
		CoolingConstant:  DefaultCoolingConstant,
		CoolingFactor:    DefaultCoolingFactor,
	}
}

// HeatingConstant scales heat gain by the exposed area of the hottest
// thermal component.
func HeatingConstant(exposedSurface float64) float64 {
	if !(exposedSurface > 0) || math.IsInf(exposedSurface, 0) {
		return 1
	}
	return 1 + math.Log10(exposedSurface+1)
}

type Heating struct {
	cfg      HeatingConfig
	constant float64
}

func NewHeating(cfg HeatingConfig, constant float64) *Heating {
	return &Heating{cfg: cfg, constant: constant}
}

func (h *Heating) Constant() float64 { return h.constant }

// Update returns the temperature after one step of dt seconds with the
// shock base temperature base. The result is never negative or NaN.
func (h *Heating) Update(temp, base, dt float64) float64 {
	if math.IsNaN(base) || math.IsInf(base, 0) {
		base = 0
	}
	next := temp
	delta := base - temp
	switch {
	case delta > 0:
		gain := delta
		if delta >= h.cfg.RunawayThreshold && h.cfg.RunawayThreshold > 0 {
			gain = delta * delta / h.cfg.RunawayThreshold
		}
		next = temp + h.constant*gain*h.cfg.GainRate*dt
	case temp > 0:
		step := h.cfg.CoolingInterval
		next = temp - (h.cfg.CoolingConstant*step + temp*h.cfg.CoolingFactor*step)
	}
	if next < 0 {
		return 0
	}
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return temp
	}
	return next
}

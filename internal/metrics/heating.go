package metrics

import "github.com/san-kum/reentry/internal/dynamo"

type PeakTemperature struct {
	name string
	peak float64
	time float64
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temperature"}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(s dynamo.Sample) {
	if s.Temperature > p.peak {
		p.peak = s.Temperature
		p.time = s.Time
	}
}

func (p *PeakTemperature) Value() float64 { return p.peak }

// Time is when the peak was first reached.
func (p *PeakTemperature) Time() float64 { return p.time }

func (p *PeakTemperature) Reset() {
	p.peak = 0
	p.time = 0
}

package metrics

import (
	"github.com/san-kum/reentry/internal/dynamo"
)

// StandardGravity converts accelerations to g.
const StandardGravity = 9.80665

type MaxDynamicPressure struct {
	name string
	peak float64
	alt  float64
}

func NewMaxDynamicPressure() *MaxDynamicPressure {
	return &MaxDynamicPressure{name: "max_q"}
}

func (m *MaxDynamicPressure) Name() string { return m.name }

func (m *MaxDynamicPressure) Observe(s dynamo.Sample) {
	if q := s.DynamicPressure(); q > m.peak {
		m.peak = q
		m.alt = s.Altitude
	}
}

func (m *MaxDynamicPressure) Value() float64 { return m.peak }

func (m *MaxDynamicPressure) Altitude() float64 { return m.alt }

func (m *MaxDynamicPressure) Reset() {
	m.peak = 0
	m.alt = 0
}

// MaxLoad is the peak non-gravitational acceleration in g, the load a crew
// would feel.
type MaxLoad struct {
	name string
	peak float64
}

func NewMaxLoad() *MaxLoad {
	return &MaxLoad{name: "max_load"}
}

func (m *MaxLoad) Name() string { return m.name }

func (m *MaxLoad) Observe(s dynamo.Sample) {
	sensed := s.Load.Len() / StandardGravity
	if sensed > m.peak {
		m.peak = sensed
	}
}

func (m *MaxLoad) Value() float64 { return m.peak }

func (m *MaxLoad) Reset() { m.peak = 0 }

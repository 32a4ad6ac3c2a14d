package dynamo

// Termination tells why a simulation stopped stepping.
type Termination int

const (
	Running Termination = iota
	Impact
	AtmosphereEscape
	StepBudget
	Diverged
	Receding
)

func (t Termination) String() string {
	switch t {
	case Running:
		return "running"
	case Impact:
		return "impact"
	case AtmosphereEscape:
		return "atmosphere-escape"
	case StepBudget:
		return "step-budget"
	case Diverged:
		return "diverged"
	case Receding:
		return "receding"
	default:
		return "unknown"
	}
}

// Sample is one trajectory point emitted by a step, with the state that
// produced it. Step is 1-based: the first emitted sample has Step == 1.
// Load is the non-gravitational part of the acceleration at Position and
// Velocity.
type Sample struct {
	Step         int     `json:"step"`
	Time         float64 `json:"time"`
	Position     Vec2    `json:"position"`
	Velocity     Vec2    `json:"velocity"`
	Acceleration Vec2    `json:"acceleration"`
	Load         Vec2    `json:"load"`
	Altitude     float64 `json:"altitude"`
	Density      float64 `json:"density"`
	Temperature  float64 `json:"temperature"`
}

// DynamicPressure returns 0.5 * rho * |v|^2 at the sample.
func (s Sample) DynamicPressure() float64 {
	return 0.5 * s.Density * s.Velocity.LenSq()
}

// Observer is notified after every emitted sample, on the goroutine that
// owns the simulation.
type Observer interface {
	OnStep(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Sample)

func (f ObserverFunc) OnStep(s Sample) { f(s) }

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

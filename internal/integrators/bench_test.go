package integrators

import (
	"testing"

	"github.com/san-kum/reentry/internal/dynamo"
)

func benchStepper(b *testing.B, s Stepper) {
	p := dynamo.V(0, 1.2e6)
	v := dynamo.V(500, 0)
	a := centralField(p, v)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, v, a = s.Step(centralField, p, v, a, 0.01)
	}
}

func BenchmarkSplitVerlet(b *testing.B) { benchStepper(b, NewSplitVerlet()) }

func BenchmarkVerlet(b *testing.B) { benchStepper(b, NewVerlet()) }

func BenchmarkRK4(b *testing.B) { benchStepper(b, NewRK4()) }

package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

func moon(t *testing.T) physics.Body {
	t.Helper()
	b, err := physics.Lookup("moon")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSpecificEnergy(t *testing.T) {
	b := moon(t)
	r := b.Radius() + 100e3
	vc := math.Sqrt(b.GravParam() / r)

	got := SpecificEnergy(b, dynamo.V(r, 0), dynamo.V(0, vc))
	expected := -b.GravParam() / (2 * r)
	if math.Abs(got-expected) > 1e-6*math.Abs(expected) {
		t.Errorf("expected circular orbit energy %f, got %f", expected, got)
	}
}

func TestEnergyDrift(t *testing.T) {
	b := moon(t)
	m := NewEnergyDrift(b)
	r := b.Radius() + 100e3
	vc := math.Sqrt(b.GravParam() / r)

	m.Observe(dynamo.Sample{Position: dynamo.V(r, 0), Velocity: dynamo.V(0, vc)})
	if m.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %f", m.Value())
	}

	m.Observe(dynamo.Sample{Position: dynamo.V(r, 0), Velocity: dynamo.V(0, 0)})
	if math.Abs(m.Value()-1) > 1e-9 {
		t.Errorf("expected drift 1 when kinetic energy vanishes, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

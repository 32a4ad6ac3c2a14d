// Package metrics summarises a trajectory as it is produced.
package metrics

import (
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
)

// Standard returns the metrics every stored run records.
func Standard(b physics.Body) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakTemperature(),
		NewMaxDynamicPressure(),
		NewMaxLoad(),
		NewEnergyDrift(b),
	}
}

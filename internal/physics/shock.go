package physics

import "math"

// ShockModel estimates the base temperature behind the bow shock. It grows
// with sqrt(density) and with the square of the speed above Onset.
type ShockModel struct {
	Gain  float64 `yaml:"gain" json:"gain"`
	Onset float64 `yaml:"onset" json:"onset"`
}

func (s ShockModel) Temperature(density, speed float64) float64 {
	if density <= 0 || speed <= s.Onset || s.Gain <= 0 {
		return 0
	}
	excess := speed - s.Onset
	return s.Gain * math.Sqrt(density) * excess * excess
}

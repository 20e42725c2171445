package sim

import "math"

// SpeedCurve maps distance travelled to scroll speed:
// Base + floor(distance / Every) * Step.
type SpeedCurve struct {
	Base  float64
	Step  float64
	Every float64
}

// At returns the scroll speed for the given distance.
func (c SpeedCurve) At(distance float64) float64 {
	if c.Every <= 0 || c.Step == 0 {
		return c.Base
	}
	return c.Base + math.Floor(distance/c.Every)*c.Step
}

// FixedSpeed returns a curve that never accelerates.
func FixedSpeed(speed float64) SpeedCurve {
	return SpeedCurve{Base: speed, Every: 1}
}

// Package power holds the numeric core: the drag model converting speed to
// mechanical power and the time-decayed estimator collapsing a speed series
// into one smoothed power value.
package power

import "math"

// Propelling efficiency of the drag model.
const efficiency = 0.6

// dragFactor returns K for the given participant mass in kg.
func dragFactor(mass float64) float64 {
	return 0.35*mass + 2
}

// FromSpeed converts an instantaneous speed (m/s) into mechanical power
// (watts) through the drag model: power = (K/efficiency) * speed^3.
func FromSpeed(mass, speed float64) float64 {
	return dragFactor(mass) / efficiency * speed * speed * speed
}

// SpeedFromPower inverts the drag model, returning the steady speed (m/s)
// that costs the given power.
func SpeedFromPower(mass, watts float64) float64 {
	return math.Cbrt(efficiency / dragFactor(mass) * watts)
}

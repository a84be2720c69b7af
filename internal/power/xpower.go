package power

import (
	"math"

	"example.com/performance/internal/domain"
)

const (
	// windowSeconds is the length of the exponential smoothing window.
	windowSeconds = 25.0
	// gapTolerance is the slack allowed before two samples count as a gap.
	gapTolerance = 0.1
	// negligible is the floor below which a decaying value stops producing
	// synthetic steps.
	negligible = 0.1
)

// XPower collapses a speed series into a single time-decayed cubic-mean
// power value plus the effective duration in seconds.
//
// At each nominal step the running value decays by the window attenuation
// and absorbs the weighted instantaneous power. Gaps longer than the
// interval (plus tolerance) are filled with decay-only steps until the gap
// closes or the value falls below the negligible floor, modeling effort
// decaying toward zero during a pause. The result is the cube root of the
// mean of the per-step cubes: the drag model makes cost scale with the cube
// of speed, so sustained high output weighs more than it would in an
// arithmetic mean.
//
// Degenerate input (no samples, non-positive or NaN interval) yields 0, 0.
func XPower(mass float64, samples []domain.Sample, interval float64) (watts, seconds float64) {
	if len(samples) == 0 || interval <= 0 || math.IsNaN(interval) {
		return 0, 0
	}

	window := windowSeconds / interval
	attenuation := window / (window + interval)
	sampleWeight := interval / (window + interval)

	var lastOffset, weighted, total float64
	count := 0

	for _, s := range samples {
		for weighted > negligible && s.Offset > lastOffset+interval+gapTolerance {
			weighted *= attenuation
			lastOffset += interval
			total += weighted * weighted * weighted
			count++
		}
		weighted *= attenuation
		weighted += sampleWeight * FromSpeed(mass, s.Speed)
		lastOffset = s.Offset
		total += weighted * weighted * weighted
		count++
	}

	return math.Cbrt(total / float64(count)), float64(count) * interval
}

// Package catalog registers the built-in metric definitions: the
// time-decayed power family per discipline and the unified activity score.
package catalog

import (
	"strconv"
	"strings"

	"example.com/performance/internal/domain"
	"example.com/performance/internal/metric"
	"example.com/performance/internal/power"
	"example.com/performance/internal/zones"
)

// Unified and per-discipline composite score symbols.
const (
	SymbolSwimScore     = "swim_score"
	SymbolRunScore      = "run_score"
	SymbolBikeScore     = "bike_score"
	SymbolActivityScore = "activity_score"
)

// Convenience symbols used by collaborators and tests.
const (
	SymbolSwimXPower = "swim_xpower"
	SymbolRunXPower  = "run_xpower"
	SymbolBikeXPower = "bike_xpower"
)

const (
	metersPerYard = 0.9144
	kmPerMile     = 1.609344
	secondsInHour = 3600.0
)

// family parameterizes the power metric pipeline for one discipline.
type family struct {
	discipline  domain.Discipline
	prefix      string
	displayName string
	// paceDistance is the meters covered by one pace unit; 0 disables the
	// pace metric for the family.
	paceDistance   float64
	paceUnits      string
	paceImperial   string
	paceConversion float64
	overrideTag    string
	// coversOther routes generic activities through this family, matching
	// the historical behaviour of scoring unclassified efforts as rides.
	coversOther bool
	provider    zones.Provider
}

func (f family) symbol(kind string) string {
	return f.prefix + "_" + kind
}

func (f family) applicable(act *domain.Activity) bool {
	d := act.Discipline()
	return d == f.discipline || (f.coversOther && d == domain.DisciplineOther)
}

// thresholdSpeed resolves the threshold speed in m/s: per-activity tag
// override first, then the dated zone configuration, else 0. Absence of
// configuration is a valid zero-valued condition, never an error.
func (f family) thresholdSpeed(act *domain.Activity) float64 {
	if raw, ok := act.Tag(f.overrideTag); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v > 0 {
			return v
		}
	}
	if v, ok := f.provider.ThresholdSpeed(f.discipline, act.StartedAt()); ok {
		return v
	}
	return 0
}

func relativeIntensity(xpower, threshold float64) float64 {
	if threshold == 0 {
		return 0
	}
	return xpower / threshold
}

// compositeScore scales normalized work against an hour at threshold power,
// so exactly one hour at threshold scores 100.
func compositeScore(xpower, seconds, intensity, threshold float64) float64 {
	normalizedWork := xpower * seconds
	workInAnHourAtThreshold := threshold * secondsInHour
	if workInAnHourAtThreshold == 0 {
		return 0
	}
	return normalizedWork * intensity / workInAnHourAtThreshold * 100
}

// register adds the family's metric pipeline to the registry.
func (f family) register(reg *metric.Registry) error {
	symXPower := f.symbol("xpower")
	symThreshold := f.symbol("threshold_power")
	symIntensity := f.symbol("relative_intensity")
	symScore := f.symbol("score")

	err := reg.Register(metric.Definition{
		Symbol:        symXPower,
		Name:          "xPower " + f.displayName,
		Units:         "watts",
		ImperialUnits: "watts",
		Kind:          metric.KindAverage,
		Applicable:    f.applicable,
		Compute: func(act *domain.Activity, _ *metric.Results) (metric.Computed, error) {
			watts, seconds := power.XPower(act.Mass(), act.Samples(), act.SampleInterval())
			return metric.Computed{Value: watts, Count: seconds}, nil
		},
	})
	if err != nil {
		return err
	}

	err = reg.Register(metric.Definition{
		Symbol:        symThreshold,
		Name:          "Threshold Power " + f.displayName,
		Units:         "watts",
		ImperialUnits: "watts",
		Kind:          metric.KindAverage,
		Applicable:    f.applicable,
		Compute: func(act *domain.Activity, _ *metric.Results) (metric.Computed, error) {
			watts := power.FromSpeed(act.Mass(), f.thresholdSpeed(act))
			return metric.Computed{Value: watts}, nil
		},
	})
	if err != nil {
		return err
	}

	if f.paceDistance > 0 {
		err = reg.Register(metric.Definition{
			Symbol:        f.symbol("xpace"),
			Name:          "xPace " + f.displayName,
			Units:         f.paceUnits,
			ImperialUnits: f.paceImperial,
			Conversion:    f.paceConversion,
			Precision:     1,
			Kind:          metric.KindAverage,
			Applicable:    f.applicable,
			Compute: func(act *domain.Activity, deps *metric.Results) (metric.Computed, error) {
				xp, err := deps.Dependency(symXPower)
				if err != nil {
					return metric.Computed{}, err
				}
				speed := power.SpeedFromPower(act.Mass(), xp.Value)
				pace := 0.0
				if speed > 0 {
					pace = f.paceDistance / (60 * speed)
				}
				return metric.Computed{Value: pace}, nil
			},
		}, symXPower)
		if err != nil {
			return err
		}
	}

	err = reg.Register(metric.Definition{
		Symbol:     symIntensity,
		Name:       "Relative Intensity " + f.displayName,
		Precision:  2,
		Kind:       metric.KindAverage,
		Applicable: f.applicable,
		Compute: func(_ *domain.Activity, deps *metric.Results) (metric.Computed, error) {
			xp, err := deps.Dependency(symXPower)
			if err != nil {
				return metric.Computed{}, err
			}
			tp, err := deps.Dependency(symThreshold)
			if err != nil {
				return metric.Computed{}, err
			}
			return metric.Computed{Value: relativeIntensity(xp.Value, tp.Value), Count: xp.Count}, nil
		},
	}, symXPower, symThreshold)
	if err != nil {
		return err
	}

	return reg.Register(metric.Definition{
		Symbol:     symScore,
		Name:       f.displayName + " Score",
		Kind:       metric.KindTotal,
		Applicable: f.applicable,
		Compute: func(_ *domain.Activity, deps *metric.Results) (metric.Computed, error) {
			xp, err := deps.Dependency(symXPower)
			if err != nil {
				return metric.Computed{}, err
			}
			ri, err := deps.Dependency(symIntensity)
			if err != nil {
				return metric.Computed{}, err
			}
			tp, err := deps.Dependency(symThreshold)
			if err != nil {
				return metric.Computed{}, err
			}
			score := compositeScore(xp.Value, xp.Count, ri.Value, tp.Value)
			return metric.Computed{Value: score}, nil
		},
	}, symXPower, symThreshold, symIntensity)
}

// Register populates the registry with every built-in metric. The zones
// provider supplies dated threshold-speed configuration.
func Register(reg *metric.Registry, provider zones.Provider) error {
	families := []family{
		{
			discipline:     domain.DisciplineSwim,
			prefix:         "swim",
			displayName:    "Swim",
			paceDistance:   100,
			paceUnits:      "min/100m",
			paceImperial:   "min/100yd",
			paceConversion: metersPerYard,
			overrideTag:    "cv",
			provider:       provider,
		},
		{
			discipline:     domain.DisciplineRun,
			prefix:         "run",
			displayName:    "Run",
			paceDistance:   1000,
			paceUnits:      "min/km",
			paceImperial:   "min/mi",
			paceConversion: kmPerMile,
			overrideTag:    "cv",
			provider:       provider,
		},
		{
			discipline:  domain.DisciplineBike,
			prefix:      "bike",
			displayName: "Bike",
			overrideTag: "cv",
			coversOther: true,
			provider:    provider,
		},
	}

	for _, f := range families {
		if err := f.register(reg); err != nil {
			return err
		}
	}

	return reg.Register(metric.Definition{
		Symbol: SymbolActivityScore,
		Name:   "Activity Score",
		Kind:   metric.KindTotal,
		Compute: func(act *domain.Activity, deps *metric.Results) (metric.Computed, error) {
			var sym string
			switch act.Discipline() {
			case domain.DisciplineSwim:
				sym = SymbolSwimScore
			case domain.DisciplineRun:
				sym = SymbolRunScore
			default:
				sym = SymbolBikeScore
			}
			v, err := deps.Dependency(sym)
			if err != nil {
				return metric.Computed{}, err
			}
			return metric.Computed{Value: v.Value, Count: v.Count}, nil
		},
	}, SymbolSwimScore, SymbolRunScore, SymbolBikeScore)
}

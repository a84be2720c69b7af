// Package domain defines the activity model the metric engine evaluates.
package domain

import (
	"errors"
	"time"
)

// Discipline classifies an activity and governs which metrics apply to it.
type Discipline string

const (
	DisciplineSwim  Discipline = "swim"
	DisciplineRun   Discipline = "run"
	DisciplineBike  Discipline = "bike"
	DisciplineOther Discipline = "other"
)

// ParseDiscipline maps a wire value onto a known discipline, defaulting to other.
func ParseDiscipline(value string) Discipline {
	switch Discipline(value) {
	case DisciplineSwim, DisciplineRun, DisciplineBike:
		return Discipline(value)
	default:
		return DisciplineOther
	}
}

// Sample is one recorded point of an activity: elapsed seconds since the
// start and the instantaneous speed in m/s.
type Sample struct {
	Offset float64
	Speed  float64
}

// ErrSampleOutOfOrder is returned when an appended sample would break the
// non-decreasing offset invariant.
var ErrSampleOutOfOrder = errors.New("sample offset precedes last recorded offset")

// Activity is an ordered series of samples plus the scalar attributes the
// metric catalog reads. Samples are append-only; every append bumps the
// revision so previously computed result sets can detect staleness.
type Activity struct {
	id         string
	discipline Discipline
	startedAt  time.Time
	mass       float64
	interval   float64
	samples    []Sample
	tags       map[string]string
	revision   uint64
}

// NewActivity constructs an activity. mass is the participant mass in kg,
// interval the nominal recording interval in seconds.
func NewActivity(id string, discipline Discipline, startedAt time.Time, mass, interval float64) *Activity {
	return &Activity{
		id:         id,
		discipline: discipline,
		startedAt:  startedAt,
		mass:       mass,
		interval:   interval,
		tags:       make(map[string]string),
	}
}

// ID returns the activity identifier.
func (a *Activity) ID() string { return a.id }

// Discipline returns the activity classification.
func (a *Activity) Discipline() Discipline { return a.discipline }

// StartedAt returns the activity start date.
func (a *Activity) StartedAt() time.Time { return a.startedAt }

// Mass returns the participant mass in kg.
func (a *Activity) Mass() float64 { return a.mass }

// SampleInterval returns the nominal recording interval in seconds.
func (a *Activity) SampleInterval() float64 { return a.interval }

// Revision increments whenever the sample series is mutated.
func (a *Activity) Revision() uint64 { return a.revision }

// Samples returns the recorded series. Callers must not mutate it.
func (a *Activity) Samples() []Sample { return a.samples }

// AppendSample records one sample, enforcing non-decreasing offsets.
func (a *Activity) AppendSample(s Sample) error {
	if n := len(a.samples); n > 0 && s.Offset < a.samples[n-1].Offset {
		return ErrSampleOutOfOrder
	}
	a.samples = append(a.samples, s)
	a.revision++
	return nil
}

// AppendSamples records a batch of samples, stopping at the first
// out-of-order offset.
func (a *Activity) AppendSamples(samples []Sample) error {
	for _, s := range samples {
		if err := a.AppendSample(s); err != nil {
			return err
		}
	}
	return nil
}

// SetTag stores a per-activity override value.
func (a *Activity) SetTag(key, value string) {
	a.tags[key] = value
}

// Tag looks up a per-activity override value.
func (a *Activity) Tag(key string) (string, bool) {
	value, ok := a.tags[key]
	return value, ok
}

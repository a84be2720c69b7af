// Package metric implements the dependency-driven metric evaluation engine:
// a registry of metric definitions resolved into a topological plan, and an
// evaluator producing an immutable result set per activity.
package metric

import (
	"errors"

	"example.com/performance/internal/domain"
)

var (
	// ErrDuplicateSymbol indicates a definition was registered twice. Fatal
	// to startup.
	ErrDuplicateSymbol = errors.New("metric symbol already registered")
	// ErrCyclicDependency indicates the dependency graph contains a cycle.
	// Fatal to startup.
	ErrCyclicDependency = errors.New("cyclic metric dependency")
	// ErrUnknownDependency indicates a definition depends on a symbol that
	// was never registered. Fatal to startup.
	ErrUnknownDependency = errors.New("unknown metric dependency")
	// ErrDependencyMissing indicates a compute function looked up a
	// dependency absent from the result set. It always signals a
	// registry/definition bug, never a data-quality issue, and is fatal to
	// that activity's evaluation.
	ErrDependencyMissing = errors.New("metric dependency missing from result set")
)

// Kind describes how a metric's value aggregates over time.
type Kind int

const (
	// KindAverage marks values that represent a smoothed or mean quantity.
	KindAverage Kind = iota
	// KindTotal marks values that accumulate over the whole activity.
	KindTotal
)

// Computed is the raw output of a compute function: the metric value and an
// optional effective duration in seconds.
type Computed struct {
	Value float64
	Count float64
}

// ComputeFunc derives a metric value from the activity and the values
// computed so far. Dependencies are read through Results.Dependency, which
// reports ErrDependencyMissing on absent symbols.
type ComputeFunc func(act *domain.Activity, deps *Results) (Computed, error)

// Definition describes one registrable metric.
type Definition struct {
	// Symbol uniquely identifies the metric within a registry.
	Symbol string
	// Name is the human-readable display name.
	Name string
	// Units and ImperialUnits are the dual display unit labels; Conversion
	// is the metric-to-imperial factor (1 when the units coincide).
	Units         string
	ImperialUnits string
	Conversion    float64
	// Precision is the number of decimal places for display.
	Precision int
	Kind      Kind
	// Depends lists the symbols whose values must be computed first.
	Depends []string
	// Applicable reports whether the metric makes sense for the activity.
	// A nil predicate means always applicable. Inapplicable metrics are
	// skipped: absence from the result set, not zero and not an error.
	Applicable func(act *domain.Activity) bool
	Compute    ComputeFunc
}

func (d *Definition) applicable(act *domain.Activity) bool {
	return d.Applicable == nil || d.Applicable(act)
}

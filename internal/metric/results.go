package metric

import (
	"fmt"
	"math"

	"example.com/performance/internal/domain"
)

// Value is one computed metric: the numeric value, an optional effective
// duration, and the display attributes copied from its definition.
type Value struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Count         float64 `json:"count,omitempty"`
	Precision     int     `json:"precision"`
	Units         string  `json:"units,omitempty"`
	ImperialUnits string  `json:"imperial_units,omitempty"`
	Conversion    float64 `json:"-"`
}

// Imperial returns the value converted for imperial display.
func (v Value) Imperial() float64 {
	if v.Conversion == 0 {
		return v.Value
	}
	return v.Value * v.Conversion
}

// Rounded returns the value rounded to the definition's display precision.
func (v Value) Rounded() float64 {
	scale := math.Pow(10, float64(v.Precision))
	return math.Round(v.Value*scale) / scale
}

// Results is the immutable result set of one activity evaluation. The
// builder side lives in the evaluator; consumers only read. A result set is
// tied to the activity revision it was computed from, so sample mutation
// after the fact is detectable.
type Results struct {
	activityID string
	revision   uint64
	values     map[string]Value
	order      []string
}

func newResults(act *domain.Activity) *Results {
	return &Results{
		activityID: act.ID(),
		revision:   act.Revision(),
		values:     make(map[string]Value),
	}
}

func (r *Results) put(v Value) {
	r.values[v.Symbol] = v
	r.order = append(r.order, v.Symbol)
}

// ActivityID returns the activity the results were computed for.
func (r *Results) ActivityID() string { return r.activityID }

// Stale reports whether the activity's samples were mutated after this
// result set was computed. A stale result set requires full recomputation.
func (r *Results) Stale(act *domain.Activity) bool {
	return act.ID() != r.activityID || act.Revision() != r.revision
}

// Lookup returns the value computed for sym, if any. Absence means the
// metric was inapplicable to the activity, not that it failed.
func (r *Results) Lookup(sym string) (Value, bool) {
	v, ok := r.values[sym]
	return v, ok
}

// Dependency returns the value computed for a declared dependency. A miss
// is reported as ErrDependencyMissing: it indicates the registry and the
// definitions disagree, not bad input.
func (r *Results) Dependency(sym string) (Value, error) {
	v, ok := r.values[sym]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrDependencyMissing, sym)
	}
	return v, nil
}

// Symbols returns the computed symbols in evaluation order.
func (r *Results) Symbols() []string {
	return append([]string(nil), r.order...)
}

// Values returns all computed values in evaluation order.
func (r *Results) Values() []Value {
	out := make([]Value, 0, len(r.order))
	for _, sym := range r.order {
		out = append(out, r.values[sym])
	}
	return out
}

// Len returns the number of computed values.
func (r *Results) Len() int { return len(r.values) }

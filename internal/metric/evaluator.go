package metric

import (
	"fmt"
	"time"

	"example.com/performance/internal/domain"
	"example.com/performance/internal/observability"
)

// Evaluator runs a resolved plan against one activity at a time. It holds
// only the read-only plan, so concurrent Compute calls for distinct
// activities are safe.
type Evaluator struct {
	plan []*Definition
}

// NewEvaluator resolves the registry into an evaluation plan. Resolution
// errors are startup failures.
func NewEvaluator(reg *Registry) (*Evaluator, error) {
	plan, err := reg.Resolve()
	if err != nil {
		return nil, err
	}
	return &Evaluator{plan: plan}, nil
}

// Plan returns the symbols in evaluation order.
func (e *Evaluator) Plan() []string {
	out := make([]string, 0, len(e.plan))
	for _, def := range e.plan {
		out = append(out, def.Symbol)
	}
	return out
}

// Compute evaluates every applicable metric for the activity, in plan
// order, feeding computed values forward. Inapplicable metrics leave no
// value behind. A compute error aborts the whole evaluation: result sets
// are total, never partially stale.
func (e *Evaluator) Compute(act *domain.Activity) (*Results, error) {
	started := time.Now()
	results := newResults(act)
	skipped := 0

	for _, def := range e.plan {
		if !def.applicable(act) {
			skipped++
			continue
		}
		computed, err := def.Compute(act, results)
		if err != nil {
			observability.RecordEvaluation(string(act.Discipline()), results.Len(), skipped, time.Since(started), false)
			return nil, fmt.Errorf("computing %s: %w", def.Symbol, err)
		}
		results.put(Value{
			Symbol:        def.Symbol,
			Name:          def.Name,
			Value:         computed.Value,
			Count:         computed.Count,
			Precision:     def.Precision,
			Units:         def.Units,
			ImperialUnits: def.ImperialUnits,
			Conversion:    def.Conversion,
		})
	}

	observability.RecordEvaluation(string(act.Discipline()), results.Len(), skipped, time.Since(started), true)
	return results, nil
}

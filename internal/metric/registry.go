package metric

import (
	"fmt"
)

// Registry is the catalog of metric definitions and their dependency edges.
// It is populated once during startup and read-only afterward; the resolved
// plan may then be shared by concurrent evaluations.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition with its declared dependency symbols.
// Registration order is preserved and decides the evaluation order among
// mutually independent metrics.
func (r *Registry) Register(def Definition, deps ...string) error {
	if _, exists := r.defs[def.Symbol]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, def.Symbol)
	}
	if len(deps) > 0 {
		def.Depends = append([]string(nil), deps...)
	}
	if def.Conversion == 0 {
		def.Conversion = 1
	}
	stored := def
	r.defs[def.Symbol] = &stored
	r.order = append(r.order, def.Symbol)
	return nil
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, 0, len(r.order))
	for _, sym := range r.order {
		out = append(out, r.defs[sym])
	}
	return out
}

// Lookup returns the definition registered under sym.
func (r *Registry) Lookup(sym string) (*Definition, bool) {
	def, ok := r.defs[sym]
	return def, ok
}

// Resolve produces a topological evaluation plan over the dependency graph.
// Ties are broken by registration order, so the plan is deterministic. It
// fails with ErrUnknownDependency when an edge points at an unregistered
// symbol and with ErrCyclicDependency when the graph contains a cycle.
func (r *Registry) Resolve() ([]*Definition, error) {
	for _, sym := range r.order {
		for _, dep := range r.defs[sym].Depends {
			if _, ok := r.defs[dep]; !ok {
				return nil, fmt.Errorf("%w: %s (required by %s)", ErrUnknownDependency, dep, sym)
			}
		}
	}

	placed := make(map[string]bool, len(r.order))
	plan := make([]*Definition, 0, len(r.order))

	for len(plan) < len(r.order) {
		progressed := false
		for _, sym := range r.order {
			if placed[sym] {
				continue
			}
			def := r.defs[sym]
			ready := true
			for _, dep := range def.Depends {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[sym] = true
				plan = append(plan, def)
				progressed = true
			}
		}
		if !progressed {
			remaining := make([]string, 0)
			for _, sym := range r.order {
				if !placed[sym] {
					remaining = append(remaining, sym)
				}
			}
			return nil, fmt.Errorf("%w: involving %v", ErrCyclicDependency, remaining)
		}
	}
	return plan, nil
}

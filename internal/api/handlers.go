// Package api exposes the HTTP surface of the performance service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/performance/internal/auth"
	"example.com/performance/internal/events"
	"example.com/performance/internal/metric"
)

// Handler handles HTTP interactions.
type Handler struct {
	registry  *metric.Registry
	evaluator *metric.Evaluator
}

// NewHandler constructs Handler.
func NewHandler(registry *metric.Registry, evaluator *metric.Evaluator) *Handler {
	return &Handler{registry: registry, evaluator: evaluator}
}

// RegisterRoutes sets up routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities/score", h.scoreActivity)
	mux.HandleFunc("/v1/catalog", h.catalog)
	mux.HandleFunc("/healthz", healthz)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// CatalogEntry describes one registered metric definition.
type CatalogEntry struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Units         string   `json:"units,omitempty"`
	ImperialUnits string   `json:"imperial_units,omitempty"`
	Precision     int      `json:"precision"`
	Depends       []string `json:"depends,omitempty"`
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeRead) && !claims.HasScope(auth.ScopeCompute) {
		writeError(w, http.StatusForbidden, "forbidden", "scope performance:read required")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	defs := h.registry.Definitions()
	entries := make([]CatalogEntry, 0, len(defs))
	for _, def := range defs {
		entries = append(entries, CatalogEntry{
			Symbol:        def.Symbol,
			Name:          def.Name,
			Units:         def.Units,
			ImperialUnits: def.ImperialUnits,
			Precision:     def.Precision,
			Depends:       def.Depends,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": entries,
		"plan":  h.evaluator.Plan(),
	})
}

// ScoreActivityRequest carries an activity to evaluate.
type ScoreActivityRequest events.ActivityRecorded

// Validate ensures request integrity.
func (r ScoreActivityRequest) Validate() error {
	if strings.TrimSpace(r.ActivityID) == "" {
		return errors.New("activity_id is required")
	}
	if r.MassKG <= 0 {
		return errors.New("mass_kg must be positive")
	}
	return nil
}

func (h *Handler) scoreActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeCompute) {
		writeError(w, http.StatusForbidden, "forbidden", "scope performance:compute required")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req ScoreActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	act, err := events.BuildActivity(events.ActivityRecorded(req))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	results, err := h.evaluator.Compute(act)
	if err != nil {
		// Evaluation failures indicate a registry/definition inconsistency,
		// not bad input.
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activity_id": act.ID(),
		"discipline":  string(act.Discipline()),
		"computed_at": time.Now().UTC(),
		"metrics":     results.Values(),
	})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

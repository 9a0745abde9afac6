// Package valuation exposes the calculation core over HTTP for the web UI
// and report collaborators. All business semantics live in the core
// packages; this layer only decodes requests, routes them through
// validation and calculation, and records session history.
package valuation

import (
	"encoding/json"
	"fmt"
	"net/http"

	core "github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/store"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/validate"
)

// Handler wires the validation engine, the valuation engine, and the
// session history behind the /api/valuation endpoints.
type Handler struct {
	engine    *core.Engine
	validator *validate.Engine
	history   *store.History
}

// NewHandler builds the handler over one immutable reference table set.
func NewHandler(ref *refdata.Tables, history *store.History) *Handler {
	if ref == nil {
		ref = refdata.Default()
	}
	if history == nil {
		history = store.NewHistory(0)
	}
	return &Handler{
		engine:    core.NewEngine(ref),
		validator: validate.NewEngine(ref),
		history:   history,
	}
}

// CalculationRequest is the wire shape of a calculation or validation call.
type CalculationRequest struct {
	SessionID string                 `json:"session_id,omitempty"`
	Method    string                 `json:"method"`
	Fields    map[string]interface{} `json:"fields"`
}

// CalculationResponse pairs the validation outcome with the result (when
// validation passed) and echoes the session the entry was recorded under.
type CalculationResponse struct {
	SessionID  string           `json:"session_id,omitempty"`
	Validation validate.Outcome `json:"validation"`
	Result     *core.Result     `json:"result,omitempty"`
}

// HandleCalculate validates the payload and, when it is error-free, runs
// the calculator and records the outcome in the session history.
// POST /api/valuation/calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if done := cors(w, r); done {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, ok := core.ParseMethod(req.Method)
	if !ok {
		respondJSON(w, http.StatusOK, CalculationResponse{
			Validation: h.validator.ValidateMethodInputs(core.Method(req.Method), req.Fields),
		})
		return
	}

	outcome := h.validator.ValidateMethodInputs(method, req.Fields)
	resp := CalculationResponse{SessionID: req.SessionID, Validation: outcome}

	if outcome.IsValid {
		result := h.engine.Calculate(method, outcome.Sanitized)
		resp.Result = &result

		if req.SessionID == "" {
			resp.SessionID = h.history.NewSession()
		}
		h.history.Record(resp.SessionID, method, outcome.Sanitized, result)
		fmt.Printf("[VALUATION] %s -> success=%v valuation=%.2f\n", method, result.Success, result.Valuation)
	} else {
		fmt.Printf("[VALUATION] %s rejected with %d validation error(s)\n", method, len(outcome.Errors()))
	}

	respondJSON(w, http.StatusOK, resp)
}

// HandleValidate runs validation only, without touching the calculators
// or the history.
// POST /api/valuation/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if done := cors(w, r); done {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, h.validator.ValidateMethodInputs(core.Method(req.Method), req.Fields))
}

// HandleRequirements serves the declarative method schemas for
// form-building collaborators.
// GET /api/valuation/requirements[?method=DCF]
func (h *Handler) HandleRequirements(w http.ResponseWriter, r *http.Request) {
	if done := cors(w, r); done {
		return
	}

	if name := r.URL.Query().Get("method"); name != "" {
		method, ok := core.ParseMethod(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown valuation method: %s", name), http.StatusNotFound)
			return
		}
		schema, _ := h.validator.MethodRequirements(method)
		respondJSON(w, http.StatusOK, schema)
		return
	}

	respondJSON(w, http.StatusOK, h.validator.MethodSchemas())
}

// HandleReference serves a snapshot of the reference tables.
// GET /api/valuation/reference
func (h *Handler) HandleReference(w http.ResponseWriter, r *http.Request) {
	if done := cors(w, r); done {
		return
	}
	respondJSON(w, http.StatusOK, h.engine.Reference().Snapshot())
}

// historyResponse is the wire shape of a session history read.
type historyResponse struct {
	SessionID string        `json:"session_id"`
	Entries   []store.Entry `json:"entries"`
	Summary   store.Summary `json:"summary"`
}

// HandleHistory reads or clears one session's calculation history.
// GET|DELETE /api/valuation/history?session_id=...
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if done := cors(w, r); done {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, historyResponse{
			SessionID: sessionID,
			Entries:   h.history.Entries(sessionID),
			Summary:   h.history.Summarize(sessionID),
		})
	case http.MethodDelete:
		h.history.Clear(sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Register binds every endpoint on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/valuation/calculate", h.HandleCalculate)
	mux.HandleFunc("/api/valuation/validate", h.HandleValidate)
	mux.HandleFunc("/api/valuation/requirements", h.HandleRequirements)
	mux.HandleFunc("/api/valuation/reference", h.HandleReference)
	mux.HandleFunc("/api/valuation/history", h.HandleHistory)
}

// cors sets the permissive headers the web UI expects and short-circuits
// preflight requests.
func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[VALUATION] failed to encode response: %v\n", err)
	}
}

// Package store keeps per-session calculation history on behalf of the API
// layer. The valuation core never reads or writes it; history ownership
// stays with the caller, and entries live only in memory.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"
)

// DefaultHistoryLimit is the number of entries retained per session before
// the oldest are dropped.
const DefaultHistoryLimit = 50

// Entry is one recorded calculation.
type Entry struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"session_id"`
	Method    valuation.Method       `json:"method"`
	Timestamp time.Time              `json:"timestamp"`
	Inputs    map[string]interface{} `json:"inputs"`
	Result    valuation.Result       `json:"result"`
}

// Summary aggregates the valuations recorded in one session.
type Summary struct {
	Count   int                `json:"count"`
	Methods []valuation.Method `json:"methods_used"`
	Min     float64            `json:"min"`
	Max     float64            `json:"max"`
	Mean    float64            `json:"mean"`
}

// History is a mutex-guarded, capacity-bounded session history.
type History struct {
	mu       sync.Mutex
	limit    int
	sessions map[string][]Entry
}

// NewHistory builds an empty history. A non-positive limit selects
// DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		limit:    limit,
		sessions: map[string][]Entry{},
	}
}

// NewSession allocates a fresh session identifier.
func (h *History) NewSession() string {
	return uuid.NewString()
}

// Record appends a calculation to the session, creating the session when
// sessionID is empty, and returns the stored entry.
func (h *History) Record(sessionID string, method valuation.Method, inputs map[string]interface{}, result valuation.Result) Entry {
	if sessionID == "" {
		sessionID = h.NewSession()
	}

	entry := Entry{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Method:    method,
		Timestamp: time.Now().UTC(),
		Inputs:    inputs,
		Result:    result,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := append(h.sessions[sessionID], entry)
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	h.sessions[sessionID] = entries

	return entry
}

// Entries returns a copy of the session's history, oldest first.
func (h *History) Entries(sessionID string) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.sessions[sessionID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Clear drops the session's history.
func (h *History) Clear(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
}

// Summarize computes aggregate statistics over the successful calculations
// of one session.
func (h *History) Summarize(sessionID string) Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	var summary Summary
	seen := map[valuation.Method]bool{}
	var sum float64

	for _, entry := range h.sessions[sessionID] {
		if !entry.Result.Success {
			continue
		}
		v := entry.Result.Valuation
		if summary.Count == 0 || v < summary.Min {
			summary.Min = v
		}
		if summary.Count == 0 || v > summary.Max {
			summary.Max = v
		}
		sum += v
		summary.Count++
		if !seen[entry.Method] {
			seen[entry.Method] = true
			summary.Methods = append(summary.Methods, entry.Method)
		}
	}

	if summary.Count > 0 {
		summary.Mean = sum / float64(summary.Count)
	}
	return summary
}

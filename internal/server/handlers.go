package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/interpres/internal/common"
)

// InterpretRequest is the POST /api/interpret payload
type InterpretRequest struct {
	Query string `json:"query"`
}

// handleInterpret runs one query through the interpreter and returns
// the StructuredQuery as JSON
func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req InterpretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result, err := s.querySvc.Interpret(r.Context(), req.Query)
	if err != nil {
		s.logger.Error().Err(err).Msg("Query interpretation failed")
		http.Error(w, "interpreter unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Warn().Err(err).Str("query_id", result.ID).Msg("Failed to write response")
	}
}

// handleStatus reports version and uptime
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]any{
		"status":      "ok",
		"version":     common.GetVersion(),
		"instance_id": s.instanceID,
		"uptime":      time.Since(s.startedAt).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

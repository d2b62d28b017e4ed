package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/interpret", s.handleInterpret) // POST - interpret one query
	mux.HandleFunc("/api/status", s.handleStatus)       // GET - application status

	// WebSocket route - interactive interpret session
	mux.HandleFunc("/ws", s.handleWebSocket)

	return mux
}

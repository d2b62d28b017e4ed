package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// wsError is sent when a frame cannot be interpreted
type wsError struct {
	Error string `json:"error"`
}

// handleWebSocket runs an interactive interpret session: each text
// frame is one query, answered with the StructuredQuery as JSON
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	s.logger.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client connected")

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			s.logger.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client disconnected")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		text := string(payload)
		if text == "" {
			if err := conn.WriteJSON(wsError{Error: "query is required"}); err != nil {
				return
			}
			continue
		}

		result, err := s.querySvc.Interpret(r.Context(), text)
		if err != nil {
			s.logger.Error().Err(err).Msg("Query interpretation failed")
			if err := conn.WriteJSON(wsError{Error: "interpreter unavailable"}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(result); err != nil {
			s.logger.Warn().Err(err).Str("query_id", result.ID).Msg("Failed to write frame")
			return
		}
	}
}

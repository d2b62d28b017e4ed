// Package server exposes the query interpreter over HTTP and
// websocket. It is a thin collaborator: every endpoint calls the query
// service and forwards the StructuredQuery unchanged.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/interpres/internal/common"
	"github.com/ternarybob/interpres/internal/services/query"
)

// Server manages the HTTP server and routes
type Server struct {
	config     *common.Config
	logger     arbor.ILogger
	querySvc   *query.Service
	router     *http.ServeMux
	server     *http.Server
	limiters   *clientLimiters
	instanceID string
	startedAt  time.Time
}

// New creates a new HTTP server around the query service
func New(config *common.Config, logger arbor.ILogger, querySvc *query.Service) *Server {
	s := &Server{
		config:     config,
		logger:     logger,
		querySvc:   querySvc,
		limiters:   newClientLimiters(config.Server.RateLimit, config.Server.RateBurst),
		instanceID: uuid.New().String(),
		startedAt:  time.Now(),
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("instance_id", s.instanceID).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Package query wires the interpretation pipeline behind a service:
// it owns the one-time alias-index build and logs each query.
package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/interpres/internal/interpret"
	"github.com/ternarybob/interpres/internal/reference"
	"github.com/ternarybob/interpres/pkg/models"
)

// Service interprets free-form financial questions. Reference data is
// injected at construction; the derived indexes are built lazily on
// first use and read-only afterwards.
type Service struct {
	data          *reference.Data
	logger        arbor.ILogger
	defaultTicker string
	preferFiscal  bool
	concurrent    bool

	buildOnce   sync.Once
	buildErr    error
	interpreter *interpret.Interpreter
}

// NewService creates a query interpretation service.
func NewService(data *reference.Data, logger arbor.ILogger) *Service {
	return &Service{
		data:         data,
		logger:       logger,
		preferFiscal: true,
	}
}

// WithDefaultTicker overrides the entity substituted when a query
// resolves no ticker.
func (s *Service) WithDefaultTicker(ticker string) *Service {
	s.defaultTicker = ticker
	return s
}

// WithCalendarPreference resolves bare periods on a calendar basis.
func (s *Service) WithCalendarPreference() *Service {
	s.preferFiscal = false
	return s
}

// WithConcurrentExtraction fans the extractor stages out instead of
// running them serially.
func (s *Service) WithConcurrentExtraction() *Service {
	s.concurrent = true
	return s
}

// build constructs the alias index and metric table exactly once.
func (s *Service) build() {
	if err := s.data.Validate(); err != nil {
		s.buildErr = fmt.Errorf("reference data rejected: %w", err)
		return
	}

	index, err := interpret.BuildAliasIndex(s.data.UniverseTickers(), s.data.CanonicalNames(), s.data.AliasOverrides())
	if err != nil {
		s.buildErr = fmt.Errorf("alias index build failed: %w", err)
		return
	}
	table := interpret.NewMetricTable(s.data.MetricSynonyms())

	opts := []interpret.Option{}
	if s.defaultTicker != "" {
		opts = append(opts, interpret.WithDefaultTicker(s.defaultTicker))
	}
	if !s.preferFiscal {
		opts = append(opts, interpret.WithCalendarPreference())
	}
	s.interpreter = interpret.NewInterpreter(index, table, opts...)

	s.logger.Info().
		Int("tickers", len(s.data.Companies)).
		Int("metrics", len(s.data.Metrics)).
		Int("overrides", len(s.data.Overrides)).
		Msg("Query interpreter initialized")
}

// Interpret turns one free-form question into a StructuredQuery. It
// returns an error only when the reference data failed to build; a bad
// query always produces a result with warnings instead.
func (s *Service) Interpret(ctx context.Context, text string) (*models.StructuredQuery, error) {
	s.buildOnce.Do(s.build)
	if s.buildErr != nil {
		return nil, s.buildErr
	}

	var result *models.StructuredQuery
	if s.concurrent {
		result = s.interpreter.InterpretConcurrent(ctx, text)
	} else {
		result = s.interpreter.Interpret(text)
	}

	s.logger.Debug().
		Str("query_id", result.ID).
		Str("intent", string(result.Intent)).
		Int("entities", len(result.Entities)).
		Int("metrics", len(result.Metrics)).
		Int("warnings", len(result.Warnings)).
		Msg("Query interpreted")

	return result, nil
}

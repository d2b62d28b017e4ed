package interpret

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ternarybob/interpres/pkg/models"
)

// Warnings recorded by the orchestrator's default-fallback policy.
const (
	WarningMissingTicker      = "missing_ticker"
	WarningMissingMetric      = "missing_metric"
	WarningDefaultTickerLabel = "default_ticker:"

	// DefaultTicker is substituted when no entity resolves.
	DefaultTicker = "AAPL"

	extractorStages = 6
)

// Interpreter runs the full extraction pipeline against one query. The
// alias index and metric table are injected at construction and treated
// as read-only, so one Interpreter serves concurrent callers.
type Interpreter struct {
	aliases       *AliasIndex
	metrics       *MetricTable
	defaultTicker string
	preferFiscal  bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDefaultTicker overrides the entity substituted for queries that
// resolve no ticker.
func WithDefaultTicker(ticker string) Option {
	return func(i *Interpreter) {
		if ticker != "" {
			i.defaultTicker = ticker
		}
	}
}

// WithCalendarPreference makes bare periods resolve on a calendar basis
// instead of the default fiscal basis.
func WithCalendarPreference() Option {
	return func(i *Interpreter) { i.preferFiscal = false }
}

// NewInterpreter wires the pipeline around prebuilt reference indexes.
func NewInterpreter(aliases *AliasIndex, metrics *MetricTable, opts ...Option) *Interpreter {
	interp := &Interpreter{
		aliases:       aliases,
		metrics:       metrics,
		defaultTicker: DefaultTicker,
		preferFiscal:  true,
	}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// Interpret runs every extractor serially and merges the results into
// one immutable StructuredQuery. Malformed or under-specified input
// never fails: each stage degrades to its sentinel value and records a
// warning instead.
func (i *Interpreter) Interpret(text string) *models.StructuredQuery {
	normalized := Normalize(text)

	entities, entityWarnings := i.aliases.ResolveFreeform(text)
	metrics := i.metrics.ResolveMetrics(text)
	period := ParsePeriod(normalized, i.preferFiscal)
	quantities := ExtractFuzzyQuantities(normalized)
	negations := ExtractNegations(normalized)
	temporals := ExtractTemporalRelationships(normalized)

	return i.merge(text, normalized, entities, entityWarnings, metrics, period, quantities, negations, temporals)
}

// InterpretConcurrent is Interpret with the independent extractor
// stages fanned out on an errgroup, bounded by the stage count. Output
// is identical to the serial form.
func (i *Interpreter) InterpretConcurrent(ctx context.Context, text string) *models.StructuredQuery {
	normalized := Normalize(text)

	var (
		entities       []models.ResolvedEntity
		entityWarnings []string
		metrics        []models.ResolvedMetric
		period         models.PeriodDescriptor
		quantities     []models.FuzzyQuantity
		negations      []models.NegationSpan
		temporals      []models.TemporalRelationship
	)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(extractorStages)
	g.Go(func() error {
		entities, entityWarnings = i.aliases.ResolveFreeform(text)
		return nil
	})
	g.Go(func() error {
		metrics = i.metrics.ResolveMetrics(text)
		return nil
	})
	g.Go(func() error {
		period = ParsePeriod(normalized, i.preferFiscal)
		return nil
	})
	g.Go(func() error {
		quantities = ExtractFuzzyQuantities(normalized)
		return nil
	})
	g.Go(func() error {
		negations = ExtractNegations(normalized)
		return nil
	})
	g.Go(func() error {
		temporals = ExtractTemporalRelationships(normalized)
		return nil
	})
	// Extractors are pure and never error; Wait only synchronizes.
	_ = g.Wait()

	return i.merge(text, normalized, entities, entityWarnings, metrics, period, quantities, negations, temporals)
}

// merge applies the default-fallback policy and assembles the final
// record. Ticker-resolution warnings come first, then the remaining
// stages in pipeline order.
func (i *Interpreter) merge(
	raw, normalized string,
	entities []models.ResolvedEntity,
	entityWarnings []string,
	metrics []models.ResolvedMetric,
	period models.PeriodDescriptor,
	quantities []models.FuzzyQuantity,
	negations []models.NegationSpan,
	temporals []models.TemporalRelationship,
) *models.StructuredQuery {
	warnings := append([]string{}, entityWarnings...)

	if len(entities) == 0 {
		warnings = append(warnings, WarningMissingTicker, WarningDefaultTickerLabel+i.defaultTicker)
		entities = []models.ResolvedEntity{{
			InputText: i.defaultTicker,
			Ticker:    i.defaultTicker,
			Position:  0,
		}}
	}
	if len(metrics) == 0 {
		// No default is substituted for metrics.
		warnings = append(warnings, WarningMissingMetric)
	}
	warnings = append(warnings, period.Warnings...)

	return &models.StructuredQuery{
		ID:                    uuid.New().String(),
		Intent:                ClassifyIntent(len(entities), normalized, period.Kind),
		Entities:              entities,
		Metrics:               metrics,
		Period:                period,
		FuzzyQuantities:       quantities,
		Negations:             negations,
		TemporalRelationships: temporals,
		Warnings:              warnings,
		RawText:               raw,
	}
}

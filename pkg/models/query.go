// Package models defines the shared data types exchanged between the
// interpreter core and its collaborators.
package models

// Intent is the coarse task category a query belongs to.
type Intent string

const (
	IntentLookup        Intent = "lookup"
	IntentCompare       Intent = "compare"
	IntentTrend         Intent = "trend"
	IntentRank          Intent = "rank"
	IntentExplainMetric Intent = "explain_metric"
)

// PeriodKind describes the shape of a resolved period.
type PeriodKind string

const (
	PeriodSingle   PeriodKind = "single"
	PeriodRange    PeriodKind = "range"
	PeriodMulti    PeriodKind = "multi"
	PeriodRelative PeriodKind = "relative"
	PeriodLatest   PeriodKind = "latest"
)

// Granularity is the time resolution of a period combined with its
// calendar basis.
type Granularity string

const (
	GranularityFiscalYear      Granularity = "fiscal_year"
	GranularityCalendarYear    Granularity = "calendar_year"
	GranularityFiscalQuarter   Granularity = "fiscal_quarter"
	GranularityCalendarQuarter Granularity = "calendar_quarter"
)

// QuantityKind classifies a detected fuzzy quantity.
type QuantityKind string

const (
	QuantityApproximation  QuantityKind = "approximation"
	QuantityThresholdUpper QuantityKind = "threshold_upper"
	QuantityThresholdLower QuantityKind = "threshold_lower"
	QuantityRange          QuantityKind = "range"
	QuantityExact          QuantityKind = "exact"
)

// NegationKind classifies a detected negation span.
type NegationKind string

const (
	NegationBasic     NegationKind = "basic"
	NegationExclusion NegationKind = "exclusion"
	NegationThreshold NegationKind = "threshold"
)

// TemporalKind classifies a temporal relationship.
type TemporalKind string

const (
	TemporalBefore  TemporalKind = "before"
	TemporalAfter   TemporalKind = "after"
	TemporalDuring  TemporalKind = "during"
	TemporalWithin  TemporalKind = "within"
	TemporalSince   TemporalKind = "since"
	TemporalUntil   TemporalKind = "until"
	TemporalBetween TemporalKind = "between"
)

// EventName identifies a named macro-economic event.
type EventName string

const (
	EventNone            EventName = "none"
	EventPandemic        EventName = "pandemic"
	EventFinancialCrisis EventName = "financial_crisis"
	EventRecession       EventName = "recession"
	EventCrisisGeneric   EventName = "crisis_generic"
)

// ResolvedEntity is a company reference resolved to a ticker symbol.
// Position is a character offset into the original text, used for
// ordering and adjacency heuristics.
type ResolvedEntity struct {
	InputText string `json:"input_text"`
	Ticker    string `json:"ticker"`
	Position  int    `json:"position"`
}

// ResolvedMetric is a metric phrase resolved to a canonical metric id.
type ResolvedMetric struct {
	InputText string `json:"input_text"`
	MetricID  string `json:"metric_id"`
	Position  int    `json:"position"`
}

// PeriodItem is one concrete fiscal point. Quarter is 0 when the item
// covers a whole year.
type PeriodItem struct {
	FiscalYear    int `json:"fiscal_year"`
	FiscalQuarter int `json:"fiscal_quarter,omitempty"`
}

// PeriodDescriptor is the normalized result of the period grammar.
type PeriodDescriptor struct {
	Kind              PeriodKind   `json:"kind"`
	Granularity       Granularity  `json:"granularity"`
	Items             []PeriodItem `json:"items,omitempty"`
	NormalizeToFiscal bool         `json:"normalize_to_fiscal"`
	Warnings          []string     `json:"warnings,omitempty"`
}

// FuzzyQuantity is a detected approximate, threshold, range, or exact
// numeric value. Tolerance is fractional and only set for approximations.
type FuzzyQuantity struct {
	ValueText    string       `json:"value_text"`
	Kind         QuantityKind `json:"kind"`
	ModifierText string       `json:"modifier_text,omitempty"`
	RangeStart   string       `json:"range_start,omitempty"`
	RangeEnd     string       `json:"range_end,omitempty"`
	Tolerance    float64      `json:"tolerance,omitempty"`
	Confidence   float64      `json:"confidence"`
	Position     int          `json:"position"`
}

// NegationSpan is a detected negation, exclusion, or threshold-negation
// phrase together with the scope it applies to.
type NegationSpan struct {
	Kind        NegationKind `json:"kind"`
	TriggerText string       `json:"trigger_text"`
	ScopeText   string       `json:"scope_text"`
	Confidence  float64      `json:"confidence"`
}

// TemporalRelationship is a detected temporal relation, optionally
// anchored to a named macro-economic event.
type TemporalRelationship struct {
	Kind          TemporalKind `json:"kind"`
	TimeReference string       `json:"time_reference"`
	Event         EventName    `json:"event"`
	Confidence    float64      `json:"confidence"`
}

// EventTimeframe is the static year/quarter span of a named event.
type EventTimeframe struct {
	StartYear int   `json:"start_year"`
	EndYear   int   `json:"end_year"`
	Quarters  []int `json:"quarters,omitempty"`
}

// StructuredQuery is the final artifact of query interpretation. It is
// read-only output: never mutated after construction and holds no
// references back into interpreter state.
type StructuredQuery struct {
	ID                    string                 `json:"id"`
	Intent                Intent                 `json:"intent"`
	Entities              []ResolvedEntity       `json:"entities"`
	Metrics               []ResolvedMetric       `json:"metrics"`
	Period                PeriodDescriptor       `json:"period"`
	FuzzyQuantities       []FuzzyQuantity        `json:"fuzzy_quantities,omitempty"`
	Negations             []NegationSpan         `json:"negations,omitempty"`
	TemporalRelationships []TemporalRelationship `json:"temporal_relationships,omitempty"`
	Warnings              []string               `json:"warnings,omitempty"`
	RawText               string                 `json:"raw_text"`
}

// Tickers returns the distinct resolved ticker symbols in order.
func (q *StructuredQuery) Tickers() []string {
	tickers := make([]string, 0, len(q.Entities))
	for _, e := range q.Entities {
		tickers = append(tickers, e.Ticker)
	}
	return tickers
}

// MetricIDs returns the distinct resolved metric ids in order.
func (q *StructuredQuery) MetricIDs() []string {
	ids := make([]string, 0, len(q.Metrics))
	for _, m := range q.Metrics {
		ids = append(ids, m.MetricID)
	}
	return ids
}

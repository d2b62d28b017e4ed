package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/interpres/pkg/models"
)

func TestExtractNegations_Basic(t *testing.T) {
	got := ExtractNegations("companies that aren't risky")
	require.Len(t, got, 1)
	assert.Equal(t, models.NegationBasic, got[0].Kind)
	assert.Equal(t, "aren't", got[0].TriggerText)
	assert.Equal(t, "risky", got[0].ScopeText)
}

func TestExtractNegations_Exclusion(t *testing.T) {
	tests := []struct {
		text        string
		wantTrigger string
		wantScope   string
	}{
		{"all sectors excluding tech", "excluding", "tech"},
		{"everything except for energy stocks", "except for", "energy stocks"},
		{"portfolio without financials", "without", "financials"},
	}

	for _, tt := range tests {
		got := ExtractNegations(tt.text)
		require.Len(t, got, 1, "text %q", tt.text)
		assert.Equal(t, models.NegationExclusion, got[0].Kind)
		assert.Equal(t, tt.wantTrigger, got[0].TriggerText)
		assert.Equal(t, tt.wantScope, got[0].ScopeText)
	}
}

func TestExtractNegations_Threshold(t *testing.T) {
	got := ExtractNegations("debt not exceeding $2b")
	require.Len(t, got, 1)
	assert.Equal(t, models.NegationThreshold, got[0].Kind)
	assert.Equal(t, "not exceeding", got[0].TriggerText)
	assert.Equal(t, "$2b", got[0].ScopeText)
}

func TestExtractNegations_ThresholdNeedsNumericScope(t *testing.T) {
	// "under pressure" is not a threshold negation.
	got := ExtractNegations("companies under pressure lately")
	assert.Empty(t, got)
}

func TestExtractNegations_IdiomsDoNotCount(t *testing.T) {
	texts := []string{
		"why not invest in apple",
		"not only profitable but growing",
		"not just revenue growth",
	}
	for _, text := range texts {
		got := ExtractNegations(text)
		assert.Empty(t, got, "text %q", text)
	}
}

func TestExtractNegations_NegativePrefixedAdjective(t *testing.T) {
	got := ExtractNegations("screen for unprofitable companies")
	require.Len(t, got, 1)
	assert.Equal(t, models.NegationBasic, got[0].Kind)
	assert.Equal(t, "unprofitable", got[0].TriggerText)
	assert.Equal(t, "unprofitable", got[0].ScopeText)
}

func TestExtractNegations_ScopeStopsAtClauseBoundary(t *testing.T) {
	got := ExtractNegations("stocks that aren't volatile and have high yield")
	require.Len(t, got, 1)
	assert.Equal(t, "volatile", got[0].ScopeText)
}

func TestExtractNegations_ConfidenceScoring(t *testing.T) {
	weak := ExtractNegations("doesn't grow anymore")
	require.Len(t, weak, 1)
	assert.InDelta(t, 0.70, weak[0].Confidence, 1e-9)

	// Strong trigger plus financial scope term.
	strong := ExtractNegations("excluding tech stocks")
	require.Len(t, strong, 1)
	assert.InDelta(t, 0.95, strong[0].Confidence, 1e-9)
}

func TestApplyNegationToFilters_RiskExclusion(t *testing.T) {
	spans := []models.NegationSpan{
		{Kind: models.NegationBasic, TriggerText: "aren't", ScopeText: "risky"},
	}
	got, warnings := ApplyNegationToFilters(map[string]any{"universe": "us"}, spans)
	assert.Empty(t, warnings)
	assert.Equal(t, "exclude_high", got["risk_level"])
	assert.Equal(t, "us", got["universe"])
}

func TestApplyNegationToFilters_SectorExclusion(t *testing.T) {
	spans := []models.NegationSpan{
		{Kind: models.NegationExclusion, TriggerText: "excluding", ScopeText: "tech"},
		{Kind: models.NegationExclusion, TriggerText: "without", ScopeText: "energy"},
	}
	forward, _ := ApplyNegationToFilters(map[string]any{}, spans)
	reversed, _ := ApplyNegationToFilters(map[string]any{}, []models.NegationSpan{spans[1], spans[0]})

	assert.Equal(t, []string{"energy", "tech"}, forward["sector_exclude"])
	assert.Equal(t, forward["sector_exclude"], reversed["sector_exclude"])
}

func TestApplyNegationToFilters_Threshold(t *testing.T) {
	spans := []models.NegationSpan{
		{Kind: models.NegationThreshold, TriggerText: "not exceeding", ScopeText: "$2b"},
	}
	got, warnings := ApplyNegationToFilters(map[string]any{}, spans)
	assert.Empty(t, warnings)
	assert.Equal(t, 2e9, got["threshold_upper"])
}

func TestApplyNegationToFilters_UnmappedScopeWarns(t *testing.T) {
	spans := []models.NegationSpan{
		{Kind: models.NegationBasic, TriggerText: "doesn't", ScopeText: "innovate"},
	}
	got, warnings := ApplyNegationToFilters(map[string]any{}, spans)
	assert.Equal(t, []string{WarningUnmappedNegation + ":basic"}, warnings)
	assert.NotContains(t, got, "risk_level")
}

func TestApplyNegationToFilters_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"universe": "us"}
	spans := []models.NegationSpan{
		{Kind: models.NegationBasic, TriggerText: "aren't", ScopeText: "risky"},
	}
	_, _ = ApplyNegationToFilters(in, spans)
	assert.Equal(t, map[string]any{"universe": "us"}, in)
}

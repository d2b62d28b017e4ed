package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/interpres/pkg/models"
)

func TestExtractTemporalRelationships_EventAnchors(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantKind  models.TemporalKind
		wantEvent models.EventName
		wantRef   string
	}{
		{"during pandemic", "revenue during the pandemic", models.TemporalDuring, models.EventPandemic, "pandemic"},
		{"after crisis", "recovery after the financial crisis", models.TemporalAfter, models.EventFinancialCrisis, "financial crisis"},
		{"before covid", "margins before covid", models.TemporalBefore, models.EventPandemic, "covid"},
		{"since recession", "growth since the recession", models.TemporalSince, models.EventRecession, "recession"},
		{"during crash", "performance during the market crash", models.TemporalDuring, models.EventCrisisGeneric, "market crash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTemporalRelationships(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantKind, got[0].Kind)
			assert.Equal(t, tt.wantEvent, got[0].Event)
			assert.Equal(t, tt.wantRef, got[0].TimeReference)
		})
	}
}

func TestExtractTemporalRelationships_YearAnchors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind models.TemporalKind
		wantRef  string
	}{
		{"before year", "eps before 2020", models.TemporalBefore, "2020"},
		{"since year", "dividends since 2015", models.TemporalSince, "2015"},
		{"until year", "guidance until 2026", models.TemporalUntil, "2026"},
		{"after quarter", "sales after q2 2023", models.TemporalAfter, "q2 2023"},
		{"during early year", "stock during early 2021", models.TemporalDuring, "early 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTemporalRelationships(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantKind, got[0].Kind)
			assert.Equal(t, tt.wantRef, got[0].TimeReference)
			assert.Equal(t, models.EventNone, got[0].Event)
		})
	}
}

func TestExtractTemporalRelationships_Between(t *testing.T) {
	got := ExtractTemporalRelationships("performance between 2018 and 2021")
	require.Len(t, got, 1)
	assert.Equal(t, models.TemporalBetween, got[0].Kind)
	assert.Equal(t, "2018-2021", got[0].TimeReference)
	assert.Equal(t, models.EventNone, got[0].Event)
}

func TestExtractTemporalRelationships_FalsePositives(t *testing.T) {
	texts := []string{
		"when was apple founded",
		"before you invest in tesla",
		"after they reported earnings",
		"no temporal language here at all",
		"during a strong growth phase",
	}
	for _, text := range texts {
		got := ExtractTemporalRelationships(text)
		assert.Empty(t, got, "text %q", text)
	}
}

func TestExtractTemporalRelationships_ConfidenceScoring(t *testing.T) {
	event := ExtractTemporalRelationships("revenue during the pandemic")
	require.Len(t, event, 1)
	// Base plus event anchor plus nearby financial term.
	assert.InDelta(t, 0.80, event[0].Confidence, 1e-9)

	year := ExtractTemporalRelationships("revenue since 2015")
	require.Len(t, year, 1)
	// Base plus explicit year plus nearby financial term.
	assert.InDelta(t, 0.85, year[0].Confidence, 1e-9)

	generic := ExtractTemporalRelationships("performance during the market crash")
	require.Len(t, generic, 1)
	assert.Equal(t, models.EventCrisisGeneric, generic[0].Event)
	// Generic crisis phrases skip the event anchor boost.
	assert.InDelta(t, 0.75, generic[0].Confidence, 1e-9)
	assert.Less(t, generic[0].Confidence, event[0].Confidence)
}

func TestGetEventTimeframe(t *testing.T) {
	tests := []struct {
		event     models.EventName
		wantStart int
		wantEnd   int
		wantQs    []int
	}{
		{models.EventPandemic, 2020, 2021, []int{1, 2, 3, 4}},
		{models.EventFinancialCrisis, 2008, 2009, []int{1, 2, 3, 4}},
		{models.EventRecession, 2020, 2020, []int{1, 2}},
		{models.EventCrisisGeneric, 2008, 2009, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		tf, ok := GetEventTimeframe(tt.event)
		require.True(t, ok, "event %s", tt.event)
		assert.Equal(t, tt.wantStart, tf.StartYear)
		assert.Equal(t, tt.wantEnd, tf.EndYear)
		assert.Equal(t, tt.wantQs, tf.Quarters)
	}

	_, ok := GetEventTimeframe(models.EventNone)
	assert.False(t, ok)
}

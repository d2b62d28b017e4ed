package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/interpres/internal/reference"
	"github.com/ternarybob/interpres/pkg/models"
)

func TestService_Interpret(t *testing.T) {
	svc := NewService(reference.Default(), arbor.NewLogger())

	result, err := svc.Interpret(context.Background(), "Compare AAPL and MSFT revenue over the last 3 years")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCompare, result.Intent)
	assert.Equal(t, []string{"AAPL", "MSFT"}, result.Tickers())
	assert.Equal(t, []string{"revenue"}, result.MetricIDs())
}

func TestService_InterpretConcurrent(t *testing.T) {
	svc := NewService(reference.Default(), arbor.NewLogger()).WithConcurrentExtraction()

	result, err := svc.Interpret(context.Background(), "Revenue during the pandemic")
	require.NoError(t, err)
	require.Len(t, result.TemporalRelationships, 1)
	assert.Equal(t, models.EventPandemic, result.TemporalRelationships[0].Event)
}

func TestService_DefaultTickerOption(t *testing.T) {
	svc := NewService(reference.Default(), arbor.NewLogger()).WithDefaultTicker("MSFT")

	result, err := svc.Interpret(context.Background(), "show me revenue")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, result.Tickers())
}

func TestService_RejectsCorruptReferenceData(t *testing.T) {
	data := &reference.Data{
		Companies: []reference.Company{{Ticker: "AAPL", Name: "Apple Inc"}},
		Metrics:   []reference.Metric{{ID: "revenue"}},
		Overrides: []reference.Override{{Alias: "tesla", Ticker: "TSLA", Priority: 10}},
	}
	svc := NewService(data, arbor.NewLogger())

	_, err := svc.Interpret(context.Background(), "apple revenue")
	require.Error(t, err)

	// The failed build is sticky.
	_, err2 := svc.Interpret(context.Background(), "apple revenue")
	assert.Equal(t, err.Error(), err2.Error())
}

func TestService_BuildHappensOnce(t *testing.T) {
	svc := NewService(reference.Default(), arbor.NewLogger())

	first, err := svc.Interpret(context.Background(), "apple revenue")
	require.NoError(t, err)
	second, err := svc.Interpret(context.Background(), "apple revenue")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Tickers(), second.Tickers())
}

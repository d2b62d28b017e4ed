package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/interpres/pkg/models"
)

func TestParsePeriod_SingleYears(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		preferFiscal bool
		wantKind     models.PeriodKind
		wantGran     models.Granularity
		wantItems    []models.PeriodItem
	}{
		{
			name: "fiscal year token", text: "revenue for fy2022", preferFiscal: true,
			wantKind: models.PeriodSingle, wantGran: models.GranularityFiscalYear,
			wantItems: []models.PeriodItem{{FiscalYear: 2022}},
		},
		{
			name: "fy token forces fiscal basis", text: "revenue for fy2022", preferFiscal: false,
			wantKind: models.PeriodSingle, wantGran: models.GranularityFiscalYear,
			wantItems: []models.PeriodItem{{FiscalYear: 2022}},
		},
		{
			name: "calendar token overrides preference", text: "revenue for calendar 2022", preferFiscal: true,
			wantKind: models.PeriodSingle, wantGran: models.GranularityCalendarYear,
			wantItems: []models.PeriodItem{{FiscalYear: 2022}},
		},
		{
			name: "bare year follows preference", text: "revenue in 2023", preferFiscal: true,
			wantKind: models.PeriodSingle, wantGran: models.GranularityFiscalYear,
			wantItems: []models.PeriodItem{{FiscalYear: 2023}},
		},
		{
			name: "two digit fiscal year", text: "results for fy24", preferFiscal: true,
			wantKind: models.PeriodSingle, wantGran: models.GranularityFiscalYear,
			wantItems: []models.PeriodItem{{FiscalYear: 2024}},
		},
		{
			name: "pivot sends high two digit years back", text: "results for fy98", preferFiscal: true,
			wantKind: models.PeriodSingle, wantGran: models.GranularityFiscalYear,
			wantItems: []models.PeriodItem{{FiscalYear: 1998}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePeriod(tt.text, tt.preferFiscal)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantGran, got.Granularity)
			assert.Equal(t, tt.wantItems, got.Items)
			assert.Empty(t, got.Warnings)
		})
	}
}

func TestParsePeriod_Quarters(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantItem models.PeriodItem
		wantGran models.Granularity
	}{
		{"quarter first", "q1 2024 earnings", models.PeriodItem{FiscalYear: 2024, FiscalQuarter: 1}, models.GranularityFiscalQuarter},
		{"quarter of year", "q3 of 2022", models.PeriodItem{FiscalYear: 2022, FiscalQuarter: 3}, models.GranularityFiscalQuarter},
		{"year first", "2024 q2 results", models.PeriodItem{FiscalYear: 2024, FiscalQuarter: 2}, models.GranularityFiscalQuarter},
		{"apostrophe short year", "q1'24 results", models.PeriodItem{FiscalYear: 2024, FiscalQuarter: 1}, models.GranularityFiscalQuarter},
		{"calendar quarter", "calendar q2 2023", models.PeriodItem{FiscalYear: 2023, FiscalQuarter: 2}, models.GranularityCalendarQuarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePeriod(tt.text, true)
			require.Len(t, got.Items, 1)
			assert.Equal(t, tt.wantItem, got.Items[0])
			assert.Equal(t, models.PeriodSingle, got.Kind)
			assert.Equal(t, tt.wantGran, got.Granularity)
		})
	}
}

func TestParsePeriod_QuarterConsumesYearSpan(t *testing.T) {
	// The year inside "q1 2024" must not also surface as a bare year.
	got := ParsePeriod("q1 2024", true)
	require.Len(t, got.Items, 1)
	assert.Equal(t, models.PeriodSingle, got.Kind)
}

func TestParsePeriod_Ranges(t *testing.T) {
	want := models.PeriodDescriptor{
		Kind:        models.PeriodRange,
		Granularity: models.GranularityFiscalYear,
		Items: []models.PeriodItem{
			{FiscalYear: 2018},
			{FiscalYear: 2020},
		},
		NormalizeToFiscal: true,
	}

	texts := []string{
		"revenue from 2018 to 2020",
		"revenue 2018-2020",
		"revenue between 2018 and 2020",
		"revenue between 2020 and 2018",
		"revenue from 2018 through 2020",
	}
	for _, text := range texts {
		got := ParsePeriod(text, true)
		assert.Equal(t, want, got, "text %q", text)
	}
}

func TestParsePeriod_DegenerateRangeIsSingle(t *testing.T) {
	got := ParsePeriod("revenue from 2020 to 2020", true)
	assert.Equal(t, models.PeriodSingle, got.Kind)
	assert.Equal(t, []models.PeriodItem{{FiscalYear: 2020}}, got.Items)
}

func TestParsePeriod_MultipleDiscreteYears(t *testing.T) {
	got := ParsePeriod("compare 2023 and 2021 and 2023", true)
	assert.Equal(t, models.PeriodMulti, got.Kind)
	// Deduplicated and sorted ascending.
	assert.Equal(t, []models.PeriodItem{{FiscalYear: 2021}, {FiscalYear: 2023}}, got.Items)
}

func TestParsePeriod_RelativeWindows(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		preferFiscal bool
		wantGran     models.Granularity
	}{
		{"last n years fiscal", "over the last 3 years", true, models.GranularityFiscalYear},
		{"last n years calendar", "over the last 3 years", false, models.GranularityCalendarYear},
		{"trailing quarters", "trailing 4 quarters", true, models.GranularityFiscalQuarter},
		{"past quarters calendar", "past 2 quarters", false, models.GranularityCalendarQuarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePeriod(tt.text, tt.preferFiscal)
			assert.Equal(t, models.PeriodRelative, got.Kind)
			assert.Equal(t, tt.wantGran, got.Granularity)
			assert.Empty(t, got.Items)
		})
	}
}

func TestParsePeriod_LatestFallback(t *testing.T) {
	got := ParsePeriod("current revenue for apple", true)
	assert.Equal(t, models.PeriodLatest, got.Kind)
	assert.Empty(t, got.Items)
	assert.Equal(t, []string{WarningMissingPeriod}, got.Warnings)
}

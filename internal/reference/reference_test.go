package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	data := Default()
	require.NoError(t, data.Validate())
	assert.NotEmpty(t, data.Companies)
	assert.NotEmpty(t, data.Metrics)
}

func TestDefault_OverridesTargetUniverse(t *testing.T) {
	data := Default()
	tickers := make(map[string]bool)
	for _, ticker := range data.UniverseTickers() {
		tickers[ticker] = true
	}
	for _, ov := range data.Overrides {
		assert.True(t, tickers[ov.Ticker], "override %q targets %q", ov.Alias, ov.Ticker)
	}
}

func TestValidate_Failures(t *testing.T) {
	base := func() *Data {
		return &Data{
			Companies: []Company{
				{Ticker: "AAPL", Name: "Apple Inc"},
				{Ticker: "MSFT", Name: "Microsoft Corporation"},
			},
			Metrics: []Metric{{ID: "revenue", Synonyms: []string{"sales"}}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Data)
	}{
		{"empty universe", func(d *Data) { d.Companies = nil }},
		{"empty metrics", func(d *Data) { d.Metrics = nil }},
		{"lowercase ticker", func(d *Data) { d.Companies[0].Ticker = "aapl" }},
		{"missing name", func(d *Data) { d.Companies[0].Name = "" }},
		{"uppercase metric id", func(d *Data) { d.Metrics[0].ID = "Revenue" }},
		{"duplicate ticker", func(d *Data) {
			d.Companies = append(d.Companies, Company{Ticker: "AAPL", Name: "Apple Again"})
		}},
		{"duplicate metric id", func(d *Data) {
			d.Metrics = append(d.Metrics, Metric{ID: "revenue"})
		}},
		{"override unknown ticker", func(d *Data) {
			d.Overrides = []Override{{Alias: "tesla", Ticker: "TSLA", Priority: 10}}
		}},
		{"override empty alias", func(d *Data) {
			d.Overrides = []Override{{Alias: "", Ticker: "AAPL", Priority: 10}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := base()
			tt.mutate(data)
			assert.Error(t, data.Validate())
		})
	}
}

func TestMetricSynonyms(t *testing.T) {
	data := &Data{
		Companies: []Company{{Ticker: "AAPL", Name: "Apple Inc"}},
		Metrics: []Metric{
			{ID: "free_cash_flow", Synonyms: []string{"fcf"}},
		},
	}
	got := data.MetricSynonyms()
	assert.Equal(t, "free_cash_flow", got["fcf"])
	assert.Equal(t, "free_cash_flow", got["free cash flow"])
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.toml")
	content := `
[[companies]]
ticker = "AAPL"
name = "Apple Inc"

[[metrics]]
id = "revenue"
synonyms = ["sales", "top line"]

[[overrides]]
alias = "the iphone company"
ticker = "AAPL"
priority = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, data.UniverseTickers())
	assert.Equal(t, "Apple Inc", data.CanonicalNames()["AAPL"])
	require.Len(t, data.Overrides, 1)
	assert.Equal(t, "the iphone company", data.AliasOverrides()[0].Alias)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	content := `
companies:
  - ticker: MSFT
    name: Microsoft Corporation
metrics:
  - id: revenue
    synonyms: [sales]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, data.UniverseTickers())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	badExt := filepath.Join(dir, "reference.json")
	require.NoError(t, os.WriteFile(badExt, []byte("{}"), 0o644))
	_, err = LoadFile(badExt)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("companies = 5"), 0o644))
	_, err = LoadFile(invalid)
	assert.Error(t, err)

	// Parses but fails validation: no metrics.
	incomplete := filepath.Join(dir, "incomplete.toml")
	require.NoError(t, os.WriteFile(incomplete, []byte("[[companies]]\nticker = \"AAPL\"\nname = \"Apple Inc\"\n"), 0o644))
	_, err = LoadFile(incomplete)
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, data.Companies)
}

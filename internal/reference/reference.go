// Package reference loads the static reference data the interpreter is
// built from: the ticker universe with canonical company names, the
// metric-synonym table, and the manual alias-override table. Data comes
// from TOML or YAML files, or from the compiled-in default dataset.
// Loading happens once at startup; the interpreter core never reads
// files itself.
package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/interpres/internal/interpret"
)

// Company is one universe entry: a ticker and its canonical name.
type Company struct {
	Ticker string `toml:"ticker" yaml:"ticker" validate:"required,uppercase"`
	Name   string `toml:"name" yaml:"name" validate:"required"`
}

// Metric maps a canonical snake-case metric id to its synonym phrases.
type Metric struct {
	ID       string   `toml:"id" yaml:"id" validate:"required,lowercase"`
	Synonyms []string `toml:"synonyms" yaml:"synonyms"`
}

// Override forces an alias onto a ticker with exclusive ownership.
type Override struct {
	Alias    string `toml:"alias" yaml:"alias" validate:"required"`
	Ticker   string `toml:"ticker" yaml:"ticker" validate:"required,uppercase"`
	Priority int    `toml:"priority" yaml:"priority"`
}

// Data is the full reference dataset handed to the interpreter.
type Data struct {
	Companies []Company  `toml:"companies" yaml:"companies" validate:"required,min=1,dive"`
	Metrics   []Metric   `toml:"metrics" yaml:"metrics" validate:"required,min=1,dive"`
	Overrides []Override `toml:"overrides" yaml:"overrides" validate:"dive"`
}

var validate = validator.New()

// Validate checks structural constraints plus cross-references:
// override targets must exist in the universe, and tickers must be
// unique. Violations are build-time contract failures.
func (d *Data) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("reference data validation failed: %w", err)
	}

	tickers := make(map[string]bool, len(d.Companies))
	for _, c := range d.Companies {
		if tickers[c.Ticker] {
			return fmt.Errorf("duplicate ticker %q in universe", c.Ticker)
		}
		tickers[c.Ticker] = true
	}
	for _, ov := range d.Overrides {
		if !tickers[ov.Ticker] {
			return fmt.Errorf("override %q targets unknown ticker %q", ov.Alias, ov.Ticker)
		}
	}

	ids := make(map[string]bool, len(d.Metrics))
	for _, m := range d.Metrics {
		if ids[m.ID] {
			return fmt.Errorf("duplicate metric id %q", m.ID)
		}
		ids[m.ID] = true
	}
	return nil
}

// UniverseTickers returns the ticker symbols in universe order.
func (d *Data) UniverseTickers() []string {
	out := make([]string, 0, len(d.Companies))
	for _, c := range d.Companies {
		out = append(out, c.Ticker)
	}
	return out
}

// CanonicalNames returns the ticker -> canonical-name table.
func (d *Data) CanonicalNames() map[string]string {
	out := make(map[string]string, len(d.Companies))
	for _, c := range d.Companies {
		out[c.Ticker] = c.Name
	}
	return out
}

// AliasOverrides converts the override table to the interpreter form.
func (d *Data) AliasOverrides() []interpret.AliasOverride {
	out := make([]interpret.AliasOverride, 0, len(d.Overrides))
	for _, ov := range d.Overrides {
		out = append(out, interpret.AliasOverride{
			Alias:    ov.Alias,
			Ticker:   ov.Ticker,
			Priority: ov.Priority,
		})
	}
	return out
}

// MetricSynonyms flattens the metric table into the synonym -> id map
// the resolver consumes. Canonical ids map to themselves.
func (d *Data) MetricSynonyms() map[string]string {
	out := make(map[string]string)
	for _, m := range d.Metrics {
		out[strings.ReplaceAll(m.ID, "_", " ")] = m.ID
		for _, syn := range m.Synonyms {
			out[syn] = m.ID
		}
	}
	return out
}

// LoadFile reads one reference file. The format follows the extension:
// .toml, .yaml or .yml.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}

	var data Data
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported reference file format: %s", path)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Load returns the dataset at path, or the compiled-in default dataset
// when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

package interpret

import (
	"sort"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

// MetricTable maps synonym phrases to canonical metric ids. Like the
// alias index it is built once from static reference data and read-only
// afterwards.
type MetricTable struct {
	synonyms map[string]string
	// ordered holds the normalized synonym phrases longest-first so
	// greedy matching prefers "free cash flow" over "cash".
	ordered []metricSynonym
}

type metricSynonym struct {
	tokens   []string
	metricID string
}

// NewMetricTable builds a metric resolver table. Every canonical id is
// also registered as a synonym for itself.
func NewMetricTable(synonyms map[string]string) *MetricTable {
	table := &MetricTable{synonyms: make(map[string]string, len(synonyms))}

	canonical := make(map[string]bool)
	for phrase, id := range synonyms {
		norm := Normalize(phrase)
		if norm == "" || id == "" {
			continue
		}
		table.synonyms[norm] = id
		canonical[id] = true
	}
	for id := range canonical {
		selfAlias := Normalize(strings.ReplaceAll(id, "_", " "))
		if _, ok := table.synonyms[selfAlias]; !ok {
			table.synonyms[selfAlias] = id
		}
	}

	for phrase, id := range table.synonyms {
		table.ordered = append(table.ordered, metricSynonym{
			tokens:   strings.Fields(phrase),
			metricID: id,
		})
	}
	sort.SliceStable(table.ordered, func(i, j int) bool {
		a, b := table.ordered[i], table.ordered[j]
		if len(a.tokens) != len(b.tokens) {
			return len(a.tokens) > len(b.tokens)
		}
		la, lb := len(strings.Join(a.tokens, " ")), len(strings.Join(b.tokens, " "))
		if la != lb {
			return la > lb
		}
		return strings.Join(a.tokens, " ") < strings.Join(b.tokens, " ")
	})
	return table
}

// ResolveMetrics scans text for metric phrases, greedy longest-alias
// first with whole-phrase token boundaries. The first synonym matched
// for a metric id wins; later synonyms for an already-resolved id are
// ignored. Results are ordered by position and carry the verbatim
// matched span from the original text.
func (t *MetricTable) ResolveMetrics(text string) []models.ResolvedMetric {
	tokens := tokenizeWithOffsets(text)
	if len(tokens) == 0 {
		return nil
	}

	claimed := make([]bool, len(tokens))
	resolved := make(map[string]bool)
	var matches []models.ResolvedMetric

	for _, syn := range t.ordered {
		size := len(syn.tokens)
		if size == 0 || size > len(tokens) {
			continue
		}
		for i := 0; i+size <= len(tokens); i++ {
			if anyClaimed(claimed, i, size) {
				continue
			}
			if !tokensEqual(tokens[i:i+size], syn.tokens) {
				continue
			}
			if resolved[syn.metricID] {
				// Still claim the span so shorter synonyms cannot
				// rematch inside it.
				claimTokens(claimed, i, size)
				continue
			}
			resolved[syn.metricID] = true
			claimTokens(claimed, i, size)
			matches = append(matches, models.ResolvedMetric{
				InputText: originalSpan(tokens[i : i+size]),
				MetricID:  syn.metricID,
				Position:  tokens[i].position,
			})
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Position < matches[j].Position
	})
	return matches
}

func tokensEqual(window []rawToken, want []string) bool {
	for i, tok := range window {
		if tok.normalized != want[i] {
			return false
		}
	}
	return true
}

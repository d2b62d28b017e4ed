package interpret

import (
	"sort"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

const negationBaseConfidence = 0.70

// WarningUnmappedNegation is recorded by ApplyNegationToFilters when a
// negation scope has no known filter key. Unmapped scopes are surfaced
// rather than guessed into new keys.
const WarningUnmappedNegation = "unmapped_negation_scope"

var basicNegationTriggers = []string{
	"fails to", "isn't", "aren't", "doesn't", "don't", "wasn't", "weren't",
	"won't", "cannot", "can't", "never", "lacks", "lacking", "missing", "not",
}

var exclusionTriggers = []string{
	"excluding", "except for", "except", "other than", "save for",
	"barring", "without", "leaving out",
}

var thresholdNegationTriggers = []string{
	"not exceeding", "no more than", "maximum of", "less than", "at most",
	"up to", "under", "below",
}

// negativePrefixedAdjectives register as basic negations on their own
// ("unprofitable companies").
var negativePrefixedAdjectives = []string{
	"unprofitable", "non-profitable", "uncompetitive", "non-cyclical",
	"unlevered", "non-gaap",
}

// nonNegatingIdioms are contexts in which a trigger must never register
// as a negation.
var nonNegatingIdioms = []string{
	"why not", "what if not", "if not", "not only", "not just",
	"is it not", "not to mention",
}

var strongNegationTriggers = map[string]bool{
	"excluding": true, "except": true, "except for": true, "never": true,
	"fails to": true, "not exceeding": true, "without": true,
}

var scopeBoundaryWords = map[string]bool{
	"and": true, "or": true, "but": true, "which": true, "that": true,
	"then": true, "while": true, "when": true, "if": true, "so": true,
	"because": true, "since": true,
}

var financialScopeTerms = []string{
	"revenue", "profit", "earnings", "margin", "debt", "dividend",
	"growth", "risk", "risky", "volatile", "tech", "sector", "cash",
	"valuation", "eps",
}

// ExtractNegations detects basic negation, exclusion, and
// threshold-negation phrases in normalized text, with the scope each
// negation applies to.
func ExtractNegations(text string) []models.NegationSpan {
	tracker := newSpanTracker()
	var spans []models.NegationSpan

	type family struct {
		triggers []string
		kind     models.NegationKind
	}
	families := []family{
		{thresholdNegationTriggers, models.NegationThreshold},
		{exclusionTriggers, models.NegationExclusion},
		{basicNegationTriggers, models.NegationBasic},
	}

	for _, fam := range families {
		for _, trigger := range fam.triggers {
			for _, loc := range findPhrase(text, trigger) {
				if tracker.Overlaps(loc[0], loc[1]) {
					continue
				}
				if inNonNegatingIdiom(text, trigger, loc[0]) {
					continue
				}
				scope := extractScope(text, loc[1], fam.kind)
				if scope == "" {
					continue
				}
				if fam.kind == models.NegationThreshold && !strings.ContainsAny(scope, "0123456789") {
					// Threshold negation needs a numeric scope;
					// otherwise "under pressure" would register.
					continue
				}
				tracker.Claim(loc[0], loc[1])
				spans = append(spans, models.NegationSpan{
					Kind:        fam.kind,
					TriggerText: trigger,
					ScopeText:   scope,
					Confidence:  scoreNegation(trigger, scope),
				})
			}
		}
	}

	for _, adjective := range negativePrefixedAdjectives {
		for _, loc := range findPhrase(text, adjective) {
			if tracker.Overlaps(loc[0], loc[1]) {
				continue
			}
			tracker.Claim(loc[0], loc[1])
			spans = append(spans, models.NegationSpan{
				Kind:        models.NegationBasic,
				TriggerText: adjective,
				ScopeText:   adjective,
				Confidence:  scoreNegation(adjective, adjective),
			})
		}
	}

	return spans
}

// inNonNegatingIdiom checks whether the trigger occurrence sits inside
// an ambiguous idiom ("why not", "not only") that must not count.
func inNonNegatingIdiom(text, trigger string, start int) bool {
	windowStart := start - 12
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := start + len(trigger) + 12
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[windowStart:windowEnd]
	for _, idiom := range nonNegatingIdioms {
		if strings.Contains(window, idiom) {
			return true
		}
	}
	return false
}

// extractScope collects up to five tokens after the trigger, stopping
// at clause boundaries. Threshold scopes additionally stop once the
// numeric phrase is complete.
func extractScope(text string, from int, kind models.NegationKind) string {
	rest := strings.TrimSpace(text[from:])
	if rest == "" {
		return ""
	}
	tokens := strings.Fields(rest)
	var scope []string
	for _, tok := range tokens {
		if scopeBoundaryWords[tok] {
			break
		}
		scope = append(scope, tok)
		if len(scope) == 5 {
			break
		}
		if kind == models.NegationThreshold && strings.ContainsAny(tok, "0123456789") {
			break
		}
	}
	return strings.Join(scope, " ")
}

func scoreNegation(trigger, scope string) float64 {
	confidence := negationBaseConfidence
	if strongNegationTriggers[trigger] {
		confidence += 0.15
	}
	for _, term := range financialScopeTerms {
		if strings.Contains(scope, term) {
			confidence += 0.10
			break
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// riskScopeTerms mark a basic negation scope as a risk exclusion.
var riskScopeTerms = []string{"risky", "risk", "volatile", "volatility", "speculative"}

// ApplyNegationToFilters rewrites a filter map according to detected
// negations and returns the updated copy plus warnings for unmapped
// scopes. The rewrite is pure and order-independent across distinct
// negations: the input map is never mutated.
func ApplyNegationToFilters(filters map[string]any, spans []models.NegationSpan) (map[string]any, []string) {
	out := make(map[string]any, len(filters)+len(spans))
	for k, v := range filters {
		out[k] = v
	}

	var warnings []string
	var excludes []string
	if existing, ok := out["sector_exclude"].([]string); ok {
		excludes = append(excludes, existing...)
	}

	for _, span := range spans {
		switch span.Kind {
		case models.NegationBasic:
			if containsAnyTerm(span.ScopeText, riskScopeTerms) {
				out["risk_level"] = "exclude_high"
				continue
			}
			warnings = append(warnings, WarningUnmappedNegation+":"+string(span.Kind))
		case models.NegationExclusion:
			if span.ScopeText != "" {
				excludes = append(excludes, span.ScopeText)
				continue
			}
			warnings = append(warnings, WarningUnmappedNegation+":"+string(span.Kind))
		case models.NegationThreshold:
			if value, ok := parseValueNumber(firstNumericToken(span.ScopeText)); ok {
				out["threshold_upper"] = value
				continue
			}
			warnings = append(warnings, WarningUnmappedNegation+":"+string(span.Kind))
		}
	}

	if len(excludes) > 0 {
		// Sorted so the result does not depend on span order.
		sort.Strings(excludes)
		out["sector_exclude"] = excludes
	}
	return out, warnings
}

func containsAnyTerm(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func firstNumericToken(scope string) string {
	for _, tok := range strings.Fields(scope) {
		if strings.ContainsAny(tok, "0123456789") {
			return tok
		}
	}
	return ""
}

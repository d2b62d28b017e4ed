package interpret

import (
	"regexp"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bcompare\b`),
	regexp.MustCompile(`\bcompared\s+(?:to|with)\b`),
	regexp.MustCompile(`\bcomparison\b`),
	regexp.MustCompile(`\bvs\b`),
	regexp.MustCompile(`\bversus\b`),
}

var rankingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhich\b`),
	regexp.MustCompile(`\bhighest\b`),
	regexp.MustCompile(`\blowest\b`),
	regexp.MustCompile(`\btop\s+\d*\b`),
	regexp.MustCompile(`\bbest\b`),
	regexp.MustCompile(`\bworst\b`),
	regexp.MustCompile(`\brank(?:ed|ing)?\b`),
}

var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhat\s+is\b`),
	regexp.MustCompile(`\bwhat\s+does\s+\S+\s+mean\b`),
	regexp.MustCompile(`\bdefine\b`),
	regexp.MustCompile(`\bdefinition\s+of\b`),
	regexp.MustCompile(`\bhow\s+is\s+.*\bcalculated\b`),
	regexp.MustCompile(`\bexplain\b`),
}

var trendPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bover\s+time\b`),
	regexp.MustCompile(`\btrend(?:s|ing)?\b`),
	regexp.MustCompile(`\b(?:last|past|previous|trailing)\s+\d+\s+(?:years?|quarters?)\b`),
	regexp.MustCompile(`\bhistor(?:y|ical)\b`),
	regexp.MustCompile(`\bgrowth\s+over\b`),
	regexp.MustCompile(`\bcagr\b`),
}

// ClassifyIntent labels a query from the distinct resolved-ticker
// count, the normalized text, and the period shape. Priority order:
// compare, rank, explain_metric, trend, lookup.
func ClassifyIntent(tickerCount int, text string, periodKind models.PeriodKind) models.Intent {
	text = strings.TrimSpace(text)

	if tickerCount >= 2 || matchesAny(text, comparisonPatterns) {
		return models.IntentCompare
	}
	if matchesAny(text, rankingPatterns) {
		return models.IntentRank
	}
	if matchesAny(text, definitionPatterns) {
		return models.IntentExplainMetric
	}
	if matchesAny(text, trendPatterns) ||
		periodKind == models.PeriodRange ||
		periodKind == models.PeriodMulti ||
		periodKind == models.PeriodRelative {
		return models.IntentTrend
	}
	return models.IntentLookup
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

package interpret

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

const temporalBaseConfidence = 0.70

// temporalTriggers maps each relationship kind to its expanded synonym
// list, longest phrase first inside each list.
var temporalTriggers = []struct {
	kind     models.TemporalKind
	triggers []string
}{
	{models.TemporalBetween, []string{"between"}},
	{models.TemporalBefore, []string{"leading up to", "ahead of", "prior to", "preceding", "before"}},
	{models.TemporalAfter, []string{"in the aftermath of", "in the wake of", "subsequent to", "following", "post-", "post", "after"}},
	{models.TemporalDuring, []string{"in the midst of", "over the course of", "throughout", "amidst", "amid", "during"}},
	{models.TemporalWithin, []string{"in the span of", "within"}},
	{models.TemporalSince, []string{"starting from", "ever since", "since"}},
	{models.TemporalUntil, []string{"through the end of", "up until", "until", "till"}},
}

// eventPhrases maps named-event phrases to the fixed event taxonomy,
// longest phrase first so "financial crisis" beats "crisis".
var eventPhrases = []struct {
	phrase string
	event  models.EventName
}{
	{"global financial crisis", models.EventFinancialCrisis},
	{"financial crisis", models.EventFinancialCrisis},
	{"credit crunch", models.EventFinancialCrisis},
	{"gfc", models.EventFinancialCrisis},
	{"covid-19", models.EventPandemic},
	{"covid", models.EventPandemic},
	{"coronavirus", models.EventPandemic},
	{"pandemic", models.EventPandemic},
	{"lockdown", models.EventPandemic},
	{"lockdowns", models.EventPandemic},
	{"recession", models.EventRecession},
	{"downturn", models.EventRecession},
	{"market crash", models.EventCrisisGeneric},
	{"bear market", models.EventCrisisGeneric},
	{"crash", models.EventCrisisGeneric},
	{"crisis", models.EventCrisisGeneric},
}

// eventTimeframes is the static event -> year/quarter span table.
var eventTimeframes = map[models.EventName]models.EventTimeframe{
	models.EventPandemic:        {StartYear: 2020, EndYear: 2021, Quarters: []int{1, 2, 3, 4}},
	models.EventFinancialCrisis: {StartYear: 2008, EndYear: 2009, Quarters: []int{1, 2, 3, 4}},
	models.EventRecession:       {StartYear: 2020, EndYear: 2020, Quarters: []int{1, 2}},
	models.EventCrisisGeneric:   {StartYear: 2008, EndYear: 2009, Quarters: []int{1, 2, 3, 4}},
}

// timeReferencePattern accepts explicit years, quarters, half-years,
// early/late/mid years and decades.
var timeReferencePattern = regexp.MustCompile(`\b(?:q[1-4]\s*(?:19\d{2}|20\d{2})?|h[12]\s*(?:19\d{2}|20\d{2})|(?:early|late|mid)\s+(?:19\d{2}|20\d{2})|(?:the\s+)?(?:19|20)\d0s|(?:19\d{2}|20\d{2}))\b`)

// temporalIdioms are contexts that must never register as temporal
// relationships ("when is", "before you invest").
var temporalIdioms = []string{"when is", "when was", "what year", "what time"}

var temporalPronouns = map[string]bool{
	"you": true, "we": true, "i": true, "they": true, "me": true,
	"us": true, "them": true, "he": true, "she": true, "it": true,
}

var yearDigitsPattern = regexp.MustCompile(`(19|20)\d{2}`)

var financialTemporalTerms = []string{
	"revenue", "earnings", "profit", "margin", "growth", "performance",
	"stock", "share", "dividend", "sales", "eps", "guidance",
}

// ExtractTemporalRelationships detects before/after/during/within/
// since/until/between relations in normalized text, anchoring them to
// explicit time references or named macro-economic events.
func ExtractTemporalRelationships(text string) []models.TemporalRelationship {
	tracker := newSpanTracker()
	type positioned struct {
		rel models.TemporalRelationship
		pos int
	}
	var found []positioned

	for _, group := range temporalTriggers {
		for _, trigger := range group.triggers {
			for _, loc := range findPhrase(text, trigger) {
				if tracker.Overlaps(loc[0], loc[1]) {
					continue
				}
				if temporalFalsePositive(text, loc[0], loc[1]) {
					continue
				}

				var rel models.TemporalRelationship
				ok := false
				if group.kind == models.TemporalBetween {
					rel, ok = betweenRelationship(text, loc[1])
				} else {
					rel, ok = anchoredRelationship(text, group.kind, loc[1])
				}
				if !ok {
					continue
				}
				tracker.Claim(loc[0], loc[1])
				found = append(found, positioned{rel: rel, pos: loc[0]})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	out := make([]models.TemporalRelationship, 0, len(found))
	for _, f := range found {
		out = append(out, f.rel)
	}
	return out
}

// GetEventTimeframe returns the static timeframe of a named event.
func GetEventTimeframe(event models.EventName) (models.EventTimeframe, bool) {
	tf, ok := eventTimeframes[event]
	return tf, ok
}

// anchoredRelationship resolves the time reference or event phrase
// following a trigger.
func anchoredRelationship(text string, kind models.TemporalKind, from int) (models.TemporalRelationship, bool) {
	windowEnd := from + 40
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[from:windowEnd]

	if phrase, event, offset := matchEventPhrase(window); event != models.EventNone {
		return models.TemporalRelationship{
			Kind:          kind,
			TimeReference: phrase,
			Event:         event,
			Confidence:    scoreTemporal(text, from, false, kind, event),
		}, offset >= 0
	}

	if loc := timeReferencePattern.FindStringIndex(window); loc != nil {
		gap := strings.TrimSpace(window[:loc[0]])
		if len(strings.Fields(gap)) <= 2 {
			ref := strings.TrimSpace(window[loc[0]:loc[1]])
			return models.TemporalRelationship{
				Kind:          kind,
				TimeReference: ref,
				Event:         models.EventNone,
				Confidence:    scoreTemporal(text, from, containsYear(ref), kind, models.EventNone),
			}, true
		}
	}
	return models.TemporalRelationship{}, false
}

// betweenRelationship captures the two time references of a
// "between X and Y" relation and synthesizes a "start-end" reference.
func betweenRelationship(text string, from int) (models.TemporalRelationship, bool) {
	windowEnd := from + 60
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[from:windowEnd]

	refs := timeReferencePattern.FindAllString(window, 2)
	if len(refs) < 2 {
		return models.TemporalRelationship{}, false
	}
	andIdx := strings.Index(window, " and ")
	if andIdx < 0 {
		return models.TemporalRelationship{}, false
	}
	start, end := strings.TrimSpace(refs[0]), strings.TrimSpace(refs[1])
	return models.TemporalRelationship{
		Kind:          models.TemporalBetween,
		TimeReference: start + "-" + end,
		Event:         models.EventNone,
		Confidence:    scoreTemporal(text, from, containsYear(start) || containsYear(end), models.TemporalBetween, models.EventNone),
	}, true
}

// matchEventPhrase finds the first named-event phrase within the
// window, preferring longer phrases.
func matchEventPhrase(window string) (string, models.EventName, int) {
	bestOffset := -1
	bestPhrase := ""
	bestEvent := models.EventNone
	for _, candidate := range eventPhrases {
		locs := findPhrase(window, candidate.phrase)
		if len(locs) == 0 {
			continue
		}
		loc := locs[0]
		gap := strings.TrimSpace(window[:loc[0]])
		if len(strings.Fields(gap)) > 2 {
			continue
		}
		if bestOffset < 0 || loc[0] < bestOffset {
			bestOffset = loc[0]
			bestPhrase = candidate.phrase
			bestEvent = candidate.event
		}
	}
	return bestPhrase, bestEvent, bestOffset
}

// temporalFalsePositive rejects idiomatic uses: interrogative contexts
// and triggers followed by a pronoun ("before you invest").
func temporalFalsePositive(text string, start, end int) bool {
	windowStart := start - 12
	if windowStart < 0 {
		windowStart = 0
	}
	preceding := text[windowStart:start]
	for _, idiom := range temporalIdioms {
		if strings.Contains(preceding, idiom) {
			return true
		}
	}

	rest := strings.Fields(text[end:])
	if len(rest) > 0 && temporalPronouns[rest[0]] {
		return true
	}
	return false
}

func scoreTemporal(text string, position int, explicitYear bool, kind models.TemporalKind, event models.EventName) float64 {
	confidence := temporalBaseConfidence
	if explicitYear {
		confidence += 0.10
	}
	if event != models.EventNone && event != models.EventCrisisGeneric {
		// A bare "crisis" could mean several downturns; only named
		// events earn the boost.
		confidence += 0.05
	}
	if kind == models.TemporalBetween {
		// Structurally unambiguous.
		confidence += 0.10
	}
	if hasNearbyTerm(text, position, financialTemporalTerms) {
		confidence += 0.05
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func containsYear(ref string) bool {
	return yearDigitsPattern.MatchString(ref)
}

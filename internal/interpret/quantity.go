package interpret

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

// Tolerance bands for approximation modifiers, keyed by the strength of
// the modifier word.
const (
	ToleranceWide     = 0.15
	ToleranceStandard = 0.10
	ToleranceTight    = 0.05

	quantityBaseConfidence = 0.80

	// valueSearchWindow bounds how far after a modifier the value may
	// appear.
	valueSearchWindow = 20
)

// valuePattern recognizes currency with magnitude suffix, percentages,
// multiples and plain numbers.
var valuePattern = regexp.MustCompile(`\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?`)

var wideApproximations = []string{"give or take", "in the ballpark of", "ballpark", "roughly", "somewhere around"}
var standardApproximations = []string{"approximately", "around", "about", "circa", "or so", "~"}
var tightApproximations = []string{"more or less", "close to", "near", "nearly"}

// postfixApproximations are matched with the value before the modifier
// ("30% or so").
var postfixApproximations = map[string]bool{"or so": true, "more or less": true}

var upperThresholdModifiers = []string{
	"no less than", "greater than", "upwards of", "more than", "at least",
	"minimum of", "exceeding", "above", "over",
}

var lowerThresholdModifiers = []string{
	"no more than", "not exceeding", "fewer than", "less than", "at most",
	"maximum of", "up to", "under", "below",
}

var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bbetween\s+(\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?)\s+and\s+(\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?)`),
	regexp.MustCompile(`(\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?)\s+to\s+(\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?)`),
	regexp.MustCompile(`(\$?\d+(?:\.\d+)?)\s*-\s*(\$?\d+(?:\.\d+)?\s*(?:trillion|billion|million|thousand|percent|[tbmk]\b|%|[x×])?)`),
}

var financialValueTerms = []string{
	"revenue", "sales", "profit", "earnings", "income", "margin", "eps",
	"p/e", "pe ratio", "market cap", "cash flow", "dividend", "yield",
	"valuation", "ebitda", "debt", "growth",
}

// ExtractFuzzyQuantities detects approximations, thresholds, and ranges
// attached to numeric, currency, percentage or multiple values in
// normalized text, inferring tolerance and confidence.
func ExtractFuzzyQuantities(text string) []models.FuzzyQuantity {
	tracker := newSpanTracker()
	var found []models.FuzzyQuantity

	// Range patterns claim their spans first so "between 10 and 20"
	// is one range rather than two exact values.
	for _, re := range rangePatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if tracker.Overlaps(loc[0], loc[1]) {
				continue
			}
			start := strings.TrimSpace(text[loc[2]:loc[3]])
			end := strings.TrimSpace(text[loc[4]:loc[5]])
			if isBareYear(start) && isBareYear(end) {
				// Year spans belong to the period grammar.
				continue
			}
			tracker.Claim(loc[0], loc[1])
			found = append(found, models.FuzzyQuantity{
				ValueText:  text[loc[0]:loc[1]],
				Kind:       models.QuantityRange,
				RangeStart: start,
				RangeEnd:   end,
				Confidence: scoreQuantity(text, loc[0], start, true),
				Position:   loc[0],
			})
		}
	}

	type modifierFamily struct {
		modifiers []string
		kind      models.QuantityKind
	}
	families := []modifierFamily{
		{wideApproximations, models.QuantityApproximation},
		{standardApproximations, models.QuantityApproximation},
		{tightApproximations, models.QuantityApproximation},
		{upperThresholdModifiers, models.QuantityThresholdUpper},
		{lowerThresholdModifiers, models.QuantityThresholdLower},
	}

	for _, family := range families {
		for _, modifier := range family.modifiers {
			for _, loc := range findPhrase(text, modifier) {
				if tracker.Overlaps(loc[0], loc[1]) {
					continue
				}
				valueText, valueStart, valueEnd, ok := valueNear(text, modifier, loc[0], loc[1], family.kind)
				if !ok {
					continue
				}
				spanStart, spanEnd := loc[0], loc[1]
				if valueStart < spanStart {
					spanStart = valueStart
				}
				if valueEnd > spanEnd {
					spanEnd = valueEnd
				}
				if tracker.Overlaps(spanStart, spanEnd) {
					continue
				}
				tracker.Claim(spanStart, spanEnd)

				q := models.FuzzyQuantity{
					ValueText:    valueText,
					Kind:         family.kind,
					ModifierText: modifier,
					Confidence:   scoreQuantity(text, spanStart, valueText, isStrongModifier(modifier)),
					Position:     spanStart,
				}
				if family.kind == models.QuantityApproximation {
					q.Tolerance = toleranceFor(modifier)
				}
				found = append(found, q)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Position < found[j].Position
	})
	return found
}

// ExtractRangeValues converts a quantity to a (min, max) bound pair.
// Ranges return their literal bounds, approximations return
// base +/- base*tolerance, an upper threshold sets only the minimum and
// a lower threshold only the maximum. Unparseable values return nils.
func ExtractRangeValues(q models.FuzzyQuantity) (*float64, *float64) {
	switch q.Kind {
	case models.QuantityRange:
		min, okMin := parseValueNumber(q.RangeStart)
		max, okMax := parseValueNumber(q.RangeEnd)
		if !okMin || !okMax {
			return nil, nil
		}
		return &min, &max
	case models.QuantityApproximation:
		base, ok := parseValueNumber(q.ValueText)
		if !ok {
			return nil, nil
		}
		min := base - base*q.Tolerance
		max := base + base*q.Tolerance
		return &min, &max
	case models.QuantityThresholdUpper:
		value, ok := parseValueNumber(q.ValueText)
		if !ok {
			return nil, nil
		}
		return &value, nil
	case models.QuantityThresholdLower:
		value, ok := parseValueNumber(q.ValueText)
		if !ok {
			return nil, nil
		}
		return nil, &value
	default:
		value, ok := parseValueNumber(q.ValueText)
		if !ok {
			return nil, nil
		}
		return &value, &value
	}
}

// valueNear locates the value token attached to a modifier: preferred
// within the search window after it, and for approximations also
// immediately before it ("30% or so").
func valueNear(text, modifier string, modStart, modEnd int, kind models.QuantityKind) (string, int, int, bool) {
	searchEnd := modEnd + valueSearchWindow
	if searchEnd > len(text) {
		searchEnd = len(text)
	}
	if loc := valuePattern.FindStringIndex(text[modEnd:searchEnd]); loc != nil {
		gap := strings.TrimSpace(text[modEnd : modEnd+loc[0]])
		if gap == "" || len(strings.Fields(gap)) <= 1 {
			start, end := modEnd+loc[0], modEnd+loc[1]
			return strings.TrimSpace(text[start:end]), start, end, true
		}
	}

	if kind == models.QuantityApproximation && postfixApproximations[modifier] {
		searchStart := modStart - valueSearchWindow
		if searchStart < 0 {
			searchStart = 0
		}
		locs := valuePattern.FindAllStringIndex(text[searchStart:modStart], -1)
		if len(locs) > 0 {
			last := locs[len(locs)-1]
			start, end := searchStart+last[0], searchStart+last[1]
			if strings.TrimSpace(text[end:modStart]) == "" {
				return strings.TrimSpace(text[start:end]), start, end, true
			}
		}
	}
	return "", 0, 0, false
}

// scoreQuantity starts from the base confidence and boosts for strong
// modifiers, well-formed typed values, and nearby financial terms.
func scoreQuantity(text string, position int, valueText string, strongModifier bool) float64 {
	confidence := quantityBaseConfidence
	if strongModifier {
		confidence += 0.05
	}
	if isTypedValue(valueText) {
		confidence += 0.10
	}
	if hasNearbyTerm(text, position, financialValueTerms) {
		confidence += 0.05
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func isStrongModifier(modifier string) bool {
	switch modifier {
	case "approximately", "at least", "at most", "more than", "less than", "between", "exceeding", "not exceeding":
		return true
	}
	return false
}

// isTypedValue reports whether a value carries an explicit unit:
// currency, magnitude suffix, percent, or multiple.
func isTypedValue(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "$") {
		return true
	}
	for _, suffix := range []string{"%", "percent", "x", "×", "b", "m", "k", "t", "billion", "million", "thousand", "trillion"} {
		if strings.HasSuffix(value, suffix) && value != suffix {
			return true
		}
	}
	return false
}

func hasNearbyTerm(text string, position int, terms []string) bool {
	start := position - 40
	if start < 0 {
		start = 0
	}
	end := position + 40
	if end > len(text) {
		end = len(text)
	}
	window := text[start:end]
	for _, term := range terms {
		if strings.Contains(window, term) {
			return true
		}
	}
	return false
}

func toleranceFor(modifier string) float64 {
	for _, m := range wideApproximations {
		if m == modifier {
			return ToleranceWide
		}
	}
	for _, m := range tightApproximations {
		if m == modifier {
			return ToleranceTight
		}
	}
	return ToleranceStandard
}

// parseValueNumber parses "$10.5b", "25%", "12x" or "1200" into an
// absolute number, applying magnitude suffixes.
func parseValueNumber(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.TrimPrefix(value, "$")
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	// Unit suffixes come off before magnitude suffixes so "10 percent"
	// does not lose its trailing "t" to the trillion shorthand.
	value = strings.TrimSuffix(value, "%")
	value = strings.TrimSuffix(value, "percent")
	value = strings.TrimSuffix(value, "×")
	value = strings.TrimSuffix(value, "x")
	value = strings.TrimSpace(value)

	multiplier := 1.0
	for suffix, mult := range map[string]float64{
		"trillion": 1e12, "billion": 1e9, "million": 1e6, "thousand": 1e3,
		"t": 1e12, "b": 1e9, "m": 1e6, "k": 1e3,
	} {
		if strings.HasSuffix(value, suffix) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(value, suffix))
			// Guard against stripping the mantissa itself.
			if trimmed != "" {
				value = trimmed
				multiplier = mult
			}
			break
		}
	}
	value = strings.TrimSpace(value)

	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return number * multiplier, true
}

// findPhrase returns the [start, end) offsets of whole-word occurrences
// of phrase in text.
func findPhrase(text, phrase string) [][2]int {
	var out [][2]int
	if phrase == "~" {
		for i := 0; i < len(text); i++ {
			if text[i] == '~' {
				out = append(out, [2]int{i, i + 1})
			}
		}
		return out
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return out
		}
		start := offset + i
		end := start + len(phrase)
		if wordBounded(text, start, end) {
			out = append(out, [2]int{start, end})
		}
		offset = end
	}
}

func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

func isBareYear(value string) bool {
	if len(value) != 4 {
		return false
	}
	year, err := strconv.Atoi(value)
	return err == nil && year >= 1900 && year <= 2099
}

package interpret

import "regexp"

// span is a half-open [start, end) character range in the scanned text.
type span struct {
	start int
	end   int
}

// spanTracker records character ranges already claimed by an earlier
// matcher so later passes skip them. Patterns are tried in registration
// order, which gives first-registered-pattern-wins overlap exclusion.
type spanTracker struct {
	claimed []span
}

func newSpanTracker() *spanTracker {
	return &spanTracker{}
}

// Overlaps reports whether [start, end) intersects any claimed span.
func (t *spanTracker) Overlaps(start, end int) bool {
	for _, s := range t.claimed {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// Claim marks [start, end) as consumed.
func (t *spanTracker) Claim(start, end int) {
	t.claimed = append(t.claimed, span{start: start, end: end})
}

// pattern pairs a compiled expression with the action applied to each
// non-overlapping match. groups holds the full match followed by the
// capture groups; start/end are character offsets of the full match.
type pattern struct {
	re    *regexp.Regexp
	apply func(groups []string, start, end int)
}

// scanPatterns runs an ordered pattern list over text with shared
// span-overlap bookkeeping: every accepted match claims its span on the
// tracker, and matches overlapping an already-claimed span are dropped.
func scanPatterns(text string, tracker *spanTracker, patterns []pattern) {
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if tracker.Overlaps(start, end) {
				continue
			}
			groups := make([]string, 0, len(loc)/2)
			for g := 0; g < len(loc)/2; g++ {
				if loc[2*g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[loc[2*g]:loc[2*g+1]])
			}
			tracker.Claim(start, end)
			p.apply(groups, start, end)
		}
	}
}

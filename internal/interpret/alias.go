package interpret

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/interpres/pkg/models"
)

const (
	// DefaultMaxAliases caps the alias set generated per ticker.
	DefaultMaxAliases = 40

	// FuzzyMatchThreshold is the minimum similarity ratio accepted by
	// the fuzzy fallback pass.
	FuzzyMatchThreshold = 0.95

	// WarningFuzzyMatch is appended once per fuzzy alias acceptance.
	WarningFuzzyMatch = "fuzzy_match"

	maxPhraseTokens = 4
)

// corporateSuffixes are trailing name tokens stripped iteratively when
// generating aliases from a canonical company name.
var corporateSuffixes = map[string]bool{
	"inc": true, "incorporated": true, "corp": true, "corporation": true,
	"co": true, "company": true, "ltd": true, "limited": true,
	"plc": true, "llc": true, "lp": true, "sa": true, "ag": true,
	"nv": true, "se": true, "ab": true,
}

// trailingDescriptors are optionally stripped after corporate suffixes,
// producing both the long and short alias forms.
var trailingDescriptors = map[string]bool{
	"group": true, "holdings": true, "holding": true, "companies": true,
}

// phraseStopwords never resolve on their own in the fuzzy pass.
var phraseStopwords = map[string]bool{
	"the": true, "and": true, "of": true, "for": true, "in": true,
	"on": true, "to": true, "with": true, "over": true, "last": true,
	"a": true, "an": true, "is": true, "are": true, "was": true,
	"what": true, "which": true, "how": true, "show": true, "me": true,
	"compare": true, "versus": true, "vs": true, "between": true,
}

// tickerTokenPattern matches bounded-length all-caps tokens in the raw
// text, optionally exchange-style dotted (BRK.B).
var tickerTokenPattern = regexp.MustCompile(`\b[A-Z]{1,5}(?:\.[A-Z]{1,2})?\b`)

// AliasOverride forces an alias onto a ticker at build time. When two
// overrides claim the same alias, the higher priority wins; an equal
// priority tie for different tickers is corrupt reference data and
// fails the build.
type AliasOverride struct {
	Alias    string
	Ticker   string
	Priority int
}

// AliasIndex maps company-name variants and manual overrides to ticker
// symbols. It is built once from static reference data and is read-only
// afterwards, so concurrent lookups need no locking.
type AliasIndex struct {
	tickers    map[string]bool
	aliases    map[string]string
	byTicker   map[string][]string
	maxAliases int
}

// BuildAliasIndex constructs the alias index from a ticker universe and
// a ticker -> canonical-name table, then applies manual overrides with
// exclusive alias ownership. Returns an error only for corrupt
// reference data (unknown override targets, equal-priority ownership
// conflicts).
func BuildAliasIndex(universe []string, names map[string]string, overrides []AliasOverride) (*AliasIndex, error) {
	idx := &AliasIndex{
		tickers:    make(map[string]bool, len(universe)),
		aliases:    make(map[string]string),
		byTicker:   make(map[string][]string, len(universe)),
		maxAliases: DefaultMaxAliases,
	}

	for _, raw := range universe {
		ticker := strings.ToUpper(strings.TrimSpace(raw))
		if ticker == "" {
			continue
		}
		idx.tickers[ticker] = true

		variants := generateAliases(ticker, names[ticker])
		if len(variants) > idx.maxAliases {
			// Prefer shorter aliases when truncating.
			sort.SliceStable(variants, func(i, j int) bool {
				if len(variants[i]) != len(variants[j]) {
					return len(variants[i]) < len(variants[j])
				}
				return variants[i] < variants[j]
			})
			variants = variants[:idx.maxAliases]
		}

		for _, alias := range variants {
			// Generated collisions keep the first owner in universe
			// order; overrides below can still reassign.
			if _, taken := idx.aliases[alias]; taken {
				continue
			}
			idx.aliases[alias] = ticker
			idx.byTicker[ticker] = append(idx.byTicker[ticker], alias)
		}
	}

	if err := idx.applyOverrides(overrides); err != nil {
		return nil, err
	}
	return idx, nil
}

// applyOverrides assigns each override alias (and its compacted form)
// exclusively to the target ticker. Last-writer-wins is decided by
// override priority, not insertion order.
func (idx *AliasIndex) applyOverrides(overrides []AliasOverride) error {
	type claim struct {
		ticker   string
		priority int
	}
	winners := make(map[string]claim)

	for _, ov := range overrides {
		ticker := strings.ToUpper(strings.TrimSpace(ov.Ticker))
		if !idx.tickers[ticker] {
			return fmt.Errorf("alias override %q targets unknown ticker %q", ov.Alias, ov.Ticker)
		}
		alias := Normalize(ov.Alias)
		if alias == "" {
			return fmt.Errorf("alias override for ticker %q has empty alias", ticker)
		}
		for _, form := range []string{alias, compactTokens(strings.Fields(alias))} {
			existing, seen := winners[form]
			if seen {
				if existing.priority == ov.Priority && existing.ticker != ticker {
					return fmt.Errorf("alias override conflict: %q claimed by %s and %s at priority %d",
						form, existing.ticker, ticker, ov.Priority)
				}
				if existing.priority > ov.Priority {
					continue
				}
			}
			winners[form] = claim{ticker: ticker, priority: ov.Priority}
		}
	}

	for alias, win := range winners {
		if prev, ok := idx.aliases[alias]; ok && prev != win.ticker {
			idx.byTicker[prev] = removeString(idx.byTicker[prev], alias)
		}
		if idx.aliases[alias] != win.ticker {
			idx.aliases[alias] = win.ticker
			idx.byTicker[win.ticker] = append(idx.byTicker[win.ticker], alias)
		}
	}
	return nil
}

// generateAliases derives normalized alias variants from a canonical
// company name: the full name, the suffix-stripped name, the
// descriptor-stripped name, their compacted no-space forms, and the
// ticker symbol with its dot-punctuation variants.
func generateAliases(ticker, canonicalName string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(alias string) {
		alias = strings.TrimSpace(alias)
		if alias == "" || seen[alias] {
			return
		}
		seen[alias] = true
		out = append(out, alias)
	}

	lower := strings.ToLower(ticker)
	add(lower)
	if strings.Contains(lower, ".") {
		add(strings.ReplaceAll(lower, ".", " "))
		add(strings.ReplaceAll(lower, ".", ""))
	}

	name := Normalize(canonicalName)
	if name == "" {
		return out
	}
	tokens := strings.Fields(name)
	if len(tokens) > 0 && tokens[0] == "the" {
		tokens = tokens[1:]
	}
	add(strings.Join(tokens, " "))

	// Strip corporate suffixes iteratively until none remain.
	for len(tokens) > 1 && corporateSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	add(strings.Join(tokens, " "))
	add(compactTokens(tokens))

	// Also offer the form without trailing Group/Holdings descriptors.
	short := tokens
	for len(short) > 1 && trailingDescriptors[short[len(short)-1]] {
		short = short[:len(short)-1]
	}
	if len(short) != len(tokens) {
		add(strings.Join(short, " "))
		add(compactTokens(short))
	}

	return out
}

// KnownTicker reports whether symbol is part of the index universe.
func (idx *AliasIndex) KnownTicker(symbol string) bool {
	return idx.tickers[strings.ToUpper(symbol)]
}

// LookupAlias returns the ticker owning a normalized alias.
func (idx *AliasIndex) LookupAlias(alias string) (string, bool) {
	ticker, ok := idx.aliases[alias]
	return ticker, ok
}

// AliasesFor returns the alias set owned by a ticker. Exposed for
// reference-data audits; the returned slice must not be modified.
func (idx *AliasIndex) AliasesFor(ticker string) []string {
	return idx.byTicker[strings.ToUpper(ticker)]
}

// rawToken is one whitespace-separated token of the original text with
// its character offset, plus the normalized form used for matching.
type rawToken struct {
	text       string
	normalized string
	position   int
}

// ResolveFreeform scans raw text for company references and returns the
// resolved entities ordered by first occurrence, plus a warnings list.
// Matching runs in three passes over the token stream, each skipping
// tokens claimed by an earlier pass: direct ticker symbols, exact alias
// phrases (longest window first), and a bounded fuzzy fallback.
func (idx *AliasIndex) ResolveFreeform(text string) ([]models.ResolvedEntity, []string) {
	tokens := tokenizeWithOffsets(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	claimed := make([]bool, len(tokens))
	var matches []models.ResolvedEntity
	var warnings []string
	resolved := make(map[string]bool)

	record := func(input, ticker string, position int) {
		if resolved[ticker] {
			return
		}
		resolved[ticker] = true
		matches = append(matches, models.ResolvedEntity{
			InputText: input,
			Ticker:    ticker,
			Position:  position,
		})
	}

	// Pass 1: direct ticker tokens (all-caps in the raw text).
	for i, tok := range tokens {
		caps := tickerTokenPattern.FindString(tok.text)
		if caps == "" || caps != strings.TrimRight(tok.text, ".,!?;:") {
			continue
		}
		symbol := strings.ToUpper(caps)
		if !idx.tickers[symbol] {
			// Dot-stripped fallback: "BRK.B" recorded as "BRKB" in
			// some universes.
			stripped := strings.ReplaceAll(symbol, ".", "")
			if !idx.tickers[stripped] {
				continue
			}
			symbol = stripped
		}
		claimed[i] = true
		record(caps, symbol, tok.position)
	}

	// Pass 2: exact alias phrases, longest window first. Aliases of
	// one or two characters are skipped to avoid stopword collisions.
	for size := maxPhraseTokens; size >= 1; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			if anyClaimed(claimed, i, size) {
				continue
			}
			phrase := joinNormalized(tokens[i : i+size])
			if len(phrase) <= 2 {
				continue
			}
			ticker, ok := idx.aliases[phrase]
			if !ok {
				continue
			}
			claimTokens(claimed, i, size)
			record(originalSpan(tokens[i:i+size]), ticker, tokens[i].position)
		}
	}

	// Pass 3: fuzzy fallback over unclaimed windows.
	for size := maxPhraseTokens; size >= 1; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			if anyClaimed(claimed, i, size) {
				continue
			}
			if size == 1 && phraseStopwords[tokens[i].normalized] {
				continue
			}
			phrase := joinNormalized(tokens[i : i+size])
			if len(phrase) <= 3 {
				continue
			}
			ticker, score := idx.bestFuzzyMatch(phrase)
			if score < FuzzyMatchThreshold {
				continue
			}
			claimTokens(claimed, i, size)
			warnings = append(warnings, WarningFuzzyMatch)
			record(originalSpan(tokens[i:i+size]), ticker, tokens[i].position)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Position < matches[j].Position
	})
	return matches, warnings
}

// bestFuzzyMatch scans every alias longer than three characters and
// returns the highest-scoring ticker. Ties break on the lexicographically
// smallest alias so map iteration order never changes the winner.
func (idx *AliasIndex) bestFuzzyMatch(phrase string) (string, float64) {
	var bestAlias string
	var bestTicker string
	var bestScore float64
	for alias, ticker := range idx.aliases {
		if len(alias) <= 3 {
			continue
		}
		score := similarityRatio(phrase, alias)
		if score > bestScore || (score == bestScore && score > 0 && alias < bestAlias) {
			bestScore = score
			bestAlias = alias
			bestTicker = ticker
		}
	}
	return bestTicker, bestScore
}

func tokenizeWithOffsets(text string) []rawToken {
	var tokens []rawToken
	start := -1
	for i, ch := range text {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			if start >= 0 {
				raw := text[start:i]
				tokens = append(tokens, rawToken{text: raw, normalized: normalizeToken(raw), position: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		raw := text[start:]
		tokens = append(tokens, rawToken{text: raw, normalized: normalizeToken(raw), position: start})
	}
	return tokens
}

// normalizeToken is the per-token matching form: Normalize plus
// possessive stripping, so "Microsoft's" matches the "microsoft" alias.
// Quarter-apostrophe tokens (q1'24) keep their apostrophe.
func normalizeToken(raw string) string {
	return strings.TrimSuffix(Normalize(raw), "'s")
}

func anyClaimed(claimed []bool, start, size int) bool {
	for i := start; i < start+size; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func claimTokens(claimed []bool, start, size int) {
	for i := start; i < start+size; i++ {
		claimed[i] = true
	}
}

func joinNormalized(tokens []rawToken) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.normalized != "" {
			parts = append(parts, t.normalized)
		}
	}
	return strings.Join(parts, " ")
}

func originalSpan(tokens []rawToken) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.text)
	}
	return strings.TrimRight(strings.Join(parts, " "), ".,!?;:")
}

func compactTokens(tokens []string) string {
	return strings.Join(tokens, "")
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// Package interpret implements the natural-language financial-query
// interpreter: a multi-pass pipeline that turns a free-form question
// into a structured, machine-actionable query representation.
package interpret

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Removes combining marks after NFD decomposition so accented
	// characters fold to their ASCII base ("société" -> "societe").
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	digitCommaPattern = regexp.MustCompile(`(\d),(\d)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// normalizeKeepRunes are punctuation runes preserved by Normalize because
// later stages depend on them: value markers ($10.5B, 25%, ~25, 12×),
// slash (P/E) and dash (2018-2020, post-crisis). Dots and apostrophes are
// kept only between alphanumerics (BRK.B, Q1'24) so trailing punctuation
// ("Inc.") still collapses.
const normalizeKeepRunes = "$%/-~×"

// Normalize canonicalizes a query string: Unicode NFKC with diacritics
// stripped, lower-cased, "&" expanded to "and", stray punctuation
// collapsed to single spaces, and whitespace collapsed and trimmed.
// It is idempotent: normalizing an already-normalized string returns it
// unchanged. Empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	if stripped, _, err := transform.String(diacriticStripper, text); err == nil {
		text = stripped
	}
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", " and ")

	// Thousands separators inside numbers are dropped rather than
	// split ("50,000" -> "50000").
	text = digitCommaPattern.ReplaceAllString(text, "$1$2")

	runesIn := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, ch := range runesIn {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsSpace(ch):
			b.WriteRune(ch)
		case strings.ContainsRune(normalizeKeepRunes, ch):
			b.WriteRune(ch)
		case ch == '–' || ch == '—':
			b.WriteRune('-')
		case ch == '.' || ch == '\'':
			if i > 0 && i < len(runesIn)-1 && isAlnum(runesIn[i-1]) && isAlnum(runesIn[i+1]) {
				b.WriteRune(ch)
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(' ')
		}
	}

	text = whitespacePattern.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(text)
}

func isAlnum(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

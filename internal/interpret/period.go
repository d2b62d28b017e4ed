package interpret

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/ternarybob/interpres/pkg/models"
)

// WarningMissingPeriod is recorded when no year or quarter evidence is
// found and the period falls back to "latest".
const WarningMissingPeriod = "missing_period"

// twoDigitYearPivot expands two-digit years: values at or below the
// pivot become 20xx, the rest 19xx.
const twoDigitYearPivot = 30

var (
	relativeWindowPattern = regexp.MustCompile(`\b(?:last|past|previous|trailing)\s+(\d{1,2})\s+(quarters?|years?)\b`)

	// Quarter+year orderings, including the apostrophe short year
	// (q1'24) and FY/CY/calendar prefixes on either component.
	quarterApostrophePattern = regexp.MustCompile(`\bq([1-4])'(\d{2})\b`)
	quarterFirstPattern      = regexp.MustCompile(`\b(fy|cy|calendar)?\s*q([1-4])\s+(?:of\s+)?(fy|cy|calendar)?\s*(\d{4}|\d{2})\b`)
	yearFirstPattern         = regexp.MustCompile(`\b(fy|cy|calendar)?\s*(\d{4})\s+q([1-4])\b`)

	betweenYearsPattern = regexp.MustCompile(`\bbetween\s+(fy|cy|calendar)?\s*(\d{4})\s+and\s+(fy|cy|calendar)?\s*(\d{4})\b`)
	yearRangePattern    = regexp.MustCompile(`\b(fy|cy|calendar)?\s*(\d{4})\s*(?:-|to|through|\.\.)\s*(fy|cy|calendar)?\s*(\d{4})\b`)

	fiscalYearPattern   = regexp.MustCompile(`\bfy\s*(\d{4}|\d{2})\b`)
	calendarYearPattern = regexp.MustCompile(`\b(?:cy|calendar)\s*(\d{4}|\d{2})\b`)
	bareYearPattern     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// ParsePeriod parses fiscal/calendar year, quarter, range, and relative
// window expressions out of normalized text into one PeriodDescriptor.
// Matched character spans are consumed so later, lower-priority passes
// skip them; a quarter+year combination therefore always beats a bare
// year at the same position.
func ParsePeriod(text string, preferFiscal bool) models.PeriodDescriptor {
	if groups := relativeWindowPattern.FindStringSubmatch(text); groups != nil {
		granularity := models.GranularityFiscalYear
		quarterly := groups[2] == "quarter" || groups[2] == "quarters"
		switch {
		case quarterly && preferFiscal:
			granularity = models.GranularityFiscalQuarter
		case quarterly:
			granularity = models.GranularityCalendarQuarter
		case !preferFiscal:
			granularity = models.GranularityCalendarYear
		}
		return models.PeriodDescriptor{
			Kind:              models.PeriodRelative,
			Granularity:       granularity,
			NormalizeToFiscal: preferFiscal,
		}
	}

	var (
		items            []models.PeriodItem
		rangeStart       int
		rangeEnd         int
		haveRange        bool
		fiscalToken      bool
		calendarOverride bool
	)

	noteBasis := func(token string) {
		switch token {
		case "fy":
			fiscalToken = true
		case "cy", "calendar":
			calendarOverride = true
		}
	}
	addItem := func(year, quarter int) {
		for _, it := range items {
			if it.FiscalYear == year && it.FiscalQuarter == quarter {
				return
			}
		}
		items = append(items, models.PeriodItem{FiscalYear: year, FiscalQuarter: quarter})
	}

	recordRange := func(g []string, _, _ int) {
		noteBasis(g[1])
		noteBasis(g[3])
		start, end := expandYear(g[2]), expandYear(g[4])
		if start > end {
			start, end = end, start
		}
		if start == end {
			addItem(start, 0)
			return
		}
		if !haveRange {
			haveRange = true
			rangeStart, rangeEnd = start, end
		}
		addItem(start, 0)
		addItem(end, 0)
	}

	tracker := newSpanTracker()
	scanPatterns(text, tracker, []pattern{
		{quarterApostrophePattern, func(g []string, _, _ int) {
			quarter, _ := strconv.Atoi(g[1])
			addItem(expandYear(g[2]), quarter)
		}},
		{quarterFirstPattern, func(g []string, _, _ int) {
			noteBasis(g[1])
			noteBasis(g[3])
			quarter, _ := strconv.Atoi(g[2])
			addItem(expandYear(g[4]), quarter)
		}},
		{yearFirstPattern, func(g []string, _, _ int) {
			noteBasis(g[1])
			quarter, _ := strconv.Atoi(g[3])
			addItem(expandYear(g[2]), quarter)
		}},
		{betweenYearsPattern, recordRange},
		{yearRangePattern, recordRange},
		{fiscalYearPattern, func(g []string, _, _ int) {
			fiscalToken = true
			addItem(expandYear(g[1]), 0)
		}},
		{calendarYearPattern, func(g []string, _, _ int) {
			calendarOverride = true
			addItem(expandYear(g[1]), 0)
		}},
		{bareYearPattern, func(g []string, _, _ int) {
			addItem(expandYear(g[1]), 0)
		}},
	})

	hasQuarter := false
	for _, it := range items {
		if it.FiscalQuarter > 0 {
			hasQuarter = true
			break
		}
	}

	fiscalBasis := preferFiscal
	if calendarOverride {
		fiscalBasis = false
	} else if fiscalToken {
		fiscalBasis = true
	}

	var granularity models.Granularity
	switch {
	case hasQuarter && fiscalBasis:
		granularity = models.GranularityFiscalQuarter
	case hasQuarter:
		granularity = models.GranularityCalendarQuarter
	case fiscalBasis:
		granularity = models.GranularityFiscalYear
	default:
		granularity = models.GranularityCalendarYear
	}

	if len(items) == 0 {
		return models.PeriodDescriptor{
			Kind:              models.PeriodLatest,
			Granularity:       granularity,
			NormalizeToFiscal: fiscalBasis,
			Warnings:          []string{WarningMissingPeriod},
		}
	}

	if haveRange {
		return models.PeriodDescriptor{
			Kind:        models.PeriodRange,
			Granularity: granularity,
			Items: []models.PeriodItem{
				{FiscalYear: rangeStart},
				{FiscalYear: rangeEnd},
			},
			NormalizeToFiscal: fiscalBasis,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].FiscalYear != items[j].FiscalYear {
			return items[i].FiscalYear < items[j].FiscalYear
		}
		return items[i].FiscalQuarter < items[j].FiscalQuarter
	})

	kind := models.PeriodMulti
	if len(items) == 1 {
		kind = models.PeriodSingle
	}
	return models.PeriodDescriptor{
		Kind:              kind,
		Granularity:       granularity,
		Items:             items,
		NormalizeToFiscal: fiscalBasis,
	}
}

// expandYear converts a 2- or 4-digit year string to a full year using
// the fixed pivot.
func expandYear(value string) int {
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	if year >= 100 {
		return year
	}
	if year <= twoDigitYearPivot {
		return 2000 + year
	}
	return 1900 + year
}

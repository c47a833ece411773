// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package classify decides what a candidate document section is before any
extraction happens.

Award pages mix genuine entry tables with summary blocks (statistics such as
"most nominations"), prose lists, and layout tables. The classifier inspects
only the section's header-cell tokens and its preceding heading, never the
body rows, so it stays a pure function that is trivially testable against
token vectors.

Rules are evaluated in a fixed order and the first match wins; a column that
would match a later rule as well is claimed by the earlier one.
*/
package classify

import "strings"

// Kind tags a classified section.
type Kind int

const (
	// KindRejected marks a section the extractor must skip entirely.
	KindRejected Kind = iota

	// KindList marks a header-less list candidate; entries are parsed
	// positionally from list items.
	KindList

	// KindTable marks an entry table with a resolved column map.
	KindTable
)

// ColumnMap locates the interesting columns of an entry table. Absent
// columns are -1, except Year which defaults to the leading column: many
// source layouts carry the year in a rowspan header cell at index 0.
type ColumnMap struct {
	Title       int
	Year        int
	Attribution int
}

// Classification is the classifier's verdict for one section.
type Classification struct {
	Kind    Kind
	Columns ColumnMap
}

// summaryHeadings rejects whole sections by their preceding heading: these
// are statistics or records blocks, never entry tables.
var summaryHeadings = []string{
	"records",
	"statistics",
	"superlatives",
	"multiple wins",
	"multiple nominations",
}

// Classify inspects a section's header tokens and preceding heading.
//
// Decision order:
//  1. Heading matches a summary-section name: reject.
//  2. No header cells at all: treat as a list candidate.
//  3. Header carries both a "nominations" and a "wins" token: reject
//     (it is a tally table, not an entry table).
//  4. No title column found: reject.
//  5. Otherwise: table, with year defaulting to column 0 and attribution
//     optional.
func Classify(headers []string, heading string) Classification {
	if isSummaryHeading(heading) {
		return Classification{Kind: KindRejected}
	}

	if len(headers) == 0 {
		return Classification{Kind: KindList}
	}

	tokens := make([]string, len(headers))
	for i, header := range headers {
		tokens[i] = strings.ToLower(strings.TrimSpace(header))
	}

	if indexMatching(tokens, isNominationsColumn) >= 0 && indexMatching(tokens, isWinsColumn) >= 0 {
		return Classification{Kind: KindRejected}
	}

	titleIndex := indexMatching(tokens, isTitleColumn)
	if titleIndex < 0 {
		return Classification{Kind: KindRejected}
	}

	yearIndex := indexMatching(tokens, isYearColumn)
	if yearIndex < 0 {
		yearIndex = 0
	}

	return Classification{
		Kind: KindTable,
		Columns: ColumnMap{
			Title:       titleIndex,
			Year:        yearIndex,
			Attribution: indexMatching(tokens, isAttributionColumn),
		},
	}
}

func isSummaryHeading(heading string) bool {
	lowered := strings.ToLower(heading)
	for _, marker := range summaryHeadings {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// indexMatching returns the first column satisfying the predicate, -1 when
// none does.
func indexMatching(tokens []string, predicate func(string) bool) int {
	for i, token := range tokens {
		if predicate(token) {
			return i
		}
	}
	return -1
}

// isTitleColumn matches film/title headers while excluding disambiguating
// tokens: a "film studio" column is attribution, not a title.
func isTitleColumn(token string) bool {
	if strings.Contains(token, "studio") {
		return false
	}
	return strings.Contains(token, "film") || strings.Contains(token, "title")
}

func isYearColumn(token string) bool {
	return strings.Contains(token, "year") || strings.Contains(token, "ceremony")
}

func isAttributionColumn(token string) bool {
	for _, marker := range []string{"director", "producer", "studio", "company", "production"} {
		if strings.Contains(token, marker) {
			return true
		}
	}
	return false
}

func isNominationsColumn(token string) bool {
	return strings.Contains(token, "nomination")
}

func isWinsColumn(token string) bool {
	return strings.Contains(token, "win")
}

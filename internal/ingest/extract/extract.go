// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package extract turns classified document sections into raw award entries.

The extractor walks a parsed award page in document order, hands each table
or list candidate to the classifier, and scans accepted sections row by row.
A running year is carried across rows because source tables share one
rowspan year header among several entry rows; rows seen before any year is
established cannot be attributed and are skipped.

Entries are ephemeral: they exist only for the duration of one extraction
pass and are never persisted directly.
*/
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/openscreen/palmares/internal/ingest/classify"
	"github.com/openscreen/palmares/pkg/titlenorm"
)

// winnerHighlight is the background color the reference site uses to mark
// winning rows.
const winnerHighlight = "#faeb86"

// Entry is one raw extracted award fact.
type Entry struct {
	Title       string
	Year        int
	IsWinner    bool
	Attribution *string
	SourceURL   *string
	IMDBID      *string
}

var (
	// yearRangePattern matches split-season years like "1929/30" or
	// "1927-28"; the entry is attributed to the full end year.
	yearRangePattern = regexp.MustCompile(`\b(\d{4})\s*[/\x{2013}\x{2014}-]\s*(\d{2})\b`)

	// yearFullRangePattern matches explicit ranges like "1927-1928".
	yearFullRangePattern = regexp.MustCompile(`\b\d{4}\s*[/\x{2013}\x{2014}-]\s*(\d{4})\b`)

	plainYearPattern = regexp.MustCompile(`\b((?:18|19|20)\d{2})\b`)

	imdbIDPattern = regexp.MustCompile(`\btt\d{6,}\b`)

	// parentheticalPattern strips trailing disambiguators like " (film)".
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// Extract walks an entire parsed page and returns the entries of every
// accepted section, in document order. baseURL absolutizes relative source
// links.
func Extract(document *html.Node, baseURL string) []Entry {
	scanner := &scanState{
		base: parseBase(baseURL),
		seen: make(map[string]bool),
	}

	// A page dedicated to a single edition carries its year in the top
	// heading; it seeds the running year for sections with no year column.
	if heading := findFirst(document, "h1"); heading != nil {
		if year, ok := ParseYear(cellText(heading)); ok {
			scanner.setYear(year)
		}
	}

	var lastHeading string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if isElement(node, "h2", "h3", "h4") {
			lastHeading = cellText(node)
			if year, ok := ParseYear(lastHeading); ok {
				scanner.setYear(year)
			}
			return
		}
		if isElement(node, "table") {
			// Infoboxes and navigation chrome are handled by the
			// honor pass, never scanned as entry tables.
			if !hasClass(node, "infobox") && !hasClass(node, "navbox") {
				scanner.scanTable(node, lastHeading)
			}
			return
		}
		if isElement(node, "ul", "ol") {
			scanner.scanList(node, lastHeading)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(document)

	return scanner.entries
}

// scanState carries the running year and per-year deduplication window
// across rows and sections.
type scanState struct {
	base        *url.URL
	currentYear int
	seen        map[string]bool
	entries     []Entry
}

// setYear replaces the running year and clears the deduplication window.
func (scanner *scanState) setYear(year int) {
	if year == scanner.currentYear {
		return
	}
	scanner.currentYear = year
	scanner.seen = make(map[string]bool)
}

func (scanner *scanState) scanTable(table *html.Node, heading string) {
	rows := findAll(table, "tr")
	if len(rows) == 0 {
		return
	}

	headers := headerTokens(rows[0])
	classification := classify.Classify(headers, heading)
	if classification.Kind != classify.KindTable {
		return
	}
	columns := classification.Columns

	for _, row := range rows[1:] {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}

		// A year in the expected column starts a new group. Rows under a
		// rowspan year header lack that cell, shifting the remaining
		// columns one position left. When the column map only defaulted
		// the year to the title column, a data cell there is a title, not
		// a marker: "1917" is a film. Only a header cell may switch the
		// running year then.
		yearColumnDistinct := columns.Year != columns.Title
		yearCellPresent := false
		if columns.Year < len(cells) {
			cell := cells[columns.Year]
			if yearColumnDistinct || isElement(cell, "th") {
				if year, ok := ParseYear(cellText(cell)); ok {
					scanner.setYear(year)
					yearCellPresent = true
				}
			}
		}
		if scanner.currentYear == 0 {
			continue
		}

		shift := 0
		if yearColumnDistinct && !yearCellPresent {
			shift = -1
		}

		titleCell := cellAt(cells, columns.Title, columns.Year, shift)
		if titleCell == nil {
			continue
		}
		// A pure year-marker row has no title of its own.
		if yearCellPresent && titleCell == cells[columns.Year] {
			continue
		}

		entry, ok := scanner.entryFromCell(titleCell, titleCell)
		if !ok {
			continue
		}
		// The highlight color often sits on the row element itself.
		if containsHighlight(row) {
			entry.IsWinner = true
		}

		if attributionCell := cellAt(cells, columns.Attribution, columns.Year, shift); attributionCell != nil && attributionCell != titleCell {
			if attribution := cellText(attributionCell); attribution != "" {
				entry.Attribution = &attribution
			}
		}

		scanner.append(entry)
	}
}

func (scanner *scanState) scanList(list *html.Node, heading string) {
	if classify.Classify(nil, heading).Kind != classify.KindList {
		return
	}

	for item := list.FirstChild; item != nil; item = item.NextSibling {
		if !isElement(item, "li") {
			continue
		}

		if year, ok := ParseYear(cellText(item)); ok {
			scanner.setYear(year)
		}
		if scanner.currentYear == 0 {
			continue
		}

		entry, ok := scanner.entryFromCell(item, item)
		if !ok {
			continue
		}
		scanner.append(entry)
	}
}

// entryFromCell builds an entry from the node holding the title, using
// markerNode for winner detection (the full row for tables).
func (scanner *scanState) entryFromCell(titleNode, markerNode *html.Node) (Entry, bool) {
	title := extractTitle(titleNode)
	if title == "" {
		return Entry{}, false
	}

	entry := Entry{
		Title:    title,
		Year:     scanner.currentYear,
		IsWinner: isWinnerMarked(markerNode),
	}

	for _, anchor := range findAll(markerNode, "a") {
		href := attr(anchor, "href")
		if href == "" {
			continue
		}
		if strings.Contains(href, "imdb.com") {
			if id := imdbIDPattern.FindString(href); id != "" && entry.IMDBID == nil {
				entry.IMDBID = &id
			}
			continue
		}
		if entry.SourceURL == nil {
			if absolute := scanner.absolutize(href); absolute != "" {
				entry.SourceURL = &absolute
			}
		}
	}

	return entry, true
}

// append records an entry unless the (normalized title, year) pair was
// already seen in the current year window.
func (scanner *scanState) append(entry Entry) {
	key := titlenorm.Key(entry.Title)
	if key == "" || scanner.seen[key] {
		return
	}
	scanner.seen[key] = true
	scanner.entries = append(scanner.entries, entry)
}

func (scanner *scanState) absolutize(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if scanner.base != nil {
		parsed = scanner.base.ResolveReference(parsed)
	}
	if !parsed.IsAbs() {
		return ""
	}
	return parsed.String()
}

func parseBase(baseURL string) *url.URL {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	return parsed
}

// headerTokens returns the text of a row's th cells, or nil when the row is
// not a header row.
func headerTokens(row *html.Node) []string {
	var tokens []string
	for _, cell := range rowCells(row) {
		if !isElement(cell, "th") {
			return nil
		}
		tokens = append(tokens, cellText(cell))
	}
	return tokens
}

// cellAt resolves a mapped column index against the actual cells of a row,
// applying the rowspan shift to columns after the year column.
func cellAt(cells []*html.Node, index, yearIndex, shift int) *html.Node {
	if index < 0 {
		return nil
	}
	if index > yearIndex {
		index += shift
	}
	if index < 0 || index >= len(cells) {
		return nil
	}
	return cells[index]
}

// extractTitle prefers an italicized span, then the first hyperlink's text,
// then the cell's own text with disambiguators stripped.
func extractTitle(node *html.Node) string {
	if italic := findFirst(node, "i"); italic != nil {
		if title := CleanTitle(text(italic)); title != "" {
			return title
		}
	}
	if anchor := findFirst(node, "a"); anchor != nil {
		if title := CleanTitle(text(anchor)); title != "" {
			return title
		}
	}
	return CleanTitle(text(node))
}

// isWinnerMarked detects winner status: bold formatting, the winner
// highlight color, or an asterisk marker.
func isWinnerMarked(node *html.Node) bool {
	if findFirst(node, "b") != nil || findFirst(node, "strong") != nil {
		return true
	}
	if containsHighlight(node) {
		return true
	}
	return strings.Contains(text(node), "*")
}

func containsHighlight(node *html.Node) bool {
	style := strings.ToLower(attr(node, "style") + " " + attr(node, "bgcolor"))
	if strings.Contains(style, winnerHighlight) || strings.Contains(style, strings.TrimPrefix(winnerHighlight, "#")) {
		return true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && containsHighlight(child) {
			return true
		}
	}
	return false
}

// CleanTitle strips reference markers, winner asterisks, and trailing
// disambiguation parentheticals from a raw title.
func CleanTitle(raw string) string {
	cleaned := titlenorm.StripMarkers(raw)
	cleaned = parentheticalPattern.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// ParseYear extracts a year from free text. Split-season ranges normalize
// to the end year: "1929/30" is 1930, "1927-28" is 1928.
func ParseYear(raw string) (int, bool) {
	if match := yearFullRangePattern.FindStringSubmatch(raw); match != nil {
		return atoi(match[1]), true
	}
	if match := yearRangePattern.FindStringSubmatch(raw); match != nil {
		start := atoi(match[1])
		end := (start/100)*100 + atoi(match[2])
		if end < start {
			end += 100
		}
		return end, true
	}
	if match := plainYearPattern.FindStringSubmatch(raw); match != nil {
		return atoi(match[1]), true
	}
	return 0, false
}

func atoi(digits string) int {
	value := 0
	for _, r := range digits {
		value = value*10 + int(r-'0')
	}
	return value
}

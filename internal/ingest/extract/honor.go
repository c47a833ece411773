// Copyright (c) 2026 Palmares. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/openscreen/palmares/pkg/titlenorm"
)

// # Honor pass
//
// Some top honors never appear in the nominee table: they live in the page
// infobox or in a short "Awards" prose section. This secondary pass hunts
// for exactly one title and merges it into the extracted entries.

// honorHeadings are the section headings scanned when the infobox has no
// matching row.
var honorHeadings = []string{"award", "prize", "palmar"}

// honorPhrasings isolate the work's title from known sentence shapes, e.g.
// "Palme d'Or: The Mattei Affair" or "Palme d'Or – The Mattei Affair".
var honorPhrasings = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^.*?:\s*(.+)$`),
	regexp.MustCompile(`(?i)^.*?\x{2013}\s*(.+)$`),
	regexp.MustCompile(`(?i)^.*?\x{2014}\s*(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+(?:won|received|was awarded)\b.*$`),
}

// FindHonor locates the single work awarded the named honor, searching the
// infobox first and the awards section second. The empty string means the
// page carries no recognizable honor callout.
func FindHonor(document *html.Node, awardName string) string {
	if title := honorFromInfobox(document, awardName); title != "" {
		return title
	}
	return honorFromSection(document, awardName)
}

// MergeHonor folds an honor title into the per-year entries: a matching
// entry is promoted to winner, an unknown title is appended as one.
func MergeHonor(entries []Entry, title string, year int) []Entry {
	if title == "" || year == 0 {
		return entries
	}

	key := titlenorm.Key(title)
	for i := range entries {
		if entries[i].Year == year && titlenorm.Key(entries[i].Title) == key {
			entries[i].IsWinner = true
			return entries
		}
	}

	return append(entries, Entry{Title: title, Year: year, IsWinner: true})
}

func honorFromInfobox(document *html.Node, awardName string) string {
	lowered := strings.ToLower(awardName)

	for _, table := range findAll(document, "table") {
		if !hasClass(table, "infobox") {
			continue
		}
		for _, row := range findAll(table, "tr") {
			header := findFirst(row, "th")
			if header == nil || !strings.Contains(strings.ToLower(cellText(header)), lowered) {
				continue
			}
			if value := findFirst(row, "td"); value != nil {
				if title := extractTitle(value); !containsAwardTokens(title, awardName) {
					return title
				}
			}
		}
	}

	return ""
}

func honorFromSection(document *html.Node, awardName string) string {
	for _, heading := range append(findAll(document, "h2"), findAll(document, "h3")...) {
		if !isHonorHeading(cellText(heading)) {
			continue
		}

		// Scan siblings until the next heading of the same rank.
		for sibling := heading.NextSibling; sibling != nil; sibling = sibling.NextSibling {
			if isElement(sibling, "h2", "h3") {
				break
			}
			if sibling.Type != html.ElementNode {
				continue
			}

			candidates := findAll(sibling, "li")
			candidates = append(candidates, findAll(sibling, "tr")...)
			if isElement(sibling, "p") {
				candidates = append(candidates, sibling)
			}

			for _, candidate := range candidates {
				if title := honorFromCandidate(candidate, awardName); title != "" {
					return title
				}
			}
		}
	}

	return ""
}

// honorFromCandidate extracts a title from one list item, row, or paragraph
// that mentions the award by name.
func honorFromCandidate(node *html.Node, awardName string) string {
	content := cellText(node)
	if !strings.Contains(strings.ToLower(content), strings.ToLower(awardName)) {
		return ""
	}

	// The italicized work title is the most reliable signal and never
	// contains the award-name tokens.
	if italic := findFirst(node, "i"); italic != nil {
		if title := CleanTitle(text(italic)); title != "" && !containsAwardTokens(title, awardName) {
			return title
		}
	}

	for _, phrasing := range honorPhrasings {
		match := phrasing.FindStringSubmatch(content)
		if match == nil {
			continue
		}
		if title := CleanTitle(match[1]); title != "" && !containsAwardTokens(title, awardName) {
			return title
		}
	}

	return ""
}

func isHonorHeading(heading string) bool {
	lowered := strings.ToLower(heading)
	for _, marker := range honorHeadings {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// containsAwardTokens rejects a candidate title that still carries parts of
// the award's own name.
func containsAwardTokens(title, awardName string) bool {
	loweredTitle := strings.ToLower(title)
	for _, token := range strings.Fields(strings.ToLower(awardName)) {
		if len(token) < 3 {
			continue
		}
		if strings.Contains(loweredTitle, token) {
			return true
		}
	}
	return false
}

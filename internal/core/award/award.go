// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package award defines the ceremony-side domain entities for the Palmares
catalogue: awarding organizations, their categories, yearly ceremony
editions, and the nomination facts linking films to them.

Core Responsibility:

  - Editions: One ceremony row per (organization, year); the edition ordinal
    is derived from the founding year and recomputed on every encounter.
  - Facts: Nominations are keyed by (film, ceremony, category) so repeated
    ingestion runs converge on a single row per distinct honor.
  - Lookups: A process-scoped reference cache keeps the hot identifiers
    (organization, categories, year-to-ceremony map) out of the write path.

This package acts as the source of truth for all award-related data models.
*/
package award

import "time"

// Organization is an awarding body whose ceremony pages the pipeline ingests.
type Organization struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	FoundingYear int    `json:"founding_year"`

	// PageSlug is the organization's segment in the reference-site URL
	// pattern "{base}/{year}_{pageslug}".
	PageSlug string `json:"page_slug"`
}

// Edition returns the ceremony ordinal for a calendar year, counted from
// the founding year. A corrected founding year therefore propagates to
// every ceremony on the next ingestion run.
func (o *Organization) Edition(year int) int {
	return year - o.FoundingYear + 1
}

// Category is a single honor an organization bestows.
type Category struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
}

// Ceremony is one year's instance of an organization's event.
type Ceremony struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Year           int       `json:"year"`
	Edition        int       `json:"edition"`
	CreatedAt      time.Time `json:"created_at"`
}

// Nomination records that a film was nominated for (and possibly won) a
// category at a ceremony. (FilmID, CeremonyID, CategoryID) is the natural
// key; reruns overwrite the outcome fields in place.
type Nomination struct {
	FilmID         string    `json:"film_id"`
	CeremonyID     string    `json:"ceremony_id"`
	CategoryID     string    `json:"category_id"`
	IsWinner       bool      `json:"is_winner"`
	SpecialMention *string   `json:"special_mention"`
	Attribution    *string   `json:"attribution"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Winner is a read-model row joining a winning nomination to its film's
// default title, used by listing endpoints and the featured pick.
type Winner struct {
	FilmID string `json:"film_id"`
	Year   int    `json:"year"`
	Title  string `json:"title"`
}

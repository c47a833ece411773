// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package film defines the canonical work entities of the Palmares catalogue.

A Film is the deduplicated record every award fact points at. It carries the
external identifiers used for matching (the metadata-service id and the
industry cross-reference id), localized titles and descriptions, poster
artwork, and links back to the source documents it was extracted from.

Core Responsibility:

  - Identity: External identifiers are write-once; once populated they are
    never overwritten, only compared.
  - Localization: Titles follow a default-language fallback law on read.
  - Artwork: Posters are append-only and guarded by a composite natural key
    so repeated ingestion runs never accumulate visual duplicates.
*/
package film

import "time"

// # Localized text kinds

const (
	// KindTitle marks a localized film title.
	KindTitle = "title"

	// KindDescription marks a localized synopsis.
	KindDescription = "description"
)

// # Source reference types

const (
	// SourceWikipedia links a film to the award page it was extracted from.
	SourceWikipedia = "wikipedia"
)

// Film is a canonical, deduplicated work record.
type Film struct {
	ID string `json:"id"`

	// TMDBID is the metadata-service identifier. Unique when present.
	TMDBID *int64 `json:"tmdb_id"`

	// IMDBID is the industry cross-reference identifier. Unique when present.
	IMDBID *string `json:"imdb_id"`

	OriginLanguage string    `json:"origin_language"`
	Year           int       `json:"year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Title is a localized title or description owned by a film.
type Title struct {
	FilmID       string `json:"film_id"`
	Kind         string `json:"kind"`
	LanguageCode string `json:"language_code"`
	Content      string `json:"content"`
	IsDefault    bool   `json:"is_default"`
}

// Poster is a single artwork reference. Rows are append-only.
type Poster struct {
	ID           string  `json:"id"`
	FilmID       string  `json:"film_id"`
	URL          string  `json:"url"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	LanguageCode *string `json:"language_code"`
	CountryCode  *string `json:"country_code"`
	IsPrimary    bool    `json:"is_primary"`
}

// Source is an external reference document for a film.
type Source struct {
	FilmID       string `json:"film_id"`
	SourceType   string `json:"source_type"`
	LanguageCode string `json:"language_code"`
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
}

// Detail bundles a film with its localized texts and artwork for read paths.
type Detail struct {
	Film    *Film     `json:"film"`
	Titles  []*Title  `json:"titles"`
	Posters []*Poster `json:"posters"`
	Sources []*Source `json:"sources"`

	// DisplayTitle is the title selected for the requested locale, with
	// the default-language title as fallback.
	DisplayTitle string `json:"display_title"`
}

// Summary is the listing row exposed by the catalogue endpoints.
type Summary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	PosterURL *string `json:"poster_url"`
}

// Copyright (c) 2026 Palmares. All rights reserved.

package tmdb

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/openscreen/palmares/pkg/pointer"
)

// imageBaseURL prefixes every poster file path returned by the service.
const imageBaseURL = "https://image.tmdb.org/t/p/original"

// yearWindowPrimary is the acceptance window when the search itself was
// year-constrained; yearWindowFallback widens it for the year-less retry.
const (
	yearWindowPrimary  = 1
	yearWindowFallback = 2
)

// Resolution is the best-effort metadata for one extracted entry.
type Resolution struct {
	TMDBID           int64
	CanonicalTitle   string
	OriginalLanguage string
	IMDBID           *string

	// LocalizedTitle is the secondary-locale title, present only when it
	// actually differs from the canonical one.
	LocalizedTitle *string

	Overview  *string
	PosterURL *string
	Posters   []Image
}

/*
Resolver layers the fallback matching strategy over the raw client.

Strategy: a year-constrained search filtered to a ±1 window; when that yields
nothing, a year-less retry with a ±2 window ranked by year distance. A
resolved candidate is then enriched with two locale passes: the default
locale supplies the cross-reference identifier and poster, the secondary
locale supplies a localized title (kept only when it differs, so an
identical pass-through title is not stored as a translation).

The resolver never fails a pipeline run: any network, decoding, or non-2xx
condition degrades to a nil resolution (logged), except context cancellation
which is always surfaced.
*/
type Resolver struct {
	client          *Client
	defaultLocale   string
	secondaryLocale string
	logger          *slog.Logger
}

func NewResolver(client *Client, defaultLocale, secondaryLocale string, logger *slog.Logger) *Resolver {
	return &Resolver{
		client:          client,
		defaultLocale:   defaultLocale,
		secondaryLocale: secondaryLocale,
		logger:          logger,
	}
}

// Resolve finds the best metadata match for (title, year). A nil resolution
// with a nil error means "unavailable": the caller proceeds without
// metadata rather than aborting the unit.
func (resolver *Resolver) Resolve(context context.Context, title string, year int) (*Resolution, error) {
	candidate, err := resolver.search(context, title, year)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}

	resolution := &Resolution{
		TMDBID:           candidate.ID,
		CanonicalTitle:   candidate.Title,
		OriginalLanguage: candidate.OriginalLanguage,
	}

	resolver.enrich(context, resolution)
	return resolution, context.Err()
}

// ResolveByIMDBID resolves directly through the cross-reference identifier,
// bypassing the title search entirely. Extraction captures IMDb links from
// source markup; when one exists it beats any fuzzy title match. A nil
// resolution means the identifier is unknown to the service and the caller
// should fall back to Resolve.
func (resolver *Resolver) ResolveByIMDBID(context context.Context, imdbID string) (*Resolution, error) {
	candidate, err := resolver.client.FindByIMDBID(context, imdbID)
	if err != nil {
		if context.Err() != nil {
			return nil, context.Err()
		}
		resolver.logger.Warn("metadata_find_failed",
			slog.String("imdb_id", imdbID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if candidate == nil {
		return nil, nil
	}

	resolution := &Resolution{
		TMDBID:           candidate.ID,
		CanonicalTitle:   candidate.Title,
		OriginalLanguage: candidate.OriginalLanguage,
	}

	resolver.enrich(context, resolution)
	return resolution, context.Err()
}

// search runs the primary and fallback passes and returns the top-ranked
// candidate, or nil when nothing acceptable was found.
func (resolver *Resolver) search(context context.Context, title string, year int) (*SearchResult, error) {
	results, err := resolver.client.SearchMovie(context, title, year)
	if err != nil {
		if context.Err() != nil {
			return nil, context.Err()
		}
		resolver.logger.Warn("metadata_search_failed",
			slog.String("title", title),
			slog.Int("year", year),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	if match := bestByYear(results, year, yearWindowPrimary); match != nil {
		return match, nil
	}

	// Fallback: drop the year constraint and widen the acceptance window.
	// Catches entries whose listed ceremony year is off by one from the
	// release year the metadata service knows.
	results, err = resolver.client.SearchMovie(context, title, 0)
	if err != nil {
		if context.Err() != nil {
			return nil, context.Err()
		}
		resolver.logger.Warn("metadata_fallback_search_failed",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return bestByYear(results, year, yearWindowFallback), nil
}

// enrich performs the two locale passes and the poster fetch. Each step is
// independently best-effort.
func (resolver *Resolver) enrich(context context.Context, resolution *Resolution) {
	details, err := resolver.client.MovieDetails(context, resolution.TMDBID, resolver.defaultLocale)
	if err != nil {
		resolver.logger.Warn("metadata_details_failed",
			slog.Int64("tmdb_id", resolution.TMDBID),
			slog.String("locale", resolver.defaultLocale),
			slog.String("error", err.Error()),
		)
	} else {
		if details.Title != "" {
			resolution.CanonicalTitle = details.Title
		}
		if details.OriginalLanguage != "" {
			resolution.OriginalLanguage = details.OriginalLanguage
		}
		if details.IMDBID != "" {
			resolution.IMDBID = pointer.To(details.IMDBID)
		}
		if details.Overview != "" {
			resolution.Overview = pointer.To(details.Overview)
		}
		if details.PosterPath != "" {
			resolution.PosterURL = pointer.To(imageBaseURL + details.PosterPath)
		}
	}

	localized, err := resolver.client.MovieDetails(context, resolution.TMDBID, resolver.secondaryLocale)
	if err != nil {
		resolver.logger.Warn("metadata_details_failed",
			slog.Int64("tmdb_id", resolution.TMDBID),
			slog.String("locale", resolver.secondaryLocale),
			slog.String("error", err.Error()),
		)
	} else if localized.Title != "" && localized.Title != resolution.CanonicalTitle {
		resolution.LocalizedTitle = pointer.To(localized.Title)
	}

	if resolution.LocalizedTitle == nil {
		resolver.localizedFromTranslations(context, resolution)
	}

	posters, err := resolver.client.MovieImages(context, resolution.TMDBID)
	if err != nil {
		resolver.logger.Warn("metadata_images_failed",
			slog.Int64("tmdb_id", resolution.TMDBID),
			slog.String("error", err.Error()),
		)
		return
	}
	resolution.Posters = posters
}

/*
localizedFromTranslations falls back to the translations inventory when the
secondary-locale details pass produced no distinct title. Translations are
keyed by bare language code, so the locale's region suffix is dropped.
*/
func (resolver *Resolver) localizedFromTranslations(context context.Context, resolution *Resolution) {
	language, _, _ := strings.Cut(resolver.secondaryLocale, "-")

	translations, err := resolver.client.MovieTranslations(context, resolution.TMDBID)
	if err != nil {
		resolver.logger.Warn("metadata_translations_failed",
			slog.Int64("tmdb_id", resolution.TMDBID),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, translation := range translations {
		if translation.LanguageCode != language {
			continue
		}
		if title := translation.Data.Title; title != "" && title != resolution.CanonicalTitle {
			resolution.LocalizedTitle = pointer.To(title)
		}
		return
	}
}

// PosterURLFor builds the absolute artwork URL for an image entry.
func PosterURLFor(image Image) string {
	return imageBaseURL + image.FilePath
}

// bestByYear filters candidates to |release year − year| <= window and
// returns the one with minimal distance; ties keep the service's ranking.
func bestByYear(results []SearchResult, year, window int) *SearchResult {
	type ranked struct {
		result   SearchResult
		distance int
		position int
	}

	var accepted []ranked
	for i, result := range results {
		releaseYear := parseReleaseYear(result.ReleaseDate)
		if releaseYear == 0 {
			continue
		}
		distance := releaseYear - year
		if distance < 0 {
			distance = -distance
		}
		if distance > window {
			continue
		}
		accepted = append(accepted, ranked{result: result, distance: distance, position: i})
	}

	if len(accepted) == 0 {
		return nil
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].distance != accepted[j].distance {
			return accepted[i].distance < accepted[j].distance
		}
		return accepted[i].position < accepted[j].position
	})

	return &accepted[0].result
}

// parseReleaseYear extracts the year from a "YYYY-MM-DD" date, returning 0
// when the date is absent or malformed.
func parseReleaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

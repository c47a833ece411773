// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package reconcile merges extracted entries into the canonical store.

The engine exclusively owns creation and mutation of persisted records. Its
contract is idempotence: running the same ceremony twice, or two runs racing
each other, must converge on one canonical film per work and one nomination
row per (film, ceremony, category), with no populated identifier ever
overwritten. Matching precedence is the cross-reference identifier first,
the exact default-language title second; storage-level unique constraints
are the final arbiter for anything the lookups miss.
*/
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/core/film"
	"github.com/openscreen/palmares/internal/ingest/extract"
	"github.com/openscreen/palmares/internal/metadata/tmdb"
	"github.com/openscreen/palmares/internal/platform/dberr"
	"github.com/openscreen/palmares/internal/platform/metrics"
	"github.com/openscreen/palmares/pkg/uuidv7"
)

// maxPostersPerResolution caps how much artwork one resolution contributes;
// the images endpoint can return dozens of near-identical scans.
const maxPostersPerResolution = 3

type Engine struct {
	films   film.Repository
	cache   *award.Cache
	awards  award.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger

	defaultLocale   string
	secondaryLocale string
}

func NewEngine(
	films film.Repository,
	awards award.Repository,
	cache *award.Cache,
	m *metrics.Metrics,
	logger *slog.Logger,
	defaultLocale, secondaryLocale string,
) *Engine {
	return &Engine{
		films:           films,
		awards:          awards,
		cache:           cache,
		metrics:         m,
		logger:          logger,
		defaultLocale:   defaultLocale,
		secondaryLocale: secondaryLocale,
	}
}

// Apply reconciles one extracted entry, with optional resolved metadata,
// into the store under the named category.
func (engine *Engine) Apply(context context.Context, entry extract.Entry, resolution *tmdb.Resolution, categorySlug string) error {
	ceremonyID, err := engine.cache.CeremonyID(context, entry.Year)
	if err != nil {
		return fmt.Errorf("reconcile: ceremony for %d: %w", entry.Year, err)
	}
	categoryID, err := engine.cache.CategoryID(context, categorySlug)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	record, err := engine.matchOrCreate(context, entry, resolution)
	if err != nil {
		return err
	}

	if err := engine.applyMetadata(context, record, resolution); err != nil {
		return err
	}

	if entry.SourceURL != nil {
		source := &film.Source{
			FilmID:       record.ID,
			SourceType:   film.SourceWikipedia,
			LanguageCode: engine.defaultLocale,
			URL:          *entry.SourceURL,
			IsPrimary:    true,
		}
		if err := engine.films.UpsertSource(context, source); err != nil {
			return fmt.Errorf("reconcile: source for %s: %w", record.ID, err)
		}
		engine.metrics.IncrementUpsert("source", "upsert")
	}

	nomination := &award.Nomination{
		FilmID:      record.ID,
		CeremonyID:  ceremonyID,
		CategoryID:  categoryID,
		IsWinner:    entry.IsWinner,
		Attribution: entry.Attribution,
	}
	if err := engine.awards.UpsertNomination(context, nomination); err != nil {
		return fmt.Errorf("reconcile: nomination for %s: %w", record.ID, err)
	}
	engine.metrics.IncrementUpsert("nomination", "upsert")

	return nil
}

// RefreshWinner is the winners-only path: it promotes an already-known
// film's nomination without creating any records. Unknown films are skipped
// with a log line; the next full run will pick them up.
func (engine *Engine) RefreshWinner(context context.Context, entry extract.Entry, categorySlug string) error {
	record, err := engine.lookup(context, entry, nil)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			engine.logger.Info("winner_refresh_skipped",
				slog.String("title", entry.Title),
				slog.Int("year", entry.Year),
			)
			return nil
		}
		return err
	}

	ceremonyID, err := engine.cache.CeremonyID(context, entry.Year)
	if err != nil {
		return fmt.Errorf("reconcile: ceremony for %d: %w", entry.Year, err)
	}
	categoryID, err := engine.cache.CategoryID(context, categorySlug)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	nomination := &award.Nomination{
		FilmID:      record.ID,
		CeremonyID:  ceremonyID,
		CategoryID:  categoryID,
		IsWinner:    true,
		Attribution: entry.Attribution,
	}
	if err := engine.awards.UpsertNomination(context, nomination); err != nil {
		return fmt.Errorf("reconcile: nomination for %s: %w", record.ID, err)
	}
	engine.metrics.IncrementUpsert("nomination", "refresh")

	return nil
}

// lookup finds an existing film by identifier first, exact default title
// second.
func (engine *Engine) lookup(context context.Context, entry extract.Entry, resolution *tmdb.Resolution) (*film.Film, error) {
	imdbID := entry.IMDBID
	if imdbID == nil && resolution != nil {
		imdbID = resolution.IMDBID
	}

	if imdbID != nil {
		record, err := engine.films.FindByIMDBID(context, *imdbID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, dberr.ErrNotFound) {
			return nil, fmt.Errorf("reconcile: lookup by identifier: %w", err)
		}
	}

	title := entry.Title
	if resolution != nil && resolution.CanonicalTitle != "" {
		title = resolution.CanonicalTitle
	}

	record, err := engine.films.FindByDefaultTitle(context, title, entry.Year)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reconcile: lookup by title: %w", err)
	}
	return record, nil
}

// matchOrCreate resolves the canonical record for an entry, creating it
// (with its default title) when no match exists, and backfilling missing
// identifiers when one does.
func (engine *Engine) matchOrCreate(context context.Context, entry extract.Entry, resolution *tmdb.Resolution) (*film.Film, error) {
	record, err := engine.lookup(context, entry, resolution)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	title := entry.Title
	originLanguage := ""
	var tmdbID *int64
	imdbID := entry.IMDBID
	if resolution != nil {
		if resolution.CanonicalTitle != "" {
			title = resolution.CanonicalTitle
		}
		originLanguage = resolution.OriginalLanguage
		tmdbID = &resolution.TMDBID
		if imdbID == nil {
			imdbID = resolution.IMDBID
		}
	}

	if record == nil || errors.Is(err, dberr.ErrNotFound) {
		record = &film.Film{
			ID:             uuidv7.New(),
			TMDBID:         tmdbID,
			IMDBID:         imdbID,
			OriginLanguage: originLanguage,
			Year:           entry.Year,
		}
		if err := engine.films.CreateFilm(context, record); err != nil {
			// Two runs racing on the same work: the loser re-reads the
			// winner's row instead of failing the entry.
			if dberr.IsUniqueViolation(err) {
				engine.logger.Warn("film_create_conflict",
					slog.String("title", title),
					slog.Int("year", entry.Year),
				)
				return engine.lookup(context, entry, resolution)
			}
			return nil, fmt.Errorf("reconcile: create film %q: %w", title, err)
		}
		engine.metrics.IncrementUpsert("film", "create")

		defaultTitle := &film.Title{
			FilmID:       record.ID,
			Kind:         film.KindTitle,
			LanguageCode: engine.defaultLocale,
			Content:      title,
			IsDefault:    true,
		}
		if err := engine.films.UpsertTitle(context, defaultTitle); err != nil {
			return nil, fmt.Errorf("reconcile: default title for %s: %w", record.ID, err)
		}
		engine.metrics.IncrementUpsert("title", "create")

		return record, nil
	}

	// Existing record: backfill only what is still missing. Identifiers
	// are write-once, and a cross-record collision (the identifier already
	// belongs to another film) is logged and skipped, never forced.
	record.TMDBID = tmdbID
	record.IMDBID = imdbID
	record.OriginLanguage = originLanguage
	if err := engine.films.BackfillFilm(context, record); err != nil {
		if dberr.IsUniqueViolation(err) {
			engine.logger.Warn("identifier_conflict",
				slog.String("film_id", record.ID),
				slog.String("title", title),
				slog.Int("year", entry.Year),
			)
			return record, nil
		}
		return nil, fmt.Errorf("reconcile: backfill film %s: %w", record.ID, err)
	}
	engine.metrics.IncrementUpsert("film", "backfill")

	return record, nil
}

// applyMetadata upserts the localized title, description, and artwork a
// resolution contributed.
func (engine *Engine) applyMetadata(context context.Context, record *film.Film, resolution *tmdb.Resolution) error {
	if resolution == nil {
		return nil
	}

	if resolution.LocalizedTitle != nil {
		localized := &film.Title{
			FilmID:       record.ID,
			Kind:         film.KindTitle,
			LanguageCode: engine.secondaryLocale,
			Content:      *resolution.LocalizedTitle,
		}
		if err := engine.films.UpsertTitle(context, localized); err != nil {
			return fmt.Errorf("reconcile: localized title for %s: %w", record.ID, err)
		}
		engine.metrics.IncrementUpsert("title", "upsert")
	}

	if resolution.Overview != nil {
		description := &film.Title{
			FilmID:       record.ID,
			Kind:         film.KindDescription,
			LanguageCode: engine.defaultLocale,
			Content:      *resolution.Overview,
			IsDefault:    true,
		}
		if err := engine.films.UpsertTitle(context, description); err != nil {
			return fmt.Errorf("reconcile: description for %s: %w", record.ID, err)
		}
		engine.metrics.IncrementUpsert("title", "upsert")
	}

	posters := engine.buildPosters(record.ID, resolution)
	if len(posters) > 0 {
		if err := engine.films.AddPosters(context, posters); err != nil {
			return fmt.Errorf("reconcile: posters for %s: %w", record.ID, err)
		}
		engine.metrics.IncrementUpsert("poster", "append")
	}

	return nil
}

// buildPosters converts resolved artwork into rows, primary first, capped
// so one resolution cannot flood the table.
func (engine *Engine) buildPosters(filmID string, resolution *tmdb.Resolution) []*film.Poster {
	var posters []*film.Poster

	for i, image := range resolution.Posters {
		if i >= maxPostersPerResolution {
			break
		}
		posters = append(posters, &film.Poster{
			ID:           uuidv7.New(),
			FilmID:       filmID,
			URL:          tmdb.PosterURLFor(image),
			Width:        image.Width,
			Height:       image.Height,
			LanguageCode: image.LanguageCode,
			CountryCode:  image.CountryCode,
			IsPrimary:    i == 0,
		})
	}

	// Fall back to the single details-pass poster when the images
	// endpoint contributed nothing. Dimensions are unknown there; zero is
	// a legitimate key value absorbed by the composite constraint.
	if len(posters) == 0 && resolution.PosterURL != nil {
		posters = append(posters, &film.Poster{
			ID:        uuidv7.New(),
			FilmID:    filmID,
			URL:       *resolution.PosterURL,
			IsPrimary: true,
		})
	}

	return posters
}

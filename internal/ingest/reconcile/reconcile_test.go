// Copyright (c) 2026 Palmares. All rights reserved.

package reconcile_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/core/film"
	"github.com/openscreen/palmares/internal/ingest/extract"
	"github.com/openscreen/palmares/internal/ingest/reconcile"
	"github.com/openscreen/palmares/internal/metadata/tmdb"
	"github.com/openscreen/palmares/internal/platform/dberr"
)

// # In-memory fakes

type fakeFilms struct {
	films   []*film.Film
	titles  map[string]*film.Title
	posters []*film.Poster
	sources map[string]*film.Source

	// backfillErr, when set, is returned by every BackfillFilm call.
	backfillErr error

	// createHook, when set, intercepts the next CreateFilm call.
	createHook func(record *film.Film) error
}

func newFakeFilms() *fakeFilms {
	return &fakeFilms{
		titles:  make(map[string]*film.Title),
		sources: make(map[string]*film.Source),
	}
}

func (f *fakeFilms) GetFilm(_ context.Context, _ string) (*film.Detail, error) {
	return nil, dberr.ErrNotFound
}

func (f *fakeFilms) ListFilms(_ context.Context, _, _ int) ([]*film.Summary, int, error) {
	return nil, 0, nil
}

func (f *fakeFilms) FindByIMDBID(_ context.Context, imdbID string) (*film.Film, error) {
	for _, record := range f.films {
		if record.IMDBID != nil && *record.IMDBID == imdbID {
			return record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeFilms) FindByDefaultTitle(_ context.Context, title string, year int) (*film.Film, error) {
	for _, record := range f.films {
		key := titleKey(record.ID, film.KindTitle, "en-US")
		if stored, ok := f.titles[key]; ok && stored.Content == title && record.Year == year {
			return record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeFilms) CreateFilm(_ context.Context, record *film.Film) error {
	if f.createHook != nil {
		hook := f.createHook
		f.createHook = nil
		return hook(record)
	}
	f.films = append(f.films, record)
	return nil
}

func (f *fakeFilms) BackfillFilm(_ context.Context, record *film.Film) error {
	if f.backfillErr != nil {
		return f.backfillErr
	}
	for _, stored := range f.films {
		if stored.ID != record.ID {
			continue
		}
		// Null-only semantics, mirroring the COALESCE update
		if stored.TMDBID == nil {
			stored.TMDBID = record.TMDBID
		}
		if stored.IMDBID == nil {
			stored.IMDBID = record.IMDBID
		}
		if stored.OriginLanguage == "" {
			stored.OriginLanguage = record.OriginLanguage
		}
		*record = *stored
		return nil
	}
	return dberr.ErrNotFound
}

func (f *fakeFilms) UpsertTitle(_ context.Context, title *film.Title) error {
	f.titles[titleKey(title.FilmID, title.Kind, title.LanguageCode)] = title
	return nil
}

func (f *fakeFilms) AddPosters(_ context.Context, posters []*film.Poster) error {
	for _, poster := range posters {
		duplicate := false
		for _, stored := range f.posters {
			if stored.FilmID == poster.FilmID && stored.Width == poster.Width && stored.Height == poster.Height {
				duplicate = true
				break
			}
		}
		if !duplicate {
			f.posters = append(f.posters, poster)
		}
	}
	return nil
}

func (f *fakeFilms) UpsertSource(_ context.Context, source *film.Source) error {
	f.sources[source.FilmID+"|"+source.SourceType+"|"+source.LanguageCode] = source
	return nil
}

func titleKey(filmID, kind, languageCode string) string {
	return filmID + "|" + kind + "|" + languageCode
}

type fakeAwards struct {
	ceremonies  map[int]*award.Ceremony
	nominations map[string]*award.Nomination
}

func newFakeAwards() *fakeAwards {
	return &fakeAwards{
		ceremonies:  make(map[int]*award.Ceremony),
		nominations: make(map[string]*award.Nomination),
	}
}

func (f *fakeAwards) GetOrganizationBySlug(_ context.Context, slug string) (*award.Organization, error) {
	return &award.Organization{ID: "org-1", Slug: slug, FoundingYear: 1946, PageSlug: "Cannes_Film_Festival"}, nil
}

func (f *fakeAwards) ListCategories(_ context.Context, organizationID string) ([]*award.Category, error) {
	return []*award.Category{
		{ID: "cat-palme", OrganizationID: organizationID, Slug: "palme-dor"},
		{ID: "cat-competition", OrganizationID: organizationID, Slug: "in-competition"},
	}, nil
}

func (f *fakeAwards) UpsertCeremony(_ context.Context, c *award.Ceremony) error {
	if existing, ok := f.ceremonies[c.Year]; ok {
		c.ID = existing.ID
		existing.Edition = c.Edition
		return nil
	}
	f.ceremonies[c.Year] = c
	return nil
}

func (f *fakeAwards) UpsertNomination(_ context.Context, n *award.Nomination) error {
	key := fmt.Sprintf("%s|%s|%s", n.FilmID, n.CeremonyID, n.CategoryID)
	if existing, ok := f.nominations[key]; ok {
		existing.IsWinner = n.IsWinner
		existing.SpecialMention = n.SpecialMention
		if existing.Attribution == nil {
			existing.Attribution = n.Attribution
		}
		return nil
	}
	copied := *n
	f.nominations[key] = &copied
	return nil
}

func (f *fakeAwards) ListWinners(_ context.Context, _ string) ([]*award.Winner, error) {
	return nil, nil
}

func newEngine(films *fakeFilms, awards *fakeAwards) *reconcile.Engine {
	logger := slog.New(slog.DiscardHandler)
	cache := award.NewCache(awards, logger, "cannes-film-festival")
	return reconcile.NewEngine(films, awards, cache, nil, logger, "en-US", "fr-FR")
}

func strPtr(s string) *string { return &s }

// # Tests

/*
TestApply_CreatesFilmAndNomination verifies the create path: a new canonical
record, its default title, source reference, ceremony, and nomination.
*/
func TestApply_CreatesFilmAndNomination(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	entry := extract.Entry{
		Title:     "The Mattei Affair",
		Year:      1972,
		IsWinner:  true,
		SourceURL: strPtr("https://en.wikipedia.org/wiki/The_Mattei_Affair"),
	}
	tmdbID := int64(5915)
	resolution := &tmdb.Resolution{
		TMDBID:           tmdbID,
		CanonicalTitle:   "The Mattei Affair",
		OriginalLanguage: "it",
		IMDBID:           strPtr("tt0068950"),
	}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "palme-dor"))

	require.Len(t, films.films, 1)
	record := films.films[0]
	assert.Equal(t, 1972, record.Year)
	assert.Equal(t, "it", record.OriginLanguage)
	require.NotNil(t, record.TMDBID)
	assert.Equal(t, tmdbID, *record.TMDBID)

	defaultTitle := films.titles[titleKey(record.ID, film.KindTitle, "en-US")]
	require.NotNil(t, defaultTitle)
	assert.True(t, defaultTitle.IsDefault)
	assert.Equal(t, "The Mattei Affair", defaultTitle.Content)

	assert.Len(t, films.sources, 1)
	require.Len(t, awards.ceremonies, 1)
	assert.Equal(t, 27, awards.ceremonies[1972].Edition)

	require.Len(t, awards.nominations, 1)
	for _, nomination := range awards.nominations {
		assert.True(t, nomination.IsWinner)
		assert.Equal(t, "cat-palme", nomination.CategoryID)
	}
}

/*
TestApply_Idempotent verifies the core guarantee: applying the same entry
twice converges on one film and one nomination row.
*/
func TestApply_Idempotent(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	entry := extract.Entry{Title: "Cabaret", Year: 1972}
	resolution := &tmdb.Resolution{TMDBID: 903, CanonicalTitle: "Cabaret"}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))
	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))

	assert.Len(t, films.films, 1)
	assert.Len(t, awards.nominations, 1)
}

/*
TestApply_NominationPromotion verifies the natural-key overwrite: a rerun
that discovers a win flips the existing row instead of adding one.
*/
func TestApply_NominationPromotion(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	entry := extract.Entry{Title: "Taxi Driver", Year: 1976}
	require.NoError(t, engine.Apply(context.Background(), entry, nil, "in-competition"))

	entry.IsWinner = true
	require.NoError(t, engine.Apply(context.Background(), entry, nil, "in-competition"))

	require.Len(t, awards.nominations, 1)
	for _, nomination := range awards.nominations {
		assert.True(t, nomination.IsWinner)
	}
}

/*
TestApply_MatchesByIdentifierAndBackfills verifies identifier-first matching
and null-only backfill: the populated identifier survives a divergent
resolver answer.
*/
func TestApply_MatchesByIdentifierAndBackfills(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	existing := &film.Film{ID: "film-1", IMDBID: strPtr("tt0068646"), Year: 1972}
	films.films = append(films.films, existing)
	require.NoError(t, films.UpsertTitle(context.Background(), &film.Title{
		FilmID: "film-1", Kind: film.KindTitle, LanguageCode: "en-US",
		Content: "The Godfather", IsDefault: true,
	}))

	tmdbID := int64(238)
	entry := extract.Entry{Title: "The Godfather", Year: 1972, IMDBID: strPtr("tt0068646")}
	resolution := &tmdb.Resolution{
		TMDBID:           tmdbID,
		CanonicalTitle:   "The Godfather",
		OriginalLanguage: "en",
		IMDBID:           strPtr("tt9999999"), // divergent upstream answer
	}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))

	require.Len(t, films.films, 1)
	require.NotNil(t, existing.TMDBID)
	assert.Equal(t, tmdbID, *existing.TMDBID)

	// Write-once: the already-populated identifier was not overwritten
	assert.Equal(t, "tt0068646", *existing.IMDBID)
}

/*
TestApply_IdentifierConflictSkipsBackfill verifies the cross-record
uniqueness guard: a unique violation on backfill is logged and skipped, and
the nomination still lands.
*/
func TestApply_IdentifierConflictSkipsBackfill(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	films.films = append(films.films, &film.Film{ID: "film-1", Year: 1963})
	require.NoError(t, films.UpsertTitle(context.Background(), &film.Title{
		FilmID: "film-1", Kind: film.KindTitle, LanguageCode: "en-US",
		Content: "The Leopard", IsDefault: true,
	}))
	// The real repository wraps driver errors, so the fake must too: the
	// guard has to classify the violation through the wrapped chain.
	films.backfillErr = dberr.Wrap(&pgconn.PgError{Code: "23505"}, "backfill_film")

	entry := extract.Entry{Title: "The Leopard", Year: 1963}
	resolution := &tmdb.Resolution{TMDBID: 335, CanonicalTitle: "The Leopard"}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))
	assert.Len(t, awards.nominations, 1)
}

/*
TestApply_CreateRaceRecoversWinnerRow verifies the create-race recovery:
when the insert loses to a concurrent run, the engine re-reads the winner's
row and attaches the nomination there instead of failing the entry.
*/
func TestApply_CreateRaceRecoversWinnerRow(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	films.createHook = func(_ *film.Film) error {
		// The concurrent winner's row appears between insert and re-read.
		winner := &film.Film{ID: "film-weekend", Year: 1967}
		films.films = append(films.films, winner)
		films.titles[titleKey(winner.ID, film.KindTitle, "en-US")] = &film.Title{
			FilmID: winner.ID, Kind: film.KindTitle, LanguageCode: "en-US",
			Content: "Week-end", IsDefault: true,
		}
		return dberr.Wrap(&pgconn.PgError{Code: "23505"}, "create_film")
	}

	entry := extract.Entry{Title: "Week-end", Year: 1967}
	resolution := &tmdb.Resolution{TMDBID: 402, CanonicalTitle: "Week-end"}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))

	// 1. No second record was created
	require.Len(t, films.films, 1)

	// 2. The nomination landed on the winner's row
	require.Len(t, awards.nominations, 1)
	for _, nomination := range awards.nominations {
		assert.Equal(t, "film-weekend", nomination.FilmID)
	}
}

/*
TestApply_LocalizedTitleAndPosters verifies the metadata side effects: a
secondary-locale title, a description, and capped append-only artwork.
*/
func TestApply_LocalizedTitleAndPosters(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	entry := extract.Entry{Title: "The Leopard", Year: 1963}
	resolution := &tmdb.Resolution{
		TMDBID:         335,
		CanonicalTitle: "The Leopard",
		LocalizedTitle: strPtr("Le Guépard"),
		Overview:       strPtr("A Sicilian prince watches his world fade."),
		Posters: []tmdb.Image{
			{FilePath: "/a.jpg", Width: 2000, Height: 3000},
			{FilePath: "/b.jpg", Width: 1500, Height: 2250},
			{FilePath: "/c.jpg", Width: 1000, Height: 1500},
			{FilePath: "/d.jpg", Width: 500, Height: 750},
		},
	}

	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))

	record := films.films[0]
	localized := films.titles[titleKey(record.ID, film.KindTitle, "fr-FR")]
	require.NotNil(t, localized)
	assert.Equal(t, "Le Guépard", localized.Content)
	assert.False(t, localized.IsDefault)

	description := films.titles[titleKey(record.ID, film.KindDescription, "en-US")]
	require.NotNil(t, description)

	// Capped, primary first
	require.Len(t, films.posters, 3)
	assert.True(t, films.posters[0].IsPrimary)
	assert.False(t, films.posters[1].IsPrimary)

	// Reapplying contributes no duplicate artwork
	require.NoError(t, engine.Apply(context.Background(), entry, resolution, "in-competition"))
	assert.Len(t, films.posters, 3)
}

/*
TestRefreshWinner verifies the winners-only path: known films are promoted,
unknown films are skipped without creating records.
*/
func TestRefreshWinner(t *testing.T) {
	films := newFakeFilms()
	awards := newFakeAwards()
	engine := newEngine(films, awards)

	films.films = append(films.films, &film.Film{ID: "film-1", Year: 1955})
	require.NoError(t, films.UpsertTitle(context.Background(), &film.Title{
		FilmID: "film-1", Kind: film.KindTitle, LanguageCode: "en-US",
		Content: "Marty", IsDefault: true,
	}))

	// 1. Known film: nomination upserted as a win
	require.NoError(t, engine.RefreshWinner(context.Background(), extract.Entry{Title: "Marty", Year: 1955}, "palme-dor"))
	require.Len(t, awards.nominations, 1)
	for _, nomination := range awards.nominations {
		assert.True(t, nomination.IsWinner)
	}

	// 2. Unknown film: skipped, nothing created
	require.NoError(t, engine.RefreshWinner(context.Background(), extract.Entry{Title: "Unknown Film", Year: 1955}, "palme-dor"))
	assert.Len(t, films.films, 1)
	assert.Len(t, awards.nominations, 1)
}

// Copyright (c) 2026 Palmares. All rights reserved.

package film

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openscreen/palmares/internal/platform/database/schema"
	"github.com/openscreen/palmares/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// filmColumns is the shared SELECT list for core.film scans.
func filmColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.CoreFilm.ID, schema.CoreFilm.TMDBID, schema.CoreFilm.IMDBID,
		schema.CoreFilm.OriginLanguage, schema.CoreFilm.Year,
		schema.CoreFilm.CreatedAt, schema.CoreFilm.UpdatedAt,
	)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, part := range parts {
		parts[i] = alias + "." + part
	}
	return strings.Join(parts, ", ")
}

func scanFilm(row pgx.Row) (*Film, error) {
	f := &Film{}
	err := row.Scan(&f.ID, &f.TMDBID, &f.IMDBID, &f.OriginLanguage, &f.Year, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (repository *PostgresRepository) GetFilm(context context.Context, id string) (*Detail, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		filmColumns(), schema.CoreFilm.Table, schema.CoreFilm.ID,
	)

	f, err := scanFilm(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_film")
	}

	detail := &Detail{Film: f}

	if detail.Titles, err = repository.listTitles(context, id); err != nil {
		return nil, err
	}
	if detail.Posters, err = repository.listPosters(context, id); err != nil {
		return nil, err
	}
	if detail.Sources, err = repository.listSources(context, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (repository *PostgresRepository) listTitles(context context.Context, filmID string) ([]*Title, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s ASC
	`,
		schema.CoreFilmTitle.FilmID, schema.CoreFilmTitle.Kind, schema.CoreFilmTitle.LanguageCode,
		schema.CoreFilmTitle.Content, schema.CoreFilmTitle.IsDefault,
		schema.CoreFilmTitle.Table, schema.CoreFilmTitle.FilmID,
		schema.CoreFilmTitle.IsDefault, schema.CoreFilmTitle.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, filmID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_film_titles")
	}
	defer rows.Close()

	var titles []*Title
	for rows.Next() {
		t := &Title{}
		if err := rows.Scan(&t.FilmID, &t.Kind, &t.LanguageCode, &t.Content, &t.IsDefault); err != nil {
			return nil, dberr.Wrap(err, "scan_film_title")
		}
		titles = append(titles, t)
	}

	return titles, nil
}

func (repository *PostgresRepository) listPosters(context context.Context, filmID string) ([]*Poster, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
	`,
		schema.CoreFilmPoster.ID, schema.CoreFilmPoster.FilmID, schema.CoreFilmPoster.URL,
		schema.CoreFilmPoster.Width, schema.CoreFilmPoster.Height,
		schema.CoreFilmPoster.LanguageCode, schema.CoreFilmPoster.CountryCode, schema.CoreFilmPoster.IsPrimary,
		schema.CoreFilmPoster.Table, schema.CoreFilmPoster.FilmID,
		schema.CoreFilmPoster.IsPrimary, schema.CoreFilmPoster.Width,
	)

	rows, err := repository.db.Query(context, query, filmID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_film_posters")
	}
	defer rows.Close()

	var posters []*Poster
	for rows.Next() {
		p := &Poster{}
		if err := rows.Scan(&p.ID, &p.FilmID, &p.URL, &p.Width, &p.Height, &p.LanguageCode, &p.CountryCode, &p.IsPrimary); err != nil {
			return nil, dberr.Wrap(err, "scan_film_poster")
		}
		posters = append(posters, p)
	}

	return posters, nil
}

func (repository *PostgresRepository) listSources(context context.Context, filmID string) ([]*Source, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`,
		schema.CoreFilmSource.FilmID, schema.CoreFilmSource.SourceType, schema.CoreFilmSource.LanguageCode,
		schema.CoreFilmSource.URL, schema.CoreFilmSource.IsPrimary,
		schema.CoreFilmSource.Table, schema.CoreFilmSource.FilmID,
		schema.CoreFilmSource.SourceType, schema.CoreFilmSource.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, filmID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_film_sources")
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		s := &Source{}
		if err := rows.Scan(&s.FilmID, &s.SourceType, &s.LanguageCode, &s.URL, &s.IsPrimary); err != nil {
			return nil, dberr.Wrap(err, "scan_film_source")
		}
		sources = append(sources, s)
	}

	return sources, nil
}

func (repository *PostgresRepository) ListFilms(context context.Context, limit, offset int) ([]*Summary, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreFilm.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_films")
	}

	query := fmt.Sprintf(`
		SELECT f.%s, t.%s, f.%s, p.%s
		FROM %s f
		JOIN %s t ON t.%s = f.%s AND t.%s = 'title' AND t.%s
		LEFT JOIN LATERAL (
			SELECT %s FROM %s
			WHERE %s = f.%s
			ORDER BY %s DESC, %s DESC
			LIMIT 1
		) p ON true
		ORDER BY f.%s DESC, t.%s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CoreFilm.ID, schema.CoreFilmTitle.Content, schema.CoreFilm.Year, schema.CoreFilmPoster.URL,
		schema.CoreFilm.Table,
		schema.CoreFilmTitle.Table, schema.CoreFilmTitle.FilmID, schema.CoreFilm.ID,
		schema.CoreFilmTitle.Kind, schema.CoreFilmTitle.IsDefault,
		schema.CoreFilmPoster.URL, schema.CoreFilmPoster.Table,
		schema.CoreFilmPoster.FilmID, schema.CoreFilm.ID,
		schema.CoreFilmPoster.IsPrimary, schema.CoreFilmPoster.Width,
		schema.CoreFilm.Year, schema.CoreFilmTitle.Content,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	var films []*Summary
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Year, &s.PosterURL); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_film_summary")
		}
		films = append(films, s)
	}

	return films, total, nil
}

func (repository *PostgresRepository) FindByIMDBID(context context.Context, imdbID string) (*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		filmColumns(), schema.CoreFilm.Table, schema.CoreFilm.IMDBID,
	)

	f, err := scanFilm(repository.db.QueryRow(context, query, imdbID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_film_by_imdbid")
	}
	return f, nil
}

// FindByDefaultTitle matches on the exact default-language title together
// with the release year, so remakes sharing a title stay separate records.
func (repository *PostgresRepository) FindByDefaultTitle(context context.Context, title string, year int) (*Film, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		JOIN %s t ON t.%s = f.%s
		WHERE t.%s = 'title' AND t.%s AND t.%s = $1 AND f.%s = $2
		LIMIT 1
	`,
		prefixColumns("f", filmColumns()),
		schema.CoreFilm.Table,
		schema.CoreFilmTitle.Table, schema.CoreFilmTitle.FilmID, schema.CoreFilm.ID,
		schema.CoreFilmTitle.Kind, schema.CoreFilmTitle.IsDefault,
		schema.CoreFilmTitle.Content, schema.CoreFilm.Year,
	)

	f, err := scanFilm(repository.db.QueryRow(context, query, title, year))
	if err != nil {
		return nil, dberr.Wrap(err, "find_film_by_title")
	}
	return f, nil
}

func (repository *PostgresRepository) CreateFilm(context context.Context, f *Film) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CoreFilm.Table, schema.CoreFilm.ID, schema.CoreFilm.TMDBID, schema.CoreFilm.IMDBID,
		schema.CoreFilm.OriginLanguage, schema.CoreFilm.Year,
		schema.CoreFilm.CreatedAt, schema.CoreFilm.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, f.ID, f.TMDBID, f.IMDBID, f.OriginLanguage, f.Year).
		Scan(&f.CreatedAt, &f.UpdatedAt)
	return dberr.Wrap(err, "create_film")
}

// BackfillFilm fills identifier and attribute columns that are still empty.
// COALESCE keeps populated identifiers untouched, which is what makes the
// write-once invariant hold across repeated runs. A unique violation here
// means another record already owns the identifier; callers detect that via
// dberr.IsUniqueViolation and skip the backfill.
func (repository *PostgresRepository) BackfillFilm(context context.Context, f *Film) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = COALESCE(%s, $2),
			%s = COALESCE(%s, $3),
			%s = CASE WHEN %s = '' THEN $4 ELSE %s END,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s
	`,
		schema.CoreFilm.Table,
		schema.CoreFilm.TMDBID, schema.CoreFilm.TMDBID,
		schema.CoreFilm.IMDBID, schema.CoreFilm.IMDBID,
		schema.CoreFilm.OriginLanguage, schema.CoreFilm.OriginLanguage, schema.CoreFilm.OriginLanguage,
		schema.CoreFilm.UpdatedAt,
		schema.CoreFilm.ID,
		schema.CoreFilm.TMDBID, schema.CoreFilm.IMDBID, schema.CoreFilm.OriginLanguage, schema.CoreFilm.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, f.ID, f.TMDBID, f.IMDBID, f.OriginLanguage).
		Scan(&f.TMDBID, &f.IMDBID, &f.OriginLanguage, &f.UpdatedAt)
	return dberr.Wrap(err, "backfill_film")
}

func (repository *PostgresRepository) UpsertTitle(context context.Context, t *Title) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
	`,
		schema.CoreFilmTitle.Table, schema.CoreFilmTitle.FilmID, schema.CoreFilmTitle.Kind,
		schema.CoreFilmTitle.LanguageCode, schema.CoreFilmTitle.Content, schema.CoreFilmTitle.IsDefault,
		schema.CoreFilmTitle.FilmID, schema.CoreFilmTitle.Kind, schema.CoreFilmTitle.LanguageCode,
		schema.CoreFilmTitle.Content, schema.CoreFilmTitle.Content,
		schema.CoreFilmTitle.IsDefault, schema.CoreFilmTitle.IsDefault,
	)

	_, err := repository.db.Exec(context, query, t.FilmID, t.Kind, t.LanguageCode, t.Content, t.IsDefault)
	return dberr.Wrap(err, "upsert_film_title")
}

// AddPosters appends artwork rows in a single batched round trip. The
// composite natural key absorbs reruns: an already-known poster resolves to
// DO NOTHING instead of a duplicate row.
func (repository *PostgresRepository) AddPosters(context context.Context, posters []*Poster) error {
	if len(posters) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s, %s, %s, %s, %s) DO NOTHING
	`,
		schema.CoreFilmPoster.Table, schema.CoreFilmPoster.ID, schema.CoreFilmPoster.FilmID,
		schema.CoreFilmPoster.URL, schema.CoreFilmPoster.Width, schema.CoreFilmPoster.Height,
		schema.CoreFilmPoster.LanguageCode, schema.CoreFilmPoster.CountryCode, schema.CoreFilmPoster.IsPrimary,
		schema.CoreFilmPoster.FilmID, schema.CoreFilmPoster.Width, schema.CoreFilmPoster.Height,
		schema.CoreFilmPoster.LanguageCode, schema.CoreFilmPoster.CountryCode,
	)

	batch := &pgx.Batch{}
	for _, p := range posters {
		batch.Queue(query, p.ID, p.FilmID, p.URL, p.Width, p.Height, p.LanguageCode, p.CountryCode, p.IsPrimary)
	}

	result := repository.db.SendBatch(context, batch)
	if err := result.Close(); err != nil {
		return dberr.Wrap(err, "add_film_posters")
	}

	return nil
}

func (repository *PostgresRepository) UpsertSource(context context.Context, s *Source) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
	`,
		schema.CoreFilmSource.Table, schema.CoreFilmSource.FilmID, schema.CoreFilmSource.SourceType,
		schema.CoreFilmSource.LanguageCode, schema.CoreFilmSource.URL, schema.CoreFilmSource.IsPrimary,
		schema.CoreFilmSource.FilmID, schema.CoreFilmSource.SourceType, schema.CoreFilmSource.LanguageCode,
		schema.CoreFilmSource.URL, schema.CoreFilmSource.URL,
		schema.CoreFilmSource.IsPrimary, schema.CoreFilmSource.IsPrimary,
		schema.CoreFilmSource.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query, s.FilmID, s.SourceType, s.LanguageCode, s.URL, s.IsPrimary)
	return dberr.Wrap(err, "upsert_film_source")
}

// Copyright (c) 2026 Palmares. All rights reserved.

package award

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) GetOrganizationBySlug(context context.Context, slug string) (*Organization, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.AwardOrganization.ID, schema.AwardOrganization.Name, schema.AwardOrganization.Slug,
		schema.AwardOrganization.FoundingYear, schema.AwardOrganization.PageSlug,
		schema.AwardOrganization.Table, schema.AwardOrganization.Slug,
	)
	o := &Organization{}

	err := repository.db.QueryRow(context, query, slug).Scan(
		&o.ID, &o.Name, &o.Slug, &o.FoundingYear, &o.PageSlug,
	)

	return o, dberr.Wrap(err, "get_organization")
}

func (repository *PostgresRepository) ListCategories(context context.Context, organizationID string) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.AwardCategory.ID, schema.AwardCategory.OrganizationID,
		schema.AwardCategory.Name, schema.AwardCategory.Slug,
		schema.AwardCategory.Table, schema.AwardCategory.OrganizationID, schema.AwardCategory.Slug,
	)

	rows, err := repository.db.Query(context, query, organizationID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

// UpsertCeremony creates the ceremony row for (organization, year) or, when
// it already exists, refreshes the edition ordinal and returns the existing
// identifier into c.ID.
func (repository *PostgresRepository) UpsertCeremony(context context.Context, c *Ceremony) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s
	`,
		schema.AwardCeremony.Table, schema.AwardCeremony.ID, schema.AwardCeremony.OrganizationID,
		schema.AwardCeremony.Year, schema.AwardCeremony.Edition,
		schema.AwardCeremony.OrganizationID, schema.AwardCeremony.Year,
		schema.AwardCeremony.Edition, schema.AwardCeremony.Edition,
		schema.AwardCeremony.ID, schema.AwardCeremony.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.OrganizationID, c.Year, c.Edition).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, "upsert_ceremony")
}

// UpsertNomination writes a nomination fact keyed by (film, ceremony,
// category). On conflict only the outcome fields move: the winner flag and
// special mention are overwritten, attribution is backfilled when absent.
func (repository *PostgresRepository) UpsertNomination(context context.Context, n *Nomination) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = COALESCE(%s.%s, EXCLUDED.%s),
			%s = NOW()
	`,
		schema.AwardNomination.Table, schema.AwardNomination.FilmID, schema.AwardNomination.CeremonyID,
		schema.AwardNomination.CategoryID, schema.AwardNomination.IsWinner,
		schema.AwardNomination.SpecialMention, schema.AwardNomination.Attribution,
		schema.AwardNomination.FilmID, schema.AwardNomination.CeremonyID, schema.AwardNomination.CategoryID,
		schema.AwardNomination.IsWinner, schema.AwardNomination.IsWinner,
		schema.AwardNomination.SpecialMention, schema.AwardNomination.SpecialMention,
		schema.AwardNomination.Attribution, schema.AwardNomination.Table, schema.AwardNomination.Attribution, schema.AwardNomination.Attribution,
		schema.AwardNomination.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query,
		n.FilmID, n.CeremonyID, n.CategoryID, n.IsWinner, n.SpecialMention, n.Attribution,
	)
	return dberr.Wrap(err, "upsert_nomination")
}

func (repository *PostgresRepository) ListWinners(context context.Context, organizationID string) ([]*Winner, error) {
	query := fmt.Sprintf(`
		SELECT n.%s, c.%s, t.%s
		FROM %s n
		JOIN %s c ON c.%s = n.%s
		JOIN %s t ON t.%s = n.%s AND t.%s = 'title' AND t.%s
		WHERE c.%s = $1 AND n.%s
		ORDER BY c.%s DESC
	`,
		schema.AwardNomination.FilmID, schema.AwardCeremony.Year, schema.CoreFilmTitle.Content,
		schema.AwardNomination.Table,
		schema.AwardCeremony.Table, schema.AwardCeremony.ID, schema.AwardNomination.CeremonyID,
		schema.CoreFilmTitle.Table, schema.CoreFilmTitle.FilmID, schema.AwardNomination.FilmID,
		schema.CoreFilmTitle.Kind, schema.CoreFilmTitle.IsDefault,
		schema.AwardCeremony.OrganizationID, schema.AwardNomination.IsWinner,
		schema.AwardCeremony.Year,
	)

	rows, err := repository.db.Query(context, query, organizationID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_winners")
	}
	defer rows.Close()

	var winners []*Winner
	for rows.Next() {
		w := &Winner{}
		if err := rows.Scan(&w.FilmID, &w.Year, &w.Title); err != nil {
			return nil, dberr.Wrap(err, "scan_winner")
		}
		winners = append(winners, w)
	}

	return winners, nil
}

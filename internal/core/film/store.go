// Copyright (c) 2026 Palmares. All rights reserved.

package film

import "context"

type Repository interface {
	GetFilm(context context.Context, id string) (*Detail, error)
	ListFilms(context context.Context, limit, offset int) ([]*Summary, int, error)

	// Matching lookups used by reconciliation, in priority order.
	FindByIMDBID(context context.Context, imdbID string) (*Film, error)
	FindByDefaultTitle(context context.Context, title string, year int) (*Film, error)

	CreateFilm(context context.Context, f *Film) error

	// BackfillFilm fills only columns that are currently null or empty;
	// populated identifiers are never overwritten.
	BackfillFilm(context context.Context, f *Film) error

	UpsertTitle(context context.Context, t *Title) error
	AddPosters(context context.Context, posters []*Poster) error
	UpsertSource(context context.Context, s *Source) error
}

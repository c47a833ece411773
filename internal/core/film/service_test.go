// Copyright (c) 2026 Palmares. All rights reserved.

package film_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/core/film"
)

// fakeRepository stubs the detail read; the embedded interface covers the
// methods this test never touches.
type fakeRepository struct {
	film.Repository
	detail *film.Detail
}

func (f *fakeRepository) GetFilm(_ context.Context, _ string) (*film.Detail, error) {
	return f.detail, nil
}

/*
TestDisplayTitle verifies the locale fallback law: an exact locale match
wins, otherwise the default-language title is returned.
*/
func TestDisplayTitle(t *testing.T) {
	titles := []*film.Title{
		{Kind: film.KindTitle, LanguageCode: "en-US", Content: "The Leopard", IsDefault: true},
		{Kind: film.KindTitle, LanguageCode: "it-IT", Content: "Il Gattopardo"},
		{Kind: film.KindDescription, LanguageCode: "fr-FR", Content: "Un synopsis, pas un titre"},
	}

	// 1. Exact locale match
	assert.Equal(t, "Il Gattopardo", film.DisplayTitle(titles, "it-IT"))

	// 2. Missing locale falls back to the default title
	assert.Equal(t, "The Leopard", film.DisplayTitle(titles, "de-DE"))

	// 3. Descriptions never satisfy a title lookup
	assert.Equal(t, "The Leopard", film.DisplayTitle(titles, "fr-FR"))
}

/*
TestService_GetFilmSelectsDisplayTitle verifies the detail read applies the
locale fallback law, so the selected title ships in the response envelope
instead of leaving clients to re-derive it.
*/
func TestService_GetFilmSelectsDisplayTitle(t *testing.T) {
	repository := &fakeRepository{detail: &film.Detail{
		Film: &film.Film{ID: "film-1", Year: 1963},
		Titles: []*film.Title{
			{Kind: film.KindTitle, LanguageCode: "en-US", Content: "The Leopard", IsDefault: true},
			{Kind: film.KindTitle, LanguageCode: "fr-FR", Content: "Le Guépard"},
		},
	}}
	service := film.NewService(repository, slog.New(slog.DiscardHandler))

	// 1. Requested locale wins
	detail, err := service.GetFilm(context.Background(), "film-1", "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "Le Guépard", detail.DisplayTitle)

	// 2. Empty locale yields the default title
	detail, err = service.GetFilm(context.Background(), "film-1", "")
	require.NoError(t, err)
	assert.Equal(t, "The Leopard", detail.DisplayTitle)
}

/*
TestDisplayTitle_NoDefault verifies the degenerate case of a record without
any default title.
*/
func TestDisplayTitle_NoDefault(t *testing.T) {
	titles := []*film.Title{
		{Kind: film.KindTitle, LanguageCode: "ja-JP", Content: "羅生門"},
	}

	assert.Equal(t, "羅生門", film.DisplayTitle(titles, "ja-JP"))
	assert.Empty(t, film.DisplayTitle(titles, "en-US"))
}

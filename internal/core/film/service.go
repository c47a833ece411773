// Copyright (c) 2026 Palmares. All rights reserved.

package film

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListFilms(context context.Context, limit, offset int) ([]*Summary, int, error) {
	return service.repo.ListFilms(context, limit, offset)
}

// GetFilm loads a film's full record and selects the display title for the
// requested locale. An empty locale yields the default-language title.
func (service *Service) GetFilm(context context.Context, id, languageCode string) (*Detail, error) {
	detail, err := service.repo.GetFilm(context, id)
	if err != nil {
		return nil, err
	}

	detail.DisplayTitle = DisplayTitle(detail.Titles, languageCode)
	return detail, nil
}

// DisplayTitle picks the title for a requested locale, falling back to the
// default-language title when that locale is absent.
func DisplayTitle(titles []*Title, languageCode string) string {
	var fallback string

	for _, title := range titles {
		if title.Kind != KindTitle {
			continue
		}
		if title.LanguageCode == languageCode {
			return title.Content
		}
		if title.IsDefault {
			fallback = title.Content
		}
	}

	return fallback
}

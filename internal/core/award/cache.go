// Copyright (c) 2026 Palmares. All rights reserved.

package award

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/openscreen/palmares/pkg/uuidv7"
)

/*
Cache is the process-scoped reference lookup used by the ingestion pipeline.

It lazily loads the organization row and its category identifiers on first
access, and maintains a year-to-ceremony map that grows as new years are
encountered. The cache is advisory: a miss never concludes absence, it falls
through to an upsert-or-fetch against the repository, so a stale cache only
costs an extra round trip, never a duplicate row.

All methods are safe for concurrent use.
*/
type Cache struct {
	repo    Repository
	logger  *slog.Logger
	orgSlug string

	mu         sync.Mutex
	org        *Organization
	categories map[string]string // category slug -> id
	ceremonies map[int]string    // year -> ceremony id
}

func NewCache(repo Repository, logger *slog.Logger, organizationSlug string) *Cache {
	return &Cache{
		repo:    repo,
		logger:  logger,
		orgSlug: organizationSlug,
	}
}

// Organization returns the cached organization, loading it on first call.
func (cache *Cache) Organization(context context.Context) (*Organization, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if err := cache.ensureLoaded(context); err != nil {
		return nil, err
	}
	return cache.org, nil
}

// CategoryID resolves a category slug to its identifier.
func (cache *Cache) CategoryID(context context.Context, slug string) (string, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if err := cache.ensureLoaded(context); err != nil {
		return "", err
	}

	id, ok := cache.categories[slug]
	if !ok {
		return "", fmt.Errorf("award: unknown category %q for organization %q", slug, cache.orgSlug)
	}
	return id, nil
}

// CeremonyID returns the ceremony identifier for a year, creating the
// ceremony row when the year has not been seen before. The upsert path also
// heals a stale map: if another run created the row first, the existing
// identifier is adopted.
func (cache *Cache) CeremonyID(context context.Context, year int) (string, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if err := cache.ensureLoaded(context); err != nil {
		return "", err
	}

	if id, ok := cache.ceremonies[year]; ok {
		return id, nil
	}

	ceremony := &Ceremony{
		ID:             uuidv7.New(),
		OrganizationID: cache.org.ID,
		Year:           year,
		Edition:        cache.org.Edition(year),
	}
	if err := cache.repo.UpsertCeremony(context, ceremony); err != nil {
		return "", err
	}

	cache.ceremonies[year] = ceremony.ID
	cache.logger.Info("ceremony_registered",
		slog.Int("year", year),
		slog.Int("edition", ceremony.Edition),
	)
	return ceremony.ID, nil
}

// Invalidate drops all cached identifiers; the next access reloads them.
func (cache *Cache) Invalidate() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.org = nil
	cache.categories = nil
	cache.ceremonies = nil
}

// ensureLoaded populates the organization and category maps. Callers must
// hold cache.mu.
func (cache *Cache) ensureLoaded(context context.Context) error {
	if cache.org != nil {
		return nil
	}

	org, err := cache.repo.GetOrganizationBySlug(context, cache.orgSlug)
	if err != nil {
		return fmt.Errorf("award: load organization %q: %w", cache.orgSlug, err)
	}

	categories, err := cache.repo.ListCategories(context, org.ID)
	if err != nil {
		return fmt.Errorf("award: load categories: %w", err)
	}

	cache.org = org
	cache.categories = make(map[string]string, len(categories))
	for _, category := range categories {
		cache.categories[category.Slug] = category.ID
	}
	cache.ceremonies = make(map[int]string)

	return nil
}

// Copyright (c) 2026 Palmares. All rights reserved.

package award_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/core/award"
)

// fakeRepository records call counts so tests can observe lazy loading.
type fakeRepository struct {
	orgCalls      int
	ceremonyCalls int

	// existingCeremonies simulates rows created by an earlier run: the
	// upsert adopts their identifiers instead of the caller's.
	existingCeremonies map[int]string
}

func (f *fakeRepository) GetOrganizationBySlug(_ context.Context, slug string) (*award.Organization, error) {
	f.orgCalls++
	return &award.Organization{
		ID:           "org-1",
		Name:         "Cannes Film Festival",
		Slug:         slug,
		FoundingYear: 1946,
		PageSlug:     "Cannes_Film_Festival",
	}, nil
}

func (f *fakeRepository) ListCategories(_ context.Context, organizationID string) ([]*award.Category, error) {
	return []*award.Category{
		{ID: "cat-palme", OrganizationID: organizationID, Name: "Palme d'Or", Slug: "palme-dor"},
		{ID: "cat-grand", OrganizationID: organizationID, Name: "Grand Prix", Slug: "grand-prix"},
	}, nil
}

func (f *fakeRepository) UpsertCeremony(_ context.Context, c *award.Ceremony) error {
	f.ceremonyCalls++
	if id, ok := f.existingCeremonies[c.Year]; ok {
		c.ID = id
	}
	return nil
}

func (f *fakeRepository) UpsertNomination(_ context.Context, _ *award.Nomination) error {
	return nil
}

func (f *fakeRepository) ListWinners(_ context.Context, _ string) ([]*award.Winner, error) {
	return nil, nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

/*
TestCache_LazyLoad verifies the organization row is fetched once, on first
access, and reused afterwards.
*/
func TestCache_LazyLoad(t *testing.T) {
	repo := &fakeRepository{}
	cache := award.NewCache(repo, discard(), "cannes-film-festival")

	// 1. Nothing is loaded until the first lookup
	assert.Equal(t, 0, repo.orgCalls)

	org, err := cache.Organization(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-1", org.ID)

	// 2. Repeated lookups hit the cached copy
	_, err = cache.CategoryID(context.Background(), "palme-dor")
	require.NoError(t, err)
	_, err = cache.Organization(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.orgCalls)
}

/*
TestCache_CategoryID verifies slug resolution and the unknown-slug error.
*/
func TestCache_CategoryID(t *testing.T) {
	cache := award.NewCache(&fakeRepository{}, discard(), "cannes-film-festival")

	id, err := cache.CategoryID(context.Background(), "grand-prix")
	require.NoError(t, err)
	assert.Equal(t, "cat-grand", id)

	_, err = cache.CategoryID(context.Background(), "best-screenplay")
	assert.Error(t, err)
}

/*
TestCache_CeremonyID verifies a miss creates the ceremony exactly once and
that the edition ordinal is derived from the founding year.
*/
func TestCache_CeremonyID(t *testing.T) {
	repo := &fakeRepository{}
	cache := award.NewCache(repo, discard(), "cannes-film-festival")

	first, err := cache.CeremonyID(context.Background(), 1972)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.Equal(t, 1, repo.ceremonyCalls)

	// 1. A second lookup of the same year never touches the store
	second, err := cache.CeremonyID(context.Background(), 1972)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.ceremonyCalls)

	// 2. A new year triggers a new upsert
	_, err = cache.CeremonyID(context.Background(), 1973)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.ceremonyCalls)
}

/*
TestCache_StaleMissAdoptsExistingRow verifies the upsert-through behavior: a
ceremony created by a concurrent run is adopted rather than duplicated.
*/
func TestCache_StaleMissAdoptsExistingRow(t *testing.T) {
	repo := &fakeRepository{existingCeremonies: map[int]string{1946: "ceremony-original"}}
	cache := award.NewCache(repo, discard(), "cannes-film-festival")

	id, err := cache.CeremonyID(context.Background(), 1946)
	require.NoError(t, err)
	assert.Equal(t, "ceremony-original", id)
}

/*
TestCache_Invalidate verifies that invalidation forces a reload on the next
access.
*/
func TestCache_Invalidate(t *testing.T) {
	repo := &fakeRepository{}
	cache := award.NewCache(repo, discard(), "cannes-film-festival")

	_, err := cache.Organization(context.Background())
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Organization(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.orgCalls)
}

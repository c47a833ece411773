// Copyright (c) 2026 Palmares. All rights reserved.

package feature_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/core/feature"
)

type fakeAwards struct {
	winners []*award.Winner
	calls   int
}

func (f *fakeAwards) GetOrganizationBySlug(_ context.Context, slug string) (*award.Organization, error) {
	return &award.Organization{ID: "org-1", Slug: slug, FoundingYear: 1946}, nil
}

func (f *fakeAwards) ListCategories(_ context.Context, organizationID string) ([]*award.Category, error) {
	return nil, nil
}

func (f *fakeAwards) UpsertCeremony(_ context.Context, _ *award.Ceremony) error   { return nil }
func (f *fakeAwards) UpsertNomination(_ context.Context, _ *award.Nomination) error { return nil }

func (f *fakeAwards) ListWinners(_ context.Context, _ string) ([]*award.Winner, error) {
	f.calls++
	return f.winners, nil
}

func newService(winners []*award.Winner) (*feature.Service, *fakeAwards) {
	awards := &fakeAwards{winners: winners}
	logger := slog.New(slog.DiscardHandler)
	cache := award.NewCache(awards, logger, "cannes-film-festival")
	return feature.NewService(awards, cache, nil, logger), awards
}

/*
TestBucketFor verifies each scope's bucket format.
*/
func TestBucketFor(t *testing.T) {
	instant := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-31", feature.BucketFor(feature.ScopeDay, instant))
	assert.Equal(t, "2026-W36", feature.BucketFor(feature.ScopeWeek, instant))
	assert.Equal(t, "2026-08", feature.BucketFor(feature.ScopeMonth, instant))
}

/*
TestPickIndex verifies determinism and bucket sensitivity of the seeded
selection.
*/
func TestPickIndex(t *testing.T) {
	// 1. Same inputs, same index
	first := feature.PickIndex(feature.ScopeDay, "2026-08-31", 77)
	second := feature.PickIndex(feature.ScopeDay, "2026-08-31", 77)
	assert.Equal(t, first, second)

	// 2. Always within range
	for day := 1; day <= 28; day++ {
		bucket := time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		index := feature.PickIndex(feature.ScopeDay, bucket, 5)
		assert.GreaterOrEqual(t, index, 0)
		assert.Less(t, index, 5)
	}
}

/*
TestFeatured verifies the pick is stable within a bucket and changes with
the scope seed.
*/
func TestFeatured(t *testing.T) {
	winners := []*award.Winner{
		{FilmID: "f1", Year: 1972, Title: "The Mattei Affair"},
		{FilmID: "f2", Year: 1976, Title: "Taxi Driver"},
		{FilmID: "f3", Year: 1979, Title: "Apocalypse Now"},
	}
	service, _ := newService(winners)
	instant := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)

	first, err := service.Featured(context.Background(), feature.ScopeDay, instant)
	require.NoError(t, err)
	require.NotNil(t, first.Winner)

	// Same bucket, same pick, regardless of the hour
	later, err := service.Featured(context.Background(), feature.ScopeDay, instant.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.Winner.FilmID, later.Winner.FilmID)
	assert.Equal(t, first.Bucket, later.Bucket)
}

/*
TestFeatured_NoWinners verifies the empty-catalogue contract.
*/
func TestFeatured_NoWinners(t *testing.T) {
	service, _ := newService(nil)

	_, err := service.Featured(context.Background(), feature.ScopeWeek, time.Now())
	assert.Error(t, err)
}

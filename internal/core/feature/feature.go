// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package feature picks a deterministic "featured winner" per time bucket.

The pick is a seeded-hash selection over the winning films: every instance
serving the same scope and bucket computes the same index, so the feature
needs no coordination. A short redis cache only spares the store the
winners query, never changes the answer.
*/
package feature

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/platform/apperr"
	"github.com/openscreen/palmares/internal/platform/constants"
)

// Scope is the rotation period of the featured pick.
type Scope string

const (
	ScopeDay   Scope = "day"
	ScopeWeek  Scope = "week"
	ScopeMonth Scope = "month"
)

// Pick is the selected winner together with the bucket that produced it.
type Pick struct {
	Scope  Scope         `json:"scope"`
	Bucket string        `json:"bucket"`
	Winner *award.Winner `json:"winner"`
}

type Service struct {
	awards award.Repository
	cache  *award.Cache
	redis  *redis.Client
	logger *slog.Logger
}

func NewService(awards award.Repository, cache *award.Cache, redisClient *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		awards: awards,
		cache:  cache,
		redis:  redisClient,
		logger: logger,
	}
}

// Featured returns the pick for a scope at the given instant.
func (service *Service) Featured(context context.Context, scope Scope, now time.Time) (*Pick, error) {
	bucket := BucketFor(scope, now)
	cacheKey := constants.RedisPrefixFeatured + string(scope) + ":" + bucket

	if cached := service.fromCache(context, cacheKey); cached != nil {
		return cached, nil
	}

	organization, err := service.cache.Organization(context)
	if err != nil {
		return nil, err
	}

	winners, err := service.awards.ListWinners(context, organization.ID)
	if err != nil {
		return nil, err
	}
	if len(winners) == 0 {
		return nil, apperr.NotFound("no winners available to feature")
	}

	pick := &Pick{
		Scope:  scope,
		Bucket: bucket,
		Winner: winners[PickIndex(scope, bucket, len(winners))],
	}

	service.toCache(context, cacheKey, pick)
	return pick, nil
}

func (service *Service) fromCache(context context.Context, key string) *Pick {
	if service.redis == nil {
		return nil
	}

	payload, err := service.redis.Get(context, key).Bytes()
	if err != nil {
		return nil
	}

	pick := &Pick{}
	if err := json.Unmarshal(payload, pick); err != nil {
		return nil
	}
	return pick
}

func (service *Service) toCache(context context.Context, key string, pick *Pick) {
	if service.redis == nil {
		return
	}

	payload, err := json.Marshal(pick)
	if err != nil {
		return
	}
	if err := service.redis.Set(context, key, payload, constants.FeaturedPickTTL).Err(); err != nil {
		service.logger.Warn("featured_cache_write_failed", slog.String("error", err.Error()))
	}
}

// BucketFor formats the time bucket a pick is stable within.
func BucketFor(scope Scope, now time.Time) string {
	switch scope {
	case ScopeWeek:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case ScopeMonth:
		return now.Format("2006-01")
	default:
		return now.Format("2006-01-02")
	}
}

// PickIndex derives the deterministic selection index for a bucket via a
// seeded digest over (scope, bucket).
func PickIndex(scope Scope, bucket string, count int) int {
	digest := blake2b.Sum256([]byte(string(scope) + "|" + bucket))
	return int(binary.BigEndian.Uint64(digest[:8]) % uint64(count))
}

// Copyright (c) 2026 Palmares. All rights reserved.

package ingest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/openscreen/palmares/internal/platform/apperr"
	"github.com/openscreen/palmares/internal/platform/constants"
	requestutil "github.com/openscreen/palmares/internal/platform/request"
	"github.com/openscreen/palmares/internal/platform/respond"
	"github.com/openscreen/palmares/internal/platform/validate"
)

type Handler struct {
	runner  *Runner
	redis   *redis.Client
	orgSlug string
}

func NewHandler(runner *Runner, redisClient *redis.Client, organizationSlug string) *Handler {
	return &Handler{
		runner:  runner,
		redis:   redisClient,
		orgSlug: organizationSlug,
	}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/run", handler.runPipeline)
}

// runPipeline triggers a synchronous ingestion run. A per-organization lock
// in redis rejects concurrent runs with 409; the lock's TTL releases it
// even if the process dies mid-run.
func (handler *Handler) runPipeline(writer http.ResponseWriter, request *http.Request) {
	options, err := parseOptions(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lockKey := constants.RedisPrefixRunLock + handler.orgSlug
	acquired, err := handler.redis.SetNX(request.Context(), lockKey, "1", constants.RunLockTTL).Result()
	if err != nil {
		respond.Error(writer, request, apperr.ServiceUnavailable("Run lock unavailable"))
		return
	}
	if !acquired {
		respond.Error(writer, request, apperr.Conflict("an ingestion run is already in progress"))
		return
	}

	// The server's write deadline is sized for catalogue reads; a paced
	// pipeline run legitimately takes minutes, so lift it for this response.
	if err := http.NewResponseController(writer).SetWriteDeadline(time.Time{}); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	runCtx, cancel := context.WithTimeout(request.Context(), constants.IngestTriggerTimeout)
	defer cancel()
	defer handler.redis.Del(context.WithoutCancel(runCtx), lockKey)

	report, err := handler.runner.Run(runCtx, options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

func parseOptions(request *http.Request) (Options, error) {
	options := Options{}
	validator := &validate.Validator{}

	if raw := requestutil.Query(request, "year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			validator.Fail("year", "must be an integer")
		} else {
			validator.IntRange("year", year, 1880, 2100)
			options.Year = year
		}
	}

	if raw := requestutil.Query(request, "winners_only"); raw != "" {
		winnersOnly, err := strconv.ParseBool(raw)
		if err != nil {
			validator.Fail("winners_only", "must be a boolean")
		} else {
			options.WinnersOnly = winnersOnly
		}
	}

	if err := validator.Err(); err != nil {
		return Options{}, err
	}
	return options, nil
}

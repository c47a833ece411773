// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package ingest orchestrates the extraction-and-reconciliation pipeline.

The unit of work is one ceremony edition (one organization, one year). The
runner iterates editions newest-first, fetches and extracts each page, and
hands every entry through the metadata resolver to the reconciliation
engine. Failures are isolated per unit: a malformed or missing page costs
that edition, never the run. Remote traffic is paced by a shared rate
limiter, and cancellation is honored between units and between entries.
*/
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/ingest/extract"
	"github.com/openscreen/palmares/internal/ingest/reconcile"
	"github.com/openscreen/palmares/internal/ingest/wiki"
	"github.com/openscreen/palmares/internal/metadata/tmdb"
	"github.com/openscreen/palmares/internal/platform/constants"
	"github.com/openscreen/palmares/internal/platform/metrics"
	"github.com/openscreen/palmares/pkg/titlenorm"
)

// Category slugs the pipeline writes under. Entry tables record the films
// in competition; the honor pass records the top award.
const (
	categoryCompetition = "in-competition"
	categoryTopHonor    = "palme-dor"
)

// topHonorName is the award name hunted by the honor pass.
const topHonorName = "Palme d'Or"

// Options narrow a run.
type Options struct {
	// Year limits the run to a single edition; zero means every edition
	// from the current year back to the founding year.
	Year int

	// WinnersOnly refreshes winner flags for already-known films without
	// creating records or calling the metadata service.
	WinnersOnly bool
}

// UnitError records one failed edition.
type UnitError struct {
	Year  int    `json:"year"`
	Cause string `json:"cause"`
}

// Report aggregates a finished run.
type Report struct {
	Units     int           `json:"units"`
	Processed int           `json:"processed"`
	Winners   int           `json:"winners"`
	Failures  []UnitError   `json:"failures"`
	Duration  time.Duration `json:"duration"`
}

type Runner struct {
	fetcher  *wiki.Fetcher
	resolver *tmdb.Resolver
	engine   *reconcile.Engine
	cache    *award.Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	limiter  *rate.Limiter
}

func NewRunner(
	fetcher *wiki.Fetcher,
	resolver *tmdb.Resolver,
	engine *reconcile.Engine,
	cache *award.Cache,
	m *metrics.Metrics,
	logger *slog.Logger,
	fetchDelay time.Duration,
) *Runner {
	if fetchDelay <= 0 {
		fetchDelay = constants.FetchDelay
	}
	return &Runner{
		fetcher:  fetcher,
		resolver: resolver,
		engine:   engine,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Every(fetchDelay), 1),
	}
}

// Run executes the pipeline for the selected editions. The returned report
// is valid even when the context is cancelled mid-run; the cancellation is
// surfaced as the error.
func (runner *Runner) Run(context context.Context, options Options) (*Report, error) {
	started := time.Now()
	report := &Report{}

	organization, err := runner.cache.Organization(context)
	if err != nil {
		return report, fmt.Errorf("ingest: %w", err)
	}

	years := runner.years(organization, options)
	runner.logger.Info("ingest_run_started",
		slog.String("organization", organization.Slug),
		slog.Int("units", len(years)),
		slog.Bool("winners_only", options.WinnersOnly),
	)

	for _, year := range years {
		// Cooperative cancellation between units
		if err := context.Err(); err != nil {
			report.Duration = time.Since(started)
			return report, err
		}

		processed, winners, err := runner.processUnit(context, organization, year, options.WinnersOnly)
		report.Units++
		report.Processed += processed
		report.Winners += winners

		if err != nil {
			// Per-unit failure boundary: record and move on
			runner.metrics.IncrementUnitFailure()
			runner.logger.Error("ingest_unit_failed",
				slog.String("organization", organization.Slug),
				slog.Int("year", year),
				slog.String("error", err.Error()),
			)
			report.Failures = append(report.Failures, UnitError{Year: year, Cause: err.Error()})
		}
	}

	report.Duration = time.Since(started)
	runner.metrics.ObserveRunDuration(report.Duration)
	runner.logger.Info("ingest_run_finished",
		slog.Int("units", report.Units),
		slog.Int("processed", report.Processed),
		slog.Int("winners", report.Winners),
		slog.Int("failures", len(report.Failures)),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

// years builds the edition list, newest first.
func (runner *Runner) years(organization *award.Organization, options Options) []int {
	if options.Year > 0 {
		return []int{options.Year}
	}

	current := time.Now().Year()
	var years []int
	for year := current; year >= organization.FoundingYear; year-- {
		years = append(years, year)
	}
	return years
}

// processUnit ingests one edition's page.
func (runner *Runner) processUnit(context context.Context, organization *award.Organization, year int, winnersOnly bool) (int, int, error) {
	if err := runner.limiter.Wait(context); err != nil {
		return 0, 0, err
	}

	document, err := runner.fetcher.FetchCeremonyPage(context, year, organization.PageSlug)
	if err != nil {
		return 0, 0, err
	}

	entries := extract.Extract(document.Root, document.URL)
	honorTitle := extract.FindHonor(document.Root, topHonorName)
	entries = extract.MergeHonor(entries, honorTitle, year)
	honorKey := titlenorm.Key(honorTitle)

	processed, winners := 0, 0
	for _, entry := range entries {
		if err := context.Err(); err != nil {
			return processed, winners, err
		}
		if entry.Year != year {
			// Defensive: a page occasionally references adjacent
			// editions; those belong to their own unit.
			continue
		}

		if winnersOnly {
			if !entry.IsWinner {
				continue
			}
			if err := runner.engine.RefreshWinner(context, entry, categoryCompetition); err != nil {
				runner.metrics.IncrementEntries("failed")
				runner.logger.Warn("entry_refresh_failed",
					slog.String("title", entry.Title),
					slog.Int("year", entry.Year),
					slog.String("error", err.Error()),
				)
				continue
			}
			winners++
			processed++
			runner.metrics.IncrementEntries("refreshed")
			continue
		}

		resolution, err := runner.resolve(context, entry)
		if err != nil {
			return processed, winners, err
		}

		if err := runner.engine.Apply(context, entry, resolution, categoryCompetition); err != nil {
			runner.metrics.IncrementEntries("failed")
			runner.logger.Warn("entry_apply_failed",
				slog.String("title", entry.Title),
				slog.Int("year", entry.Year),
				slog.String("error", err.Error()),
			)
			continue
		}

		// The top honor earns its dedicated nomination on top of the
		// competition entry.
		if honorKey != "" && titlenorm.Key(entry.Title) == honorKey {
			if err := runner.engine.Apply(context, entry, resolution, categoryTopHonor); err != nil {
				runner.logger.Warn("entry_apply_failed",
					slog.String("title", entry.Title),
					slog.Int("year", entry.Year),
					slog.String("error", err.Error()),
				)
			}
		}

		processed++
		if entry.IsWinner {
			winners++
		}
		runner.metrics.IncrementEntries("processed")
	}

	return processed, winners, nil
}

// resolve paces and executes one metadata lookup. Only cancellation is an
// error; an unavailable resolution is a valid outcome.
func (runner *Runner) resolve(context context.Context, entry extract.Entry) (*tmdb.Resolution, error) {
	if err := runner.limiter.Wait(context); err != nil {
		return nil, err
	}

	var resolution *tmdb.Resolution
	var err error

	// An extracted cross-reference identifier beats any title search.
	if entry.IMDBID != nil {
		resolution, err = runner.resolver.ResolveByIMDBID(context, *entry.IMDBID)
		if err != nil {
			return nil, err
		}
	}
	if resolution == nil {
		resolution, err = runner.resolver.Resolve(context, entry.Title, entry.Year)
		if err != nil {
			return nil, err
		}
	}

	if resolution == nil {
		runner.metrics.IncrementResolution("unavailable")
		runner.logger.Info("metadata_unresolved",
			slog.String("title", entry.Title),
			slog.Int("year", entry.Year),
		)
	} else {
		runner.metrics.IncrementResolution("resolved")
	}

	return resolution, nil
}

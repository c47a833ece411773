// Copyright (c) 2026 Palmares. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/openscreen/palmares/internal/core/award"
	"github.com/openscreen/palmares/internal/core/film"
	"github.com/openscreen/palmares/internal/ingest"
	"github.com/openscreen/palmares/internal/ingest/reconcile"
	"github.com/openscreen/palmares/internal/ingest/wiki"
	"github.com/openscreen/palmares/internal/metadata/tmdb"
	"github.com/openscreen/palmares/internal/platform/config"
	"github.com/openscreen/palmares/internal/platform/metrics"
	"github.com/openscreen/palmares/internal/platform/migration"
	pgstore "github.com/openscreen/palmares/internal/platform/postgres"
)

func newRunCommand() *cobra.Command {
	var year int
	var winnersOnly bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the pipeline for one edition or the full history",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := executeRun(cmd.Context(), ingest.Options{
				Year:        year,
				WinnersOnly: winnersOnly,
			})
			if report != nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			}
			return err
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Process a single ceremony year (0 means the full history)")
	cmd.Flags().BoolVar(&winnersOnly, "winners-only", false, "Refresh winner flags without creating films or calling the metadata service")

	return cmd
}

/*
executeRun wires the pipeline the way the API server does, minus the HTTP
surface and Redis: a shell invocation holds no run lock, the operator is
the lock.
*/
func executeRun(ctx context.Context, options ingest.Options) (*ingest.Report, error) {
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "palmares-ingest"))

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return nil, err
	}

	filmRepository := film.NewPostgresRepository(pool)
	awardRepository := award.NewPostgresRepository(pool)
	awardCache := award.NewCache(awardRepository, log, cfg.OrganizationSlug)

	appMetrics := metrics.New()
	metadataClient := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	resolver := tmdb.NewResolver(metadataClient, cfg.DefaultLocale, cfg.SecondaryLocale, log)
	fetcher := wiki.NewFetcher(cfg.WikiBaseURL)
	engine := reconcile.NewEngine(filmRepository, awardRepository, awardCache, appMetrics, log, cfg.DefaultLocale, cfg.SecondaryLocale)
	runner := ingest.NewRunner(fetcher, resolver, engine, awardCache, appMetrics, log, cfg.FetchDelay)

	return runner.Run(ctx, options)
}

func renderReport(report *ingest.Report) string {
	summary := renderTable(
		[]string{"Units", "Processed", "Winners", "Failures", "Duration"},
		[][]string{{
			strconv.Itoa(report.Units),
			strconv.Itoa(report.Processed),
			strconv.Itoa(report.Winners),
			strconv.Itoa(len(report.Failures)),
			report.Duration.Round(time.Millisecond).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	)
	if len(report.Failures) == 0 {
		return summary
	}

	rows := make([][]string, 0, len(report.Failures))
	for _, failure := range report.Failures {
		rows = append(rows, []string{strconv.Itoa(failure.Year), failure.Cause})
	}
	failures := renderTable(
		[]string{"Year", "Cause"},
		rows,
		[]columnAlignment{alignRight, alignLeft},
	)
	return summary + "\n" + failures
}

// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.

A missing required variable (most importantly the metadata-service API key)
aborts startup before any network activity is attempted.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Palmares service.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Movie-metadata service (TMDB-compatible REST API)
	TMDBAPIKey  string `env:"TMDB_API_KEY,required"`
	TMDBBaseURL string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`

	// DefaultLocale drives the primary details pass (identifiers, posters).
	DefaultLocale string `env:"TMDB_DEFAULT_LOCALE" envDefault:"en-US"`

	// SecondaryLocale drives the localized-title pass; a title identical to
	// the canonical one is discarded rather than stored as a translation.
	SecondaryLocale string `env:"TMDB_SECONDARY_LOCALE" envDefault:"fr-FR"`

	// OrganizationSlug selects the awarding body the pipeline serves. The
	// seed migrations provision the default.
	OrganizationSlug string `env:"ORGANIZATION_SLUG" envDefault:"cannes-film-festival"`

	// Reference site hosting the award pages (Wikipedia-convention markup).
	WikiBaseURL string `env:"WIKI_BASE_URL" envDefault:"https://en.wikipedia.org/wiki"`

	// FetchDelay overrides the pause between remote document fetches.
	FetchDelay time.Duration `env:"INGEST_FETCH_DELAY" envDefault:"1s"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins configured for this
// deployment, parsed from the comma-separated EXTRA_ORIGINS variable.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Ingestion Pacing: Delays and timeouts applied to remote fetches.
  - Cache Taxonomy: Redis key prefixes and TTLs.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "palmares-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// IngestTriggerTimeout is the deadline for a pipeline run triggered over
	// HTTP. A full back-catalogue crawl paced at one fetch per second takes
	// minutes, not seconds.
	IngestTriggerTimeout = 30 * time.Minute

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Ingestion Pacing

const (
	// FetchDelay is the fixed pause between consecutive remote document
	// fetches, respecting the reference site's rate limits.
	FetchDelay = 1 * time.Second

	// RemoteRequestTimeout bounds every single outbound HTTP call made by
	// the pipeline (reference pages and the metadata service alike).
	RemoteRequestTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore  = "core"
	SchemaAward = "award"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixFeatured caches the featured-film pick per scope bucket.
	RedisPrefixFeatured = "feature:pick:"

	// RedisPrefixRunLock guards against concurrent pipeline runs for the
	// same organization.
	RedisPrefixRunLock = "ingest:runlock:"
)

// # Cache TTLs

const (
	// FeaturedPickTTL bounds how long a featured pick is served from cache.
	// The pick is deterministic per bucket, so the TTL only trades freshness
	// against one extra database round-trip.
	FeaturedPickTTL = 1 * time.Hour

	// RunLockTTL is the safety expiry on the ingestion run lock, so a crashed
	// run never wedges the trigger forever.
	RunLockTTL = 45 * time.Minute
)

// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Royalty: The unit threshold that triggers a settlement.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "partitura-api"
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

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
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

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim expected in access tokens.
	AuthIssuer = "partitura.app"

	// HeaderXRequestID is the correlation header echoed on every response.
	HeaderXRequestID = "X-Request-ID"
)

// # HTTP Headers

const (
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData   = "data"
	FieldMeta   = "meta"
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
)

// # Royalty

const (
	// RoyaltyThresholdUnits is the cumulative sales step that triggers one
	// settlement milestone per composer (the "1,000-unit multiple").
	RoyaltyThresholdUnits = 1000
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaPricing = "pricing"
	SchemaSales   = "sales"
	SchemaRoyalty = "royalty"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixCurrentPrice caches the latest price per book id.
	RedisPrefixCurrentPrice = "pricing:current:"
)

// # Cache TTLs

const (
	// CurrentPriceCacheTTL bounds staleness if an invalidation is ever missed.
	CurrentPriceCacheTTL = 10 * time.Minute
)

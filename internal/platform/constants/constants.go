// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, ledger method names and cross-cutting
keys that are shared between different layers of the system.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "paras-comic-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum time to write a response. Publishing
	// routes extend it per request.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for non-publishing requests.
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

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Ledger

const (
	// MethodCreateSeries mints a new token series on the comic contract.
	MethodCreateSeries = "nft_create_series"

	// MethodViewAccessKey is the RPC query used to bind a public key to an account.
	MethodViewAccessKey = "view_access_key"

	// MethodCallFunction is the RPC query that runs a view method.
	MethodCallFunction = "call_function"

	// MethodTokensForOwner pages through the tokens an account holds.
	MethodTokensForOwner = "nft_tokens_for_owner"

	// TokensForOwnerPage is the page size used when syncing holdings.
	TokensForOwnerPage = 100
)

// # Comments

const (
	// CommentPageLimit caps comment listings at the HTTP boundary.
	CommentPageLimit = 10

	// CommentMaxLength is the maximum body length in runes.
	CommentMaxLength = 2000
)

// # JSON Field Identifiers

// Error envelope keys written by middleware before a handler runs.
const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixStorage   = "storage::"
	RedisPrefixAccessKey = "auth:access_key:"
)

// AccessKeyCacheTTL is how long a confirmed ledger access key is trusted.
const AccessKeyCacheTTL = 10 * time.Minute

// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package sec

import (
	"context"
	"log/slog"
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
)

// Cache is the key/value store behind [CachedKeyChecker].
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedKeyChecker remembers confirmed access keys so that signed requests do
// not query the ledger node every time. Missing keys are never cached since an
// account may add the key at any moment.
type CachedKeyChecker struct {
	next   KeyChecker
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedKeyChecker wraps next with cache.
func NewCachedKeyChecker(next KeyChecker, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedKeyChecker {
	return &CachedKeyChecker{next: next, cache: cache, ttl: ttl, logger: logger}
}

/*
HasAccessKey answers from the cache, then from the ledger.

Description: Cache failures are logged and fall through to the ledger.
*/
func (checker *CachedKeyChecker) HasAccessKey(ctx context.Context, accountID, publicKey string) (bool, error) {
	key := constants.RedisPrefixAccessKey + accountID + ":" + publicKey

	_, found, err := checker.cache.Get(ctx, key)
	if err != nil {
		checker.logger.WarnContext(ctx, "access_key_cache_read_failed", slog.String("account_id", accountID), slog.Any("error", err))
	}
	if found {
		return true, nil
	}

	registered, err := checker.next.HasAccessKey(ctx, accountID, publicKey)
	if err != nil || !registered {
		return registered, err
	}

	if err := checker.cache.Set(ctx, key, []byte("1"), checker.ttl); err != nil {
		checker.logger.WarnContext(ctx, "access_key_cache_write_failed", slog.String("account_id", accountID), slog.Any("error", err))
	}

	return true, nil
}

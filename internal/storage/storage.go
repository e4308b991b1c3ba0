// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package storage is the content-addressed store for metadata blobs, covers and
page images.

Payloads are pinned through an IPFS HTTP API and read back through a public
gateway. [CachedStore] keeps recently uploaded or fetched payloads in Redis
under "storage::<cid>" so repeated reads never reach the gateway.

Uploads are not deduplicated here; uploading the same bytes twice returns the
same identifier.
*/
package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
)

// ErrInvalidCID is returned when an identifier is not a well-formed CID.
var ErrInvalidCID = errors.New("storage: invalid content identifier")

// Store uploads payloads and fetches them by content identifier.
type Store interface {
	UploadJSON(ctx context.Context, value any) (string, error)
	Upload(ctx context.Context, name string, data []byte) (string, error)
	Get(ctx context.Context, cid string) ([]byte, error)
}

// Backend is the remote content network.
type Backend interface {
	Add(ctx context.Context, name string, data []byte) (string, error)
	Cat(ctx context.Context, cid string) ([]byte, error)
}

// Cache holds payloads by key for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedStore implements [Store] over a [Backend] with a read-through [Cache].
type CachedStore struct {
	backend Backend
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewCachedStore constructs a [CachedStore].
func NewCachedStore(backend Backend, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{backend: backend, cache: cache, ttl: ttl, logger: logger}
}

// UploadJSON serializes value and uploads it as "metadata.json".
func (store *CachedStore) UploadJSON(ctx context.Context, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", errors.Wrap(err, "storage: failed to encode json payload")
	}
	return store.Upload(ctx, "metadata.json", data)
}

// Upload pins data and primes the cache with it.
func (store *CachedStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	cid, err := store.backend.Add(ctx, name, data)
	if err != nil {
		return "", err
	}

	if !ValidCID(cid) {
		return "", errors.WithMessagef(ErrInvalidCID, "backend returned %q", cid)
	}

	store.remember(ctx, cid, data)
	return cid, nil
}

// Get returns the payload for cid, from the cache when possible.
func (store *CachedStore) Get(ctx context.Context, cid string) ([]byte, error) {
	if !ValidCID(cid) {
		return nil, errors.WithMessagef(ErrInvalidCID, "%q", cid)
	}

	cached, found, err := store.cache.Get(ctx, cacheKey(cid))
	if err != nil {
		store.logger.WarnContext(ctx, "storage_cache_read_failed", slog.String("cid", cid), slog.Any("error", err))
	}
	if found {
		return cached, nil
	}

	data, err := store.backend.Cat(ctx, cid)
	if err != nil {
		return nil, err
	}

	store.remember(ctx, cid, data)
	return data, nil
}

// remember writes to the cache; failures only cost a future gateway read.
func (store *CachedStore) remember(ctx context.Context, cid string, data []byte) {
	if err := store.cache.Set(ctx, cacheKey(cid), data, store.ttl); err != nil {
		store.logger.WarnContext(ctx, "storage_cache_write_failed", slog.String("cid", cid), slog.Any("error", err))
	}
}

func cacheKey(cid string) string {
	return constants.RedisPrefixStorage + cid
}

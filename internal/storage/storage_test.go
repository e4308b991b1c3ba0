// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/storage"
)

type fakeBackend struct {
	cid      string
	addErr   error
	content  map[string][]byte
	added    [][]byte
	catCalls int
}

func (backend *fakeBackend) Add(_ context.Context, _ string, data []byte) (string, error) {
	if backend.addErr != nil {
		return "", backend.addErr
	}
	backend.added = append(backend.added, data)
	return backend.cid, nil
}

func (backend *fakeBackend) Cat(_ context.Context, cid string) ([]byte, error) {
	backend.catCalls++
	data, ok := backend.content[cid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

type memoryCache struct {
	values map[string][]byte
	ttls   map[string]time.Duration
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (cache *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := cache.values[key]
	return value, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if cache.setErr != nil {
		return cache.setErr
	}
	cache.values[key] = value
	cache.ttls[key] = ttl
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedStore_UploadJSON(t *testing.T) {
	backend := &fakeBackend{cid: metadataCID}
	cache := newMemoryCache()
	store := storage.NewCachedStore(backend, cache, time.Hour, discardLogger())

	cid, err := store.UploadJSON(context.Background(), map[string]any{"collection": "Paradigm", "chapter_id": 1})
	require.NoError(t, err)
	assert.Equal(t, metadataCID, cid)

	require.Len(t, backend.added, 1)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(backend.added[0], &decoded))
	assert.Equal(t, "Paradigm", decoded["collection"])

	assert.Equal(t, backend.added[0], cache.values["storage::"+metadataCID])
	assert.Equal(t, time.Hour, cache.ttls["storage::"+metadataCID])
}

func TestCachedStore_UploadFailure(t *testing.T) {
	backend := &fakeBackend{addErr: errors.New("api unreachable")}
	cache := newMemoryCache()
	store := storage.NewCachedStore(backend, cache, time.Hour, discardLogger())

	_, err := store.Upload(context.Background(), "cover.png", []byte{0x89})
	require.Error(t, err)
	assert.Empty(t, cache.values)
}

func TestCachedStore_RejectsBadBackendCID(t *testing.T) {
	store := storage.NewCachedStore(&fakeBackend{cid: "not-a-cid"}, newMemoryCache(), time.Hour, discardLogger())

	_, err := store.Upload(context.Background(), "cover.png", []byte{0x89})
	assert.ErrorIs(t, err, storage.ErrInvalidCID)
}

func TestCachedStore_GetReadsThrough(t *testing.T) {
	backend := &fakeBackend{content: map[string][]byte{coverCID: []byte("page-1")}}
	store := storage.NewCachedStore(backend, newMemoryCache(), time.Hour, discardLogger())

	for i := 0; i < 3; i++ {
		data, err := store.Get(context.Background(), coverCID)
		require.NoError(t, err)
		assert.Equal(t, []byte("page-1"), data)
	}

	assert.Equal(t, 1, backend.catCalls)
}

func TestCachedStore_GetCacheWriteFailureStillServes(t *testing.T) {
	backend := &fakeBackend{content: map[string][]byte{coverCID: []byte("page-1")}}
	cache := newMemoryCache()
	cache.setErr = errors.New("redis down")
	store := storage.NewCachedStore(backend, cache, time.Hour, discardLogger())

	data, err := store.Get(context.Background(), coverCID)
	require.NoError(t, err)
	assert.Equal(t, []byte("page-1"), data)
}

func TestCachedStore_GetInvalidCID(t *testing.T) {
	backend := &fakeBackend{}
	store := storage.NewCachedStore(backend, newMemoryCache(), time.Hour, discardLogger())

	_, err := store.Get(context.Background(), "../secret")
	assert.ErrorIs(t, err, storage.ErrInvalidCID)
	assert.Zero(t, backend.catCalls)
}

// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/access"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pointer"
)

// # Fakes

type memoryStore struct {
	mu             sync.Mutex
	origins        map[string]access.SeriesOrigin
	tokens         map[string]*access.Token
	grants         map[string][]access.Grant
	hasAccessCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		origins: map[string]access.SeriesOrigin{
			"12": {ComicID: "paradigm", ChapterID: pointer.To(1)},
			"13": {ComicID: "paradigm", ChapterID: pointer.To(2)},
			"40": {ComicID: "paradigm"},
		},
		tokens: map[string]*access.Token{},
		grants: map[string][]access.Grant{},
	}
}

func (store *memoryStore) ListTokens(_ context.Context, filter access.TokenFilter, skip, limit int) ([]*access.Token, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var out []*access.Token
	for _, token := range store.tokens {
		if filter.ComicID != "" && token.ComicID != filter.ComicID {
			continue
		}
		if filter.OwnerID != "" && token.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, token)
	}

	slices.SortFunc(out, func(a, b *access.Token) int {
		switch {
		case a.ChapterID == nil && b.ChapterID != nil:
			return 1
		case a.ChapterID != nil && b.ChapterID == nil:
			return -1
		case a.ChapterID != nil && *a.ChapterID != *b.ChapterID:
			return *a.ChapterID - *b.ChapterID
		}
		if a.TokenID < b.TokenID {
			return -1
		}
		return 1
	})

	if skip >= len(out) {
		return nil, nil
	}
	return out[skip:min(skip+limit, len(out))], nil
}

func (store *memoryStore) HasAccess(_ context.Context, accountID, comicID string, chapterID int) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.hasAccessCalls++

	for _, grant := range store.grants[accountID] {
		if grant.ComicID != comicID || grant.ChapterID != chapterID {
			continue
		}
		for _, tokenID := range grant.TokenIDs {
			if token, ok := store.tokens[tokenID]; ok && token.OwnerID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (store *memoryStore) SeriesOrigins(_ context.Context, seriesIDs []string) (map[string]access.SeriesOrigin, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	found := map[string]access.SeriesOrigin{}
	for _, id := range seriesIDs {
		if origin, ok := store.origins[id]; ok {
			found[id] = origin
		}
	}
	return found, nil
}

func (store *memoryStore) ReplaceHoldings(_ context.Context, ownerID string, tokens []*access.Token, grants []access.Grant) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, token := range store.tokens {
		if token.OwnerID == ownerID {
			delete(store.tokens, id)
		}
	}
	for _, token := range tokens {
		copied := *token
		store.tokens[token.TokenID] = &copied
	}
	store.grants[ownerID] = slices.Clone(grants)
	return nil
}

// fakeViewer answers nft_tokens_for_owner from an in-memory holdings map.
type fakeViewer struct {
	mu       sync.Mutex
	holdings map[string][]string
	err      error
	pages    []string
}

func (viewer *fakeViewer) ViewFunction(_ context.Context, _, method string, args, target any) error {
	viewer.mu.Lock()
	defer viewer.mu.Unlock()

	if viewer.err != nil {
		return viewer.err
	}
	if method != "nft_tokens_for_owner" {
		return fmt.Errorf("unexpected method %s", method)
	}

	params := args.(map[string]any)
	from, _ := strconv.Atoi(params["from_index"].(string))
	limit := params["limit"].(int)
	viewer.pages = append(viewer.pages, params["from_index"].(string))

	held := viewer.holdings[params["account_id"].(string)]
	page := []map[string]any{}
	for i := from; i < min(from+limit, len(held)); i++ {
		page = append(page, map[string]any{
			"token_id": held[i],
			"owner_id": params["account_id"],
			"metadata": map[string]any{"title": "Paradigm #" + held[i]},
		})
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

var _ ledger.Viewer = (*fakeViewer)(nil)

func newService(store access.Store, viewer ledger.Viewer) *access.Service {
	return access.NewService(store, viewer, "comic.paras.testnet", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Sync

func TestSync_GrantsChapterAccess(t *testing.T) {
	store := newMemoryStore()
	viewer := &fakeViewer{holdings: map[string][]string{
		"afiq.testnet": {"13:1", "12:2", "12:1", "40:7", "99:1"},
	}}
	service := newService(store, viewer)
	ctx := context.Background()

	result, err := service.Sync(ctx, "afiq.testnet")
	require.NoError(t, err)
	assert.Equal(t, &access.SyncResult{AccountID: "afiq.testnet", Tokens: 4, Chapters: 2}, result)

	grants := store.grants["afiq.testnet"]
	require.Len(t, grants, 2)
	assert.Equal(t, access.Grant{AccountID: "afiq.testnet", ComicID: "paradigm", ChapterID: 1, TokenIDs: []string{"12:1", "12:2"}}, grants[0])
	assert.Equal(t, []string{"13:1"}, grants[1].TokenIDs)

	assert.NotContains(t, store.tokens, "99:1")
	assert.Nil(t, store.tokens["40:7"].ChapterID)
	assert.JSONEq(t, `{"title":"Paradigm #12:1"}`, string(store.tokens["12:1"].Metadata))

	for chapter, expected := range map[int]bool{1: true, 2: true, 3: false} {
		allowed, err := service.HasAccess(ctx, "afiq.testnet", "paradigm", chapter)
		require.NoError(t, err)
		assert.Equal(t, expected, allowed, "chapter %d", chapter)
	}
}

func TestSync_PagesThroughHoldings(t *testing.T) {
	held := make([]string, 150)
	for i := range held {
		held[i] = fmt.Sprintf("12:%d", i+1)
	}
	store := newMemoryStore()
	viewer := &fakeViewer{holdings: map[string][]string{"afiq.testnet": held}}

	result, err := newService(store, viewer).Sync(context.Background(), "afiq.testnet")
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "100"}, viewer.pages)
	assert.Equal(t, 150, result.Tokens)
	assert.Equal(t, 1, result.Chapters)
	assert.Len(t, store.grants["afiq.testnet"][0].TokenIDs, 150)
}

func TestSync_ReplacesPreviousHoldings(t *testing.T) {
	store := newMemoryStore()
	viewer := &fakeViewer{holdings: map[string][]string{"afiq.testnet": {"12:1"}}}
	service := newService(store, viewer)
	ctx := context.Background()

	_, err := service.Sync(ctx, "afiq.testnet")
	require.NoError(t, err)

	viewer.holdings["afiq.testnet"] = nil
	result, err := service.Sync(ctx, "afiq.testnet")
	require.NoError(t, err)
	assert.Zero(t, result.Tokens)

	allowed, err := service.HasAccess(ctx, "afiq.testnet", "paradigm", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Empty(t, store.tokens)
}

func TestSync_SoldTokenStopsGrantingSeller(t *testing.T) {
	store := newMemoryStore()
	viewer := &fakeViewer{holdings: map[string][]string{"afiq.testnet": {"12:1"}}}
	service := newService(store, viewer)
	ctx := context.Background()

	_, err := service.Sync(ctx, "afiq.testnet")
	require.NoError(t, err)

	viewer.holdings = map[string][]string{"budi.testnet": {"12:1"}}
	_, err = service.Sync(ctx, "budi.testnet")
	require.NoError(t, err)

	seller, err := service.HasAccess(ctx, "afiq.testnet", "paradigm", 1)
	require.NoError(t, err)
	assert.False(t, seller)

	buyer, err := service.HasAccess(ctx, "budi.testnet", "paradigm", 1)
	require.NoError(t, err)
	assert.True(t, buyer)
}

func TestSync_Failures(t *testing.T) {
	t.Run("invalid_account", func(t *testing.T) {
		_, err := newService(newMemoryStore(), &fakeViewer{}).Sync(context.Background(), "")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("ledger_down", func(t *testing.T) {
		store := newMemoryStore()
		viewer := &fakeViewer{err: errors.New("node unreachable")}

		_, err := newService(store, viewer).Sync(context.Background(), "afiq.testnet")
		assert.True(t, apperr.HasCode(err, apperr.CodeLedger))
		assert.Empty(t, store.grants)
	})
}

// # Lookups

func TestHasAccess_AnonymousSkipsStore(t *testing.T) {
	store := newMemoryStore()

	allowed, err := newService(store, &fakeViewer{}).HasAccess(context.Background(), "", "paradigm", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, store.hasAccessCalls)
}

func TestListTokens(t *testing.T) {
	store := newMemoryStore()
	viewer := &fakeViewer{holdings: map[string][]string{
		"afiq.testnet": {"40:1", "13:1", "12:1"},
		"budi.testnet": {"12:2"},
	}}
	service := newService(store, viewer)
	ctx := context.Background()

	for _, account := range []string{"afiq.testnet", "budi.testnet"} {
		_, err := service.Sync(ctx, account)
		require.NoError(t, err)
	}

	owned, err := service.ListTokens(ctx, access.TokenFilter{OwnerID: "afiq.testnet"}, 0, 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(owned))
	for _, token := range owned {
		ids = append(ids, token.TokenID)
	}
	assert.Equal(t, []string{"12:1", "13:1", "40:1"}, ids)

	comic, err := service.ListTokens(ctx, access.TokenFilter{ComicID: "paradigm"}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, comic, 4)

	_, err = service.ListTokens(ctx, access.TokenFilter{}, -1, 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	_, err = service.ListTokens(ctx, access.TokenFilter{}, 0, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestSeriesIDOf(t *testing.T) {
	assert.Equal(t, "12", access.SeriesIDOf("12:3"))
	assert.Equal(t, "12", access.SeriesIDOf("12"))
}

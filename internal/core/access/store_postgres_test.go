// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres/pgtest"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pointer"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/uuid"
)

// # Query Shape

func TestTokensQuery(t *testing.T) {
	query, args := tokensQuery(TokenFilter{ComicID: "paradigm", OwnerID: "afiq.testnet"}, 10, 5)

	assert.Contains(t, query, "AND comicid = $1 AND ownerid = $2")
	assert.Contains(t, query, "ORDER BY chapterid ASC NULLS LAST, tokenid ASC")
	assert.Contains(t, query, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"paradigm", "afiq.testnet", 5, 10}, args)

	_, args = tokensQuery(TokenFilter{}, 0, 5)
	assert.Equal(t, []any{5, 0}, args)
}

// # Against PostgreSQL

func TestPostgresStore_HoldingsFollowTheToken(t *testing.T) {
	pool := pgtest.Open(t)
	store := NewPostgresStore(pool)
	ctx := context.Background()

	suffix := uuid.New()
	comicID := "paradigm-" + suffix
	seriesID := "s-" + suffix
	seller, buyer := "afiq-"+suffix[:8]+".testnet", "budi-"+suffix[:8]+".testnet"
	tokenID := seriesID + ":1"

	_, err := pool.Exec(ctx, `
		INSERT INTO market.tokenseries (tokenseriesid, metadata, creatorid, comicid, chapterid)
		VALUES ($1, '{}', 'afiq.testnet', $2, 1)
	`, seriesID, comicID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM market.tokenseries WHERE tokenseriesid = $1`, seriesID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM market.token WHERE comicid = $1`, comicID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM market.access WHERE comicid = $1`, comicID)
	})

	origins, err := store.SeriesOrigins(ctx, []string{seriesID, "missing"})
	require.NoError(t, err)
	require.Contains(t, origins, seriesID)
	assert.Equal(t, SeriesOrigin{ComicID: comicID, ChapterID: pointer.To(1)}, origins[seriesID])
	assert.NotContains(t, origins, "missing")

	holding := func(owner string) ([]*Token, []Grant) {
		token := &Token{
			TokenID: tokenID, TokenSeriesID: seriesID, OwnerID: owner, ComicID: comicID,
			ChapterID: pointer.To(1), Metadata: json.RawMessage(`{}`), UpdatedAt: time.Now().UTC(),
		}
		return []*Token{token}, []Grant{{AccountID: owner, ComicID: comicID, ChapterID: 1, TokenIDs: []string{tokenID}}}
	}

	tokens, grants := holding(seller)
	require.NoError(t, store.ReplaceHoldings(ctx, seller, tokens, grants))

	allowed, err := store.HasAccess(ctx, seller, comicID, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	tokens, grants = holding(buyer)
	require.NoError(t, store.ReplaceHoldings(ctx, buyer, tokens, grants))

	allowed, err = store.HasAccess(ctx, seller, comicID, 1)
	require.NoError(t, err)
	assert.False(t, allowed, "seller's grant must stop counting once the buyer syncs")

	allowed, err = store.HasAccess(ctx, buyer, comicID, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	listed, err := store.ListTokens(ctx, TokenFilter{ComicID: comicID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, buyer, listed[0].OwnerID)
}

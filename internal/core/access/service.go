// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access

import (
	"cmp"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
)

// # Service Layer

// Service syncs holdings from the ledger and answers access checks.
type Service struct {
	store      Store
	viewer     ledger.Viewer
	contractID string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new access [Service] reading holdings from contractID.
func NewService(store Store, viewer ledger.Viewer, contractID string, logger *slog.Logger) *Service {
	return &Service{store: store, viewer: viewer, contractID: contractID, logger: logger, now: time.Now}
}

// HasAccess reports whether accountID may read the chapter. Anonymous callers never may.
func (service *Service) HasAccess(context context.Context, accountID, comicID string, chapterID int) (bool, error) {
	if accountID == "" {
		return false, nil
	}
	return service.store.HasAccess(context, accountID, comicID, chapterID)
}

// ListTokens returns tokens by comic and/or owner, lowest chapter first.
func (service *Service) ListTokens(context context.Context, filter TokenFilter, skip, limit int) ([]*Token, error) {
	validator := &validate.Validator{}
	validator.NonNegative(pagination.QuerySkip, skip)
	validator.Positive(pagination.QueryLimit, limit)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.store.ListTokens(context, filter, skip, limit)
}

// chainToken is one entry of nft_tokens_for_owner.
type chainToken struct {
	TokenID  string          `json:"token_id"`
	OwnerID  string          `json:"owner_id"`
	Metadata json.RawMessage `json:"metadata"`
}

/*
Sync replaces accountID's recorded holdings with what the ledger reports.

Description: Tokens from series this backend did not publish are ignored.
Every chapter token adds its id to the (comic, chapter) grant of the
account.

Returns:
  - *SyncResult: How many tokens and chapter grants were recorded
  - error: Validation, LEDGER_ERROR or persistence errors
*/
func (service *Service) Sync(context context.Context, accountID string) (*SyncResult, error) {
	validator := &validate.Validator{}
	validator.Account(FieldAccountID, accountID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	held, err := service.fetchHoldings(context, accountID)
	if err != nil {
		return nil, apperr.LedgerUnavailable(err)
	}

	seriesIDs := make([]string, 0, len(held))
	for _, token := range held {
		seriesIDs = append(seriesIDs, SeriesIDOf(token.TokenID))
	}
	slices.Sort(seriesIDs)
	seriesIDs = slices.Compact(seriesIDs)

	origins, err := service.store.SeriesOrigins(context, seriesIDs)
	if err != nil {
		return nil, err
	}

	now := service.now().UTC()
	tokens := make([]*Token, 0, len(held))
	grants := map[string]*Grant{}

	for _, chain := range held {
		seriesID := SeriesIDOf(chain.TokenID)
		origin, known := origins[seriesID]
		if !known {
			continue
		}

		metadata := chain.Metadata
		if len(metadata) == 0 || string(metadata) == "null" {
			metadata = json.RawMessage(`{}`)
		}

		tokens = append(tokens, &Token{
			TokenID:       chain.TokenID,
			TokenSeriesID: seriesID,
			OwnerID:       accountID,
			ComicID:       origin.ComicID,
			ChapterID:     origin.ChapterID,
			Metadata:      metadata,
			UpdatedAt:     now,
		})

		if origin.ChapterID == nil {
			continue
		}

		key := origin.ComicID + "#" + strconv.Itoa(*origin.ChapterID)
		grant, ok := grants[key]
		if !ok {
			grant = &Grant{AccountID: accountID, ComicID: origin.ComicID, ChapterID: *origin.ChapterID}
			grants[key] = grant
		}
		grant.TokenIDs = append(grant.TokenIDs, chain.TokenID)
	}

	ordered := make([]Grant, 0, len(grants))
	for _, grant := range grants {
		slices.Sort(grant.TokenIDs)
		ordered = append(ordered, *grant)
	}
	slices.SortFunc(ordered, func(a, b Grant) int {
		return cmp.Or(cmp.Compare(a.ComicID, b.ComicID), cmp.Compare(a.ChapterID, b.ChapterID))
	})

	if err := service.store.ReplaceHoldings(context, accountID, tokens, ordered); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "holdings_synced",
		slog.String("account_id", accountID),
		slog.Int("tokens", len(tokens)),
		slog.Int("chapters", len(ordered)),
		slog.Int("ignored", len(held)-len(tokens)),
	)

	return &SyncResult{AccountID: accountID, Tokens: len(tokens), Chapters: len(ordered)}, nil
}

// fetchHoldings pages through nft_tokens_for_owner until a short page.
func (service *Service) fetchHoldings(context context.Context, accountID string) ([]chainToken, error) {
	var held []chainToken

	for from := 0; ; from += constants.TokensForOwnerPage {
		args := map[string]any{
			"account_id": accountID,
			"from_index": strconv.Itoa(from),
			"limit":      constants.TokensForOwnerPage,
		}

		var page []chainToken
		if err := service.viewer.ViewFunction(context, service.contractID, constants.MethodTokensForOwner, args, &page); err != nil {
			return nil, err
		}

		held = append(held, page...)
		if len(page) < constants.TokensForOwnerPage {
			return held, nil
		}
	}
}

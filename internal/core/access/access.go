// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package access mirrors on-chain token holdings and derives chapter read access.

Holdings are pulled from the comic contract with nft_tokens_for_owner and
replaced wholesale per owner. A held token whose series was published for a
chapter grants its owner read access to that chapter. A grant only counts
while the owner still holds at least one of its tokens.

Core Responsibility:

  - Sync: Mirror an account's holdings into market.token.
  - Grant: Derive market.access rows (account, comic, chapter, token ids).
  - Lookup: Answer HasAccess for the catalogue and list tokens.
*/
package access

import (
	"encoding/json"
	"strings"
	"time"
)

// # Core Entities

// Token is one edition of a token series held by OwnerID.
type Token struct {
	TokenID       string          `json:"token_id"` // "<series>:<edition>"
	TokenSeriesID string          `json:"token_series_id"`
	OwnerID       string          `json:"owner_id"`
	ComicID       string          `json:"comic_id"`
	ChapterID     *int            `json:"chapter_id"`
	Metadata      json.RawMessage `json:"metadata"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Grant is read access to one chapter backed by the listed tokens.
type Grant struct {
	AccountID string
	ComicID   string
	ChapterID int
	TokenIDs  []string
}

// SeriesOrigin is the comic (and chapter, unless a collectible) a series was minted for.
type SeriesOrigin struct {
	ComicID   string
	ChapterID *int
}

// TokenFilter narrows a token listing. Empty fields match everything.
type TokenFilter struct {
	ComicID string
	OwnerID string
}

// SyncResult summarises one holdings sync.
type SyncResult struct {
	AccountID string `json:"account_id"`
	Tokens    int    `json:"tokens"`
	Chapters  int    `json:"chapters"`
}

// SeriesIDOf returns the series part of a token id.
func SeriesIDOf(tokenID string) string {
	series, _, _ := strings.Cut(tokenID, ":")
	return series
}

// # Field Identifiers

const (
	FieldAccountID = "account_id"
	FieldComicID   = "comic_id"
	FieldOwnerID   = "owner_id"
)

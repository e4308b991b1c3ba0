// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package publish mints token series for chapters and standalone collectibles.

A publish runs four steps in order: the metadata blob is uploaded to the
content store, a pending [MintAttempt] is recorded, the series is created on
the ledger with bounded retry, and finally the [Record] (plus the chapter and
page rows for chapters) is written in one local transaction that also marks the
attempt minted.

# Failure Modes

  - Upload fails: nothing else happens.
  - Ledger retries exhausted: the attempt is marked failed, LEDGER_ERROR.
    The caller cancelling the request does not stop the loop; only the
    retry budget does.
  - Process stops mid-loop: the attempt stays pending with an unknown
    ledger state and is listed for repair like an orphan.
  - Local commit fails after a mint: the attempt is marked orphaned and no
    Record exists, PERSISTENCE_ERROR. The on-chain series is not burned;
    orphaned attempts are listed for a repair job.
*/
package publish

import (
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
)

// # Enums

// Kind distinguishes chapter series from standalone collectibles.
type Kind string

const (
	KindChapter     Kind = "chapter"
	KindCollectible Kind = "collectible"
)

// AttemptStatus is the lifecycle of a [MintAttempt].
type AttemptStatus string

const (
	// AttemptPending is written before the ledger call.
	AttemptPending AttemptStatus = "pending"
	// AttemptMinted is set in the transaction that inserts the Record.
	AttemptMinted AttemptStatus = "minted"
	// AttemptFailed means the ledger never confirmed the mint.
	AttemptFailed AttemptStatus = "failed"
	// AttemptOrphaned means the mint succeeded but the Record was not written.
	AttemptOrphaned AttemptStatus = "orphaned"
)

// # Metadata

// Metadata is the reference blob uploaded to the content store.
type Metadata struct {
	ComicID      string    `json:"comic_id"`
	ChapterID    *int      `json:"chapter_id,omitempty"`
	Description  string    `json:"description"`
	CreatorID    string    `json:"creator_id"`
	AuthorIDs    []string  `json:"author_ids"`
	Collection   string    `json:"collection"`
	CollectionID string    `json:"collection_id"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Blurhash     string    `json:"blurhash,omitempty"`
	PageCount    *int      `json:"page_count,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

// TokenMetadata is the on-chain metadata of the series.
type TokenMetadata struct {
	Title     string `json:"title"`
	Media     string `json:"media"`
	Reference string `json:"reference"`
	Copies    *int   `json:"copies,omitempty"`
}

// MintParams are the arguments of the create-series contract call.
type MintParams struct {
	TokenMetadata TokenMetadata  `json:"token_metadata"`
	Price         string         `json:"price"`
	CreatorID     string         `json:"creator_id"`
	Royalty       map[string]int `json:"royalty,omitempty"` // account -> basis points
}

// SeriesMetadata is the stored copy: the reference blob merged with the token metadata.
type SeriesMetadata struct {
	Metadata
	TokenMetadata
}

// # Persisted Entities

// Record is the local row of a minted series. It is never updated.
type Record struct {
	TokenSeriesID string         `json:"token_series_id"`
	Metadata      SeriesMetadata `json:"metadata"`
	Price         string         `json:"price"`
	CreatorID     string         `json:"creator_id"`
	Royalty       map[string]int `json:"royalty,omitempty"`
	ComicID       string         `json:"comic_id"`
	ChapterID     *int           `json:"chapter_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// MintAttempt marks a mint in flight so that mints without a Record can be found.
type MintAttempt struct {
	ID            string        `json:"id"`
	Kind          Kind          `json:"kind"`
	ComicID       string        `json:"comic_id"`
	ChapterID     *int          `json:"chapter_id,omitempty"`
	Reference     string        `json:"reference"`
	Params        MintParams    `json:"params"`
	Status        AttemptStatus `json:"status"`
	TokenSeriesID *string       `json:"token_series_id,omitempty"`
	Error         *string       `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// # Inputs & Results

// SeriesInput describes a standalone collectible.
type SeriesInput struct {
	ComicID     string   `json:"comic_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Media       string   `json:"media"`
	Collection  string   `json:"collection"`
	CreatorID   string   `json:"creator_id"`
	AuthorIDs   []string `json:"author_ids"`
	Copies      *int     `json:"copies,omitempty"`
	Royalty     *float64 `json:"royalty,omitempty"` // percent
	Price       string   `json:"price,omitempty"`   // yoctoNEAR, default "0"
}

// ChapterInput describes a chapter. The title is derived from the comic.
type ChapterInput struct {
	ComicID      string   `json:"comic_id"`
	ChapterID    int      `json:"chapter_id"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Description  string   `json:"description"`
	Media        string   `json:"media"`
	Collection   string   `json:"collection"`
	CreatorID    string   `json:"creator_id"`
	AuthorIDs    []string `json:"author_ids"`
	Blurhash     string   `json:"blurhash,omitempty"`
	PageCount    int      `json:"page_count,omitempty"`
	PageContents []string `json:"page_contents,omitempty"`
	Copies       *int     `json:"copies,omitempty"`
	Royalty      *float64 `json:"royalty,omitempty"`
	Price        string   `json:"price,omitempty"`
	Force        bool     `json:"force,omitempty"`
}

// Result is returned by a successful publish.
type Result struct {
	TokenSeriesID string          `json:"token_series_id"`
	Params        MintParams      `json:"params"`
	Reference     string          `json:"reference"`
	AttemptID     string          `json:"attempt_id"`
	Outcome       *ledger.Outcome `json:"outcome"`
}

// SeriesFilter narrows series listings. Empty fields do not filter.
type SeriesFilter struct {
	ComicID       string
	TokenSeriesID string
	Kind          Kind
}

// # Field Identifiers

const (
	FieldComicID      = "comic_id"
	FieldChapterID    = "chapter_id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldMedia        = "media"
	FieldCollection   = "collection"
	FieldCreatorID    = "creator_id"
	FieldAuthorIDs    = "author_ids"
	FieldCopies       = "copies"
	FieldRoyalty      = "royalty"
	FieldPrice        = "price"
	FieldPageCount    = "page_count"
	FieldPageContents = "page_contents"
	FieldCategory     = "category"
	FieldStatus       = "status"
)

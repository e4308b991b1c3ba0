// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package publish

import (
	"context"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
)

// PersistRequest is everything written by the final publish transaction.
type PersistRequest struct {
	AttemptID string
	Record    *Record
	Chapter   *comic.Chapter // nil for collectibles
	Replace   bool
}

// Store defines the data access contract of the publishing pipeline.
type Store interface {

	// CreateAttempt records a pending mint before the ledger is called.
	CreateAttempt(context context.Context, attempt *MintAttempt) error

	/*
		MarkAttempt moves an attempt to a terminal status outside any publish transaction.

		Parameters:
		  - status: AttemptFailed or AttemptOrphaned
		  - tokenSeriesID: set when the ledger confirmed the mint
		  - reason: error text kept for the repair job
	*/
	MarkAttempt(context context.Context, attemptID string, status AttemptStatus, tokenSeriesID *string, reason string) error

	/*
		Persist inserts the Record, the chapter and its pages (when present) and
		marks the attempt minted, all in one transaction.

		Returns:
		  - error: any failure; nothing is written in that case
	*/
	Persist(context context.Context, request PersistRequest) error

	// ListAttempts returns attempts in the given status, oldest first.
	ListAttempts(context context.Context, status AttemptStatus, skip, limit int) ([]*MintAttempt, error)

	// ListSeries returns records matching filter, newest first.
	ListSeries(context context.Context, filter SeriesFilter, skip, limit int) ([]*Record, error)
}

// Catalog resolves the parent comic of a chapter.
type Catalog interface {
	GetComic(context context.Context, comicID string) (*comic.Comic, error)
	ChapterExists(context context.Context, comicID string, chapterID int) (bool, error)
}

// Uploader stores the reference blob and returns its content id.
type Uploader interface {
	UploadJSON(context context.Context, value any) (string, error)
}

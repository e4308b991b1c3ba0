// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access

import "context"

// # Holdings Data Access

// Store defines the persistence contract for holdings and grants.
type Store interface {

	// ListTokens returns tokens matching filter ordered by chapter id.
	ListTokens(context context.Context, filter TokenFilter, skip, limit int) ([]*Token, error)

	// HasAccess reports whether accountID holds a token granting the chapter.
	HasAccess(context context.Context, accountID, comicID string, chapterID int) (bool, error)

	// SeriesOrigins resolves the known series among seriesIDs. Unknown ids are absent.
	SeriesOrigins(context context.Context, seriesIDs []string) (map[string]SeriesOrigin, error)

	/*
		ReplaceHoldings swaps ownerID's tokens and grants for the given sets.

		Description: Atomic per owner. A token recorded under another owner
		moves to ownerID.
	*/
	ReplaceHoldings(context context.Context, ownerID string, tokens []*Token, grants []Grant) error
}

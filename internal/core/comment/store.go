// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comment

import (
	"context"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
)

// Store defines the persistence contract for comments and votes.
type Store interface {

	// Create inserts a comment with zero counters.
	Create(context context.Context, comment *Comment) error

	/*
		Find lists comments matching filter.

		Description: The viewer's own comments come first, then score
		descending, then issued_at descending.
	*/
	Find(context context.Context, filter Filter, skip, limit int) ([]*Comment, error)

	// Delete removes a comment written by accountID. apperr NotFound otherwise.
	Delete(context context.Context, accountID, commentID string) error

	// RunVote runs fn inside a single transaction.
	RunVote(context context.Context, fn func(tx VoteTx) error) error
}

// VoteTx is the set of writes allowed while applying one vote.
type VoteTx interface {

	// Lock serializes concurrent votes of the same account on the same comment.
	Lock(context context.Context, accountID, commentID string) error

	CommentExists(context context.Context, commentID string) (bool, error)

	// CurrentVote returns VoteNone when the account has not voted.
	CurrentVote(context context.Context, accountID, commentID string) (VoteType, error)

	// SaveVote upserts the vote. IssuedAt is only written on insert.
	SaveVote(context context.Context, vote *Vote) error

	RemoveVote(context context.Context, accountID, commentID string) error

	// AddDelta increments the comment's counters.
	AddDelta(context context.Context, commentID string, delta Delta) error
}

// Catalog resolves the comic a comment is attached to.
type Catalog interface {
	GetComic(context context.Context, comicID string) (*comic.Comic, error)
}

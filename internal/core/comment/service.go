// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/uuid"
)

// # Service Layer

// Service creates comments and applies votes.
type Service struct {
	store   Store
	catalog Catalog
	policy  *bluemonday.Policy
	logger  *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewService constructs a new comment [Service].
func NewService(store Store, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger,
		now:     time.Now,
		newID:   uuid.New,
	}
}

/*
Create posts a comment on a comic or one of its chapters.

Description: Markup is stripped from body before it is measured.

Returns:
  - *Comment: The stored comment with zero counters
  - error: Validation, or NotFound when the comic is unknown
*/
func (service *Service) Create(ctx context.Context, accountID, comicID string, chapterID *int, body string) (*Comment, error) {

	body = strings.TrimSpace(service.policy.Sanitize(body))

	validator := &validate.Validator{}
	validator.Required(FieldAccountID, accountID)
	validator.Required(FieldComicID, comicID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, constants.CommentMaxLength)
	if chapterID != nil {
		validator.Positive(FieldChapterID, *chapterID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.catalog.GetComic(ctx, comicID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        service.newID(),
		AccountID: accountID,
		ComicID:   comicID,
		ChapterID: chapterID,
		Body:      body,
		IssuedAt:  service.now().UTC(),
	}

	if err := service.store.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("account_id", accountID),
		slog.String("comic_id", comicID),
	)

	return comment, nil
}

// Find lists comments for filter. The limit is not bounded here.
func (service *Service) Find(ctx context.Context, filter Filter, skip, limit int) ([]*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldComicID, filter.ComicID)
	validator.NonNegative(pagination.QuerySkip, skip)
	validator.Positive(pagination.QueryLimit, limit)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.store.Find(ctx, filter, skip, limit)
}

// Likes records a like. Liking twice is a successful no-op.
func (service *Service) Likes(ctx context.Context, accountID, commentID string) (bool, error) {
	return service.Vote(ctx, accountID, commentID, ActionLike)
}

// Unlikes removes a like. Without one it is a successful no-op.
func (service *Service) Unlikes(ctx context.Context, accountID, commentID string) (bool, error) {
	return service.Vote(ctx, accountID, commentID, ActionUnlike)
}

// Dislikes records a dislike. Disliking twice is a successful no-op.
func (service *Service) Dislikes(ctx context.Context, accountID, commentID string) (bool, error) {
	return service.Vote(ctx, accountID, commentID, ActionDislike)
}

// Undislikes removes a dislike. Without one it is a successful no-op.
func (service *Service) Undislikes(ctx context.Context, accountID, commentID string) (bool, error) {
	return service.Vote(ctx, accountID, commentID, ActionUndislike)
}

/*
Vote applies action for accountID on commentID.

Description: Runs in one transaction: lock the (account, comment) pair, check
the comment exists, read the current vote, apply [Transition], then write the
vote row and the counter delta. No-op transitions write nothing.

Returns:
  - bool: Always true on success
  - error: Validation or NotFound
*/
func (service *Service) Vote(ctx context.Context, accountID, commentID string, action Action) (bool, error) {

	validator := &validate.Validator{}
	validator.Required(FieldAccountID, accountID)
	validator.Required(FieldCommentID, commentID)
	validator.Custom(FieldCommentID, commentID != "" && !uuid.Valid(commentID), "Must be a valid id")
	validator.Custom(FieldAction, !isAction(action), "Unknown vote action")
	if err := validator.Err(); err != nil {
		return false, err
	}

	var (
		previous VoteType
		next     VoteType
		delta    Delta
		changed  bool
	)

	err := service.store.RunVote(ctx, func(tx VoteTx) error {
		if err := tx.Lock(ctx, accountID, commentID); err != nil {
			return err
		}

		exists, err := tx.CommentExists(ctx, commentID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Comment")
		}

		previous, err = tx.CurrentVote(ctx, accountID, commentID)
		if err != nil {
			return err
		}

		next, delta, changed = Transition(previous, action)
		if !changed {
			return nil
		}

		if next == VoteNone {
			err = tx.RemoveVote(ctx, accountID, commentID)
		} else {
			now := service.now().UTC()
			err = tx.SaveVote(ctx, &Vote{
				AccountID: accountID,
				CommentID: commentID,
				Type:      next,
				IssuedAt:  now,
				UpdatedAt: now,
			})
		}
		if err != nil {
			return err
		}

		return tx.AddDelta(ctx, commentID, delta)
	})
	if err != nil {
		return false, err
	}

	if changed {
		service.logger.InfoContext(ctx, "comment_vote_applied",
			slog.String("comment_id", commentID),
			slog.String("account_id", accountID),
			slog.String("action", string(action)),
			slog.String("from", string(previous)),
			slog.String("to", string(next)),
			slog.Int("score_delta", delta.Score),
		)
	}

	return true, nil
}

// Delete removes a comment. Only its author may delete it; anyone else gets NotFound.
func (service *Service) Delete(ctx context.Context, accountID, commentID string) error {
	if accountID == "" || !uuid.Valid(commentID) {
		return apperr.NotFound("Comment")
	}

	if err := service.store.Delete(ctx, accountID, commentID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("account_id", accountID),
	)

	return nil
}

func isAction(action Action) bool {
	for _, known := range Actions {
		if action == known {
			return true
		}
	}
	return false
}

// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/database/schema"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/dberr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
)

// # PostgreSQL Store

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed comment store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create inserts a comment.
func (store *PostgresStore) Create(context context.Context, comment *Comment) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, $6)
	`,
		table.Table,
		table.ID, table.AccountID, table.ComicID, table.ChapterID, table.Body,
		table.Likes, table.Dislikes, table.Score, table.IssuedAt,
	)

	_, err := store.pool.Exec(context, query,
		comment.ID, comment.AccountID, comment.ComicID, comment.ChapterID, comment.Body, comment.IssuedAt,
	)

	return dberr.Wrap(err, "insert_comment")
}

/*
Find lists comments with the viewer's vote attached.

Description: user_likes comes from a LEFT JOIN on the viewer's vote row. An
empty viewer matches no rows, so anonymous readers always see null.
*/
func (store *PostgresStore) Find(context context.Context, filter Filter, skip, limit int) ([]*Comment, error) {
	query, args := findQuery(filter, skip, limit)

	rows, err := store.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Comment, error) {
		var c Comment
		err := row.Scan(
			&c.ID, &c.AccountID, &c.ComicID, &c.ChapterID, &c.Body,
			&c.Likes, &c.Dislikes, &c.Score, &c.IssuedAt, &c.UserLikes,
		)
		return &c, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_comments")
	}

	return comments, nil
}

/*
findQuery builds the thread listing.

Description: $1 is the viewer and $2 the comic. The viewer's own comments
sort first, then score, then newest.
*/
func findQuery(filter Filter, skip, limit int) (string, []any) {
	comment := schema.SocialComment
	like := schema.SocialCommentLike

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, l.%s
		FROM %s c
		LEFT JOIN %s l ON l.%s = c.%s AND l.%s = $1
		WHERE c.%s = $2
	`,
		comment.ID, comment.AccountID, comment.ComicID, comment.ChapterID, comment.Body,
		comment.Likes, comment.Dislikes, comment.Score, comment.IssuedAt, like.Type,
		comment.Table,
		like.Table, like.CommentID, comment.ID, like.AccountID,
		comment.ComicID,
	))
	args = append(args, filter.ViewerID, filter.ComicID)
	argID += 2

	if filter.ChapterID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", comment.ChapterID, argID))
		args = append(args, *filter.ChapterID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY (c.%s = $1) DESC, c.%s DESC, c.%s DESC",
		comment.AccountID, comment.Score, comment.IssuedAt,
	))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, skip)

	return queryBuilder.String(), args
}

// Delete removes the comment if accountID wrote it. Votes go with it through the foreign key.
func (store *PostgresStore) Delete(context context.Context, accountID, commentID string) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		table.Table, table.ID, table.AccountID,
	)

	result, err := store.pool.Exec(context, query, commentID, accountID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// RunVote runs fn in a transaction via [postgres.WithTx].
func (store *PostgresStore) RunVote(context context.Context, fn func(tx VoteTx) error) error {
	return postgres.WithTx(context, store.pool, func(tx pgx.Tx) error {
		return fn(&voteTx{tx: tx})
	})
}

// # Vote Transaction

type voteTx struct {
	tx pgx.Tx
}

// Lock takes a transaction-scoped advisory lock on the (account, comment) pair.
func (v *voteTx) Lock(context context.Context, accountID, commentID string) error {
	_, err := v.tx.Exec(context,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`,
		accountID, commentID,
	)
	return dberr.Wrap(err, "lock_vote")
}

func (v *voteTx) CommentExists(context context.Context, commentID string) (bool, error) {
	table := schema.SocialComment
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table.Table, table.ID)

	var exists bool
	if err := v.tx.QueryRow(context, query, commentID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "comment_exists")
	}

	return exists, nil
}

func (v *voteTx) CurrentVote(context context.Context, accountID, commentID string) (VoteType, error) {
	table := schema.SocialCommentLike
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		table.Type, table.Table, table.AccountID, table.CommentID,
	)

	var vote VoteType
	err := v.tx.QueryRow(context, query, accountID, commentID).Scan(&vote)
	if errors.Is(err, pgx.ErrNoRows) {
		return VoteNone, nil
	}
	if err != nil {
		return VoteNone, dberr.Wrap(err, "read_vote")
	}

	return vote, nil
}

func (v *voteTx) SaveVote(context context.Context, vote *Vote) error {
	table := schema.SocialCommentLike
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		table.Table,
		table.AccountID, table.CommentID, table.Type, table.IssuedAt, table.UpdatedAt,
		table.AccountID, table.CommentID,
		table.Type, table.Type, table.UpdatedAt, table.UpdatedAt,
	)

	_, err := v.tx.Exec(context, query, vote.AccountID, vote.CommentID, vote.Type, vote.IssuedAt, vote.UpdatedAt)
	return dberr.Wrap(err, "upsert_vote")
}

func (v *voteTx) RemoveVote(context context.Context, accountID, commentID string) error {
	table := schema.SocialCommentLike
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		table.Table, table.AccountID, table.CommentID,
	)

	_, err := v.tx.Exec(context, query, accountID, commentID)
	return dberr.Wrap(err, "delete_vote")
}

func (v *voteTx) AddDelta(context context.Context, commentID string, delta Delta) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + $2, %s = %s + $3, %s = %s + $4
		WHERE %s = $1
	`,
		table.Table,
		table.Likes, table.Likes, table.Dislikes, table.Dislikes, table.Score, table.Score,
		table.ID,
	)

	result, err := v.tx.Exec(context, query, commentID, delta.Likes, delta.Dislikes, delta.Score)
	if err != nil {
		return dberr.Wrap(err, "apply_vote_delta")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

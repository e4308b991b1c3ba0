// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/database/schema"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/dberr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
)

// # PostgreSQL Store

// PostgresStore implements [Store] using pgx. JSONB columns are encoded by
// pgx's JSON codec straight from the domain structs.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed publishing store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateAttempt inserts a pending mint attempt.
func (store *PostgresStore) CreateAttempt(context context.Context, attempt *MintAttempt) error {
	table := schema.MarketMintAttempt
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`,
		table.Table,
		table.ID, table.Kind, table.ComicID, table.ChapterID, table.Reference,
		table.Params, table.Status, table.CreatedAt, table.UpdatedAt,
	)

	_, err := store.pool.Exec(context, query,
		attempt.ID, attempt.Kind, attempt.ComicID, attempt.ChapterID, attempt.Reference,
		attempt.Params, attempt.Status, attempt.CreatedAt,
	)

	return dberr.Wrap(err, "insert_mint_attempt")
}

// MarkAttempt sets a terminal status on an attempt.
func (store *PostgresStore) MarkAttempt(context context.Context, attemptID string, status AttemptStatus, tokenSeriesID *string, reason string) error {
	table := schema.MarketMintAttempt
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = COALESCE($3, %s), %s = $4, %s = NOW()
		WHERE %s = $1
	`,
		table.Table,
		table.Status, table.TokenSeriesID, table.TokenSeriesID, table.Error, table.UpdatedAt,
		table.ID,
	)

	result, err := store.pool.Exec(context, query, attemptID, status, tokenSeriesID, reason)
	if err != nil {
		return dberr.Wrap(err, "update_mint_attempt")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Mint attempt")
	}

	return nil
}

/*
Persist writes the outcome of a successful mint.

Description: Runs in a single transaction. The series row, the chapter with
its pages (chapters only) and the attempt status change commit together or
not at all.
*/
func (store *PostgresStore) Persist(context context.Context, request PersistRequest) error {
	return postgres.WithTx(context, store.pool, func(tx pgx.Tx) error {

		if err := insertSeries(context, tx, request.Record); err != nil {
			return err
		}

		if request.Chapter != nil {
			if err := comic.SaveChapter(context, tx, request.Chapter, request.Replace); err != nil {
				return err
			}
		}

		table := schema.MarketMintAttempt
		query := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = $3, %s = NULL, %s = NOW()
			WHERE %s = $1
		`,
			table.Table,
			table.Status, table.TokenSeriesID, table.Error, table.UpdatedAt,
			table.ID,
		)

		result, err := tx.Exec(context, query, request.AttemptID, AttemptMinted, request.Record.TokenSeriesID)
		if err != nil {
			return dberr.Wrap(err, "mark_attempt_minted")
		}
		if result.RowsAffected() == 0 {
			return apperr.NotFound("Mint attempt")
		}

		return nil
	})
}

func insertSeries(context context.Context, tx pgx.Tx, record *Record) error {
	table := schema.MarketTokenSeries
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)
	`,
		table.Table,
		table.TokenSeriesID, table.Metadata, table.Price, table.CreatorID,
		table.Royalty, table.ComicID, table.ChapterID, table.CreatedAt,
	)

	_, err := tx.Exec(context, query,
		record.TokenSeriesID, record.Metadata, record.Price, record.CreatorID,
		record.Royalty, record.ComicID, record.ChapterID, record.CreatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict(fmt.Sprintf("Token series %s already recorded", record.TokenSeriesID))
	}

	return dberr.Wrap(err, "insert_token_series")
}

// ListAttempts returns attempts with the given status, oldest first.
func (store *PostgresStore) ListAttempts(context context.Context, status AttemptStatus, skip, limit int) ([]*MintAttempt, error) {
	table := schema.MarketMintAttempt
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		strings.Join(table.Columns(), ", "), table.Table,
		table.Status,
		table.CreatedAt,
	)

	rows, err := store.pool.Query(context, query, status, limit, skip)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mint_attempts")
	}

	attempts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*MintAttempt, error) {
		var attempt MintAttempt
		err := row.Scan(
			&attempt.ID, &attempt.Kind, &attempt.ComicID, &attempt.ChapterID, &attempt.Reference,
			&attempt.Params, &attempt.Status, &attempt.TokenSeriesID, &attempt.Error,
			&attempt.CreatedAt, &attempt.UpdatedAt,
		)
		return &attempt, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_mint_attempts")
	}

	return attempts, nil
}

/*
ListSeries returns series matching filter, newest first.

Description: A chapter series is one with a chapter id; a collectible has none.
*/
func (store *PostgresStore) ListSeries(context context.Context, filter SeriesFilter, skip, limit int) ([]*Record, error) {
	table := schema.MarketTokenSeries

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s, %s::text, %s, %s, %s, %s, %s
		FROM %s
		WHERE TRUE
	`,
		table.TokenSeriesID, table.Metadata, table.Price, table.CreatorID,
		table.Royalty, table.ComicID, table.ChapterID, table.CreatedAt,
		table.Table,
	))

	if filter.ComicID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.ComicID, argID))
		args = append(args, filter.ComicID)
		argID++
	}
	if filter.TokenSeriesID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.TokenSeriesID, argID))
		args = append(args, filter.TokenSeriesID)
		argID++
	}
	switch filter.Kind {
	case KindChapter:
		queryBuilder.WriteString(fmt.Sprintf(" AND %s IS NOT NULL", table.ChapterID))
	case KindCollectible:
		queryBuilder.WriteString(fmt.Sprintf(" AND %s IS NULL", table.ChapterID))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", table.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, skip)

	rows, err := store.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_token_series")
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Record, error) {
		var record Record
		err := row.Scan(
			&record.TokenSeriesID, &record.Metadata, &record.Price, &record.CreatorID,
			&record.Royalty, &record.ComicID, &record.ChapterID, &record.CreatedAt,
		)
		return &record, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_token_series")
	}

	return records, nil
}

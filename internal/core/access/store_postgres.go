// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/database/schema"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/dberr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
)

// # PostgreSQL Store

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed holdings store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListTokens returns tokens matching filter, lowest chapter first.
func (store *PostgresStore) ListTokens(context context.Context, filter TokenFilter, skip, limit int) ([]*Token, error) {
	query, args := tokensQuery(filter, skip, limit)

	rows, err := store.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tokens")
	}

	tokens, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Token, error) {
		var token Token
		err := row.Scan(
			&token.TokenID, &token.TokenSeriesID, &token.OwnerID, &token.ComicID,
			&token.ChapterID, &token.Metadata, &token.UpdatedAt,
		)
		return &token, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_tokens")
	}

	return tokens, nil
}

// tokensQuery builds the listing. Collectibles (no chapter) sort last.
func tokensQuery(filter TokenFilter, skip, limit int) (string, []any) {
	table := schema.MarketToken

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE TRUE
	`, strings.Join(table.Columns(), ", "), table.Table))

	if filter.ComicID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.ComicID, argID))
		args = append(args, filter.ComicID)
		argID++
	}
	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC NULLS LAST, %s ASC", table.ChapterID, table.TokenID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, skip)

	return queryBuilder.String(), args
}

/*
HasAccess reports whether accountID may read the chapter.

Description: The grant must list a token the account still holds, so a
token sold since the last sync of the previous owner stops counting as
soon as the buyer syncs.
*/
func (store *PostgresStore) HasAccess(context context.Context, accountID, comicID string, chapterID int) (bool, error) {
	grant, token := schema.MarketAccess, schema.MarketToken
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s a
			JOIN %s t ON t.%s = ANY(a.%s) AND t.%s = a.%s
			WHERE a.%s = $1 AND a.%s = $2 AND a.%s = $3
		)
	`,
		grant.Table, token.Table,
		token.TokenID, grant.TokenIDs, token.OwnerID, grant.AccountID,
		grant.AccountID, grant.ComicID, grant.ChapterID,
	)

	var allowed bool
	if err := store.pool.QueryRow(context, query, accountID, comicID, chapterID).Scan(&allowed); err != nil {
		return false, dberr.Wrap(err, "has_access")
	}

	return allowed, nil
}

// SeriesOrigins looks the series ids up in market.tokenseries.
func (store *PostgresStore) SeriesOrigins(context context.Context, seriesIDs []string) (map[string]SeriesOrigin, error) {
	table := schema.MarketTokenSeries
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		table.TokenSeriesID, table.ComicID, table.ChapterID, table.Table, table.TokenSeriesID,
	)

	rows, err := store.pool.Query(context, query, seriesIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "series_origins")
	}
	defer rows.Close()

	origins := make(map[string]SeriesOrigin, len(seriesIDs))
	for rows.Next() {
		var seriesID string
		var origin SeriesOrigin
		if err := rows.Scan(&seriesID, &origin.ComicID, &origin.ChapterID); err != nil {
			return nil, dberr.Wrap(err, "scan_series_origin")
		}
		origins[seriesID] = origin
	}

	return origins, dberr.Wrap(rows.Err(), "series_origins")
}

/*
ReplaceHoldings rewrites ownerID's tokens and grants in one transaction.

Description: Syncs of the same owner are serialised by a transaction-scoped
advisory lock. Tokens are upserted, so an edition still recorded under its
previous owner is taken over.
*/
func (store *PostgresStore) ReplaceHoldings(context context.Context, ownerID string, tokens []*Token, grants []Grant) error {
	token, grant := schema.MarketToken, schema.MarketAccess

	return postgres.WithTx(context, store.pool, func(tx pgx.Tx) error {

		if _, err := tx.Exec(context, `SELECT pg_advisory_xact_lock(hashtext($1))`, ownerID); err != nil {
			return dberr.Wrap(err, "lock_holdings")
		}

		deleteTokens := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, token.Table, token.OwnerID)
		if _, err := tx.Exec(context, deleteTokens, ownerID); err != nil {
			return dberr.Wrap(err, "clear_tokens")
		}

		deleteGrants := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, grant.Table, grant.AccountID)
		if _, err := tx.Exec(context, deleteGrants, ownerID); err != nil {
			return dberr.Wrap(err, "clear_access")
		}

		insertToken := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (%s) DO UPDATE SET
				%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		`,
			token.Table,
			token.TokenID, token.TokenSeriesID, token.OwnerID, token.ComicID,
			token.ChapterID, token.Metadata, token.UpdatedAt,
			token.TokenID,
			token.OwnerID, token.OwnerID, token.Metadata, token.Metadata, token.UpdatedAt, token.UpdatedAt,
		)

		insertGrant := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s)
			VALUES ($1, $2, $3, $4)
		`,
			grant.Table,
			grant.AccountID, grant.ComicID, grant.ChapterID, grant.TokenIDs,
		)

		batch := &pgx.Batch{}
		for _, t := range tokens {
			batch.Queue(insertToken,
				t.TokenID, t.TokenSeriesID, ownerID, t.ComicID, t.ChapterID, t.Metadata, t.UpdatedAt,
			)
		}
		for _, g := range grants {
			batch.Queue(insertGrant, ownerID, g.ComicID, g.ChapterID, g.TokenIDs)
		}

		result := tx.SendBatch(context, batch)
		defer result.Close()

		for i := 0; i < batch.Len(); i++ {
			if _, err := result.Exec(); err != nil {
				return dberr.Wrap(err, "write_holdings")
			}
		}

		return nil
	})
}

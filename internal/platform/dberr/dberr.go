// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Errors already classified upstream pass through untouched
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Resource")
	}

	// 2. Unique violations surface as conflicts
	if IsUniqueViolation(err) {
		conflict := apperr.Conflict("Resource already exists")
		conflict.Cause = fmt.Errorf("postgres: %s: %w", action, err)
		return conflict
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}

// IsUniqueViolation reports whether err is a Postgres SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

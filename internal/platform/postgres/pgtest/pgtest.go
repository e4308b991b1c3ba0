// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package pgtest opens a migrated PostgreSQL pool for store tests.

Tests using it are skipped unless TEST_DATABASE_URL points at a disposable
database. Migrations from data/migrations are applied once per test binary.
*/
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/migration"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Open returns a pool on the test database, closed when t ends.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	migrateOnce.Do(func() {
		migrateErr = migration.RunUp(dsn, migrationsPath(), logger)
	})
	if migrateErr != nil {
		t.Fatalf("pgtest: migrate: %v", migrateErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("pgtest: connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// migrationsPath resolves data/migrations from this file's location.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}

// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Command api is the entry point for the Paras comic HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the ledger, content store and signature verifier.
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/api"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/access"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comment"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/publish"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/config"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/migration"
	pgstore "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
	redisstore "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/redis"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/sec"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/storage"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("contract_id", cfg.Ledger.ContractID),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Ledger, Content Store & Signatures ─────────────────────────────
	deposit, err := ledger.ParseAmount(cfg.Ledger.Deposit)
	must(log, err, "parse ledger deposit")

	ledgerClient := ledger.NewRPCClient(cfg.Ledger.NodeURL, cfg.Ledger.RelayerURL)
	redisCache := storage.NewRedisCache(rdb)

	verifier := sec.NewVerifier(
		sec.NewCachedKeyChecker(ledgerClient, redisCache, constants.AccessKeyCacheTTL, log),
		cfg.IsPublisher,
	)

	contentStore := storage.NewCachedStore(
		storage.NewIPFSClient(storage.IPFSOptions{
			APIURL:     cfg.Storage.APIURL,
			APIKey:     cfg.Storage.APIKey,
			APISecret:  cfg.Storage.APISecret,
			GatewayURL: cfg.Storage.GatewayURL,
		}),
		redisCache,
		cfg.Storage.CacheTTL,
		log,
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	accessService := access.NewService(access.NewPostgresStore(pool), ledgerClient, cfg.Ledger.ContractID, log)
	comicService := comic.NewService(comic.NewPostgresRepository(pool), accessService, contentStore, log)

	publishService := publish.NewService(
		publish.NewPostgresStore(pool),
		comicService,
		contentStore,
		ledgerClient,
		ledger.Retry{
			Attempts: cfg.Ledger.RetryAttempts,
			MinDelay: cfg.Ledger.RetryMinDelay,
			MaxDelay: cfg.Ledger.RetryMaxDelay,
		},
		publish.Options{
			OwnerID:    cfg.Ledger.OwnerID,
			ContractID: cfg.Ledger.ContractID,
			Gas:        cfg.Ledger.Gas,
			Deposit:    deposit,
		},
		log,
	)

	commentService := comment.NewService(comment.NewPostgresStore(pool), comicService, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Comic:     comic.NewHandler(comicService),
		Access:    access.NewHandler(accessService),
		Publish:   publish.NewHandler(publishService),
		Comment:   comment.NewHandler(commentService),
		Content:   storage.NewHandler(contentStore),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// In-flight publishes may still be inside the ledger retry loop.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

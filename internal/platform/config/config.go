// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file,
when present, is loaded first with 'joho/godotenv' and never overrides variables
already set in the process environment.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"9090"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	Ledger  LedgerConfig
	Storage StorageConfig

	// PublisherAccounts may mint chapters and collectibles.
	PublisherAccounts []string `env:"PUBLISHER_ACCOUNTS" envSeparator:","`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// LedgerConfig describes the remote contract and the mint retry budget.
type LedgerConfig struct {
	NodeURL    string `env:"LEDGER_NODE_URL"    envDefault:"https://rpc.testnet.near.org"`
	RelayerURL string `env:"LEDGER_RELAYER_URL,required"`
	OwnerID    string `env:"LEDGER_OWNER_ID,required"`
	ContractID string `env:"LEDGER_CONTRACT_ID,required"`
	Gas        string `env:"LEDGER_GAS"         envDefault:"50000000000000"`
	Deposit    string `env:"LEDGER_DEPOSIT"     envDefault:"0.1"`

	RetryAttempts int           `env:"LEDGER_RETRY_ATTEMPTS" envDefault:"100"`
	RetryMinDelay time.Duration `env:"LEDGER_RETRY_MIN_DELAY" envDefault:"500ms"`
	RetryMaxDelay time.Duration `env:"LEDGER_RETRY_MAX_DELAY" envDefault:"1s"`
}

// StorageConfig points at the IPFS HTTP API and the public gateway.
type StorageConfig struct {
	APIURL     string        `env:"STORAGE_API_URL,required"`
	APIKey     string        `env:"STORAGE_API_KEY"`
	APISecret  string        `env:"STORAGE_API_SECRET"`
	GatewayURL string        `env:"STORAGE_GATEWAY_URL" envDefault:"https://ipfs.fleek.co"`
	CacheTTL   time.Duration `env:"STORAGE_CACHE_TTL"   envDefault:"24h"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Optional dotenv file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env file: %w", err)
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.Ledger.RetryAttempts < 1 {
		return nil, fmt.Errorf("config: LEDGER_RETRY_ATTEMPTS must be positive, got %d", cfg.Ledger.RetryAttempts)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsPublisher reports whether accountID may publish series.
func (c *Config) IsPublisher(accountID string) bool {
	return slices.Contains(c.PublisherAccounts, accountID)
}

// AllowedOrigins lists origins accepted by CORS in addition to the paras.id domains.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

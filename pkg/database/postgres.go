// Package database manages the PostgreSQL connection pool and schema.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/config"
	"github.com/prospera-ai/prospera-engine/pkg/logging"
	"github.com/prospera-ai/prospera-engine/pkg/retry"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	*pgxpool.Pool
}

// Connect creates a connection pool from the database configuration.
// Connection establishment is retried with backoff: on a cold start the
// database container is often a few seconds behind the service.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	connStr := cfg.ConnectionString()

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 25
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	logger.Info("connecting to database",
		zap.String("connection", logging.SanitizeConnectionString(connStr)))

	pool, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*pgxpool.Pool, error) {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, connectError(err)
	}

	return &DB{Pool: pool}, nil
}

// connectError strips credentials from the underlying error before it can
// reach logs or API responses.
func connectError(err error) error {
	return fmt.Errorf("failed to connect to database: %s", logging.SanitizeError(err))
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// EnsureSchema creates the tables the engine needs if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS company_profiles (
			company_id UUID PRIMARY KEY,
			company_name TEXT NOT NULL,
			industry TEXT NOT NULL DEFAULT '',
			business_type TEXT NOT NULL DEFAULT '',
			company_size TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			services TEXT[] NOT NULL DEFAULT '{}',
			target_markets TEXT[] NOT NULL DEFAULT '{}',
			key_challenges TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS opportunities (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			opportunity_type TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL,
			opportunity_id UUID NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
			relevance_score DOUBLE PRECISION NOT NULL,
			reasoning TEXT NOT NULL DEFAULT '',
			key_match_factors TEXT[] NOT NULL DEFAULT '{}',
			actionability TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			error_kind TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_company_score
			ON matches (company_id, relevance_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_opportunities_type
			ON opportunities (opportunity_type)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}

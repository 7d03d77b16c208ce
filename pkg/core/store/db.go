// Package store persists analysis snapshots and watchlist state in Postgres.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool from the DATABASE_URL environment
// variable and ensures the schema exists.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}
		err = ensureSchema(ctx, pool)
	})
	return err
}

func ensureSchema(ctx context.Context, p *pgxpool.Pool) error {
	schema := `
		CREATE TABLE IF NOT EXISTS analysis_snapshots (
			corp_code TEXT PRIMARY KEY,
			corp_name TEXT,
			report_json JSONB,
			updated_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS watchlist_state (
			id INT PRIMARY KEY DEFAULT 1,
			state_json JSONB,
			updated_at TIMESTAMPTZ
		);
	`
	if _, err := p.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the pgx connection pool shared by the repositories and the metric
// SQL function calls.
type DB struct {
	*pgxpool.Pool
}

// Pool sizing used when the configuration does not set a limit. The service
// is read-mostly; connections live long and idle cheaply.
const (
	defaultMaxConns        = 25
	defaultConnMaxLifetime = time.Hour
	defaultConnMaxIdleTime = 30 * time.Minute
)

// Connect opens a connection pool for the given connection string, caps it
// at maxConns, and verifies the database answers before returning. A
// maxConns of zero or less falls back to defaultMaxConns.
func Connect(ctx context.Context, connString string, maxConns int32) (*DB, error) {
	cfg, err := poolConfig(connString, maxConns)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func poolConfig(connString string, maxConns int32) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnLifetime = defaultConnMaxLifetime
	cfg.MaxConnIdleTime = defaultConnMaxIdleTime
	return cfg, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

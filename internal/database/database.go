// Package database opens the SQL backends behind the document store and
// applies their embedded schema migrations.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig sizes the PostgreSQL connection pool. Zero values keep the pgx defaults.
type PoolConfig struct {
	MaxConns    int
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
}

// NewPool connects to PostgreSQL and pings it once before returning
func NewPool(ctx context.Context, connString string, pc PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if pc.MaxConns > 0 {
		config.MaxConns = int32(min(pc.MaxConns, math.MaxInt32))
		config.MinConns = min(DefaultMinConnections, config.MaxConns)
	}
	if pc.MaxConnIdle > 0 {
		config.MaxConnIdleTime = pc.MaxConnIdle
	}
	if pc.MaxConnLife > 0 {
		config.MaxConnLifetime = pc.MaxConnLife
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Info(LogMsgSuccessfullyConnectedToDatabase, "driver", "postgres", "max_conns", config.MaxConns)
	return pool, nil
}

// Package postgres keeps the session document in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/config"
)

// Connect opens a pool sized for a single short-lived CLI invocation and
// verifies the server answers before returning.
//
// Precondition: ctx should carry the state timeout; Connect adds none.
// Postcondition: the caller owns the pool and must Close it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return pool, nil
}

// Open connects to the configured database and returns the StateStore for
// cfg.State.Key. The connect is bounded by cfg.State.Timeout.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*StateStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.State.Timeout)
	defer cancel()
	pool, err := Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("postgres state backend",
		zap.String("host", cfg.Database.Host),
		zap.String("key", cfg.State.Key),
	)
	return NewStateStore(pool, cfg.State.Key, logger), nil
}

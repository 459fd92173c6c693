package gameserver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/config"
	"github.com/cory-johannsen/wasteland/internal/storage"
	"github.com/cory-johannsen/wasteland/internal/storage/file"
	"github.com/cory-johannsen/wasteland/internal/storage/postgres"
	redisstore "github.com/cory-johannsen/wasteland/internal/storage/redis"
)

// OpenStore connects the State Store backend named by cfg.Backend.
//
// Postcondition: the caller owns the returned Store and must Close it.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.State.Backend {
	case config.BackendFile, "":
		return file.New(cfg.State.Path, logger), nil
	case config.BackendPostgres:
		store, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, cfg.State.Timeout)
		defer cancel()
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Debug("redis state backend", zap.String("addr", cfg.Redis.Addr))
		return redisstore.New(client, cfg.State.Key, logger), nil
	}
	return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
}

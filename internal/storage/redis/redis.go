// Package redis stores the session document in Redis. The backup lives at
// "<key>.bak" and both keys are written in one MULTI/EXEC transaction.
package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/config"
	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/storage"
)

// BackupSuffix is appended to the document key to name the backup key.
const BackupSuffix = ".bak"

// Client is the subset of Redis the store needs; goredis.UniversalClient
// satisfies it.
type Client interface {
	goredis.Cmdable
	Close() error
}

// Store is a Redis-backed storage.Store.
type Store struct {
	client Client
	key    string
	logger *zap.Logger
}

// NewClient connects to the configured Redis server.
//
// Postcondition: Returns a client that answered PING, or a non-nil error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to reach redis at %s", cfg.Addr)
	}
	return client, nil
}

// New creates a Store keeping the document at key.
func New(client Client, key string, logger *zap.Logger) *Store {
	return &Store{client: client, key: key, logger: logger}
}

// BackupKey returns the backup key.
func (s *Store) BackupKey() string { return s.key + BackupSuffix }

// Load implements storage.Store.
func (s *Store) Load(ctx context.Context) (*session.State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, errors.NotInitialized()
		}
		return nil, errors.Wrapf(err, "failed to get %s", s.key)
	}
	return storage.Decode(data)
}

// Save implements storage.Store.
func (s *Store) Save(ctx context.Context, state *session.State) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	prev, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil && err != goredis.Nil {
		return errors.Wrapf(err, "failed to get %s", s.key)
	}

	pipe := s.client.TxPipeline()
	if err == nil {
		pipe.Set(ctx, s.BackupKey(), prev, 0)
	}
	pipe.Set(ctx, s.key, data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to save %s", s.key)
	}
	s.logger.Debug("saved state", zap.String("key", s.key), zap.Int("bytes", len(data)))
	return nil
}

// Restore implements storage.Store.
func (s *Store) Restore(ctx context.Context) (*session.State, error) {
	data, err := s.client.Get(ctx, s.BackupKey()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, storage.ErrNoBackup()
		}
		return nil, errors.Wrapf(err, "failed to get %s", s.BackupKey())
	}
	st, err := storage.Decode(data)
	if err != nil {
		return nil, storage.ErrCorruptBackup(err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to restore %s", s.key)
	}
	s.logger.Info("restored state from backup", zap.String("key", s.BackupKey()))
	return st, nil
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return s.client.Close()
}

package postgres

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/storage"
)

// StateStore keeps one session document per key in the session_state table.
type StateStore struct {
	pool   *pgxpool.Pool
	key    string
	logger *zap.Logger
}

// NewStateStore creates a StateStore for the row identified by key.
//
// Precondition: pool must be open and the session_state migration applied.
func NewStateStore(pool *pgxpool.Pool, key string, logger *zap.Logger) *StateStore {
	return &StateStore{pool: pool, key: key, logger: logger}
}

// Load implements storage.Store.
func (s *StateStore) Load(ctx context.Context) (*session.State, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM session_state WHERE id = $1`, s.key,
	).Scan(&doc)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotInitialized()
		}
		return nil, errors.Wrap(err, "querying session state")
	}
	return storage.Decode(doc)
}

// Save implements storage.Store. The previous document moves into backup in
// the same statement that writes the new one.
func (s *StateStore) Save(ctx context.Context, state *session.State) error {
	doc, err := storage.Encode(state)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO session_state (id, document, backup, updated_at)
		VALUES ($1, $2, NULL, NOW())
		ON CONFLICT (id) DO UPDATE
		SET backup = session_state.document,
		    document = EXCLUDED.document,
		    updated_at = NOW()`,
		s.key, doc,
	)
	if err != nil {
		return errors.Wrap(err, "saving session state")
	}
	s.logger.Debug("saved state", zap.String("key", s.key), zap.Int("bytes", len(doc)))
	return nil
}

// Restore implements storage.Store. The backup row is locked, decoded and
// only then copied over the document.
func (s *StateStore) Restore(ctx context.Context) (*session.State, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "beginning restore")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var backup []byte
	err = tx.QueryRow(ctx,
		`SELECT backup FROM session_state WHERE id = $1 FOR UPDATE`, s.key,
	).Scan(&backup)
	if err != nil && !stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrap(err, "querying session backup")
	}
	if len(backup) == 0 {
		return nil, storage.ErrNoBackup()
	}
	st, err := storage.Decode(backup)
	if err != nil {
		return nil, storage.ErrCorruptBackup(err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE session_state SET document = backup, updated_at = NOW() WHERE id = $1`, s.key,
	); err != nil {
		return nil, errors.Wrap(err, "restoring session backup")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "committing restore")
	}
	s.logger.Info("restored state from backup", zap.String("key", s.key))
	return st, nil
}

// Ping reports whether the database answers.
func (s *StateStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return errors.Wrap(err, "pinging session database")
	}
	return nil
}

// Close implements storage.Store.
func (s *StateStore) Close() error {
	s.pool.Close()
	return nil
}

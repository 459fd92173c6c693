// Package storage defines the session state store and the document codec
// shared by its backends.
package storage

//go:generate mockgen -destination=mocks/mock_store.go -package=storagemocks github.com/cory-johannsen/wasteland/internal/storage Store

import (
	"context"
	"encoding/json"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
)

// Store persists one session document plus a single backup generation.
type Store interface {
	// Load returns the current document.
	// Returns errors.NotInitialized when no document exists.
	Load(ctx context.Context) (*session.State, error)

	// Save replaces the current document, first preserving the previous one
	// as the backup. The write is all-or-nothing.
	Save(ctx context.Context, state *session.State) error

	// Restore promotes the backup to the current document and returns it.
	// Returns errors.NotFound when no backup exists.
	Restore(ctx context.Context) (*session.State, error)

	// Close releases backend resources.
	Close() error
}

// Encode renders state as the indented JSON document every backend stores.
func Encode(state *session.State) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode state")
	}
	return data, nil
}

// Decode parses a stored document and fills in missing defaults.
func Decode(data []byte) (*session.State, error) {
	var st session.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, "state document is corrupted")
	}
	st.Normalize()
	return &st, nil
}

// ErrNoBackup is returned by Restore when there is nothing to restore.
func ErrNoBackup() *errors.Error {
	return errors.NotFoundf("No backup file found")
}

// ErrCorruptBackup is returned by Restore when the backup cannot be decoded.
func ErrCorruptBackup(cause error) *errors.Error {
	return errors.Wrap(cause, "Backup file is corrupted, manual intervention required")
}

// Package file stores the session document as JSON on a filesystem, with the
// previous document kept beside it as <path>.bak.
package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/storage"
)

// BackupSuffix is appended to the document path to name the backup.
const BackupSuffix = ".bak"

// Store is a filesystem-backed storage.Store.
type Store struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// New creates a Store for the document at path on the host filesystem.
func New(path string, logger *zap.Logger) *Store {
	return NewWithFs(afero.NewOsFs(), path, logger)
}

// NewWithFs creates a Store on an arbitrary filesystem.
//
// Precondition: path must be non-empty.
func NewWithFs(fs afero.Fs, path string, logger *zap.Logger) *Store {
	return &Store{fs: fs, path: path, logger: logger}
}

// Path returns the document path.
func (s *Store) Path() string { return s.path }

// BackupPath returns the backup path.
func (s *Store) BackupPath() string { return s.path + BackupSuffix }

// Load implements storage.Store.
func (s *Store) Load(ctx context.Context) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load cancelled")
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotInitialized()
		}
		return nil, errors.Wrapf(err, "failed to read %s", s.path)
	}
	return storage.Decode(data)
}

// Save implements storage.Store. The current document is copied to the
// backup before the new one replaces it through a temp file and rename.
func (s *Store) Save(ctx context.Context, state *session.State) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "save cancelled")
	}
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	prev, err := afero.ReadFile(s.fs, s.path)
	switch {
	case err == nil:
		if err := s.writeAtomic(s.BackupPath(), prev); err != nil {
			return err
		}
		s.logger.Debug("backed up state", zap.String("path", s.BackupPath()))
	case !os.IsNotExist(err):
		return errors.Wrapf(err, "failed to read %s", s.path)
	}

	if err := s.writeAtomic(s.path, data); err != nil {
		return err
	}
	s.logger.Debug("saved state", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}

// Restore implements storage.Store.
func (s *Store) Restore(ctx context.Context) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "restore cancelled")
	}
	data, err := afero.ReadFile(s.fs, s.BackupPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNoBackup()
		}
		return nil, errors.Wrapf(err, "failed to read %s", s.BackupPath())
	}
	st, err := storage.Decode(data)
	if err != nil {
		return nil, storage.ErrCorruptBackup(err)
	}
	if err := s.writeAtomic(s.path, data); err != nil {
		return nil, err
	}
	s.logger.Info("restored state from backup", zap.String("path", s.BackupPath()))
	return st, nil
}

// Close implements storage.Store.
func (s *Store) Close() error { return nil }

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(name)
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(name)
		return errors.Wrapf(err, "failed to sync %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(name)
		return errors.Wrapf(err, "failed to close %s", path)
	}
	if err := s.fs.Rename(name, path); err != nil {
		_ = s.fs.Remove(name)
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

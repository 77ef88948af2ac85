package storage

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/spf13/afero"
)

// FileStore keeps one file per key in a directory of an afero filesystem.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a store under dir on fs, creating the directory if needed.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage,
			"Cannot create state directory "+dir,
			"Check directory permissions or pass --state-dir")
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// NewOSFileStore creates a FileStore on the real filesystem.
func NewOSFileStore(dir string) (*FileStore, error) {
	return NewFileStore(afero.NewOsFs(), dir)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get reads the value stored for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.WrapWithCode(err, errors.ErrStorage,
			"Failed to read "+key, "")
	}
	return string(data), true, nil
}

// Set writes value for key. The write goes to a temp file first and is
// renamed into place so readers never see a partial value.
func (s *FileStore) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrStorage,
			"Failed to write "+key, "Check free disk space and permissions")
	}
	if err := s.fs.Rename(tmp, s.path(key)); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.WrapWithCode(err, errors.ErrStorage,
			"Failed to write "+key, "Check free disk space and permissions")
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *FileStore) Remove(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrStorage,
			"Failed to remove "+key, "")
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error {
	return nil
}

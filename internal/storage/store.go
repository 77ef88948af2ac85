// Package storage provides the browser local-storage equivalent for xmdash:
// a small string key/value store that survives restarts.
//
// Two backends are available: a file-per-key store on an afero filesystem
// (the default) and a single-table SQLite database.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/xmdash/internal/errors"
)

// Keys persisted by the dashboard.
const (
	KeyEndpoint    = "xmrig_api_url"
	KeyHistory     = "xmrig_dashboard_history"
	KeyRefreshRate = "xmrig_refresh_rate"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a synchronous string key/value store.
// Get reports ok=false for keys that were never set or have been removed.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open opens the store backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewOSFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "state.db"))
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown store backend %q", backend),
			"Use --store file or --store sqlite")
	}
}

// DefaultDir returns the per-user state directory:
// $XDG_STATE_HOME/xmdash, falling back to ~/.local/state/xmdash.
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "xmdash")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "xmdash")
	}
	return filepath.Join(home, ".local", "state", "xmdash")
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return errors.New(errors.ErrStorage,
			fmt.Sprintf("Invalid storage key %q", key),
			"Keys must be non-empty and must not contain path separators")
	}
	return nil
}

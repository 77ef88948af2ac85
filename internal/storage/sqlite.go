package storage

import (
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/xmdash/internal/errors"

	_ "modernc.org/sqlite"
)

// sqliteDSNOptions are applied by the driver to every new connection.
const sqliteDSNOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// SQLiteStore keeps all keys in a single kv table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.WrapWithCode(os.ErrInvalid, errors.ErrStorage,
			"Empty SQLite database path", "")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage,
			"Cannot create state directory "+filepath.Dir(dbPath),
			"Check directory permissions or pass --state-dir")
	}

	db, err := sql.Open("sqlite", dbPath+sqliteDSNOptions)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage, "Cannot open "+dbPath, "")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.ErrStorage, "Cannot open "+dbPath, "")
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at_unix INTEGER NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.ErrStorage, "Cannot initialize "+dbPath, "")
	}
	return &SQLiteStore{db: db}, nil
}

// Get reads the value stored for key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapWithCode(err, errors.ErrStorage, "Failed to read "+key, "")
	}
	return value, true, nil
}

// Set upserts value for key.
func (s *SQLiteStore) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at_unix) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at_unix = excluded.updated_at_unix
	`, key, value, time.Now().Unix())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStorage, "Failed to write "+key, "")
	}
	return nil
}

// Remove deletes key.
func (s *SQLiteStore) Remove(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.WrapWithCode(err, errors.ErrStorage, "Failed to remove "+key, "")
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite storage backend
// For production: uses the user cache directory (see NewDefaultSQLite)
// For testing: use ":memory:" as dbPath
func NewSQLite(dbPath string) (*SQLiteStorage, error) {
	// Create directory for file-based databases
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives only as long as its single connection
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Set pragmas for performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, err
	}

	s := &SQLiteStorage{db: db}
	return s, s.migrate()
}

// DefaultPath returns <user cache dir>/plotstyle/styles.db
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "plotstyle", "styles.db")
}

// NewDefaultSQLite creates storage at DefaultPath
func NewDefaultSQLite() (*SQLiteStorage, error) {
	return NewSQLite(DefaultPath())
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

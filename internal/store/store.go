// Package store persists generated posts in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// ErrNotFound is returned when no post matches the given ID.
var ErrNotFound = errors.New("post not found")

// Store wraps the SQLite handle behind the post persistence API.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and applies
// pending migrations. Pragmas ride on the connection string so every
// pooled connection gets them.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(path, 0600)

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS posts (
		  id             TEXT PRIMARY KEY,
		  era            TEXT NOT NULL,
		  location       TEXT NOT NULL,
		  character_type TEXT NOT NULL,
		  creativity     INTEGER NOT NULL,
		  platform       TEXT NOT NULL,
		  username       TEXT NOT NULL,
		  handle         TEXT,
		  verified       INTEGER NOT NULL,
		  post_date      TEXT NOT NULL,
		  post_location  TEXT NOT NULL,
		  title          TEXT,
		  content        TEXT NOT NULL,
		  hashtags_json  TEXT,
		  avatar         TEXT NOT NULL,
		  image          TEXT,
		  likes          TEXT NOT NULL,
		  comments       TEXT NOT NULL,
		  retweets       TEXT,
		  replies        TEXT,
		  subreddit      TEXT,
		  upvotes        TEXT,
		  awards_json    TEXT,
		  public         INTEGER NOT NULL DEFAULT 0,
		  created_at     INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_posts_created
		ON posts(created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_posts_public_created
		ON posts(created_at DESC)
		WHERE public = 1;

		CREATE INDEX IF NOT EXISTS idx_posts_platform
		ON posts(platform, created_at DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

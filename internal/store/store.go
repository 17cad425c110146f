package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// PlaceholderOwner is the single-tenant stand-in for an authenticated user.
// A multi-user deployment replaces it with a real principal id.
var PlaceholderOwner = uuid.Nil

type Store struct {
	db    *sql.DB
	owner uuid.UUID
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// scopes every subsequent read and write to owner.
func New(dbPath string, owner uuid.UUID) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, owner: owner}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing, scoped to the
// placeholder owner.
func NewMemory() (*Store, error) {
	return New(":memory:", PlaceholderOwner)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Owner returns the id every row in this store is scoped to.
func (s *Store) Owner() uuid.UUID {
	return s.owner
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS applications (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id          TEXT NOT NULL,
		title             TEXT NOT NULL,
		type              TEXT NOT NULL DEFAULT 'internship',
		status            TEXT NOT NULL DEFAULT 'planned',
		announcement_date TEXT,
		deadline          TEXT,
		event_date        TEXT,
		notes             TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_applications_owner ON applications(owner_id);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'other',
		deadline    TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_events_owner    ON events(owner_id);
	CREATE INDEX IF NOT EXISTS idx_events_deadline ON events(deadline);

	CREATE TABLE IF NOT EXISTS todos (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id     TEXT NOT NULL,
		title        TEXT NOT NULL,
		type         TEXT NOT NULL DEFAULT 'medium',
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id         TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 30,
		started_at       TEXT NOT NULL,
		created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_owner   ON focus_sessions(owner_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON focus_sessions(started_at);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/kokpit/kokpit.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "kokpit", "kokpit.db"), nil
}

// Package store persists saved commit messages in a SQLite database under
// the user's cache directory.
//
// Every operation opens its own connection, acts, and closes it. Typical
// usage is one short-lived process per hook run, so there is no cross-call
// state worth caching; durability comes from committing each save or delete
// as its own transaction before the process exits.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// createdFormat is how timestamps are stored in the database.
const createdFormat = time.RFC3339Nano

// SavedMessage is one preserved commit attempt.
type SavedMessage struct {
	// Repository is the absolute path of the repository root.
	Repository string
	// Branch is the checked-out branch name ("unknown" if undeterminable).
	Branch string
	// HookName labels the check that preserved the message. After
	// deduplication it may name several hooks joined with " and ".
	HookName string
	// Content is the normalized message text (comments and verbose
	// section already removed).
	Content string
	// Created is when the message was saved.
	Created time.Time
}

// Filter selects saved messages by identity. An empty field matches all
// values for that field; a zero Filter matches everything.
type Filter struct {
	Repository string
	Branch     string
	HookName   string
}

// Store provides durable storage for saved commit messages.
type Store struct {
	path string
}

// New returns a store backed by the SQLite database at path.
// The database file and schema are created lazily on first use.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// open opens a connection, applies pragmas, and ensures the schema exists.
// Callers must close the returned handle.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// ensureSchema creates the message table if it doesn't exist.
// Idempotent, safe to run on every open.
func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Save appends a new entry with the current timestamp. Prior entries for the
// same key are never overwritten; repeated failures accumulate until cleared.
func (s *Store) Save(ctx context.Context, repository, branch, hookName, content string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO message (repository, branch, hookname, content, created)
		VALUES (?, ?, ?, ?, ?)
	`, repository, branch, hookName, content, time.Now().UTC().Format(createdFormat))
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}

	return nil
}

// Query returns all entries matching the filter in insertion order.
func (s *Store) Query(ctx context.Context, f Filter) ([]SavedMessage, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := "SELECT repository, branch, hookname, content, created FROM message"
	where, args := f.clauses()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY rowid ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []SavedMessage
	for rows.Next() {
		var m SavedMessage
		var created string
		if err := rows.Scan(&m.Repository, &m.Branch, &m.HookName, &m.Content, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Created, err = time.Parse(createdFormat, created)
		if err != nil {
			return nil, fmt.Errorf("parse created timestamp %q: %w", created, err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// Remove deletes all entries matching the filter (AND semantics across
// provided fields). A zero filter clears the entire store.
func (s *Store) Remove(ctx context.Context, f Filter) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	query := "DELETE FROM message"
	where, args := f.clauses()
	if where != "" {
		query += " WHERE " + where
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove messages: %w", err)
	}

	return nil
}

// clauses builds the WHERE clause and arguments for the non-empty filter
// fields.
func (f Filter) clauses() (string, []any) {
	var parts []string
	var args []any
	if f.Repository != "" {
		parts = append(parts, "repository = ?")
		args = append(args, f.Repository)
	}
	if f.Branch != "" {
		parts = append(parts, "branch = ?")
		args = append(args, f.Branch)
	}
	if f.HookName != "" {
		parts = append(parts, "hookname = ?")
		args = append(args, f.HookName)
	}
	return strings.Join(parts, " AND "), args
}

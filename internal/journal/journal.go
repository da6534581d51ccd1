// Package journal records handled console requests in a local SQLite file.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlconsole/pkg/console"

	_ "modernc.org/sqlite" // sqlite driver
)

// DefaultPath is where the CLI keeps its journal unless configured otherwise.
const DefaultPath = ".sqlconsole/journal.db"

// Entry is one journaled request.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Action    string
	DSN       string
	Table     string
	Message   string
	Error     string
	Deleted   int64
	Duration  time.Duration
}

// Store implements console.Recorder on top of SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewStore creates a new journal store instance.
// If logger is nil, a discard logger is used.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Open opens (creating if needed) the journal at path and migrates it.
// Use ":memory:" for an in-memory journal.
func (s *Store) Open(path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create journal directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	// One connection keeps an in-memory journal alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping journal: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return err
	}
	s.logger.Debug("journal opened", slog.String("path", path))
	return nil
}

// Close closes the journal.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Record stores ev. It satisfies console.Recorder.
func (s *Store) Record(ctx context.Context, ev console.Event) error {
	if s.db == nil {
		return fmt.Errorf("journal not opened")
	}

	errText := ""
	if ev.Err != nil {
		errText = ev.Err.Error()
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, created_at, action, dsn, table_name, message, error, deleted, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), at.UTC(), string(ev.Action), ev.DSN, ev.Table, ev.Message, errText,
		ev.Deleted, ev.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("journal not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, action, dsn, table_name, message, error, deleted, duration_ms
		FROM entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Action, &e.DSN, &e.Table, &e.Message, &e.Error, &e.Deleted, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

var _ console.Recorder = (*Store)(nil)

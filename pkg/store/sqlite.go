package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	name     TEXT PRIMARY KEY,
	board    TEXT NOT NULL DEFAULT '',
	snapshot TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS saves_saved_at ON saves (saved_at DESC);
`

// SQLiteStore keeps saves in a single SQLite database. Snapshots are stored
// as JSON text.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and if needed creates) the database at path. The
// special path ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "create database directory")
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open sqlite database")
	}
	// One connection: an in-memory database exists per connection, and a CLI
	// never needs more.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "verify database connection")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create schema")
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (save *Save, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "sqlite", name, start, save, err) }()

	if err := errors.ValidateSaveName(name); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT name, board, snapshot, saved_at FROM saves WHERE name = ?`, name)
	save, err = scanSave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return save, err
}

func (s *SQLiteStore) Set(ctx context.Context, save *Save) (err error) {
	if err := checkSave(save); err != nil {
		return err
	}
	start := time.Now()
	defer func() { observeSave(ctx, "sqlite", save.Name, start, err) }()

	if save.SavedAt.IsZero() {
		save.SavedAt = time.Now().UTC()
	}
	snap, err := json.Marshal(save.Snapshot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal snapshot")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saves (name, board, snapshot, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET board = excluded.board, snapshot = excluded.snapshot, saved_at = excluded.saved_at`,
		save.Name, save.Board, string(snap), save.SavedAt.UnixNano())
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write save %s", save.Name)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSaveName(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE name = ?`, name); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete save %s", name)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, board, snapshot, saved_at FROM saves`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list saves")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		save, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(save))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list saves")
	}
	sortSummaries(out)
	return out, nil
}

func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "close sqlite database")
	}
	return nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

var _ Store = (*SQLiteStore)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanSave(sc scanner) (*Save, error) {
	var (
		save  Save
		snap  string
		nanos int64
	)
	if err := sc.Scan(&save.Name, &save.Board, &snap, &nanos); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read save")
	}
	if err := json.Unmarshal([]byte(snap), &save.Snapshot); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse snapshot %s", save.Name)
	}
	save.SavedAt = time.Unix(0, nanos).UTC()
	return &save, nil
}

// Package ledger records every synthesized clip in SQLite.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ekisa-team/narrator/internal/xfs"
)

// Entry is one synthesized clip.
type Entry struct {
	ID         string
	Name       string
	TextHash   string
	TextLength int
	Bytes      int64
	Provider   string
	CreatedAt  time.Time
}

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrInvalidLimit is returned by List for a non-positive limit.
var ErrInvalidLimit = errors.New("ledger: limit must be positive")

// SQLiteLedger stores entries in a SQLite database.
type SQLiteLedger struct {
	db *sql.DB
}

// Open opens (and migrates) the ledger at path, creating parent directories.
func Open(path string) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := xfs.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("ledger: prepare directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open sqlite: %w", err)
	}

	_, err = db.Exec(`
	PRAGMA busy_timeout = 10000;
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous  = NORMAL;

	create table if not exists clips (
		id text primary key not null,
		name text not null unique,
		text_hash text not null,
		text_length integer not null,
		bytes integer not null,
		provider text not null,
		created_at text not null
	);

	create index if not exists clips_created_at on clips (created_at);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: migrate: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Record persists an entry.
func (l *SQLiteLedger) Record(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(
		ctx,
		`insert into clips (id, name, text_hash, text_length, bytes, provider, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID,
		e.Name,
		e.TextHash,
		e.TextLength,
		e.Bytes,
		e.Provider,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("persisting clip into sqlite: %w", err)
	}

	return nil
}

// List returns the most recent entries, newest first.
func (l *SQLiteLedger) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := l.db.QueryContext(
		ctx,
		`select id, name, text_hash, text_length, bytes, provider, created_at
		from clips
		order by created_at desc
		limit $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.TextHash, &e.TextLength, &e.Bytes, &e.Provider, &created); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse clip timestamp: %w", err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// Close closes the database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

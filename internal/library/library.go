// Package library stores chord sheets in a local sqlite songbook.
//
// Entries are content-addressed: the ID of a song is the hex BLAKE3-256
// hash of its source text, so adding the same sheet twice is idempotent.
// Uses the pure Go sqlite driver (modernc.org/sqlite), so the binary builds
// with CGO_ENABLED=0.
package library

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
	"github.com/FocuswithJustin/Chordsmith/core/sheet"
	"github.com/FocuswithJustin/Chordsmith/internal/logging"
)

// Entry is one stored chord sheet. Source is empty in List results.
type Entry struct {
	ID      string // hex BLAKE3-256 of the source text
	Title   string
	Source  string
	AddedAt time.Time
}

// Library is a sqlite-backed songbook.
type Library struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	source   TEXT NOT NULL,
	added_at TEXT NOT NULL
);`

// Open opens the songbook database at path, creating it and its schema if
// needed.
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}
	return &Library{db: db}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// ID returns the content address of a chord sheet: the hex BLAKE3-256 hash
// of its source text.
func ID(source string) string {
	sum := blake3.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Add validates and stores a chord sheet. A sheet that fails to parse is
// rejected. Adding a source that is already stored is a no-op; the existing
// entry keeps its original title.
func (l *Library) Add(title, source string) (*Entry, error) {
	if _, err := sheet.Parse(source); err != nil {
		return nil, cerr.Wrap(err, "refusing to store unparseable sheet")
	}

	e := &Entry{
		ID:      ID(source),
		Title:   title,
		Source:  source,
		AddedAt: time.Now().UTC(),
	}
	_, err := l.db.Exec(
		`INSERT INTO songs (id, title, source, added_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		e.ID, e.Title, e.Source, e.AddedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store song: %w", err)
	}

	logging.Info("stored song", "id", e.ID, "title", e.Title)
	return e, nil
}

// List returns all entries in insertion order, without source text.
func (l *Library) List() ([]*Entry, error) {
	return l.list(`SELECT id, title, '', added_at FROM songs ORDER BY added_at, id`)
}

// ListWithSource returns all entries in insertion order, including source
// text.
func (l *Library) ListWithSource() ([]*Entry, error) {
	return l.list(`SELECT id, title, source, added_at FROM songs ORDER BY added_at, id`)
}

func (l *Library) list(query string) ([]*Entry, error) {
	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return entries, nil
}

// Get returns the entry with the given ID, including its source text.
func (l *Library) Get(id string) (*Entry, error) {
	row := l.db.QueryRow(`SELECT id, title, source, added_at FROM songs WHERE id = ?`, id)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cerr.NewNotFound("song", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Remove deletes the entry with the given ID.
func (l *Library) Remove(id string) error {
	res, err := l.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}
	if n == 0 {
		return cerr.NewNotFound("song", id)
	}
	return nil
}

// scanEntry reads one songs row via the given Scan function.
func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var added string
	if err := scan(&e.ID, &e.Title, &e.Source, &added); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339, added)
	if err != nil {
		return nil, fmt.Errorf("corrupt added_at for song %s: %w", e.ID, err)
	}
	e.AddedAt = ts
	return &e, nil
}

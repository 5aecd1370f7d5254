package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoCache is returned by Load when nothing has been cached yet
var ErrNoCache = errors.New("no cached deck")

// Cache keeps the last fetched deck in a SQLite database
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache opens or creates the cache database at path
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	c := &Cache{db: db, path: path}
	if err := c.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache tables: %w", err)
	}

	return c, nil
}

// Path returns the database file
func (c *Cache) Path() string {
	return c.path
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			pos integer PRIMARY KEY,
			name text NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			category integer NOT NULL,
			pos integer NOT NULL,
			word text NOT NULL,
			PRIMARY KEY (category, pos)
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key text PRIMARY KEY,
			value text NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := c.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// Save replaces the cached deck and records fetchedAt
func (c *Cache) Save(ctx context.Context, d *Deck, fetchedAt time.Time) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{`DELETE FROM words`, `DELETE FROM categories`} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	catStmt, err := tx.PrepareContext(ctx, `INSERT INTO categories (pos, name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer catStmt.Close()

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (category, pos, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wordStmt.Close()

	for i, name := range d.Categories {
		if _, err := catStmt.ExecContext(ctx, i, name); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", name, err)
		}
		for j, word := range d.Words[name] {
			if _, err := wordStmt.ExecContext(ctx, i, j, word); err != nil {
				return fmt.Errorf("failed to insert word %q: %w", word, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('fetched_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store fetch time: %w", err)
	}

	return tx.Commit()
}

// Load returns the cached deck and when it was fetched
func (c *Cache) Load(ctx context.Context) (*Deck, time.Time, error) {
	var stamp string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'fetched_at'`).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoCache
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read cache metadata: %w", err)
	}

	fetchedAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("corrupt cache timestamp %q: %w", stamp, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT c.name, w.word FROM categories c
		 LEFT JOIN words w ON w.category = c.pos
		 ORDER BY c.pos, w.pos`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	d := New()
	for rows.Next() {
		var name string
		var word sql.NullString
		if err := rows.Scan(&name, &word); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cached word: %w", err)
		}
		if word.Valid {
			d.Add(name, word.String)
		} else {
			d.Add(name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return d, fetchedAt, nil
}

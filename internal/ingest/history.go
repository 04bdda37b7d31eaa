package ingest

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// LinkHash is the history key of a link: the first 12 hex digits of its MD5.
func LinkHash(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])[:12]
}

// History remembers links that were already ingested, so an article
// removed from the document by hand is not added back on the next run.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS processed (
		hash TEXT PRIMARY KEY,
		link TEXT NOT NULL,
		topic TEXT,
		processed_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create tables: %w", err)
	}
	return &History{db: db}, nil
}

// OpenHistoryReadOnly opens an existing history without the right to
// change it. A missing file yields a nil History and no error: nothing has
// been ingested yet.
func OpenHistoryReadOnly(path string) (*History, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// Seen reports whether link was ingested by an earlier run.
func (h *History) Seen(ctx context.Context, link string) (bool, error) {
	var n int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processed WHERE hash = ?`, LinkHash(link)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("history: lookup: %w", err)
	}
	return n > 0, nil
}

// Entry is one ingested link.
type Entry struct {
	Link  string
	Topic string
}

// Record stores entries in one transaction.
func (h *History) Record(ctx context.Context, entries []Entry, at time.Time) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO processed (hash, link, topic, processed_at) VALUES (?, ?, ?, ?)`,
			LinkHash(e.Link), e.Link, e.Topic, at.Unix())
		if err != nil {
			return fmt.Errorf("history: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit: %w", err)
	}
	return nil
}

// Count returns the number of remembered links.
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processed`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Forget deletes links processed before cutoff and returns how many went.
func (h *History) Forget(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := h.db.ExecContext(ctx, `DELETE FROM processed WHERE processed_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("history: forget: %w", err)
	}
	return result.RowsAffected()
}

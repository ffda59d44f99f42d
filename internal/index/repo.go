package index

import (
	"fmt"
	"time"
)

// EntryRow represents a row in the sessions table.
type EntryRow struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Checksum string    `json:"checksum"`
	ClosedAt time.Time `json:"closed_at"`
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// UpsertEntry inserts or replaces a session entry.
func (db *DB) UpsertEntry(e EntryRow, body string) error {
	_, err := db.conn.Exec(`
		INSERT INTO sessions (path, title, checksum, body, closed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title     = excluded.title,
			checksum  = excluded.checksum,
			body      = excluded.body,
			closed_at = excluded.closed_at
	`, e.Path, e.Title, e.Checksum, body, e.ClosedAt)
	if err != nil {
		return fmt.Errorf("index: upsert entry: %w", err)
	}
	return nil
}

// DeleteEntry removes a session entry.
func (db *DB) DeleteEntry(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM sessions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete entry: %w", err)
	}
	return nil
}

// ListEntries returns entries newest first, plus the total count.
func (db *DB) ListEntries(limit, offset int) ([]EntryRow, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT path, title, checksum, closed_at
		FROM sessions
		ORDER BY closed_at DESC, path DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list: %w", err)
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var e EntryRow
		if err := rows.Scan(&e.Path, &e.Title, &e.Checksum, &e.ClosedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Search performs a LIKE-based search over titles and bodies.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT path, title, substr(body, 1, 200)
		FROM sessions
		WHERE title LIKE ? OR body LIKE ?
		ORDER BY closed_at DESC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed entry.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

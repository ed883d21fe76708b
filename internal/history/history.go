// Package history persists submitted lines in a SQLite database and
// answers the prefix queries used by hinters and completers.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const DefaultLimit = 1000

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_content ON entries(content);
`

// Store is a bounded, append-only list of submitted lines.
type Store struct {
	mu    sync.Mutex
	db    *sql.DB
	limit int
}

// Open opens or creates the database at path. limit <= 0 selects
// DefaultLimit.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db, limit: limit}, nil
}

// Add records line. Blank lines and repeats of the newest entry are skipped.
func (s *Store) Add(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var last string
	err := s.db.QueryRow(`SELECT content FROM entries ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("history: read last entry: %w", err)
	}
	if err == nil && last == line {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO entries (timestamp, content) VALUES (?, ?)`,
		time.Now().UnixNano(), line); err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM entries WHERE id NOT IN
		(SELECT id FROM entries ORDER BY id DESC LIMIT ?)`, s.limit); err != nil {
		return fmt.Errorf("history: trim: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit: %w", err)
	}
	return nil
}

// Recent returns up to n distinct entries, newest first.
func (s *Store) Recent(n int) ([]string, error) {
	return s.Search("", n)
}

// Search returns up to n distinct entries starting with prefix, newest
// first.
func (s *Store) Search(prefix string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT content FROM entries
		WHERE substr(content, 1, length(?1)) = ?1
		GROUP BY content
		ORDER BY MAX(id) DESC
		LIMIT ?2`, prefix, n)
	if err != nil {
		return nil, fmt.Errorf("history: search: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, content)
	}
	return out, rows.Err()
}

// Latest returns the newest entry that starts with prefix and is longer
// than it.
func (s *Store) Latest(prefix string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var content string
	err := s.db.QueryRow(`
		SELECT content FROM entries
		WHERE substr(content, 1, length(?1)) = ?1 AND length(content) > length(?1)
		ORDER BY id DESC
		LIMIT 1`, prefix).Scan(&content)
	if err != nil {
		return "", false
	}
	return content, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

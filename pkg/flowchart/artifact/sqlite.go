package artifact

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists flow artifacts to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite artifact store.
// The path should be a file path (e.g., "./flows.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS flows (
			project_id TEXT PRIMARY KEY,
			revision INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(projectID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO flows (project_id, revision, updated_at, data)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			revision = flows.revision + 1,
			updated_at = excluded.updated_at,
			data = excluded.data
	`, projectID, time.Now().UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save flow: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(projectID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM flows WHERE project_id = ?
	`, projectID).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load flow: %w", err)
	}
	return data, nil
}

// Stat implements Store.
func (s *SQLiteStore) Stat(projectID string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	info := Info{ProjectID: projectID}
	var updatedAt string
	err := s.db.QueryRow(`
		SELECT revision, updated_at, LENGTH(data)
		FROM flows WHERE project_id = ?
	`, projectID).Scan(&info.Revision, &updatedAt, &info.Size)

	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, fmt.Errorf("stat flow: %w", err)
	}
	info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return info, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT project_id, revision, updated_at, LENGTH(data)
		FROM flows
		ORDER BY project_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list flows: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var updatedAt string
		if err := rows.Scan(&info.ProjectID, &info.Revision, &updatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan flow info: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flows: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM flows WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("delete flow: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

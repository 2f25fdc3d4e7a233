// Package sqlite implements the offline queue's durable local store on a
// SQLite file. The whole queue is one ordered JSON list under a single fixed
// key, so persisting is a full rewrite of that row. There is no versioning
// or migration scheme for the payload format; a format change requires
// clearing the row.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
)

const queueKey = "offline_operation_queue"

type QueueStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewQueueStore opens (or creates) the local queue database. Use ":memory:"
// for tests.
func NewQueueStore(dbPath string) (*QueueStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open queue store: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate queue store: %w", err)
	}

	return &QueueStore{db: db}, nil
}

// Load implements queue.Store.
func (s *QueueStore) Load() ([]queue.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, queueKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	var ops []queue.Operation
	if err := json.Unmarshal([]byte(raw), &ops); err != nil {
		return nil, fmt.Errorf("failed to decode queue: %w", err)
	}

	return ops, nil
}

// Save implements queue.Store.
func (s *QueueStore) Save(ops []queue.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ops == nil {
		ops = []queue.Operation{}
	}

	raw, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, queueKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save queue: %w", err)
	}

	return nil
}

func (s *QueueStore) Close() error {
	return s.db.Close()
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// stateKey is the single row under which the state blob is stored.
const stateKey = "typelearn-state"

// SQLStore persists the state blob in a one-row SQL table. SQLite is used by
// default; when DATABASE_URL is set the same store runs on postgres.
type SQLStore struct {
	db *sqlx.DB
}

// Open establishes the database connection and initializes the schema.
func Open() (*SQLStore, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return newSQLStore(db)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "typelearn.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite doesn't support multiple writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return newSQLStore(db)
}

func newSQLStore(db *sqlx.DB) (*SQLStore, error) {
	s := &SQLStore{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

// Load returns the saved state blob, or nil when none has been saved yet.
func (s *SQLStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	query := s.db.Rebind(`SELECT data FROM app_state WHERE key = ?`)
	err := s.db.QueryRowContext(ctx, query, stateKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return data, nil
}

// Save overwrites the state blob. Last write wins.
func (s *SQLStore) Save(ctx context.Context, data []byte) error {
	query := s.db.Rebind(`
		INSERT INTO app_state (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, stateKey, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

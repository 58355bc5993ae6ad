// Package localstore persists the booking collection as a single JSON
// document in an embedded SQLite database, so every mutation survives a
// restart regardless of network state.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/zad-edu/masadr2040/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Open creates the database file (and its parent directory) and ensures the
// schema exists.
func Open(path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create local store directory: %w", err)
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return db, nil
}

// DocumentRepository reads and writes whole booking documents under a fixed
// key. It never patches individual records.
type DocumentRepository struct {
	db     *sqlx.DB
	key    string
	logger *zap.Logger
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(db *sqlx.DB, key string, logger *zap.Logger) *DocumentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentRepository{db: db, key: key, logger: logger}
}

// Save serializes the entire collection and upserts it under the fixed key.
// A nil collection is stored as an empty array so Load round-trips cleanly.
func (r *DocumentRepository) Save(ctx context.Context, bookings []models.Booking) error {
	if bookings == nil {
		bookings = []models.Booking{}
	}
	body, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode booking document: %w", err)
	}

	const query = `INSERT INTO documents (key, body, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, r.key, body, time.Now().UTC()); err != nil {
		return fmt.Errorf("save booking document: %w", err)
	}
	return nil
}

// Load returns the previously saved collection. An absent row or a corrupt
// body degrades to an empty collection: losing the local cache must never be
// fatal.
func (r *DocumentRepository) Load(ctx context.Context) ([]models.Booking, error) {
	const query = `SELECT body FROM documents WHERE key = $1`
	var body []byte
	if err := r.db.GetContext(ctx, &body, query, r.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.Booking{}, nil
		}
		return nil, fmt.Errorf("load booking document: %w", err)
	}

	var bookings []models.Booking
	if err := json.Unmarshal(body, &bookings); err != nil {
		r.logger.Warn("stored booking document is corrupt, starting empty", zap.Error(err))
		return []models.Booking{}, nil
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

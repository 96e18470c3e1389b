// Package database keeps the gateway's local search history and generated
// booking documents in Postgres.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

// RecentSearches returns DefaultSearchLimit rows when asked for none and
// never more than MaxSearchLimit.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ─── Models ──────────────────────────────────────────────────────────────────

// Search is one flight or hotel search the gateway ran. Owner identifies the
// caller's session and is never sent back.
type Search struct {
	ID        string          `json:"id"`
	Owner     string          `json:"-"`
	Kind      string          `json:"kind"`
	Filter    json.RawMessage `json:"filter"`
	Page      int             `json:"page"`
	Results   int             `json:"results"`
	CreatedAt time.Time       `json:"created_at"`
}

// Document is a generated booking confirmation.
type Document struct {
	ID           string    `json:"id"`
	BookingID    int       `json:"booking_id"`
	BookingType  string    `json:"booking_type"`
	TravelerName string    `json:"traveler_name"`
	PDFData      []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// connectAttempts and connectDelay bound how long Open waits for a database
// that is still starting.
var (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Open connects to dsn, waiting for the server to come up, and runs the
// migrations.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	for i := 0; i < connectAttempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logger.Info("⏳ Waiting for database...", "attempt", i+1, "of", connectAttempts, "error", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectDelay):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database after %d attempts: %w", connectAttempts, err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("✅ Database connected and migrated")
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id         TEXT PRIMARY KEY,
			owner      TEXT NOT NULL DEFAULT '',
			kind       TEXT NOT NULL,
			filter     JSONB NOT NULL DEFAULT '{}',
			page       INTEGER NOT NULL DEFAULT 0,
			results    INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id            TEXT PRIMARY KEY,
			booking_id    INTEGER NOT NULL,
			booking_type  TEXT NOT NULL,
			traveler_name TEXT,
			pdf_data      BYTEA NOT NULL,
			created_at    TIMESTAMPTZ DEFAULT NOW()
		)`,

		`ALTER TABLE searches ADD COLUMN IF NOT EXISTS owner TEXT NOT NULL DEFAULT ''`,

		`CREATE INDEX IF NOT EXISTS idx_searches_created_at
			ON searches(created_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_searches_owner
			ON searches(owner, created_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_documents_booking
			ON documents(booking_type, booking_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Searches ─────────────────────────────────────────────────────────────────

// SaveSearch records sr, assigning an id when it has none.
func (s *Store) SaveSearch(ctx context.Context, sr *Search) error {
	if sr.ID == "" {
		sr.ID = uuid.New().String()
	}
	filter := sr.Filter
	if len(filter) == 0 {
		filter = json.RawMessage(`{}`)
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO searches (id, owner, kind, filter, page, results)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		sr.ID, sr.Owner, sr.Kind, []byte(filter), sr.Page, sr.Results).Scan(&sr.CreatedAt)
	if err != nil {
		return fmt.Errorf("save search: %w", err)
	}
	return nil
}

// RecentSearches lists owner's newest searches first. An empty kind lists
// every kind.
func (s *Store) RecentSearches(ctx context.Context, owner, kind string, limit int) ([]Search, error) {
	limit = ClampSearchLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, kind, filter, page, results, created_at
		FROM searches
		WHERE owner = $1 AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC, id
		LIMIT $3`, owner, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	out := []Search{}
	for rows.Next() {
		var sr Search
		var filter []byte
		if err := rows.Scan(&sr.ID, &sr.Owner, &sr.Kind, &filter, &sr.Page, &sr.Results, &sr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		sr.Filter = json.RawMessage(filter)
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ClampSearchLimit maps a requested page size into 1..MaxSearchLimit.
func ClampSearchLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultSearchLimit
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	}
	return limit
}

// ─── Documents ────────────────────────────────────────────────────────────────

func (s *Store) SaveDocument(ctx context.Context, d *Document) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (id, booking_id, booking_type, traveler_name, pdf_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		d.ID, d.BookingID, d.BookingType, d.TravelerName, d.PDFData).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	d := &Document{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, booking_id, booking_type, traveler_name, pdf_data, created_at
		FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.BookingID, &d.BookingType, &d.TravelerName, &d.PDFData, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

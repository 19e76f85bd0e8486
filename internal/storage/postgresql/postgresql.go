package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

const schema = `
	CREATE TABLE IF NOT EXISTS page_contents (
		page_name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		content JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS media (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		original_filename TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		file_size BIGINT NOT NULL,
		mime_type TEXT
	);
`

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

// NewFromPool wraps an existing pool, used by tests.
func NewFromPool(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

// EnsureSchema creates the tables if they are missing.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.postgresql.EnsureSchema"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.postgresql.Ping"

	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Stop() {
	s.db.Close()
}

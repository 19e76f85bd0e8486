package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContentRepo) GetContent(ctx context.Context, page string) ([]byte, error) {
	const op = "repository.content_repository.GetContent"

	query, args, err := r.sb.Select("content").
		From("page_contents").
		Where(sq.Eq{"page_name": page}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var raw []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrPageNotSaved
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return raw, nil
}

// SaveContent is a whole-document upsert. The last writer wins.
func (r *ContentRepo) SaveContent(ctx context.Context, page string, kind models.PageKind, raw []byte) ([]byte, error) {
	const op = "repository.content_repository.SaveContent"

	query, args, err := r.sb.Insert("page_contents").
		Columns("page_name", "kind", "content", "updated_at").
		Values(page, string(kind), string(raw), time.Now().UTC()).
		Suffix(`ON CONFLICT (page_name) DO UPDATE
			SET kind = EXCLUDED.kind, content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
			RETURNING content`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var stored []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&stored); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stored, nil
}

func (r *ContentRepo) Ping(ctx context.Context) error {
	const op = "repository.content_repository.Ping"

	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

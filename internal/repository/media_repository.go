package repository

import (
	"context"
	"errors"
	"fmt"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var mediaColumns = []string{
	"id",
	"created_at",
	"original_filename",
	"storage_path",
	"file_size",
	"mime_type",
}

func (r *MediaRepo) CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error) {
	const op = "repository.media_repository.CreateMedia"

	query, args, err := r.sb.Insert("media").
		Columns(mediaColumns...).
		Values(
			media.ID,
			media.CreatedAt,
			media.OriginalFilename,
			media.StoragePath,
			media.FileSize,
			media.MimeType,
		).
		Suffix("RETURNING id, created_at, original_filename, storage_path, file_size, mime_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	var created models.Media
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.OriginalFilename,
		&created.StoragePath,
		&created.FileSize,
		&created.MimeType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create media: %s %w", op, err)
	}

	return &created, nil
}

func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	const op = "repository.media_repository.FindByID"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var m models.Media
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.CreatedAt,
		&m.OriginalFilename,
		&m.StoragePath,
		&m.FileSize,
		&m.MimeType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}

package repository

import (
	"context"

	"nonprofit_cms/internal/domain/models"

	"github.com/google/uuid"
)

type ContentRepository interface {
	// GetContent returns the stored JSON of page or storage.ErrPageNotSaved.
	GetContent(ctx context.Context, page string) ([]byte, error)
	// SaveContent replaces the stored JSON of page and returns what was stored.
	SaveContent(ctx context.Context, page string, kind models.PageKind, raw []byte) ([]byte, error)
	Ping(ctx context.Context) error
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
}

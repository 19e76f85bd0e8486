package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db      *pgxpool.Pool
	Content ContentRepository
	Media   MediaRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:      db,
		Content: NewContentRepository(db),
		Media:   NewMediaRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

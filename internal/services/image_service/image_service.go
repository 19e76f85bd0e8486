package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/lib/logger/sl"
	"nonprofit_cms/internal/metrics"
	"nonprofit_cms/internal/repository"
	"nonprofit_cms/internal/storage"
	"nonprofit_cms/internal/storage/filestorage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

type ImageService struct {
	log         *slog.Logger
	repo        repository.MediaRepository
	fileStorage filestorage.FileStorage
}

func NewImageService(log *slog.Logger, repo repository.MediaRepository, fileStorage filestorage.FileStorage) *ImageService {
	return &ImageService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
	}
}

// UploadImage stores src under a fresh name and returns its server-relative
// path (/uploads/<name>). The file is public as soon as this returns.
// Every failure wraps models.ErrUploadFailed.
func (s *ImageService) UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error) {
	const op = "image_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("file_name", fileName),
	)

	log.Info("upload image")

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", s.fail(log, op, "read failed", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if n == 0 || !isAllowedImage(mt) {
		err := fmt.Errorf("%w: %s", storage.ErrInvalidFileType, mt.String())
		return "", s.fail(log, op, "rejected file type", err)
	}

	name := uuid.NewString() + mt.Extension()

	relPath, size, err := s.fileStorage.Save(ctx, io.MultiReader(bytes.NewReader(head), src), name)
	if err != nil {
		return "", s.fail(log, op, "failed to save file", err)
	}

	imagePath := models.UploadsPathPrefix + relPath

	original := fileName
	if original == "" {
		original = name
	}

	media := models.NewMedia(original, imagePath, mt.String(), size)
	if err := media.Validate(); err != nil {
		_ = s.fileStorage.Delete(ctx, relPath)
		return "", s.fail(log, op, "media validation failed", err)
	}

	if _, err := s.repo.CreateMedia(ctx, media); err != nil {
		// Удаляем файл если не удалось сохранить в БД
		_ = s.fileStorage.Delete(ctx, relPath)
		return "", s.fail(log, op, "failed to save media to database", err)
	}

	metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
	metrics.ImageUploadBytes.Observe(float64(size))

	log.Info("image uploaded", slog.String("path", imagePath), slog.Int64("size", size))

	return imagePath, nil
}

func (s *ImageService) fail(log *slog.Logger, op, msg string, err error) error {
	result := "error"
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		result = "too_large"
	case errors.Is(err, storage.ErrInvalidFileType):
		result = "invalid_type"
	}
	metrics.ImageUploadsTotal.WithLabelValues(result).Inc()

	log.Error(msg, sl.Err(err))

	return fmt.Errorf("%s: %w: %w", op, models.ErrUploadFailed, err)
}

// SVG is refused: it is served from the same origin and may carry script.
func isAllowedImage(mt *mimetype.MIME) bool {
	return strings.HasPrefix(mt.String(), "image/") && !mt.Is("image/svg+xml")
}

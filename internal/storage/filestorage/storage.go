package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nonprofit_cms/internal/storage"
)

// FileStorage интерфейс для работы с файловым хранилищем
type FileStorage interface {
	Save(ctx context.Context, src io.Reader, fileName string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	maxSize int64  // Максимальный размер файла в байтах, 0 - без ограничения
}

func NewLocalFileStorage(baseDir string, maxSize int64) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		maxSize: maxSize,
	}, nil
}

// Save writes src to fileName under the base directory and returns the path
// relative to it. Files over the size limit are removed and ErrFileTooLarge returned.
func (s *LocalFileStorage) Save(ctx context.Context, src io.Reader, fileName string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	rel := filepath.Clean("/" + fileName)[1:]
	if rel == "" {
		return "", 0, fmt.Errorf("invalid file name %q", fileName)
	}

	filePath := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	// Создаем целевой файл
	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if s.maxSize > 0 {
		src = io.LimitReader(src, s.maxSize+1)
	}

	// Копируем синхронно: src принадлежит вызывающему и не должен читаться после возврата
	size, err := io.Copy(dst, &ctxReader{ctx: ctx, r: src})
	if err != nil {
		dst.Close()
		_ = os.Remove(filePath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", 0, ctxErr
		}
		return "", 0, fmt.Errorf("failed to copy file: %w", err)
	}

	if s.maxSize > 0 && size > s.maxSize {
		_ = os.Remove(filePath)
		return "", 0, fmt.Errorf("%w: more than %d bytes", storage.ErrFileTooLarge, s.maxSize)
	}

	return filepath.ToSlash(rel), size, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	return r.r.Read(p)
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath := s.GetFullPath(filePath)

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrFileNotFound
		}
		return err
	}

	return nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.Clean("/"+relativePath))
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media описывает загруженное изображение
type Media struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	StoragePath      string    `json:"storage_path" db:"storage_path"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	MimeType         string    `json:"mime_type,omitempty" db:"mime_type"`
}

// NewMedia создает новый экземпляр Media с заполненными обязательными полями
func NewMedia(filename, path, mimeType string, size int64) *Media {
	return &Media{
		ID:               uuid.New(),
		CreatedAt:        time.Now().UTC(),
		OriginalFilename: filename,
		StoragePath:      path,
		FileSize:         size,
		MimeType:         mimeType,
	}
}

// Validate проверяет корректность данных медиафайла
func (m *Media) Validate() error {
	var validationErrors []string

	if m.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(m.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if !strings.HasPrefix(m.StoragePath, UploadsPathPrefix) {
		validationErrors = append(validationErrors, fmt.Sprintf("storage path must start with %s", UploadsPathPrefix))
	}
	if m.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}
	if !strings.HasPrefix(m.MimeType, "image/") {
		validationErrors = append(validationErrors, fmt.Sprintf("mime type %q is not an image", m.MimeType))
	}
	if len(m.MimeType) > 100 {
		validationErrors = append(validationErrors, "mime type must be 100 characters or less")
	}

	if len(validationErrors) > 0 {
		return &MediaValidationError{
			Errors: validationErrors,
		}
	}

	return nil
}

// MediaValidationError кастомный тип ошибки для валидации
type MediaValidationError struct {
	Errors []string
}

func (e *MediaValidationError) Error() string {
	return fmt.Sprintf("media validation failed: %s", strings.Join(e.Errors, "; "))
}

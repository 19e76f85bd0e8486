package models

import (
	"errors"
	"strings"
)

// Failure classes shared by the store, the upload service, the HTTP layer and the editor.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrValidationFailed = errors.New("validation failed")
	ErrUploadFailed     = errors.New("upload failed")
	ErrNotFound         = errors.New("not found")
	ErrUnavailable      = errors.New("unavailable")
)

// Edit errors. They signal a bad edit request, not a bad stored document.
var (
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownList      = errors.New("unknown list")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrUnknownPageKind  = errors.New("unknown page kind")
	ErrDuplicatePage    = errors.New("duplicate page name")
	ErrEmptyPageName    = errors.New("empty page name")
	ErrReservedPageName = errors.New("page name is reserved")
	ErrInvalidUploadURL = errors.New("upload base url must be empty or an absolute http(s) url")
)

// ValidationError collects every problem found in a document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "document validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// IsValidationError проверяет, является ли ошибка ошибкой валидации документа
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

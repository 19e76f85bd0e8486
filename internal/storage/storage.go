package storage

import "errors"

var (
	ErrPageNotSaved = errors.New("page has never been saved")
	ErrCacheMiss    = errors.New("cache miss")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)

package models

import (
	"net/url"
	"strings"
)

// UploadsPathPrefix starts every server-relative path returned by the upload service.
const UploadsPathPrefix = "/uploads/"

type ImageRefKind int

const (
	ImageRefEmpty ImageRefKind = iota
	ImageRefInline
	ImageRefAbsolute
	ImageRefUpload
	ImageRefUnknown
)

func ClassifyImageRef(raw string) ImageRefKind {
	lower := strings.ToLower(raw)

	switch {
	case raw == "":
		return ImageRefEmpty
	case strings.HasPrefix(lower, "data:image/"):
		return ImageRefInline
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return ImageRefAbsolute
	case strings.HasPrefix(raw, UploadsPathPrefix):
		return ImageRefUpload
	}

	return ImageRefUnknown
}

// ResolveImageReference turns a stored image value into something a browser can load.
// Inline data and absolute URLs pass through, upload paths get uploadBaseURL
// prefixed, anything else resolves to "". uploadBaseURL must be empty or absolute
// (see ValidateUploadBaseURL) for the result to be stable under re-resolution.
func ResolveImageReference(raw, uploadBaseURL string) string {
	switch ClassifyImageRef(raw) {
	case ImageRefInline, ImageRefAbsolute:
		return raw
	case ImageRefUpload:
		return strings.TrimRight(uploadBaseURL, "/") + raw
	}

	return ""
}

func ValidateUploadBaseURL(base string) error {
	if base == "" {
		return nil
	}

	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidUploadURL
	}

	return nil
}

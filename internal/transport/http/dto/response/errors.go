package response

// Error codes carried in ErrorResponse.Error.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeUnauthorized     = "unauthorized"
	CodePageNotFound     = "page_not_found"
	CodeValidationFailed = "validation_failed"
	CodeFileTooLarge     = "file_too_large"
	CodeUnsupportedType  = "unsupported_media_type"
	CodeUploadFailed     = "upload_failed"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal_error"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   CodeInvalidRequest,
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   CodeUnauthorized,
		Details: "A valid bearer token is required",
	}
)

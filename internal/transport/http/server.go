package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/lib/logger/sl"
	"nonprofit_cms/internal/storage"
	"nonprofit_cms/internal/transport/http/dto"
	"nonprofit_cms/internal/transport/http/dto/request"
	"nonprofit_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type ContentService interface {
	ListPages(ctx context.Context) ([]string, error)
	GetDocument(ctx context.Context, page string) (models.PageDocument, error)
	PutDocument(ctx context.Context, page string, raw []byte) (models.PageDocument, error)
	Ping(ctx context.Context) error
}

type ImageService interface {
	UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error)
}

type Routers struct {
	log            *slog.Logger
	ContentService ContentService
	ImageService   ImageService
	maxUploadSize  int64
}

// ImageFormField is the multipart field the upload route reads.
const ImageFormField = "image"

func NewRouter(log *slog.Logger, contentService ContentService, imageService ImageService, maxUploadSize int64) *Routers {
	return &Routers{
		log:            log,
		ContentService: contentService,
		ImageService:   imageService,
		maxUploadSize:  maxUploadSize,
	}
}

// ListPages godoc
// @Summary List editable pages
// @Produce json
// @Success 200 {array} string
// @Failure 503 {object} response.ErrorResponse
// @Router /api/content/pages [get]
func (r *Routers) ListPages(c echo.Context) error {
	const op = "http.routers.ListPages"

	log := r.log.With(
		slog.String("op", op),
	)

	pages, err := r.ContentService.ListPages(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, pages)
}

// GetPage godoc
// @Summary Get the stored document of a page
// @Produce json
// @Param pageName path string true "Page name"
// @Success 200 {object} dto.PageContentResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/content/{pageName} [get]
func (r *Routers) GetPage(c echo.Context) error {
	const op = "http.routers.GetPage"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := r.pageName(c)
	if err != nil {
		log.Warn("invalid page name", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	doc, err := r.ContentService.GetDocument(c.Request().Context(), page)
	if err != nil {
		return r.fail(c, log.With(slog.String("page", page)), err)
	}

	return c.JSON(http.StatusOK, dto.PageContentResponse{Content: doc})
}

// PutPage godoc
// @Summary Replace the whole document of a page
// @Accept json
// @Produce json
// @Param pageName path string true "Page name"
// @Success 200 {object} object "Saved document"
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/content/{pageName} [put]
func (r *Routers) PutPage(c echo.Context) error {
	const op = "http.routers.PutPage"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := r.pageName(c)
	if err != nil {
		log.Warn("invalid page name", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	log = log.With(slog.String("page", page))

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Warn("failed to read body", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if !json.Valid(raw) {
		log.Warn("body is not json")
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	saved, err := r.ContentService.PutDocument(c.Request().Context(), page, raw)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, saved)
}

// UploadImage godoc
// @Summary Upload an image for use in page documents
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} dto.UploadImageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/content/upload-image [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("client_ip", c.RealIP()),
	)

	file, err := c.FormFile(ImageFormField)
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, "image file is required"))
	}

	log = log.With(
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
	)

	if r.maxUploadSize > 0 && file.Size > r.maxUploadSize {
		log.Warn("file too large")
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails(response.CodeFileTooLarge, storage.ErrFileTooLarge.Error()))
	}

	src, err := file.Open()
	if err != nil {
		return r.fail(c, log, err)
	}
	defer src.Close()

	imagePath, err := r.ImageService.UploadImage(c.Request().Context(), src, file.Filename)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.UploadImageResponse{ImagePath: imagePath})
}

// Health reports whether the content store is reachable.
func (r *Routers) Health(c echo.Context) error {
	if err := r.ContentService.Ping(c.Request().Context()); err != nil {
		r.log.Warn("health check failed", sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.Response{Status: "unavailable"})
	}

	return c.JSON(http.StatusOK, response.Response{Status: "ok"})
}

func (r *Routers) pageName(c echo.Context) (string, error) {
	var req request.PageRequest

	if err := (&echo.DefaultBinder{}).BindPathParams(c, &req); err != nil {
		return "", err
	}

	if err := c.Validate(req); err != nil {
		return "", err
	}

	return req.PageName, nil
}

// fail maps a service error onto a status code and error body.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var ve *models.ValidationError

	switch {
	case errors.As(err, &ve):
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails(response.CodeValidationFailed, ve.Error()))
	case errors.Is(err, models.ErrNotFound):
		log.Warn("unknown page", sl.Err(err))
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails(response.CodePageNotFound, "unknown page"))
	case errors.Is(err, models.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, storage.ErrFileTooLarge):
		log.Warn("upload too large", sl.Err(err))
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails(response.CodeFileTooLarge, storage.ErrFileTooLarge.Error()))
	case errors.Is(err, storage.ErrInvalidFileType):
		log.Warn("upload rejected", sl.Err(err))
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails(response.CodeUnsupportedType, "only raster images are accepted"))
	case errors.Is(err, models.ErrUploadFailed):
		log.Error("upload failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(response.CodeUploadFailed, "upload failed"))
	case errors.Is(err, models.ErrUnavailable):
		log.Error("content store unavailable", sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails(response.CodeUnavailable, "content store unavailable"))
	}

	log.Error("request failed", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(response.CodeInternal, "internal error"))
}

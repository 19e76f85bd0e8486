// Package client talks to the content API over HTTP. ContentClient is the
// transport behind the editor.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/storage"
	"nonprofit_cms/internal/transport/http/dto"
	"nonprofit_cms/internal/transport/http/dto/response"
)

const (
	defaultTimeout = 15 * time.Second
	imageFormField = "image"
	// error bodies are short JSON objects
	maxErrorBody = 64 << 10
)

// ServerError is a non-2xx answer. Error returns the server's message as sent,
// so it can be shown to the person editing unchanged.
type ServerError struct {
	StatusCode int
	Code       string
	Details    string
	kind       error
}

func (e *ServerError) Error() string {
	if e.Details != "" {
		return e.Details
	}
	if e.Code != "" {
		return e.Code
	}

	return fmt.Sprintf("server answered %d", e.StatusCode)
}

func (e *ServerError) Unwrap() error {
	return e.kind
}

// kindFor maps a status to the shared failure classes.
func kindFor(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.ErrValidationFailed
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusRequestEntityTooLarge:
		return storage.ErrFileTooLarge
	case http.StatusUnsupportedMediaType:
		return storage.ErrInvalidFileType
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return models.ErrUnavailable
	}

	return nil
}

type Option func(*ContentClient)

// WithToken sets the bearer token sent on PUT and upload requests.
func WithToken(token string) Option {
	return func(c *ContentClient) { c.token = token }
}

func WithTimeout(d time.Duration) Option {
	return func(c *ContentClient) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying client, e.g. one from httptest.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ContentClient) { c.http = hc }
}

type ContentClient struct {
	baseURL string
	token   string
	catalog *models.Catalog
	http    *http.Client
}

// New builds a client for the server at baseURL. Documents are decoded with
// catalog, which must match the server's.
func New(baseURL string, catalog *models.Catalog, opts ...Option) *ContentClient {
	c := &ContentClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		catalog: catalog,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *ContentClient) endpoint(elem ...string) (string, error) {
	return url.JoinPath(c.baseURL, append([]string{"api", "content"}, elem...)...)
}

func (c *ContentClient) do(req *http.Request, auth bool, out any) error {
	req.Header.Set("Accept", "application/json")
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	serr := &ServerError{StatusCode: resp.StatusCode, kind: kindFor(resp.StatusCode)}

	var body response.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err == nil {
		serr.Code = body.Error
		serr.Details = body.Details
	} else {
		serr.Details = strings.TrimSpace(string(raw))
	}

	return serr
}

func (c *ContentClient) ListPages(ctx context.Context) ([]string, error) {
	endpoint, err := c.endpoint("pages")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var pages []string
	if err := c.do(req, false, &pages); err != nil {
		return nil, err
	}

	return pages, nil
}

// GetDocument returns the stored document, or the page default when nothing
// has been saved yet.
func (c *ContentClient) GetDocument(ctx context.Context, page string) (models.PageDocument, error) {
	endpoint, err := c.endpoint(page)
	if err != nil {
		return models.PageDocument{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.PageDocument{}, err
	}

	var body struct {
		Content json.RawMessage `json:"content"`
	}
	if err := c.do(req, false, &body); err != nil {
		return models.PageDocument{}, err
	}

	return c.catalog.Decode(page, body.Content)
}

func (c *ContentClient) PutDocument(ctx context.Context, doc models.PageDocument) (models.PageDocument, error) {
	endpoint, err := c.endpoint(doc.Page)
	if err != nil {
		return models.PageDocument{}, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return models.PageDocument{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.PageDocument{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var saved json.RawMessage
	if err := c.do(req, true, &saved); err != nil {
		return models.PageDocument{}, err
	}

	return c.catalog.Decode(doc.Page, saved)
}

// UploadImage sends src as a multipart form and returns the stored path.
func (c *ContentClient) UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error) {
	endpoint, err := c.endpoint("upload-image")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(imageFormField, fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, src); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var body dto.UploadImageResponse
	if err := c.do(req, true, &body); err != nil {
		return "", wrapUpload(err)
	}

	if body.ImagePath == "" {
		return "", fmt.Errorf("%w: empty image path in response", models.ErrUploadFailed)
	}

	return body.ImagePath, nil
}

// Every upload failure is an upload failure to the editor, whatever else it is.
func wrapUpload(err error) error {
	if errors.Is(err, models.ErrUploadFailed) || errors.Is(err, models.ErrUnauthorized) {
		return err
	}

	return fmt.Errorf("%w: %w", models.ErrUploadFailed, err)
}

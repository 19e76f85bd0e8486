package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/lib/logger/sl"
	"nonprofit_cms/internal/metrics"
	"nonprofit_cms/internal/repository"
	"nonprofit_cms/internal/storage"
	"nonprofit_cms/internal/storage/cache"

	"github.com/microcosm-cc/bluemonday"
)

type ContentService struct {
	log     *slog.Logger
	catalog *models.Catalog
	repo    repository.ContentRepository
	cache   cache.DocumentCache
	policy  *bluemonday.Policy
}

func NewContentService(
	log *slog.Logger,
	catalog *models.Catalog,
	repo repository.ContentRepository,
	documentCache cache.DocumentCache,
) *ContentService {
	if documentCache == nil {
		documentCache = cache.NopCache{}
	}

	return &ContentService{
		log:     log,
		catalog: catalog,
		repo:    repo,
		cache:   documentCache,
		policy:  bluemonday.StrictPolicy(),
	}
}

// ListPages returns every known page name in selector order.
func (s *ContentService) ListPages(ctx context.Context) ([]string, error) {
	const op = "service.ContentService.ListPages"

	if err := s.repo.Ping(ctx); err != nil {
		s.log.Error("content store is unreachable", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrUnavailable, err)
	}

	return s.catalog.Pages(), nil
}

// GetDocument returns the latest saved document of page, or its default when it
// has never been saved. Pages outside the catalog are models.ErrNotFound.
func (s *ContentService) GetDocument(ctx context.Context, page string) (models.PageDocument, error) {
	const op = "service.ContentService.GetDocument"

	log := s.log.With(
		slog.String("op", op),
		slog.String("page", page),
	)

	if _, ok := s.catalog.KindOf(page); !ok {
		return models.PageDocument{}, fmt.Errorf("%s: page %q: %w", op, page, models.ErrNotFound)
	}

	raw, err := s.cache.Get(ctx, page)
	switch {
	case err == nil:
		doc, err := s.catalog.Decode(page, raw)
		if err == nil {
			metrics.ContentLoadsTotal.WithLabelValues(page, metrics.SourceCache).Inc()
			return doc, nil
		}
		log.Warn("dropping undecodable cache entry", sl.Err(err))
		_ = s.cache.Delete(ctx, page)
	case !errors.Is(err, storage.ErrCacheMiss):
		log.Warn("cache read failed", sl.Err(err))
	}

	raw, err = s.repo.GetContent(ctx, page)
	if errors.Is(err, storage.ErrPageNotSaved) {
		log.Debug("page never saved, serving default")
		metrics.ContentLoadsTotal.WithLabelValues(page, metrics.SourceDefault).Inc()

		return s.catalog.DefaultDocumentFor(page)
	}
	if err != nil {
		log.Error("failed to load page", sl.Err(err))

		return models.PageDocument{}, fmt.Errorf("%s: %w: %v", op, models.ErrUnavailable, err)
	}

	doc, err := s.catalog.Decode(page, raw)
	if err != nil {
		log.Error("stored document does not match page kind", sl.Err(err))

		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	s.remember(ctx, log, page, raw)
	metrics.ContentLoadsTotal.WithLabelValues(page, metrics.SourceStore).Inc()

	return doc, nil
}

// PutDocument replaces the whole stored document of page with raw and returns
// what was stored. There is no merge and no conflict check.
func (s *ContentService) PutDocument(ctx context.Context, page string, raw []byte) (models.PageDocument, error) {
	const op = "service.ContentService.PutDocument"

	log := s.log.With(
		slog.String("op", op),
		slog.String("page", page),
	)

	log.Info("saving page")

	kind, ok := s.catalog.KindOf(page)
	if !ok {
		return models.PageDocument{}, fmt.Errorf("%s: page %q: %w", op, page, models.ErrNotFound)
	}

	doc, err := s.catalog.Decode(page, raw)
	if err != nil {
		s.saveFailed(page, "invalid")
		log.Warn("rejected document", sl.Err(err))

		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	s.normalize(doc)

	if err := doc.Validate(); err != nil {
		s.saveFailed(page, "invalid")
		log.Warn("rejected document", sl.Err(err))

		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		s.saveFailed(page, "error")
		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.repo.SaveContent(ctx, page, kind, body)
	if err != nil {
		s.saveFailed(page, "error")
		log.Error("failed to save page", sl.Err(err))

		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := s.catalog.Decode(page, stored)
	if err != nil {
		s.saveFailed(page, "error")
		return models.PageDocument{}, fmt.Errorf("%s: %w", op, err)
	}

	s.remember(ctx, log, page, stored)
	metrics.ContentSavesTotal.WithLabelValues(page, "ok").Inc()

	log.Info("page saved")

	return saved, nil
}

// Ping reports whether the backing store is reachable.
func (s *ContentService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// normalize trims every value and strips markup from free text. Entities are
// unescaped again so "Health & Nutrition" is stored as typed.
func (s *ContentService) normalize(doc models.PageDocument) {
	for _, p := range doc.Content.TextRefs() {
		*p = s.plainText(*p)
	}

	for _, p := range doc.Content.ImageRefs() {
		*p = strings.TrimSpace(*p)
	}

	doc.Content.Normalize()
}

// plainText strips markup until nothing changes. Unescaping can turn
// "&lt;b&gt;" into a tag, so a single pass is not stable under re-saving.
// Every pass either removes something or shortens an entity, len(v)+1 passes
// bound the loop.
func (s *ContentService) plainText(v string) string {
	v = strings.TrimSpace(v)

	for i := 0; i <= len(v); i++ {
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
		if next == v {
			return v
		}
		v = next
	}

	return v
}

func (s *ContentService) remember(ctx context.Context, log *slog.Logger, page string, raw []byte) {
	if err := s.cache.Set(ctx, page, raw); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}
}

func (s *ContentService) saveFailed(page, result string) {
	metrics.ContentSavesTotal.WithLabelValues(page, result).Inc()
}

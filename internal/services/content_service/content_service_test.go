package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"nonprofit_cms/internal/domain/models"
	services "nonprofit_cms/internal/services/content_service"
	"nonprofit_cms/internal/storage"
	"nonprofit_cms/internal/storage/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetContent(ctx context.Context, page string) ([]byte, error) {
	args := m.Called(ctx, page)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *MockContentRepository) SaveContent(ctx context.Context, page string, kind models.PageKind, raw []byte) ([]byte, error) {
	args := m.Called(ctx, page, kind, raw)
	stored, _ := args.Get(0).([]byte)
	return stored, args.Error(1)
}

func (m *MockContentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memRepo is a working in-memory store for round-trip tests.
type memRepo struct {
	pages map[string][]byte
}

func newMemRepo() *memRepo {
	return &memRepo{pages: map[string][]byte{}}
}

func (r *memRepo) GetContent(_ context.Context, page string) ([]byte, error) {
	raw, ok := r.pages[page]
	if !ok {
		return nil, storage.ErrPageNotSaved
	}
	return raw, nil
}

func (r *memRepo) SaveContent(_ context.Context, page string, _ models.PageKind, raw []byte) ([]byte, error) {
	r.pages[page] = raw
	return raw, nil
}

func (r *memRepo) Ping(context.Context) error { return nil }

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("redis: connection refused")
}
func (failingCache) Set(context.Context, string, []byte) error {
	return errors.New("redis: connection refused")
}
func (failingCache) Delete(context.Context, string) error { return nil }

var testCtx = context.Background()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo *memRepo, c cache.DocumentCache) *services.ContentService {
	return services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, c)
}

func TestContentService_ListPages(t *testing.T) {
	t.Run("catalog order", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("Ping", testCtx).Return(nil).Once()

		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, nil)

		pages, err := svc.ListPages(testCtx)
		require.NoError(t, err)
		assert.Equal(t, []string{"home", "life", "team", "contact", "partner", "community", "graduates", "about"}, pages)
		repo.AssertExpectations(t)
	})

	t.Run("store unreachable", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("Ping", testCtx).Return(errors.New("dial tcp: refused")).Once()

		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, nil)

		_, err := svc.ListPages(testCtx)
		assert.ErrorIs(t, err, models.ErrUnavailable)
	})
}

func TestContentService_GetDocument(t *testing.T) {
	t.Run("default on empty", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		for _, page := range models.DefaultCatalog().Pages() {
			doc, err := svc.GetDocument(testCtx, page)
			require.NoError(t, err)

			want, err := models.DefaultCatalog().DefaultDocumentFor(page)
			require.NoError(t, err)
			assert.Equal(t, want, doc, page)
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		_, err := svc.GetDocument(testCtx, "donations")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("GetContent", testCtx, "team").Return(nil, errors.New("conn reset")).Once()

		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, nil)

		_, err := svc.GetDocument(testCtx, "team")
		assert.ErrorIs(t, err, models.ErrUnavailable)
	})

	t.Run("served from cache", func(t *testing.T) {
		repo := new(MockContentRepository)
		c := cache.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(testCtx, "team", []byte(`{"bannerImage":"/uploads/cached.png","teamMembers":[]}`)))

		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, c)

		doc, err := svc.GetDocument(testCtx, "team")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/cached.png", doc.Content.(*models.TeamContent).BannerImage)
		repo.AssertNotCalled(t, "GetContent", mock.Anything, mock.Anything)
	})

	t.Run("bad cache entry falls through to store", func(t *testing.T) {
		repo := newMemRepo()
		repo.pages["team"] = []byte(`{"bannerImage":"/uploads/stored.png","teamMembers":[]}`)
		c := cache.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(testCtx, "team", []byte(`{"headerText":"wrong kind"}`)))

		doc, err := newService(repo, c).GetDocument(testCtx, "team")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/stored.png", doc.Content.(*models.TeamContent).BannerImage)
	})

	t.Run("cache failure is not fatal", func(t *testing.T) {
		repo := newMemRepo()
		repo.pages["about"] = []byte(`{"bannerImage":"","sections":[{"text":"hi","image":"","title":"","caption":""}]}`)

		doc, err := newService(repo, failingCache{}).GetDocument(testCtx, "about")
		require.NoError(t, err)
		assert.Equal(t, "hi", doc.Content.(*models.SectionsContent).Sections[0].Text)
	})
}

func TestContentService_PutDocument(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		svc := newService(newMemRepo(), cache.NewMemoryCache(time.Minute))

		body := `{
			"bannerImage": "/uploads/banner.jpg",
			"headerText": "Our Graduates",
			"subText": "Stories",
			"testimonials": [
				{"name": "Ana", "subtitle": "Class of 2020", "description": "Thanks", "image": "https://cdn.example.org/a.jpg"}
			]
		}`

		saved, err := svc.PutDocument(testCtx, "graduates", []byte(body))
		require.NoError(t, err)

		got, err := svc.GetDocument(testCtx, "graduates")
		require.NoError(t, err)
		assert.Equal(t, saved, got)

		want, err := models.DefaultCatalog().Decode("graduates", []byte(body))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("contact scenario", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		_, err := svc.PutDocument(testCtx, "contact", []byte(`{
			"mainHeading": "Contact Us",
			"contactSections": [
				{"title": "Contact Support"},
				{"title": "Feedback and Suggestions"},
				{"title": "Made Inquiries"}
			]
		}`))
		require.NoError(t, err)

		doc, err := svc.GetDocument(testCtx, "contact")
		require.NoError(t, err)

		raw, err := json.Marshal(doc)
		require.NoError(t, err)

		var wire struct {
			MainHeading     string           `json:"mainHeading"`
			ContactSections []map[string]any `json:"contactSections"`
		}
		require.NoError(t, json.Unmarshal(raw, &wire))

		assert.Equal(t, "Contact Us", wire.MainHeading)
		require.Len(t, wire.ContactSections, 3)
		for i, title := range []string{"Contact Support", "Feedback and Suggestions", "Made Inquiries"} {
			assert.Equal(t, title, wire.ContactSections[i]["title"])
			assert.Equal(t, "", wire.ContactSections[i]["description"], "description must be present and empty")
		}
	})

	t.Run("server normalization", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		saved, err := svc.PutDocument(testCtx, "life", []byte(`{
			"headerText": "  <b>Life</b> at the center ",
			"description": "Health & Nutrition <script>alert(1)</script>",
			"tabs": ["All", " Health and Nutrition "],
			"galleryImages": [{"src": " /uploads/a.png ", "title": "Meal"}]
		}`))
		require.NoError(t, err)

		g := saved.Content.(*models.GalleryContent)
		assert.Equal(t, "Life at the center", g.HeaderText)
		assert.Equal(t, "Health & Nutrition", g.Description)
		assert.Equal(t, []string{"All", "Health and Nutrition"}, g.Tabs)
		assert.Equal(t, "/uploads/a.png", g.GalleryImages[0].Src)
		assert.Equal(t, []string{}, g.GalleryImages[0].Tags)
	})

	t.Run("escaped markup is stripped and stable on re-save", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		first, err := svc.PutDocument(testCtx, "life", []byte(`{
			"headerText": "&lt;script&gt;alert(1)&lt;/script&gt;",
			"description": "&lt;b&gt;hi&lt;/b&gt; &amp;lt;i&amp;gt;there",
			"tabs": ["All", "Health &amp; Nutrition", "a < b"]
		}`))
		require.NoError(t, err)

		g := first.Content.(*models.GalleryContent)
		assert.Empty(t, g.HeaderText)
		assert.Equal(t, "hi there", g.Description)
		assert.Equal(t, []string{"All", "Health & Nutrition", "a < b"}, g.Tabs)

		raw, err := json.Marshal(first)
		require.NoError(t, err)

		second, err := svc.PutDocument(testCtx, "life", raw)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("validation failure is not stored", func(t *testing.T) {
		repo := new(MockContentRepository)
		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, nil)

		_, err := svc.PutDocument(testCtx, "contact", []byte(`{"email":"nope"}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrValidationFailed)
		assert.True(t, models.IsValidationError(err))

		_, err = svc.PutDocument(testCtx, "contact", []byte(`{"unknown":"x"}`))
		assert.ErrorIs(t, err, models.ErrValidationFailed)

		_, err = svc.PutDocument(testCtx, "team", []byte(`{"bannerImage":"data:image/png;base64,AA"}`))
		assert.ErrorIs(t, err, models.ErrValidationFailed)

		repo.AssertNotCalled(t, "SaveContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown page", func(t *testing.T) {
		svc := newService(newMemRepo(), nil)

		_, err := svc.PutDocument(testCtx, "donations", []byte(`{}`))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("SaveContent", testCtx, "team", models.KindTeam, mock.Anything).
			Return(nil, errors.New("conn reset")).Once()

		svc := services.NewContentService(discardLogger(), models.DefaultCatalog(), repo, nil)

		_, err := svc.PutDocument(testCtx, "team", []byte(`{}`))
		require.Error(t, err)
		assert.False(t, models.IsValidationError(err))
		repo.AssertExpectations(t)
	})

	t.Run("last writer wins", func(t *testing.T) {
		svc := newService(newMemRepo(), cache.NewMemoryCache(time.Minute))

		_, err := svc.PutDocument(testCtx, "team", []byte(`{"teamMembers":[{"name":"A"}]}`))
		require.NoError(t, err)
		_, err = svc.PutDocument(testCtx, "team", []byte(`{"teamMembers":[]}`))
		require.NoError(t, err)

		doc, err := svc.GetDocument(testCtx, "team")
		require.NoError(t, err)
		assert.Empty(t, doc.Content.(*models.TeamContent).TeamMembers)
	})

	t.Run("cache failure is not fatal", func(t *testing.T) {
		svc := newService(newMemRepo(), failingCache{})

		_, err := svc.PutDocument(testCtx, "about", []byte(`{"sections":[]}`))
		assert.NoError(t, err)
	})
}

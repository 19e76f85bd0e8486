package models_test

import (
	"encoding/json"
	"testing"

	"nonprofit_cms/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("fills missing lists", func(t *testing.T) {
		doc, err := models.DecodeDocument("team", models.KindTeam, []byte(`{"bannerImage":"/uploads/b.png"}`))
		require.NoError(t, err)

		content := doc.Content.(*models.TeamContent)
		assert.Equal(t, "/uploads/b.png", content.BannerImage)
		assert.NotNil(t, content.TeamMembers)
		assert.Empty(t, content.TeamMembers)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := models.DecodeDocument("team", models.KindTeam, []byte(`{"headerText":"x"}`))
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
		assert.ErrorIs(t, err, models.ErrValidationFailed)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := models.DecodeDocument("life", models.KindGallery, []byte(`{"tabs":"All"}`))
		assert.ErrorIs(t, err, models.ErrValidationFailed)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := models.DecodeDocument("about", models.KindSections, []byte(`{} {}`))
		assert.ErrorIs(t, err, models.ErrValidationFailed)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := models.DecodeDocument("x", "slideshow", []byte(`{}`))
		assert.ErrorIs(t, err, models.ErrUnknownPageKind)
	})
}

func TestPageDocument_MarshalJSON(t *testing.T) {
	doc, err := models.DefaultCatalog().DefaultDocumentFor("contact")
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	// every recognized field is present, empty strings included
	for _, key := range []string{
		"bannerImage", "mainHeading", "mainDescription", "email", "phone",
		"contactSections", "locationHeading", "locationTitle", "locationSubHeading", "addressLines",
	} {
		assert.Contains(t, fields, key)
	}

	sections := fields["contactSections"].([]any)
	require.Len(t, sections, 3)
	assert.Equal(t, map[string]any{"title": "Contact Support", "description": ""}, sections[0])
	assert.Equal(t, []any{}, fields["addressLines"])
}

func TestPageDocument_RoundTrip(t *testing.T) {
	const raw = `{
		"bannerImage": "/uploads/banner.jpg",
		"headerTitle": "Welcome",
		"headerDescription": "We help",
		"featureCards": [{"title": "Learn", "description": "d", "image": ""}],
		"highlightCards": [{"title": "H", "description": "", "image": "https://cdn.example.org/h.png", "link": "/about"}],
		"community": {"title": "Join", "description": "", "image": ""},
		"testimonialCards": []
	}`

	doc, err := models.DecodeDocument("home", models.KindHome, []byte(raw))
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	again, err := models.DecodeDocument("home", models.KindHome, out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestPageDocument_Resolved(t *testing.T) {
	doc, err := models.DecodeDocument("about", models.KindSections, []byte(`{
		"bannerImage": "/uploads/b.png",
		"sections": [{"text": "t", "image": "https://cdn.example.org/s.png", "title": "", "caption": ""}]
	}`))
	require.NoError(t, err)

	resolved := doc.Resolved("https://cms.example.org")

	assert.Equal(t, "https://cms.example.org/uploads/b.png", resolved.Content.(*models.SectionsContent).BannerImage)
	assert.Equal(t, "https://cdn.example.org/s.png", resolved.Content.(*models.SectionsContent).Sections[0].Image)
	// original untouched
	assert.Equal(t, "/uploads/b.png", doc.Content.(*models.SectionsContent).BannerImage)
}

func TestPageDocument_Clone(t *testing.T) {
	doc, err := models.DecodeDocument("life", models.KindGallery, []byte(`{
		"tabs": ["All"],
		"galleryImages": [{"src": "/uploads/a.png", "tags": ["All"], "title": "", "description": ""}]
	}`))
	require.NoError(t, err)

	clone := doc.Clone()
	g := clone.Content.(*models.GalleryContent)
	g.Tabs[0] = "Changed"
	g.GalleryImages[0].Tags[0] = "Changed"

	orig := doc.Content.(*models.GalleryContent)
	assert.Equal(t, "All", orig.Tabs[0])
	assert.Equal(t, "All", orig.GalleryImages[0].Tags[0])
}

func TestFieldRef_String(t *testing.T) {
	assert.Equal(t, "bannerImage", models.Field("bannerImage").String())
	assert.Equal(t, "tabs[2]", models.Item("tabs", 2, "").String())
	assert.Equal(t, "sections[0].text", models.Item("sections", 0, "text").String())
}

func TestParsePageKind(t *testing.T) {
	k, err := models.ParsePageKind("gallery")
	require.NoError(t, err)
	assert.Equal(t, models.KindGallery, k)

	_, err = models.ParsePageKind("Gallery")
	assert.ErrorIs(t, err, models.ErrUnknownPageKind)
}

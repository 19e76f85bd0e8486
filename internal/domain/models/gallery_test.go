package models_test

import (
	"testing"

	"nonprofit_cms/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterGalleryImages(t *testing.T) {
	doc, err := models.DefaultCatalog().Decode("life", []byte(`{
		"tabs": ["All", "Educating the Young", "Health and Nutrition"],
		"galleryImages": [
			{"src": "/uploads/meal.jpg", "tags": ["Health and Nutrition"], "title": "Meals", "description": ""}
		]
	}`))
	require.NoError(t, err)

	images := doc.Content.(*models.GalleryContent).GalleryImages

	assert.Len(t, models.FilterGalleryImages(images, "All"), 1)

	health := models.FilterGalleryImages(images, "Health and Nutrition")
	require.Len(t, health, 1)
	assert.Equal(t, "Meals", health[0].Title)

	assert.Empty(t, models.FilterGalleryImages(images, "Educating the Young"))
}

func TestGalleryContent_ToggleTag(t *testing.T) {
	c := models.DefaultContent(models.KindGallery).(*models.GalleryContent)
	require.NoError(t, c.AppendItem(models.ListGalleryImages))
	assert.NotNil(t, c.GalleryImages[0].Tags)

	require.NoError(t, c.ToggleTag(0, "Health and Nutrition"))
	require.NoError(t, c.ToggleTag(0, "Educating the Young"))
	assert.Equal(t, []string{"Health and Nutrition", "Educating the Young"}, c.GalleryImages[0].Tags)

	require.NoError(t, c.ToggleTag(0, "Health and Nutrition"))
	assert.Equal(t, []string{"Educating the Young"}, c.GalleryImages[0].Tags)

	assert.ErrorIs(t, c.ToggleTag(1, "All"), models.ErrIndexOutOfRange)
}

func TestGalleryContent_RenameTabKeepsTags(t *testing.T) {
	c := models.DefaultContent(models.KindGallery).(*models.GalleryContent)
	require.NoError(t, c.AppendItem(models.ListGalleryImages))
	require.NoError(t, c.ToggleTag(0, "Health and Nutrition"))

	require.NoError(t, c.SetField(models.Item(models.ListTabs, 2, ""), "Nutrition"))

	assert.Equal(t, "Nutrition", c.Tabs[2])
	assert.True(t, c.GalleryImages[0].HasTag("Health and Nutrition"))
	assert.Empty(t, models.FilterGalleryImages(c.GalleryImages, "Nutrition"))
}

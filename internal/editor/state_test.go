package editor_test

import (
	"errors"
	"testing"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReduce(t *testing.T, s editor.State, a editor.Action) editor.State {
	t.Helper()

	next, err := editor.Reduce(s, a)
	require.NoError(t, err)

	return next
}

func readyState(t *testing.T, page string) editor.State {
	t.Helper()

	catalog := models.DefaultCatalog()
	kind, ok := catalog.KindOf(page)
	require.True(t, ok)

	doc, err := catalog.DefaultDocumentFor(page)
	require.NoError(t, err)

	s := mustReduce(t, editor.State{}, editor.SelectPage{Page: page, Kind: kind})
	return mustReduce(t, s, editor.LoadSucceeded{Generation: s.Generation, Document: doc})
}

func TestReduce_SelectPage(t *testing.T) {
	s := readyState(t, "contact")
	s = mustReduce(t, s, editor.SetActiveSection{ID: "location"})
	require.Equal(t, "location", s.ActiveSection)

	next := mustReduce(t, s, editor.SelectPage{Page: "life", Kind: models.KindGallery})

	assert.Equal(t, editor.StatusLoading, next.Status)
	assert.Equal(t, "life", next.Page)
	assert.Equal(t, s.Generation+1, next.Generation)
	assert.Equal(t, "banner", next.ActiveSection)
	assert.Equal(t, models.SectionsFor(models.KindGallery), next.Sections)
	assert.False(t, next.HasDocument())

	_, err := editor.Reduce(next, editor.SetActiveSection{ID: "location"})
	assert.ErrorIs(t, err, editor.ErrUnknownSection)
}

func TestReduce_HomeStartsOnHeader(t *testing.T) {
	s := mustReduce(t, editor.State{}, editor.SelectPage{Page: "home", Kind: models.KindHome})
	assert.Equal(t, "header", s.ActiveSection)
}

func TestReduce_EditsNeedDocument(t *testing.T) {
	_, err := editor.Reduce(editor.State{}, editor.SetField{Ref: models.Field("bannerImage"), Value: "x"})
	assert.ErrorIs(t, err, editor.ErrNoDocument)

	loading := mustReduce(t, editor.State{}, editor.SelectPage{Page: "team", Kind: models.KindTeam})
	_, err = editor.Reduce(loading, editor.AppendItem{List: models.ListTeamMembers})
	assert.ErrorIs(t, err, editor.ErrNoDocument)

	_, err = editor.Reduce(loading, editor.BeginSave{})
	assert.ErrorIs(t, err, editor.ErrNotEditable)
}

func TestReduce_SnapshotsAreImmutable(t *testing.T) {
	before := readyState(t, "team")

	after := mustReduce(t, before, editor.AppendItem{List: models.ListTeamMembers})
	after = mustReduce(t, after, editor.SetField{Ref: models.Item(models.ListTeamMembers, 0, "name"), Value: "Ana"})

	assert.Empty(t, before.Document.Content.(*models.TeamContent).TeamMembers)
	assert.Equal(t, "Ana", after.Document.Content.(*models.TeamContent).TeamMembers[0].Name)
}

func TestReduce_AppendRemoveRestores(t *testing.T) {
	s := readyState(t, "contact")

	appended := mustReduce(t, s, editor.AppendItem{List: models.ListContactSections})
	require.Len(t, appended.Document.Content.(*models.ContactContent).ContactSections, 4)

	removed := mustReduce(t, appended, editor.RemoveItem{List: models.ListContactSections, Index: 3})
	assert.Equal(t, s.Document, removed.Document)
}

func TestReduce_ToggleTagOnlyOnGallery(t *testing.T) {
	s := readyState(t, "team")

	_, err := editor.Reduce(s, editor.ToggleTag{Index: 0, Tag: "All"})
	assert.ErrorIs(t, err, models.ErrUnknownList)

	g := readyState(t, "life")
	g = mustReduce(t, g, editor.AppendItem{List: models.ListGalleryImages})
	g = mustReduce(t, g, editor.ToggleTag{Index: 0, Tag: "Health and Nutrition"})

	assert.Len(t, g.GalleryImages("Health and Nutrition"), 1)
	assert.Empty(t, g.GalleryImages("Educating the Young"))
	assert.Len(t, g.GalleryImages(models.AllTab), 1)
}

func TestReduce_FailedSavePreservesEdits(t *testing.T) {
	s := readyState(t, "contact")
	s = mustReduce(t, s, editor.SetField{Ref: models.Field("mainHeading"), Value: "Contact Us"})
	s = mustReduce(t, s, editor.RemoveItem{List: models.ListContactSections, Index: 1})

	beforeSave := s.Document.Clone()

	saving := mustReduce(t, s, editor.BeginSave{})
	require.Equal(t, editor.StatusSaving, saving.Status)

	_, err := editor.Reduce(saving, editor.BeginSave{})
	assert.ErrorIs(t, err, editor.ErrBusy)
	_, err = editor.Reduce(saving, editor.SetField{Ref: models.Field("phone"), Value: "1"})
	assert.ErrorIs(t, err, editor.ErrNotEditable)
	_, err = editor.Reduce(saving, editor.SelectPage{Page: "home", Kind: models.KindHome})
	assert.ErrorIs(t, err, editor.ErrBusy)

	saveErr := errors.New("server said no")
	failed := mustReduce(t, saving, editor.SaveFailed{Generation: saving.Generation, Err: saveErr})

	assert.Equal(t, editor.StatusError, failed.Status)
	assert.Equal(t, saveErr, failed.Err)
	assert.Equal(t, beforeSave, failed.Document)

	// the user can fix things and save again
	assert.True(t, failed.CanSave())
	retry := mustReduce(t, failed, editor.BeginSave{})
	assert.Equal(t, editor.StatusSaving, retry.Status)
	assert.Nil(t, retry.Err)
}

func TestReduce_SaveSucceededAdoptsServerDocument(t *testing.T) {
	s := readyState(t, "about")
	s = mustReduce(t, s, editor.AppendItem{List: models.ListSections})
	s = mustReduce(t, s, editor.SetField{Ref: models.Item(models.ListSections, 0, "text"), Value: "  hello  "})
	s = mustReduce(t, s, editor.BeginSave{})

	server, err := models.DefaultCatalog().Decode("about", []byte(`{"sections":[{"text":"hello"}]}`))
	require.NoError(t, err)

	s = mustReduce(t, s, editor.SaveSucceeded{Generation: s.Generation, Document: server})

	assert.Equal(t, editor.StatusReady, s.Status)
	assert.Equal(t, "hello", s.Document.Content.(*models.SectionsContent).Sections[0].Text)
}

func TestReduce_ImageUploaded(t *testing.T) {
	banner := models.Field(models.FieldBannerImage)

	t.Run("written into field", func(t *testing.T) {
		s := readyState(t, "team")
		s = mustReduce(t, s, editor.ImageUploaded{Generation: s.Generation, Ref: banner, Path: "/uploads/a.png"})

		assert.Equal(t, "/uploads/a.png", s.Document.Content.(*models.TeamContent).BannerImage)
		assert.Equal(t, "https://cms.example.org/uploads/a.png",
			s.Display("https://cms.example.org").Content.(*models.TeamContent).BannerImage)
	})

	t.Run("stale generation dropped", func(t *testing.T) {
		s := readyState(t, "team")
		old := s.Generation

		s = mustReduce(t, s, editor.SelectPage{Page: "team", Kind: models.KindTeam})
		doc, _ := models.DefaultCatalog().DefaultDocumentFor("team")
		s = mustReduce(t, s, editor.LoadSucceeded{Generation: s.Generation, Document: doc})

		_, err := editor.Reduce(s, editor.ImageUploaded{Generation: old, Ref: banner, Path: "/uploads/a.png"})
		assert.ErrorIs(t, err, editor.ErrStale)
	})

	t.Run("held during save", func(t *testing.T) {
		s := readyState(t, "team")
		s = mustReduce(t, s, editor.BeginSave{})
		s = mustReduce(t, s, editor.ImageUploaded{Generation: s.Generation, Ref: banner, Path: "/uploads/late.png"})

		assert.Empty(t, s.Document.Content.(*models.TeamContent).BannerImage)

		server, _ := models.DefaultCatalog().DefaultDocumentFor("team")
		s = mustReduce(t, s, editor.SaveSucceeded{Generation: s.Generation, Document: server})

		assert.Equal(t, "/uploads/late.png", s.Document.Content.(*models.TeamContent).BannerImage)
	})
}

func TestReduce_LoadResults(t *testing.T) {
	s := mustReduce(t, editor.State{}, editor.SelectPage{Page: "partner", Kind: models.KindPartner})
	fallback, _ := models.DefaultCatalog().DefaultDocumentFor("partner")

	loadErr := errors.New("unreachable")
	failed := mustReduce(t, s, editor.LoadFailed{Generation: s.Generation, Err: loadErr, Fallback: fallback})

	assert.Equal(t, editor.StatusError, failed.Status)
	assert.Equal(t, fallback, failed.Document)
	assert.True(t, failed.CanEdit())

	_, err := editor.Reduce(failed, editor.LoadSucceeded{Generation: s.Generation, Document: fallback})
	assert.ErrorIs(t, err, editor.ErrStale)

	_, err = editor.Reduce(s, editor.LoadSucceeded{Generation: s.Generation + 1, Document: fallback})
	assert.ErrorIs(t, err, editor.ErrStale)
}

func TestReduce_NilAction(t *testing.T) {
	_, err := editor.Reduce(editor.State{}, nil)
	assert.ErrorIs(t, err, editor.ErrUnknownAction)
}

// Package editor holds the client side of page editing: a reducer over editor
// state and an Editor that drives it against the content API.
package editor

import (
	"errors"
	"fmt"
	"slices"

	"nonprofit_cms/internal/domain/models"
)

type Status int

const (
	StatusUnloaded Status = iota
	StatusLoading
	StatusReady
	StatusSaving
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUnloaded:
		return "unloaded"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	}

	return fmt.Sprintf("status(%d)", int(s))
}

var (
	// ErrStale is returned for results that belong to an abandoned page load.
	ErrStale          = errors.New("stale result")
	ErrBusy           = errors.New("save in progress")
	ErrNotEditable    = errors.New("document is not editable now")
	ErrNoDocument     = errors.New("no document loaded")
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownAction  = errors.New("unknown action")
)

type pendingImage struct {
	ref  models.FieldRef
	path string
}

// State is one snapshot of an editor session. Reduce never mutates a State it
// is given, so earlier snapshots stay valid.
type State struct {
	Status Status
	Page   string
	Kind   models.PageKind
	// Generation changes on every page selection. Async results carry the
	// generation they were started under.
	Generation    uint64
	Document      models.PageDocument
	Sections      []models.Section
	ActiveSection string
	Err           error

	// uploads finished while a save was in flight, applied once it settles
	pending []pendingImage
}

func (s State) HasDocument() bool {
	return s.Document.Content != nil
}

// CanEdit reports whether field edits are accepted. A failed load or save
// leaves an editable document behind.
func (s State) CanEdit() bool {
	return s.HasDocument() && (s.Status == StatusReady || s.Status == StatusError)
}

func (s State) CanSave() bool {
	return s.CanEdit()
}

// Display returns the document with every image resolved for showing.
func (s State) Display(uploadBaseURL string) models.PageDocument {
	return s.Document.Resolved(uploadBaseURL)
}

// GalleryImages returns the gallery images visible under tab, or nil when the
// page is not a gallery.
func (s State) GalleryImages(tab string) []models.GalleryImage {
	g, ok := s.Document.Content.(*models.GalleryContent)
	if !ok {
		return nil
	}

	return models.FilterGalleryImages(g.GalleryImages, tab)
}

type Action interface {
	apply(s State) (State, error)
}

// Reduce applies a to s. On error the returned state is s unchanged.
func Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, ErrUnknownAction
	}

	next, err := a.apply(s)
	if err != nil {
		return s, err
	}

	return next, nil
}

// SelectPage starts loading Page. Kind comes from the catalog.
type SelectPage struct {
	Page string
	Kind models.PageKind
}

func (a SelectPage) apply(s State) (State, error) {
	if s.Status == StatusSaving {
		return s, ErrBusy
	}

	sections := models.SectionsFor(a.Kind)

	return State{
		Status:        StatusLoading,
		Page:          a.Page,
		Kind:          a.Kind,
		Generation:    s.Generation + 1,
		Sections:      sections,
		ActiveSection: sections[0].ID,
	}, nil
}

type LoadSucceeded struct {
	Generation uint64
	Document   models.PageDocument
}

func (a LoadSucceeded) apply(s State) (State, error) {
	if a.Generation != s.Generation || s.Status != StatusLoading {
		return s, ErrStale
	}
	if a.Document.Content == nil {
		return s, ErrNoDocument
	}

	doc := a.Document.Clone()
	doc.Content.Normalize()

	s.Status = StatusReady
	s.Document = doc
	s.Err = nil

	return s, nil
}

// LoadFailed keeps the editor usable on Fallback, normally the page default.
type LoadFailed struct {
	Generation uint64
	Err        error
	Fallback   models.PageDocument
}

func (a LoadFailed) apply(s State) (State, error) {
	if a.Generation != s.Generation || s.Status != StatusLoading {
		return s, ErrStale
	}

	s.Status = StatusError
	s.Err = a.Err
	s.Document = a.Fallback.Clone()

	return s, nil
}

type SetActiveSection struct {
	ID string
}

func (a SetActiveSection) apply(s State) (State, error) {
	if !slices.ContainsFunc(s.Sections, func(sec models.Section) bool { return sec.ID == a.ID }) {
		return s, fmt.Errorf("%w: %q", ErrUnknownSection, a.ID)
	}

	s.ActiveSection = a.ID

	return s, nil
}

// edit applies fn to a copy of the document.
func edit(s State, fn func(c models.Content) error) (State, error) {
	if !s.HasDocument() {
		return s, ErrNoDocument
	}
	if !s.CanEdit() {
		return s, fmt.Errorf("%w: %s", ErrNotEditable, s.Status)
	}

	doc := s.Document.Clone()
	if err := fn(doc.Content); err != nil {
		return s, err
	}

	s.Document = doc

	return s, nil
}

type SetField struct {
	Ref   models.FieldRef
	Value string
}

func (a SetField) apply(s State) (State, error) {
	return edit(s, func(c models.Content) error {
		return c.SetField(a.Ref, a.Value)
	})
}

// AppendItem adds a blank entry at the end of List.
type AppendItem struct {
	List string
}

func (a AppendItem) apply(s State) (State, error) {
	return edit(s, func(c models.Content) error {
		return c.AppendItem(a.List)
	})
}

// RemoveItem deletes exactly the entry at Index of List.
type RemoveItem struct {
	List  string
	Index int
}

func (a RemoveItem) apply(s State) (State, error) {
	return edit(s, func(c models.Content) error {
		return c.RemoveItem(a.List, a.Index)
	})
}

// ToggleTag flips Tag on the gallery image at Index.
type ToggleTag struct {
	Index int
	Tag   string
}

func (a ToggleTag) apply(s State) (State, error) {
	return edit(s, func(c models.Content) error {
		g, ok := c.(*models.GalleryContent)
		if !ok {
			return fmt.Errorf("%w: %q on %s page", models.ErrUnknownList, models.ListGalleryImages, c.Kind())
		}
		return g.ToggleTag(a.Index, a.Tag)
	})
}

// ImageUploaded writes an uploaded image path into Ref. Uploads finishing
// during a save are held until the save settles.
type ImageUploaded struct {
	Generation uint64
	Ref        models.FieldRef
	Path       string
}

func (a ImageUploaded) apply(s State) (State, error) {
	if a.Generation != s.Generation {
		return s, ErrStale
	}

	if s.Status == StatusSaving {
		s.pending = append(slices.Clone(s.pending), pendingImage{ref: a.Ref, path: a.Path})
		return s, nil
	}

	return SetField{Ref: a.Ref, Value: a.Path}.apply(s)
}

// BeginSave moves to Saving. The document to send is State.Document.
type BeginSave struct{}

func (BeginSave) apply(s State) (State, error) {
	if s.Status == StatusSaving {
		return s, ErrBusy
	}
	if !s.CanSave() {
		return s, fmt.Errorf("%w: %s", ErrNotEditable, s.Status)
	}

	s.Status = StatusSaving
	s.Err = nil

	return s, nil
}

// SaveSucceeded adopts the stored document returned by the server.
type SaveSucceeded struct {
	Generation uint64
	Document   models.PageDocument
}

func (a SaveSucceeded) apply(s State) (State, error) {
	if a.Generation != s.Generation || s.Status != StatusSaving {
		return s, ErrStale
	}
	if a.Document.Content == nil {
		return s, ErrNoDocument
	}

	doc := a.Document.Clone()
	doc.Content.Normalize()

	s.Status = StatusReady
	s.Document = doc

	return s.flushPending(), nil
}

// SaveFailed keeps the document exactly as it was sent.
type SaveFailed struct {
	Generation uint64
	Err        error
}

func (a SaveFailed) apply(s State) (State, error) {
	if a.Generation != s.Generation || s.Status != StatusSaving {
		return s, ErrStale
	}

	s.Status = StatusError
	s.Err = a.Err

	return s.flushPending(), nil
}

func (s State) flushPending() State {
	if len(s.pending) == 0 {
		return s
	}

	doc := s.Document.Clone()
	for _, p := range s.pending {
		// the server may have dropped the list item the image was for
		_ = doc.Content.SetField(p.ref, p.path)
	}

	s.Document = doc
	s.pending = nil

	return s
}

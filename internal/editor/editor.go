package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"nonprofit_cms/internal/domain/models"
	"nonprofit_cms/internal/lib/logger/sl"
)

// ContentAPI is what the editor needs from the server.
type ContentAPI interface {
	ListPages(ctx context.Context) ([]string, error)
	GetDocument(ctx context.Context, page string) (models.PageDocument, error)
	PutDocument(ctx context.Context, doc models.PageDocument) (models.PageDocument, error)
	UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error)
}

type Operation string

const (
	OpList   Operation = "list"
	OpLoad   Operation = "load"
	OpSave   Operation = "save"
	OpUpload Operation = "upload"
)

// Notice is a failure shown to the person editing. Nothing is retried for them.
type Notice struct {
	Op      Operation
	Page    string
	Ref     models.FieldRef
	Err     error
	Message string
}

// Kind returns the taxonomy error the notice belongs to, or nil.
func (n Notice) Kind() error {
	for _, k := range []error{
		models.ErrUnauthorized,
		models.ErrValidationFailed,
		models.ErrUploadFailed,
		models.ErrNotFound,
		models.ErrUnavailable,
	} {
		if errors.Is(n.Err, k) {
			return k
		}
	}

	return nil
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type Option func(*Editor)

func WithLogger(log *slog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notifier = n }
}

// WithUploadBaseURL sets the base used to display stored upload paths.
func WithUploadBaseURL(base string) Option {
	return func(e *Editor) { e.uploadBaseURL = base }
}

// Editor is one editing session. All methods are safe for concurrent use;
// uploads in particular may run in parallel with each other and with a save.
type Editor struct {
	api           ContentAPI
	catalog       *models.Catalog
	log           *slog.Logger
	notifier      Notifier
	uploadBaseURL string

	mu    sync.Mutex
	state State
}

func New(api ContentAPI, catalog *models.Catalog, opts ...Option) *Editor {
	e := &Editor{
		api:      api,
		catalog:  catalog,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		notifier: NotifierFunc(func(Notice) {}),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns a snapshot. Its document is a copy.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	s.Document = s.Document.Clone()
	s.Sections = append([]models.Section(nil), s.Sections...)

	return s
}

// Display returns the current document with images resolved for showing.
func (e *Editor) Display() models.PageDocument {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Display(e.uploadBaseURL)
}

func (e *Editor) dispatch(a Action) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := Reduce(e.state, a)
	if err != nil {
		return e.state, err
	}

	e.state = next

	return next, nil
}

func (e *Editor) notify(n Notice) {
	if n.Message == "" && n.Err != nil {
		n.Message = n.Err.Error()
	}

	e.notifier.Notify(n)
}

// Pages lists the selectable pages. When the server cannot be reached the
// configured catalog is used so the editor stays usable.
func (e *Editor) Pages(ctx context.Context) []string {
	const op = "editor.Editor.Pages"

	pages, err := e.api.ListPages(ctx)
	if err != nil {
		e.log.Warn("page list unavailable, using catalog", slog.String("op", op), sl.Err(err))
		e.notify(Notice{Op: OpList, Err: err})

		return e.catalog.Pages()
	}

	return pages
}

// SelectPage abandons the current page and loads page. On failure the editor
// is left in StatusError on the page's default document.
func (e *Editor) SelectPage(ctx context.Context, page string) error {
	const op = "editor.Editor.SelectPage"

	log := e.log.With(slog.String("op", op), slog.String("page", page))

	kind, ok := e.catalog.KindOf(page)
	if !ok {
		err := fmt.Errorf("page %q: %w", page, models.ErrNotFound)
		e.notify(Notice{Op: OpLoad, Page: page, Err: err})
		return err
	}

	s, err := e.dispatch(SelectPage{Page: page, Kind: kind})
	if err != nil {
		return err
	}
	gen := s.Generation

	doc, err := e.api.GetDocument(ctx, page)
	if err == nil && doc.Kind != kind {
		err = fmt.Errorf("server sent a %s document for %s page %q", doc.Kind, kind, page)
	}
	if err != nil {
		log.Error("load failed", sl.Err(err))

		fallback, _ := e.catalog.DefaultDocumentFor(page)
		if _, rerr := e.dispatch(LoadFailed{Generation: gen, Err: err, Fallback: fallback}); errors.Is(rerr, ErrStale) {
			return ErrStale
		}

		e.notify(Notice{Op: OpLoad, Page: page, Err: err})

		return err
	}

	if _, err := e.dispatch(LoadSucceeded{Generation: gen, Document: doc}); err != nil {
		log.Debug("load result discarded", sl.Err(err))
		return err
	}

	return nil
}

func (e *Editor) SetActiveSection(id string) error {
	_, err := e.dispatch(SetActiveSection{ID: id})
	return err
}

func (e *Editor) SetField(ref models.FieldRef, value string) error {
	_, err := e.dispatch(SetField{Ref: ref, Value: value})
	return err
}

func (e *Editor) AppendItem(list string) error {
	_, err := e.dispatch(AppendItem{List: list})
	return err
}

func (e *Editor) RemoveItem(list string, index int) error {
	_, err := e.dispatch(RemoveItem{List: list, Index: index})
	return err
}

func (e *Editor) ToggleTag(index int, tag string) error {
	_, err := e.dispatch(ToggleTag{Index: index, Tag: tag})
	return err
}

// UploadImage uploads src and writes the returned path into ref. On failure
// the field keeps its previous value. A result for a page that has since been
// left is dropped and ErrStale returned.
func (e *Editor) UploadImage(ctx context.Context, ref models.FieldRef, src io.Reader, fileName string) (string, error) {
	const op = "editor.Editor.UploadImage"

	e.mu.Lock()
	s := e.state
	if !s.HasDocument() {
		e.mu.Unlock()
		return "", ErrNoDocument
	}
	// reject bad refs before anything is uploaded
	if err := s.Document.Content.Clone().SetField(ref, ""); err != nil {
		e.mu.Unlock()
		return "", err
	}
	e.mu.Unlock()

	log := e.log.With(
		slog.String("op", op),
		slog.String("page", s.Page),
		slog.String("field", ref.String()),
	)

	path, err := e.api.UploadImage(ctx, src, fileName)
	if err != nil {
		log.Error("upload failed", sl.Err(err))
		e.notify(Notice{Op: OpUpload, Page: s.Page, Ref: ref, Err: err})

		return "", err
	}

	if _, err := e.dispatch(ImageUploaded{Generation: s.Generation, Ref: ref, Path: path}); err != nil {
		log.Info("upload result discarded", slog.String("path", path), sl.Err(err))
		return "", err
	}

	return path, nil
}

// Save sends the whole document and adopts what the server stored. A failed
// save keeps every edit.
func (e *Editor) Save(ctx context.Context) (models.PageDocument, error) {
	const op = "editor.Editor.Save"

	s, err := e.dispatch(BeginSave{})
	if err != nil {
		return models.PageDocument{}, err
	}

	log := e.log.With(slog.String("op", op), slog.String("page", s.Page))

	doc := s.Document.Clone()
	doc.Content.Normalize()

	saved, err := e.api.PutDocument(ctx, doc)
	if err == nil && saved.Content == nil {
		err = fmt.Errorf("%s: empty document in response", op)
	}
	if err != nil {
		log.Error("save failed", sl.Err(err))
		_, _ = e.dispatch(SaveFailed{Generation: s.Generation, Err: err})
		e.notify(Notice{Op: OpSave, Page: s.Page, Err: err})

		return models.PageDocument{}, err
	}

	if _, err := e.dispatch(SaveSucceeded{Generation: s.Generation, Document: saved}); err != nil {
		return models.PageDocument{}, err
	}

	log.Info("page saved")

	return saved, nil
}

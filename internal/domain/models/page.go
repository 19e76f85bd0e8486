package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageKind определяет набор полей, которые распознаются в документе страницы
type PageKind string

const (
	KindSections     PageKind = "sections"
	KindPartner      PageKind = "partner"
	KindContact      PageKind = "contact"
	KindTestimonials PageKind = "testimonials"
	KindTeam         PageKind = "team"
	KindGallery      PageKind = "gallery"
	KindHome         PageKind = "home"
)

var pageKinds = []PageKind{
	KindSections,
	KindPartner,
	KindContact,
	KindTestimonials,
	KindTeam,
	KindGallery,
	KindHome,
}

func ParsePageKind(s string) (PageKind, error) {
	for _, k := range pageKinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPageKind, s)
}

// FieldRef addresses one editable value. List is empty for top-level fields.
// Field is empty for lists of plain strings (tabs, address lines).
type FieldRef struct {
	List  string `json:"list,omitempty"`
	Index int    `json:"index,omitempty"`
	Field string `json:"field,omitempty"`
}

func Field(name string) FieldRef {
	return FieldRef{Field: name}
}

func Item(list string, index int, field string) FieldRef {
	return FieldRef{List: list, Index: index, Field: field}
}

func (r FieldRef) String() string {
	switch {
	case r.List == "":
		return r.Field
	case r.Field == "":
		return fmt.Sprintf("%s[%d]", r.List, r.Index)
	default:
		return fmt.Sprintf("%s[%d].%s", r.List, r.Index, r.Field)
	}
}

// Content is the kind-specific body of a page document.
type Content interface {
	Kind() PageKind
	SetField(ref FieldRef, value string) error
	AppendItem(list string) error
	RemoveItem(list string, index int) error
	// ImageRefs returns pointers to every image-bearing field.
	ImageRefs() []*string
	// TextRefs returns pointers to every free-text field, image fields excluded.
	TextRefs() []*string
	// Normalize replaces nil lists with empty ones.
	Normalize()
	Clone() Content
}

// PageDocument is the single JSON value stored per page name.
type PageDocument struct {
	Page    string
	Kind    PageKind
	Content Content
}

func NewContent(kind PageKind) (Content, error) {
	switch kind {
	case KindSections, KindPartner:
		return &SectionsContent{kind: kind}, nil
	case KindContact:
		return &ContactContent{}, nil
	case KindTestimonials:
		return &TestimonialsContent{}, nil
	case KindTeam:
		return &TeamContent{}, nil
	case KindGallery:
		return &GalleryContent{}, nil
	case KindHome:
		return &HomeContent{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownPageKind, kind)
}

// DecodeDocument parses raw JSON into the shape of kind. Unknown fields and
// type mismatches are reported as validation errors.
func DecodeDocument(page string, kind PageKind, raw []byte) (PageDocument, error) {
	content, err := NewContent(kind)
	if err != nil {
		return PageDocument{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(content); err != nil {
		return PageDocument{}, &ValidationError{Errors: []string{fmt.Sprintf("%s document: %s", kind, err.Error())}}
	}

	if dec.More() {
		return PageDocument{}, &ValidationError{Errors: []string{fmt.Sprintf("%s document: trailing data", kind)}}
	}

	content.Normalize()

	return PageDocument{Page: page, Kind: kind, Content: content}, nil
}

func (d PageDocument) MarshalJSON() ([]byte, error) {
	if d.Content == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(d.Content)
}

func (d PageDocument) Clone() PageDocument {
	out := d
	if d.Content != nil {
		out.Content = d.Content.Clone()
	}

	return out
}

// Resolved returns a copy whose image fields hold display URLs. It is never saved.
func (d PageDocument) Resolved(uploadBaseURL string) PageDocument {
	out := d.Clone()
	if out.Content == nil {
		return out
	}

	for _, p := range out.Content.ImageRefs() {
		*p = ResolveImageReference(*p, uploadBaseURL)
	}

	return out
}

package models

import (
	"fmt"
	"slices"
	"strings"
)

type CatalogEntry struct {
	Name string
	Kind PageKind
}

// ReservedPageNames share the /api/content/ prefix with fixed routes.
var ReservedPageNames = []string{"pages", "upload-image"}

// Catalog maps every known page name to its kind. Order is the page selector order.
type Catalog struct {
	names []string
	kinds map[string]PageKind
}

func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		names: make([]string, 0, len(entries)),
		kinds: make(map[string]PageKind, len(entries)),
	}

	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, ErrEmptyPageName
		}
		if slices.Contains(ReservedPageNames, name) {
			return nil, fmt.Errorf("%w: %q", ErrReservedPageName, name)
		}
		if _, ok := c.kinds[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePage, name)
		}
		if _, err := ParsePageKind(string(e.Kind)); err != nil {
			return nil, err
		}

		c.names = append(c.names, name)
		c.kinds[name] = e.Kind
	}

	return c, nil
}

// DefaultCatalog lists the pages of the public site.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]CatalogEntry{
		{Name: "home", Kind: KindHome},
		{Name: "life", Kind: KindGallery},
		{Name: "team", Kind: KindTeam},
		{Name: "contact", Kind: KindContact},
		{Name: "partner", Kind: KindPartner},
		{Name: "community", Kind: KindTestimonials},
		{Name: "graduates", Kind: KindTestimonials},
		{Name: "about", Kind: KindSections},
	})
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Catalog) Pages() []string {
	return slices.Clone(c.names)
}

func (c *Catalog) KindOf(page string) (PageKind, bool) {
	k, ok := c.kinds[page]
	return k, ok
}

func (c *Catalog) kind(page string) (PageKind, error) {
	k, ok := c.kinds[page]
	if !ok {
		return "", fmt.Errorf("page %q: %w", page, ErrNotFound)
	}

	return k, nil
}

// DefaultDocumentFor returns the skeleton used when page has never been saved.
func (c *Catalog) DefaultDocumentFor(page string) (PageDocument, error) {
	k, err := c.kind(page)
	if err != nil {
		return PageDocument{}, err
	}

	return PageDocument{Page: page, Kind: k, Content: DefaultContent(k)}, nil
}

func (c *Catalog) SectionsFor(page string) ([]Section, error) {
	k, err := c.kind(page)
	if err != nil {
		return nil, err
	}

	return SectionsFor(k), nil
}

func (c *Catalog) Decode(page string, raw []byte) (PageDocument, error) {
	k, err := c.kind(page)
	if err != nil {
		return PageDocument{}, err
	}

	return DecodeDocument(page, k, raw)
}

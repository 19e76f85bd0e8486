package models

import (
	"fmt"
	"slices"
)

// AllTab is the gallery tab that shows every image.
const AllTab = "All"

type GalleryImage struct {
	Src         string   `json:"src" validate:"imageref"`
	Tags        []string `json:"tags" validate:"dive,max=200"`
	Title       string   `json:"title" validate:"max=500"`
	Description string   `json:"description" validate:"max=5000"`
}

func (g *GalleryImage) set(field, value string) error {
	switch field {
	case "src":
		g.Src = value
	case "title":
		g.Title = value
	case "description":
		g.Description = value
	default:
		return ErrUnknownField
	}

	return nil
}

func (g GalleryImage) HasTag(tag string) bool {
	return slices.Contains(g.Tags, tag)
}

// GalleryContent is the life page: tabbed image gallery. Tags hold tab labels
// by value, so renaming a tab leaves previously tagged images as they were.
type GalleryContent struct {
	BannerImage   string         `json:"bannerImage" validate:"imageref"`
	HeaderText    string         `json:"headerText" validate:"max=500"`
	Description   string         `json:"description" validate:"max=5000"`
	Tabs          []string       `json:"tabs" validate:"dive,max=200"`
	GalleryImages []GalleryImage `json:"galleryImages" validate:"dive"`
}

func (c *GalleryContent) Kind() PageKind { return KindGallery }

func (c *GalleryContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		switch ref.Field {
		case FieldBannerImage:
			c.BannerImage = value
		case "headerText":
			c.HeaderText = value
		case "description":
			c.Description = value
		default:
			return unknownField(ref)
		}
		return nil
	case ListTabs:
		return setString(c.Tabs, ref, value)
	case ListGalleryImages:
		return setItem(c.GalleryImages, ref, value)
	}

	return unknownList(ref.List)
}

func (c *GalleryContent) AppendItem(list string) error {
	switch list {
	case ListTabs:
		c.Tabs = appendBlank(c.Tabs)
	case ListGalleryImages:
		c.GalleryImages = append(c.GalleryImages, GalleryImage{Tags: []string{}})
	default:
		return unknownList(list)
	}

	return nil
}

func (c *GalleryContent) RemoveItem(list string, index int) error {
	var err error

	switch list {
	case ListTabs:
		c.Tabs, err = removeAt(c.Tabs, index)
	case ListGalleryImages:
		c.GalleryImages, err = removeAt(c.GalleryImages, index)
	default:
		return unknownList(list)
	}

	return err
}

// ToggleTag adds tag to the image at index, or removes it if present.
func (c *GalleryContent) ToggleTag(index int, tag string) error {
	if index < 0 || index >= len(c.GalleryImages) {
		return fmt.Errorf("%w: %s", ErrIndexOutOfRange, Item(ListGalleryImages, index, "tags"))
	}

	img := &c.GalleryImages[index]
	if i := slices.Index(img.Tags, tag); i >= 0 {
		img.Tags = slices.Delete(slices.Clone(img.Tags), i, i+1)
		return nil
	}

	img.Tags = append(slices.Clone(img.Tags), tag)

	return nil
}

func (c *GalleryContent) ImageRefs() []*string {
	refs := []*string{&c.BannerImage}
	for i := range c.GalleryImages {
		refs = append(refs, &c.GalleryImages[i].Src)
	}

	return refs
}

func (c *GalleryContent) TextRefs() []*string {
	refs := []*string{&c.HeaderText, &c.Description}
	for i := range c.Tabs {
		refs = append(refs, &c.Tabs[i])
	}
	for i := range c.GalleryImages {
		g := &c.GalleryImages[i]
		refs = append(refs, &g.Title, &g.Description)
		for j := range g.Tags {
			refs = append(refs, &g.Tags[j])
		}
	}

	return refs
}

func (c *GalleryContent) Normalize() {
	c.Tabs = emptyIfNil(c.Tabs)
	c.GalleryImages = emptyIfNil(c.GalleryImages)
	for i := range c.GalleryImages {
		c.GalleryImages[i].Tags = emptyIfNil(c.GalleryImages[i].Tags)
	}
}

func (c *GalleryContent) Clone() Content {
	out := *c
	out.Tabs = slices.Clone(c.Tabs)
	out.GalleryImages = slices.Clone(c.GalleryImages)
	for i := range out.GalleryImages {
		out.GalleryImages[i].Tags = slices.Clone(c.GalleryImages[i].Tags)
	}

	return &out
}

// FilterGalleryImages returns the images shown under tab, keeping their order.
func FilterGalleryImages(images []GalleryImage, tab string) []GalleryImage {
	out := make([]GalleryImage, 0, len(images))

	for _, img := range images {
		if tab == AllTab || tab == "" || img.HasTag(tab) {
			out = append(out, img)
		}
	}

	return out
}

package models

import (
	"fmt"
	"slices"
)

// List names as they appear in the stored JSON.
const (
	ListSections         = "sections"
	ListContactSections  = "contactSections"
	ListAddressLines     = "addressLines"
	ListTestimonials     = "testimonials"
	ListTeamMembers      = "teamMembers"
	ListTabs             = "tabs"
	ListGalleryImages    = "galleryImages"
	ListFeatureCards     = "featureCards"
	ListHighlightCards   = "highlightCards"
	ListTestimonialCards = "testimonialCards"
	BlockCommunity       = "community"
)

const FieldBannerImage = "bannerImage"

// Section-list pages (default shape, also used by partner pages).

type SectionItem struct {
	Text    string `json:"text" validate:"max=20000"`
	Image   string `json:"image" validate:"imageref"`
	Title   string `json:"title" validate:"max=500"`
	Caption string `json:"caption" validate:"max=1000"`
}

func (s *SectionItem) set(field, value string) error {
	switch field {
	case "text":
		s.Text = value
	case "image":
		s.Image = value
	case "title":
		s.Title = value
	case "caption":
		s.Caption = value
	default:
		return ErrUnknownField
	}

	return nil
}

type SectionsContent struct {
	kind        PageKind
	BannerImage string        `json:"bannerImage" validate:"imageref"`
	Sections    []SectionItem `json:"sections" validate:"dive"`
}

func (c *SectionsContent) Kind() PageKind {
	if c.kind == "" {
		return KindSections
	}

	return c.kind
}

func (c *SectionsContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		if ref.Field != FieldBannerImage {
			return unknownField(ref)
		}
		c.BannerImage = value
		return nil
	case ListSections:
		return setItem(c.Sections, ref, value)
	}

	return unknownList(ref.List)
}

func (c *SectionsContent) AppendItem(list string) error {
	if list != ListSections {
		return unknownList(list)
	}

	c.Sections = appendBlank(c.Sections)

	return nil
}

func (c *SectionsContent) RemoveItem(list string, index int) error {
	if list != ListSections {
		return unknownList(list)
	}

	var err error
	c.Sections, err = removeAt(c.Sections, index)

	return err
}

func (c *SectionsContent) ImageRefs() []*string {
	refs := []*string{&c.BannerImage}
	for i := range c.Sections {
		refs = append(refs, &c.Sections[i].Image)
	}

	return refs
}

func (c *SectionsContent) TextRefs() []*string {
	var refs []*string
	for i := range c.Sections {
		s := &c.Sections[i]
		refs = append(refs, &s.Text, &s.Title, &s.Caption)
	}

	return refs
}

func (c *SectionsContent) Normalize() {
	c.Sections = emptyIfNil(c.Sections)
}

func (c *SectionsContent) Clone() Content {
	out := *c
	out.Sections = slices.Clone(c.Sections)

	return &out
}

// Contact-like pages.

type ContactSection struct {
	Title       string `json:"title" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
}

func (s *ContactSection) set(field, value string) error {
	switch field {
	case "title":
		s.Title = value
	case "description":
		s.Description = value
	default:
		return ErrUnknownField
	}

	return nil
}

type ContactContent struct {
	BannerImage        string           `json:"bannerImage" validate:"imageref"`
	MainHeading        string           `json:"mainHeading" validate:"max=500"`
	MainDescription    string           `json:"mainDescription" validate:"max=5000"`
	Email              string           `json:"email" validate:"omitempty,email"`
	Phone              string           `json:"phone" validate:"max=50"`
	ContactSections    []ContactSection `json:"contactSections" validate:"dive"`
	LocationHeading    string           `json:"locationHeading" validate:"max=500"`
	LocationTitle      string           `json:"locationTitle" validate:"max=500"`
	LocationSubHeading string           `json:"locationSubHeading" validate:"max=500"`
	AddressLines       []string         `json:"addressLines" validate:"dive,max=500"`
}

func (c *ContactContent) Kind() PageKind { return KindContact }

func (c *ContactContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		switch ref.Field {
		case FieldBannerImage:
			c.BannerImage = value
		case "mainHeading":
			c.MainHeading = value
		case "mainDescription":
			c.MainDescription = value
		case "email":
			c.Email = value
		case "phone":
			c.Phone = value
		case "locationHeading":
			c.LocationHeading = value
		case "locationTitle":
			c.LocationTitle = value
		case "locationSubHeading":
			c.LocationSubHeading = value
		default:
			return unknownField(ref)
		}
		return nil
	case ListContactSections:
		return setItem(c.ContactSections, ref, value)
	case ListAddressLines:
		return setString(c.AddressLines, ref, value)
	}

	return unknownList(ref.List)
}

func (c *ContactContent) AppendItem(list string) error {
	switch list {
	case ListContactSections:
		c.ContactSections = appendBlank(c.ContactSections)
	case ListAddressLines:
		c.AddressLines = appendBlank(c.AddressLines)
	default:
		return unknownList(list)
	}

	return nil
}

func (c *ContactContent) RemoveItem(list string, index int) error {
	var err error

	switch list {
	case ListContactSections:
		c.ContactSections, err = removeAt(c.ContactSections, index)
	case ListAddressLines:
		c.AddressLines, err = removeAt(c.AddressLines, index)
	default:
		return unknownList(list)
	}

	return err
}

func (c *ContactContent) ImageRefs() []*string {
	return []*string{&c.BannerImage}
}

func (c *ContactContent) TextRefs() []*string {
	refs := []*string{
		&c.MainHeading,
		&c.MainDescription,
		&c.Email,
		&c.Phone,
		&c.LocationHeading,
		&c.LocationTitle,
		&c.LocationSubHeading,
	}
	for i := range c.ContactSections {
		refs = append(refs, &c.ContactSections[i].Title, &c.ContactSections[i].Description)
	}
	for i := range c.AddressLines {
		refs = append(refs, &c.AddressLines[i])
	}

	return refs
}

func (c *ContactContent) Normalize() {
	c.ContactSections = emptyIfNil(c.ContactSections)
	c.AddressLines = emptyIfNil(c.AddressLines)
}

func (c *ContactContent) Clone() Content {
	out := *c
	out.ContactSections = slices.Clone(c.ContactSections)
	out.AddressLines = slices.Clone(c.AddressLines)

	return &out
}

// Testimonial pages (community, graduates).

type Testimonial struct {
	Name        string `json:"name" validate:"max=200"`
	Subtitle    string `json:"subtitle" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"imageref"`
}

func (t *Testimonial) set(field, value string) error {
	switch field {
	case "name":
		t.Name = value
	case "subtitle":
		t.Subtitle = value
	case "description":
		t.Description = value
	case "image":
		t.Image = value
	default:
		return ErrUnknownField
	}

	return nil
}

type TestimonialsContent struct {
	BannerImage  string        `json:"bannerImage" validate:"imageref"`
	HeaderText   string        `json:"headerText" validate:"max=500"`
	SubText      string        `json:"subText" validate:"max=5000"`
	Testimonials []Testimonial `json:"testimonials" validate:"dive"`
}

func (c *TestimonialsContent) Kind() PageKind { return KindTestimonials }

func (c *TestimonialsContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		switch ref.Field {
		case FieldBannerImage:
			c.BannerImage = value
		case "headerText":
			c.HeaderText = value
		case "subText":
			c.SubText = value
		default:
			return unknownField(ref)
		}
		return nil
	case ListTestimonials:
		return setItem(c.Testimonials, ref, value)
	}

	return unknownList(ref.List)
}

func (c *TestimonialsContent) AppendItem(list string) error {
	if list != ListTestimonials {
		return unknownList(list)
	}

	c.Testimonials = appendBlank(c.Testimonials)

	return nil
}

func (c *TestimonialsContent) RemoveItem(list string, index int) error {
	if list != ListTestimonials {
		return unknownList(list)
	}

	var err error
	c.Testimonials, err = removeAt(c.Testimonials, index)

	return err
}

func (c *TestimonialsContent) ImageRefs() []*string {
	refs := []*string{&c.BannerImage}
	for i := range c.Testimonials {
		refs = append(refs, &c.Testimonials[i].Image)
	}

	return refs
}

func (c *TestimonialsContent) TextRefs() []*string {
	refs := []*string{&c.HeaderText, &c.SubText}
	for i := range c.Testimonials {
		t := &c.Testimonials[i]
		refs = append(refs, &t.Name, &t.Subtitle, &t.Description)
	}

	return refs
}

func (c *TestimonialsContent) Normalize() {
	c.Testimonials = emptyIfNil(c.Testimonials)
}

func (c *TestimonialsContent) Clone() Content {
	out := *c
	out.Testimonials = slices.Clone(c.Testimonials)

	return &out
}

// Team pages.

type TeamMember struct {
	Name         string `json:"name" validate:"max=200"`
	SubText      string `json:"subText" validate:"max=1000"`
	Image        string `json:"image" validate:"imageref"`
	ProfileClass string `json:"profileClass" validate:"max=100"`
}

func (m *TeamMember) set(field, value string) error {
	switch field {
	case "name":
		m.Name = value
	case "subText":
		m.SubText = value
	case "image":
		m.Image = value
	case "profileClass":
		m.ProfileClass = value
	default:
		return ErrUnknownField
	}

	return nil
}

type TeamContent struct {
	BannerImage string       `json:"bannerImage" validate:"imageref"`
	TeamMembers []TeamMember `json:"teamMembers" validate:"dive"`
}

func (c *TeamContent) Kind() PageKind { return KindTeam }

func (c *TeamContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		if ref.Field != FieldBannerImage {
			return unknownField(ref)
		}
		c.BannerImage = value
		return nil
	case ListTeamMembers:
		return setItem(c.TeamMembers, ref, value)
	}

	return unknownList(ref.List)
}

func (c *TeamContent) AppendItem(list string) error {
	if list != ListTeamMembers {
		return unknownList(list)
	}

	c.TeamMembers = appendBlank(c.TeamMembers)

	return nil
}

func (c *TeamContent) RemoveItem(list string, index int) error {
	if list != ListTeamMembers {
		return unknownList(list)
	}

	var err error
	c.TeamMembers, err = removeAt(c.TeamMembers, index)

	return err
}

func (c *TeamContent) ImageRefs() []*string {
	refs := []*string{&c.BannerImage}
	for i := range c.TeamMembers {
		refs = append(refs, &c.TeamMembers[i].Image)
	}

	return refs
}

func (c *TeamContent) TextRefs() []*string {
	var refs []*string
	for i := range c.TeamMembers {
		m := &c.TeamMembers[i]
		refs = append(refs, &m.Name, &m.SubText, &m.ProfileClass)
	}

	return refs
}

func (c *TeamContent) Normalize() {
	c.TeamMembers = emptyIfNil(c.TeamMembers)
}

func (c *TeamContent) Clone() Content {
	out := *c
	out.TeamMembers = slices.Clone(c.TeamMembers)

	return &out
}

// Home page.

type FeatureCard struct {
	Title       string `json:"title" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"imageref"`
}

func (f *FeatureCard) set(field, value string) error {
	switch field {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "image":
		f.Image = value
	default:
		return ErrUnknownField
	}

	return nil
}

type HighlightCard struct {
	Title       string `json:"title" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"imageref"`
	Link        string `json:"link" validate:"max=2048"`
}

func (h *HighlightCard) set(field, value string) error {
	switch field {
	case "title":
		h.Title = value
	case "description":
		h.Description = value
	case "image":
		h.Image = value
	case "link":
		h.Link = value
	default:
		return ErrUnknownField
	}

	return nil
}

type CommunityBlock struct {
	Title       string `json:"title" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"imageref"`
}

func (b *CommunityBlock) set(field, value string) error {
	switch field {
	case "title":
		b.Title = value
	case "description":
		b.Description = value
	case "image":
		b.Image = value
	default:
		return ErrUnknownField
	}

	return nil
}

type TestimonialCard struct {
	Name            string `json:"name" validate:"max=200"`
	Title           string `json:"title" validate:"max=500"`
	Description     string `json:"description" validate:"max=5000"`
	BackDescription string `json:"backDescription" validate:"max=5000"`
	Image           string `json:"image" validate:"imageref"`
}

func (t *TestimonialCard) set(field, value string) error {
	switch field {
	case "name":
		t.Name = value
	case "title":
		t.Title = value
	case "description":
		t.Description = value
	case "backDescription":
		t.BackDescription = value
	case "image":
		t.Image = value
	default:
		return ErrUnknownField
	}

	return nil
}

type HomeContent struct {
	BannerImage       string            `json:"bannerImage" validate:"imageref"`
	HeaderTitle       string            `json:"headerTitle" validate:"max=500"`
	HeaderDescription string            `json:"headerDescription" validate:"max=5000"`
	FeatureCards      []FeatureCard     `json:"featureCards" validate:"dive"`
	HighlightCards    []HighlightCard   `json:"highlightCards" validate:"dive"`
	Community         CommunityBlock    `json:"community"`
	TestimonialCards  []TestimonialCard `json:"testimonialCards" validate:"dive"`
}

func (c *HomeContent) Kind() PageKind { return KindHome }

func (c *HomeContent) SetField(ref FieldRef, value string) error {
	switch ref.List {
	case "":
		switch ref.Field {
		case FieldBannerImage:
			c.BannerImage = value
		case "headerTitle":
			c.HeaderTitle = value
		case "headerDescription":
			c.HeaderDescription = value
		default:
			return unknownField(ref)
		}
		return nil
	case ListFeatureCards:
		return setItem(c.FeatureCards, ref, value)
	case ListHighlightCards:
		return setItem(c.HighlightCards, ref, value)
	case ListTestimonialCards:
		return setItem(c.TestimonialCards, ref, value)
	case BlockCommunity:
		// a single block, addressed as item 0
		if ref.Index != 0 {
			return fmt.Errorf("%w: %s", ErrIndexOutOfRange, ref)
		}
		if err := c.Community.set(ref.Field, value); err != nil {
			return fmt.Errorf("%w: %s", err, ref)
		}
		return nil
	}

	return unknownList(ref.List)
}

func (c *HomeContent) AppendItem(list string) error {
	switch list {
	case ListFeatureCards:
		c.FeatureCards = appendBlank(c.FeatureCards)
	case ListHighlightCards:
		c.HighlightCards = appendBlank(c.HighlightCards)
	case ListTestimonialCards:
		c.TestimonialCards = appendBlank(c.TestimonialCards)
	default:
		return unknownList(list)
	}

	return nil
}

func (c *HomeContent) RemoveItem(list string, index int) error {
	var err error

	switch list {
	case ListFeatureCards:
		c.FeatureCards, err = removeAt(c.FeatureCards, index)
	case ListHighlightCards:
		c.HighlightCards, err = removeAt(c.HighlightCards, index)
	case ListTestimonialCards:
		c.TestimonialCards, err = removeAt(c.TestimonialCards, index)
	default:
		return unknownList(list)
	}

	return err
}

func (c *HomeContent) ImageRefs() []*string {
	refs := []*string{&c.BannerImage, &c.Community.Image}
	for i := range c.FeatureCards {
		refs = append(refs, &c.FeatureCards[i].Image)
	}
	for i := range c.HighlightCards {
		refs = append(refs, &c.HighlightCards[i].Image)
	}
	for i := range c.TestimonialCards {
		refs = append(refs, &c.TestimonialCards[i].Image)
	}

	return refs
}

func (c *HomeContent) TextRefs() []*string {
	refs := []*string{&c.HeaderTitle, &c.HeaderDescription, &c.Community.Title, &c.Community.Description}
	for i := range c.FeatureCards {
		f := &c.FeatureCards[i]
		refs = append(refs, &f.Title, &f.Description)
	}
	for i := range c.HighlightCards {
		h := &c.HighlightCards[i]
		refs = append(refs, &h.Title, &h.Description, &h.Link)
	}
	for i := range c.TestimonialCards {
		t := &c.TestimonialCards[i]
		refs = append(refs, &t.Name, &t.Title, &t.Description, &t.BackDescription)
	}

	return refs
}

func (c *HomeContent) Normalize() {
	c.FeatureCards = emptyIfNil(c.FeatureCards)
	c.HighlightCards = emptyIfNil(c.HighlightCards)
	c.TestimonialCards = emptyIfNil(c.TestimonialCards)
}

func (c *HomeContent) Clone() Content {
	out := *c
	out.FeatureCards = slices.Clone(c.FeatureCards)
	out.HighlightCards = slices.Clone(c.HighlightCards)
	out.TestimonialCards = slices.Clone(c.TestimonialCards)

	return &out
}

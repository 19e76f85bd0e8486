package models

// Section is one navigation entry of the editor for a page kind.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var bannerSection = Section{ID: "banner", Label: "Banner Image"}

// SectionsFor returns the editor navigation for kind. It does not look at the document.
func SectionsFor(kind PageKind) []Section {
	switch kind {
	case KindContact:
		return []Section{
			bannerSection,
			{ID: "main", Label: "Main Content"},
			{ID: "contactSections", Label: "Contact Sections"},
			{ID: "location", Label: "Location"},
		}
	case KindTestimonials:
		return []Section{
			bannerSection,
			{ID: "header", Label: "Header"},
			{ID: "testimonials", Label: "Testimonials"},
		}
	case KindTeam:
		return []Section{
			bannerSection,
			{ID: "team", Label: "Team Members"},
		}
	case KindGallery:
		return []Section{
			bannerSection,
			{ID: "header", Label: "Header"},
			{ID: "tabs", Label: "Tabs"},
			{ID: "gallery", Label: "Gallery Images"},
		}
	case KindHome:
		return []Section{
			{ID: "header", Label: "Header"},
			{ID: "features", Label: "Feature Cards"},
			{ID: "highlights", Label: "Highlight Cards"},
			{ID: "community", Label: "Community"},
			{ID: "testimonials", Label: "Testimonial Cards"},
		}
	}

	return []Section{
		bannerSection,
		{ID: "sections", Label: "Sections"},
	}
}

// DefaultContent returns the skeleton of a never-saved page of kind.
func DefaultContent(kind PageKind) Content {
	var c Content

	switch kind {
	case KindPartner:
		c = &SectionsContent{
			kind: KindPartner,
			Sections: []SectionItem{
				{Title: "Become a Partner"},
				{Title: "Our Partners"},
			},
		}
	case KindContact:
		c = &ContactContent{
			ContactSections: []ContactSection{
				{Title: "Contact Support"},
				{Title: "Feedback and Suggestions"},
				{Title: "Made Inquiries"},
			},
		}
	case KindGallery:
		c = &GalleryContent{
			Tabs: []string{AllTab, "Educating the Young", "Health and Nutrition"},
		}
	case KindTestimonials:
		c = &TestimonialsContent{}
	case KindTeam:
		c = &TeamContent{}
	case KindHome:
		c = &HomeContent{}
	default:
		c = &SectionsContent{kind: KindSections}
	}

	c.Normalize()

	return c
}

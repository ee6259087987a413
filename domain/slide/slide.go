// Package slide models promotional content slides and their page bindings.
package slide

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/sitekit/domain/bilingual"
)

// MediaType describes how a slide's media renders.
type MediaType string

// MediaType values.
const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".m4v":  true,
	".ogv":  true,
}

// DetectMediaType infers the media type from a URL's extension.
func DetectMediaType(url string) MediaType {
	clean := url
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if videoExtensions[strings.ToLower(path.Ext(clean))] {
		return MediaVideo
	}
	return MediaImage
}

// CTA is a call-to-action button: bilingual text plus a link.
type CTA struct {
	text bilingual.Text
	link string
}

// NewCTA creates a CTA.
func NewCTA(text bilingual.Text, link string) CTA {
	return CTA{text: text, link: strings.TrimSpace(link)}
}

// Text returns the button label.
func (c CTA) Text() bilingual.Text { return c.text }

// Link returns the button target.
func (c CTA) Link() string { return c.link }

// HasLink returns true if the CTA points anywhere.
func (c CTA) HasLink() bool { return c.link != "" }

// Slide is a hero/banner content item rendered in a page or home rotation.
type Slide struct {
	id           string
	title        bilingual.Text
	subtitle     bilingual.Text
	mediaURL     string
	mediaType    MediaType
	primaryCTA   CTA
	secondaryCTA CTA
	sortOrder    int
	active       bool
	pageBinding  *string
	createdAt    time.Time
	updatedAt    time.Time
}

// Content groups the authored fields of a slide.
type Content struct {
	Title        bilingual.Text
	Subtitle     bilingual.Text
	MediaURL     string
	MediaType    MediaType
	PrimaryCTA   CTA
	SecondaryCTA CTA
}

// NewSlide creates an active, unbound slide with a fresh ID.
func NewSlide(c Content) Slide {
	mediaType := c.MediaType
	if mediaType == "" {
		mediaType = DetectMediaType(c.MediaURL)
	}
	now := time.Now().UTC()
	return Slide{
		id:           uuid.NewString(),
		title:        c.Title,
		subtitle:     c.Subtitle,
		mediaURL:     c.MediaURL,
		mediaType:    mediaType,
		primaryCTA:   c.PrimaryCTA,
		secondaryCTA: c.SecondaryCTA,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}
}

// ReconstructSlide recreates a Slide from persistence.
func ReconstructSlide(
	id string,
	c Content,
	sortOrder int,
	active bool,
	pageBinding *string,
	createdAt, updatedAt time.Time,
) Slide {
	return Slide{
		id:           id,
		title:        c.Title,
		subtitle:     c.Subtitle,
		mediaURL:     c.MediaURL,
		mediaType:    c.MediaType,
		primaryCTA:   c.PrimaryCTA,
		secondaryCTA: c.SecondaryCTA,
		sortOrder:    sortOrder,
		active:       active,
		pageBinding:  copyString(pageBinding),
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the slide identifier.
func (s Slide) ID() string { return s.id }

// Title returns the bilingual headline.
func (s Slide) Title() bilingual.Text { return s.title }

// Subtitle returns the bilingual sub-headline.
func (s Slide) Subtitle() bilingual.Text { return s.subtitle }

// MediaURL returns the image or video URL.
func (s Slide) MediaURL() string { return s.mediaURL }

// MediaType returns how the media renders.
func (s Slide) MediaType() MediaType { return s.mediaType }

// PrimaryCTA returns the first call-to-action.
func (s Slide) PrimaryCTA() CTA { return s.primaryCTA }

// SecondaryCTA returns the second call-to-action.
func (s Slide) SecondaryCTA() CTA { return s.secondaryCTA }

// SortOrder returns the position inside its rotation.
func (s Slide) SortOrder() int { return s.sortOrder }

// IsActive returns whether the slide is rendered.
func (s Slide) IsActive() bool { return s.active }

// PageBinding returns the explicit page binding, or nil.
func (s Slide) PageBinding() *string { return copyString(s.pageBinding) }

// CreatedAt returns the creation timestamp.
func (s Slide) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last modification timestamp.
func (s Slide) UpdatedAt() time.Time { return s.updatedAt }

// Content returns the authored fields.
func (s Slide) Content() Content {
	return Content{
		Title:        s.title,
		Subtitle:     s.subtitle,
		MediaURL:     s.mediaURL,
		MediaType:    s.mediaType,
		PrimaryCTA:   s.primaryCTA,
		SecondaryCTA: s.secondaryCTA,
	}
}

// BoundTo returns a copy explicitly bound to pagePath.
func (s Slide) BoundTo(pagePath string) Slide {
	s.pageBinding = &pagePath
	s.updatedAt = time.Now().UTC()
	return s
}

// WithSortOrder returns a copy at the given rotation position.
func (s Slide) WithSortOrder(order int) Slide {
	s.sortOrder = order
	s.updatedAt = time.Now().UTC()
	return s
}

// Deactivate returns an inactive copy.
func (s Slide) Deactivate() Slide {
	s.active = false
	s.updatedAt = time.Now().UTC()
	return s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

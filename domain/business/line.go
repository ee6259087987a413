// Package business models the company's business lines and their ordered
// detail collections.
package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/repository"
)

// ErrUnknownKind indicates a detail kind outside the fixed set.
var ErrUnknownKind = errors.New("unknown detail kind")

// Line is a named offering of the company with its own page.
type Line struct {
	id          string
	slug        string
	name        bilingual.Text
	description bilingual.Text
	pagePath    string
	sortOrder   int
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// LineParams holds the editable fields of a Line.
type LineParams struct {
	Slug        string
	Name        bilingual.Text
	Description bilingual.Text
	PagePath    string
	SortOrder   int
}

// NewLine creates an active Line with a fresh ID.
func NewLine(p LineParams) Line {
	now := time.Now().UTC()
	return Line{
		id:          uuid.NewString(),
		slug:        p.Slug,
		name:        p.Name,
		description: p.Description,
		pagePath:    p.PagePath,
		sortOrder:   p.SortOrder,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructLine recreates a Line from persistence.
func ReconstructLine(id string, p LineParams, active bool, createdAt, updatedAt time.Time) Line {
	return Line{
		id:          id,
		slug:        p.Slug,
		name:        p.Name,
		description: p.Description,
		pagePath:    p.PagePath,
		sortOrder:   p.SortOrder,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the line identifier.
func (l Line) ID() string { return l.id }

// Slug returns the stable lookup key.
func (l Line) Slug() string { return l.slug }

// Name returns the bilingual name.
func (l Line) Name() bilingual.Text { return l.name }

// Description returns the bilingual description.
func (l Line) Description() bilingual.Text { return l.description }

// PagePath returns the route of the line's page.
func (l Line) PagePath() string { return l.pagePath }

// SortOrder returns the listing position.
func (l Line) SortOrder() int { return l.sortOrder }

// IsActive returns whether the line is listed.
func (l Line) IsActive() bool { return l.active }

// CreatedAt returns the creation timestamp.
func (l Line) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the last modification timestamp.
func (l Line) UpdatedAt() time.Time { return l.updatedAt }

// Kind names one of the detail collections a Line owns.
type Kind string

// Kind values.
const (
	KindFeatures   Kind = "features"
	KindStats      Kind = "stats"
	KindImages     Kind = "images"
	KindAdvantages Kind = "advantages"
)

// Kinds returns every detail kind.
func Kinds() []Kind {
	return []Kind{KindFeatures, KindStats, KindImages, KindAdvantages}
}

// ParseKind validates a detail kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Detail is one ordered entry of a detail collection.
type Detail struct {
	id        string
	lineID    string
	kind      Kind
	title     bilingual.Text
	body      bilingual.Text
	value     string
	imageURL  string
	sortOrder int
}

// DetailContent is the caller-supplied part of a Detail.
type DetailContent struct {
	Title    bilingual.Text
	Body     bilingual.Text
	Value    string
	ImageURL string
}

// NewDetail creates a Detail at the given position.
func NewDetail(lineID string, kind Kind, c DetailContent, sortOrder int) Detail {
	return Detail{
		id:        uuid.NewString(),
		lineID:    lineID,
		kind:      kind,
		title:     c.Title,
		body:      c.Body,
		value:     c.Value,
		imageURL:  c.ImageURL,
		sortOrder: sortOrder,
	}
}

// ReconstructDetail recreates a Detail from persistence.
func ReconstructDetail(id, lineID string, kind Kind, c DetailContent, sortOrder int) Detail {
	d := NewDetail(lineID, kind, c, sortOrder)
	d.id = id
	return d
}

// ID returns the detail identifier.
func (d Detail) ID() string { return d.id }

// LineID returns the owning line.
func (d Detail) LineID() string { return d.lineID }

// Kind returns the collection the detail belongs to.
func (d Detail) Kind() Kind { return d.kind }

// Content returns the caller-supplied fields.
func (d Detail) Content() DetailContent {
	return DetailContent{Title: d.title, Body: d.body, Value: d.value, ImageURL: d.imageURL}
}

// Title returns the bilingual title.
func (d Detail) Title() bilingual.Text { return d.title }

// SortOrder returns the position within the collection.
func (d Detail) SortOrder() int { return d.sortOrder }

// LineStore defines persistence for business lines.
type LineStore interface {
	repository.Store[Line]
	Create(ctx context.Context, l Line) (Line, error)
	Save(ctx context.Context, l Line) (Line, error)
}

// DetailStore defines persistence for one kind of detail collection.
type DetailStore interface {
	repository.Store[Detail]
	CreateAll(ctx context.Context, details []Detail) error
	DeleteBy(ctx context.Context, options ...repository.Option) (int64, error)
	Atomic(ctx context.Context, fn func(DetailStore) error) error
}

// WithSlug filters lines by slug.
func WithSlug(slug string) repository.Option {
	return repository.WithCondition("slug", slug)
}

// WithLine filters details by owning line.
func WithLine(lineID string) repository.Option {
	return repository.WithCondition("line_id", lineID)
}

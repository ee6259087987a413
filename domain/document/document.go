// Package document models investor and regulatory documents.
package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/helixml/sitekit/domain/repository"
)

// Document is an investor-relations file classified by a taxonomy code.
type Document struct {
	id           string
	title        bilingual.Text
	documentType string
	year         int
	quarter      *int
	publishedAt  time.Time
	fileURL      string
	active       bool
	published    bool
	createdAt    time.Time
	updatedAt    time.Time
}

// Params holds the fields needed to create a Document.
type Params struct {
	Title        bilingual.Text
	DocumentType string
	Year         int
	Quarter      *int
	PublishedAt  time.Time
	FileURL      string
}

// NewDocument creates an active, published Document with a fresh ID.
func NewDocument(p Params) Document {
	now := time.Now().UTC()
	return Document{
		id:           uuid.NewString(),
		title:        p.Title,
		documentType: p.DocumentType,
		year:         p.Year,
		quarter:      copyInt(p.Quarter),
		publishedAt:  p.PublishedAt,
		fileURL:      p.FileURL,
		active:       true,
		published:    true,
		createdAt:    now,
		updatedAt:    now,
	}
}

// ReconstructDocument recreates a Document from persistence.
func ReconstructDocument(
	id string,
	p Params,
	active, published bool,
	createdAt, updatedAt time.Time,
) Document {
	return Document{
		id:           id,
		title:        p.Title,
		documentType: p.DocumentType,
		year:         p.Year,
		quarter:      copyInt(p.Quarter),
		publishedAt:  p.PublishedAt,
		fileURL:      p.FileURL,
		active:       active,
		published:    published,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Title returns the bilingual title.
func (d Document) Title() bilingual.Text { return d.title }

// Type returns the taxonomy code.
func (d Document) Type() string { return d.documentType }

// Year returns the reporting year.
func (d Document) Year() int { return d.year }

// Quarter returns the reporting quarter (1-4), or nil.
func (d Document) Quarter() *int { return copyInt(d.quarter) }

// PublishedAt returns the publication timestamp.
func (d Document) PublishedAt() time.Time { return d.publishedAt }

// FileURL returns the download location.
func (d Document) FileURL() string { return d.fileURL }

// IsActive returns whether the document is listed.
func (d Document) IsActive() bool { return d.active }

// IsPublished returns whether the document is publicly visible.
func (d Document) IsPublished() bool { return d.published }

// CreatedAt returns the creation timestamp.
func (d Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last modification timestamp.
func (d Document) UpdatedAt() time.Time { return d.updatedAt }

// Reclassify returns a copy with a new taxonomy code and title.
// The year and quarter are never changed here.
func (d Document) Reclassify(code string, title bilingual.Text) Document {
	d.documentType = code
	d.title = title
	d.updatedAt = time.Now().UTC()
	return d
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// Store defines persistence for documents.
type Store interface {
	repository.Store[Document]

	// Create inserts a new document.
	Create(ctx context.Context, d Document) (Document, error)

	// Save updates an existing document.
	Save(ctx context.Context, d Document) (Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, d Document) error
}

// WithType filters by the "document_type" column.
func WithType(code string) repository.Option {
	return repository.WithCondition("document_type", code)
}

// WithTypeIn filters by several taxonomy codes.
func WithTypeIn(codes []string) repository.Option {
	return repository.WithConditionIn("document_type", codes)
}

// WithFileURL filters by the "file_url" column.
func WithFileURL(url string) repository.Option {
	return repository.WithCondition("file_url", url)
}

// WithYear filters by the "year" column.
func WithYear(year int) repository.Option {
	return repository.WithCondition("year", year)
}

// WithPublicationOrder orders newest first, then by ID.
func WithPublicationOrder() []repository.Option {
	return []repository.Option{repository.WithOrderDesc("published_at"), repository.WithOrderAsc("id")}
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/taxonomy"
)

// Documents provides document queries and idempotent inserts.
type Documents struct {
	repository.Collection[document.Document]
	store    document.Store
	registry *taxonomy.Registry
	logger   *slog.Logger
}

// NewDocuments creates a new Documents service. Document types are checked
// against registry.
func NewDocuments(store document.Store, registry *taxonomy.Registry, logger *slog.Logger) *Documents {
	return &Documents{
		Collection: repository.NewCollection[document.Document](store),
		store:      store,
		registry:   registry,
		logger:     logger,
	}
}

// Ensure inserts d unless a document with the same file URL exists. The
// boolean reports whether a row was inserted. A type outside the taxonomy
// fails with taxonomy.ErrUnknownCode; provisional documents use "other".
func (s *Documents) Ensure(ctx context.Context, d document.Document) (document.Document, bool, error) {
	if !s.registry.IsKnown(d.Type()) {
		return document.Document{}, false, fmt.Errorf("ensure document %s: %w %q", d.FileURL(), taxonomy.ErrUnknownCode, d.Type())
	}
	existing, err := s.store.FindOne(ctx, document.WithFileURL(d.FileURL()))
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return document.Document{}, false, storeError("find document", err)
	}
	created, err := s.store.Create(ctx, d)
	if err != nil {
		return document.Document{}, false, storeError("insert document", err)
	}
	s.logger.InfoContext(ctx, "document inserted",
		slog.String("id", created.ID()),
		slog.String("type", created.Type()),
		slog.String("file_url", created.FileURL()),
	)
	return created, true, nil
}

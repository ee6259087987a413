package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/domain/repository"
)

// BusinessLines manages business lines and their detail collections.
type BusinessLines struct {
	repository.Collection[business.Line]
	lines   business.LineStore
	details map[business.Kind]business.DetailStore
	logger  *slog.Logger
}

// NewBusinessLines creates a new BusinessLines service. details must hold a
// store for every kind in business.Kinds.
func NewBusinessLines(lines business.LineStore, details map[business.Kind]business.DetailStore, logger *slog.Logger) *BusinessLines {
	return &BusinessLines{
		Collection: repository.NewCollection[business.Line](lines),
		lines:      lines,
		details:    details,
		logger:     logger,
	}
}

// Ensure returns the line with p.Slug, inserting it when missing. An
// existing line is not modified. The boolean reports whether a row was
// inserted.
func (s *BusinessLines) Ensure(ctx context.Context, p business.LineParams) (business.Line, bool, error) {
	existing, err := s.lines.FindOne(ctx, business.WithSlug(p.Slug))
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return business.Line{}, false, storeError("find business line", err)
	}
	created, err := s.lines.Create(ctx, business.NewLine(p))
	if err != nil {
		return business.Line{}, false, storeError("insert business line", err)
	}
	s.logger.InfoContext(ctx, "business line inserted", slog.String("id", created.ID()), slog.String("slug", created.Slug()))
	return created, true, nil
}

// ReplaceDetails replaces the kind collection of a line with items, in
// order, in one transaction.
func (s *BusinessLines) ReplaceDetails(ctx context.Context, lineID string, kind business.Kind, items []business.DetailContent) ([]business.Detail, error) {
	store, err := s.detailStore(kind)
	if err != nil {
		return nil, err
	}
	exists, err := s.lines.Exists(ctx, repository.WithID(lineID))
	if err != nil {
		return nil, storeError("find business line", err)
	}
	if !exists {
		return nil, fmt.Errorf("replace %s: business line %s: %w", kind, lineID, ErrNotFound)
	}

	details := make([]business.Detail, len(items))
	for i, item := range items {
		details[i] = business.NewDetail(lineID, kind, item, i)
	}

	var deleted int64
	err = store.Atomic(ctx, func(tx business.DetailStore) error {
		var err error
		if deleted, err = tx.DeleteBy(ctx, business.WithLine(lineID)); err != nil {
			return storeError("delete "+string(kind), err)
		}
		if err := tx.CreateAll(ctx, details); err != nil {
			return storeError("insert "+string(kind), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "business line details replaced",
		slog.String("line_id", lineID),
		slog.String("kind", string(kind)),
		slog.Int64("deleted", deleted),
		slog.Int("inserted", len(details)),
	)
	return details, nil
}

// Details returns the kind collection of a line in order.
func (s *BusinessLines) Details(ctx context.Context, lineID string, kind business.Kind) ([]business.Detail, error) {
	store, err := s.detailStore(kind)
	if err != nil {
		return nil, err
	}
	details, err := store.Find(ctx, business.WithLine(lineID), repository.WithOrderAsc("sort_order"), repository.WithOrderAsc("id"))
	if err != nil {
		return nil, storeError("load "+string(kind), err)
	}
	return details, nil
}

func (s *BusinessLines) detailStore(kind business.Kind) (business.DetailStore, error) {
	store, ok := s.details[kind]
	if !ok {
		return nil, fmt.Errorf("detail store: %w: %q", business.ErrUnknownKind, kind)
	}
	return store, nil
}

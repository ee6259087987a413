package slide

import (
	"context"

	"github.com/helixml/sitekit/domain/repository"
)

// Store defines persistence for slides.
type Store interface {
	repository.Store[Slide]

	// Create inserts a new slide.
	Create(ctx context.Context, s Slide) (Slide, error)

	// Save updates an existing slide.
	Save(ctx context.Context, s Slide) (Slide, error)

	// DeleteBy removes every slide matching the options and returns the count.
	DeleteBy(ctx context.Context, options ...repository.Option) (int64, error)

	// Atomic runs fn against a Store bound to one transaction.
	Atomic(ctx context.Context, fn func(Store) error) error
}

// WithPageBinding selects slides explicitly bound to pagePath.
func WithPageBinding(pagePath string) repository.Option {
	return repository.WithCondition("page_binding", pagePath)
}

// WithUnbound selects slides with no explicit binding.
func WithUnbound() repository.Option {
	return repository.WithNull("page_binding")
}

// WithSecondaryLink filters by the secondary CTA link column.
func WithSecondaryLink(link string) repository.Option {
	return repository.WithCondition("secondary_cta_link", link)
}

// WithPrimaryTitle filters by the primary-locale title.
func WithPrimaryTitle(title string) repository.Option {
	return repository.WithCondition("title_primary", title)
}

// WithIDs filters to the given slide IDs.
func WithIDs(ids []string) repository.Option {
	return repository.WithIDIn(ids)
}

// WithRotationOrder orders by rotation position, then ID.
func WithRotationOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("sort_order"), repository.WithOrderAsc("id")}
}

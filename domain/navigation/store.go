package navigation

import (
	"context"

	"github.com/helixml/sitekit/domain/repository"
)

// Store defines persistence for menu items.
type Store interface {
	repository.Store[MenuItem]

	// Create inserts a new item.
	Create(ctx context.Context, item MenuItem) (MenuItem, error)

	// Save updates an existing item.
	Save(ctx context.Context, item MenuItem) (MenuItem, error)

	// Delete removes a single item. Children are not touched.
	Delete(ctx context.Context, item MenuItem) error

	// Atomic runs fn against a Store bound to one transaction. Calls made
	// on a Store that is already transactional join the outer transaction.
	Atomic(ctx context.Context, fn func(Store) error) error
}

// WithParent filters the sibling group's parent; nil selects roots.
func WithParent(parentID *string) repository.Option {
	return repository.WithOptionalString("parent_id", parentID)
}

// WithLocation filters by the "location" column.
func WithLocation(location Location) repository.Option {
	return repository.WithCondition("location", string(location))
}

// WithPath filters by the "path" column.
func WithPath(path string) repository.Option {
	return repository.WithCondition("path", path)
}

// WithGroup filters to one sibling group.
func WithGroup(g Group) []repository.Option {
	return []repository.Option{WithParent(g.parentID), WithLocation(g.location)}
}

// WithSortOrderFrom filters siblings at or after the given position.
func WithSortOrderFrom(order int) repository.Option {
	return repository.WithComparison("sort_order", repository.OpGreaterThanOrEqual, order)
}

// WithSiblingOrder orders by sort position, then ID for stable output.
func WithSiblingOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("sort_order"), repository.WithOrderAsc("id")}
}

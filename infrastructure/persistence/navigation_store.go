package persistence

import (
	"context"

	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/internal/database"
)

var _ navigation.Store = NavigationStore{}

// NavigationStore implements navigation.Store using GORM.
type NavigationStore struct {
	database.Repository[navigation.MenuItem, MenuItemModel]
}

// NewNavigationStore creates a new NavigationStore.
func NewNavigationStore(db database.Database) NavigationStore {
	return NavigationStore{
		Repository: database.NewRepository[navigation.MenuItem, MenuItemModel](db, MenuItemMapper{}, "menu item"),
	}
}

// Atomic runs fn with a store bound to one transaction.
func (s NavigationStore) Atomic(ctx context.Context, fn func(navigation.Store) error) error {
	return s.Database().Atomic(ctx, func(tx database.Database) error {
		return fn(NavigationStore{Repository: s.WithDatabase(tx)})
	})
}

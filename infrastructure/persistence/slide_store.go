package persistence

import (
	"context"

	"github.com/helixml/sitekit/domain/slide"
	"github.com/helixml/sitekit/internal/database"
)

var _ slide.Store = SlideStore{}

// SlideStore implements slide.Store using GORM.
type SlideStore struct {
	database.Repository[slide.Slide, SlideModel]
}

// NewSlideStore creates a new SlideStore.
func NewSlideStore(db database.Database) SlideStore {
	return SlideStore{
		Repository: database.NewRepository[slide.Slide, SlideModel](db, SlideMapper{}, "slide"),
	}
}

// Atomic runs fn with a store bound to one transaction.
func (s SlideStore) Atomic(ctx context.Context, fn func(slide.Store) error) error {
	return s.Database().Atomic(ctx, func(tx database.Database) error {
		return fn(SlideStore{Repository: s.WithDatabase(tx)})
	})
}

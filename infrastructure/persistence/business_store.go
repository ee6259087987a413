package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/internal/database"
)

var (
	_ business.LineStore   = BusinessLineStore{}
	_ business.DetailStore = DetailStore{}
)

// BusinessLineStore implements business.LineStore using GORM.
type BusinessLineStore struct {
	database.Repository[business.Line, BusinessLineModel]
}

// NewBusinessLineStore creates a new BusinessLineStore.
func NewBusinessLineStore(db database.Database) BusinessLineStore {
	return BusinessLineStore{
		Repository: database.NewRepository[business.Line, BusinessLineModel](db, BusinessLineMapper{}, "business line"),
	}
}

// DetailTable returns the table holding details of the given kind.
func DetailTable(kind business.Kind) string {
	return fmt.Sprintf("business_line_%s", kind)
}

// DetailStore implements business.DetailStore for one detail table.
type DetailStore struct {
	database.Repository[business.Detail, DetailModel]
	kind business.Kind
}

// NewDetailStore creates a DetailStore for the table of kind.
func NewDetailStore(db database.Database, kind business.Kind) DetailStore {
	return DetailStore{
		Repository: database.NewRepositoryForTable[business.Detail, DetailModel](
			db, detailMapper{kind: kind}, "business line "+string(kind), DetailTable(kind),
		),
		kind: kind,
	}
}

// Kind returns the detail kind this store serves.
func (s DetailStore) Kind() business.Kind {
	return s.kind
}

// Atomic runs fn with a store bound to one transaction.
func (s DetailStore) Atomic(ctx context.Context, fn func(business.DetailStore) error) error {
	return s.Database().Atomic(ctx, func(tx database.Database) error {
		return fn(DetailStore{Repository: s.WithDatabase(tx), kind: s.kind})
	})
}

package persistence

import (
	"github.com/helixml/sitekit/domain/migration"
	"github.com/helixml/sitekit/internal/database"
)

var _ migration.Store = MigrationStore{}

// MigrationStore implements migration.Store using GORM.
type MigrationStore struct {
	database.Repository[migration.Applied, AppliedMigrationModel]
}

// NewMigrationStore creates a new MigrationStore.
func NewMigrationStore(db database.Database) MigrationStore {
	return MigrationStore{
		Repository: database.NewRepository[migration.Applied, AppliedMigrationModel](db, AppliedMigrationMapper{}, "applied migration"),
	}
}

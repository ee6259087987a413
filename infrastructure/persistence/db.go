// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"

	"github.com/helixml/sitekit/domain/business"
	"github.com/helixml/sitekit/internal/database"
)

// AutoMigrate runs GORM auto migration for all models, including the four
// detail tables that share DetailModel.
func AutoMigrate(db database.Database) error {
	gdb := db.GORM()
	if err := gdb.AutoMigrate(
		&MenuItemModel{},
		&SlideModel{},
		&DocumentModel{},
		&BusinessLineModel{},
		&AppliedMigrationModel{},
	); err != nil {
		return err
	}
	for _, kind := range business.Kinds() {
		if err := gdb.Table(DetailTable(kind)).AutoMigrate(&DetailModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", DetailTable(kind), err)
		}
	}
	return postMigrate(db)
}

// postMigrate adds the detail-table foreign keys on PostgreSQL. DetailModel
// has no association field, so GORM cannot create them itself. Dropping and
// recreating keeps this safe to run on every start.
func postMigrate(db database.Database) error {
	if !db.IsPostgres() {
		return nil
	}

	gdb := db.GORM()
	for _, kind := range business.Kinds() {
		table := DetailTable(kind)
		name := fmt.Sprintf("fk_%s_line_id", table)
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, table, name,
		)).Error; err != nil {
			return fmt.Errorf("drop constraint %s.%s: %w", table, name, err)
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (line_id) REFERENCES business_lines(id) ON DELETE CASCADE`,
			table, name,
		)).Error; err != nil {
			return fmt.Errorf("create constraint %s.%s: %w", table, name, err)
		}
	}
	return nil
}

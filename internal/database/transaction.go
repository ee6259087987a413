package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a new transaction. It commits when fn
// returns nil and rolls back when fn fails or panics; a failed rollback is
// joined to fn's error. Most callers want Database.Atomic.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) (err error) {
	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

package database

import (
	"github.com/helixml/sitekit/domain/repository"
	"gorm.io/gorm"
)

// ApplyOptions builds a repository.Query from the given options and applies it to a GORM session.
func ApplyOptions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	q := repository.Build(options...)

	db = ApplyConditions(db, options...)

	for _, ord := range q.Orders() {
		db = applyOrder(db, ord)
	}

	if q.LimitValue() > 0 {
		db = db.Limit(q.LimitValue())
	}

	if q.OffsetValue() > 0 {
		db = db.Offset(q.OffsetValue())
	}

	return db
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order) for
// COUNT, UPDATE and DELETE statements.
func ApplyConditions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	for _, cond := range repository.Build(options...).Conditions() {
		db = applyCondition(db, cond)
	}
	return db
}

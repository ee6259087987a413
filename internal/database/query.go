package database

import (
	"fmt"

	"github.com/helixml/sitekit/domain/repository"
	"gorm.io/gorm"
)

// applyCondition translates one repository condition into a WHERE clause.
func applyCondition(db *gorm.DB, cond repository.Condition) *gorm.DB {
	switch cond.Operator() {
	case repository.OpIsNull, repository.OpIsNotNull:
		return db.Where(fmt.Sprintf("%s %s", cond.Field(), cond.Operator()))
	case repository.OpIn:
		return db.Where(fmt.Sprintf("%s IN ?", cond.Field()), cond.Value())
	default:
		return db.Where(fmt.Sprintf("%s %s ?", cond.Field(), cond.Operator()), cond.Value())
	}
}

func applyOrder(db *gorm.DB, ord repository.Order) *gorm.DB {
	dir := "ASC"
	if !ord.Ascending() {
		dir = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", ord.Field(), dir))
}

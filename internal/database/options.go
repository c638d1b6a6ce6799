package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yamdb/yamdb/domain/repository"
)

// ApplyOptions applies the filters, order and limit of options to a GORM session.
func ApplyOptions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	q := repository.Build(options...)

	db = applyFilters(db, q)
	if column, desc := q.Order(); column != "" {
		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", column, dir))
	}
	if q.Limit() > 0 {
		db = db.Limit(q.Limit())
	}
	return db
}

// ApplyConditions applies only the filters, for COUNT and EXISTS queries.
func ApplyConditions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	return applyFilters(db, repository.Build(options...))
}

func applyFilters(db *gorm.DB, q repository.Query) *gorm.DB {
	for _, f := range q.Filters() {
		if f.IsNull() {
			db = db.Where(fmt.Sprintf("%s IS NULL", f.Column()))
			continue
		}
		db = db.Where(fmt.Sprintf("%s = ?", f.Column()), f.Value())
	}
	return db
}

package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/workforce-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Between restricts column to the half-open range [from, to). Bounds are compared in UTC.
func Between(column string, from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" < ?", from.UTC(), to.UTC())
	}
}

package database

import (
	"gorm.io/gorm"
)

// ByUserID restricts a notes query to one owner.
func ByUserID(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// BySlug restricts a query to the row carrying the given slug.
func BySlug(slug string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("slug = ?", slug)
	}
}

// OrderByID gives list endpoints a stable order.
func OrderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

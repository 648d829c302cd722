package scope

import "gorm.io/gorm"

// Default orderings for list queries. Specifications applied afterwards add
// secondary keys.

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCheckInDesc(db *gorm.DB) *gorm.DB {
	return db.Order("attendances.check_in DESC")
}

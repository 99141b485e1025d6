package repository

import "gorm.io/gorm"

// Paginate applies 1-based page/limit offsets.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// activeProducts joins colors to their product and keeps active ones.
func activeProducts(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN products ON products.id = colors.product_id").
		Where("products.is_active = ?", true)
}

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/X-Vneer/e-commerc-api/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedEmirates = []models.Emirate{
	{ID: 1, NameEn: "Abu Dhabi", NameAr: "أبو ظبي"},
	{ID: 2, NameEn: "Dubai", NameAr: "دبي"},
	{ID: 3, NameEn: "Sharjah", NameAr: "الشارقة"},
	{ID: 4, NameEn: "Ajman", NameAr: "عجمان"},
	{ID: 5, NameEn: "Umm Al Quwain", NameAr: "أم القيوين"},
	{ID: 6, NameEn: "Ras Al Khaimah", NameAr: "رأس الخيمة"},
	{ID: 7, NameEn: "Fujairah", NameAr: "الفجيرة"},
}

var seedRegions = []models.Region{
	{ID: 1, NameEn: "Abu Dhabi City", NameAr: "مدينة أبو ظبي", EmirateID: 1},
	{ID: 2, NameEn: "Khalifa City", NameAr: "خليفة سيتي", EmirateID: 1},
	{ID: 3, NameEn: "Mussafah", NameAr: "المصفح", EmirateID: 1},
	{ID: 4, NameEn: "Al Ain", NameAr: "العين", EmirateID: 1},
	{ID: 5, NameEn: "Al Dhafra", NameAr: "الظفرة", EmirateID: 1},
	{ID: 6, NameEn: "Ruwais", NameAr: "الرويس", EmirateID: 1},

	{ID: 7, NameEn: "Dubai City", NameAr: "مدينة دبي", EmirateID: 2},
	{ID: 8, NameEn: "Deira", NameAr: "ديرة", EmirateID: 2},
	{ID: 9, NameEn: "Bur Dubai", NameAr: "بر دبي", EmirateID: 2},
	{ID: 10, NameEn: "Jumeirah", NameAr: "جميرا", EmirateID: 2},
	{ID: 11, NameEn: "Jebel Ali", NameAr: "جبل علي", EmirateID: 2},
	{ID: 12, NameEn: "Business Bay", NameAr: "بيزنس باي", EmirateID: 2},
	{ID: 13, NameEn: "Dubai Marina", NameAr: "مرسى دبي", EmirateID: 2},
	{ID: 14, NameEn: "Al Barsha", NameAr: "البرشاء", EmirateID: 2},
	{ID: 15, NameEn: "Al Quoz", NameAr: "القوز", EmirateID: 2},

	{ID: 16, NameEn: "Sharjah City", NameAr: "مدينة الشارقة", EmirateID: 3},
	{ID: 17, NameEn: "Al Dhaid", NameAr: "الذيد", EmirateID: 3},
	{ID: 18, NameEn: "Khor Fakkan", NameAr: "خورفكان", EmirateID: 3},
	{ID: 19, NameEn: "Kalba", NameAr: "كلباء", EmirateID: 3},
	{ID: 20, NameEn: "Dibba Al Hisn", NameAr: "دبا الحصن", EmirateID: 3},

	{ID: 21, NameEn: "Ajman City", NameAr: "مدينة عجمان", EmirateID: 4},
	{ID: 22, NameEn: "Al Hamidiyah", NameAr: "الحميدية", EmirateID: 4},
	{ID: 23, NameEn: "Al Jurf", NameAr: "الجرف", EmirateID: 4},
	{ID: 24, NameEn: "Manama", NameAr: "منامة", EmirateID: 4},

	{ID: 25, NameEn: "Umm Al Quwain City", NameAr: "مدينة أم القيوين", EmirateID: 5},
	{ID: 26, NameEn: "Falaj Al Mualla", NameAr: "فلج المعلا", EmirateID: 5},
	{ID: 27, NameEn: "Al Salamah", NameAr: "السلامة", EmirateID: 5},

	{ID: 28, NameEn: "Ras Al Khaimah City", NameAr: "مدينة رأس الخيمة", EmirateID: 6},
	{ID: 29, NameEn: "Al Hamra", NameAr: "الحمرا", EmirateID: 6},
	{ID: 30, NameEn: "Khatt", NameAr: "خات", EmirateID: 6},
	{ID: 31, NameEn: "Shamal", NameAr: "شمل", EmirateID: 6},
	{ID: 32, NameEn: "Rams", NameAr: "رأس", EmirateID: 6},

	{ID: 33, NameEn: "Fujairah City", NameAr: "مدينة الفجيرة", EmirateID: 7},
	{ID: 34, NameEn: "Dibba Al Fujairah", NameAr: "دبا الفجيرة", EmirateID: 7},
	{ID: 35, NameEn: "Masafi", NameAr: "مصفى", EmirateID: 7},
	{ID: 36, NameEn: "Al Aqah", NameAr: "العقة", EmirateID: 7},
}

var seedSizes = []models.Size{
	{ID: 1, Code: "S", Weight: "100g"},
	{ID: 2, Code: "M", Weight: "200g"},
	{ID: 3, Code: "L", Weight: "300g"},
	{ID: 4, Code: "XL", Weight: "400g"},
	{ID: 5, Code: "2xL", Weight: "500g"},
	{ID: 6, Code: "3XL", Weight: "600g"},
	{ID: 7, Code: "4XL", Weight: "700g"},
	{ID: 8, Code: "5XL", Weight: "800g"},
	{ID: 9, Code: "6XL", Weight: "900g"},
	{ID: 10, Code: "7XL", Weight: "1000g"},
	{ID: 11, Code: "8XL", Weight: "1000g"},
	{ID: 12, Code: "9XL", Weight: "1000g"},
	{ID: 13, Code: "10XL", Weight: "1000g"},
	{ID: 14, Code: "11XL", Weight: "1000g"},
	{ID: 15, Code: "12XL", Weight: "1000g"},
	{ID: 16, Code: "free-size", Weight: "500g"},
}

// SeedReferenceData inserts emirates, regions and sizes. Rows that already
// exist are left untouched, so it is safe on every boot.
func SeedReferenceData(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip := tx.Clauses(clause.OnConflict{DoNothing: true})
		if err := skip.Create(&seedEmirates).Error; err != nil {
			return fmt.Errorf("seed emirates: %w", err)
		}
		if err := skip.Create(&seedRegions).Error; err != nil {
			return fmt.Errorf("seed regions: %w", err)
		}
		if err := skip.Create(&seedSizes).Error; err != nil {
			return fmt.Errorf("seed sizes: %w", err)
		}
		logger.Info("Reference data seeded",
			zap.Int("emirates", len(seedEmirates)),
			zap.Int("regions", len(seedRegions)),
			zap.Int("sizes", len(seedSizes)),
		)
		return nil
	})
}

// SeedAdmin creates the first dashboard admin when no admin with that email
// exists yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string, logger *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.Admin{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&admin)
	if result.Error != nil {
		return fmt.Errorf("seed admin: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logger.Info("Admin account created", zap.String("email", email))
	}
	return nil
}

package models

import (
	"time"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/shopspring/decimal"
)

type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameEn    string    `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr    string    `gorm:"type:varchar(255);not null" json:"name_ar"`
	Code      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b Branch) NameText() i18n.Text { return i18n.Text{En: b.NameEn, Ar: b.NameAr} }

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameEn    string    `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr    string    `gorm:"type:varchar(255);not null" json:"name_ar"`
	Slug      string    `gorm:"type:varchar(255);index;not null" json:"slug"`
	Image     string    `gorm:"type:text" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Category) NameText() i18n.Text { return i18n.Text{En: c.NameEn, Ar: c.NameAr} }

// Product is the parent of purchasable colors. IsActive gates every
// storefront read and cart mutation below it.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Code          string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Slug          string          `gorm:"type:varchar(255);index;not null" json:"slug"`
	NameEn        string          `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr        string          `gorm:"type:varchar(255);not null" json:"name_ar"`
	DescriptionEn string          `gorm:"type:text" json:"description_en"`
	DescriptionAr string          `gorm:"type:text" json:"description_ar"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	MainImageURL  string          `gorm:"type:text" json:"main_image_url"`
	IsActive      bool            `gorm:"not null;default:false;index" json:"is_active"`
	IsFeatured    bool            `gorm:"not null;default:false" json:"is_featured"`
	IsBestSeller  bool            `gorm:"not null;default:false" json:"is_best_seller"`
	Categories    []Category      `gorm:"many2many:product_categories;" json:"categories"`
	Colors        []Color         `json:"colors"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Product) NameText() i18n.Text { return i18n.Text{En: p.NameEn, Ar: p.NameAr} }

func (p Product) DescriptionText() i18n.Text {
	return i18n.Text{En: p.DescriptionEn, Ar: p.DescriptionAr}
}

// Color is a purchasable variant of a product.
type Color struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProductID uint          `gorm:"not null;index" json:"product_id"`
	Product   Product       `json:"product"`
	NameEn    string        `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr    string        `gorm:"type:varchar(255);not null" json:"name_ar"`
	Image     string        `gorm:"type:text" json:"image"`
	Sizes     []ProductSize `json:"sizes"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (c Color) NameText() i18n.Text { return i18n.Text{En: c.NameEn, Ar: c.NameAr} }

// ProductSize is one (color, size code) combination and its measurements.
type ProductSize struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	ColorID     uint               `gorm:"not null;uniqueIndex:idx_color_size" json:"color_id"`
	SizeCode    string             `gorm:"type:varchar(16);not null;uniqueIndex:idx_color_size" json:"size_code"`
	Size        Size               `gorm:"foreignKey:SizeCode;references:Code" json:"size"`
	Hip         float64            `gorm:"not null;default:0" json:"hip"`
	Chest       float64            `gorm:"not null;default:0" json:"chest"`
	Inventories []ProductInventory `json:"inventories"`
}

// Available is the sellable quantity across all branches.
func (ps ProductSize) Available() int {
	return AvailableQuantity(ps.Inventories)
}

// ProductInventory is the stock of one product size at one branch.
type ProductInventory struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ProductSizeID uint   `gorm:"not null;uniqueIndex:idx_size_branch" json:"product_size_id"`
	BranchID      uint   `gorm:"not null;uniqueIndex:idx_size_branch" json:"branch_id"`
	Branch        Branch `json:"branch"`
	Amount        int    `gorm:"not null;default:0" json:"amount"`
	Sold          int    `gorm:"not null;default:0" json:"sold"`
}

// Available never goes below zero, even if sold exceeds amount.
func (pi ProductInventory) Available() int {
	if pi.Sold >= pi.Amount {
		return 0
	}
	return pi.Amount - pi.Sold
}

// ProductCategory is the join row behind Product.Categories.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}

func (ProductCategory) TableName() string { return "product_categories" }

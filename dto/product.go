package dto

import (
	"time"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
)

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ColorSummary is one storefront listing entry.
type ColorSummary struct {
	ID           uint          `json:"id"`
	Slug         string        `json:"slug"`
	Name         string        `json:"name"`
	MainImageURL string        `json:"main_image_url"`
	Price        float64       `json:"price"`
	Code         string        `json:"code"`
	ProductID    uint          `json:"product_id"`
	ProductName  string        `json:"product_name"`
	ColorName    string        `json:"color_name"`
	Categories   []CategoryRef `json:"categories"`
	HasPlusSize  bool          `json:"has_plus_size"`
	IsFavorite   bool          `json:"is_favorite"`
	IsFeatured   bool          `json:"is_featured"`
}

type ColorRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type SizeAvailability struct {
	ID          uint   `json:"id"`
	SizeCode    string `json:"size_code"`
	IsAvailable bool   `json:"is_available"`
}

// ColorDetail is the storefront product page.
type ColorDetail struct {
	ID           uint               `json:"id"`
	Slug         string             `json:"slug"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	MainImageURL string             `json:"main_image_url"`
	Image        string             `json:"image"`
	Price        float64            `json:"price"`
	Code         string             `json:"code"`
	ProductID    uint               `json:"product_id"`
	ProductName  string             `json:"product_name"`
	ColorName    string             `json:"color_name"`
	Categories   []CategoryRef      `json:"categories"`
	OtherColors  []ColorRef         `json:"other_colors"`
	HasPlusSize  bool               `json:"has_plus_size"`
	IsFavorite   bool               `json:"is_favorite"`
	Sizes        []SizeAvailability `json:"sizes"`
}

type FavoriteToggle struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	ProductID  uint   `json:"product_id"`
	IsFavorite bool   `json:"is_favorite"`
}

func NewCategoryRefs(categories []models.Category, lang i18n.Lang) []CategoryRef {
	out := make([]CategoryRef, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryRef{ID: c.ID, Name: i18n.Localized(c, lang), Slug: c.Slug})
	}
	return out
}

func hasPlusSize(sizes []models.ProductSize) bool {
	for _, s := range sizes {
		if models.IsPlusSize(s.SizeCode) {
			return true
		}
	}
	return false
}

func NewColorSummary(c models.Color, lang i18n.Lang, favorite bool) ColorSummary {
	p := c.Product
	return ColorSummary{
		ID:           c.ID,
		Slug:         p.Slug,
		Name:         fullName(p, c, lang),
		MainImageURL: p.MainImageURL,
		Price:        p.Price.InexactFloat64(),
		Code:         p.Code,
		ProductID:    p.ID,
		ProductName:  i18n.Localized(p, lang),
		ColorName:    i18n.Localized(c, lang),
		Categories:   NewCategoryRefs(p.Categories, lang),
		HasPlusSize:  hasPlusSize(c.Sizes),
		IsFavorite:   favorite,
		IsFeatured:   p.IsFeatured,
	}
}

// NewColorSummaries projects a listing page; favorites may be nil.
func NewColorSummaries(colors []models.Color, lang i18n.Lang, favorites map[uint]bool) []ColorSummary {
	out := make([]ColorSummary, 0, len(colors))
	for _, c := range colors {
		out = append(out, NewColorSummary(c, lang, favorites[c.ID]))
	}
	return out
}

func NewColorDetail(c models.Color, lang i18n.Lang, favorite bool) ColorDetail {
	p := c.Product
	out := ColorDetail{
		ID:           c.ID,
		Slug:         p.Slug,
		Name:         fullName(p, c, lang),
		Description:  p.DescriptionText().In(lang),
		MainImageURL: p.MainImageURL,
		Image:        c.Image,
		Price:        p.Price.InexactFloat64(),
		Code:         p.Code,
		ProductID:    p.ID,
		ProductName:  i18n.Localized(p, lang),
		ColorName:    i18n.Localized(c, lang),
		Categories:   NewCategoryRefs(p.Categories, lang),
		OtherColors:  []ColorRef{},
		HasPlusSize:  hasPlusSize(c.Sizes),
		IsFavorite:   favorite,
		Sizes:        make([]SizeAvailability, 0, len(c.Sizes)),
	}
	for _, other := range p.Colors {
		if other.ID == c.ID {
			continue
		}
		out.OtherColors = append(out.OtherColors, ColorRef{
			ID:       other.ID,
			Name:     i18n.Localized(other, lang),
			ImageURL: other.Image,
		})
	}
	for _, s := range c.Sizes {
		out.Sizes = append(out.Sizes, SizeAvailability{
			ID:          s.ID,
			SizeCode:    s.SizeCode,
			IsAvailable: s.Available() > 0,
		})
	}
	return out
}

// AdminProduct is the dashboard view: both languages, raw stock counters.
type AdminProduct struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	Slug          string          `json:"slug"`
	NameEn        string          `json:"name_en"`
	NameAr        string          `json:"name_ar"`
	DescriptionEn string          `json:"description_en"`
	DescriptionAr string          `json:"description_ar"`
	Price         float64         `json:"price"`
	MainImageURL  string          `json:"main_image_url"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	IsBestSeller  bool            `json:"is_best_seller"`
	Categories    []AdminCategory `json:"categories"`
	Colors        []AdminColor    `json:"colors"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type AdminColor struct {
	ID     uint        `json:"id"`
	NameEn string      `json:"name_en"`
	NameAr string      `json:"name_ar"`
	Image  string      `json:"image"`
	Sizes  []AdminSize `json:"sizes"`
}

type AdminSize struct {
	ID          uint             `json:"id"`
	SizeCode    string           `json:"size_code"`
	Hip         float64          `json:"hip"`
	Chest       float64          `json:"chest"`
	Available   int              `json:"available"`
	Inventories []AdminInventory `json:"inventories"`
}

type AdminInventory struct {
	ID         uint   `json:"id"`
	BranchID   uint   `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Amount     int    `json:"amount"`
	Sold       int    `json:"sold"`
	Available  int    `json:"available"`
}

func NewAdminProduct(p models.Product, lang i18n.Lang) AdminProduct {
	out := AdminProduct{
		ID:            p.ID,
		Code:          p.Code,
		Slug:          p.Slug,
		NameEn:        p.NameEn,
		NameAr:        p.NameAr,
		DescriptionEn: p.DescriptionEn,
		DescriptionAr: p.DescriptionAr,
		Price:         p.Price.InexactFloat64(),
		MainImageURL:  p.MainImageURL,
		IsActive:      p.IsActive,
		IsFeatured:    p.IsFeatured,
		IsBestSeller:  p.IsBestSeller,
		Categories:    NewAdminCategories(p.Categories, lang),
		Colors:        make([]AdminColor, 0, len(p.Colors)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, c := range p.Colors {
		color := AdminColor{ID: c.ID, NameEn: c.NameEn, NameAr: c.NameAr, Image: c.Image, Sizes: make([]AdminSize, 0, len(c.Sizes))}
		for _, s := range c.Sizes {
			size := AdminSize{
				ID:          s.ID,
				SizeCode:    s.SizeCode,
				Hip:         s.Hip,
				Chest:       s.Chest,
				Available:   s.Available(),
				Inventories: make([]AdminInventory, 0, len(s.Inventories)),
			}
			for _, inv := range s.Inventories {
				size.Inventories = append(size.Inventories, AdminInventory{
					ID:         inv.ID,
					BranchID:   inv.BranchID,
					BranchName: i18n.Localized(inv.Branch, lang),
					Amount:     inv.Amount,
					Sold:       inv.Sold,
					Available:  inv.Available(),
				})
			}
			color.Sizes = append(color.Sizes, size)
		}
		out.Colors = append(out.Colors, color)
	}
	return out
}

func NewAdminProducts(products []models.Product, lang i18n.Lang) []AdminProduct {
	out := make([]AdminProduct, 0, len(products))
	for _, p := range products {
		out = append(out, NewAdminProduct(p, lang))
	}
	return out
}

package dto

import (
	"time"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
)

type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	LastPage int64 `json:"last_page"`
}

// NewPagination computes last_page as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var last int64
	if limit > 0 {
		last = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, LastPage: last}
}

// NamedItem is a localized {id, name} pair used by the reference lists.
type NamedItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewEmirates(emirates []models.Emirate, lang i18n.Lang) []NamedItem {
	out := make([]NamedItem, 0, len(emirates))
	for _, e := range emirates {
		out = append(out, NamedItem{ID: e.ID, Name: i18n.Localized(e, lang)})
	}
	return out
}

func NewRegions(regions []models.Region, lang i18n.Lang) []NamedItem {
	out := make([]NamedItem, 0, len(regions))
	for _, r := range regions {
		out = append(out, NamedItem{ID: r.ID, Name: i18n.Localized(r, lang)})
	}
	return out
}

func NewCategoryItems(categories []models.Category, lang i18n.Lang) []NamedItem {
	out := make([]NamedItem, 0, len(categories))
	for _, c := range categories {
		out = append(out, NamedItem{ID: c.ID, Name: i18n.Localized(c, lang)})
	}
	return out
}

type SizeItem struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	Weight string `json:"weight"`
}

func NewSizes(sizes []models.Size) []SizeItem {
	out := make([]SizeItem, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, SizeItem{ID: s.ID, Code: s.Code, Weight: s.Weight})
	}
	return out
}

type AdminCategory struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en"`
	NameAr    string    `json:"name_ar"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAdminCategory(c models.Category, lang i18n.Lang) AdminCategory {
	return AdminCategory{
		ID:        c.ID,
		Name:      i18n.Localized(c, lang),
		NameEn:    c.NameEn,
		NameAr:    c.NameAr,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
	}
}

func NewAdminCategories(categories []models.Category, lang i18n.Lang) []AdminCategory {
	out := make([]AdminCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewAdminCategory(c, lang))
	}
	return out
}

type Branch struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en"`
	NameAr    string    `json:"name_ar"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBranch(b models.Branch, lang i18n.Lang) Branch {
	return Branch{
		ID:        b.ID,
		Name:      i18n.Localized(b, lang),
		NameEn:    b.NameEn,
		NameAr:    b.NameAr,
		Code:      b.Code,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewBranches(branches []models.Branch, lang i18n.Lang) []Branch {
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		out = append(out, NewBranch(b, lang))
	}
	return out
}

package models

import "github.com/X-Vneer/e-commerc-api/i18n"

type Emirate struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	NameEn string `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr string `gorm:"type:varchar(255);not null" json:"name_ar"`
}

func (e Emirate) NameText() i18n.Text { return i18n.Text{En: e.NameEn, Ar: e.NameAr} }

type Region struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	NameEn    string  `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr    string  `gorm:"type:varchar(255);not null" json:"name_ar"`
	EmirateID uint    `gorm:"not null;index" json:"emirate_id"`
	Emirate   Emirate `json:"emirate"`
}

func (r Region) NameText() i18n.Text { return i18n.Text{En: r.NameEn, Ar: r.NameAr} }

// Size is a size code from the reference list, e.g. "M" or "3XL".
type Size struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Code   string `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	Weight string `gorm:"type:varchar(32)" json:"weight"`
}

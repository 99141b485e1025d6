package models

import "github.com/shopspring/decimal"

// AddToCartRequest is the body of POST /cart/add.
type AddToCartRequest struct {
	ColorID  uint   `json:"color_id" validate:"required,min=1"`
	SizeCode string `json:"size_code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
}

// UpdateCartItemRequest is the body of PUT /cart/:id. Zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=100"`
}

type RegisterRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	RegionID uint   `json:"region_id" validate:"required,min=1"`
	Address  string `json:"address" validate:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateAddressRequest struct {
	RegionID *uint   `json:"region_id" validate:"omitempty,min=1"`
	Address  *string `json:"address" validate:"omitempty,min=1"`
}

func (r UpdateAddressRequest) Empty() bool { return r.RegionID == nil && r.Address == nil }

type UpdateInfoRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (r UpdateInfoRequest) Empty() bool { return r.Name == nil && r.Email == nil }

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateCategoryRequest struct {
	NameEn string `json:"name_en" validate:"required"`
	NameAr string `json:"name_ar" validate:"required"`
	Image  string `json:"image" validate:"required,url"`
}

type UpdateCategoryRequest struct {
	NameEn *string `json:"name_en" validate:"omitempty,min=1"`
	NameAr *string `json:"name_ar" validate:"omitempty,min=1"`
	Image  *string `json:"image" validate:"omitempty,url"`
}

type BranchRequest struct {
	NameEn string `json:"name_en" validate:"required"`
	NameAr string `json:"name_ar" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

type InventoryInput struct {
	BranchID uint `json:"branch_id" validate:"required,min=1"`
	Amount   int  `json:"amount" validate:"min=0"`
}

type CreateSizeRequest struct {
	SizeCode    string           `json:"size_code" validate:"required"`
	Hip         float64          `json:"hip" validate:"gt=0"`
	Chest       float64          `json:"chest" validate:"gt=0"`
	Inventories []InventoryInput `json:"inventories" validate:"dive"`
}

type CreateColorRequest struct {
	NameEn string              `json:"name_en" validate:"required"`
	NameAr string              `json:"name_ar" validate:"required"`
	Image  string              `json:"image" validate:"required,url"`
	Sizes  []CreateSizeRequest `json:"sizes" validate:"required,min=1,dive"`
}

type CreateProductRequest struct {
	Code          string               `json:"code" validate:"required"`
	NameEn        string               `json:"name_en" validate:"required"`
	NameAr        string               `json:"name_ar" validate:"required"`
	DescriptionEn string               `json:"description_en" validate:"required"`
	DescriptionAr string               `json:"description_ar" validate:"required"`
	Price         decimal.Decimal      `json:"price" validate:"gt=0"`
	IsActive      *bool                `json:"is_active"`
	IsFeatured    bool                 `json:"is_featured"`
	IsBestSeller  bool                 `json:"is_best_seller"`
	CategoryIDs   []uint               `json:"category_ids" validate:"required,min=1,dive,min=1"`
	Colors        []CreateColorRequest `json:"colors" validate:"required,min=1,dive"`
}

// UpdateProductRequest is a partial update. A non-nil CategoryIDs replaces
// the whole category set.
type UpdateProductRequest struct {
	Code          *string          `json:"code" validate:"omitempty,min=1"`
	NameEn        *string          `json:"name_en" validate:"omitempty,min=1"`
	NameAr        *string          `json:"name_ar" validate:"omitempty,min=1"`
	DescriptionEn *string          `json:"description_en" validate:"omitempty,min=1"`
	DescriptionAr *string          `json:"description_ar" validate:"omitempty,min=1"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	IsActive      *bool            `json:"is_active"`
	IsFeatured    *bool            `json:"is_featured"`
	IsBestSeller  *bool            `json:"is_best_seller"`
	CategoryIDs   []uint           `json:"category_ids" validate:"omitempty,min=1,dive,min=1"`
}

type UpdateActivityRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type FavoriteRequest struct {
	IsFavorite string `json:"is_favorite" validate:"required,oneof=true false"`
}

type PresignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

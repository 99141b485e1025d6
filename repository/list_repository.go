package repository

import (
	"context"

	"github.com/X-Vneer/e-commerc-api/models"
	"gorm.io/gorm"
)

// ListRepository serves the reference lists used by storefront forms.
type ListRepository interface {
	Emirates(ctx context.Context) ([]models.Emirate, error)
	Regions(ctx context.Context, emirateID uint) ([]models.Region, error)
	RegionExists(ctx context.Context, id uint) (bool, error)
	Sizes(ctx context.Context) ([]models.Size, error)
}

type GormListRepository struct {
	db *gorm.DB
}

func NewGormListRepository(db *gorm.DB) ListRepository {
	return &GormListRepository{db: db}
}

func (r *GormListRepository) Emirates(ctx context.Context) ([]models.Emirate, error) {
	var emirates []models.Emirate
	err := r.db.WithContext(ctx).Order("id").Find(&emirates).Error
	return emirates, err
}

// Regions returns every region, or those of one emirate when emirateID > 0.
func (r *GormListRepository) Regions(ctx context.Context, emirateID uint) ([]models.Region, error) {
	query := r.db.WithContext(ctx)
	if emirateID > 0 {
		query = query.Where("emirate_id = ?", emirateID)
	}
	var regions []models.Region
	err := query.Order("id").Find(&regions).Error
	return regions, err
}

func (r *GormListRepository) RegionExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Region{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *GormListRepository) Sizes(ctx context.Context) ([]models.Size, error) {
	var sizes []models.Size
	err := r.db.WithContext(ctx).Order("id").Find(&sizes).Error
	return sizes, err
}

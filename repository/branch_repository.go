package repository

import (
	"context"

	"github.com/X-Vneer/e-commerc-api/models"
	"gorm.io/gorm"
)

// BranchRepository defines data access for branches.
type BranchRepository interface {
	FindAll(ctx context.Context, q string) ([]models.Branch, error)
	FindByID(ctx context.Context, id uint) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uint) error
}

type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) BranchRepository {
	return &GormBranchRepository{db: db}
}

// FindAll searches names and code, newest code first.
func (r *GormBranchRepository) FindAll(ctx context.Context, q string) ([]models.Branch, error) {
	query := r.db.WithContext(ctx)
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("name_en ILIKE ? OR name_ar ILIKE ? OR code ILIKE ?", like, like, like)
	}

	var branches []models.Branch
	err := query.Order("code DESC").Find(&branches).Error
	return branches, err
}

func (r *GormBranchRepository) FindByID(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *GormBranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *GormBranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *GormBranchRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Branch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

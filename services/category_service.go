package services

import (
	"context"
	"errors"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, lang i18n.Lang) ([]dto.AdminCategory, *ServiceError)
	Create(ctx context.Context, req models.CreateCategoryRequest, lang i18n.Lang) (*dto.AdminCategory, *ServiceError)
	Update(ctx context.Context, id uint, req models.UpdateCategoryRequest, lang i18n.Lang) (*dto.AdminCategory, *ServiceError)
	// Delete refuses while any product still references the category.
	Delete(ctx context.Context, id uint) *ServiceError
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	cache  CacheInvalidator
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, cache CacheInvalidator, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, cache: cache, logger: logger}
}

func (s *categoryServiceImpl) List(ctx context.Context, lang i18n.Lang) ([]dto.AdminCategory, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewAdminCategories(categories, lang), nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, req models.CreateCategoryRequest, lang i18n.Lang) (*dto.AdminCategory, *ServiceError) {
	category := &models.Category{
		NameEn: req.NameEn,
		NameAr: req.NameAr,
		Slug:   i18n.Slugify(req.NameEn),
		Image:  req.Image,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("Category created", zap.Uint("category_id", category.ID))
	out := dto.NewAdminCategory(*category, lang)
	return &out, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uint, req models.UpdateCategoryRequest, lang i18n.Lang) (*dto.AdminCategory, *ServiceError) {
	updates := map[string]any{}
	if req.NameEn != nil {
		updates["name_en"] = *req.NameEn
		updates["slug"] = i18n.Slugify(*req.NameEn)
	}
	if req.NameAr != nil {
		updates["name_ar"] = *req.NameAr
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("category_not_found")
			}
			s.logger.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
			return nil, unexpected(err)
		}
		s.invalidate(ctx)
	}

	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("category_not_found")
	}
	if err != nil {
		return nil, unexpected(err)
	}
	out := dto.NewAdminCategory(*category, lang)
	return &out, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	used, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return unexpected(err)
	}
	if used {
		return badRequest("category_has_products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("category_not_found")
		}
		s.logger.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return unexpected(err)
	}

	s.logger.Info("Category deleted", zap.Uint("category_id", id))
	s.invalidate(ctx)
	return nil
}

func (s *categoryServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

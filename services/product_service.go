package services

import (
	"context"
	"errors"
	"time"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/X-Vneer/e-commerc-api/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CacheInvalidator drops cached storefront listings after a catalog write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ProductService is the dashboard side of the catalog.
type ProductService interface {
	List(ctx context.Context, f repository.ProductFilter, lang i18n.Lang) ([]dto.AdminProduct, int64, *ServiceError)
	Get(ctx context.Context, id uint, lang i18n.Lang) (*dto.AdminProduct, *ServiceError)
	Create(ctx context.Context, req models.CreateProductRequest, lang i18n.Lang) (*dto.AdminProduct, *ServiceError)
	Update(ctx context.Context, id uint, req models.UpdateProductRequest, lang i18n.Lang) (*dto.AdminProduct, *ServiceError)
	SetActivity(ctx context.Context, id uint, active bool, lang i18n.Lang) (*dto.AdminProduct, *ServiceError)
}

type productServiceImpl struct {
	repo    repository.ProductRepository
	cache   CacheInvalidator
	metrics aws_pkg.MetricsRecorder
	logger  *zap.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	cache CacheInvalidator,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

func (s *productServiceImpl) List(ctx context.Context, f repository.ProductFilter, lang i18n.Lang) ([]dto.AdminProduct, int64, *ServiceError) {
	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, unexpected(err)
	}
	return dto.NewAdminProducts(products, lang), total, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id uint, lang i18n.Lang) (*dto.AdminProduct, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product_not_found")
	}
	if err != nil {
		s.logger.Error("Failed to load product", zap.Uint("product_id", id), zap.Error(err))
		return nil, unexpected(err)
	}
	out := dto.NewAdminProduct(*product, lang)
	return &out, nil
}

func (s *productServiceImpl) Create(ctx context.Context, req models.CreateProductRequest, lang i18n.Lang) (*dto.AdminProduct, *ServiceError) {
	if svcErr := s.checkCategories(ctx, req.CategoryIDs); svcErr != nil {
		return nil, svcErr
	}
	if svcErr := s.checkSizesAndBranches(ctx, req.Colors); svcErr != nil {
		return nil, svcErr
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := &models.Product{
		Code:          req.Code,
		Slug:          i18n.Slugify(req.NameEn),
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		Price:         req.Price.Round(2),
		MainImageURL:  req.Colors[0].Image,
		IsActive:      active,
		IsFeatured:    req.IsFeatured,
		IsBestSeller:  req.IsBestSeller,
		Colors:        make([]models.Color, 0, len(req.Colors)),
	}
	for _, c := range req.Colors {
		color := models.Color{NameEn: c.NameEn, NameAr: c.NameAr, Image: c.Image}
		for _, sz := range c.Sizes {
			size := models.ProductSize{SizeCode: sz.SizeCode, Hip: sz.Hip, Chest: sz.Chest}
			for _, inv := range sz.Inventories {
				size.Inventories = append(size.Inventories, models.ProductInventory{
					BranchID: inv.BranchID,
					Amount:   inv.Amount,
				})
			}
			color.Sizes = append(color.Sizes, size)
		}
		product.Colors = append(product.Colors, color)
	}

	if err := s.repo.Create(ctx, product, req.CategoryIDs); err != nil {
		s.logger.Error("Failed to create product", zap.String("code", req.Code), zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("Product created", zap.Uint("product_id", product.ID), zap.String("code", product.Code))
	s.invalidate(ctx)
	s.count(aws_pkg.MetricProductsCreated)
	return s.Get(ctx, product.ID, lang)
}

func (s *productServiceImpl) Update(ctx context.Context, id uint, req models.UpdateProductRequest, lang i18n.Lang) (*dto.AdminProduct, *ServiceError) {
	if req.CategoryIDs != nil {
		if svcErr := s.checkCategories(ctx, req.CategoryIDs); svcErr != nil {
			return nil, svcErr
		}
	}

	updates := map[string]any{}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.NameEn != nil {
		updates["name_en"] = *req.NameEn
		updates["slug"] = i18n.Slugify(*req.NameEn)
	}
	if req.NameAr != nil {
		updates["name_ar"] = *req.NameAr
	}
	if req.DescriptionEn != nil {
		updates["description_en"] = *req.DescriptionEn
	}
	if req.DescriptionAr != nil {
		updates["description_ar"] = *req.DescriptionAr
	}
	if req.Price != nil {
		updates["price"] = req.Price.Round(2)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsBestSeller != nil {
		updates["is_best_seller"] = *req.IsBestSeller
	}

	if err := s.repo.Update(ctx, id, updates, req.CategoryIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product_not_found")
		}
		s.logger.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return nil, unexpected(err)
	}

	s.invalidate(ctx)
	return s.Get(ctx, id, lang)
}

func (s *productServiceImpl) SetActivity(ctx context.Context, id uint, active bool, lang i18n.Lang) (*dto.AdminProduct, *ServiceError) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product_not_found")
		}
		s.logger.Error("Failed to set product activity", zap.Uint("product_id", id), zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("Product activity changed", zap.Uint("product_id", id), zap.Bool("is_active", active))
	s.invalidate(ctx)
	return s.Get(ctx, id, lang)
}

func (s *productServiceImpl) checkCategories(ctx context.Context, ids []uint) *ServiceError {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return nil
	}
	count, err := s.repo.CountCategories(ctx, unique)
	if err != nil {
		return unexpected(err)
	}
	if count != int64(len(unique)) {
		return notFound("category_not_found")
	}
	return nil
}

func (s *productServiceImpl) checkSizesAndBranches(ctx context.Context, colors []models.CreateColorRequest) *ServiceError {
	var (
		codes    []string
		branches []uint
		seen     = map[string]bool{}
	)
	for _, c := range colors {
		for _, sz := range c.Sizes {
			if !seen[sz.SizeCode] {
				seen[sz.SizeCode] = true
				codes = append(codes, sz.SizeCode)
			}
			for _, inv := range sz.Inventories {
				branches = append(branches, inv.BranchID)
			}
		}
	}

	count, err := s.repo.CountSizeCodes(ctx, codes)
	if err != nil {
		return unexpected(err)
	}
	if count != int64(len(codes)) {
		return unprocessable("size_code_unknown")
	}

	branches = uniqueIDs(branches)
	if len(branches) == 0 {
		return nil
	}
	count, err = s.repo.CountBranches(ctx, branches)
	if err != nil {
		return unexpected(err)
	}
	if count != int64(len(branches)) {
		return notFound("branch_not_found")
	}
	return nil
}

func (s *productServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

func (s *productServiceImpl) count(metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.metrics.RecordCount(ctx, metric, map[string]string{"Service": "dashboard"})
	}()
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

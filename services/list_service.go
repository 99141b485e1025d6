package services

import (
	"context"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/repository"
	"go.uber.org/zap"
)

// ListService serves the localized reference lists used by storefront forms.
type ListService interface {
	Emirates(ctx context.Context, lang i18n.Lang) ([]dto.NamedItem, *ServiceError)
	Regions(ctx context.Context, emirateID uint, lang i18n.Lang) ([]dto.NamedItem, *ServiceError)
	Sizes(ctx context.Context) ([]dto.SizeItem, *ServiceError)
	Categories(ctx context.Context, lang i18n.Lang) ([]dto.NamedItem, *ServiceError)
}

type listServiceImpl struct {
	lists      repository.ListRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewListService(lists repository.ListRepository, categories repository.CategoryRepository, logger *zap.Logger) ListService {
	return &listServiceImpl{lists: lists, categories: categories, logger: logger}
}

func (s *listServiceImpl) Emirates(ctx context.Context, lang i18n.Lang) ([]dto.NamedItem, *ServiceError) {
	emirates, err := s.lists.Emirates(ctx)
	if err != nil {
		s.logger.Error("Failed to list emirates", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewEmirates(emirates, lang), nil
}

func (s *listServiceImpl) Regions(ctx context.Context, emirateID uint, lang i18n.Lang) ([]dto.NamedItem, *ServiceError) {
	regions, err := s.lists.Regions(ctx, emirateID)
	if err != nil {
		s.logger.Error("Failed to list regions", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewRegions(regions, lang), nil
}

func (s *listServiceImpl) Sizes(ctx context.Context) ([]dto.SizeItem, *ServiceError) {
	sizes, err := s.lists.Sizes(ctx)
	if err != nil {
		s.logger.Error("Failed to list sizes", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewSizes(sizes), nil
}

func (s *listServiceImpl) Categories(ctx context.Context, lang i18n.Lang) ([]dto.NamedItem, *ServiceError) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewCategoryItems(categories, lang), nil
}

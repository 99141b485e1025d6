package services

import (
	"context"
	"errors"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentColorsLimit = 10

// CatalogService serves the storefront product pages. A nil userID means an
// anonymous caller; is_favorite is then always false.
type CatalogService interface {
	ListColors(ctx context.Context, f repository.ColorFilter, userID *uuid.UUID, lang i18n.Lang) ([]dto.ColorSummary, int64, *ServiceError)
	RecentColors(ctx context.Context, userID *uuid.UUID, lang i18n.Lang) ([]dto.ColorSummary, *ServiceError)
	GetColor(ctx context.Context, id uint, userID *uuid.UUID, lang i18n.Lang) (*dto.ColorDetail, *ServiceError)
	SetFavorite(ctx context.Context, userID uuid.UUID, colorID uint, favorite bool, lang i18n.Lang) (*dto.FavoriteToggle, *ServiceError)
	ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int, lang i18n.Lang) ([]dto.ColorSummary, int64, *ServiceError)
}

type catalogServiceImpl struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{repo: repo, logger: logger}
}

func (s *catalogServiceImpl) ListColors(ctx context.Context, f repository.ColorFilter, userID *uuid.UUID, lang i18n.Lang) ([]dto.ColorSummary, int64, *ServiceError) {
	colors, total, err := s.repo.ListColors(ctx, f)
	if err != nil {
		s.logger.Error("Failed to list colors", zap.Error(err))
		return nil, 0, unexpected(err)
	}

	ids := make([]uint, 0, len(colors))
	for _, c := range colors {
		ids = append(ids, c.ID)
	}
	favorites, svcErr := s.favorites(ctx, userID, ids)
	if svcErr != nil {
		return nil, 0, svcErr
	}
	return dto.NewColorSummaries(colors, lang, favorites), total, nil
}

func (s *catalogServiceImpl) RecentColors(ctx context.Context, userID *uuid.UUID, lang i18n.Lang) ([]dto.ColorSummary, *ServiceError) {
	colors, err := s.repo.RecentColors(ctx, recentColorsLimit)
	if err != nil {
		s.logger.Error("Failed to list recent colors", zap.Error(err))
		return nil, unexpected(err)
	}

	ids := make([]uint, 0, len(colors))
	for _, c := range colors {
		ids = append(ids, c.ID)
	}
	favorites, svcErr := s.favorites(ctx, userID, ids)
	if svcErr != nil {
		return nil, svcErr
	}
	return dto.NewColorSummaries(colors, lang, favorites), nil
}

func (s *catalogServiceImpl) GetColor(ctx context.Context, id uint, userID *uuid.UUID, lang i18n.Lang) (*dto.ColorDetail, *ServiceError) {
	color, err := s.repo.FindColor(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product_not_found")
	}
	if err != nil {
		s.logger.Error("Failed to load color", zap.Uint("color_id", id), zap.Error(err))
		return nil, unexpected(err)
	}

	favorites, svcErr := s.favorites(ctx, userID, []uint{id})
	if svcErr != nil {
		return nil, svcErr
	}
	out := dto.NewColorDetail(*color, lang, favorites[id])
	return &out, nil
}

func (s *catalogServiceImpl) SetFavorite(ctx context.Context, userID uuid.UUID, colorID uint, favorite bool, lang i18n.Lang) (*dto.FavoriteToggle, *ServiceError) {
	color, err := s.repo.FindAnyColor(ctx, colorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product_not_found")
	}
	if err != nil {
		return nil, unexpected(err)
	}

	if err := s.repo.SetFavorite(ctx, userID, colorID, favorite); err != nil {
		s.logger.Error("Failed to set favorite",
			zap.String("user_id", userID.String()),
			zap.Uint("color_id", colorID),
			zap.Error(err),
		)
		return nil, unexpected(err)
	}

	return &dto.FavoriteToggle{
		ID:         color.ID,
		Name:       i18n.Localized(*color, lang),
		Image:      color.Image,
		ProductID:  color.ProductID,
		IsFavorite: favorite,
	}, nil
}

func (s *catalogServiceImpl) ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int, lang i18n.Lang) ([]dto.ColorSummary, int64, *ServiceError) {
	colors, total, err := s.repo.ListFavorites(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list favorites", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, unexpected(err)
	}

	all := make(map[uint]bool, len(colors))
	for _, c := range colors {
		all[c.ID] = true
	}
	return dto.NewColorSummaries(colors, lang, all), total, nil
}

func (s *catalogServiceImpl) favorites(ctx context.Context, userID *uuid.UUID, ids []uint) (map[uint]bool, *ServiceError) {
	if userID == nil {
		return nil, nil
	}
	favorites, err := s.repo.FavoriteColorIDs(ctx, *userID, ids)
	if err != nil {
		s.logger.Error("Failed to load favorites", zap.Error(err))
		return nil, unexpected(err)
	}
	return favorites, nil
}

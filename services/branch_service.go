package services

import (
	"context"
	"errors"
	"strings"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BranchService interface {
	List(ctx context.Context, q string, lang i18n.Lang) ([]dto.Branch, *ServiceError)
	Create(ctx context.Context, req models.BranchRequest, lang i18n.Lang) (*dto.Branch, *ServiceError)
	Update(ctx context.Context, id uint, req models.BranchRequest, lang i18n.Lang) (*dto.Branch, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type branchServiceImpl struct {
	repo   repository.BranchRepository
	logger *zap.Logger
}

func NewBranchService(repo repository.BranchRepository, logger *zap.Logger) BranchService {
	return &branchServiceImpl{repo: repo, logger: logger}
}

func (s *branchServiceImpl) List(ctx context.Context, q string, lang i18n.Lang) ([]dto.Branch, *ServiceError) {
	branches, err := s.repo.FindAll(ctx, strings.TrimSpace(q))
	if err != nil {
		s.logger.Error("Failed to list branches", zap.Error(err))
		return nil, unexpected(err)
	}
	return dto.NewBranches(branches, lang), nil
}

func (s *branchServiceImpl) Create(ctx context.Context, req models.BranchRequest, lang i18n.Lang) (*dto.Branch, *ServiceError) {
	branch := &models.Branch{NameEn: req.NameEn, NameAr: req.NameAr, Code: req.Code}
	if err := s.repo.Create(ctx, branch); err != nil {
		s.logger.Error("Failed to create branch", zap.String("code", req.Code), zap.Error(err))
		return nil, unexpected(err)
	}
	out := dto.NewBranch(*branch, lang)
	return &out, nil
}

func (s *branchServiceImpl) Update(ctx context.Context, id uint, req models.BranchRequest, lang i18n.Lang) (*dto.Branch, *ServiceError) {
	branch, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("branch_not_found")
	}
	if err != nil {
		return nil, unexpected(err)
	}

	branch.NameEn = req.NameEn
	branch.NameAr = req.NameAr
	branch.Code = req.Code
	if err := s.repo.Update(ctx, branch); err != nil {
		s.logger.Error("Failed to update branch", zap.Uint("branch_id", id), zap.Error(err))
		return nil, unexpected(err)
	}
	out := dto.NewBranch(*branch, lang)
	return &out, nil
}

// Delete removes a branch. Inventory rows still pointing at it make the
// foreign key fail, which surfaces as 400.
func (s *branchServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("branch_not_found")
		}
		s.logger.Error("Failed to delete branch", zap.Uint("branch_id", id), zap.Error(err))
		return unexpected(err)
	}
	s.logger.Info("Branch deleted", zap.Uint("branch_id", id))
	return nil
}

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(subjectID uuid.UUID, role string) (string, error)
}

// AuthService covers storefront customers and dashboard admins.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, lang i18n.Lang) (*dto.AuthResult, *ServiceError)
	Login(ctx context.Context, req models.LoginRequest, lang i18n.Lang) (*dto.AuthResult, *ServiceError)
	Me(ctx context.Context, userID uuid.UUID, lang i18n.Lang) (*dto.User, *ServiceError)
	UpdateAddress(ctx context.Context, userID uuid.UUID, req models.UpdateAddressRequest, lang i18n.Lang) (*dto.User, *ServiceError)
	UpdateInfo(ctx context.Context, userID uuid.UUID, req models.UpdateInfoRequest, lang i18n.Lang) (*dto.User, *ServiceError)

	AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*dto.AuthResult, *ServiceError)
	AdminMe(ctx context.Context, adminID uuid.UUID) (*dto.Admin, *ServiceError)
}

type authServiceImpl struct {
	users  repository.UserRepository
	lists  repository.ListRepository
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, lists repository.ListRepository, tokens TokenIssuer, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, lists: lists, tokens: tokens, logger: logger}
}

func (s *authServiceImpl) Register(ctx context.Context, req models.RegisterRequest, lang i18n.Lang) (*dto.AuthResult, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByPhoneOrEmail(ctx, req.Phone, email)
	if err != nil {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, unexpected(err)
	}
	if exists {
		return nil, conflict("user_conflict")
	}

	if svcErr := s.requireRegion(ctx, req.RegionID); svcErr != nil {
		return nil, svcErr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, unexpected(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Phone:    req.Phone,
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		RegionID: req.RegionID,
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		svcErr := unexpected(err)
		if svcErr.StatusCode == http.StatusConflict {
			return nil, conflict("user_conflict")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, svcErr
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(ctx, user.ID, lang)
}

func (s *authServiceImpl) Login(ctx context.Context, req models.LoginRequest, lang i18n.Lang) (*dto.AuthResult, *ServiceError) {
	user, err := s.users.FindByPhone(ctx, req.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		s.logger.Error("Failed to load user", zap.Error(err))
		return nil, unexpected(err)
	}
	if user.Status != models.StatusActive {
		return nil, unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized()
	}
	return s.issue(ctx, user.ID, lang)
}

func (s *authServiceImpl) Me(ctx context.Context, userID uuid.UUID, lang i18n.Lang) (*dto.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		return nil, unexpected(err)
	}
	out := dto.NewUser(*user, lang)
	return &out, nil
}

func (s *authServiceImpl) UpdateAddress(ctx context.Context, userID uuid.UUID, req models.UpdateAddressRequest, lang i18n.Lang) (*dto.User, *ServiceError) {
	updates := map[string]any{}
	if req.RegionID != nil {
		if svcErr := s.requireRegion(ctx, *req.RegionID); svcErr != nil {
			return nil, svcErr
		}
		updates["region_id"] = *req.RegionID
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	return s.update(ctx, userID, updates, lang)
}

func (s *authServiceImpl) UpdateInfo(ctx context.Context, userID uuid.UUID, req models.UpdateInfoRequest, lang i18n.Lang) (*dto.User, *ServiceError) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		taken, err := s.users.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, unexpected(err)
		}
		if taken {
			return nil, conflict("user_conflict")
		}
		updates["email"] = email
	}
	return s.update(ctx, userID, updates, lang)
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*dto.AuthResult, *ServiceError) {
	admin, err := s.users.FindAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		s.logger.Error("Failed to load admin", zap.Error(err))
		return nil, unexpected(err)
	}
	if admin.Status != models.StatusActive {
		return nil, unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized()
	}

	token, err := s.tokens.GenerateAccessToken(admin.ID, models.RoleAdmin)
	if err != nil {
		s.logger.Error("Failed to sign admin token", zap.Error(err))
		return nil, unexpected(err)
	}
	s.logger.Info("Admin logged in", zap.String("admin_id", admin.ID.String()))
	return &dto.AuthResult{AccessToken: token, User: dto.NewAdmin(*admin)}, nil
}

func (s *authServiceImpl) AdminMe(ctx context.Context, adminID uuid.UUID) (*dto.Admin, *ServiceError) {
	admin, err := s.users.FindAdminByID(ctx, adminID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized()
	}
	if err != nil {
		return nil, unexpected(err)
	}
	if admin.Status != models.StatusActive {
		return nil, unauthorized()
	}
	out := dto.NewAdmin(*admin)
	return &out, nil
}

func (s *authServiceImpl) requireRegion(ctx context.Context, regionID uint) *ServiceError {
	ok, err := s.lists.RegionExists(ctx, regionID)
	if err != nil {
		return unexpected(err)
	}
	if !ok {
		return notFound("region_not_found")
	}
	return nil
}

func (s *authServiceImpl) update(ctx context.Context, userID uuid.UUID, updates map[string]any, lang i18n.Lang) (*dto.User, *ServiceError) {
	if err := s.users.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized()
		}
		s.logger.Error("Failed to update user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, unexpected(err)
	}
	return s.Me(ctx, userID, lang)
}

// issue signs a token and returns it with the freshly loaded profile.
func (s *authServiceImpl) issue(ctx context.Context, userID uuid.UUID, lang i18n.Lang) (*dto.AuthResult, *ServiceError) {
	token, err := s.tokens.GenerateAccessToken(userID, models.RoleUser)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, unexpected(err)
	}
	user, svcErr := s.Me(ctx, userID, lang)
	if svcErr != nil {
		return nil, svcErr
	}
	return &dto.AuthResult{AccessToken: token, User: user}, nil
}

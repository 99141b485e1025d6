package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// FindByID also accepts a func(uuid.UUID) *models.User return value for
// ids generated inside the service.
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	switch v := args.Get(0).(type) {
	case func(uuid.UUID) *models.User:
		return v(id), args.Error(1)
	case *models.User:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByPhoneOrEmail(ctx context.Context, phone, email string) (bool, error) {
	args := m.Called(ctx, phone, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockUserRepository) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockUserRepository) FindAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Emirates(ctx context.Context) ([]models.Emirate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Emirate), args.Error(1)
}

func (m *MockListRepository) Regions(ctx context.Context, emirateID uint) ([]models.Region, error) {
	args := m.Called(ctx, emirateID)
	return args.Get(0).([]models.Region), args.Error(1)
}

func (m *MockListRepository) RegionExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListRepository) Sizes(ctx context.Context) ([]models.Size, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Size), args.Error(1)
}

func newAuthService(users *MockUserRepository, lists *MockListRepository) services.AuthService {
	return services.NewAuthService(users, lists, services.NewTokenService("test-secret", 0), zap.NewNop())
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Phone:    "+971500000001",
		Password: "secret-pass",
		Name:     " Mariam ",
		Email:    "Mariam@Example.com",
		RegionID: 3,
		Address:  "Street 1",
	}
}

func TestRegister_Success(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	var created *models.User
	users.On("ExistsByPhoneOrEmail", anyArg, "+971500000001", "mariam@example.com").Return(false, nil)
	lists.On("RegionExists", anyArg, uint(3)).Return(true, nil)
	users.On("Create", anyArg, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)
	users.On("FindByID", anyArg, mock.AnythingOfType("uuid.UUID")).
		Return(func(id uuid.UUID) *models.User {
			return &models.User{ID: id, Name: "Mariam", Phone: "+971500000001"}
		}, nil)

	res, svcErr := svc.Register(context.Background(), registerRequest(), i18n.LangEN)

	require.Nil(t, svcErr)
	assert.NotEmpty(t, res.AccessToken)
	require.NotNil(t, created)
	assert.Equal(t, "Mariam", created.Name)
	assert.Equal(t, "mariam@example.com", created.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret-pass")))
	assert.Equal(t, models.RoleUser, created.Role)
	user, ok := res.User.(*dto.User)
	require.True(t, ok)
	assert.Equal(t, created.ID.String(), user.ID)
}

func TestRegister_Conflict(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	users.On("ExistsByPhoneOrEmail", anyArg, anyArg, anyArg).Return(true, nil)

	_, svcErr := svc.Register(context.Background(), registerRequest(), i18n.LangEN)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "user_conflict", svcErr.Message)
	users.AssertNotCalled(t, "Create", anyArg, anyArg)
}

func TestRegister_UniqueViolationOnInsert(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	users.On("ExistsByPhoneOrEmail", anyArg, anyArg, anyArg).Return(false, nil)
	lists.On("RegionExists", anyArg, uint(3)).Return(true, nil)
	users.On("Create", anyArg, anyArg).Return(&pgconn.PgError{Code: "23505"})

	_, svcErr := svc.Register(context.Background(), registerRequest(), i18n.LangEN)

	require.NotNil(t, svcErr)
	assert.Equal(t, "user_conflict", svcErr.Message)
}

func TestRegister_UnknownRegion(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	users.On("ExistsByPhoneOrEmail", anyArg, anyArg, anyArg).Return(false, nil)
	lists.On("RegionExists", anyArg, uint(3)).Return(false, nil)

	_, svcErr := svc.Register(context.Background(), registerRequest(), i18n.LangEN)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "region_not_found", svcErr.Message)
}

func TestLogin(t *testing.T) {
	id := uuid.New()
	stored := &models.User{ID: id, Phone: "+971500000001", Password: hash(t, "secret-pass"), Status: models.StatusActive}

	tests := []struct {
		name     string
		password string
		found    error
		wantCode int
	}{
		{"valid", "secret-pass", nil, 0},
		{"wrong password", "other-pass", nil, http.StatusUnauthorized},
		{"unknown phone", "secret-pass", gorm.ErrRecordNotFound, http.StatusUnauthorized},
		{"storage failure", "secret-pass", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, lists := new(MockUserRepository), new(MockListRepository)
			svc := newAuthService(users, lists)

			if tt.found != nil {
				users.On("FindByPhone", anyArg, stored.Phone).Return(nil, tt.found)
			} else {
				users.On("FindByPhone", anyArg, stored.Phone).Return(stored, nil)
			}
			users.On("FindByID", anyArg, id).Return(stored, nil).Maybe()

			res, svcErr := svc.Login(context.Background(), models.LoginRequest{Phone: stored.Phone, Password: tt.password}, i18n.LangEN)

			if tt.wantCode == 0 {
				require.Nil(t, svcErr)
				assert.NotEmpty(t, res.AccessToken)
				return
			}
			require.NotNil(t, svcErr)
			assert.Equal(t, tt.wantCode, svcErr.StatusCode)
		})
	}
}

func TestUpdateInfo_EmailTaken(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	id := uuid.New()
	email := "taken@example.com"
	users.On("EmailTaken", anyArg, email, id).Return(true, nil)

	_, svcErr := svc.UpdateInfo(context.Background(), id, models.UpdateInfoRequest{Email: &email}, i18n.LangEN)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	users.AssertNotCalled(t, "Update", anyArg, anyArg, anyArg)
}

func TestUpdateAddress_WritesOnlyGivenFields(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	svc := newAuthService(users, lists)

	id := uuid.New()
	address := "Villa 9"
	users.On("Update", anyArg, id, map[string]any{"address": address}).Return(nil)
	users.On("FindByID", anyArg, id).Return(&models.User{ID: id, Address: address}, nil)

	out, svcErr := svc.UpdateAddress(context.Background(), id, models.UpdateAddressRequest{Address: &address}, i18n.LangAR)

	require.Nil(t, svcErr)
	assert.Equal(t, address, out.Address)
	lists.AssertNotCalled(t, "RegionExists", anyArg, anyArg)
}

func TestAdminLogin(t *testing.T) {
	users, lists := new(MockUserRepository), new(MockListRepository)
	tokens := services.NewTokenService("test-secret", 0)
	svc := services.NewAuthService(users, lists, tokens, zap.NewNop())

	admin := &models.Admin{ID: uuid.New(), Email: "ops@example.com", Password: hash(t, "admin-pass"), Status: models.StatusActive}
	users.On("FindAdminByEmail", anyArg, "ops@example.com").Return(admin, nil)

	res, svcErr := svc.AdminLogin(context.Background(), models.AdminLoginRequest{Email: "OPS@example.com", Password: "admin-pass"})
	require.Nil(t, svcErr)

	claims, err := tokens.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, admin.ID, claims.Subject())

	_, svcErr = svc.AdminLogin(context.Background(), models.AdminLoginRequest{Email: "ops@example.com", Password: "wrong-pass"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

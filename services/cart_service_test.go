package services_test

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type MockCartRepository struct {
	mock.Mock
}

// Transaction runs fn against the mock itself so writes inside the callback
// are visible to AssertCalled / AssertNotCalled.
func (m *MockCartRepository) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx repository.CartRepository) error) error {
	m.Called(opts)
	return fn(m)
}

func (m *MockCartRepository) FindActiveColorWithSize(ctx context.Context, colorID uint, sizeCode string) (*models.Color, error) {
	args := m.Called(ctx, colorID, sizeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Color), args.Error(1)
}

func (m *MockCartRepository) FindProductSize(ctx context.Context, colorID uint, sizeCode string) (*models.ProductSize, error) {
	args := m.Called(ctx, colorID, sizeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductSize), args.Error(1)
}

func (m *MockCartRepository) LockInventories(ctx context.Context, productSizeID uint) ([]models.ProductInventory, error) {
	args := m.Called(ctx, productSizeID)
	return args.Get(0).([]models.ProductInventory), args.Error(1)
}

func (m *MockCartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) FindItem(ctx context.Context, cartID uuid.UUID, colorID uint, sizeCode string) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, colorID, sizeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uint) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) LoadItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

// --- Mock Publisher ---

type recordingPublisher struct {
	events []models.CartEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e models.CartEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// --- Helpers ---

var anyArg = mock.Anything

func newCartService(repo *MockCartRepository, pub *recordingPublisher) services.CartService {
	repo.On("Transaction", mock.Anything).Maybe()
	return services.NewCartService(repo, pub, nil, false, zap.NewNop())
}

func colorWithSize(colorID, sizeID uint, code string) *models.Color {
	return &models.Color{
		ID:    colorID,
		Sizes: []models.ProductSize{{ID: sizeID, ColorID: colorID, SizeCode: code}},
	}
}

func stock(amount, sold int) []models.ProductInventory {
	return []models.ProductInventory{{ID: 1, Amount: amount, Sold: sold}}
}

// --- AddToCart ---

func TestAddToCart_CreatesLine(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(10, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(nil, nil)
	repo.On("UpsertItem", anyArg, mock.MatchedBy(func(i *models.CartItem) bool {
		return i.CartID == cart.ID && i.ColorID == 1 && i.SizeCode == "M" && i.Quantity == 2
	})).Return(nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 2})

	require.Nil(t, svcErr)
	assert.Equal(t, 2, item.Quantity)
	require.Len(t, pub.events, 1)
	assert.Equal(t, models.CartEventItemAdded, pub.events[0].EventType)
	assert.Equal(t, userID.String(), pub.events[0].UserID)
	repo.AssertExpectations(t)
}

func TestAddToCart_MergesWithExistingLine(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: 42, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(10, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(existing, nil)
	repo.On("UpdateItemQuantity", anyArg, uint(42), 5).Return(nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 3})

	require.Nil(t, svcErr)
	assert.Equal(t, uint(42), item.ID)
	assert.Equal(t, 5, item.Quantity)
	repo.AssertNotCalled(t, "UpsertItem", anyArg, anyArg)
}

func TestAddToCart_InsufficientInventoryWritesNothing(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(1, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(nil, nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 2})

	assert.Nil(t, item)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.StatusCode)
	assert.Equal(t, "not_enough_inventory", svcErr.Message)
	repo.AssertNotCalled(t, "UpsertItem", anyArg, anyArg)
	repo.AssertNotCalled(t, "UpdateItemQuantity", anyArg, anyArg, anyArg)
	assert.Empty(t, pub.events)
}

func TestAddToCart_SoldStockIsNotAvailable(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: 3, CartID: cart.ID, ColorID: 1, SizeCode: "L", Quantity: 1}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "L").Return(colorWithSize(1, 8, "L"), nil)
	// 10 received, 8 sold: two left, one already in the cart.
	repo.On("LockInventories", anyArg, uint(8)).Return(stock(10, 8), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "L").Return(existing, nil)

	_, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "L", Quantity: 2})

	require.NotNil(t, svcErr)
	assert.Equal(t, "not_enough_inventory", svcErr.Message)
	repo.AssertNotCalled(t, "UpdateItemQuantity", anyArg, anyArg, anyArg)
}

func TestAddToCart_HugeQuantityDoesNotWrap(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: 9, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(10, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(existing, nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: math.MaxInt})

	assert.Nil(t, item)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.StatusCode)
	assert.Equal(t, "not_enough_inventory", svcErr.Message)
	repo.AssertNotCalled(t, "UpdateItemQuantity", anyArg, anyArg, anyArg)
	repo.AssertNotCalled(t, "UpsertItem", anyArg, anyArg)
	assert.Empty(t, pub.events)
}

func TestAddToCart_FillsRemainingStockExactly(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: 9, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(10, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(existing, nil)
	repo.On("UpdateItemQuantity", anyArg, uint(9), 10).Return(nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 8})

	require.Nil(t, svcErr)
	assert.Equal(t, 10, item.Quantity)
}

func TestAddToCart_InactiveOrMissingColor(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	repo.On("FindActiveColorWithSize", anyArg, uint(9), "M").Return(nil, gorm.ErrRecordNotFound)

	_, svcErr := svc.AddToCart(context.Background(), uuid.New(), models.AddToCartRequest{ColorID: 9, SizeCode: "M", Quantity: 1})

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "color_not_found", svcErr.Message)
	repo.AssertNotCalled(t, "GetOrCreateCart", anyArg, anyArg)
}

func TestAddToCart_MissingSize(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "XS").Return(&models.Color{ID: 1}, nil)

	_, svcErr := svc.AddToCart(context.Background(), uuid.New(), models.AddToCartRequest{ColorID: 1, SizeCode: "XS", Quantity: 1})

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "size_not_found", svcErr.Message)
}

func TestAddToCart_StorageErrorIsClassified(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(nil, errors.New("connection reset"))

	_, svcErr := svc.AddToCart(context.Background(), uuid.New(), models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 1})

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, "internal_server_error", svcErr.Message)
}

func TestAddToCart_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(colorWithSize(1, 7, "M"), nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(5, 0), nil)
	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItem", anyArg, cart.ID, uint(1), "M").Return(nil, nil)
	repo.On("UpsertItem", anyArg, anyArg).Return(nil)

	item, svcErr := svc.AddToCart(context.Background(), userID, models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 1})

	assert.Nil(t, svcErr)
	assert.NotNil(t, item)
	assert.Len(t, pub.events, 1)
}

func TestAddToCart_SerializableIsolation(t *testing.T) {
	repo := new(MockCartRepository)
	svc := services.NewCartService(repo, nil, nil, true, zap.NewNop())

	repo.On("Transaction", &sql.TxOptions{Isolation: sql.LevelSerializable}).Once()
	repo.On("FindActiveColorWithSize", anyArg, uint(1), "M").Return(nil, gorm.ErrRecordNotFound)

	_, svcErr := svc.AddToCart(context.Background(), uuid.New(), models.AddToCartRequest{ColorID: 1, SizeCode: "M", Quantity: 1})

	require.NotNil(t, svcErr)
	repo.AssertExpectations(t)
}

// --- UpdateItemQuantity ---

func TestUpdateItemQuantity_SetsAbsoluteQuantity(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	item := &models.CartItem{ID: 5, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(5)).Return(item, nil)
	repo.On("FindProductSize", anyArg, uint(1), "M").Return(&models.ProductSize{ID: 7}, nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(4, 0), nil)
	repo.On("UpdateItemQuantity", anyArg, uint(5), 4).Return(nil)

	updated, svcErr := svc.UpdateItemQuantity(context.Background(), userID, 5, 4)

	require.Nil(t, svcErr)
	assert.Equal(t, 4, updated.Quantity)
	require.Len(t, pub.events, 1)
	assert.Equal(t, models.CartEventItemUpdated, pub.events[0].EventType)
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	item := &models.CartItem{ID: 5, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(5)).Return(item, nil)
	repo.On("DeleteItem", anyArg, uint(5)).Return(nil)

	updated, svcErr := svc.UpdateItemQuantity(context.Background(), userID, 5, 0)

	assert.Nil(t, svcErr)
	assert.Nil(t, updated)
	repo.AssertNotCalled(t, "UpdateItemQuantity", anyArg, anyArg, anyArg)
	repo.AssertNotCalled(t, "LockInventories", anyArg, anyArg)
	require.Len(t, pub.events, 1)
	assert.Equal(t, models.CartEventItemRemoved, pub.events[0].EventType)
	assert.Equal(t, 0, pub.events[0].Quantity)
}

func TestUpdateItemQuantity_ExceedsInventory(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	item := &models.CartItem{ID: 5, CartID: cart.ID, ColorID: 1, SizeCode: "M", Quantity: 2}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(5)).Return(item, nil)
	repo.On("FindProductSize", anyArg, uint(1), "M").Return(&models.ProductSize{ID: 7}, nil)
	repo.On("LockInventories", anyArg, uint(7)).Return(stock(3, 0), nil)

	_, svcErr := svc.UpdateItemQuantity(context.Background(), userID, 5, 4)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.StatusCode)
	repo.AssertNotCalled(t, "UpdateItemQuantity", anyArg, anyArg, anyArg)
}

func TestUpdateItemQuantity_ItemNotInCart(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(77)).Return(nil, gorm.ErrRecordNotFound)

	_, svcErr := svc.UpdateItemQuantity(context.Background(), userID, 77, 1)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "cart_item_not_found", svcErr.Message)
}

// --- RemoveItem ---

func TestRemoveItem_Success(t *testing.T) {
	repo := new(MockCartRepository)
	pub := &recordingPublisher{}
	svc := newCartService(repo, pub)

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	item := &models.CartItem{ID: 8, CartID: cart.ID, ColorID: 2, SizeCode: "S", Quantity: 1}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(8)).Return(item, nil)
	repo.On("DeleteItem", anyArg, uint(8)).Return(nil)

	svcErr := svc.RemoveItem(context.Background(), userID, 8)

	assert.Nil(t, svcErr)
	repo.AssertCalled(t, "DeleteItem", anyArg, uint(8))
	assert.Len(t, pub.events, 1)
}

func TestRemoveItem_NotFoundChecksBeforeDelete(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("FindItemByID", anyArg, cart.ID, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	svcErr := svc.RemoveItem(context.Background(), userID, 8)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	repo.AssertNotCalled(t, "DeleteItem", anyArg, anyArg)
}

// --- GetCart ---

func TestGetCart_EmptyCart(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	repo.On("GetOrCreateCart", anyArg, userID).Return(cart, nil)
	repo.On("LoadItems", anyArg, cart.ID).Return([]models.CartItem{}, nil)

	out, svcErr := svc.GetCart(context.Background(), userID, i18n.LangEN)

	require.Nil(t, svcErr)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0, out.PaymentSummary.TotalItems)
}

func TestGetCart_StorageError(t *testing.T) {
	repo := new(MockCartRepository)
	svc := newCartService(repo, &recordingPublisher{})

	userID := uuid.New()
	repo.On("GetOrCreateCart", anyArg, userID).Return(nil, errors.New("timeout"))

	_, svcErr := svc.GetCart(context.Background(), userID, i18n.LangEN)

	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}

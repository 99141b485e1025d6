package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/events"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService defines the cart read and mutation operations. Every mutation
// runs in one database transaction; a business failure rolls it back with
// nothing written.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID, lang i18n.Lang) (*dto.Cart, *ServiceError)
	AddToCart(ctx context.Context, userID uuid.UUID, req models.AddToCartRequest) (*models.CartItem, *ServiceError)
	// UpdateItemQuantity sets an absolute quantity. Zero deletes the line and
	// returns a nil item.
	UpdateItemQuantity(ctx context.Context, userID uuid.UUID, itemID uint, quantity int) (*models.CartItem, *ServiceError)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID uint) *ServiceError
}

type cartServiceImpl struct {
	repo      repository.CartRepository
	publisher events.Publisher
	metrics   aws_pkg.MetricsRecorder
	txOptions *sql.TxOptions
	logger    *zap.Logger
}

// NewCartService creates a new CartService. With serializable set, mutations
// run at SERIALIZABLE on top of the row locks they always take.
func NewCartService(
	repo repository.CartRepository,
	publisher events.Publisher,
	metrics aws_pkg.MetricsRecorder,
	serializable bool,
	logger *zap.Logger,
) CartService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	s := &cartServiceImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
	if serializable {
		s.txOptions = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return s
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID, lang i18n.Lang) (*dto.Cart, *ServiceError) {
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, unexpected(err)
	}

	items, err := s.repo.LoadItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error("Failed to load cart items", zap.String("cart_id", cart.ID.String()), zap.Error(err))
		return nil, unexpected(err)
	}

	out := dto.NewCart(*cart, items, lang)
	return &out, nil
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, userID uuid.UUID, req models.AddToCartRequest) (*models.CartItem, *ServiceError) {
	var line *models.CartItem

	err := s.repo.Transaction(ctx, s.txOptions, func(tx repository.CartRepository) error {
		color, err := tx.FindActiveColorWithSize(ctx, req.ColorID, req.SizeCode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("color_not_found")
		}
		if err != nil {
			return err
		}
		if len(color.Sizes) == 0 {
			return notFound("size_not_found")
		}

		inventories, err := tx.LockInventories(ctx, color.Sizes[0].ID)
		if err != nil {
			return err
		}
		available := models.AvailableQuantity(inventories)

		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		existing, err := tx.FindItem(ctx, cart.ID, color.ID, req.SizeCode)
		if err != nil {
			return err
		}

		existingQuantity := 0
		if existing != nil {
			existingQuantity = existing.Quantity
		}
		// compared by subtraction so a huge req.Quantity cannot wrap the sum
		if req.Quantity > available || existingQuantity > available-req.Quantity {
			return unprocessable("not_enough_inventory")
		}
		newQuantity := existingQuantity + req.Quantity

		if existing != nil {
			if err := tx.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
				return err
			}
			existing.Quantity = newQuantity
			line = existing
			return nil
		}

		line = &models.CartItem{
			CartID:   cart.ID,
			ColorID:  color.ID,
			SizeCode: req.SizeCode,
			Quantity: newQuantity,
		}
		return tx.UpsertItem(ctx, line)
	})
	if err != nil {
		return nil, s.fail(err, "Failed to add item to cart", userID)
	}

	s.logger.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.Uint("item_id", line.ID),
		zap.Int("quantity", line.Quantity),
	)
	s.afterCommit(ctx, models.CartEventItemAdded, aws_pkg.MetricCartItemsAdded, userID, line)
	return line, nil
}

func (s *cartServiceImpl) UpdateItemQuantity(ctx context.Context, userID uuid.UUID, itemID uint, quantity int) (*models.CartItem, *ServiceError) {
	var item *models.CartItem
	removed := false

	err := s.repo.Transaction(ctx, s.txOptions, func(tx repository.CartRepository) error {
		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		item, err = tx.FindItemByID(ctx, cart.ID, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("cart_item_not_found")
		}
		if err != nil {
			return err
		}

		if quantity == 0 {
			removed = true
			return tx.DeleteItem(ctx, item.ID)
		}

		size, err := tx.FindProductSize(ctx, item.ColorID, item.SizeCode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("size_not_found")
		}
		if err != nil {
			return err
		}

		inventories, err := tx.LockInventories(ctx, size.ID)
		if err != nil {
			return err
		}
		if quantity > models.AvailableQuantity(inventories) {
			return unprocessable("not_enough_inventory")
		}

		if err := tx.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}
		item.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, s.fail(err, "Failed to update cart item", userID)
	}

	if removed {
		s.logger.Info("Cart item removed", zap.String("user_id", userID.String()), zap.Uint("item_id", itemID))
		s.afterCommit(ctx, models.CartEventItemRemoved, aws_pkg.MetricCartItemsRemoved, userID, item)
		return nil, nil
	}

	s.logger.Info("Cart item updated",
		zap.String("user_id", userID.String()),
		zap.Uint("item_id", itemID),
		zap.Int("quantity", quantity),
	)
	s.afterCommit(ctx, models.CartEventItemUpdated, aws_pkg.MetricCartItemsUpdated, userID, item)
	return item, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uint) *ServiceError {
	var item *models.CartItem

	err := s.repo.Transaction(ctx, s.txOptions, func(tx repository.CartRepository) error {
		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		item, err = tx.FindItemByID(ctx, cart.ID, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("cart_item_not_found")
		}
		if err != nil {
			return err
		}
		return tx.DeleteItem(ctx, item.ID)
	})
	if err != nil {
		return s.fail(err, "Failed to remove cart item", userID)
	}

	s.logger.Info("Cart item removed", zap.String("user_id", userID.String()), zap.Uint("item_id", itemID))
	s.afterCommit(ctx, models.CartEventItemRemoved, aws_pkg.MetricCartItemsRemoved, userID, item)
	return nil
}

// fail unwraps a business error returned from a transaction callback, or
// classifies and logs a storage error.
func (s *cartServiceImpl) fail(err error, msg string, userID uuid.UUID) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Message == "not_enough_inventory" {
			s.count(aws_pkg.MetricCartInventoryRejected)
		}
		return svcErr
	}
	s.logger.Error(msg, zap.String("user_id", userID.String()), zap.Error(err))
	return unexpected(err)
}

// afterCommit publishes the cart event and bumps the counter. Neither can
// fail the request; the mutation is already committed.
func (s *cartServiceImpl) afterCommit(ctx context.Context, eventType, metric string, userID uuid.UUID, item *models.CartItem) {
	s.count(metric)

	event := models.CartEvent{
		EventType: eventType,
		UserID:    userID.String(),
		Timestamp: time.Now().UTC(),
	}
	if item != nil {
		event.CartID = item.CartID.String()
		event.ItemID = item.ID
		event.ColorID = item.ColorID
		event.SizeCode = item.SizeCode
		event.Quantity = item.Quantity
	}
	if eventType == models.CartEventItemRemoved {
		event.Quantity = 0
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish cart event",
			zap.String("event_type", eventType),
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
	}
}

func (s *cartServiceImpl) count(metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.metrics.RecordCount(ctx, metric, map[string]string{"Service": "cart"})
	}()
}

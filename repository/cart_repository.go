package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data access for carts and cart lines.
type CartRepository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx CartRepository) error) error

	FindActiveColorWithSize(ctx context.Context, colorID uint, sizeCode string) (*models.Color, error)
	FindProductSize(ctx context.Context, colorID uint, sizeCode string) (*models.ProductSize, error)
	LockInventories(ctx context.Context, productSizeID uint) ([]models.ProductInventory, error)
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindItem(ctx context.Context, cartID uuid.UUID, colorID uint, sizeCode string) (*models.CartItem, error)
	FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uint) (*models.CartItem, error)
	UpsertItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
	LoadItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx CartRepository) error) error {
	run := func(tx *gorm.DB) error {
		return fn(&GormCartRepository{db: tx})
	}
	if opts != nil {
		return r.db.WithContext(ctx).Transaction(run, opts)
	}
	return r.db.WithContext(ctx).Transaction(run)
}

// FindActiveColorWithSize loads a color of an active product with its Sizes
// narrowed to sizeCode. A missing color or an inactive product both yield
// gorm.ErrRecordNotFound; a missing size yields an empty Sizes slice.
func (r *GormCartRepository) FindActiveColorWithSize(ctx context.Context, colorID uint, sizeCode string) (*models.Color, error) {
	var color models.Color
	err := r.db.WithContext(ctx).
		Joins("Product").
		Where(`"Product"."is_active" = ?`, true).
		Preload("Sizes", "size_code = ?", sizeCode).
		First(&color, colorID).Error
	if err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *GormCartRepository) FindProductSize(ctx context.Context, colorID uint, sizeCode string) (*models.ProductSize, error) {
	var size models.ProductSize
	err := r.db.WithContext(ctx).
		Where("color_id = ? AND size_code = ?", colorID, sizeCode).
		First(&size).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// LockInventories reads every branch row of a product size with
// SELECT ... FOR UPDATE, serializing concurrent mutations on the same pool.
func (r *GormCartRepository) LockInventories(ctx context.Context, productSizeID uint) ([]models.ProductInventory, error) {
	var inventories []models.ProductInventory
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_size_id = ?", productSizeID).
		Order("id").
		Find(&inventories).Error
	return inventories, err
}

func (r *GormCartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.Cart{UserID: userID}).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItem returns the locked line for (cart, color, size), or nil when the
// cart has no such line.
func (r *GormCartRepository) FindItem(ctx context.Context, cartID uuid.UUID, colorID uint, sizeCode string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND color_id = ? AND size_code = ?", cartID, colorID, sizeCode).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByID looks the line up inside the given cart only, so a user can
// never reach another user's line. The row is not locked here; callers lock
// inventories first and then write the line, the same order AddToCart uses.
func (r *GormCartRepository) FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Take(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem inserts the line or overwrites the quantity of the existing
// (cart, color, size) line.
func (r *GormCartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "color_id"}, {Name: "size_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, itemID).Error
}

// LoadItems returns the displayable lines of a cart: the product must be
// active and the (color, size) must still have stock in at least one branch.
func (r *GormCartRepository) LoadItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN colors ON colors.id = cart_items.color_id").
		Joins("JOIN products ON products.id = colors.product_id AND products.is_active = ?", true).
		Where("cart_items.cart_id = ?", cartID).
		Where(`EXISTS (
			SELECT 1 FROM product_sizes ps
			JOIN product_inventories pi ON pi.product_size_id = ps.id
			WHERE ps.color_id = cart_items.color_id
			AND ps.size_code = cart_items.size_code
			AND pi.amount > pi.sold)`).
		Order("cart_items.id DESC").
		Preload("Color.Product").
		Preload("Color.Sizes.Inventories.Branch").
		Find(&items).Error
	return items, err
}

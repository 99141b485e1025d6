package repository

import (
	"context"
	"strings"

	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ColorFilter narrows the storefront color listing.
type ColorFilter struct {
	CategoryID  uint
	HasPlusSize bool
	SizeID      uint
	Page        int
	Limit       int
}

// CatalogRepository serves the storefront: colors of active products and
// user favorites.
type CatalogRepository interface {
	ListColors(ctx context.Context, f ColorFilter) ([]models.Color, int64, error)
	RecentColors(ctx context.Context, limit int) ([]models.Color, error)
	FindColor(ctx context.Context, id uint) (*models.Color, error)
	// FindAnyColor ignores product activity so favorites of deactivated
	// products can still be removed.
	FindAnyColor(ctx context.Context, id uint) (*models.Color, error)
	FavoriteColorIDs(ctx context.Context, userID uuid.UUID, colorIDs []uint) (map[uint]bool, error)
	SetFavorite(ctx context.Context, userID uuid.UUID, colorID uint, favorite bool) error
	ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Color, int64, error)
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListColors returns colors that have at least one size in stock. With
// HasPlusSize or SizeID set, the in-stock size must also be a plus size or
// the given size.
func (r *GormCatalogRepository) ListColors(ctx context.Context, f ColorFilter) ([]models.Color, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Color{}).Scopes(activeProducts)

	if f.CategoryID > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = ?)",
			f.CategoryID,
		)
	}

	stock := `EXISTS (SELECT 1 FROM product_sizes ps
		JOIN product_inventories pi ON pi.product_size_id = ps.id
		WHERE ps.color_id = colors.id AND pi.amount > pi.sold`
	var (
		ors  []string
		args []any
	)
	if f.HasPlusSize {
		ors = append(ors, "ps.size_code NOT IN ?")
		args = append(args, models.NotPlusSizes)
	}
	if f.SizeID > 0 {
		ors = append(ors, "ps.size_code IN (SELECT code FROM sizes WHERE id = ?)")
		args = append(args, f.SizeID)
	}
	if len(ors) > 0 {
		stock += " AND (" + strings.Join(ors, " OR ") + ")"
	}
	query = query.Where(stock+")", args...).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var colors []models.Color
	err := query.
		Scopes(Paginate(f.Page, f.Limit)).
		Order("products.created_at DESC, colors.id DESC").
		Preload("Product.Categories").
		Preload("Sizes").
		Find(&colors).Error
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

func (r *GormCatalogRepository) RecentColors(ctx context.Context, limit int) ([]models.Color, error) {
	var colors []models.Color
	err := r.db.WithContext(ctx).
		Scopes(activeProducts).
		Order("colors.created_at DESC, colors.id DESC").
		Limit(limit).
		Preload("Product.Categories").
		Preload("Sizes").
		Find(&colors).Error
	return colors, err
}

// FindColor loads everything the detail page needs: the product with its
// categories and sibling colors, and every size with its inventory rows.
func (r *GormCatalogRepository) FindColor(ctx context.Context, id uint) (*models.Color, error) {
	var color models.Color
	err := r.db.WithContext(ctx).
		Scopes(activeProducts).
		Preload("Product.Categories").
		Preload("Product.Colors", func(db *gorm.DB) *gorm.DB { return db.Order("colors.id") }).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("product_sizes.id") }).
		Preload("Sizes.Inventories").
		Where("colors.id = ?", id).
		Take(&color).Error
	if err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *GormCatalogRepository) FindAnyColor(ctx context.Context, id uint) (*models.Color, error) {
	var color models.Color
	if err := r.db.WithContext(ctx).Preload("Product").First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *GormCatalogRepository) FavoriteColorIDs(ctx context.Context, userID uuid.UUID, colorIDs []uint) (map[uint]bool, error) {
	favorites := make(map[uint]bool)
	if len(colorIDs) == 0 {
		return favorites, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.UserFavoriteColor{}).
		Where("user_id = ? AND color_id IN ?", userID, colorIDs).
		Pluck("color_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorites[id] = true
	}
	return favorites, nil
}

func (r *GormCatalogRepository) SetFavorite(ctx context.Context, userID uuid.UUID, colorID uint, favorite bool) error {
	db := r.db.WithContext(ctx)
	if !favorite {
		return db.Where("user_id = ? AND color_id = ?", userID, colorID).
			Delete(&models.UserFavoriteColor{}).Error
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserFavoriteColor{UserID: userID, ColorID: colorID}).Error
}

func (r *GormCatalogRepository) ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Color, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Color{}).
		Joins("JOIN user_favorite_colors ufc ON ufc.color_id = colors.id AND ufc.user_id = ?", userID).
		Joins("JOIN products ON products.id = colors.product_id").
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var colors []models.Color
	err := query.
		Scopes(Paginate(page, limit)).
		Order("products.created_at DESC, colors.id DESC").
		Preload("Product.Categories").
		Preload("Sizes").
		Find(&colors).Error
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

package repository

import (
	"context"

	"github.com/X-Vneer/e-commerc-api/models"
	"gorm.io/gorm"
)

// ProductFilter narrows the dashboard product listing.
type ProductFilter struct {
	IsActive              *bool
	CategoryID            uint
	Query                 string
	EmptyInventories      bool
	FullyEmptyInventories bool
	Page                  int
	Limit                 int
}

// ProductRepository defines dashboard data access for products.
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product, categoryIDs []uint) error
	Update(ctx context.Context, id uint, updates map[string]any, categoryIDs []uint) error
	SetActive(ctx context.Context, id uint, active bool) error
	CountCategories(ctx context.Context, ids []uint) (int64, error)
	CountBranches(ctx context.Context, ids []uint) (int64, error)
	CountSizeCodes(ctx context.Context, codes []string) (int64, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

const productInventoryJoin = `SELECT 1 FROM colors c
	JOIN product_sizes ps ON ps.color_id = c.id
	JOIN product_inventories pi ON pi.product_size_id = ps.id
	WHERE c.product_id = products.id`

func fullProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories").
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("colors.id") }).
		Preload("Colors.Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("product_sizes.id") }).
		Preload("Colors.Sizes.Inventories.Branch")
}

func (r *GormProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if f.IsActive != nil {
		query = query.Where("products.is_active = ?", *f.IsActive)
	}
	if f.CategoryID > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = ?)",
			f.CategoryID,
		)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		query = query.Where("products.code ILIKE ? OR products.name_en ILIKE ? OR products.name_ar ILIKE ?", like, like, like)
	}
	if f.EmptyInventories {
		query = query.Where("EXISTS (" + productInventoryJoin + " AND pi.amount <= pi.sold)")
	}
	if f.FullyEmptyInventories {
		query = query.Where("NOT EXISTS (" + productInventoryJoin + " AND pi.amount > pi.sold)")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Scopes(Paginate(f.Page, f.Limit), fullProduct).
		Order("products.created_at DESC, products.id DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Scopes(fullProduct).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts the product with its nested colors, sizes and inventories
// and links it to categoryIDs, all in one transaction.
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(product).Error; err != nil {
			return err
		}
		return linkCategories(tx, product.ID, categoryIDs)
	})
}

// Update applies a partial update. A non-nil categoryIDs replaces the
// product's category set.
func (r *GormProductRepository) Update(ctx context.Context, id uint, updates map[string]any, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Product{ID: id}).Updates(updates).Error; err != nil {
				return err
			}
		}

		if categoryIDs != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
				return err
			}
			return linkCategories(tx, id, categoryIDs)
		}
		return nil
	})
}

func linkCategories(tx *gorm.DB, productID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]models.ProductCategory, 0, len(categoryIDs))
	seen := make(map[uint]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, models.ProductCategory{ProductID: productID, CategoryID: id})
	}
	return tx.Create(&links).Error
}

func (r *GormProductRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProductRepository) CountCategories(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountBranches(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountSizeCodes(ctx context.Context, codes []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Size{}).Where("code IN ?", codes).Count(&count).Error
	return count, err
}
